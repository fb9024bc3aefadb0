package main

import "github.com/groovemetrics/groovescan/cmd"

func main() {
	cmd.Execute()
}
