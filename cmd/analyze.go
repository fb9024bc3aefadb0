package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/groovemetrics/groovescan/configs"
	"github.com/groovemetrics/groovescan/internal/batch"
	"github.com/groovemetrics/groovescan/pkg/audio/analysis"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Analyze audio files for tempo, danceability and mood",
	Long: `Analyze decodes each file (WAV or MP3), downsamples it to the target
rate and runs the BPM, danceability and mood estimators. Files are analyzed
concurrently; one file's failure never aborts the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Int("concurrency", 4, "maximum files analyzed at once")
	analyzeCmd.Flags().Int("target-rate", 11025, "sample rate buffers are decimated to before analysis")
	analyzeCmd.Flags().Duration("timeout", 0, "wall-clock budget for the whole batch (0 uses the configured default)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("concurrency") {
		cfg.Batch.MaxConcurrency, _ = cmd.Flags().GetInt("concurrency")
	}
	if cmd.Flags().Changed("target-rate") {
		cfg.Analysis.TargetSampleRate, _ = cmd.Flags().GetInt("target-rate")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Batch.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}

	if err := configs.ValidateConfig(cfg); err != nil {
		return err
	}

	analyzer := analysis.NewAnalyzer(&cfg.Analysis)
	orchestrator := batch.NewOrchestrator(analyzer, batch.Config{
		MaxConcurrency: cfg.Batch.MaxConcurrency,
		Timeout:        cfg.Batch.Timeout,
	})

	summary := orchestrator.Run(context.Background(), args)

	switch cfg.OutputFormat {
	case "json":
		return writeJSON(summary)
	case "yaml":
		return writeYAML(summary)
	default:
		return writeTable(summary)
	}
}

func writeJSON(summary *batch.Summary) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

func writeYAML(summary *batch.Summary) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	return encoder.Encode(summary)
}

func writeTable(summary *batch.Summary) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tBPM\tTEMPO\tDANCEABILITY\tMOOD\tSTATUS")

	for _, file := range summary.Files {
		if file.Error != "" {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\terror: %s\n", file.Path, file.Error)
			continue
		}

		r := file.Result
		fmt.Fprintf(w, "%s\t%d\t%s\t%.0f (%s)\t%s %s\tok\n",
			file.Path,
			r.BPM.BPM,
			r.BPM.TempoCategory,
			r.Danceability.Score,
			r.Danceability.Category,
			r.Mood.Emoji,
			r.Mood.PrimaryMood,
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d succeeded, %d failed in %s\n",
		summary.Succeeded, summary.Failed, summary.TotalDuration.Round(time.Millisecond))
	return nil
}
