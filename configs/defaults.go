package configs

import "github.com/spf13/viper"

// SetDefaults sets default configuration values
func SetDefaults() {
	// Application defaults
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("output_format", "table")

	// Analysis defaults
	viper.SetDefault("analysis.target_sample_rate", 11025)

	// Batch defaults
	viper.SetDefault("batch.max_concurrency", 4)
	viper.SetDefault("batch.timeout", "30s")
}
