package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	analysisconfig "github.com/groovemetrics/groovescan/pkg/audio/analysis/config"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	// Analysis pipeline configuration
	Analysis analysisconfig.AnalysisConfig `mapstructure:"analysis"`

	// Batch execution configuration
	Batch BatchConfig `mapstructure:"batch"`
}

// BatchConfig contains multi-file execution settings
type BatchConfig struct {
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if err := config.Analysis.Validate(); err != nil {
		return err
	}

	if config.Batch.MaxConcurrency < 0 {
		return fmt.Errorf("max concurrency cannot be negative")
	}

	if config.Batch.Timeout < 0 {
		return fmt.Errorf("batch timeout cannot be negative")
	}

	switch config.OutputFormat {
	case "", "json", "yaml", "table":
	default:
		return fmt.Errorf("unsupported output format %q", config.OutputFormat)
	}

	return nil
}
