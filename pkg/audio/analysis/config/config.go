package config

import "fmt"

// AnalysisConfig contains pipeline-level analysis settings
type AnalysisConfig struct {
	// TargetSampleRate is the rate every buffer is decimated to before
	// any estimator runs. Lower rates trade frequency headroom for speed.
	TargetSampleRate int `mapstructure:"target_sample_rate" json:"target_sample_rate"`
}

// DefaultAnalysisConfig returns the standard analysis settings
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		TargetSampleRate: 11025,
	}
}

// Validate checks the configuration for invalid values
func (c *AnalysisConfig) Validate() error {
	if c.TargetSampleRate <= 0 {
		return fmt.Errorf("target sample rate must be positive, got %d", c.TargetSampleRate)
	}
	return nil
}
