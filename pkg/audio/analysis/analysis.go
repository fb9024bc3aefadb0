package analysis

import (
	"fmt"
	"sync"

	"github.com/groovemetrics/groovescan/pkg/audio"
	"github.com/groovemetrics/groovescan/pkg/audio/analysis/config"
	"github.com/groovemetrics/groovescan/pkg/audio/analysis/estimators"
	"github.com/groovemetrics/groovescan/pkg/logging"
)

// Result aggregates the three estimator outputs for one analyzed buffer.
// It is created once per analysis and read-only after construction.
type Result struct {
	BPM          *estimators.BPMResult          `json:"bpm"`
	Danceability *estimators.DanceabilityResult `json:"danceability"`
	Mood         *estimators.MoodResult         `json:"mood"`
}

// Analyzer runs the full feature-extraction pipeline over a sample buffer.
// Analysis is a pure, synchronous computation with no shared mutable
// state; a single Analyzer may be used from multiple goroutines.
type Analyzer struct {
	config *config.AnalysisConfig
	logger logging.Logger
}

// NewAnalyzer creates an analyzer. A nil config selects the defaults.
func NewAnalyzer(cfg *config.AnalysisConfig) *Analyzer {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	return &Analyzer{
		config: cfg,
		logger: logging.WithFields(logging.Fields{
			"component":   "analyzer",
			"target_rate": cfg.TargetSampleRate,
		}),
	}
}

// Analyze downsamples the buffer to the target rate and runs the BPM,
// danceability and mood estimators in parallel over the shared immutable
// samples. The estimators recover degenerate input internally, so the
// only failure mode is an invalid buffer.
func (a *Analyzer) Analyze(buf *audio.Buffer) (*Result, error) {
	if buf == nil {
		return nil, fmt.Errorf("buffer cannot be nil")
	}
	if buf.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", buf.SampleRate)
	}

	ds := buf.Downsample(a.config.TargetSampleRate)

	a.logger.Debug("starting analysis", logging.Fields{
		"samples":     ds.Len(),
		"sample_rate": ds.SampleRate,
		"duration_s":  ds.Duration().Seconds(),
	})

	result := &Result{}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		result.BPM = estimators.NewBPMEstimator(ds.SampleRate).Estimate(ds.Samples)
	}()
	go func() {
		defer wg.Done()
		result.Danceability = estimators.NewDanceabilityEstimator(ds.SampleRate).Estimate(ds.Samples)
	}()
	go func() {
		defer wg.Done()
		result.Mood = estimators.NewMoodEstimator(ds.SampleRate).Estimate(ds.Samples)
	}()

	wg.Wait()

	a.logger.Debug("analysis completed", logging.Fields{
		"bpm":            result.BPM.BPM,
		"danceability":   result.Danceability.Score,
		"primary_mood":   result.Mood.PrimaryMood,
		"tempo_category": result.BPM.TempoCategory,
	})

	return result, nil
}
