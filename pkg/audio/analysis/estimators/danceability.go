package estimators

import (
	"github.com/groovemetrics/groovescan/pkg/audio/analysis/analyzers"
	"github.com/groovemetrics/groovescan/pkg/logging"
)

// Sub-metric combination weights
const (
	weightRhythmStrength     = 0.25
	weightBeatConsistency    = 0.25
	weightEnergyDistribution = 0.20
	weightTempoStability     = 0.15
	weightSyncopation        = 0.10
	weightGrooveFactor       = 0.05
)

// danceMetrics holds the six normalized sub-metrics
type danceMetrics struct {
	rhythmStrength     float64
	beatConsistency    float64
	energyDistribution float64
	tempoStability     float64
	syncopation        float64
	grooveFactor       float64
}

// DanceabilityResult is the combined danceability estimate
type DanceabilityResult struct {
	Score              float64  `json:"score"`
	RhythmStrength     float64  `json:"rhythmStrength"`
	BeatConsistency    float64  `json:"beatConsistency"`
	EnergyDistribution float64  `json:"energyDistribution"`
	TempoStability     float64  `json:"tempoStability"`
	Syncopation        float64  `json:"syncopation"`
	GrooveFactor       float64  `json:"grooveFactor"`
	Category           string   `json:"category"`
	Type               []string `json:"type"`
	Confidence         float64  `json:"confidence"`
}

// DanceabilityEstimator scores how suitable a track is for dancing by
// combining six weighted sub-metrics into a 0-100 score.
type DanceabilityEstimator struct {
	sampleRate int
	spectral   *analyzers.SpectralAnalyzer
	features   *FeatureExtractor
	logger     logging.Logger
}

// NewDanceabilityEstimator creates a danceability estimator for the given
// sample rate
func NewDanceabilityEstimator(sampleRate int) *DanceabilityEstimator {
	return &DanceabilityEstimator{
		sampleRate: sampleRate,
		spectral:   analyzers.NewSpectralAnalyzer(sampleRate),
		features:   NewFeatureExtractor(sampleRate),
		logger: logging.WithFields(logging.Fields{
			"component":   "danceability_estimator",
			"sample_rate": sampleRate,
		}),
	}
}

// Estimate computes the danceability of the buffer
func (e *DanceabilityEstimator) Estimate(samples []float64) *DanceabilityResult {
	frame25 := e.sampleRate * 25 / 1000
	frame100 := e.sampleRate * 100 / 1000

	rms := e.features.frameEnergies(samples, frame25, frame25, energyRMS)
	energies25 := e.features.frameEnergies(samples, frame25, frame25, energyMeanSquare)
	energies100 := e.features.frameEnergies(samples, frame100, frame100, energyMeanSquare)

	// Degenerate or silent input carries no rhythmic information
	if len(rms) == 0 || analyzers.Mean(energies25) == 0 {
		return &DanceabilityResult{
			Category: danceabilityCategory(0),
			Type:     []string{},
		}
	}

	spectra := e.spectral.Spectrogram(samples, 1024, 512)
	bands := e.features.BandEnergies(spectra)

	metrics := danceMetrics{
		rhythmStrength:     e.rhythmStrength(rms, bands),
		beatConsistency:    e.beatConsistency(samples, spectra),
		energyDistribution: e.features.EnergyDistribution(bands),
		tempoStability:     e.features.EnergyStability(energies100),
		syncopation:        e.syncopation(energies25),
		grooveFactor:       e.grooveFactor(energies25),
	}

	result := e.buildResult(metrics)

	e.logger.Debug("danceability estimation completed", logging.Fields{
		"score":    result.Score,
		"category": result.Category,
	})

	return result
}

// buildResult combines the sub-metrics into the final scored result
func (e *DanceabilityEstimator) buildResult(m danceMetrics) *DanceabilityResult {
	raw := combineDanceability(m)

	tags := make([]string, 0, 6)
	for _, t := range []struct {
		metric float64
		label  string
	}{
		{m.rhythmStrength, "Strong Rhythm"},
		{m.beatConsistency, "Consistent Beat"},
		{m.energyDistribution, "Balanced Energy"},
		{m.tempoStability, "Steady Tempo"},
		{m.syncopation, "Syncopated"},
		{m.grooveFactor, "Groovy"},
	} {
		if t.metric > 0.7 {
			tags = append(tags, t.label)
		}
	}

	return &DanceabilityResult{
		Score:              analyzers.Clamp(raw*100, 0, 100),
		RhythmStrength:     m.rhythmStrength,
		BeatConsistency:    m.beatConsistency,
		EnergyDistribution: m.energyDistribution,
		TempoStability:     m.tempoStability,
		Syncopation:        m.syncopation,
		GrooveFactor:       m.grooveFactor,
		Category:           danceabilityCategory(raw),
		Type:               tags,
		Confidence: (m.rhythmStrength + m.beatConsistency +
			m.energyDistribution + m.tempoStability) / 4,
	}
}

// combineDanceability is the weighted reduction of the six sub-metrics
// to the pre-scaled [0, 1] score
func combineDanceability(m danceMetrics) float64 {
	return weightRhythmStrength*m.rhythmStrength +
		weightBeatConsistency*m.beatConsistency +
		weightEnergyDistribution*m.energyDistribution +
		weightTempoStability*m.tempoStability +
		weightSyncopation*m.syncopation +
		weightGrooveFactor*m.grooveFactor
}

// rhythmStrength averages the normalized variance of the RMS energy
// envelope with the average low-band spectral energy
func (e *DanceabilityEstimator) rhythmStrength(rms []float64, bands BandLevels) float64 {
	mean := analyzers.Mean(rms)

	envelope := 0.0
	if mean > 0 {
		envelope = analyzers.Clamp01(analyzers.Variance(rms) / (mean * mean))
	}

	lowBand := analyzers.Clamp01(bands.LowMean)

	return (envelope + lowBand) / 2
}

// beatConsistency blends inverse signal complexity with brightness
func (e *DanceabilityEstimator) beatConsistency(samples []float64, spectra [][]float64) float64 {
	zcr := e.features.ZeroCrossingRate(samples)
	centroid := e.features.SpectralCentroid(spectra, 1024)
	rolloff := e.features.SpectralRolloff(spectra, 1024)

	return analyzers.Clamp01(0.4*(1-zcr) + 0.3*(centroid/5000) + 0.3*(rolloff/8000))
}

// syncopation counts consecutive frame pairs with an energy jump above
// 1.5x, each contributing a fixed 0.1 increment normalized by frame count
func (e *DanceabilityEstimator) syncopation(energies []float64) float64 {
	if len(energies) < 2 {
		return 0
	}

	acc := 0.0
	for i := 1; i < len(energies); i++ {
		if energies[i] > 1.5*energies[i-1] {
			acc += 0.1
		}
	}

	return analyzers.Clamp01(acc / float64(len(energies)))
}

// grooveFactor is the mean saturated frame energy, a rhythmic-pattern proxy
func (e *DanceabilityEstimator) grooveFactor(energies []float64) float64 {
	if len(energies) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range energies {
		sum += min(1, v*10)
	}

	return sum / float64(len(energies))
}

// danceabilityCategory maps the pre-scaled [0, 1] score to its label
func danceabilityCategory(raw float64) string {
	switch {
	case raw > 0.8:
		return "Very Danceable"
	case raw > 0.6:
		return "Danceable"
	case raw > 0.4:
		return "Moderately Danceable"
	case raw > 0.2:
		return "Slightly Danceable"
	default:
		return "Not Danceable"
	}
}
