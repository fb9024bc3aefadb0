package estimators

import (
	"strings"

	"github.com/groovemetrics/groovescan/pkg/audio/analysis/analyzers"
	"github.com/groovemetrics/groovescan/pkg/logging"
)

// MoodCategory is one entry of the detailed per-category breakdown
type MoodCategory struct {
	Category    string `json:"category"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

// MoodResult is the rule-based mood classification
type MoodResult struct {
	PrimaryMood      string         `json:"primaryMood"`
	SecondaryMood    string         `json:"secondaryMood"`
	SongType         string         `json:"songType"`
	Emoji            string         `json:"emoji"`
	Confidence       float64        `json:"confidence"`
	MoodExplanation  string         `json:"moodExplanation"`
	DetailedAnalysis []MoodCategory `json:"detailedAnalysis"`
}

// moodRule is one boolean trigger of the classifier. Rules are evaluated
// in declaration order; the order decides primary/secondary assignment.
type moodRule struct {
	name        string
	emoji       string
	increment   float64
	explanation string
	triggered   func(f moodFeatures) bool
}

// moodFeatures are the scalar inputs the rules evaluate
type moodFeatures struct {
	centroid           float64
	zeroCrossingRate   float64
	energyDistribution float64
	rolloff            float64
	tempoInfluence     float64
	meanEnergy         float64
}

var moodRules = []moodRule{
	{
		name:        "Happy",
		emoji:       "😊",
		increment:   0.25,
		explanation: "bright tonal balance with evenly distributed energy",
		triggered: func(f moodFeatures) bool {
			return f.centroid > 1500 && f.energyDistribution > 0.6
		},
	},
	{
		name:        "Sad",
		emoji:       "😢",
		increment:   0.25,
		explanation: "dark timbre concentrated in the low register",
		triggered: func(f moodFeatures) bool {
			return f.centroid < 800 && f.energyDistribution < 0.4
		},
	},
	{
		name:        "Relaxed",
		emoji:       "😌",
		increment:   0.2,
		explanation: "smooth, low-complexity signal with gentle dynamics",
		triggered: func(f moodFeatures) bool {
			return f.zeroCrossingRate < 0.05 && f.energyDistribution < 0.5
		},
	},
	{
		name:        "Aggressive",
		emoji:       "🔥",
		increment:   0.2,
		explanation: "high signal complexity with strong high-frequency content",
		triggered: func(f moodFeatures) bool {
			return f.zeroCrossingRate > 0.1 && f.rolloff > 3000
		},
	},
}

// MoodEstimator classifies the emotional character of a track with a
// rule table over spectral and temporal features.
type MoodEstimator struct {
	sampleRate int
	spectral   *analyzers.SpectralAnalyzer
	features   *FeatureExtractor
	logger     logging.Logger
}

// NewMoodEstimator creates a mood estimator for the given sample rate
func NewMoodEstimator(sampleRate int) *MoodEstimator {
	return &MoodEstimator{
		sampleRate: sampleRate,
		spectral:   analyzers.NewSpectralAnalyzer(sampleRate),
		features:   NewFeatureExtractor(sampleRate),
		logger: logging.WithFields(logging.Fields{
			"component":   "mood_estimator",
			"sample_rate": sampleRate,
		}),
	}
}

// Estimate classifies the mood of the buffer
func (e *MoodEstimator) Estimate(samples []float64) *MoodResult {
	frame100 := e.sampleRate * 100 / 1000
	energies100 := e.features.frameEnergies(samples, frame100, frame100, energyMeanSquare)

	// Silent or degenerate input triggers low-register rules spuriously,
	// so it is classified as neutral up front.
	if len(energies100) == 0 || analyzers.Mean(energies100) == 0 {
		return e.neutralResult(moodFeatures{})
	}

	spectra := e.spectral.Spectrogram(samples, 1024, 512)
	bands := e.features.BandEnergies(spectra)

	f := moodFeatures{
		centroid:           e.features.SpectralCentroid(spectra, 1024),
		zeroCrossingRate:   e.features.ZeroCrossingRate(samples),
		energyDistribution: e.features.EnergyDistribution(bands),
		rolloff:            e.features.SpectralRolloff(spectra, 1024),
		tempoInfluence:     e.features.EnergyStability(energies100),
		meanEnergy:         analyzers.Mean(energies100),
	}

	var triggered []moodRule
	confidence := 0.0
	for _, rule := range moodRules {
		if rule.triggered(f) {
			triggered = append(triggered, rule)
			confidence += rule.increment
		}
	}
	confidence = analyzers.Clamp01(confidence)

	if len(triggered) == 0 {
		return e.neutralResult(f)
	}

	primary := triggered[0]
	secondary := "Balanced"
	if len(triggered) > 1 {
		secondary = triggered[1].name
	}

	explanations := make([]string, len(triggered))
	for i, rule := range triggered {
		explanations[i] = rule.explanation
	}

	result := &MoodResult{
		PrimaryMood:      primary.name,
		SecondaryMood:    secondary,
		SongType:         songType(primary.name, f),
		Emoji:            primary.emoji,
		Confidence:       confidence,
		MoodExplanation:  strings.Join(explanations, "; "),
		DetailedAnalysis: e.detailedAnalysis(f, triggered),
	}

	e.logger.Debug("mood estimation completed", logging.Fields{
		"primary":    result.PrimaryMood,
		"secondary":  result.SecondaryMood,
		"confidence": result.Confidence,
	})

	return result
}

// neutralResult is returned when no rule triggers or the input is silent
func (e *MoodEstimator) neutralResult(f moodFeatures) *MoodResult {
	return &MoodResult{
		PrimaryMood:      "Neutral",
		SecondaryMood:    "Balanced",
		SongType:         songType("Neutral", f),
		Emoji:            "😐",
		Confidence:       0,
		MoodExplanation:  "no dominant mood indicators; tonal balance is neutral",
		DetailedAnalysis: e.detailedAnalysis(f, nil),
	}
}

// detailedAnalysis always emits all seven category entries: the four
// boolean rules plus the three continuous scores.
func (e *MoodEstimator) detailedAnalysis(f moodFeatures, triggered []moodRule) []MoodCategory {
	active := make(map[string]bool, len(triggered))
	for _, rule := range triggered {
		active[rule.name] = true
	}

	entries := make([]MoodCategory, 0, len(moodRules)+3)
	for _, rule := range moodRules {
		level := "Low"
		if active[rule.name] {
			level = "High"
		}
		entries = append(entries, MoodCategory{
			Category:    rule.name,
			Level:       level,
			Description: rule.explanation,
		})
	}

	for _, c := range []struct {
		name        string
		score       float64
		description string
	}{
		{"Danceability", analyzers.Clamp01(0.6*f.energyDistribution + 0.4*f.tempoInfluence), "how suitable the track is for dancing"},
		{"Engagement", analyzers.Clamp01(f.meanEnergy * 10), "how much the track demands attention"},
		{"Approachability", analyzers.Clamp01(1 - f.zeroCrossingRate*5), "how easy the track is on first listen"},
	} {
		entries = append(entries, MoodCategory{
			Category:    c.name,
			Level:       continuousLevel(c.score),
			Description: c.description,
		})
	}

	return entries
}

// continuousLevel maps a [0, 1] score to a three-level tag
func continuousLevel(score float64) string {
	switch {
	case score >= 0.66:
		return "High"
	case score >= 0.33:
		return "Medium"
	default:
		return "Low"
	}
}

// songType derives a coarse track description from the primary mood
func songType(primary string, f moodFeatures) string {
	switch primary {
	case "Happy":
		if f.tempoInfluence > 0.5 {
			return "Upbeat Dance Track"
		}
		return "Feel-Good Track"
	case "Sad":
		return "Melancholic Ballad"
	case "Relaxed":
		return "Ambient / Chill"
	case "Aggressive":
		return "High-Energy Track"
	default:
		return "Balanced Composition"
	}
}
