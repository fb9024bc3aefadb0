package estimators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodSilence(t *testing.T) {
	samples := make([]float64, 5*11025)

	result := NewMoodEstimator(11025).Estimate(samples)

	assert.Equal(t, "Neutral", result.PrimaryMood)
	assert.Equal(t, "Balanced", result.SecondaryMood)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, "😐", result.Emoji)
	assert.Len(t, result.DetailedAnalysis, 7)
}

func TestMoodBrightToneIsHappy(t *testing.T) {
	// High centroid with energy concentrated mid-spectrum keeps the
	// low/high bands balanced
	samples := makeSine(11025, 30, 3200, 0.8)

	result := NewMoodEstimator(11025).Estimate(samples)

	assert.Equal(t, "Happy", result.PrimaryMood)
	assert.GreaterOrEqual(t, result.Confidence, 0.25)
	assert.Equal(t, "😊", result.Emoji)
	assert.NotEmpty(t, result.MoodExplanation)
	assert.Len(t, result.DetailedAnalysis, 7)
}

func TestMoodLowToneIsSad(t *testing.T) {
	samples := makeSine(11025, 10, 200, 0.8)

	result := NewMoodEstimator(11025).Estimate(samples)

	assert.Equal(t, "Sad", result.PrimaryMood)
	assert.GreaterOrEqual(t, result.Confidence, 0.25)
}

func TestMoodDetailedAnalysisLevels(t *testing.T) {
	samples := makeSine(11025, 10, 3200, 0.8)

	result := NewMoodEstimator(11025).Estimate(samples)

	require.Len(t, result.DetailedAnalysis, 7)

	categories := make([]string, len(result.DetailedAnalysis))
	for i, entry := range result.DetailedAnalysis {
		categories[i] = entry.Category
		assert.Contains(t, []string{"High", "Medium", "Low"}, entry.Level)
		assert.NotEmpty(t, entry.Description)
	}

	assert.Equal(t, []string{
		"Happy", "Sad", "Relaxed", "Aggressive",
		"Danceability", "Engagement", "Approachability",
	}, categories)
}

func TestMoodRules(t *testing.T) {
	cases := []struct {
		name      string
		features  moodFeatures
		triggered bool
	}{
		{"Happy", moodFeatures{centroid: 2000, energyDistribution: 0.7}, true},
		{"Happy", moodFeatures{centroid: 1000, energyDistribution: 0.7}, false},
		{"Sad", moodFeatures{centroid: 500, energyDistribution: 0.2}, true},
		{"Sad", moodFeatures{centroid: 500, energyDistribution: 0.6}, false},
		{"Relaxed", moodFeatures{zeroCrossingRate: 0.01, energyDistribution: 0.3}, true},
		{"Relaxed", moodFeatures{zeroCrossingRate: 0.2, energyDistribution: 0.3}, false},
		{"Aggressive", moodFeatures{zeroCrossingRate: 0.3, rolloff: 4000}, true},
		{"Aggressive", moodFeatures{zeroCrossingRate: 0.3, rolloff: 1000}, false},
	}

	rulesByName := make(map[string]moodRule)
	for _, rule := range moodRules {
		rulesByName[rule.name] = rule
	}

	for _, tc := range cases {
		assert.Equal(t, tc.triggered, rulesByName[tc.name].triggered(tc.features),
			"%s with %+v", tc.name, tc.features)
	}
}

func TestContinuousLevel(t *testing.T) {
	assert.Equal(t, "High", continuousLevel(0.8))
	assert.Equal(t, "Medium", continuousLevel(0.5))
	assert.Equal(t, "Low", continuousLevel(0.1))
}

func TestSongType(t *testing.T) {
	assert.Equal(t, "Melancholic Ballad", songType("Sad", moodFeatures{}))
	assert.Equal(t, "Balanced Composition", songType("Neutral", moodFeatures{}))
	assert.Equal(t, "Upbeat Dance Track", songType("Happy", moodFeatures{tempoInfluence: 0.9}))
	assert.Equal(t, "Feel-Good Track", songType("Happy", moodFeatures{tempoInfluence: 0.1}))
}
