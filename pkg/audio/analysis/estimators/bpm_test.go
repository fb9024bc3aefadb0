package estimators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makePulseTrain synthesizes a buffer with a Hann-enveloped energy pulse
// every periodSec seconds, the shape of a strongly percussive track.
func makePulseTrain(sampleRate int, durationSec, periodSec, pulseSec float64) []float64 {
	samples := make([]float64, int(durationSec*float64(sampleRate)))
	pulseLen := int(pulseSec * float64(sampleRate))
	period := periodSec * float64(sampleRate)

	for start := 0.0; int(start)+pulseLen < len(samples); start += period {
		offset := int(start)
		for i := 0; i < pulseLen; i++ {
			samples[offset+i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(pulseLen-1)))
		}
	}

	return samples
}

// makeSine synthesizes a pure tone
func makeSine(sampleRate int, durationSec, freq, amplitude float64) []float64 {
	samples := make([]float64, int(durationSec*float64(sampleRate)))
	for i := range samples {
		samples[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return samples
}

func TestEstimateSilence(t *testing.T) {
	samples := make([]float64, 5*11025)

	result := NewBPMEstimator(11025).Estimate(samples)

	assert.Equal(t, 120, result.BPM)
	assert.Equal(t, 0.0, result.Confidence)

	for _, est := range []MethodEstimate{
		result.Methods.Autocorrelation,
		result.Methods.SpectralFlux,
		result.Methods.Onset,
		result.Methods.Histogram,
	} {
		assert.Equal(t, defaultBPM, est.BPM)
		assert.Equal(t, 0.0, est.Confidence)
	}
}

func TestEstimateTooShort(t *testing.T) {
	result := NewBPMEstimator(11025).Estimate(make([]float64, 100))

	assert.Equal(t, 120, result.BPM)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestEnergyOnsetPulseTrain(t *testing.T) {
	// 0.5s pulse period corresponds to 120 BPM
	samples := makePulseTrain(11025, 10, 0.5, 0.1)

	est := NewBPMEstimator(11025).estimateEnergyOnset(samples)

	assert.InDelta(t, 120, est.BPM, 5)
	assert.Greater(t, est.Confidence, 0.0)
	assert.LessOrEqual(t, est.Confidence, 1.0)
}

func TestEstimatePulseTrainRanges(t *testing.T) {
	samples := makePulseTrain(11025, 5, 0.5, 0.1)

	result := NewBPMEstimator(11025).Estimate(samples)

	assert.GreaterOrEqual(t, result.BPM, 60)
	assert.LessOrEqual(t, result.BPM, 200)
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
	assert.NotEmpty(t, result.TempoCategory)

	for _, est := range []MethodEstimate{
		result.Methods.Autocorrelation,
		result.Methods.SpectralFlux,
		result.Methods.Onset,
		result.Methods.Histogram,
	} {
		valid := (est.BPM >= minBPM && est.BPM <= maxBPM) || est.BPM == defaultBPM
		assert.True(t, valid, "method BPM %f outside valid range", est.BPM)
		assert.GreaterOrEqual(t, est.Confidence, 0.0)
		assert.LessOrEqual(t, est.Confidence, 1.0)
	}
}

func TestCombineEstimates(t *testing.T) {
	t.Run("all methods empty", func(t *testing.T) {
		bpm, conf := combineEstimates(MethodBreakdown{
			Autocorrelation: MethodEstimate{BPM: defaultBPM},
			SpectralFlux:    MethodEstimate{BPM: defaultBPM},
			Onset:           MethodEstimate{BPM: defaultBPM},
			Histogram:       MethodEstimate{BPM: defaultBPM},
		})

		assert.Equal(t, defaultBPM, bpm)
		assert.Equal(t, 0.0, conf)
	})

	t.Run("single confident method", func(t *testing.T) {
		bpm, conf := combineEstimates(MethodBreakdown{
			Autocorrelation: MethodEstimate{BPM: 100, Confidence: 1},
			SpectralFlux:    MethodEstimate{BPM: defaultBPM},
			Onset:           MethodEstimate{BPM: defaultBPM},
			Histogram:       MethodEstimate{BPM: defaultBPM},
		})

		assert.InDelta(t, 100, bpm, 1e-9)
		assert.InDelta(t, weightAutocorrelation, conf, 1e-9)
	})

	t.Run("agreement boosts nothing beyond one", func(t *testing.T) {
		_, conf := combineEstimates(MethodBreakdown{
			Autocorrelation: MethodEstimate{BPM: 128, Confidence: 1},
			SpectralFlux:    MethodEstimate{BPM: 128, Confidence: 1},
			Onset:           MethodEstimate{BPM: 128, Confidence: 1},
			Histogram:       MethodEstimate{BPM: 128, Confidence: 1},
		})

		assert.InDelta(t, 1.0, conf, 1e-9)
	})
}

func TestTempoCandidates(t *testing.T) {
	e := NewBPMEstimator(11025)

	// 50 hops of 110 samples is roughly a 0.5s beat interval
	candidates := e.tempoCandidates([]int{0, 50, 100}, 110)

	require.Len(t, candidates, 2)
	assert.InDelta(t, 120.3, candidates[0], 0.1)

	// Intervals implying tempi outside [60, 200] are discarded, not clamped
	assert.Empty(t, e.tempoCandidates([]int{0, 2}, 110))
	assert.Empty(t, e.tempoCandidates([]int{0, 500}, 110))
}

func TestHistogramMode(t *testing.T) {
	mode, count := histogramMode([]float64{119.6, 120.2, 120.4, 90.0})

	assert.Equal(t, 120.0, mode)
	assert.Equal(t, 3, count)
}

func TestTempoCategory(t *testing.T) {
	cases := []struct {
		bpm      float64
		expected string
	}{
		{40, "Larghissimo"},
		{62, "Largo"},
		{70, "Adagio"},
		{90, "Andante"},
		{110, "Moderato"},
		{128, "Allegro"},
		{180, "Presto"},
		{220, "Prestissimo"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, tempoCategory(tc.bpm), "bpm %f", tc.bpm)
	}
}
