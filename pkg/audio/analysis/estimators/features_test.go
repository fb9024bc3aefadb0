package estimators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameEnergies(t *testing.T) {
	fe := NewFeatureExtractor(11025)
	samples := []float64{1, 1, 1, 1}

	assert.Equal(t, []float64{1, 1}, fe.frameEnergies(samples, 2, 2, energyMeanSquare))
	assert.Equal(t, []float64{1, 1}, fe.frameEnergies(samples, 2, 2, energyRMS))
	assert.Equal(t, []float64{2, 2}, fe.frameEnergies(samples, 2, 2, energySumSquare))
	assert.Nil(t, fe.frameEnergies(samples, 8, 4, energyRMS), "buffer shorter than one frame")
}

func TestZeroCrossingRate(t *testing.T) {
	fe := NewFeatureExtractor(8000)

	// A 100 Hz sine crosses zero 200 times per second
	samples := makeSine(8000, 1, 100, 1.0)
	zcr := fe.ZeroCrossingRate(samples)
	assert.InDelta(t, 0.05, zcr, 0.015)

	assert.Equal(t, 0.0, fe.ZeroCrossingRate(make([]float64, 4000)), "silence never crosses")
	assert.Equal(t, 0.0, fe.ZeroCrossingRate([]float64{1}))
}

func TestZeroCrossingRateStableAcrossRuns(t *testing.T) {
	fe := NewFeatureExtractor(11025)
	samples := makeSine(11025, 2, 440, 0.7)

	first := fe.ZeroCrossingRate(samples)
	second := fe.ZeroCrossingRate(samples)

	assert.Equal(t, first, second, "no hidden randomness")
}

func TestSpectralCentroidSingleBin(t *testing.T) {
	fe := NewFeatureExtractor(11025)

	spectra := [][]float64{{0, 0, 1, 0}}
	centroid := fe.SpectralCentroid(spectra, 8)

	assert.InDelta(t, 2*11025.0/8, centroid, 1e-9)
	assert.Equal(t, 0.0, fe.SpectralCentroid(nil, 8))
	assert.Equal(t, 0.0, fe.SpectralCentroid([][]float64{{0, 0, 0}}, 8), "zero magnitude sum")
}

func TestSpectralRolloff(t *testing.T) {
	fe := NewFeatureExtractor(11025)

	// Uniform magnitudes reach 85% cumulative at the fourth of four bins
	spectra := [][]float64{{1, 1, 1, 1}}
	rolloff := fe.SpectralRolloff(spectra, 8)

	assert.InDelta(t, 3*11025.0/8, rolloff, 1e-9)
	assert.Equal(t, 0.0, fe.SpectralRolloff([][]float64{{0, 0}}, 8))
}

func TestBandEnergies(t *testing.T) {
	fe := NewFeatureExtractor(11025)

	levels := fe.BandEnergies([][]float64{{1, 2, 3, 4, 5, 6, 7, 8, 9}})

	require.Equal(t, 6.0, levels.LowTotal)
	assert.Equal(t, 15.0, levels.MidTotal)
	assert.Equal(t, 24.0, levels.HighTotal)
	assert.Equal(t, 45.0, levels.Total)
	assert.InDelta(t, 2.0, levels.LowMean, 1e-9)

	assert.InDelta(t, 0.6, fe.EnergyDistribution(levels), 1e-9)
	assert.Equal(t, 0.0, fe.EnergyDistribution(BandLevels{}), "silence is not balanced")
}

func TestEnergyStability(t *testing.T) {
	fe := NewFeatureExtractor(11025)

	assert.Equal(t, 1.0, fe.EnergyStability([]float64{2, 2, 2, 2}), "constant energy is fully stable")
	assert.Equal(t, 0.0, fe.EnergyStability(nil))
	assert.Equal(t, 0.0, fe.EnergyStability([]float64{0, 0, 0}), "zero mean guards to zero")

	wild := fe.EnergyStability([]float64{0.1, 5, 0.1, 5})
	assert.GreaterOrEqual(t, wild, 0.0)
	assert.Less(t, wild, 1.0)
}
