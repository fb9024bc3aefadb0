package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFindsPlantedPeaks(t *testing.T) {
	// Flat baseline with isolated peaks well above 5 sigma
	signal := make([]float64, 100)
	planted := []int{20, 50, 80}
	for _, idx := range planted {
		signal[idx] = 10.0
	}

	peaks := NewPeakDetector().Detect(signal)

	assert.Equal(t, planted, peaks)
}

func TestDetectConstantSignal(t *testing.T) {
	signal := make([]float64, 50)
	for i := range signal {
		signal[i] = 3.0
	}

	pd := NewPeakDetector()

	assert.Empty(t, pd.Detect(signal), "zero-variance signal must yield no peaks")
	assert.Empty(t, pd.DetectFast(signal), "constant signal beats no neighbors")
}

func TestDetectRejectsShallowRipples(t *testing.T) {
	// A small ripple riding next to a dominant peak should not qualify
	signal := make([]float64, 60)
	signal[30] = 10.0
	signal[32] = 0.1

	peaks := NewPeakDetector().Detect(signal)

	assert.Equal(t, []int{30}, peaks)
}

func TestDetectFast(t *testing.T) {
	signal := []float64{0, 1, 0, 0, 5, 0, 0, 3, 0}

	peaks := NewPeakDetector().DetectFast(signal)

	// 1 is below 30% of the max (1.5), 5 and 3 qualify
	assert.Equal(t, []int{4, 7}, peaks)
}

func TestDetectFastAllNonPositive(t *testing.T) {
	signal := []float64{-1, -2, -1, -3, -1}

	assert.Empty(t, NewPeakDetector().DetectFast(signal))
}

func TestDetectShortSignal(t *testing.T) {
	pd := NewPeakDetector()

	assert.Empty(t, pd.Detect([]float64{1, 2}))
	assert.Empty(t, pd.DetectFast(nil))
}
