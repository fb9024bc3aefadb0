package analyzers

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PeakDetector identifies statistically significant local maxima in a
// 1-D signal. Two variants are provided: Detect applies an adaptive
// threshold plus a prominence test, DetectFast is a cheaper, less
// selective check for call-sites that tolerate more false positives.
type PeakDetector struct {
	// ThresholdFactor scales the standard deviation added to the mean
	// for the adaptive threshold.
	ThresholdFactor float64
	// ProminenceFactor scales the standard deviation a peak must rise
	// above its surrounding minima.
	ProminenceFactor float64
	// ProminenceSpan is the number of samples inspected on each side
	// when computing prominence.
	ProminenceSpan int
	// FastRatio is the fraction of the signal maximum a sample must
	// exceed in the fast variant.
	FastRatio float64
}

// NewPeakDetector creates a peak detector with the default selectivity
func NewPeakDetector() *PeakDetector {
	return &PeakDetector{
		ThresholdFactor:  1.2,
		ProminenceFactor: 0.5,
		ProminenceSpan:   5,
		FastRatio:        0.3,
	}
}

// Detect returns ascending indices of samples that exceed mean + 1.2*stddev,
// are strictly greater than both neighbors, and have prominence above
// 0.5*stddev. Prominence is the sample value minus the higher of the minima
// of the preceding and following ProminenceSpan samples.
func (pd *PeakDetector) Detect(signal []float64) []int {
	if len(signal) < 3 {
		return nil
	}

	mean := stat.Mean(signal, nil)
	stddev := math.Sqrt(stat.PopVariance(signal, nil))
	if stddev == 0 {
		return nil
	}

	threshold := mean + pd.ThresholdFactor*stddev
	minProminence := pd.ProminenceFactor * stddev

	var peaks []int
	for i := 1; i < len(signal)-1; i++ {
		v := signal[i]
		if v <= threshold || v <= signal[i-1] || v <= signal[i+1] {
			continue
		}

		before := minInRange(signal, i-pd.ProminenceSpan, i)
		after := minInRange(signal, i+1, i+1+pd.ProminenceSpan)

		prominence := v - math.Max(before, after)
		if prominence > minProminence {
			peaks = append(peaks, i)
		}
	}

	return peaks
}

// DetectFast returns ascending indices of samples exceeding FastRatio of
// the signal maximum that beat their immediate neighbors.
func (pd *PeakDetector) DetectFast(signal []float64) []int {
	if len(signal) < 3 {
		return nil
	}

	maxVal := signal[0]
	for _, v := range signal {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return nil
	}

	threshold := pd.FastRatio * maxVal

	var peaks []int
	for i := 1; i < len(signal)-1; i++ {
		v := signal[i]
		if v > threshold && v > signal[i-1] && v > signal[i+1] {
			peaks = append(peaks, i)
		}
	}

	return peaks
}

// minInRange returns the minimum of signal[lo:hi] clamped to valid bounds
func minInRange(signal []float64, lo, hi int) float64 {
	if lo < 0 {
		lo = 0
	}
	if hi > len(signal) {
		hi = len(signal)
	}
	if lo >= hi {
		return 0
	}

	m := signal[lo]
	for i := lo + 1; i < hi; i++ {
		if signal[i] < m {
			m = signal[i]
		}
	}
	return m
}
