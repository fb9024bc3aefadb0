package analyzers

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of the signal, 0 for an empty signal
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return stat.Mean(signal, nil)
}

// Variance returns the population variance of the signal
func Variance(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return stat.PopVariance(signal, nil)
}

// StdDev returns the population standard deviation of the signal
func StdDev(signal []float64) float64 {
	return math.Sqrt(Variance(signal))
}

// Median returns the median of the signal without modifying it
func Median(signal []float64) float64 {
	n := len(signal)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, signal)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// MedianFilter smooths the signal with a centered running median of the
// given window size. Edges use the available portion of the window.
func MedianFilter(signal []float64, window int) []float64 {
	if len(signal) == 0 || window <= 1 {
		return signal
	}

	half := window / 2
	out := make([]float64, len(signal))
	scratch := make([]float64, 0, window)

	for i := range signal {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > len(signal) {
			hi = len(signal)
		}

		scratch = scratch[:0]
		scratch = append(scratch, signal[lo:hi]...)
		sort.Float64s(scratch)
		out[i] = scratch[len(scratch)/2]
	}

	return out
}

// Clamp01 clamps v to the unit interval
func Clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp clamps v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
