package analyzers

import "math"

// WindowType represents different window functions
type WindowType int

const (
	WindowHamming WindowType = iota
	WindowHann
	WindowBlackman
	WindowRectangular
)

// WindowGenerator generates and caches window function coefficients
type WindowGenerator struct {
	cache map[windowKey][]float64
}

type windowKey struct {
	windowType WindowType
	size       int
}

// NewWindowGenerator creates a new window generator
func NewWindowGenerator() *WindowGenerator {
	return &WindowGenerator{
		cache: make(map[windowKey][]float64),
	}
}

// Generate returns the coefficients for the given window type and size
func (wg *WindowGenerator) Generate(windowType WindowType, size int) []float64 {
	if size <= 0 {
		return nil
	}

	key := windowKey{windowType: windowType, size: size}
	if coeffs, ok := wg.cache[key]; ok {
		return coeffs
	}

	coeffs := make([]float64, size)
	if size == 1 {
		coeffs[0] = 1.0
		wg.cache[key] = coeffs
		return coeffs
	}

	n := float64(size - 1)
	for i := 0; i < size; i++ {
		x := float64(i)
		switch windowType {
		case WindowHamming:
			coeffs[i] = 0.54 - 0.46*math.Cos(2*math.Pi*x/n)
		case WindowHann:
			coeffs[i] = 0.5 * (1 - math.Cos(2*math.Pi*x/n))
		case WindowBlackman:
			coeffs[i] = 0.42 - 0.5*math.Cos(2*math.Pi*x/n) + 0.08*math.Cos(4*math.Pi*x/n)
		case WindowRectangular:
			coeffs[i] = 1.0
		}
	}

	wg.cache[key] = coeffs
	return coeffs
}

// Apply multiplies the frame by the window coefficients in place.
// The frame and window must have the same length.
func (wg *WindowGenerator) Apply(frame, window []float64) {
	if len(frame) != len(window) {
		return
	}
	for i := range frame {
		frame[i] *= window[i]
	}
}
