package analyzers

import "fmt"

// Framer slices a sample sequence into overlapping fixed-size frames at
// offsets 0, H, 2H, ... while offset+N <= len(samples). Frames are views
// materialized on demand, so iteration is restartable by construction.
type Framer struct {
	samples   []float64
	frameSize int
	hopSize   int
	window    []float64
}

// NewFramer creates a framer. A non-nil window is applied to every frame;
// pass nil for time-domain statistics that must see raw samples.
func NewFramer(samples []float64, frameSize, hopSize int, window []float64) (*Framer, error) {
	if frameSize <= 0 {
		return nil, fmt.Errorf("frame size must be positive, got %d", frameSize)
	}
	if hopSize <= 0 || hopSize > frameSize {
		return nil, fmt.Errorf("hop size must be in [1, frame size], got %d", hopSize)
	}
	if window != nil && len(window) != frameSize {
		return nil, fmt.Errorf("window length %d does not match frame size %d", len(window), frameSize)
	}
	return &Framer{
		samples:   samples,
		frameSize: frameSize,
		hopSize:   hopSize,
		window:    window,
	}, nil
}

// Count returns the number of complete frames
func (f *Framer) Count() int {
	if len(f.samples) < f.frameSize {
		return 0
	}
	return (len(f.samples)-f.frameSize)/f.hopSize + 1
}

// At returns frame i. When dst has sufficient capacity it is reused,
// otherwise a new slice is allocated.
func (f *Framer) At(i int, dst []float64) []float64 {
	if i < 0 || i >= f.Count() {
		return nil
	}

	if cap(dst) >= f.frameSize {
		dst = dst[:f.frameSize]
	} else {
		dst = make([]float64, f.frameSize)
	}

	offset := i * f.hopSize
	copy(dst, f.samples[offset:offset+f.frameSize])

	if f.window != nil {
		for j := range dst {
			dst[j] *= f.window[j]
		}
	}

	return dst
}
