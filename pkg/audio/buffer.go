package audio

import (
	"fmt"
	"time"
)

// Buffer holds an immutable mono sample sequence with its sample rate.
// Samples are float64 values in [-1, 1]. A Buffer is owned by the pipeline
// invocation that created it and is never mutated after construction.
type Buffer struct {
	Samples    []float64 `json:"-"`
	SampleRate int       `json:"sample_rate"`
}

// NewBuffer creates a buffer from decoded mono samples
func NewBuffer(samples []float64, sampleRate int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	return &Buffer{
		Samples:    samples,
		SampleRate: sampleRate,
	}, nil
}

// Len returns the number of samples
func (b *Buffer) Len() int {
	return len(b.Samples)
}

// Duration returns the buffer duration at its sample rate
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(b.Samples)) / float64(b.SampleRate) * float64(time.Second))
}

// Downsample decimates the buffer to the target rate by nearest-index
// selection. If the buffer is already at or below the target rate the
// original buffer is returned unchanged.
func (b *Buffer) Downsample(targetRate int) *Buffer {
	if targetRate <= 0 || b.SampleRate <= targetRate || len(b.Samples) == 0 {
		return b
	}

	ratio := float64(b.SampleRate) / float64(targetRate)
	outLen := int(float64(len(b.Samples)) / ratio)
	out := make([]float64, outLen)

	for i := 0; i < outLen; i++ {
		src := int(float64(i) * ratio)
		if src >= len(b.Samples) {
			src = len(b.Samples) - 1
		}
		out[i] = b.Samples[src]
	}

	return &Buffer{
		Samples:    out,
		SampleRate: targetRate,
	}
}
