package analyzers

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/groovemetrics/groovescan/pkg/logging"
)

// SpectralAnalyzer provides magnitude spectra and spectral change analysis
type SpectralAnalyzer struct {
	windowGenerator *WindowGenerator
	sampleRate      int
	logger          logging.Logger
}

// NewSpectralAnalyzer creates a new spectral analyzer
func NewSpectralAnalyzer(sampleRate int) *SpectralAnalyzer {
	return &SpectralAnalyzer{
		windowGenerator: NewWindowGenerator(),
		sampleRate:      sampleRate,
		logger: logging.WithFields(logging.Fields{
			"component":   "spectral_analyzer",
			"sample_rate": sampleRate,
		}),
	}
}

// MagnitudeSpectrum computes the one-sided magnitude spectrum of a frame.
// The result has len(frame)/2 bins; bin k corresponds to frequency
// k * sampleRate / len(frame).
func (sa *SpectralAnalyzer) MagnitudeSpectrum(frame []float64) []float64 {
	if len(frame) < 2 {
		return nil
	}

	spectrum := fft.FFTReal(frame)

	bins := len(frame) / 2
	magnitude := make([]float64, bins)
	for k := 0; k < bins; k++ {
		magnitude[k] = cmplx.Abs(spectrum[k])
	}

	return magnitude
}

// Spectrogram computes Hamming-windowed magnitude spectra for every frame
// of the signal at the given frame and hop sizes.
func (sa *SpectralAnalyzer) Spectrogram(samples []float64, frameSize, hopSize int) [][]float64 {
	window := sa.windowGenerator.Generate(WindowHamming, frameSize)

	framer, err := NewFramer(samples, frameSize, hopSize, window)
	if err != nil {
		sa.logger.Error(err, "invalid framing parameters", logging.Fields{
			"frame_size": frameSize,
			"hop_size":   hopSize,
		})
		return nil
	}

	count := framer.Count()
	if count == 0 {
		return nil
	}

	spectra := make([][]float64, count)
	var frame []float64
	for t := 0; t < count; t++ {
		frame = framer.At(t, frame)
		spectra[t] = sa.MagnitudeSpectrum(frame)
	}

	return spectra
}

// SpectralFlux computes the positive spectral difference between
// consecutive frames: sum of max(0, S[t][k] - S[t-1][k]) over bins.
func (sa *SpectralAnalyzer) SpectralFlux(spectra [][]float64) []float64 {
	if len(spectra) < 2 {
		return nil
	}

	flux := make([]float64, len(spectra)-1)
	for t := 1; t < len(spectra); t++ {
		sum := 0.0
		for k := range spectra[t] {
			diff := spectra[t][k] - spectra[t-1][k]
			if diff > 0 { // only energy increases
				sum += diff
			}
		}
		flux[t-1] = sum
	}

	return flux
}

// BinFrequency returns the center frequency of a spectrum bin for the
// given frame size.
func (sa *SpectralAnalyzer) BinFrequency(bin, frameSize int) float64 {
	if frameSize <= 0 {
		return 0
	}
	return float64(bin) * float64(sa.sampleRate) / float64(frameSize)
}
