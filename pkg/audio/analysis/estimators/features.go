package estimators

import (
	"math"

	"github.com/groovemetrics/groovescan/pkg/audio/analysis/analyzers"
)

// zcrTargetComparisons is the rough number of consecutive-point
// comparisons the zero-crossing rate uses regardless of buffer length.
const zcrTargetComparisons = 4000

// FeatureExtractor computes per-frame scalar features shared by the
// estimators. Spectral features operate on precomputed magnitude spectra;
// time-domain features always see raw, unwindowed samples.
type FeatureExtractor struct {
	sampleRate int
	spectral   *analyzers.SpectralAnalyzer
}

// NewFeatureExtractor creates a feature extractor for the given sample rate
func NewFeatureExtractor(sampleRate int) *FeatureExtractor {
	return &FeatureExtractor{
		sampleRate: sampleRate,
		spectral:   analyzers.NewSpectralAnalyzer(sampleRate),
	}
}

// energyMode selects how frame energy is aggregated
type energyMode int

const (
	energyMeanSquare energyMode = iota // mean of squared samples
	energyRMS                          // sqrt of mean square
	energySumSquare                    // unnormalized sum of squares
)

// frameEnergies computes per-frame energy over unwindowed frames
func (fe *FeatureExtractor) frameEnergies(samples []float64, frameSize, hopSize int, mode energyMode) []float64 {
	framer, err := analyzers.NewFramer(samples, frameSize, hopSize, nil)
	if err != nil {
		return nil
	}

	count := framer.Count()
	if count == 0 {
		return nil
	}

	energies := make([]float64, count)
	var frame []float64
	for t := 0; t < count; t++ {
		frame = framer.At(t, frame)

		sum := 0.0
		for _, s := range frame {
			sum += s * s
		}

		switch mode {
		case energyMeanSquare:
			energies[t] = sum / float64(frameSize)
		case energyRMS:
			energies[t] = math.Sqrt(sum / float64(frameSize))
		case energySumSquare:
			energies[t] = sum
		}
	}

	return energies
}

// ZeroCrossingRate returns the fraction of sampled consecutive-point sign
// changes. The signal is subsampled by a stride chosen so roughly
// zcrTargetComparisons comparisons occur regardless of buffer length.
func (fe *FeatureExtractor) ZeroCrossingRate(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}

	stride := len(samples) / zcrTargetComparisons
	if stride < 1 {
		stride = 1
	}

	crossings := 0
	comparisons := 0
	for i := stride; i < len(samples); i += stride {
		if (samples[i-stride] >= 0) != (samples[i] >= 0) {
			crossings++
		}
		comparisons++
	}

	if comparisons == 0 {
		return 0
	}
	return float64(crossings) / float64(comparisons)
}

// SpectralCentroid returns the energy-weighted mean frequency averaged
// across frames. Frames with zero magnitude sum contribute 0.
func (fe *FeatureExtractor) SpectralCentroid(spectra [][]float64, frameSize int) float64 {
	if len(spectra) == 0 {
		return 0
	}

	total := 0.0
	for _, spectrum := range spectra {
		num := 0.0
		den := 0.0
		for k, mag := range spectrum {
			num += fe.spectral.BinFrequency(k, frameSize) * mag
			den += mag
		}
		if den > 0 {
			total += num / den
		}
	}

	return total / float64(len(spectra))
}

// SpectralRolloff returns the frequency below which 85% of cumulative
// magnitude falls, walking bins in ascending frequency order, averaged
// across frames.
func (fe *FeatureExtractor) SpectralRolloff(spectra [][]float64, frameSize int) float64 {
	if len(spectra) == 0 {
		return 0
	}

	total := 0.0
	for _, spectrum := range spectra {
		sum := 0.0
		for _, mag := range spectrum {
			sum += mag
		}
		if sum == 0 {
			continue
		}

		target := 0.85 * sum
		cumulative := 0.0
		for k, mag := range spectrum {
			cumulative += mag
			if cumulative >= target {
				total += fe.spectral.BinFrequency(k, frameSize)
				break
			}
		}
	}

	return total / float64(len(spectra))
}

// BandLevels holds aggregate magnitude levels for the low, mid and high
// thirds of the spectrum.
type BandLevels struct {
	LowMean   float64 // mean magnitude per bin in the low third
	LowTotal  float64
	MidTotal  float64
	HighTotal float64
	Total     float64
}

// BandEnergies splits every spectrum into contiguous low/mid/high thirds
// and accumulates magnitude within each range across all frames.
func (fe *FeatureExtractor) BandEnergies(spectra [][]float64) BandLevels {
	var levels BandLevels
	lowBins := 0

	for _, spectrum := range spectra {
		n := len(spectrum)
		if n == 0 {
			continue
		}
		third := n / 3

		for k, mag := range spectrum {
			levels.Total += mag
			switch {
			case k < third:
				levels.LowTotal += mag
				lowBins++
			case k < 2*third:
				levels.MidTotal += mag
			default:
				levels.HighTotal += mag
			}
		}
	}

	if lowBins > 0 {
		levels.LowMean = levels.LowTotal / float64(lowBins)
	}

	return levels
}

// EnergyDistribution measures the balance between low and high frequency
// energy: 1 means perfectly balanced, 0 means fully lopsided or silent.
func (fe *FeatureExtractor) EnergyDistribution(levels BandLevels) float64 {
	if levels.Total == 0 {
		return 0
	}
	return analyzers.Clamp01(1 - math.Abs(levels.LowTotal-levels.HighTotal)/levels.Total)
}

// EnergyStability computes 1 - variance/mean^2 of an energy series,
// clamped to [0, 1]. A zero mean yields 0.
func (fe *FeatureExtractor) EnergyStability(energies []float64) float64 {
	mean := analyzers.Mean(energies)
	if mean == 0 {
		return 0
	}
	return analyzers.Clamp01(1 - analyzers.Variance(energies)/(mean*mean))
}
