package estimators

import (
	"math"

	"github.com/groovemetrics/groovescan/pkg/audio/analysis/analyzers"
	"github.com/groovemetrics/groovescan/pkg/logging"
)

const (
	defaultBPM = 120.0
	minBPM     = 60.0
	maxBPM     = 200.0
)

// Method combination weights. Autocorrelation is the most reliable on
// sustained rhythmic content, the low-band histogram the least.
const (
	weightAutocorrelation = 0.4
	weightSpectralFlux    = 0.3
	weightEnergyOnset     = 0.2
	weightHistogram       = 0.1
)

// MethodEstimate is the tempo estimate of a single detection method.
// Never mutated after creation.
type MethodEstimate struct {
	BPM        float64 `json:"bpm"`
	Confidence float64 `json:"confidence"`
}

// MethodBreakdown holds the per-method estimates
type MethodBreakdown struct {
	Autocorrelation MethodEstimate `json:"autocorr"`
	Onset           MethodEstimate `json:"onset"`
	SpectralFlux    MethodEstimate `json:"spectral"`
	Histogram       MethodEstimate `json:"histogram"`
}

// BPMResult is the combined tempo estimate
type BPMResult struct {
	BPM           int             `json:"bpm"`
	Confidence    float64         `json:"confidence"`
	TempoCategory string          `json:"tempoCategory"`
	Methods       MethodBreakdown `json:"methods"`
}

// BPMEstimator estimates tempo with four independent methods combined by
// confidence-weighted averaging. All methods consume the same downsampled
// mono buffer; the estimator itself is stateless across calls.
type BPMEstimator struct {
	sampleRate int
	spectral   *analyzers.SpectralAnalyzer
	peaks      *analyzers.PeakDetector
	features   *FeatureExtractor
	windows    *analyzers.WindowGenerator
	logger     logging.Logger
}

// NewBPMEstimator creates a BPM estimator for the given sample rate
func NewBPMEstimator(sampleRate int) *BPMEstimator {
	return &BPMEstimator{
		sampleRate: sampleRate,
		spectral:   analyzers.NewSpectralAnalyzer(sampleRate),
		peaks:      analyzers.NewPeakDetector(),
		features:   NewFeatureExtractor(sampleRate),
		windows:    analyzers.NewWindowGenerator(),
		logger: logging.WithFields(logging.Fields{
			"component":   "bpm_estimator",
			"sample_rate": sampleRate,
		}),
	}
}

// Estimate runs all four methods and combines them
func (e *BPMEstimator) Estimate(samples []float64) *BPMResult {
	methods := MethodBreakdown{
		Autocorrelation: e.estimateAutocorrelation(samples),
		SpectralFlux:    e.estimateSpectralFlux(samples),
		Onset:           e.estimateEnergyOnset(samples),
		Histogram:       e.estimateHistogram(samples),
	}

	bpm, confidence := combineEstimates(methods)

	result := &BPMResult{
		BPM:           int(math.Round(bpm)),
		Confidence:    confidence,
		TempoCategory: tempoCategory(bpm),
		Methods:       methods,
	}

	e.logger.Debug("tempo estimation completed", logging.Fields{
		"bpm":        result.BPM,
		"confidence": result.Confidence,
		"category":   result.TempoCategory,
	})

	return result
}

// combineEstimates applies the fixed method weights, each additionally
// scaled by the method's own confidence, normalized by the total weight.
// When every method reports zero confidence the default tempo is used.
func combineEstimates(m MethodBreakdown) (bpm, confidence float64) {
	type weighted struct {
		est    MethodEstimate
		weight float64
	}
	entries := []weighted{
		{m.Autocorrelation, weightAutocorrelation},
		{m.SpectralFlux, weightSpectralFlux},
		{m.Onset, weightEnergyOnset},
		{m.Histogram, weightHistogram},
	}

	bpmSum := 0.0
	confSum := 0.0
	totalWeight := 0.0
	fixedWeight := 0.0
	for _, w := range entries {
		bpmSum += w.weight * w.est.Confidence * w.est.BPM
		confSum += w.weight * w.est.Confidence
		totalWeight += w.weight * w.est.Confidence
		fixedWeight += w.weight
	}

	if totalWeight == 0 {
		return defaultBPM, 0
	}

	return bpmSum / totalWeight, analyzers.Clamp01(confSum / fixedWeight)
}

// estimateAutocorrelation frames the signal at 2048/512 with a Hamming
// window, autocorrelates every frame over all lags, peak-picks each lag
// curve and histograms the implied tempi.
func (e *BPMEstimator) estimateAutocorrelation(samples []float64) MethodEstimate {
	const frameSize, hopSize = 2048, 512

	window := e.windows.Generate(analyzers.WindowHamming, frameSize)
	framer, err := analyzers.NewFramer(samples, frameSize, hopSize, window)
	if err != nil || framer.Count() == 0 {
		return MethodEstimate{BPM: defaultBPM, Confidence: 0}
	}

	var candidates []float64
	var frame []float64
	autocorr := make([]float64, frameSize)

	for t, frameCount := 0, framer.Count(); t < frameCount; t++ {
		frame = framer.At(t, frame)

		for lag := 0; lag < frameSize; lag++ {
			sum := 0.0
			for i := 0; i+lag < frameSize; i++ {
				sum += frame[i] * frame[i+lag]
			}
			autocorr[lag] = sum
		}

		peaks := e.peaks.DetectFast(autocorr)
		candidates = append(candidates, e.tempoCandidates(peaks, hopSize)...)
	}

	if len(candidates) == 0 {
		return MethodEstimate{BPM: defaultBPM, Confidence: 0}
	}

	mode, count := histogramMode(candidates)
	return MethodEstimate{
		BPM:        mode,
		Confidence: analyzers.Clamp01(float64(count) / float64(len(candidates))),
	}
}

// estimateSpectralFlux peak-picks the consecutive-frame spectral flux
// series at 1024/512 and averages the surviving tempo candidates.
func (e *BPMEstimator) estimateSpectralFlux(samples []float64) MethodEstimate {
	const frameSize, hopSize = 1024, 512

	spectra := e.spectral.Spectrogram(samples, frameSize, hopSize)
	flux := e.spectral.SpectralFlux(spectra)
	if len(flux) == 0 {
		return MethodEstimate{BPM: defaultBPM, Confidence: 0}
	}

	peaks := e.peaks.Detect(flux)
	intervals := len(peaks) - 1
	if intervals < 1 {
		return MethodEstimate{BPM: defaultBPM, Confidence: 0}
	}

	candidates := e.tempoCandidates(peaks, hopSize)
	if len(candidates) == 0 {
		return MethodEstimate{BPM: defaultBPM, Confidence: 0}
	}

	return MethodEstimate{
		BPM:        analyzers.Mean(candidates),
		Confidence: analyzers.Clamp01(float64(len(candidates)) / float64(intervals)),
	}
}

// estimateEnergyOnset detects beats as peaks in the median-filtered
// unnormalized frame energy at 25ms/10ms and takes the median tempo,
// which is robust to outlier intervals.
func (e *BPMEstimator) estimateEnergyOnset(samples []float64) MethodEstimate {
	frameSize := e.sampleRate * 25 / 1000
	hopSize := e.sampleRate * 10 / 1000
	if frameSize < 1 || hopSize < 1 {
		return MethodEstimate{BPM: defaultBPM, Confidence: 0}
	}

	energies := e.features.frameEnergies(samples, frameSize, hopSize, energySumSquare)
	if len(energies) == 0 {
		return MethodEstimate{BPM: defaultBPM, Confidence: 0}
	}

	smoothed := analyzers.MedianFilter(energies, 5)
	peaks := e.peaks.Detect(smoothed)
	intervals := len(peaks) - 1
	if intervals < 1 {
		return MethodEstimate{BPM: defaultBPM, Confidence: 0}
	}

	candidates := e.tempoCandidates(peaks, hopSize)
	if len(candidates) == 0 {
		return MethodEstimate{BPM: defaultBPM, Confidence: 0}
	}

	return MethodEstimate{
		BPM:        analyzers.Median(candidates),
		Confidence: analyzers.Clamp01(float64(len(candidates)) / float64(intervals)),
	}
}

// estimateHistogram tracks the mean magnitude of the lowest 10% of
// spectrum bins (the rhythm-relevant band) at 50ms/25ms frames and
// histograms the tempi implied by peaks of that band-energy series.
func (e *BPMEstimator) estimateHistogram(samples []float64) MethodEstimate {
	frameSize := e.sampleRate * 50 / 1000
	hopSize := e.sampleRate * 25 / 1000
	if frameSize < 2 || hopSize < 1 {
		return MethodEstimate{BPM: defaultBPM, Confidence: 0}
	}

	spectra := e.spectral.Spectrogram(samples, frameSize, hopSize)
	if len(spectra) == 0 {
		return MethodEstimate{BPM: defaultBPM, Confidence: 0}
	}

	band := len(spectra[0]) / 10
	if band < 1 {
		band = 1
	}

	series := make([]float64, len(spectra))
	for t, spectrum := range spectra {
		sum := 0.0
		for k := 0; k < band && k < len(spectrum); k++ {
			sum += spectrum[k]
		}
		series[t] = sum / float64(band)
	}

	peaks := e.peaks.DetectFast(series)
	candidates := e.tempoCandidates(peaks, hopSize)
	if len(candidates) == 0 {
		return MethodEstimate{BPM: defaultBPM, Confidence: 0}
	}

	mode, count := histogramMode(candidates)
	return MethodEstimate{
		BPM:        mode,
		Confidence: analyzers.Clamp01(float64(count) / float64(len(candidates))),
	}
}

// tempoCandidates converts consecutive peak-index deltas to BPM values,
// discarding candidates outside [minBPM, maxBPM].
func (e *BPMEstimator) tempoCandidates(peaks []int, hopSize int) []float64 {
	var candidates []float64
	for i := 1; i < len(peaks); i++ {
		delta := peaks[i] - peaks[i-1]
		if delta <= 0 {
			continue
		}

		interval := float64(delta) * float64(hopSize) / float64(e.sampleRate)
		bpm := 60.0 / interval
		if bpm >= minBPM && bpm <= maxBPM {
			candidates = append(candidates, bpm)
		}
	}
	return candidates
}

// histogramMode rounds candidates to the nearest integer BPM and returns
// the most frequent value with its count.
func histogramMode(candidates []float64) (float64, int) {
	counts := make(map[int]int)
	for _, c := range candidates {
		counts[int(math.Round(c))]++
	}

	bestBPM := int(defaultBPM)
	bestCount := 0
	for bpm, count := range counts {
		if count > bestCount || (count == bestCount && bpm < bestBPM) {
			bestBPM = bpm
			bestCount = count
		}
	}

	return float64(bestBPM), bestCount
}

// tempoCategory maps a BPM value to its classical tempo marking
func tempoCategory(bpm float64) string {
	switch {
	case bpm < 60:
		return "Larghissimo"
	case bpm < 66:
		return "Largo"
	case bpm < 76:
		return "Adagio"
	case bpm < 108:
		return "Andante"
	case bpm < 120:
		return "Moderato"
	case bpm < 168:
		return "Allegro"
	case bpm < 200:
		return "Presto"
	default:
		return "Prestissimo"
	}
}
