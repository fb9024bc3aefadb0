package batch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/groovemetrics/groovescan/pkg/audio"
	"github.com/groovemetrics/groovescan/pkg/audio/analysis"
	"github.com/groovemetrics/groovescan/pkg/audio/decode"
	"github.com/groovemetrics/groovescan/pkg/logging"
)

// DecodeFunc produces the pipeline input for one file
type DecodeFunc func(path string) (*audio.Buffer, error)

// FileResult is the independent outcome of a single file's analysis.
// A failed file reports its error here and never aborts its siblings.
type FileResult struct {
	ID     string           `json:"id"`
	Path   string           `json:"path"`
	Result *analysis.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// Summary aggregates a whole batch run
type Summary struct {
	Files         []FileResult  `json:"files"`
	Succeeded     int           `json:"succeeded"`
	Failed        int           `json:"failed"`
	TotalDuration time.Duration `json:"total_duration"`
}

// Config contains orchestrator settings
type Config struct {
	// MaxConcurrency bounds how many files are analyzed at once.
	// Values below 1 mean unbounded.
	MaxConcurrency int
	// Timeout is the wall-clock budget for the whole batch. Zero
	// disables the deadline.
	Timeout time.Duration
	// Decode overrides the default file decoder (useful in tests)
	Decode DecodeFunc
	// Logger overrides the default logger
	Logger logging.Logger
}

// Orchestrator analyzes batches of files concurrently. The pipeline itself
// has no cancellation; the orchestrator imposes the wall-clock budget and
// reports a timed-out file as that file's failure.
type Orchestrator struct {
	analyzer *analysis.Analyzer
	decode   DecodeFunc
	limit    int
	timeout  time.Duration
	logger   logging.Logger
}

// NewOrchestrator creates a batch orchestrator around an analyzer
func NewOrchestrator(analyzer *analysis.Analyzer, cfg Config) *Orchestrator {
	decodeFn := cfg.Decode
	if decodeFn == nil {
		decodeFn = decode.File
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.WithFields(logging.Fields{
			"component": "batch_orchestrator",
		})
	}

	return &Orchestrator{
		analyzer: analyzer,
		decode:   decodeFn,
		limit:    cfg.MaxConcurrency,
		timeout:  cfg.Timeout,
		logger:   logger,
	}
}

// Run analyzes every file up to the configured concurrency limit and
// returns one FileResult per input path, in input order.
func (o *Orchestrator) Run(ctx context.Context, paths []string) *Summary {
	start := time.Now()

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	o.logger.Debug("starting batch analysis", logging.Fields{
		"files":           len(paths),
		"max_concurrency": o.limit,
		"timeout_s":       o.timeout.Seconds(),
	})

	results := make([]FileResult, len(paths))

	g := new(errgroup.Group)
	if o.limit > 0 {
		g.SetLimit(o.limit)
	}

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = o.analyzeFile(ctx, path)
			return nil
		})
	}

	// Tasks never return errors; failures live in the per-file results
	_ = g.Wait()

	summary := &Summary{
		Files:         results,
		TotalDuration: time.Since(start),
	}
	for _, r := range results {
		if r.Error == "" {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	o.logger.Info("batch analysis completed", logging.Fields{
		"succeeded":  summary.Succeeded,
		"failed":     summary.Failed,
		"duration_s": summary.TotalDuration.Seconds(),
	})

	return summary
}

// analyzeFile decodes and analyzes a single file, mapping every failure
// mode to the file's own result entry.
func (o *Orchestrator) analyzeFile(ctx context.Context, path string) FileResult {
	result := FileResult{
		ID:   uuid.NewString(),
		Path: path,
	}

	if err := ctx.Err(); err != nil {
		result.Error = "batch budget exceeded: " + err.Error()
		return result
	}

	buf, err := o.decode(path)
	if err != nil {
		o.logger.Error(err, "decoding failed", logging.Fields{"path": path})
		result.Error = err.Error()
		return result
	}

	analyzed, err := o.analyzer.Analyze(buf)
	if err != nil {
		o.logger.Error(err, "analysis failed", logging.Fields{"path": path})
		result.Error = err.Error()
		return result
	}

	result.Result = analyzed
	return result
}
