package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/google/uuid"

	"market-report/internal/analytics"
	"market-report/internal/database"
	"market-report/internal/dataset"
	"market-report/internal/observability"
)

const (
	PhaseLoad    = "load"
	PhaseRead    = "read"
	PhaseAnalyze = "analyze"
)

// Result summarizes a run. DataIntegrity is true when every iteration left
// the store with the same relation content.
type Result struct {
	RunID          string
	Driver         string
	Iterations     int
	Skipped        int
	P95Latency     time.Duration
	P99Latency     time.Duration
	AverageLatency time.Duration
	TotalTime      time.Duration
	DataIntegrity  bool
	Rows           map[string]int
	Fingerprints   map[string]uint64

	// Reports of the last iteration.
	Reports *analytics.Reports `json:"-"`
}

type Options struct {
	RunID      string
	Driver     string
	Iterations int
	Logger     *slog.Logger
	Metrics    *observability.Metrics
}

// Run loads the sources into db and builds the reports, Iterations times.
// Any load or store failure aborts the run; per-row failures only shrink the
// reports.
func Run(ctx context.Context, db database.DatabaseDriver, loader *dataset.Loader, opts Options) (*Result, error) {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.Iterations < 1 {
		opts.Iterations = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	result := &Result{
		RunID:         opts.RunID,
		Driver:        opts.Driver,
		DataIntegrity: true,
	}
	totalStartTime := time.Now()

	// Max latency of 10 seconds, significant figures of 3
	histogram := hdrhistogram.New(1, 10000000, 3)

	for i := 0; i < opts.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		opStartTime := time.Now()

		phaseStart := time.Now()
		stats, err := loader.Load(ctx, db)
		if err != nil {
			return nil, err
		}
		opts.Metrics.ObservePhase(PhaseLoad, time.Since(phaseStart))
		for rel, n := range stats.Rows {
			opts.Metrics.RowsLoaded(rel, n)
		}

		phaseStart = time.Now()
		snap, err := dataset.ReadSnapshot(ctx, db)
		if err != nil {
			return nil, err
		}
		opts.Metrics.ObservePhase(PhaseRead, time.Since(phaseStart))

		phaseStart = time.Now()
		reports := analytics.Build(snap, logger)
		opts.Metrics.ObservePhase(PhaseAnalyze, time.Since(phaseStart))

		fingerprints := snap.Fingerprints()
		if result.Fingerprints != nil && !sameFingerprints(result.Fingerprints, fingerprints) {
			logger.Warn("relation content changed between iterations", "iteration", i+1)
			result.DataIntegrity = false
		}
		result.Fingerprints = fingerprints
		result.Rows = stats.Rows
		result.Reports = reports
		result.Iterations++

		latency := time.Since(opStartTime)
		if err := histogram.RecordValue(latency.Microseconds()); err != nil {
			logger.Debug("latency out of histogram range", "latency", latency)
		}
		logger.Debug("iteration complete", "iteration", i+1, "latency", latency)
	}

	for _, c := range result.Reports.Skipped.Counts() {
		opts.Metrics.RowsSkipped(c.Report, c.Reason, c.Rows)
	}
	result.Skipped = result.Reports.Skipped.Total()

	result.TotalTime = time.Since(totalStartTime)
	result.AverageLatency = time.Duration(histogram.Mean()) * time.Microsecond
	result.P95Latency = time.Duration(histogram.ValueAtQuantile(95)) * time.Microsecond
	result.P99Latency = time.Duration(histogram.ValueAtQuantile(99)) * time.Microsecond

	return result, nil
}

func sameFingerprints(a, b map[string]uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
