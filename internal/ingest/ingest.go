// Package ingest orchestrates a library ingest run: the sequential walk
// and parse of an experiment library, the optional archive snapshot, and
// the run bookkeeping around it (run ID, logging, metrics, tracing, and
// host resource statistics).
package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/exfortools/exfortab/pkg/config"
	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/exfor"
	"github.com/exfortools/exfortab/pkg/logger"
	"github.com/exfortools/exfortab/pkg/metrics"
	"github.com/exfortools/exfortab/pkg/observability"
)

// Runner executes one ingest run. Create it with NewRunner, call Run
// once, then read the collection and Metrics.
type Runner struct {
	cfg       *config.Config
	log       *zap.Logger
	runID     string
	startTime time.Time
	records   []*exfor.Record
	rowsRead  int64
	parseErr  error
}

// NewRunner builds a runner for the given configuration.
func NewRunner(cfg *config.Config) *Runner {
	runID := uuid.NewString()
	return &Runner{
		cfg:   cfg,
		runID: runID,
		log:   logger.Get().With(zap.String("run_id", runID)),
	}
}

// RunID returns the identifier stamped on this run's logs and archive.
func (r *Runner) RunID() string { return r.runID }

// Records returns the ingested collection.
func (r *Runner) Records() []*exfor.Record { return r.records }

// Run walks the configured library root, parses every experiment file,
// and writes the archive snapshot when one is configured. Without
// fail-fast, a parse failure keeps the partial collection and the run
// succeeds; with it, the partial collection is kept and the failure is
// returned.
func (r *Runner) Run(ctx context.Context) error {
	r.startTime = time.Now()
	ctx, span := observability.NewSpan(ctx, "ingest.run")
	defer span.End()
	span.SetAttribute("root", r.cfg.Ingest.Root)

	r.log.Info("starting ingest",
		zap.String("root", r.cfg.Ingest.Root),
		zap.Bool("fail_fast", r.cfg.Ingest.FailFast))

	timer := metrics.NewTimer("ingest_walk")
	records, err := exfor.ReadLibrary(ctx, r.cfg.Ingest.Root)
	r.records = records
	r.parseErr = err

	for _, rec := range records {
		r.rowsRead += int64(rec.Data.NumRows())
	}
	metrics.FilesParsed.WithLabelValues("success").Add(float64(len(records)))
	metrics.RowsRead.Add(float64(r.rowsRead))
	metrics.RecordsInMemory.Set(float64(len(records)))
	metrics.ParseDuration.Observe(timer.Stop().Seconds())

	if err != nil {
		metrics.FilesParsed.WithLabelValues("failure").Inc()
		span.RecordError(err)
		if r.cfg.Ingest.FailFast {
			return err
		}
		r.log.Warn("library partially ingested",
			zap.Int("records", len(records)),
			zap.Error(err))
	}

	if path := r.cfg.Ingest.ArchivePath; path != "" {
		if err := exfor.SaveArchive(path, r.runID, r.records); err != nil {
			span.RecordError(err)
			return errors.Wrap(err, errors.ErrorTypeArchive, "writing ingest archive")
		}
		metrics.RecordsSerialized.WithLabelValues("archive").Add(float64(len(r.records)))
	}

	span.SetAttribute("records", len(r.records))
	span.SetAttribute("rows", int(r.rowsRead))
	r.log.Info("ingest completed",
		zap.Int("records", len(r.records)),
		zap.Int64("rows", r.rowsRead),
		zap.Duration("duration", time.Since(r.startTime)))
	return nil
}

// Metrics reports run counters plus a host resource snapshot.
func (r *Runner) Metrics() map[string]interface{} {
	duration := time.Since(r.startTime)
	out := map[string]interface{}{
		"run_id":   r.runID,
		"records":  len(r.records),
		"rows":     r.rowsRead,
		"duration": duration.String(),
		"partial":  r.parseErr != nil,
	}
	if duration > 0 {
		out["files_per_second"] = float64(len(r.records)) / duration.Seconds()
	}
	for k, v := range resourceSnapshot() {
		out[k] = v
	}
	return out
}
