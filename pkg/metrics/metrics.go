// Package metrics provides Prometheus metrics for ingest, encoding, and
// export. Metrics register themselves at package load; components record
// into the shared vectors with their own labels.
//
// # Basic Usage
//
//	// Count a parsed file
//	metrics.FilesParsed.WithLabelValues("success").Inc()
//
//	// Track parse latency
//	timer := metrics.NewTimer("parse_file")
//	rec, err := exfor.ParseFile(path)
//	metrics.ParseDuration.Observe(timer.Stop().Seconds())
//
// # Metric Types
//
// Counter: monotonically increasing values (files parsed, rows read)
// Gauge: values that move both ways (records held in memory)
// Histogram: distributions (parse and export latency)
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FilesParsed counts experiment files read from a library.
	// Labels: status (success/failure)
	FilesParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exfortab_files_parsed_total",
			Help: "Total number of experiment files parsed",
		},
		[]string{"status"},
	)

	// RowsRead counts data points accumulated across all parsed files.
	RowsRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "exfortab_rows_read_total",
			Help: "Total number of data rows read from experiment files",
		},
	)

	// RecordsSerialized counts records written by the batch writer and
	// the archive. Labels: sink (text/archive)
	RecordsSerialized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exfortab_records_serialized_total",
			Help: "Total number of records serialized",
		},
		[]string{"sink"},
	)

	// TablesExported counts tables written by pkg/formats.
	// Labels: format (csv/json/arrow/parquet/avro)
	TablesExported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exfortab_tables_exported_total",
			Help: "Total number of tables exported",
		},
		[]string{"format"},
	)

	// RecordsInMemory gauges the size of the currently loaded collection.
	RecordsInMemory = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "exfortab_records_in_memory",
			Help: "Number of experiment records currently held in memory",
		},
	)

	// ParseDuration tracks per-file parse latency in seconds. Buckets
	// cover microsecond parses of tiny files up to multi-second
	// compressed batch reads.
	ParseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "exfortab_parse_duration_seconds",
			Help:    "Per-file parse latency in seconds",
			Buckets: []float64{1e-5, 1e-4, 1e-3, 1e-2, 0.1, 0.5, 1, 5, 30},
		},
	)

	// ExportDuration tracks per-table export latency in seconds.
	// Labels: format
	ExportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exfortab_export_duration_seconds",
			Help:    "Per-table export latency in seconds",
			Buckets: []float64{1e-4, 1e-3, 1e-2, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"format"},
	)
)

// Timer measures operation durations. It captures the start time on
// creation and calculates elapsed time on stop.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a timer and starts it immediately. The name is for
// identification in logs.
func NewTimer(name string) *Timer {
	return &Timer{start: time.Now(), name: name}
}

// Stop returns the elapsed duration since creation. Stopping more than
// once returns the total elapsed time each call.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}

// ThroughputTracker tracks files processed per second over a window.
// Thread-safe for concurrent use.
type ThroughputTracker struct {
	mu        sync.Mutex
	count     int64
	lastReset time.Time
}

// NewThroughputTracker creates a tracker with the window starting now.
func NewThroughputTracker() *ThroughputTracker {
	return &ThroughputTracker{lastReset: time.Now()}
}

// Increment adds n to the count. Safe for concurrent use.
func (t *ThroughputTracker) Increment(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count += n
}

// GetAndReset returns the rate since the last reset and starts a new
// window.
func (t *ThroughputTracker) GetAndReset() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := time.Since(t.lastReset).Seconds()
	if elapsed == 0 {
		return 0
	}
	rate := float64(t.count) / elapsed
	t.count = 0
	t.lastReset = time.Now()
	return rate
}
