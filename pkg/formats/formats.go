// Package formats exports experiment tables to interchange formats:
// CSV and JSON for inspection, Arrow IPC, Parquet, and Avro OCF for
// columnar analysis pipelines. All writers take a fully materialized
// table; schema is inferred per column from the cell kinds.
package formats

import (
	"io"
	"os"
	"strings"

	"github.com/exfortools/exfortab/pkg/compression"
	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/table"
)

// Format identifies an export format.
type Format string

const (
	CSV     Format = "csv"
	JSON    Format = "json"
	Arrow   Format = "arrow"
	Parquet Format = "parquet"
	Avro    Format = "avro"
)

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case CSV:
		return CSV, nil
	case JSON:
		return JSON, nil
	case Arrow:
		return Arrow, nil
	case Parquet:
		return Parquet, nil
	case Avro:
		return Avro, nil
	default:
		return "", errors.New(errors.ErrorTypeExport, "unknown export format").
			WithDetail("format", s)
	}
}

// Ext returns the conventional filename extension.
func (f Format) Ext() string {
	switch f {
	case Arrow:
		return ".arrow"
	case Parquet:
		return ".parquet"
	case Avro:
		return ".avro"
	case JSON:
		return ".json"
	default:
		return ".csv"
	}
}

// WriterConfig configures table export.
type WriterConfig struct {
	Format      Format
	Compression string // parquet/avro block compression
	Pretty      bool   // JSON indentation
}

// DefaultWriterConfig returns the default export configuration.
func DefaultWriterConfig() *WriterConfig {
	return &WriterConfig{
		Format:      CSV,
		Compression: "snappy",
	}
}

// WriteTable exports t to w in the configured format.
func WriteTable(w io.Writer, t *table.Table, cfg *WriterConfig) error {
	if cfg == nil {
		cfg = DefaultWriterConfig()
	}
	switch cfg.Format {
	case CSV:
		return writeCSV(w, t)
	case JSON:
		return writeJSON(w, t, cfg)
	case Arrow:
		return writeArrow(w, t)
	case Parquet:
		return writeParquet(w, t, cfg)
	case Avro:
		return writeAvro(w, t, cfg)
	default:
		return errors.New(errors.ErrorTypeExport, "unknown export format").
			WithDetail("format", string(cfg.Format))
	}
}

// WriteTableFile exports t to a file. Text formats honor a compression
// suffix on the path; columnar formats carry their own block compression
// and are written as-is.
func WriteTableFile(path string, t *table.Table, cfg *WriterConfig) error {
	if cfg == nil {
		cfg = DefaultWriterConfig()
	}

	var (
		wc  io.WriteCloser
		err error
	)
	switch cfg.Format {
	case CSV, JSON:
		wc, err = compression.CreateWriter(path)
	default:
		wc, err = os.Create(path)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "creating export file").
			WithDetail("path", path)
	}

	if err := WriteTable(wc, t, cfg); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "closing export file").
			WithDetail("path", path)
	}
	return nil
}
