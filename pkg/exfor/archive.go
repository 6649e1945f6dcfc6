package exfor

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/exfortools/exfortab/pkg/compression"
	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/jsonutil"
	"github.com/exfortools/exfortab/pkg/logger"
	"github.com/exfortools/exfortab/pkg/table"
)

// ArchiveVersion is the current archive schema version. Readers reject
// archives with a version they do not understand instead of guessing.
const ArchiveVersion = 1

// Archive is the on-disk JSON envelope for a record collection.
type Archive struct {
	Version int       `json:"version"`
	RunID   string    `json:"run_id"`
	Records []*Record `json:"records"`
}

// SaveArchive writes records as a versioned JSON archive, compressed when
// the filename carries a recognized compression suffix. The run identifier
// stamps which ingest produced the snapshot; pass the empty string to get
// a fresh one.
func SaveArchive(path, runID string, records []*Record) error {
	if runID == "" {
		runID = uuid.NewString()
	}
	wc, err := compression.CreateWriter(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "creating archive file").
			WithDetail("path", path)
	}

	arch := &Archive{Version: ArchiveVersion, RunID: runID, Records: records}
	if err := jsonutil.MarshalToWriter(wc, arch); err != nil {
		wc.Close()
		return errors.Wrap(err, errors.ErrorTypeArchive, "encoding archive").
			WithDetail("path", path)
	}
	if err := wc.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "closing archive file").
			WithDetail("path", path)
	}

	logger.Get().Info("archive written",
		zap.String("path", path),
		zap.String("run_id", runID),
		zap.Int("records", len(records)))
	return nil
}

// LoadArchive reads a versioned JSON archive back into records.
func LoadArchive(path string) ([]*Record, error) {
	rc, err := compression.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "opening archive file").
			WithDetail("path", path)
	}
	defer rc.Close()

	var arch Archive
	if err := jsonutil.UnmarshalFromReader(rc, &arch); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeArchive, "decoding archive").
			WithDetail("path", path)
	}
	if arch.Version != ArchiveVersion {
		return nil, errors.New(errors.ErrorTypeArchive, "unsupported archive version").
			WithDetail("path", path).
			WithDetail("version", arch.Version)
	}
	for _, rec := range arch.Records {
		if rec.Data == nil {
			rec.Data = table.New()
		}
	}
	return arch.Records, nil
}
