package exfor

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/exfortools/exfortab/pkg/compression"
	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/logger"
)

// skipEntry reports whether a library entry is index material rather
// than experiment data. Directories suffixed "list" hold reaction
// indexes; files suffixed "list" or "ruth" hold indexes and Rutherford
// reference curves. Compression suffixes are stripped before the check
// so a compressed index file is still skipped.
func skipEntry(name string, isDir bool) bool {
	if isDir {
		return strings.HasSuffix(name, "list")
	}
	base := compression.TrimSuffix(name)
	return strings.HasSuffix(base, "list") || strings.HasSuffix(base, "ruth")
}

// ReadLibrary walks root recursively in lexical order and parses every
// experiment file found, skipping index directories and files. It
// returns the records accumulated up to the first failure together with
// that failure, so a partially readable library still yields its good
// records.
func ReadLibrary(ctx context.Context, root string) ([]*Record, error) {
	log := logger.Get()
	var records []*Record

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "walking experiment library").
				WithDetail("path", path)
		}
		if d.IsDir() {
			if path != root && skipEntry(d.Name(), true) {
				return filepath.SkipDir
			}
			return nil
		}
		if skipEntry(d.Name(), false) {
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return errors.Wrap(cerr, errors.ErrorTypeInternal, "library read canceled").
				WithDetail("path", path)
		}

		rec, perr := ParseFile(path)
		if perr != nil {
			return perr
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return records, err
	}

	log.Debug("experiment library read",
		zap.String("root", root),
		zap.Int("records", len(records)))
	return records, nil
}
