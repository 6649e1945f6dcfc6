package collection

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/formats"
	"github.com/exfortools/exfortab/pkg/logger"
	"github.com/exfortools/exfortab/pkg/table"
)

// ExportPartitions writes one file per partition under dir, named after
// the partition value with unsafe filename characters replaced. Keys are
// processed in sorted order so repeated exports produce identical trees.
func ExportPartitions(dir string, partitions map[string]*table.Table, cfg *formats.WriterConfig) error {
	if cfg == nil {
		cfg = formats.DefaultWriterConfig()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "creating export directory").
			WithDetail("dir", dir)
	}

	keys := make([]string, 0, len(partitions))
	for k := range partitions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	log := logger.Get()
	for _, key := range keys {
		path := filepath.Join(dir, partitionFilename(key)+cfg.Format.Ext())
		if err := formats.WriteTableFile(path, partitions[key], cfg); err != nil {
			return err
		}
		log.Debug("partition exported",
			zap.String("value", key),
			zap.String("path", path),
			zap.Int("rows", partitions[key].NumRows()))
	}
	return nil
}

// partitionFilename maps a partition value to a safe filename stem.
func partitionFilename(value string) string {
	if value == "" {
		return "empty"
	}
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
