package formats

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/table"
)

// writeParquet exports the table as a Parquet file with the configured
// block compression.
func writeParquet(w io.Writer, t *table.Table, cfg *WriterConfig) error {
	kinds := inferKinds(t)
	schema := arrowSchemaFor(t, kinds)
	alloc := memory.NewGoAllocator()

	builder := array.NewRecordBuilder(alloc, schema)
	defer builder.Release()

	for ci, c := range t.Columns {
		if err := appendArrowColumn(builder.Field(ci), c.Values, kinds[ci]); err != nil {
			return err
		}
	}
	rec := builder.NewRecord()
	defer rec.Release()

	props := parquet.NewWriterProperties(
		parquet.WithCompression(parquetCompression(cfg.Compression)),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithAllocator(alloc))

	fw, err := pqarrow.NewFileWriter(schema, w, props, arrowProps)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeExport, "creating Parquet writer")
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return errors.Wrap(err, errors.ErrorTypeExport, "writing Parquet row group")
	}
	if err := fw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeExport, "closing Parquet writer")
	}
	return nil
}

func parquetCompression(name string) compress.Compression {
	switch name {
	case "gzip":
		return compress.Codecs.Gzip
	case "zstd":
		return compress.Codecs.Zstd
	case "lz4":
		return compress.Codecs.Lz4Raw
	case "none", "":
		return compress.Codecs.Uncompressed
	default:
		return compress.Codecs.Snappy
	}
}
