package formats

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/table"
)

// writeArrow exports the table as a single-batch Arrow IPC file.
func writeArrow(w io.Writer, t *table.Table) error {
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

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(alloc))
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeExport, "creating Arrow writer")
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return errors.Wrap(err, errors.ErrorTypeExport, "writing Arrow batch")
	}
	if err := fw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeExport, "closing Arrow writer")
	}
	return nil
}

// appendArrowColumn fills one builder with a column's cells. Null cells
// append as Arrow nulls; integer cells widen when the column inferred
// float.
func appendArrowColumn(b array.Builder, values []table.Value, kind colKind) error {
	switch kind {
	case colInt:
		ib := b.(*array.Int64Builder)
		for _, v := range values {
			if i, ok := v.AsInt(); ok {
				ib.Append(i)
			} else {
				ib.AppendNull()
			}
		}
	case colFloat:
		fb := b.(*array.Float64Builder)
		for _, v := range values {
			if f, ok := v.AsFloat(); ok {
				fb.Append(f)
			} else {
				fb.AppendNull()
			}
		}
	case colString:
		sb := b.(*array.StringBuilder)
		for _, v := range values {
			if v.IsNull() {
				sb.AppendNull()
			} else {
				sb.Append(v.String())
			}
		}
	}
	return nil
}
