package exfor

import (
	"bufio"
	"context"
	"io"

	"github.com/exfortools/exfortab/pkg/compression"
	"github.com/exfortools/exfortab/pkg/errors"
)

// batchFields is the canonical metadata order of serialized records,
// after the leading title line. Fields outside this list (nuclide
// descriptors, projectile, incident energy, MT ratio) are not part of the
// serialized form and do not survive a write/read cycle.
var batchFields = []string{
	"reaction",
	"Ratio_isomer",
	"quantity",
	"frame",
	"MF",
	"MT",
	"X4_ID",
	"X4_code",
	"author",
	"year",
	"data_points",
}

const (
	recordEnd = "# END"
	fileEnd   = "# END OF FILE"
)

// WriteCollection serializes records to w in the annotated text form the
// batch reader consumes. Each record carries its metadata in canonical
// order, the rendered data table, and the verbatim reference block,
// framed by record terminators and a single file terminator.
func WriteCollection(ctx context.Context, w io.Writer, records []*Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrorTypeInternal, "writing experiment collection canceled")
		}
		if err := writeRecord(bw, rec); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString(fileEnd); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "writing file terminator")
	}
	if err := bw.WriteByte('\n'); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "writing file terminator")
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "flushing experiment collection")
	}
	return nil
}

// WriteCollectionFile serializes records to a file, compressing when the
// filename carries a recognized compression suffix.
func WriteCollectionFile(ctx context.Context, path string, records []*Record) error {
	wc, err := compression.CreateWriter(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "creating collection file").
			WithDetail("path", path)
	}
	if err := WriteCollection(ctx, wc, records); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "closing collection file").
			WithDetail("path", path)
	}
	return nil
}

func writeRecord(bw *bufio.Writer, rec *Record) error {
	writeMetaLine(bw, "Title", rec.Title.String())
	for _, name := range batchFields {
		spec, _ := fieldByName(name)
		writeMetaLine(bw, spec.label, spec.get(rec).String())
	}

	if _, err := bw.WriteString(rec.Data.Render()); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "writing data table")
	}

	writeMetaLine(bw, "Reference", "")
	if !rec.Reference.IsNull() {
		bw.WriteString(rec.Reference.String())
		bw.WriteByte('\n')
	}
	bw.WriteString(recordEnd)
	if err := bw.WriteByte('\n'); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "writing record terminator")
	}
	return nil
}

// writeMetaLine writes one metadata line with the label padded so every
// colon lands in the same column. Null fields serialize as a blank value.
func writeMetaLine(bw *bufio.Writer, label, value string) {
	bw.WriteString("# ")
	bw.WriteString(label)
	for i := len(label); i < 12; i++ {
		bw.WriteByte(' ')
	}
	bw.WriteString(": ")
	bw.WriteString(value)
	bw.WriteByte('\n')
}
