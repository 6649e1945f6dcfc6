package exfor

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/exfortools/exfortab/pkg/compression"
	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/table"
	stringpool "github.com/exfortools/exfortab/pkg/strings"
)

type batchMode uint8

const (
	batchTitle batchMode = iota
	batchMeta
	batchData
	batchRef
)

// ReadCollection deserializes a collection written by WriteCollection.
// Record boundaries come from the record terminator and the read stops
// at the file terminator; a stream that ends without one is a framing
// violation.
func ReadCollection(ctx context.Context, r io.Reader) ([]*Record, error) {
	var (
		records []*Record
		rec     *Record
		header  []string
		cols    [4][]float64
		refBuf  strings.Builder
		mode    = batchTitle
		done    bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0

	for !done && scanner.Scan() {
		line := scanner.Text()
		lineNo++

		switch mode {
		case batchTitle:
			if strings.HasPrefix(line, fileEnd) {
				done = true
				continue
			}
			if err := ctx.Err(); err != nil {
				return records, errors.Wrap(err, errors.ErrorTypeInternal, "reading experiment collection canceled")
			}
			if !strings.HasPrefix(line, "# Title") {
				return records, framingError("record must start with a title line", lineNo)
			}
			rec = NewRecord()
			rec.Title = parseValue(kindString, afterColon(line))
			header = nil
			cols = [4][]float64{}
			refBuf.Reset()
			mode = batchMeta

		case batchMeta:
			if strings.HasPrefix(line, marker) {
				_, startRef := dispatchMetadata(rec, line)
				if startRef {
					// A record with no data block jumps straight to
					// its reference section.
					mode = batchRef
				}
				continue
			}
			var err error
			header, err = parseHeader(line, lineNo)
			if err != nil {
				return records, err
			}
			mode = batchData

		case batchData:
			if strings.HasPrefix(line, marker) {
				if !strings.HasPrefix(line, "# Reference") {
					return records, framingError("data block may only end at a reference line", lineNo)
				}
				mode = batchRef
				continue
			}
			if err := parseDataRow(line, lineNo, header, &cols); err != nil {
				return records, err
			}

		case batchRef:
			if strings.HasPrefix(line, recordEnd) {
				if err := finishBatchRecord(rec, header, cols, &refBuf); err != nil {
					return records, err
				}
				records = append(records, rec)
				rec = nil
				mode = batchTitle
				continue
			}
			refBuf.WriteString(line)
			refBuf.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return records, errors.Wrap(err, errors.ErrorTypeFile, "reading experiment collection")
	}
	if !done {
		return records, framingError("stream ended without a file terminator", lineNo)
	}
	return records, nil
}

// ReadCollectionFile deserializes a collection file, decompressing when
// the filename carries a recognized compression suffix.
func ReadCollectionFile(ctx context.Context, path string) ([]*Record, error) {
	rc, err := compression.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "opening collection file").
			WithDetail("path", path)
	}
	defer rc.Close()

	records, err := ReadCollection(ctx, rc)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return records, e.WithDetail("path", path)
		}
		return records, err
	}
	return records, nil
}

func finishBatchRecord(rec *Record, header []string, cols [4][]float64, refBuf *strings.Builder) error {
	if header != nil {
		for i, name := range header {
			if err := rec.Data.AddColumn(table.FloatSeries(name, cols[i])); err != nil {
				return errors.Wrap(err, errors.ErrorTypeFormat, "building data table")
			}
		}
	}
	// The serializer terminates the reference text with a newline of its
	// own; drop it so the text round-trips verbatim.
	ref := strings.TrimSuffix(refBuf.String(), "\n")
	if ref == "" {
		rec.Reference = table.Null()
	} else {
		rec.Reference = table.String(ref)
	}
	return nil
}

// afterColon returns the text following the first colon, or an empty
// string when the line has none.
func afterColon(line string) string {
	if idx := strings.Index(line, ":"); idx >= 0 {
		return line[idx+1:]
	}
	return ""
}

func framingError(msg string, lineNo int) error {
	return errors.New(errors.ErrorTypeFormat, stringpool.Sprintf("framing violation: %s", msg)).
		WithDetail("line", lineNo)
}
