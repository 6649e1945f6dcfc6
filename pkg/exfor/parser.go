package exfor

import (
	"bufio"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/exfortools/exfortab/pkg/compression"
	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/logger"
	"github.com/exfortools/exfortab/pkg/pool"
	"github.com/exfortools/exfortab/pkg/table"
	stringpool "github.com/exfortools/exfortab/pkg/strings"
)

// marker is the comment marker that prefixes every metadata line.
const marker = "#"

// ParseFile reads one experiment file into a Record. The record title
// is always the path basename, never file content. Files with a known
// compression suffix (.gz, .zst, .lz4, .s2) are decompressed
// transparently.
func ParseFile(path string) (*Record, error) {
	rc, err := compression.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "opening experiment file").
			WithDetail("path", path)
	}
	defer rc.Close()

	rec, err := ParseReader(rc, filepath.Base(path))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFormat, "parsing experiment file").
			WithDetail("path", path)
	}
	return rec, nil
}

// ParseReader reads one experiment from r. The title parameter becomes
// the record's title.
//
// The parse is a single forward pass with four modes. Metadata lines
// ('#'-prefixed) are dispatched through the ordered field table; the
// "Data points" field arms header mode for the next line; a "Reference"
// line arms reference mode. Lines without the marker are data rows of
// 2 to 4 numeric tokens; missing trailing tokens pad the uncertainty
// columns with NaN. A marker line seen while in data mode is re-examined
// as metadata, which is how the trailing reference block is recognized.
func ParseReader(r io.Reader, title string) (*Record, error) {
	rec := NewRecord()
	if title != "" {
		rec.Title = table.String(title)
	}

	var (
		readHeader bool
		readRef    bool
		header     []string
		refBuf     strings.Builder
	)

	cols := [4][]float64{
		pool.GetFloat64Slice(),
		pool.GetFloat64Slice(),
		pool.GetFloat64Slice(),
		pool.GetFloat64Slice(),
	}
	defer func() {
		for _, c := range cols {
			pool.PutFloat64Slice(c)
		}
	}()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineNo++

		switch {
		case strings.HasPrefix(line, marker) && !readRef && !readHeader:
			readHeader, readRef = dispatchMetadata(rec, line)

		case readHeader:
			var err error
			header, err = parseHeader(line, lineNo)
			if err != nil {
				return nil, err
			}
			readHeader = false

		case readRef:
			// The bare marker line terminates the block; everything
			// else is reference body with the marker stripped.
			if line == marker {
				commitReference(rec, &refBuf)
				readRef = false
				continue
			}
			refBuf.WriteString(strings.TrimPrefix(line, marker))
			refBuf.WriteByte('\n')

		default:
			if err := parseDataRow(line, lineNo, header, &cols); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "reading experiment lines")
	}

	// A file that ends inside the reference block commits without a
	// terminator line.
	if readRef {
		commitReference(rec, &refBuf)
	}

	if header != nil {
		for i, name := range header {
			if err := rec.Data.AddColumn(table.FloatSeries(name, cols[i])); err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeFormat, "building data table")
			}
		}
		if declared, ok := rec.DataPoints.AsInt(); ok && int(declared) != rec.Data.NumRows() {
			logger.Get().Warn("declared data point count does not match parsed rows",
				zap.String("title", title),
				zap.Int64("declared", declared),
				zap.Int("parsed", rec.Data.NumRows()))
		}
	}

	return rec, nil
}

// dispatchMetadata tests a marker line against the ordered field table,
// first prefix match wins. It returns the armed mode transitions: header
// mode after "Data points", reference mode after "Reference".
func dispatchMetadata(rec *Record, line string) (readHeader, readRef bool) {
	for i := range fieldTable {
		spec := &fieldTable[i]
		if !strings.HasPrefix(line, spec.prefix) {
			continue
		}
		raw := ""
		if idx := strings.Index(line, ":"); idx >= 0 {
			raw = line[idx+1:]
		}
		spec.set(rec, parseValue(spec.kind, raw))
		return spec.name == "data_points", false
	}
	if strings.HasPrefix(line, "# Reference") {
		return false, true
	}
	// Unrecognized marker lines are ignored.
	return false, false
}

// parseHeader splits the single header line into the four column names,
// dropping the leading marker token.
func parseHeader(line string, lineNo int) ([]string, error) {
	tokens := strings.Fields(line)
	if len(tokens) > 0 && tokens[0] == marker {
		tokens = tokens[1:]
	}
	if len(tokens) != 4 {
		return nil, errors.New(errors.ErrorTypeFormat,
			stringpool.Sprintf("header row has %d columns, want 4", len(tokens))).
			WithDetail("line", lineNo)
	}
	return append([]string(nil), tokens...), nil
}

// parseDataRow tokenizes a data line into 2 to 4 floats and appends one
// cell to each positional column, padding missing trailing uncertainty
// cells with NaN.
func parseDataRow(line string, lineNo int, header []string, cols *[4][]float64) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}
	if header == nil {
		return errors.New(errors.ErrorTypeFormat, "data row before header row").
			WithDetail("line", lineNo)
	}
	if len(tokens) < 2 || len(tokens) > 4 {
		return errors.New(errors.ErrorTypeFormat,
			stringpool.Sprintf("data row has %d values, want 2-4", len(tokens))).
			WithDetail("line", lineNo)
	}

	for i := 0; i < 4; i++ {
		if i < len(tokens) {
			f, err := strconv.ParseFloat(tokens[i], 64)
			if err != nil {
				return errors.Wrap(err, errors.ErrorTypeFormat,
					stringpool.Sprintf("non-numeric data value %q", tokens[i])).
					WithDetail("line", lineNo)
			}
			cols[i] = append(cols[i], f)
		} else {
			cols[i] = append(cols[i], math.NaN())
		}
	}
	return nil
}

// commitReference promotes the accumulated reference text into the
// record, trimming the final two characters left by the terminator
// convention. An empty block stays null.
func commitReference(rec *Record, buf *strings.Builder) {
	s := buf.String()
	if len(s) >= 2 {
		s = s[:len(s)-2]
	}
	if s == "" {
		rec.Reference = table.Null()
	} else {
		rec.Reference = table.String(s)
	}
	buf.Reset()
}
