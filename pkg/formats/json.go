package formats

import (
	"io"

	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/jsonutil"
	"github.com/exfortools/exfortab/pkg/table"
)

// writeJSON exports the table as a JSON array of row objects keyed by
// column name. NaN floats serialize as null.
func writeJSON(w io.Writer, t *table.Table, cfg *WriterConfig) error {
	enc := jsonutil.NewStreamingEncoder(w, true)
	if cfg.Pretty {
		enc.SetPretty(true, "  ")
	}

	headers := t.Headers()
	for ri := 0; ri < t.NumRows(); ri++ {
		row := make(map[string]table.Value, len(headers))
		for ci, name := range headers {
			row[name] = t.Columns[ci].Values[ri]
		}
		if err := enc.Encode(row); err != nil {
			enc.Close()
			return errors.Wrap(err, errors.ErrorTypeExport, "encoding JSON row")
		}
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeExport, "finalizing JSON table")
	}
	return nil
}
