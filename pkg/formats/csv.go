package formats

import (
	"io"

	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/table"
	stringpool "github.com/exfortools/exfortab/pkg/strings"
)

// writeCSV renders the table as quoted CSV with a header row. Null cells
// export as empty fields.
func writeCSV(w io.Writer, t *table.Table) error {
	cb := stringpool.NewCSVBuilder(t.NumRows(), t.NumCols())
	defer cb.Close()

	cb.WriteHeader(t.Headers())

	row := make([]string, t.NumCols())
	for ri := 0; ri < t.NumRows(); ri++ {
		for ci := range t.Columns {
			row[ci] = t.Columns[ci].Values[ri].String()
		}
		cb.WriteRow(row)
	}

	if _, err := io.WriteString(w, cb.String()); err != nil {
		return errors.Wrap(err, errors.ErrorTypeExport, "writing CSV table")
	}
	return nil
}
