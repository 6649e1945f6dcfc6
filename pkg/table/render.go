package table

import (
	stringpool "github.com/exfortools/exfortab/pkg/strings"
)

// Render writes the table as whitespace-aligned text: a header row
// followed by one line per data row, every column right-aligned to its
// widest cell, no index column. The output tokenizes back into the same
// cells on a whitespace split, which is what the batch reader relies on.
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	widths := make([]int, len(t.Columns))
	cells := make([][]string, len(t.Columns))
	for ci, c := range t.Columns {
		widths[ci] = len(c.Name)
		cells[ci] = make([]string, len(c.Values))
		for ri, v := range c.Values {
			s := v.String()
			if s == "" {
				s = "NaN"
			}
			cells[ci][ri] = s
			if len(s) > widths[ci] {
				widths[ci] = len(s)
			}
		}
	}

	rows := t.NumRows()
	builder := stringpool.GetBuilder(stringpool.Medium)
	defer stringpool.PutBuilder(builder, stringpool.Medium)

	for ci, c := range t.Columns {
		if ci > 0 {
			builder.WriteByte(' ')
		}
		writePadded(builder, c.Name, widths[ci])
	}
	builder.WriteByte('\n')

	for ri := 0; ri < rows; ri++ {
		for ci := range t.Columns {
			if ci > 0 {
				builder.WriteByte(' ')
			}
			writePadded(builder, cells[ci][ri], widths[ci])
		}
		builder.WriteByte('\n')
	}

	return stringpool.Clone(builder.String())
}

func writePadded(b *stringpool.Builder, s string, width int) {
	for i := len(s); i < width; i++ {
		b.WriteByte(' ')
	}
	b.WriteString(s)
}
