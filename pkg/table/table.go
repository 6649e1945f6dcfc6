package table

import (
	"math"

	"github.com/exfortools/exfortab/pkg/errors"
	stringpool "github.com/exfortools/exfortab/pkg/strings"
)

// Series is one named column of values.
type Series struct {
	Name   string  `json:"name"`
	Values []Value `json:"values"`
}

// FloatSeries builds a column from raw float64 cells. NaN cells are kept
// as NaN floats, preserving the positional-column padding convention.
func FloatSeries(name string, cells []float64) Series {
	values := make([]Value, len(cells))
	for i, f := range cells {
		values[i] = Float(f)
	}
	return Series{Name: name, Values: values}
}

// ConstSeries builds a column that repeats a single value n times.
// Broadcast metadata columns are built this way.
func ConstSeries(name string, v Value, n int) Series {
	values := make([]Value, n)
	for i := range values {
		values[i] = v
	}
	return Series{Name: name, Values: values}
}

// Table is an ordered collection of equally sized columns.
type Table struct {
	Columns []Series `json:"columns"`
}

// New creates an empty table.
func New() *Table {
	return &Table{}
}

// NumRows returns the row count, zero for an empty table.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// NumCols returns the column count.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// Headers returns the column names in order.
func (t *Table) Headers() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Series {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// AddColumn appends a column, overwriting an existing column with the
// same name in place. The column length must match the table's row count
// unless the table is empty.
func (t *Table) AddColumn(s Series) error {
	if len(t.Columns) > 0 && len(s.Values) != t.NumRows() {
		return errors.New(errors.ErrorTypeData,
			stringpool.Sprintf("column %q has %d rows, table has %d", s.Name, len(s.Values), t.NumRows()))
	}
	for i := range t.Columns {
		if t.Columns[i].Name == s.Name {
			t.Columns[i] = s
			return nil
		}
	}
	t.Columns = append(t.Columns, s)
	return nil
}

// Cell returns the value at (row, col) by column index.
func (t *Table) Cell(row, col int) Value {
	return t.Columns[col].Values[row]
}

// Row returns one row as a value slice.
func (t *Table) Row(row int) []Value {
	out := make([]Value, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Values[row]
	}
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := &Table{Columns: make([]Series, len(t.Columns))}
	for i, c := range t.Columns {
		values := make([]Value, len(c.Values))
		copy(values, c.Values)
		out.Columns[i] = Series{Name: c.Name, Values: values}
	}
	return out
}

// Append concatenates another table with the same column names, row-wise.
func (t *Table) Append(other *Table) error {
	if len(t.Columns) == 0 {
		*t = *other.Clone()
		return nil
	}
	if len(other.Columns) != len(t.Columns) {
		return errors.New(errors.ErrorTypeData,
			stringpool.Sprintf("cannot append table with %d columns to table with %d", other.NumCols(), t.NumCols()))
	}
	for i := range t.Columns {
		if t.Columns[i].Name != other.Columns[i].Name {
			return errors.New(errors.ErrorTypeData,
				stringpool.Sprintf("column %d name mismatch: %q vs %q", i, t.Columns[i].Name, other.Columns[i].Name))
		}
		t.Columns[i].Values = append(t.Columns[i].Values, other.Columns[i].Values...)
	}
	return nil
}

// FloatColumn returns a column's cells as float64s, NaN for anything
// non-numeric. Plotting and numeric export consume this view.
func (t *Table) FloatColumn(col int) []float64 {
	src := t.Columns[col].Values
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = v.Float64()
	}
	return out
}

// AllNaNOrZero reports whether every cell of a column is NaN, null, or
// zero. Plotting uses it to decide whether an uncertainty column carries
// drawable error bars.
func (t *Table) AllNaNOrZero(col int) bool {
	for _, v := range t.Columns[col].Values {
		f, ok := v.AsFloat()
		if ok && f != 0 && !math.IsNaN(f) {
			return false
		}
	}
	return true
}

// Clean drops uncertainty columns (names starting with "d") unless
// uncertainties is true, then drops every column with a single unique
// value. The receiver is unchanged; a new table is returned.
func (t *Table) Clean(uncertainties bool) *Table {
	out := New()
	for _, c := range t.Columns {
		if !uncertainties && len(c.Name) > 0 && c.Name[0] == 'd' {
			continue
		}
		if constantColumn(c) {
			continue
		}
		values := make([]Value, len(c.Values))
		copy(values, c.Values)
		out.Columns = append(out.Columns, Series{Name: c.Name, Values: values})
	}
	return out
}

func constantColumn(c Series) bool {
	if len(c.Values) == 0 {
		return true
	}
	first := c.Values[0]
	for _, v := range c.Values[1:] {
		if !v.Equal(first) {
			return false
		}
	}
	return true
}
