package exfor

import (
	"strconv"
	"strings"

	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/table"
)

// broadcastColumns lists the metadata broadcast in table form, in column
// order. The column labels are the presentation names, not the canonical
// field names.
var broadcastColumns = []struct {
	label string
	get   func(*Record) table.Value
}{
	{"Experiment", func(r *Record) table.Value { return r.Title }},
	{"Target Z", func(r *Record) table.Value { return r.TargetZ }},
	{"Target A", func(r *Record) table.Value { return r.TargetA }},
	{"Target state", func(r *Record) table.Value { return r.TargetState }},
	{"Reaction", func(r *Record) table.Value { return r.Reaction }},
	{"Incident energy", func(r *Record) table.Value { return r.EInc }},
	{"Final Z", func(r *Record) table.Value { return r.FinalZ }},
	{"Final A", func(r *Record) table.Value { return r.FinalA }},
	{"Final state", func(r *Record) table.Value { return r.FinalState }},
	{"MT ratio", func(r *Record) table.Value { return r.MTRat }},
	{"Ratio isomer", func(r *Record) table.Value { return r.RatioIsomer }},
	{"Quantity", func(r *Record) table.Value { return r.Quantity }},
	{"Frame", func(r *Record) table.Value { return r.Frame }},
	{"MF", func(r *Record) table.Value { return r.MF }},
	{"MT", func(r *Record) table.Value { return r.MT }},
	{"Author", func(r *Record) table.Value { return r.Author }},
	{"Year", func(r *Record) table.Value { return r.Year }},
}

// ToTable returns a new table joining the record's numeric data with its
// metadata, each scalar repeated down a constant column. The record is
// not modified.
func (r *Record) ToTable() (*table.Table, error) {
	out := r.Data.Clone()
	rows := out.NumRows()
	for _, col := range broadcastColumns {
		if err := out.AddColumn(table.ConstSeries(col.label, col.get(r), rows)); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "broadcasting metadata column")
		}
	}
	return out, nil
}

// numericColumns lists the coercions applied by AddNumericColumns, in
// column order.
var numericColumns = []struct {
	name   string
	coerce func(table.Value) table.Value
}{
	{"E_inc", coerceLeadingFloat},
	{"MF", passThrough},
	{"MT", passThrough},
	{"MTrat", coerceInt},
	{"Ratio_isomer", passThrough},
	{"final_A", coerceInt},
	{"final_Z", coerceInt},
	{"target_A", passThrough},
	{"target_Z", passThrough},
}

// AddNumericColumns stamps the numeric metadata onto the record's table,
// one broadcast column per field, overwriting columns of the same name.
// Incident energy keeps only the leading token of its string value parsed
// as a float; the unit suffix is discarded.
func (r *Record) AddNumericColumns() error {
	rows := r.Data.NumRows()
	for _, col := range numericColumns {
		spec, _ := fieldByName(col.name)
		v := col.coerce(spec.get(r))
		if err := r.Data.AddColumn(table.ConstSeries(col.name, v, rows)); err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "adding numeric column")
		}
	}
	return nil
}

func passThrough(v table.Value) table.Value { return v }

// coerceLeadingFloat parses the first whitespace token of the value's
// string form as a float. Null stays null; an unparsable token degrades
// to null rather than failing.
func coerceLeadingFloat(v table.Value) table.Value {
	if v.IsNull() {
		return table.Null()
	}
	tokens := strings.Fields(v.String())
	if len(tokens) == 0 {
		return table.Null()
	}
	f, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return table.Null()
	}
	return table.Float(f)
}

// coerceInt truncates a numeric value to an integer. Null stays null and
// a non-numeric verbatim string degrades to null.
func coerceInt(v table.Value) table.Value {
	if i, ok := v.AsInt(); ok {
		return table.Int(i)
	}
	if f, ok := v.AsFloat(); ok {
		return table.Int(int64(f))
	}
	return table.Null()
}

// EncodeCategorical appends one indicator column per vocabulary category
// to the record's table. A nil vocabulary uses the built-in default. The
// vocabulary is closed: field values outside it produce all-zero rows for
// that field, and no new columns are ever invented.
func (r *Record) EncodeCategorical(vocab *Vocabulary) error {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	rows := r.Data.NumRows()
	for _, cf := range vocab.Fields {
		spec, ok := fieldByName(cf.Field)
		if !ok {
			return errors.New(errors.ErrorTypeConfig, "vocabulary names an unknown field").
				WithDetail("field", cf.Field)
		}
		v := spec.get(r)
		for _, category := range cf.Categories {
			indicator := int64(0)
			if !v.IsNull() && v.String() == category {
				indicator = 1
			}
			name := cf.Prefix + "_" + category
			if err := r.Data.AddColumn(table.ConstSeries(name, table.Int(indicator), rows)); err != nil {
				return errors.Wrap(err, errors.ErrorTypeData, "adding indicator column")
			}
		}
	}
	return nil
}

// Prepare runs numeric coercion and categorical encoding, then stamps the
// X4 identifier as a string column, returning the record's table ready
// for model input.
func (r *Record) Prepare(vocab *Vocabulary) (*table.Table, error) {
	if err := r.AddNumericColumns(); err != nil {
		return nil, err
	}
	if err := r.EncodeCategorical(vocab); err != nil {
		return nil, err
	}
	rows := r.Data.NumRows()
	id := table.String(r.X4ID.String())
	if err := r.Data.AddColumn(table.ConstSeries("X4_ID", id, rows)); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "adding identifier column")
	}
	return r.Data, nil
}
