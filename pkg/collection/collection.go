// Package collection implements operations over many experiment records:
// filtering by field value, unique-value listing, and classification into
// per-partition tables ready for export.
package collection

import (
	"go.uber.org/zap"

	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/exfor"
	"github.com/exfortools/exfortab/pkg/logger"
	"github.com/exfortools/exfortab/pkg/table"
)

// unknownField builds the not-found failure for a bad field name,
// carrying the full list of addressable fields.
func unknownField(field string) error {
	return errors.New(errors.ErrorTypeNotFound, "unknown record field").
		WithDetail("field", field).
		WithDetail("known_fields", exfor.FieldNames())
}

// Filter returns the records whose field equals value, compared on the
// value's text form. An unknown field is an error; zero matches is an
// empty result with a logged diagnostic naming the values that do occur.
func Filter(records []*exfor.Record, field, value string) ([]*exfor.Record, error) {
	if !exfor.ValidField(field) {
		return nil, unknownField(field)
	}

	matched := make([]*exfor.Record, 0, len(records))
	for _, rec := range records {
		v, _ := rec.Field(field)
		if v.String() == value {
			matched = append(matched, rec)
		}
	}

	if len(matched) == 0 {
		observed, _ := UniqueValues(records, field)
		logger.Get().Info("filter matched no records",
			zap.String("field", field),
			zap.String("value", value),
			zap.Strings("observed_values", valueStrings(observed)))
	}
	return matched, nil
}

// UniqueValues returns the deduplicated values of a field across the
// collection, sorted on their text form. Null fields are excluded.
func UniqueValues(records []*exfor.Record, field string) ([]table.Value, error) {
	if !exfor.ValidField(field) {
		return nil, unknownField(field)
	}

	seen := make(map[string]bool, len(records))
	var unique []table.Value
	for _, rec := range records {
		v, _ := rec.Field(field)
		if v.IsNull() {
			continue
		}
		key := v.String()
		if !seen[key] {
			seen[key] = true
			unique = append(unique, v)
		}
	}
	table.SortValues(unique)
	return unique, nil
}

// Classify partitions the collection by a field's unique values and
// flattens each partition into one table: every member record joined
// with its broadcast metadata, concatenated row-wise. The keys of the
// returned map are the partition values in text form.
func Classify(records []*exfor.Record, field string) (map[string]*table.Table, error) {
	values, err := UniqueValues(records, field)
	if err != nil {
		return nil, err
	}

	partitions := make(map[string]*table.Table, len(values))
	for _, want := range values {
		key := want.String()
		part := table.New()
		for _, rec := range records {
			v, _ := rec.Field(field)
			if v.String() != key {
				continue
			}
			flat, err := rec.ToTable()
			if err != nil {
				return nil, err
			}
			if err := part.Append(flat); err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeData, "concatenating partition table").
					WithDetail("field", field).
					WithDetail("value", key)
			}
		}
		partitions[key] = part
	}
	return partitions, nil
}

// ClassifyByShape prepares every record for model input and groups the
// resulting tables by identical column-name tuples, concatenating each
// group. Records whose tables share a shape land in the same output
// table; groups are returned in first-seen order.
func ClassifyByShape(records []*exfor.Record, vocab *exfor.Vocabulary) ([]*table.Table, error) {
	var (
		groups []*table.Table
		index  = make(map[string]int)
	)
	for _, rec := range records {
		prepared, err := rec.Prepare(vocab)
		if err != nil {
			return nil, err
		}
		key := shapeKey(prepared)
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, table.New())
		}
		if err := groups[gi].Append(prepared); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "concatenating shape group")
		}
	}
	return groups, nil
}

// shapeKey folds a table's column names into a grouping key. The NUL
// separator cannot occur in a column name.
func shapeKey(t *table.Table) string {
	key := make([]byte, 0, 64)
	for _, name := range t.Headers() {
		key = append(key, name...)
		key = append(key, 0)
	}
	return string(key)
}

func valueStrings(values []table.Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}
