package exfor

import (
	"sort"
	"strconv"

	"github.com/exfortools/exfortab/pkg/table"
	stringpool "github.com/exfortools/exfortab/pkg/strings"
)

// valueKind selects the numeric parse attempted on a metadata value.
type valueKind uint8

const (
	kindString valueKind = iota
	kindInt
	kindFloat
)

// fieldSpec describes one metadata field: its canonical name (used by
// collection operations and the archive), the label written to files,
// the line prefix that recognizes it, and typed accessors.
type fieldSpec struct {
	name   string    // canonical field name, e.g. "target_Z"
	label  string    // file label, e.g. "Target Z"
	prefix string    // line prefix matched against "# ..." lines
	kind   valueKind // numeric parse to attempt on the raw value
	get    func(*Record) table.Value
	set    func(*Record, table.Value)
}

// fieldTable is the ordered matcher list for metadata lines. Order is
// load-bearing: matching is first-prefix-wins, so "MTrat" must precede
// "MT", and "Reaction" carries its colon to keep it distinct from other
// lines that begin identically.
var fieldTable = []fieldSpec{
	{
		name: "target_Z", label: "Target Z", prefix: "# Target Z", kind: kindInt,
		get: func(r *Record) table.Value { return r.TargetZ },
		set: func(r *Record, v table.Value) { r.TargetZ = v },
	},
	{
		name: "target_A", label: "Target A", prefix: "# Target A", kind: kindInt,
		get: func(r *Record) table.Value { return r.TargetA },
		set: func(r *Record, v table.Value) { r.TargetA = v },
	},
	{
		name: "target_state", label: "Target state", prefix: "# Target state", kind: kindInt,
		get: func(r *Record) table.Value { return r.TargetState },
		set: func(r *Record, v table.Value) { r.TargetState = v },
	},
	{
		name: "projectile", label: "Projectile", prefix: "# Projectile", kind: kindString,
		get: func(r *Record) table.Value { return r.Projectile },
		set: func(r *Record, v table.Value) { r.Projectile = v },
	},
	{
		name: "reaction", label: "Reaction", prefix: "# Reaction    :", kind: kindString,
		get: func(r *Record) table.Value { return r.Reaction },
		set: func(r *Record, v table.Value) { r.Reaction = v },
	},
	{
		name: "E_inc", label: "E-inc", prefix: "# E-inc", kind: kindString,
		get: func(r *Record) table.Value { return r.EInc },
		set: func(r *Record, v table.Value) { r.EInc = v },
	},
	{
		name: "final_Z", label: "Final Z", prefix: "# Final Z", kind: kindInt,
		get: func(r *Record) table.Value { return r.FinalZ },
		set: func(r *Record, v table.Value) { r.FinalZ = v },
	},
	{
		name: "final_A", label: "Final A", prefix: "# Final A", kind: kindInt,
		get: func(r *Record) table.Value { return r.FinalA },
		set: func(r *Record, v table.Value) { r.FinalA = v },
	},
	{
		name: "final_state", label: "Final state", prefix: "# Final state", kind: kindInt,
		get: func(r *Record) table.Value { return r.FinalState },
		set: func(r *Record, v table.Value) { r.FinalState = v },
	},
	{
		name: "MTrat", label: "MTrat", prefix: "# MTrat", kind: kindFloat,
		get: func(r *Record) table.Value { return r.MTRat },
		set: func(r *Record, v table.Value) { r.MTRat = v },
	},
	{
		name: "Ratio_isomer", label: "Ratio isomer", prefix: "# Ratio isomer", kind: kindFloat,
		get: func(r *Record) table.Value { return r.RatioIsomer },
		set: func(r *Record, v table.Value) { r.RatioIsomer = v },
	},
	{
		name: "quantity", label: "Quantity", prefix: "# Quantity", kind: kindString,
		get: func(r *Record) table.Value { return r.Quantity },
		set: func(r *Record, v table.Value) { r.Quantity = v },
	},
	{
		name: "frame", label: "Frame", prefix: "# Frame", kind: kindString,
		get: func(r *Record) table.Value { return r.Frame },
		set: func(r *Record, v table.Value) { r.Frame = v },
	},
	{
		name: "MF", label: "MF", prefix: "# MF", kind: kindInt,
		get: func(r *Record) table.Value { return r.MF },
		set: func(r *Record, v table.Value) { r.MF = v },
	},
	{
		name: "MT", label: "MT", prefix: "# MT", kind: kindInt,
		get: func(r *Record) table.Value { return r.MT },
		set: func(r *Record, v table.Value) { r.MT = v },
	},
	{
		name: "X4_ID", label: "X4 ID", prefix: "# X4 ID", kind: kindString,
		get: func(r *Record) table.Value { return r.X4ID },
		set: func(r *Record, v table.Value) { r.X4ID = v },
	},
	{
		name: "X4_code", label: "X4 code", prefix: "# X4 code", kind: kindString,
		get: func(r *Record) table.Value { return r.X4Code },
		set: func(r *Record, v table.Value) { r.X4Code = v },
	},
	{
		name: "author", label: "Author", prefix: "# Author", kind: kindString,
		get: func(r *Record) table.Value { return r.Author },
		set: func(r *Record, v table.Value) { r.Author = v },
	},
	{
		name: "year", label: "Year", prefix: "# Year", kind: kindInt,
		get: func(r *Record) table.Value { return r.Year },
		set: func(r *Record, v table.Value) { r.Year = v },
	},
	{
		name: "data_points", label: "Data points", prefix: "# Data points", kind: kindInt,
		get: func(r *Record) table.Value { return r.DataPoints },
		set: func(r *Record, v table.Value) { r.DataPoints = v },
	},
}

// extraFields are record fields that never appear as matchable metadata
// lines but are addressable by collection operations.
var extraFields = []fieldSpec{
	{
		name: "title", label: "Title", kind: kindString,
		get: func(r *Record) table.Value { return r.Title },
		set: func(r *Record, v table.Value) { r.Title = v },
	},
	{
		name: "reference", label: "Reference", kind: kindString,
		get: func(r *Record) table.Value { return r.Reference },
		set: func(r *Record, v table.Value) { r.Reference = v },
	},
}

// fieldByName resolves a canonical field name to its spec.
func fieldByName(name string) (*fieldSpec, bool) {
	for i := range fieldTable {
		if fieldTable[i].name == name {
			return &fieldTable[i], true
		}
	}
	for i := range extraFields {
		if extraFields[i].name == name {
			return &extraFields[i], true
		}
	}
	return nil, false
}

// FieldNames returns the canonical names of every addressable record
// field, sorted. Collection operations report this list when given an
// unknown field name.
func FieldNames() []string {
	names := make([]string, 0, len(fieldTable)+len(extraFields))
	for _, f := range fieldTable {
		names = append(names, f.name)
	}
	for _, f := range extraFields {
		names = append(names, f.name)
	}
	sort.Strings(names)
	return names
}

// ValidField reports whether name is an addressable record field.
func ValidField(name string) bool {
	_, ok := fieldByName(name)
	return ok
}

// Field returns the value of a record field by canonical name.
// The bool is false when the name is unknown.
func (r *Record) Field(name string) (table.Value, bool) {
	spec, ok := fieldByName(name)
	if !ok {
		return table.Null(), false
	}
	return spec.get(r), true
}

// parseValue converts the trimmed raw text after the colon into a typed
// value. An empty value is the null sentinel. A failed numeric parse
// keeps the trimmed text verbatim rather than failing; downstream
// transforms treat such verbatim strings as unusable-but-preserved.
func parseValue(kind valueKind, raw string) table.Value {
	trimmed := stringpool.TrimSpace(raw)
	if trimmed == "" {
		return table.Null()
	}
	switch kind {
	case kindInt:
		if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return table.Int(i)
		}
	case kindFloat:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return table.Float(f)
		}
	}
	return table.String(trimmed)
}
