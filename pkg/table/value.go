// Package table provides the tabular data model for experiment datasets:
// a tagged scalar Value, named Series of values, and an ordered Table with
// rendering, cleaning, and concatenation operations.
//
// The model mirrors what experiment files carry: four positional numeric
// columns, later widened by broadcast metadata columns and one-hot
// indicator columns. Every cell is a Value so that absent metadata stays
// representable as a first-class null rather than an empty string or zero.
package table

import (
	"math"
	"sort"
	"strconv"

	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/jsonutil"
	stringpool "github.com/exfortools/exfortab/pkg/strings"
)

// Kind identifies the variant a Value holds.
type Kind uint8

const (
	// KindNull is the "field not present" sentinel, distinct from an
	// empty string and from zero.
	KindNull Kind = iota
	// KindInt holds a 64-bit integer.
	KindInt
	// KindFloat holds a 64-bit float. NaN is a valid payload and marks
	// a missing numeric cell inside an otherwise populated column.
	KindFloat
	// KindString holds a string, including verbatim text kept when a
	// numeric parse failed.
	KindString
)

// Value is a tagged scalar: null, integer, float, or string.
// The zero Value is null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Null returns the null sentinel value.
func Null() Value { return Value{} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null sentinel.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsInt returns the integer payload. The bool is false unless the value
// holds an integer.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// AsFloat returns the value as a float64. Integers widen; nulls and
// strings report false.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// AsString returns the string payload. The bool is false unless the
// value holds a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Float64 returns the value as a float64 with NaN standing in for
// anything non-numeric. This is the positional-column view used by
// rendering, export, and plotting.
func (v Value) Float64() float64 {
	if f, ok := v.AsFloat(); ok {
		return f
	}
	return math.NaN()
}

// Equal reports exact equality: same kind and same payload. Two NaN
// floats compare equal so that missing cells round-trip.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt:
		return v.i == other.i
	case KindFloat:
		if math.IsNaN(v.f) && math.IsNaN(other.f) {
			return true
		}
		return v.f == other.f
	default:
		return v.s == other.s
	}
}

// String renders the value for metadata lines and table cells.
// Null renders as the empty string; floats use the shortest
// representation that round-trips.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// MarshalJSON encodes null as JSON null, numbers as JSON numbers, and
// strings as JSON strings. NaN has no JSON representation and encodes
// as null; the float column padding survives because positional columns
// reconstruct missing cells as NaN on load.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.f, 'g', -1, 64)), nil
	default:
		return jsonutil.Marshal(v.s)
	}
}

// UnmarshalJSON decodes the JSON forms produced by MarshalJSON.
// Numbers without a fractional part decode as integers.
func (v *Value) UnmarshalJSON(data []byte) error {
	s := stringpool.TrimSpace(stringpool.BytesToString(data))
	switch {
	case s == "null":
		*v = Null()
		return nil
	case len(s) > 0 && s[0] == '"':
		var str string
		if err := jsonutil.Unmarshal(data, &str); err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "decoding string value")
		}
		*v = String(str)
		return nil
	default:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			*v = Int(i)
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "decoding numeric value")
		}
		*v = Float(f)
		return nil
	}
}

// SortValues orders values by their rendered string form. Collection
// operations report observed and unique values in this order.
func SortValues(values []Value) {
	sort.Slice(values, func(i, j int) bool {
		return values[i].String() < values[j].String()
	})
}
