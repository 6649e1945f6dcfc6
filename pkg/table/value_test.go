package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exfortools/exfortab/pkg/jsonutil"
)

func TestValueKinds(t *testing.T) {
	assert.True(t, Null().IsNull())
	assert.Equal(t, KindInt, Int(3).Kind())
	assert.Equal(t, KindFloat, Float(3.5).Kind())
	assert.Equal(t, KindString, String("xs").Kind())
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null is empty", Null(), ""},
		{"int", Int(102), "102"},
		{"float shortest form", Float(14.1), "14.1"},
		{"float scientific", Float(5e-7), "5e-07"},
		{"nan", Float(math.NaN()), "NaN"},
		{"string verbatim", String("(p,g)"), "(p,g)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Null().Equal(Null()))
	assert.True(t, Int(3).Equal(Int(3)))
	assert.False(t, Int(3).Equal(Float(3)))
	assert.True(t, Float(math.NaN()).Equal(Float(math.NaN())))
	assert.False(t, Float(math.NaN()).Equal(Float(0)))
	assert.True(t, String("C").Equal(String("C")))
	assert.False(t, String("C").Equal(String("L")))
}

func TestValueCoercion(t *testing.T) {
	i, ok := Int(7).AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(7), i)

	// Float truncates toward zero.
	i, ok = Float(7.9).AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(7), i)

	_, ok = String("7").AsInt()
	assert.False(t, ok)

	// Int widens to float.
	f, ok := Int(7).AsFloat()
	require.True(t, ok)
	assert.Equal(t, 7.0, f)

	assert.True(t, math.IsNaN(String("xs").Float64()))
	assert.True(t, math.IsNaN(Null().Float64()))
}

func TestValueJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want Value
	}{
		{"null", Null(), Null()},
		{"int", Int(1999), Int(1999)},
		{"float", Float(14.1), Float(14.1)},
		{"string", String("A0123002"), String("A0123002")},
		// Integral floats come back as ints, NaN comes back null.
		{"integral float narrows", Float(3), Int(3)},
		{"nan collapses to null", Float(math.NaN()), Null()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := jsonutil.Marshal(tt.v)
			require.NoError(t, err)
			var got Value
			require.NoError(t, jsonutil.Unmarshal(data, &got))
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestSortValues(t *testing.T) {
	values := []Value{String("xs"), String("ang"), String("res")}
	SortValues(values)
	assert.Equal(t, []Value{String("ang"), String("res"), String("xs")}, values)
}
