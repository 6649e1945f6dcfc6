package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl := New()
	require.NoError(t, tbl.AddColumn(FloatSeries("E", []float64{1, 2, 3})))
	require.NoError(t, tbl.AddColumn(FloatSeries("xs", []float64{5, 6, 7})))
	return tbl
}

func TestAddColumn(t *testing.T) {
	tbl := sampleTable(t)
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumCols())
	assert.Equal(t, []string{"E", "xs"}, tbl.Headers())

	// Mismatched length is rejected.
	err := tbl.AddColumn(FloatSeries("dxs", []float64{0.1}))
	assert.Error(t, err)

	// Same name overwrites in place without reordering.
	require.NoError(t, tbl.AddColumn(FloatSeries("E", []float64{10, 20, 30})))
	assert.Equal(t, []string{"E", "xs"}, tbl.Headers())
	assert.True(t, tbl.Cell(0, 0).Equal(Float(10)))
}

func TestAppend(t *testing.T) {
	a := sampleTable(t)
	b := sampleTable(t)
	require.NoError(t, a.Append(b))
	assert.Equal(t, 6, a.NumRows())
	assert.True(t, a.Cell(3, 0).Equal(Float(1)))

	mismatched := New()
	require.NoError(t, mismatched.AddColumn(FloatSeries("angle", []float64{30})))
	assert.Error(t, a.Append(mismatched))
}

func TestCloneIsIndependent(t *testing.T) {
	a := sampleTable(t)
	b := a.Clone()
	require.NoError(t, b.AddColumn(ConstSeries("frame", String("L"), b.NumRows())))
	assert.Equal(t, 2, a.NumCols())
	assert.Equal(t, 3, b.NumCols())

	b.Columns[0].Values[0] = Float(99)
	assert.True(t, a.Cell(0, 0).Equal(Float(1)))
}

func TestRender(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.AddColumn(FloatSeries("E", []float64{1, 20.5})))
	require.NoError(t, tbl.AddColumn(FloatSeries("dxs", []float64{0.5, math.NaN()})))

	want := "   E dxs\n" +
		"   1 0.5\n" +
		"20.5 NaN\n"
	assert.Equal(t, want, tbl.Render())
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", New().Render())
}

func TestFloatColumn(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.AddColumn(Series{Name: "mixed", Values: []Value{Int(1), Float(2.5), String("x"), Null()}}))
	got := tbl.FloatColumn(0)
	assert.Equal(t, 1.0, got[0])
	assert.Equal(t, 2.5, got[1])
	assert.True(t, math.IsNaN(got[2]))
	assert.True(t, math.IsNaN(got[3]))
}

func TestAllNaNOrZero(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.AddColumn(FloatSeries("dE", []float64{0, math.NaN(), 0})))
	require.NoError(t, tbl.AddColumn(FloatSeries("dxs", []float64{0, 0.1, 0})))
	assert.True(t, tbl.AllNaNOrZero(0))
	assert.False(t, tbl.AllNaNOrZero(1))
}

func TestClean(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.AddColumn(FloatSeries("E", []float64{1, 2})))
	require.NoError(t, tbl.AddColumn(FloatSeries("xs", []float64{5, 6})))
	require.NoError(t, tbl.AddColumn(FloatSeries("dxs", []float64{0.1, 0.2})))
	require.NoError(t, tbl.AddColumn(ConstSeries("frame_L", Int(1), 2)))

	cleaned := tbl.Clean(false)
	assert.Equal(t, []string{"E", "xs"}, cleaned.Headers())

	withUnc := tbl.Clean(true)
	assert.Equal(t, []string{"E", "xs", "dxs"}, withUnc.Headers())

	// Source table keeps every column.
	assert.Equal(t, 4, tbl.NumCols())
}
