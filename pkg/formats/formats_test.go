package formats

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exfortools/exfortab/pkg/jsonutil"
	"github.com/exfortools/exfortab/pkg/table"
)

func exportTable(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New()
	require.NoError(t, tbl.AddColumn(table.FloatSeries("E", []float64{1, 2})))
	require.NoError(t, tbl.AddColumn(table.Series{Name: "MT", Values: []table.Value{table.Int(102), table.Int(102)}}))
	require.NoError(t, tbl.AddColumn(table.Series{Name: "quantity", Values: []table.Value{table.String("Cross section"), table.Null()}}))
	return tbl
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" Parquet ")
	require.NoError(t, err)
	assert.Equal(t, Parquet, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestFormatExt(t *testing.T) {
	assert.Equal(t, ".csv", CSV.Ext())
	assert.Equal(t, ".parquet", Parquet.Ext())
	assert.Equal(t, ".avro", Avro.Ext())
}

func TestInferKinds(t *testing.T) {
	tbl := exportTable(t)
	require.NoError(t, tbl.AddColumn(table.Series{Name: "gap", Values: []table.Value{table.Null(), table.Null()}}))
	require.NoError(t, tbl.AddColumn(table.Series{Name: "mixed", Values: []table.Value{table.Int(1), table.Float(1.5)}}))

	kinds := inferKinds(tbl)
	assert.Equal(t, colFloat, kinds[0])
	assert.Equal(t, colInt, kinds[1])
	assert.Equal(t, colString, kinds[2])
	// All-null exports as float so the cells can carry NaN.
	assert.Equal(t, colFloat, kinds[3])
	assert.Equal(t, colFloat, kinds[4])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, exportTable(t), &WriterConfig{Format: CSV}))

	want := "E,MT,quantity\n" +
		"1,102,Cross section\n" +
		"2,102,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVQuoting(t *testing.T) {
	tbl := table.New()
	require.NoError(t, tbl.AddColumn(table.Series{Name: "E", Values: []table.Value{table.Int(1)}}))
	require.NoError(t, tbl.AddColumn(table.Series{Name: "reaction", Values: []table.Value{table.String("(p, el)")}}))

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, tbl, &WriterConfig{Format: CSV}))
	assert.Equal(t, "E,reaction\n1,\"(p, el)\"\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, exportTable(t), &WriterConfig{Format: JSON}))

	var rows []map[string]table.Value
	require.NoError(t, jsonutil.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.True(t, rows[0]["quantity"].Equal(table.String("Cross section")))
	assert.True(t, rows[1]["quantity"].IsNull())
	mt, ok := rows[0]["MT"].AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(102), mt)
}

func TestWriteArrowProducesIPCFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, exportTable(t), &WriterConfig{Format: Arrow}))
	// Arrow IPC files open with the magic bytes.
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("ARROW1")))
}

func TestWriteParquetProducesFile(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultWriterConfig()
	cfg.Format = Parquet
	require.NoError(t, WriteTable(&buf, exportTable(t), cfg))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PAR1")))
}

func TestWriteAvroProducesFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, exportTable(t), &WriterConfig{Format: Avro}))
	// OCF files open with the Obj magic.
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("Obj")))
}

func TestWriteTableNaNCells(t *testing.T) {
	tbl := table.New()
	require.NoError(t, tbl.AddColumn(table.FloatSeries("dE", []float64{math.NaN(), 0.1})))

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, tbl, &WriterConfig{Format: CSV}))
	assert.Equal(t, "dE\nNaN\n0.1\n", buf.String())
}

func TestWriteTableFileCompressedCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv.gz")
	require.NoError(t, WriteTableFile(path, exportTable(t), &WriterConfig{Format: CSV}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestAvroFieldNames(t *testing.T) {
	names := avroFieldNames([]string{"Target Z", "Target-Z", "2n", "X4_ID"})
	assert.Equal(t, "Target_Z", names[0])
	// Collisions get a numeric suffix.
	assert.Equal(t, "Target_Z_1", names[1])
	// Leading digits are guarded.
	assert.Equal(t, "_2n", names[2])
	assert.Equal(t, "X4_ID", names[3])
}

func TestSanitizeAvroName(t *testing.T) {
	assert.Equal(t, "qty_Cross_section", sanitizeAvroName("qty_Cross section"))
	assert.Equal(t, "reaction__p_g_", sanitizeAvroName("reaction_(p,g)"))
	assert.Equal(t, "_", sanitizeAvroName(""))
}
