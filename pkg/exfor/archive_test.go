package exfor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exfortools/exfortab/pkg/table"
)

func TestArchiveRoundTrip(t *testing.T) {
	records := sampleRecords(t)
	path := filepath.Join(t.TempDir(), "records.json")

	require.NoError(t, SaveArchive(path, "run-1", records))
	got, err := LoadArchive(path)
	require.NoError(t, err)
	require.Len(t, got, len(records))

	assert.True(t, got[0].Title.Equal(records[0].Title))
	assert.True(t, got[0].EInc.Equal(records[0].EInc))
	assert.True(t, got[0].Reference.Equal(records[0].Reference))
	assert.True(t, got[1].MT.IsNull())

	// Archives carry the fields batch text drops.
	assert.True(t, got[0].TargetZ.Equal(table.Int(12)))
	assert.True(t, got[0].Projectile.Equal(table.String("p")))

	// Integral float cells come back as ints; values, not kinds, are
	// what survives JSON.
	require.Equal(t, records[0].Data.NumRows(), got[0].Data.NumRows())
	f, ok := got[0].Data.Cell(0, 0).AsFloat()
	require.True(t, ok)
	assert.Equal(t, 1.0, f)
}

func TestArchiveCompressed(t *testing.T) {
	records := sampleRecords(t)
	path := filepath.Join(t.TempDir(), "records.json.gz")

	require.NoError(t, SaveArchive(path, "", records))
	got, err := LoadArchive(path)
	require.NoError(t, err)
	assert.Len(t, got, len(records))
}

func TestLoadArchiveVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	content := `{"version": 99, "run_id": "x", "records": []}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadArchive(path)
	assert.Error(t, err)
}
