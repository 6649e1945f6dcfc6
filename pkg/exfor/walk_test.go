package exfor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exfortools/exfortab/pkg/table"
	"github.com/exfortools/exfortab/pkg/testutil"
)

func TestSkipEntry(t *testing.T) {
	tests := []struct {
		name  string
		isDir bool
		want  bool
	}{
		{"p-026-MG-12-xs", false, false},
		{"p-027-AL-13-ruth", false, true},
		{"reactionlist", false, true},
		{"reactionlist.gz", false, true},
		{"xslist", true, true},
		{"026", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, skipEntry(tt.name, tt.isDir))
		})
	}
}

func TestReadLibrary(t *testing.T) {
	dir := t.TempDir()
	testutil.FixtureLibrary(t, dir)

	records, err := ReadLibrary(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Lexical walk order: Al before Mg.
	assert.True(t, records[0].Title.Equal(table.String("p-027-AL-13-ang")))
	assert.True(t, records[1].Title.Equal(table.String("p-026-MG-12-xs")))
}

func TestReadLibraryKeepsPartialOnError(t *testing.T) {
	dir := t.TempDir()
	testutil.FixtureLibrary(t, dir)
	testutil.WriteFixture(t, dir, "Zz/000/p-000-ZZ-0-xs", "   1.0  2.0\n")

	records, err := ReadLibrary(context.Background(), dir)
	require.Error(t, err)
	assert.Len(t, records, 2)
}

func TestReadLibraryCanceled(t *testing.T) {
	dir := t.TempDir()
	testutil.FixtureLibrary(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadLibrary(ctx, dir)
	assert.Error(t, err)
}
