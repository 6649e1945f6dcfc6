package ingest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exfortools/exfortab/pkg/config"
	"github.com/exfortools/exfortab/pkg/exfor"
	"github.com/exfortools/exfortab/pkg/testutil"
)

func runConfig(root string) *config.Config {
	cfg := config.Default()
	cfg.Ingest.Root = root
	return cfg
}

func TestRunnerIngestsLibrary(t *testing.T) {
	dir := t.TempDir()
	testutil.FixtureLibrary(t, dir)

	runner := NewRunner(runConfig(dir))
	require.NoError(t, runner.Run(testutil.TestContext(t)))

	records := runner.Records()
	require.Len(t, records, 2)
	assert.NotEmpty(t, runner.RunID())

	m := runner.Metrics()
	assert.Equal(t, 2, m["records"])
	assert.Equal(t, int64(5), m["rows"])
	assert.Equal(t, false, m["partial"])
}

func TestRunnerWritesArchive(t *testing.T) {
	dir := t.TempDir()
	testutil.FixtureLibrary(t, dir)
	archive := filepath.Join(t.TempDir(), "records.json.gz")

	cfg := runConfig(dir)
	cfg.Ingest.ArchivePath = archive
	runner := NewRunner(cfg)
	require.NoError(t, runner.Run(testutil.TestContext(t)))

	records, err := exfor.LoadArchive(archive)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRunnerPartialLibrary(t *testing.T) {
	dir := t.TempDir()
	testutil.FixtureLibrary(t, dir)
	testutil.WriteFixture(t, dir, "Zz/000/p-000-ZZ-0-xs", "   1.0  2.0\n")

	runner := NewRunner(runConfig(dir))
	require.NoError(t, runner.Run(testutil.TestContext(t)))
	assert.Len(t, runner.Records(), 2)
	assert.Equal(t, true, runner.Metrics()["partial"])
}

func TestRunnerFailFast(t *testing.T) {
	dir := t.TempDir()
	testutil.FixtureLibrary(t, dir)
	testutil.WriteFixture(t, dir, "Zz/000/p-000-ZZ-0-xs", "   1.0  2.0\n")

	cfg := runConfig(dir)
	cfg.Ingest.FailFast = true
	runner := NewRunner(cfg)
	assert.Error(t, runner.Run(testutil.TestContext(t)))
}
