package plot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exfortools/exfortab/pkg/exfor"
	"github.com/exfortools/exfortab/pkg/testutil"
)

func plotRecords(t *testing.T) []*exfor.Record {
	t.Helper()
	full, err := exfor.ParseReader(strings.NewReader(testutil.SampleExperiment), "p-026-MG-12-xs")
	require.NoError(t, err)
	sparse, err := exfor.ParseReader(strings.NewReader(testutil.SampleExperimentSparse), "p-027-AL-13-ang")
	require.NoError(t, err)
	return []*exfor.Record{full, sparse}
}

func assertImageWritten(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotRecord(t *testing.T) {
	rec := plotRecords(t)[0]
	path := filepath.Join(t.TempDir(), "xs.png")

	require.NoError(t, NewGonum().PlotRecord(rec, path, Options{}))
	assertImageWritten(t, path)
}

func TestPlotRecordLogAxes(t *testing.T) {
	rec := plotRecords(t)[0]
	path := filepath.Join(t.TempDir(), "xs-log.png")

	require.NoError(t, NewGonum().PlotRecord(rec, path, Options{XLog: true, YLog: true}))
	assertImageWritten(t, path)
}

func TestPlotRecordEmptyData(t *testing.T) {
	rec := exfor.NewRecord()
	err := NewGonum().PlotRecord(rec, filepath.Join(t.TempDir(), "empty.png"), Options{})
	assert.Error(t, err)
}

func TestPlotRecords(t *testing.T) {
	records := plotRecords(t)
	path := filepath.Join(t.TempDir(), "combined.svg")

	require.NoError(t, NewGonum().PlotRecords(records, path, Options{Title: "Experiments"}))
	assertImageWritten(t, path)
}

func TestPlotRecordsHeaderMismatch(t *testing.T) {
	records := plotRecords(t)
	mismatch, err := exfor.ParseReader(strings.NewReader(
		"# Data points :    1\n#     angle         xs            dxs           dE\n 30.0 1.5\n"), "odd")
	require.NoError(t, err)

	err = NewGonum().PlotRecords(append(records, mismatch), filepath.Join(t.TempDir(), "bad.png"), Options{})
	assert.Error(t, err)
}
