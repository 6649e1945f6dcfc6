package collection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/exfor"
	"github.com/exfortools/exfortab/pkg/testutil"
)

func sampleRecords(t *testing.T) []*exfor.Record {
	t.Helper()
	full, err := exfor.ParseReader(strings.NewReader(testutil.SampleExperiment), "p-026-MG-12-xs")
	require.NoError(t, err)
	sparse, err := exfor.ParseReader(strings.NewReader(testutil.SampleExperimentSparse), "p-027-AL-13-ang")
	require.NoError(t, err)
	return []*exfor.Record{full, sparse}
}

func TestFilter(t *testing.T) {
	records := sampleRecords(t)

	matched, err := Filter(records, "quantity", "Cross section")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "p-026-MG-12-xs", matched[0].Title.String())

	// Numeric fields compare on their text form.
	matched, err = Filter(records, "MT", "102")
	require.NoError(t, err)
	assert.Len(t, matched, 1)
}

func TestFilterNoMatches(t *testing.T) {
	matched, err := Filter(sampleRecords(t), "quantity", "Resonance Parameters")
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestFilterUnknownField(t *testing.T) {
	_, err := Filter(sampleRecords(t), "flavour", "up")
	require.Error(t, err)

	e, ok := err.(*errors.Error)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeNotFound, e.Type)
	assert.Contains(t, e.Details, "known_fields")
}

func TestUniqueValues(t *testing.T) {
	records := sampleRecords(t)
	records = append(records, records[0])

	values, err := UniqueValues(records, "quantity")
	require.NoError(t, err)
	require.Len(t, values, 2)
	// Sorted on text form.
	assert.Equal(t, "Angular distribution", values[0].String())
	assert.Equal(t, "Cross section", values[1].String())

	// Null fields are excluded.
	values, err = UniqueValues(records, "MTrat")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestClassify(t *testing.T) {
	records := sampleRecords(t)

	partitions, err := Classify(records, "quantity")
	require.NoError(t, err)
	require.Len(t, partitions, 2)

	xs, ok := partitions["Cross section"]
	require.True(t, ok)
	assert.Equal(t, 3, xs.NumRows())
	require.NotNil(t, xs.Column("Experiment"))
	assert.Equal(t, "p-026-MG-12-xs", xs.Column("Experiment").Values[0].String())

	ang, ok := partitions["Angular distribution"]
	require.True(t, ok)
	assert.Equal(t, 2, ang.NumRows())
}

func TestClassifyByShape(t *testing.T) {
	records := sampleRecords(t)

	groups, err := ClassifyByShape(records, exfor.DefaultVocabulary())
	require.NoError(t, err)
	// Both fixtures share the four data headers, so flattening gives
	// one shape.
	require.Len(t, groups, 1)
	assert.Equal(t, 5, groups[0].NumRows())
	assert.NotNil(t, groups[0].Column("X4_ID"))
}

func TestPartitionFilename(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"Cross section", "Cross_section"},
		{"(p,n')g", "(p,n')g"},
		{"a/b:c", "a_b_c"},
		{"", "empty"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, partitionFilename(tt.value))
	}
}
