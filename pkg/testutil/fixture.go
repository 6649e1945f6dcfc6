package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SampleExperiment is a small synthetic experiment file in the annotated
// text format: full metadata, a three-row data block, and a reference
// block closed by the marker-space line and the bare terminator.
const SampleExperiment = `# Target Z    :   12
# Target A    :   26
# Target state:
# Projectile  : p
# Reaction    : (p,g)
# E-inc       : 14.1 MeV
# Final Z     :   13
# Final A     :   27
# Final state :
# MTrat       :
# Ratio isomer:
# Quantity    : Cross section
# Frame       : L
# MF          :   3
# MT          : 102
# X4 ID       : A0123002
# X4 code     : (12-MG-26(P,G)13-AL-27,,SIG)
# Author      : Smith
# Year        : 1999
# Data points :    3
#     E             xs            dxs           dE
   1.000000E+00  5.000000E+00  1.000000E-01  0.000000E+00
   2.000000E+00  6.000000E+00  2.000000E-01  0.000000E+00
   3.000000E+00  7.000000E+00  3.000000E-01  0.000000E+00
# Reference   :
#  A.Smith, Journal 12, 34 (1999)
` + "# \n" + `#
`

// SampleExperimentSparse is the same experiment with most metadata
// absent and short data rows, exercising null fields and NaN padding.
const SampleExperimentSparse = `# Target Z    :   12
# Projectile  : p
# Reaction    : (p,el)
# Quantity    : Angular distribution
# Data points :    2
#     E             xs            dxs           dE
   1.500000E+00  2.500000E+00
   2.500000E+00  3.500000E+00  4.000000E-01
# Reference   :
#
#
`

// WriteFixture writes content under dir as name, creating parent
// directories, and returns the full path.
func WriteFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// FixtureLibrary lays out a miniature experiment library under dir:
// two element directories with one experiment file each, plus index
// entries that ingestion must skip.
func FixtureLibrary(t *testing.T, dir string) {
	t.Helper()
	WriteFixture(t, dir, filepath.Join("Mg", "026", "p-026-MG-12-xs"), SampleExperiment)
	WriteFixture(t, dir, filepath.Join("Al", "027", "p-027-AL-13-ang"), SampleExperimentSparse)
	WriteFixture(t, dir, filepath.Join("Al", "027", "p-027-AL-13-ruth"), "not an experiment\n")
	WriteFixture(t, dir, filepath.Join("Al", "027", "reactionlist"), "index data\n")
	WriteFixture(t, dir, filepath.Join("Mg", "xslist", "ignored"), "index data\n")
}
