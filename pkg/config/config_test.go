package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `version: 1
ingest:
  root: /data/exfortables/p
  archive_path: records.json.zst
  fail_fast: true
export:
  format: parquet
logging:
  level: debug
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/exfortables/p", cfg.Ingest.Root)
	assert.Equal(t, "records.json.zst", cfg.Ingest.ArchivePath)
	assert.True(t, cfg.Ingest.FailFast)
	assert.Equal(t, "parquet", cfg.Export.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unset sections keep their defaults.
	assert.Equal(t, "snappy", cfg.Export.Compression)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoadConfigEnvSubstitution(t *testing.T) {
	t.Setenv("EXFORTAB_ROOT", "/mnt/library")
	path := writeConfig(t, `version: 1
ingest:
  root: ${EXFORTAB_ROOT}
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/library", cfg.Ingest.Root)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad version", "version: 2\n"},
		{"bad format", "version: 1\nexport:\n  format: xlsx\n"},
		{"bad sampling rate", "version: 1\ntracing:\n  sampling_rate: 1.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Ingest.Root = "/data"
	cfg.Export.Format = "avro"
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Ingest.Root, got.Ingest.Root)
	assert.Equal(t, cfg.Export.Format, got.Export.Format)
}
