// Package config provides YAML configuration for the experiment toolkit:
// one Config struct with sections for ingest, encoding, export, logging,
// and tracing, loaded with ${VAR_NAME} environment substitution and
// saved back as YAML.
package config

import (
	"fmt"

	"github.com/exfortools/exfortab/pkg/observability"
)

// IngestConfig controls library ingestion.
type IngestConfig struct {
	// Root is the library directory walked for experiment files.
	Root string `yaml:"root" json:"root"`
	// ArchivePath, when set, receives a JSON archive of the ingested
	// records. A compression suffix on the path is honored.
	ArchivePath string `yaml:"archive_path" json:"archive_path"`
	// FailFast stops at the first unparsable file instead of keeping
	// the partial collection.
	FailFast bool `yaml:"fail_fast" json:"fail_fast"`
}

// EncodeConfig controls flattening and one-hot encoding.
type EncodeConfig struct {
	// VocabularyPath overrides the built-in category vocabulary.
	VocabularyPath string `yaml:"vocabulary_path" json:"vocabulary_path"`
}

// ExportConfig controls table export.
type ExportConfig struct {
	// Format names the export format: csv, json, arrow, parquet, avro.
	Format string `yaml:"format" json:"format"`
	// Compression is the parquet/avro block compression.
	Compression string `yaml:"compression" json:"compression"`
	// Dir receives per-partition export files.
	Dir string `yaml:"dir" json:"dir"`
	// Pretty indents JSON output.
	Pretty bool `yaml:"pretty" json:"pretty"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level" json:"level"`
	Development bool   `yaml:"development" json:"development"`
}

// Config is the application configuration.
type Config struct {
	Version int                  `yaml:"version" json:"version"`
	Ingest  IngestConfig         `yaml:"ingest" json:"ingest"`
	Encode  EncodeConfig         `yaml:"encode" json:"encode"`
	Export  ExportConfig         `yaml:"export" json:"export"`
	Logging LoggingConfig        `yaml:"logging" json:"logging"`
	Tracing observability.Config `yaml:"tracing" json:"tracing"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Version: 1,
		Ingest: IngestConfig{
			Root: ".",
		},
		Export: ExportConfig{
			Format:      "csv",
			Compression: "snappy",
			Dir:         "export",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Tracing: observability.DefaultConfig(),
	}
}

// Validate checks cross-field constraints before a run starts.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version %d", c.Version)
	}
	if c.Ingest.Root == "" {
		return fmt.Errorf("ingest.root must not be empty")
	}
	switch c.Export.Format {
	case "", "csv", "json", "arrow", "parquet", "avro":
	default:
		return fmt.Errorf("unknown export format %q", c.Export.Format)
	}
	if c.Tracing.SamplingRate < 0 || c.Tracing.SamplingRate > 1 {
		return fmt.Errorf("tracing.sampling_rate must be in [0, 1]")
	}
	return nil
}

// LoadConfig reads an application config from a YAML file and validates
// it. Fields missing from the file keep the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if err := Load(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
