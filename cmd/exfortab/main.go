package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/exfortools/exfortab/internal/ingest"
	"github.com/exfortools/exfortab/pkg/collection"
	"github.com/exfortools/exfortab/pkg/compression"
	"github.com/exfortools/exfortab/pkg/config"
	"github.com/exfortools/exfortab/pkg/exfor"
	"github.com/exfortools/exfortab/pkg/formats"
	"github.com/exfortools/exfortab/pkg/jsonutil"
	"github.com/exfortools/exfortab/pkg/logger"
	"github.com/exfortools/exfortab/pkg/observability"
	"github.com/exfortools/exfortab/pkg/plot"
	"github.com/exfortools/exfortab/pkg/table"
)

var version = "0.1.0"

func main() {
	var configFile string
	var cfg *config.Config

	root := &cobra.Command{
		Use:   "exfortab",
		Short: "exfortab - proton-reaction experiment data toolkit",
		Long: `exfortab ingests annotated experiment data files, serializes them as
batch collections or JSON archives, and flattens them into tables for
filtering, classification, export, and plotting.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(configFile)
			if err != nil {
				return err
			}
			if err := logger.Init(logger.Config{
				Level:       cfg.Logging.Level,
				Development: cfg.Logging.Development,
			}); err != nil {
				return fmt.Errorf("logger initialization: %w", err)
			}
			if err := observability.Initialize(cfg.Tracing); err != nil {
				return fmt.Errorf("tracing initialization: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := observability.Shutdown(ctx); err != nil {
				logger.Get().Warn("tracer shutdown failed", zap.Error(err))
			}
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to YAML configuration file (optional)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("exfortab v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(newIngestCmd(&cfg))
	root.AddCommand(newFilterCmd(&cfg))
	root.AddCommand(newUniqueCmd(&cfg))
	root.AddCommand(newClassifyCmd(&cfg))
	root.AddCommand(newExportCmd(&cfg))
	root.AddCommand(newPlotCmd(&cfg))
	root.AddCommand(newConvertCmd(&cfg))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(path)
}

// loadRecords reads a collection from any of the supported shapes: a
// library directory, a JSON archive, a batch text file, or a single
// experiment file. Compression suffixes on file paths are honored.
func loadRecords(ctx context.Context, input string) ([]*exfor.Record, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", input, err)
	}
	if info.IsDir() {
		return exfor.ReadLibrary(ctx, input)
	}
	if strings.HasSuffix(compression.TrimSuffix(input), ".json") {
		return exfor.LoadArchive(input)
	}
	batch, err := isBatchFile(input)
	if err != nil {
		return nil, err
	}
	if batch {
		return exfor.ReadCollectionFile(ctx, input)
	}
	rec, err := exfor.ParseFile(input)
	if err != nil {
		return nil, err
	}
	return []*exfor.Record{rec}, nil
}

// isBatchFile distinguishes a batch collection from a single experiment
// file by its first line: collections always open with a title line.
func isBatchFile(path string) (bool, error) {
	rc, err := compression.OpenReader(path)
	if err != nil {
		return false, fmt.Errorf("reading input %s: %w", path, err)
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	return strings.HasPrefix(scanner.Text(), "# Title"), nil
}

func loadVocabulary(path string) (*exfor.Vocabulary, error) {
	if path == "" {
		return exfor.DefaultVocabulary(), nil
	}
	return exfor.LoadVocabulary(path)
}

func writerConfig(format, compressionName string, pretty bool) (*formats.WriterConfig, error) {
	f, err := formats.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	cfg := formats.DefaultWriterConfig()
	cfg.Format = f
	cfg.Pretty = pretty
	if compressionName != "" {
		cfg.Compression = compressionName
	}
	return cfg, nil
}

func newIngestCmd(cfg **config.Config) *cobra.Command {
	var rootDir, archivePath string
	var failFast bool

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Walk a library directory and parse every experiment file",
		Long: `Walk a library directory, parse every experiment file into a record,
and optionally snapshot the collection as a JSON archive. Run statistics
are printed as JSON when the run completes.

Example:
  exfortab ingest --root exfortables/p --archive records.json.gz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := *cfg
			if rootDir != "" {
				c.Ingest.Root = rootDir
			}
			if archivePath != "" {
				c.Ingest.ArchivePath = archivePath
			}
			if cmd.Flags().Changed("fail-fast") {
				c.Ingest.FailFast = failFast
			}

			runner := ingest.NewRunner(c)
			if err := runner.Run(cmd.Context()); err != nil {
				return err
			}
			out, err := jsonutil.MarshalIndent(runner.Metrics(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&rootDir, "root", "r", "", "Library directory to walk (overrides config)")
	cmd.Flags().StringVarP(&archivePath, "archive", "a", "", "Archive output path (overrides config)")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first unparsable file")
	return cmd
}

func newFilterCmd(cfg **config.Config) *cobra.Command {
	var input, field, value, output string

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Keep records whose field matches a value",
		Long: `Filter a collection on one metadata field and write the matching
records as a batch text file.

Example:
  exfortab filter --input records.json --field quantity --value xs --output xs.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadRecords(cmd.Context(), input)
			if err != nil {
				return err
			}
			matched, err := collection.Filter(records, field, value)
			if err != nil {
				return err
			}
			if err := exfor.WriteCollectionFile(cmd.Context(), output, matched); err != nil {
				return err
			}
			fmt.Printf("matched %d of %d records\n", len(matched), len(records))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input collection: library directory, archive, or batch file (required)")
	cmd.Flags().StringVarP(&field, "field", "f", "", "Metadata field to match (required)")
	cmd.Flags().StringVarP(&value, "value", "v", "", "Value to match (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Batch text output path (required)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("value")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newUniqueCmd(cfg **config.Config) *cobra.Command {
	var input, field string

	cmd := &cobra.Command{
		Use:   "unique",
		Short: "Print the distinct values a field takes across a collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadRecords(cmd.Context(), input)
			if err != nil {
				return err
			}
			values, err := collection.UniqueValues(records, field)
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Println(v.String())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input collection (required)")
	cmd.Flags().StringVarP(&field, "field", "f", "", "Metadata field (required)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}

func newClassifyCmd(cfg **config.Config) *cobra.Command {
	var input, field, dir, format, compressionName, vocabPath string
	var byShape bool

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Partition a collection into per-value tables and export them",
		Long: `Group the collection by one metadata field, or by table shape after
flattening, and export one file per partition.

Examples:
  exfortab classify --input records.json --field quantity --dir out
  exfortab classify --input records.json --by-shape --dir out --format parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if byShape == (field != "") {
				return fmt.Errorf("exactly one of --field and --by-shape must be given")
			}
			records, err := loadRecords(cmd.Context(), input)
			if err != nil {
				return err
			}
			wcfg, err := writerConfig(format, compressionName, false)
			if err != nil {
				return err
			}

			var partitions map[string]*table.Table
			if byShape {
				vocab, err := loadVocabulary(vocabPath)
				if err != nil {
					return err
				}
				tables, err := collection.ClassifyByShape(records, vocab)
				if err != nil {
					return err
				}
				partitions = make(map[string]*table.Table, len(tables))
				for i, t := range tables {
					partitions[fmt.Sprintf("shape_%02d", i)] = t
				}
			} else {
				partitions, err = collection.Classify(records, field)
				if err != nil {
					return err
				}
			}

			if err := collection.ExportPartitions(dir, partitions, wcfg); err != nil {
				return err
			}
			fmt.Printf("wrote %d partitions to %s\n", len(partitions), dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input collection (required)")
	cmd.Flags().StringVarP(&field, "field", "f", "", "Metadata field to partition on")
	cmd.Flags().BoolVar(&byShape, "by-shape", false, "Partition flattened records by column shape instead of a field")
	cmd.Flags().StringVarP(&dir, "dir", "d", "export", "Output directory")
	cmd.Flags().StringVar(&format, "format", "csv", "Export format (csv, json, arrow, parquet, avro)")
	cmd.Flags().StringVar(&compressionName, "compression", "", "Parquet/Avro block compression")
	cmd.Flags().StringVar(&vocabPath, "vocabulary", "", "Category vocabulary YAML (defaults to the built-in set)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newExportCmd(cfg **config.Config) *cobra.Command {
	var input, output, dir, format, compressionName, vocabPath string
	var pretty bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Flatten records and write them in an interchange format",
		Long: `Flatten every record into its model-ready table and export the result.
Records sharing a column shape are concatenated. A single shape may be
written to one file with --output; mixed shapes go to a directory.

Examples:
  exfortab export --input records.json --output xs.parquet --format parquet
  exfortab export --input library/ --dir out --format avro`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := *cfg
			if format == "" {
				format = c.Export.Format
			}
			if compressionName == "" {
				compressionName = c.Export.Compression
			}
			records, err := loadRecords(cmd.Context(), input)
			if err != nil {
				return err
			}
			vocab, err := loadVocabulary(vocabPath)
			if err != nil {
				return err
			}
			wcfg, err := writerConfig(format, compressionName, pretty)
			if err != nil {
				return err
			}
			tables, err := collection.ClassifyByShape(records, vocab)
			if err != nil {
				return err
			}

			if output != "" {
				if len(tables) != 1 {
					return fmt.Errorf("collection has %d column shapes; use --dir to export one file per shape", len(tables))
				}
				return formats.WriteTableFile(output, tables[0], wcfg)
			}
			if dir == "" {
				dir = c.Export.Dir
			}
			partitions := make(map[string]*table.Table, len(tables))
			for i, t := range tables {
				partitions[fmt.Sprintf("shape_%02d", i)] = t
			}
			if err := collection.ExportPartitions(dir, partitions, wcfg); err != nil {
				return err
			}
			fmt.Printf("wrote %d tables to %s\n", len(tables), dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input collection (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file for a single-shape collection")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Output directory for mixed-shape collections")
	cmd.Flags().StringVar(&format, "format", "", "Export format (csv, json, arrow, parquet, avro)")
	cmd.Flags().StringVar(&compressionName, "compression", "", "Parquet/Avro block compression")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent JSON output")
	cmd.Flags().StringVar(&vocabPath, "vocabulary", "", "Category vocabulary YAML (defaults to the built-in set)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newPlotCmd(cfg **config.Config) *cobra.Command {
	var input, output, title string
	var xlog, ylog bool

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render a collection as a scatter plot with error bars",
		Long: `Render the data tables of a collection on shared axes, one series per
record, with a legend keyed by X4 identifier. All records must share
column headers. A single-record input is titled by the record itself.

Example:
  exfortab plot --input p-026-MG-12-xs.txt --output xs.png --ylog`,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadRecords(cmd.Context(), input)
			if err != nil {
				return err
			}
			opts := plot.Options{XLog: xlog, YLog: ylog, Title: title}
			p := plot.NewGonum()
			if len(records) == 1 {
				return p.PlotRecord(records[0], output, opts)
			}
			return p.PlotRecords(records, output, opts)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input collection or experiment file (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Image output path, extension selects the format (required)")
	cmd.Flags().StringVar(&title, "title", "", "Figure title override")
	cmd.Flags().BoolVar(&xlog, "xlog", false, "Logarithmic x axis")
	cmd.Flags().BoolVar(&ylog, "ylog", false, "Logarithmic y axis")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newConvertCmd(cfg **config.Config) *cobra.Command {
	var input, output, runID string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert between batch text collections and JSON archives",
		Long: `Read a collection from any supported input and rewrite it in the form
the output path names: a .json path (optionally compressed) becomes an
archive, anything else a batch text file.

Examples:
  exfortab convert --input library/ --output records.json.zst
  exfortab convert --input records.json.zst --output records.txt.gz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadRecords(cmd.Context(), input)
			if err != nil {
				return err
			}
			if strings.HasSuffix(compression.TrimSuffix(output), ".json") {
				return exfor.SaveArchive(output, runID, records)
			}
			return exfor.WriteCollectionFile(cmd.Context(), output, records)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input collection (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (required)")
	cmd.Flags().StringVar(&runID, "run-id", "", "Archive run identifier (defaults to a fresh UUID)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
