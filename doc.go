// Package exfortab turns libraries of annotated proton-reaction
// experiment files into records, batch collections, and model-ready
// tables.
//
// An experiment file carries "# Field : value" metadata lines, a
// four-column data block with a header line, and a free-form reference
// block. exfortab parses these files one at a time or by walking a
// library tree, serializes whole collections as batch text files or
// versioned JSON archives, and flattens each record into a table with
// broadcast metadata, coerced numeric columns, and one-hot encoded
// categories.
//
// # Quick Start
//
// Parse a file and prepare its model table:
//
//	import "github.com/exfortools/exfortab/pkg/exfor"
//
//	rec, err := exfor.ParseFile("p-026-MG-12-xs.txt")
//	if err != nil {
//	    return err
//	}
//	flat, err := rec.Prepare(exfor.DefaultVocabulary())
//
// Ingest a library and snapshot it:
//
//	records, err := exfor.ReadLibrary(ctx, "exfortables/p")
//	if err != nil {
//	    return err
//	}
//	err = exfor.SaveArchive("records.json.zst", "", records)
//
// # Packages
//
//   - pkg/exfor: parsing, batch serialization, archives, flattening
//   - pkg/table: the in-memory table and tagged scalar value
//   - pkg/collection: filter, unique, classify, partition export
//   - pkg/formats: CSV, JSON, Arrow, Parquet, and Avro export
//   - pkg/plot: scatter plots with error bars and log axes
//   - pkg/compression: suffix-detected stream compression
//   - internal/ingest: the end-to-end ingest run
//
// The exfortab command under cmd/exfortab wires these together behind a
// CLI with ingest, filter, unique, classify, export, plot, and convert
// subcommands.
package exfortab
