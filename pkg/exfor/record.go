// Package exfor implements the EXFORTABLES proton-reaction experiment
// model: the experiment record, the line-oriented text-format parser and
// its dual serializer, directory walking, table flattening with one-hot
// encoding, and the versioned JSON archive.
//
// # Overview
//
// One experiment file holds '#'-marked metadata lines, a four-column
// numeric data block with a header row, and a free-text reference block.
// ParseFile reads one such file into a Record; WriteCollection and
// ReadCollection serialize many records into a single text artifact and
// back. Flattening broadcasts scalar metadata into table columns so that
// many experiments can be stacked into one wide table per data point.
//
// Example usage:
//
//	rec, err := exfor.ParseFile("Mg/026/p-026-MG-12-xs.txt")
//	if err != nil {
//	    return err
//	}
//	flat, err := rec.Prepare(exfor.DefaultVocabulary())
package exfor

import (
	"github.com/exfortools/exfortab/pkg/table"
	stringpool "github.com/exfortools/exfortab/pkg/strings"
)

// Record is one experiment: scalar metadata plus the numeric dataset.
// Every metadata field is independently optional; an absent field holds
// the null sentinel. The data table has exactly four positional columns
// once parsed: independent variable, dependent variable, dependent
// uncertainty, independent uncertainty.
type Record struct {
	Title       table.Value `json:"title"`
	TargetZ     table.Value `json:"target_Z"`
	TargetA     table.Value `json:"target_A"`
	TargetState table.Value `json:"target_state"`
	Projectile  table.Value `json:"projectile"`
	Reaction    table.Value `json:"reaction"`
	EInc        table.Value `json:"E_inc"`
	FinalZ      table.Value `json:"final_Z"`
	FinalA      table.Value `json:"final_A"`
	FinalState  table.Value `json:"final_state"`
	MTRat       table.Value `json:"MTrat"`
	RatioIsomer table.Value `json:"Ratio_isomer"`
	Quantity    table.Value `json:"quantity"`
	Frame       table.Value `json:"frame"`
	MF          table.Value `json:"MF"`
	MT          table.Value `json:"MT"`
	X4ID        table.Value `json:"X4_ID"`
	X4Code      table.Value `json:"X4_code"`
	Author      table.Value `json:"author"`
	Year        table.Value `json:"year"`
	DataPoints  table.Value `json:"data_points"`
	Reference   table.Value `json:"reference"`

	Data *table.Table `json:"data"`
}

// NewRecord creates an empty record: all fields null, empty table.
func NewRecord() *Record {
	return &Record{Data: table.New()}
}

// String renders the non-null fields, one per line, followed by the data
// table when present.
func (r *Record) String() string {
	return stringpool.BuildMediumString(func(b *stringpool.Builder) {
		writeField := func(label string, v table.Value) {
			if v.IsNull() {
				return
			}
			b.WriteString(label)
			b.WriteString(": ")
			b.WriteString(v.String())
			b.WriteByte('\n')
		}
		writeField("Title", r.Title)
		writeField("Target Z", r.TargetZ)
		writeField("Target A", r.TargetA)
		writeField("Target state", r.TargetState)
		writeField("Projectile", r.Projectile)
		writeField("Reaction", r.Reaction)
		writeField("Incident energy", r.EInc)
		writeField("Final Z", r.FinalZ)
		writeField("Final A", r.FinalA)
		writeField("Final state", r.FinalState)
		writeField("MT ratio", r.MTRat)
		writeField("Ratio isomer", r.RatioIsomer)
		writeField("Quantity", r.Quantity)
		writeField("Frame", r.Frame)
		writeField("MF", r.MF)
		writeField("MT", r.MT)
		writeField("X4 ID", r.X4ID)
		writeField("X4 code", r.X4Code)
		writeField("Author", r.Author)
		writeField("Year", r.Year)
		writeField("Data points", r.DataPoints)
		if r.Data != nil && r.Data.NumRows() > 0 {
			b.WriteString("Data:\n")
			b.WriteString(r.Data.Render())
		}
		if !r.Reference.IsNull() {
			b.WriteString("Reference:\n")
			b.WriteString(r.Reference.String())
			b.WriteByte('\n')
		}
	})
}
