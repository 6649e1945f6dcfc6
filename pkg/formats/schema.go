package formats

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/exfortools/exfortab/pkg/table"
)

// colKind is the inferred storage type of one exported column.
type colKind uint8

const (
	colInt colKind = iota
	colFloat
	colString
)

// inferKinds derives one storage type per column: any string cell makes
// the column string, otherwise any float cell makes it float, otherwise
// it is integer. All-null columns export as float so their cells can
// carry NaN in numeric sinks.
func inferKinds(t *table.Table) []colKind {
	kinds := make([]colKind, len(t.Columns))
	for ci, c := range t.Columns {
		kind := colInt
		nonNull := 0
		for _, v := range c.Values {
			switch v.Kind() {
			case table.KindString:
				kind = colString
				nonNull++
			case table.KindFloat:
				if kind == colInt {
					kind = colFloat
				}
				nonNull++
			case table.KindInt:
				nonNull++
			}
			if kind == colString {
				break
			}
		}
		if nonNull == 0 {
			kind = colFloat
		}
		kinds[ci] = kind
	}
	return kinds
}

// arrowSchemaFor maps the table's columns to an Arrow schema, every
// field nullable.
func arrowSchemaFor(t *table.Table, kinds []colKind) *arrow.Schema {
	fields := make([]arrow.Field, len(t.Columns))
	for ci, c := range t.Columns {
		var dt arrow.DataType
		switch kinds[ci] {
		case colInt:
			dt = arrow.PrimitiveTypes.Int64
		case colFloat:
			dt = arrow.PrimitiveTypes.Float64
		default:
			dt = arrow.BinaryTypes.String
		}
		fields[ci] = arrow.Field{Name: c.Name, Type: dt, Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}
