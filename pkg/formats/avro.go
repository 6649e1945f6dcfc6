package formats

import (
	"io"
	"strconv"

	"github.com/linkedin/goavro/v2"

	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/jsonutil"
	"github.com/exfortools/exfortab/pkg/table"
)

// writeAvro exports the table as an Avro object container file. Every
// field is a ["null", type] union. Column names are sanitized to Avro's
// identifier rules, which matters for indicator columns whose names
// carry reaction punctuation.
func writeAvro(w io.Writer, t *table.Table, cfg *WriterConfig) error {
	kinds := inferKinds(t)
	names := avroFieldNames(t.Headers())

	schemaJSON, err := avroSchemaFor(names, kinds)
	if err != nil {
		return err
	}
	codec, err := goavro.NewCodec(schemaJSON)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeExport, "building Avro codec")
	}
	ocf, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:               w,
		Codec:           codec,
		CompressionName: avroCompression(cfg.Compression),
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeExport, "creating Avro writer")
	}

	rows := make([]interface{}, 0, t.NumRows())
	for ri := 0; ri < t.NumRows(); ri++ {
		row := make(map[string]interface{}, len(names))
		for ci := range t.Columns {
			row[names[ci]] = avroCell(t.Columns[ci].Values[ri], kinds[ci])
		}
		rows = append(rows, row)
	}
	if err := ocf.Append(rows); err != nil {
		return errors.Wrap(err, errors.ErrorTypeExport, "writing Avro rows")
	}
	return nil
}

func avroSchemaFor(names []string, kinds []colKind) (string, error) {
	fields := make([]map[string]interface{}, len(names))
	for i, name := range names {
		var avroType string
		switch kinds[i] {
		case colInt:
			avroType = "long"
		case colFloat:
			avroType = "double"
		default:
			avroType = "string"
		}
		fields[i] = map[string]interface{}{
			"name": name,
			"type": []interface{}{"null", avroType},
		}
	}
	schema := map[string]interface{}{
		"type":   "record",
		"name":   "experiment_row",
		"fields": fields,
	}
	data, err := jsonutil.Marshal(schema)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeExport, "encoding Avro schema")
	}
	return string(data), nil
}

// avroCell wraps a cell in the union encoding goavro expects: nil for
// null, otherwise a single-entry map keyed by the branch type name.
func avroCell(v table.Value, kind colKind) interface{} {
	if v.IsNull() {
		return nil
	}
	switch kind {
	case colInt:
		if i, ok := v.AsInt(); ok {
			return map[string]interface{}{"long": i}
		}
	case colFloat:
		if f, ok := v.AsFloat(); ok {
			return map[string]interface{}{"double": f}
		}
	default:
		return map[string]interface{}{"string": v.String()}
	}
	return nil
}

// avroFieldNames rewrites column names to valid Avro identifiers,
// deduplicating collisions with a numeric suffix.
func avroFieldNames(headers []string) []string {
	seen := make(map[string]bool, len(headers))
	names := make([]string, len(headers))
	for i, h := range headers {
		name := sanitizeAvroName(h)
		for k := 1; seen[name]; k++ {
			name = sanitizeAvroName(h) + "_" + strconv.Itoa(k)
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

func sanitizeAvroName(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
			out = append(out, c)
		case c >= '0' && c <= '9':
			if i == 0 {
				out = append(out, '_')
			}
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "_"
	}
	return string(out)
}

func avroCompression(name string) string {
	switch name {
	case "deflate":
		return goavro.CompressionDeflateLabel
	case "snappy":
		return goavro.CompressionSnappyLabel
	default:
		return goavro.CompressionNullLabel
	}
}
