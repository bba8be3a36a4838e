package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/croxio/s3kit/tabular"
)

func init() {
	Register(&parquetCodec{})
}

// parquetCodec reads and writes Parquet files with one optional leaf column
// per frame column.
//
// Parquet group schemas order fields lexicographically, so a decoded frame
// lists its columns sorted by name regardless of the order they were
// written in.
type parquetCodec struct{}

func (*parquetCodec) Name() string { return "parquet" }

func (*parquetCodec) Extensions() []string { return []string{".parquet"} }

func (*parquetCodec) ContentType() string { return "application/vnd.apache.parquet" }

func (*parquetCodec) Encode(f *tabular.Frame, _ Options) ([]byte, error) {
	group := parquet.Group{}
	for _, col := range f.Columns() {
		group[col.Name] = parquet.Optional(parquetNode(col.Type))
	}
	schema := parquet.NewSchema("frame", group)

	rows := make([]map[string]any, f.NumRows())
	for i := range rows {
		row := make(map[string]any, f.NumCols())
		for _, col := range f.Columns() {
			if v := col.Values[i]; v != nil {
				row[col.Name] = v
			}
		}
		rows[i] = row
	}

	var buf bytes.Buffer
	w := parquet.NewGenericWriter[map[string]any](&buf, schema)
	if len(rows) > 0 {
		if _, err := w.Write(rows); err != nil {
			return nil, fmt.Errorf("codec: write parquet: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("codec: write parquet: %w", err)
	}
	return buf.Bytes(), nil
}

func (*parquetCodec) Decode(data []byte, _ Options) (*tabular.Frame, error) {
	file, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("codec: open parquet: %w", err)
	}
	schema := file.Schema()

	fields := schema.Fields()
	names := make([]string, len(fields))
	types := make([]tabular.Type, len(fields))
	for i, field := range fields {
		names[i] = field.Name()
		types[i] = frameType(field)
	}

	var rows []map[string]any
	reader := parquet.NewGenericReader[map[string]any](file)
	defer reader.Close()
	for {
		batch := make([]map[string]any, 128)
		n, err := reader.Read(batch)
		for _, row := range batch[:n] {
			rows = append(rows, row)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("codec: read parquet: %w", err)
		}
		if n == 0 {
			break
		}
	}

	columns := make([]tabular.Column, len(fields))
	for c := range fields {
		values := make([]any, len(rows))
		for r, row := range rows {
			values[r] = frameValue(types[c], row[names[c]])
		}
		columns[c] = tabular.Column{Name: names[c], Type: types[c], Values: values}
	}
	return tabular.New(columns...)
}

// parquetNode maps a frame column type to a parquet leaf node.
func parquetNode(t tabular.Type) parquet.Node {
	switch t {
	case tabular.Int:
		return parquet.Int(64)
	case tabular.Float:
		return parquet.Leaf(parquet.DoubleType)
	case tabular.Bool:
		return parquet.Leaf(parquet.BooleanType)
	case tabular.Time:
		return parquet.Timestamp(parquet.Millisecond)
	default:
		return parquet.String()
	}
}

// frameType maps a parquet schema field back to a frame column type.
func frameType(field parquet.Field) tabular.Type {
	t := field.Type()
	if lt := t.LogicalType(); lt != nil && lt.Timestamp != nil {
		return tabular.Time
	}
	switch t.Kind() {
	case parquet.Boolean:
		return tabular.Bool
	case parquet.Int32, parquet.Int64:
		return tabular.Int
	case parquet.Float, parquet.Double:
		return tabular.Float
	default:
		return tabular.String
	}
}

// frameValue normalizes a decoded parquet value to the frame cell types.
func frameValue(t tabular.Type, v any) any {
	if v == nil {
		return nil
	}
	switch t {
	case tabular.Time:
		switch c := v.(type) {
		case time.Time:
			return c.UTC()
		case int64:
			return time.UnixMilli(c).UTC()
		}
	case tabular.Int:
		switch c := v.(type) {
		case int64:
			return c
		case int32:
			return int64(c)
		}
	case tabular.Float:
		switch c := v.(type) {
		case float64:
			return c
		case float32:
			return float64(c)
		}
	case tabular.String:
		switch c := v.(type) {
		case string:
			return c
		case []byte:
			return string(c)
		}
	}
	return v
}
