package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/croxio/s3kit/tabular"
)

func init() {
	Register(&csvCodec{})
}

// csvCodec reads and writes CSV with a header row.
//
// On decode, column types are inferred by scanning cell values: a column
// whose non-empty cells all parse as int64 becomes Int, then Float, then
// Bool, otherwise String. Empty cells in non-String columns decode as nil.
type csvCodec struct{}

func (*csvCodec) Name() string { return "csv" }

func (*csvCodec) Extensions() []string { return []string{".csv"} }

func (*csvCodec) ContentType() string { return "text/csv" }

func (*csvCodec) Encode(f *tabular.Frame, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = opts.separator()

	if err := w.WriteAll(f.Records()); err != nil {
		return nil, fmt.Errorf("codec: write csv: %w", err)
	}
	return encodeText(buf.Bytes(), opts.Encoding)
}

func (*csvCodec) Decode(data []byte, opts Options) (*tabular.Frame, error) {
	utf8Data, err := decodeText(data, opts.Encoding)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(utf8Data))
	r.Comma = opts.separator()
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("codec: read csv: %w", err)
	}
	if len(records) == 0 {
		return tabular.New()
	}

	return frameFromRecords(records[0], records[1:])
}

// frameFromRecords builds a typed frame from a header and string records,
// shared by the CSV and Excel codecs.
func frameFromRecords(header []string, records [][]string) (*tabular.Frame, error) {
	columns := make([]tabular.Column, len(header))
	for c, name := range header {
		cells := make([]string, len(records))
		for r, record := range records {
			if c < len(record) {
				cells[r] = record[c]
			}
		}
		columns[c] = inferColumn(name, cells)
	}
	return tabular.New(columns...)
}

// inferColumn picks the narrowest type that parses every non-empty cell.
func inferColumn(name string, cells []string) tabular.Column {
	colType := tabular.Int
	nonEmpty := false
scan:
	for {
		ok := true
		for _, cell := range cells {
			if cell == "" {
				continue
			}
			nonEmpty = true
			if !parsesAs(colType, cell) {
				ok = false
				break
			}
		}
		if ok && nonEmpty {
			break scan
		}
		switch colType {
		case tabular.Int:
			colType = tabular.Float
		case tabular.Float:
			colType = tabular.Bool
		default:
			colType = tabular.String
			break scan
		}
	}

	values := make([]any, len(cells))
	for i, cell := range cells {
		if cell == "" && colType != tabular.String {
			values[i] = nil
			continue
		}
		values[i] = parseCell(colType, cell)
	}
	return tabular.Column{Name: name, Type: colType, Values: values}
}

func parsesAs(t tabular.Type, cell string) bool {
	switch t {
	case tabular.Int:
		_, err := strconv.ParseInt(cell, 10, 64)
		return err == nil
	case tabular.Float:
		_, err := strconv.ParseFloat(cell, 64)
		return err == nil
	case tabular.Bool:
		_, err := strconv.ParseBool(cell)
		return err == nil
	default:
		return true
	}
}

func parseCell(t tabular.Type, cell string) any {
	switch t {
	case tabular.Int:
		n, _ := strconv.ParseInt(cell, 10, 64)
		return n
	case tabular.Float:
		x, _ := strconv.ParseFloat(cell, 64)
		return x
	case tabular.Bool:
		b, _ := strconv.ParseBool(cell)
		return b
	default:
		return cell
	}
}
