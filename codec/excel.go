package codec

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/croxio/s3kit/tabular"
)

func init() {
	Register(&excelCodec{})
}

// excelCodec reads and writes workbooks with a single sheet holding a header
// row. Cells are written as strings and decoded with the same type inference
// as the CSV codec, so .xlsx and .csv objects round-trip to identical frames.
type excelCodec struct{}

func (*excelCodec) Name() string { return "excel" }

func (*excelCodec) Extensions() []string { return []string{".xlsx", ".xls"} }

func (*excelCodec) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (*excelCodec) Encode(f *tabular.Frame, _ Options) ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(0)

	for r, record := range f.Records() {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return nil, fmt.Errorf("codec: write excel: %w", err)
		}
		row := make([]any, len(record))
		for i, v := range record {
			row[i] = v
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("codec: write excel: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, fmt.Errorf("codec: write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func (*excelCodec) Decode(data []byte, _ Options) (*tabular.Frame, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("codec: open excel: %w", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(wb.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("codec: read excel: %w", err)
	}
	if len(rows) == 0 {
		return tabular.New()
	}
	return frameFromRecords(rows[0], rows[1:])
}
