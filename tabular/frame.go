// Package tabular provides Frame, the in-memory columnar container used for
// CSV, Parquet, and Excel content.
//
// A Frame is a fixed set of named, typed columns of equal length. Cells hold
// int64, float64, bool, string, or time.Time values, or nil for missing data.
// Frames preserve column order, which the codecs rely on when serializing.
package tabular

import (
	"fmt"
	"time"
)

// Type identifies the value type of a column.
type Type int

// Column value types.
const (
	// String columns hold string cells
	String Type = iota

	// Int columns hold int64 cells
	Int

	// Float columns hold float64 cells
	Float

	// Bool columns hold bool cells
	Bool

	// Time columns hold time.Time cells
	Time
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Time:
		return "time"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Column is a single named, typed column of cell values.
// A nil cell represents missing data.
type Column struct {
	Name   string
	Type   Type
	Values []any
}

// Frame is an ordered collection of equal-length columns.
type Frame struct {
	columns []Column
	byName  map[string]int
}

// New creates a Frame from the given columns.
// Column names must be unique and non-empty, and all columns must have the
// same number of values. Cell values are normalized to the column type
// (e.g. int → int64, float32 → float64).
func New(columns ...Column) (*Frame, error) {
	f := &Frame{
		columns: make([]Column, 0, len(columns)),
		byName:  make(map[string]int, len(columns)),
	}

	rows := -1
	for _, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("tabular: column name cannot be empty")
		}
		if _, ok := f.byName[col.Name]; ok {
			return nil, fmt.Errorf("tabular: duplicate column name %q", col.Name)
		}
		if rows == -1 {
			rows = len(col.Values)
		} else if len(col.Values) != rows {
			return nil, fmt.Errorf("tabular: column %q has %d values, want %d", col.Name, len(col.Values), rows)
		}

		values := make([]any, len(col.Values))
		for i, v := range col.Values {
			nv, err := normalize(col.Type, v)
			if err != nil {
				return nil, fmt.Errorf("tabular: column %q row %d: %w", col.Name, i, err)
			}
			values[i] = nv
		}

		f.byName[col.Name] = len(f.columns)
		f.columns = append(f.columns, Column{Name: col.Name, Type: col.Type, Values: values})
	}

	return f, nil
}

// StringColumn builds a String column from a string slice.
func StringColumn(name string, values []string) Column {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return Column{Name: name, Type: String, Values: vals}
}

// IntColumn builds an Int column from an int64 slice.
func IntColumn(name string, values []int64) Column {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return Column{Name: name, Type: Int, Values: vals}
}

// FloatColumn builds a Float column from a float64 slice.
func FloatColumn(name string, values []float64) Column {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return Column{Name: name, Type: Float, Values: vals}
}

// BoolColumn builds a Bool column from a bool slice.
func BoolColumn(name string, values []bool) Column {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return Column{Name: name, Type: Bool, Values: vals}
}

// TimeColumn builds a Time column from a time.Time slice.
func TimeColumn(name string, values []time.Time) Column {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return Column{Name: name, Type: Time, Values: vals}
}

// NumRows returns the number of rows in the frame.
func (f *Frame) NumRows() int {
	if len(f.columns) == 0 {
		return 0
	}
	return len(f.columns[0].Values)
}

// NumCols returns the number of columns in the frame.
func (f *Frame) NumCols() int {
	return len(f.columns)
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))
	for i, col := range f.columns {
		names[i] = col.Name
	}
	return names
}

// Columns returns the columns in order. The returned slice is shared with the
// frame; callers must not mutate it.
func (f *Frame) Columns() []Column {
	return f.columns
}

// Column returns the column with the given name.
func (f *Frame) Column(name string) (*Column, bool) {
	i, ok := f.byName[name]
	if !ok {
		return nil, false
	}
	return &f.columns[i], true
}

// Row returns the cell values of row i in column order.
func (f *Frame) Row(i int) []any {
	row := make([]any, len(f.columns))
	for c, col := range f.columns {
		row[c] = col.Values[i]
	}
	return row
}

// Append adds a row of cell values in column order.
// Values are normalized to the column types; nil cells are allowed.
func (f *Frame) Append(row ...any) error {
	if len(row) != len(f.columns) {
		return fmt.Errorf("tabular: row has %d values, want %d", len(row), len(f.columns))
	}
	for c, v := range row {
		nv, err := normalize(f.columns[c].Type, v)
		if err != nil {
			return fmt.Errorf("tabular: column %q: %w", f.columns[c].Name, err)
		}
		f.columns[c].Values = append(f.columns[c].Values, nv)
	}
	return nil
}

// Records returns the frame as string records: a header row of column names
// followed by one record per row with cells formatted via Format.
func (f *Frame) Records() [][]string {
	records := make([][]string, 0, f.NumRows()+1)
	records = append(records, f.Names())
	for i := 0; i < f.NumRows(); i++ {
		record := make([]string, len(f.columns))
		for c, col := range f.columns {
			record[c] = Format(col.Values[i])
		}
		records = append(records, record)
	}
	return records
}

// Equal reports whether two frames have identical column names, types, and
// cell values. Time cells compare with time.Time.Equal.
func (f *Frame) Equal(other *Frame) bool {
	if other == nil || len(f.columns) != len(other.columns) {
		return false
	}
	for i, col := range f.columns {
		o := other.columns[i]
		if col.Name != o.Name || col.Type != o.Type || len(col.Values) != len(o.Values) {
			return false
		}
		for j, v := range col.Values {
			if !cellEqual(v, o.Values[j]) {
				return false
			}
		}
	}
	return true
}

// Format renders a cell value as a string. Nil cells render as "".
func Format(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case bool:
		if c {
			return "true"
		}
		return "false"
	case int64:
		return fmt.Sprintf("%d", c)
	case float64:
		return fmt.Sprintf("%g", c)
	case time.Time:
		return c.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", c)
	}
}

func cellEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	at, aok := a.(time.Time)
	bt, bok := b.(time.Time)
	if aok || bok {
		return aok && bok && at.Equal(bt)
	}
	return a == b
}

// normalize coerces a cell value to the canonical representation for the
// column type. Nil passes through as a missing cell.
func normalize(t Type, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch t {
	case String:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case Int:
		switch c := v.(type) {
		case int64:
			return c, nil
		case int:
			return int64(c), nil
		case int32:
			return int64(c), nil
		}
	case Float:
		switch c := v.(type) {
		case float64:
			return c, nil
		case float32:
			return float64(c), nil
		case int64:
			return float64(c), nil
		case int:
			return float64(c), nil
		}
	case Bool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case Time:
		if ts, ok := v.(time.Time); ok {
			return ts, nil
		}
	}
	return nil, fmt.Errorf("cannot store %T in %s column", v, t)
}
