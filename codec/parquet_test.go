package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croxio/s3kit/tabular"
)

// Column names are in lexicographic order because parquet group schemas sort
// their fields by name.
func TestParquetRoundTrip(t *testing.T) {
	f, err := tabular.New(
		tabular.BoolColumn("active", []bool{true, false}),
		tabular.IntColumn("count", []int64{1, 2}),
		tabular.StringColumn("name", []string{"a", "b"}),
		tabular.FloatColumn("ratio", []float64{0.5, 1.5}),
	)
	require.NoError(t, err)

	c, ok := Lookup(".parquet")
	require.True(t, ok)

	data, err := c.Encode(f, Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	decoded, err := c.Decode(data, Options{})
	require.NoError(t, err)
	assert.True(t, f.Equal(decoded), "decoded frame differs from original")
}

func TestParquetTimestamps(t *testing.T) {
	times := []time.Time{
		time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 2, 8, 30, 15, 0, time.UTC),
	}
	f, err := tabular.New(tabular.TimeColumn("at", times))
	require.NoError(t, err)

	c, _ := Lookup(".parquet")
	data, err := c.Encode(f, Options{})
	require.NoError(t, err)

	decoded, err := c.Decode(data, Options{})
	require.NoError(t, err)

	at, ok := decoded.Column("at")
	require.True(t, ok)
	require.Equal(t, tabular.Time, at.Type)
	require.Len(t, at.Values, 2)
	for i, v := range at.Values {
		ts, ok := v.(time.Time)
		require.True(t, ok)
		assert.True(t, times[i].Equal(ts), "row %d: want %v, got %v", i, times[i], ts)
	}
}

func TestParquetNullCells(t *testing.T) {
	f, err := tabular.New(
		tabular.Column{Name: "count", Type: tabular.Int, Values: []any{int64(1), nil, int64(3)}},
	)
	require.NoError(t, err)

	c, _ := Lookup(".parquet")
	data, err := c.Encode(f, Options{})
	require.NoError(t, err)

	decoded, err := c.Decode(data, Options{})
	require.NoError(t, err)

	count, ok := decoded.Column("count")
	require.True(t, ok)
	assert.Equal(t, []any{int64(1), nil, int64(3)}, count.Values)
}

func TestParquetEmptyFrame(t *testing.T) {
	f, err := tabular.New(
		tabular.StringColumn("name", nil),
	)
	require.NoError(t, err)

	c, _ := Lookup(".parquet")
	data, err := c.Encode(f, Options{})
	require.NoError(t, err)

	decoded, err := c.Decode(data, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, decoded.Names())
	assert.Equal(t, 0, decoded.NumRows())
}

func TestParquetDecodeRejectsGarbage(t *testing.T) {
	c, _ := Lookup(".parquet")
	_, err := c.Decode([]byte("not parquet"), Options{})
	assert.Error(t, err)
}
