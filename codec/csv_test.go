package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croxio/s3kit/tabular"
)

func TestCSVEncode(t *testing.T) {
	f, err := tabular.New(
		tabular.StringColumn("name", []string{"a", "b"}),
		tabular.IntColumn("count", []int64{1, 2}),
	)
	require.NoError(t, err)

	c, ok := Lookup(".csv")
	require.True(t, ok)

	data, err := c.Encode(f, Options{})
	require.NoError(t, err)
	assert.Equal(t, "name,count\na,1\nb,2\n", string(data))
}

func TestCSVEncodeSeparator(t *testing.T) {
	f, err := tabular.New(
		tabular.StringColumn("name", []string{"a"}),
		tabular.IntColumn("count", []int64{1}),
	)
	require.NoError(t, err)

	c, _ := Lookup(".csv")
	data, err := c.Encode(f, Options{Separator: ';'})
	require.NoError(t, err)
	assert.Equal(t, "name;count\na;1\n", string(data))
}

func TestCSVDecodeInfersTypes(t *testing.T) {
	input := "id,score,active,note\n1,0.5,true,hello\n2,1.25,false,world\n"

	c, _ := Lookup(".csv")
	f, err := c.Decode([]byte(input), Options{})
	require.NoError(t, err)

	require.Equal(t, []string{"id", "score", "active", "note"}, f.Names())

	id, _ := f.Column("id")
	assert.Equal(t, tabular.Int, id.Type)
	assert.Equal(t, []any{int64(1), int64(2)}, id.Values)

	score, _ := f.Column("score")
	assert.Equal(t, tabular.Float, score.Type)
	assert.Equal(t, []any{0.5, 1.25}, score.Values)

	active, _ := f.Column("active")
	assert.Equal(t, tabular.Bool, active.Type)
	assert.Equal(t, []any{true, false}, active.Values)

	note, _ := f.Column("note")
	assert.Equal(t, tabular.String, note.Type)
	assert.Equal(t, []any{"hello", "world"}, note.Values)
}

func TestCSVDecodeEmptyCells(t *testing.T) {
	input := "id,note\n1,\n,x\n"

	c, _ := Lookup(".csv")
	f, err := c.Decode([]byte(input), Options{})
	require.NoError(t, err)

	id, _ := f.Column("id")
	assert.Equal(t, tabular.Int, id.Type)
	assert.Equal(t, []any{int64(1), nil}, id.Values)

	note, _ := f.Column("note")
	assert.Equal(t, tabular.String, note.Type)
	assert.Equal(t, []any{"", "x"}, note.Values)
}

func TestCSVDecodeMixedFallsBackToString(t *testing.T) {
	input := "v\n1\noops\n"

	c, _ := Lookup(".csv")
	f, err := c.Decode([]byte(input), Options{})
	require.NoError(t, err)

	v, _ := f.Column("v")
	assert.Equal(t, tabular.String, v.Type)
	assert.Equal(t, []any{"1", "oops"}, v.Values)
}

func TestCSVRoundTrip(t *testing.T) {
	f, err := tabular.New(
		tabular.StringColumn("name", []string{"a", "b"}),
		tabular.IntColumn("count", []int64{1, 2}),
		tabular.FloatColumn("ratio", []float64{0.5, 1.5}),
		tabular.BoolColumn("ok", []bool{true, false}),
	)
	require.NoError(t, err)

	c, _ := Lookup(".csv")
	data, err := c.Encode(f, Options{})
	require.NoError(t, err)

	decoded, err := c.Decode(data, Options{})
	require.NoError(t, err)
	assert.True(t, f.Equal(decoded), "decoded frame differs from original")
}

func TestCSVTextEncodingRoundTrip(t *testing.T) {
	f, err := tabular.New(
		tabular.StringColumn("city", []string{"Zürich", "Málaga"}),
	)
	require.NoError(t, err)

	opts := Options{Encoding: "windows-1252"}
	c, _ := Lookup(".csv")

	data, err := c.Encode(f, opts)
	require.NoError(t, err)
	// the encoded bytes are not valid UTF-8 anymore
	assert.NotContains(t, string(data), "Zürich")

	decoded, err := c.Decode(data, opts)
	require.NoError(t, err)
	assert.True(t, f.Equal(decoded))
}

func TestCSVUnknownEncoding(t *testing.T) {
	f, err := tabular.New(tabular.StringColumn("a", []string{"x"}))
	require.NoError(t, err)

	c, _ := Lookup(".csv")
	_, err = c.Encode(f, Options{Encoding: "no-such-encoding"})
	assert.Error(t, err)
}

func TestCSVDecodeEmptyInput(t *testing.T) {
	c, _ := Lookup(".csv")
	f, err := c.Decode(nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, f.NumCols())
}
