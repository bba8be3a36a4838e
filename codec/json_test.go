package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRoundTrip(t *testing.T) {
	doc := map[string]any{
		"name":    "report",
		"version": float64(3),
		"tags":    []any{"daily", "eu"},
		"nested":  map[string]any{"enabled": true},
	}

	data, err := EncodeDocument(doc)
	require.NoError(t, err)

	decoded, err := DecodeDocument(data)
	require.NoError(t, err)
	assert.Equal(t, doc, decoded)
}

func TestDecodeDocumentRejectsNonObject(t *testing.T) {
	_, err := DecodeDocument([]byte(`[1, 2, 3]`))
	assert.Error(t, err)

	_, err = DecodeDocument([]byte(`{"broken":`))
	assert.Error(t, err)
}

func TestEncodeDocumentRejectsUnserializable(t *testing.T) {
	_, err := EncodeDocument(map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}
