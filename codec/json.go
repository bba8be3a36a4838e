package codec

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONContentType is the MIME type stored alongside JSON documents.
const JSONContentType = "application/json"

// EncodeDocument serializes a JSON document (a mapping, not a frame).
func EncodeDocument(doc map[string]any) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("codec: encode json: %w", err)
	}
	return data, nil
}

// DecodeDocument deserializes bytes into a JSON document.
func DecodeDocument(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("codec: decode json: %w", err)
	}
	return doc, nil
}
