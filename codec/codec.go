// Package codec maps file extensions to serializer/deserializer pairs for
// the tabular formats handled by s3kit.
//
// Codecs are looked up through a static registry keyed by extension.
// Additional formats can be added with Register; the built-in CSV, Parquet,
// and Excel codecs register themselves at init time. JSON documents
// (mappings, not frames) are handled by EncodeDocument and DecodeDocument.
//
// A trailing ".gz" on a key layers gzip compression over the text codecs,
// e.g. "data.csv.gz".
package codec

import (
	"path"
	"strings"

	"github.com/croxio/s3kit/tabular"
)

// Codec serializes frames to bytes and back for one file format.
type Codec interface {
	// Name returns the codec name (e.g. "csv").
	Name() string

	// Extensions returns the key extensions this codec claims, with dots
	// (e.g. ".csv").
	Extensions() []string

	// ContentType returns the MIME type stored alongside encoded objects.
	ContentType() string

	// Encode serializes a frame.
	Encode(f *tabular.Frame, opts Options) ([]byte, error)

	// Decode deserializes bytes into a frame.
	Decode(data []byte, opts Options) (*tabular.Frame, error)
}

// Options carries the per-call serialization settings that shadow the store
// configuration.
type Options struct {
	// Separator is the CSV field separator. Zero means ','.
	Separator rune

	// Encoding is the IANA name of the text encoding for CSV content.
	// Empty means UTF-8.
	Encoding string
}

func (o Options) separator() rune {
	if o.Separator == 0 {
		return ','
	}
	return o.Separator
}

var registry = map[string]Codec{}

// Register adds a codec to the registry under all its extensions,
// replacing any codec previously registered for them.
// Register is not safe for concurrent use; call it during initialization.
func Register(c Codec) {
	for _, ext := range c.Extensions() {
		registry[strings.ToLower(ext)] = c
	}
}

// Lookup returns the codec registered for the given extension (with dot).
func Lookup(ext string) (Codec, bool) {
	c, ok := registry[strings.ToLower(ext)]
	return c, ok
}

// ForKey resolves the codec for an object key from its extension.
// A trailing ".gz" layer is unwrapped and reported separately.
func ForKey(key string) (c Codec, gzipped bool, ok bool) {
	ext := strings.ToLower(path.Ext(key))
	if ext == ".gz" {
		gzipped = true
		ext = strings.ToLower(path.Ext(strings.TrimSuffix(key, ext)))
	}
	c, ok = Lookup(ext)
	return c, gzipped, ok
}

// IsJSONKey reports whether a key names a JSON document, including the
// gzip-layered form.
func IsJSONKey(key string) bool {
	ext := strings.ToLower(path.Ext(key))
	if ext == ".gz" {
		ext = strings.ToLower(path.Ext(strings.TrimSuffix(key, ext)))
	}
	return ext == ".json"
}
