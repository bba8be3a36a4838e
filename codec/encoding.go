package codec

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// textEncoding resolves an IANA encoding name (e.g. "windows-1252",
// "iso-8859-1"). UTF-8 and the empty string resolve to nil, meaning no
// transformation is needed.
func textEncoding(name string) (encoding.Encoding, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("codec: unknown text encoding %q: %w", name, err)
	}
	if enc == nil {
		// ianaindex returns a nil Encoding for names it knows but cannot decode
		return nil, fmt.Errorf("codec: unsupported text encoding %q", name)
	}
	return enc, nil
}

// encodeText converts UTF-8 bytes to the named encoding.
func encodeText(data []byte, name string) ([]byte, error) {
	enc, err := textEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return data, nil
	}
	out, err := enc.NewEncoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("codec: encode text as %s: %w", name, err)
	}
	return out, nil
}

// decodeText converts bytes in the named encoding to UTF-8.
func decodeText(data []byte, name string) ([]byte, error) {
	enc, err := textEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return data, nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("codec: decode text as %s: %w", name, err)
	}
	return out, nil
}
