package source

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding names the byte encoding of files on disk. Content held by a
// FileSet is always UTF-8.
type Encoding uint8

const (
	EncodingUTF8 Encoding = iota
	EncodingLatin1
	// EncodingAuto keeps valid UTF-8 as is and falls back to Latin-1 otherwise.
	EncodingAuto
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "utf-8"
	case EncodingLatin1:
		return "latin1"
	case EncodingAuto:
		return "auto"
	}
	return "unknown"
}

// ParseEncoding converts a configuration value into an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "latin1", "latin-1", "iso-8859-1":
		return EncodingLatin1, nil
	case "auto":
		return EncodingAuto, nil
	default:
		return EncodingUTF8, fmt.Errorf("unknown source encoding %q (expected utf-8|latin1|auto)", s)
	}
}

// decode transcodes raw file bytes to UTF-8. The boolean reports whether a
// Latin-1 conversion took place.
func decode(raw []byte, enc Encoding) ([]byte, bool, error) {
	switch enc {
	case EncodingUTF8:
		return raw, false, nil
	case EncodingAuto:
		if utf8.Valid(raw) {
			return raw, false, nil
		}
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, false, fmt.Errorf("latin1 decode: %w", err)
	}
	return out, true, nil
}
