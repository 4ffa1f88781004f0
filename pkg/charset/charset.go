// Package charset resolves the text encodings deptmerge reads and writes.
package charset

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/agentstation/deptmerge/pkg/errors"
)

// Canonical encoding names.
const (
	UTF8        = "utf-8"
	UTF8BOM     = "utf-8-sig"
	Windows1251 = "windows-1251"
	KOI8R       = "koi8-r"
	ISO88595    = "iso-8859-5"
)

var aliases = map[string]string{
	"utf8":         UTF8,
	"utf-8":        UTF8,
	"utf-8-sig":    UTF8BOM,
	"utf8-sig":     UTF8BOM,
	"utf-8-bom":    UTF8BOM,
	"windows-1251": Windows1251,
	"cp1251":       Windows1251,
	"win1251":      Windows1251,
	"koi8-r":       KOI8R,
	"koi8r":        KOI8R,
	"iso-8859-5":   ISO88595,
	"iso8859-5":    ISO88595,
}

// Names returns the canonical names of supported encodings.
func Names() []string {
	return []string{UTF8, UTF8BOM, Windows1251, KOI8R, ISO88595}
}

// Canonical returns the canonical spelling of name, or an error for unknown names.
// An empty name resolves to UTF8.
func Canonical(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return UTF8, nil
	}
	if c, ok := aliases[n]; ok {
		return c, nil
	}
	return "", errors.NewConfigError("charset", "unsupported encoding "+name, errors.ErrEncoding)
}

// Lookup returns the encoding for name. UTF8BOM strips a leading BOM on read
// and writes one on output.
//
// Decoders of the returned encodings replace bad input with U+FFFD instead of
// failing, so strict readers must validate themselves (see Decode).
func Lookup(name string) (encoding.Encoding, error) {
	c, err := Canonical(name)
	if err != nil {
		return nil, err
	}
	switch c {
	case UTF8BOM:
		return unicode.UTF8BOM, nil
	case Windows1251:
		return charmap.Windows1251, nil
	case KOI8R:
		return charmap.KOI8R, nil
	case ISO88595:
		return charmap.ISO8859_5, nil
	default:
		return unicode.UTF8, nil
	}
}

// IsUnicode reports whether name resolves to a UTF-8 variant.
func IsUnicode(name string) bool {
	c, err := Canonical(name)
	return err == nil && (c == UTF8 || c == UTF8BOM)
}

// Decode converts raw bytes in the named encoding to UTF-8. Bytes that are not
// valid in that encoding are an error wrapping errors.ErrEncoding.
func Decode(name string, raw []byte) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if IsUnicode(name) {
		if !utf8.Valid(bytes.TrimPrefix(raw, bom)) {
			return nil, errors.ErrEncoding
		}
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, errors.ErrEncoding
	}
	if !IsUnicode(name) && bytes.ContainsRune(out, utf8.RuneError) {
		return nil, errors.ErrEncoding
	}
	return out, nil
}

var bom = []byte{0xEF, 0xBB, 0xBF}
