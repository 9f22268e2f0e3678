package csv

import (
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const utf8BOM = "\uFEFF"

// decodeReader wraps r so that a UTF-8 or UTF-16 byte order mark selects the
// decoding and is consumed. Input without a BOM is read as UTF-8; invalid
// sequences become U+FFFD.
func decodeReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// NormalizeHeader trims surrounding whitespace, removes a stray BOM, and
// composes the name to NFC so that visually identical headers compare equal.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, utf8BOM)
	return norm.NFC.String(strings.TrimSpace(h))
}

// NormalizeHeaders applies NormalizeHeader to every cell and resolves aliases
// through headerMap (source name → canonical name).
func NormalizeHeaders(h []string, headerMap map[string]string) []string {
	out := make([]string, len(h))
	for i, col := range h {
		c := NormalizeHeader(col)
		if m, ok := headerMap[c]; ok {
			c = m
		}
		out[i] = c
	}
	return out
}
