package ingest

import "unicode"

// IsDevanagari reports whether text contains at least one code point from
// the Devanagari block. A single Marathi rune anywhere in a mixed string is
// enough to route a search to the Marathi fields.
func IsDevanagari(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Devanagari, r) {
			return true
		}
	}
	return false
}
