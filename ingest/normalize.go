package ingest

import "strings"

// NormalizeKey canonicalizes a header label for comparison: lowercase,
// punctuation and underscores become spaces, whitespace runs collapse to a
// single space, leading/trailing whitespace is dropped. The Devanagari
// danda shows up in Marathi headers and is treated like any other
// punctuation.
func NormalizeKey(label string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '.', ':', '-', '/', '_', '।':
			return ' '
		}
		return r
	}, strings.ToLower(label))
	return collapseSpaces(mapped)
}

// underscoreFold is the looser tier-two form: case-fold, underscores to
// spaces, collapse whitespace. SR_NO, "SR NO" and "sr no" all fold to the
// same string here while "Sr.No." does not.
func underscoreFold(s string) string {
	return collapseSpaces(strings.ReplaceAll(strings.ToLower(s), "_", " "))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
