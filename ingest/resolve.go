package ingest

import "strings"

// matchTiers orders header matching from strict to loose. A hit in an
// earlier tier always wins over a looser one, so an exact-match column is
// never shadowed by a substring match elsewhere in the row.
var matchTiers = []func(label, candidate string) bool{
	// Tier 1: exact after case-fold and trim.
	func(l, c string) bool {
		return strings.EqualFold(strings.TrimSpace(l), strings.TrimSpace(c))
	},
	// Tier 2: underscores stripped, whitespace collapsed.
	func(l, c string) bool {
		return underscoreFold(l) == underscoreFold(c)
	},
	// Tier 3: full key normalization.
	func(l, c string) bool {
		return NormalizeKey(l) == NormalizeKey(c)
	},
	// Tier 4: normalized candidate contained in a verbose column label.
	func(l, c string) bool {
		return strings.Contains(NormalizeKey(l), NormalizeKey(c))
	},
}

// Resolve returns the first non-empty value for a logical field, trying
// every candidate label tier by tier. Blank cells never satisfy a tier;
// resolution keeps going so a duplicate column with an actual value can
// still win. No match across all tiers yields "".
func Resolve(row RawRow, candidates []string) string {
	for _, match := range matchTiers {
		for _, cand := range candidates {
			for _, cell := range row {
				if !match(cell.Label, cand) {
					continue
				}
				if v := strings.TrimSpace(cell.Value); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// HasColumn reports whether any column label in the row matches one of the
// candidates at any tier, regardless of the cell value. The transformer
// uses this to tell "column exists but is blank" apart from "column does
// not exist at all".
func HasColumn(row RawRow, candidates []string) bool {
	for _, cand := range candidates {
		nc := NormalizeKey(cand)
		for _, cell := range row {
			nl := NormalizeKey(cell.Label)
			if nl == nc || strings.Contains(nl, nc) {
				return true
			}
		}
	}
	return false
}
