package ingest

import "strings"

// DefaultHeaderScanRows caps how deep LocateHeaderRow looks for the header
// in files that prepend title or report-metadata rows.
const DefaultHeaderScanRows = 20

// LocateHeaderRow scans the first maxScan rows and returns the index of the
// row that looks most like the column header. Each of the seven logical
// field token groups contributes one point when any of its tokens appears
// as a normalized substring of any cell. Strictly highest score wins; ties
// keep the earliest row, so a sheet whose real header is row 0 is never
// displaced by a later data row that happens to echo a label.
func LocateHeaderRow(rows [][]string, maxScan int) int {
	if maxScan <= 0 {
		maxScan = DefaultHeaderScanRows
	}
	limit := len(rows)
	if maxScan < limit {
		limit = maxScan
	}

	bestIdx, bestScore := 0, -1
	for i := 0; i < limit; i++ {
		if score := scoreHeaderRow(rows[i]); score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	return bestIdx
}

func scoreHeaderRow(cells []string) int {
	normalized := make([]string, 0, len(cells))
	for _, c := range cells {
		if strings.TrimSpace(c) == "" {
			continue
		}
		normalized = append(normalized, NormalizeKey(c))
	}
	if len(normalized) == 0 {
		return 0
	}

	score := 0
	for _, group := range headerTokenGroups {
		for _, token := range group {
			if containsToken(normalized, NormalizeKey(token)) {
				score++
				break
			}
		}
	}
	return score
}

func containsToken(cells []string, token string) bool {
	for _, cell := range cells {
		if strings.Contains(cell, token) {
			return true
		}
	}
	return false
}
