package ingest

import "strings"

// Cell is one labelled value from a sheet row. Labels are kept exactly as
// they appear in the source file, duplicates and odd spellings included.
type Cell struct {
	Label string
	Value string
}

// RawRow is an ordered view of a single data row keyed by the header labels
// of its sheet. Order matters: the resolver walks cells front to back, so
// the leftmost matching column wins within a tier.
type RawRow []Cell

// BuildRawRow pairs a header row with one data row. Data rows shorter than
// the header get empty cells for the missing tail; surplus cells without a
// header label are dropped.
func BuildRawRow(header, cells []string) RawRow {
	row := make(RawRow, 0, len(header))
	for i, label := range header {
		if strings.TrimSpace(label) == "" {
			continue
		}
		var value string
		if i < len(cells) {
			value = cells[i]
		}
		row = append(row, Cell{Label: label, Value: value})
	}
	return row
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
