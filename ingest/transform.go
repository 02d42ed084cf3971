package ingest

import (
	"strconv"
	"strings"

	"voterroll_site/models"
)

// TransformRow converts one raw sheet row into a canonical voter record.
// ok is false when the row carries no name in either script; such rows are
// never persisted.
//
// The two scripts stay independent: a blank English name next to a filled
// Marathi one is stored exactly like that. The source registries model the
// languages as distinct columns, so a blank is incomplete source data, not
// an invitation to copy the other script's value across. Only when a sheet
// has no language-specific name column at all (legacy single-column
// exports) does the generic candidate set apply, and the value it yields is
// slotted by script classification.
func TransformRow(row RawRow) (models.VoterRecord, bool) {
	rec := models.VoterRecord{
		SerialNumber: Resolve(row, serialLabels),
		HouseNumber:  Resolve(row, houseLabels),
		VoterIDCard:  Resolve(row, voterIDLabels),
		MobileNumber: Resolve(row, mobileLabels),
		Age:          parseAge(Resolve(row, ageLabels)),
	}

	rec.Name = Resolve(row, nameEnLabels)
	rec.NameMr = Resolve(row, nameMrLabels)
	if rec.Name == "" && rec.NameMr == "" &&
		!HasColumn(row, nameEnLabels) && !HasColumn(row, nameMrLabels) {
		if v := Resolve(row, nameGenericLabels); v != "" {
			if IsDevanagari(v) {
				rec.NameMr = v
			} else {
				rec.Name = v
			}
		}
	}

	rec.Gender = Resolve(row, genderEnLabels)
	rec.GenderMr = Resolve(row, genderMrLabels)
	if rec.Gender == "" && rec.GenderMr == "" &&
		!HasColumn(row, genderEnLabels) && !HasColumn(row, genderMrLabels) {
		if v := Resolve(row, genderGenericLabels); v != "" {
			if IsDevanagari(v) {
				rec.GenderMr = v
			} else {
				rec.Gender = v
			}
		}
	}

	if rec.Name == "" && rec.NameMr == "" {
		return models.VoterRecord{}, false
	}
	return rec, true
}

// parseAge coerces the raw age cell to a non-negative integer. Unparsable
// or absent input defaults to 0; spreadsheet numerics sometimes arrive as
// "45.0", so a float parse backs up the integer one.
func parseAge(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f > 0 {
		return int(f)
	}
	return 0
}
