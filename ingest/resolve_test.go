package ingest

import "testing"

func TestResolve_TierOrdering(t *testing.T) {
	// A row with both an exact-match column and a verbose substring-match
	// column for the same logical field must return the exact-match value,
	// even when the verbose column comes first in the row.
	row := RawRow{
		{Label: "EPIC Card Number (old)", Value: "OLD123"},
		{Label: "EPIC", Value: "NEW456"},
	}
	if got := Resolve(row, []string{"epic"}); got != "NEW456" {
		t.Errorf("Resolve = %q, want exact-tier value %q", got, "NEW456")
	}
}

func TestResolve_UnderscoreEquivalence(t *testing.T) {
	row := RawRow{{Label: "SR_NO", Value: "42"}}
	if got := Resolve(row, []string{"Sr No"}); got != "42" {
		t.Errorf("Resolve(SR_NO) = %q, want %q", got, "42")
	}
}

func TestResolve_FullNormalization(t *testing.T) {
	row := RawRow{{Label: "House Crimson.", Value: "12/B"}}
	if got := Resolve(row, []string{"house crimson"}); got != "12/B" {
		t.Errorf("Resolve = %q, want %q", got, "12/B")
	}
}

func TestResolve_SubstringContainment(t *testing.T) {
	row := RawRow{{Label: "EPIC Card Number (old)", Value: "ABC0123456"}}
	if got := Resolve(row, []string{"epic"}); got != "ABC0123456" {
		t.Errorf("Resolve = %q, want %q", got, "ABC0123456")
	}
}

func TestResolve_EmptyCellsDoNotSatisfyATier(t *testing.T) {
	// The exact-match column is blank; resolution continues and the next
	// candidate's column supplies the value.
	row := RawRow{
		{Label: "Serial No", Value: "   "},
		{Label: "Sr No", Value: "7"},
	}
	if got := Resolve(row, []string{"serial no", "sr no"}); got != "7" {
		t.Errorf("Resolve = %q, want %q", got, "7")
	}
}

func TestResolve_NoMatch(t *testing.T) {
	row := RawRow{{Label: "Completely Unrelated", Value: "x"}}
	if got := Resolve(row, []string{"age", "वय"}); got != "" {
		t.Errorf("Resolve = %q, want empty", got)
	}
}

func TestResolve_ValuesAreTrimmed(t *testing.T) {
	row := RawRow{{Label: "Age", Value: "  45  "}}
	if got := Resolve(row, []string{"age"}); got != "45" {
		t.Errorf("Resolve = %q, want %q", got, "45")
	}
}

func TestHasColumn(t *testing.T) {
	row := RawRow{
		{Label: "Name_En", Value: ""},
		{Label: "Age", Value: "30"},
	}

	if !HasColumn(row, []string{"name en"}) {
		t.Error("HasColumn should see the blank Name_En column")
	}
	if HasColumn(row, []string{"mobile"}) {
		t.Error("HasColumn should not find a mobile column")
	}
}
