package ingest

import "testing"

func TestLocateHeaderRow_TitleRowAboveHeader(t *testing.T) {
	rows := [][]string{
		{"Voter List - Ward 7 (2024)"},
		{"Sr No", "Name_En", "Name_Mr", "Gender", "Age", "EPIC No", "Mobile"},
		{"1", "John", "जॉन", "M", "30", "ABC123", "9876543210"},
	}

	if got := LocateHeaderRow(rows, 20); got != 1 {
		t.Errorf("LocateHeaderRow = %d, want 1", got)
	}
}

func TestLocateHeaderRow_MarathiHeaders(t *testing.T) {
	rows := [][]string{
		{"मतदार यादी"},
		{"अहवाल दिनांक: 01/01/2024"},
		{"अनु क्र.", "मतदाराचे नाव", "लिंग", "वय", "घर क्रमांक"},
		{"१", "अनिल कुमार", "पुरुष", "४५", "12"},
	}

	if got := LocateHeaderRow(rows, 20); got != 2 {
		t.Errorf("LocateHeaderRow = %d, want 2", got)
	}
}

func TestLocateHeaderRow_TiesKeepEarliestRow(t *testing.T) {
	header := []string{"Sr No", "Name", "Age"}
	rows := [][]string{header, header, {"1", "John", "30"}}

	if got := LocateHeaderRow(rows, 20); got != 0 {
		t.Errorf("LocateHeaderRow = %d, want 0 on tie", got)
	}
}

func TestLocateHeaderRow_ScanBound(t *testing.T) {
	// The real header sits beyond the scan window; the locator must stay
	// bounded and pick the best row inside the window.
	rows := [][]string{
		{"metadata"},
		{"more metadata"},
		{"Sr No", "Name", "Age"},
	}

	if got := LocateHeaderRow(rows, 2); got != 0 {
		t.Errorf("LocateHeaderRow with maxScan=2 = %d, want 0", got)
	}
}

func TestLocateHeaderRow_HeaderAtRowZero(t *testing.T) {
	rows := [][]string{
		{"Sr No", "Name", "Gender", "Age"},
		{"1", "John", "M", "30"},
	}

	if got := LocateHeaderRow(rows, 20); got != 0 {
		t.Errorf("LocateHeaderRow = %d, want 0", got)
	}
}

func TestScoreHeaderRow(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  int
	}{
		{"full header", []string{"Sr No", "Name", "House No", "Gender", "Age", "EPIC", "Mobile"}, 7},
		{"empty row", []string{"", ""}, 0},
		{"data row", []string{"1", "John", "12", "M", "30"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreHeaderRow(tt.cells); got != tt.want {
				t.Errorf("scoreHeaderRow = %d, want %d", got, tt.want)
			}
		})
	}
}
