package ingest

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", axis, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func TestEndToEnd_TitleRowThenHeader(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Voter List Export"},
		{"Sr No", "Name_En", "Name_Mr", "Age"},
		{"1", "John", "जॉन", "30"},
	})

	rows, err := ReadSheet(data, "roll.xlsx")
	if err != nil {
		t.Fatalf("ReadSheet error = %v", err)
	}

	result, err := ExtractRecords(rows, 20)
	if err != nil {
		t.Fatalf("ExtractRecords error = %v", err)
	}

	if result.HeaderRow != 1 {
		t.Errorf("HeaderRow = %d, want 1", result.HeaderRow)
	}
	if len(result.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(result.Records))
	}

	rec := result.Records[0]
	if rec.SerialNumber != "1" {
		t.Errorf("SerialNumber = %q, want %q", rec.SerialNumber, "1")
	}
	if rec.Name != "John" {
		t.Errorf("Name = %q, want %q", rec.Name, "John")
	}
	if rec.NameMr != "जॉन" {
		t.Errorf("NameMr = %q, want %q", rec.NameMr, "जॉन")
	}
	if rec.Age != 30 {
		t.Errorf("Age = %d, want 30", rec.Age)
	}
}

func TestReadSheet_CSV(t *testing.T) {
	csvData := []byte("Sr No,Name,Age\n1,John,30\n2,अनिल,45\n")

	rows, err := ReadSheet(csvData, "roll.csv")
	if err != nil {
		t.Fatalf("ReadSheet error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	result, err := ExtractRecords(rows, 20)
	if err != nil {
		t.Fatalf("ExtractRecords error = %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(result.Records))
	}
	if result.Records[0].Name != "John" || result.Records[1].NameMr != "अनिल" {
		t.Errorf("records misclassified: %+v", result.Records)
	}
}

func TestReadSheet_MalformedInput(t *testing.T) {
	if _, err := ReadSheet([]byte("this is not a workbook"), "roll.xlsx"); err == nil {
		t.Error("ReadSheet should reject an unreadable workbook")
	}
}

func TestExtractRecords_NoDataRows(t *testing.T) {
	rows := [][]string{
		{"Sr No", "Name", "Age"},
	}

	if _, err := ExtractRecords(rows, 20); !errors.Is(err, ErrNoDataRows) {
		t.Errorf("err = %v, want ErrNoDataRows", err)
	}
}

func TestExtractRecords_BlankRowsAreSkipped(t *testing.T) {
	rows := [][]string{
		{"Sr No", "Name", "Age"},
		{"", "", ""},
		{"1", "John", "30"},
		{"", "", ""},
	}

	result, err := ExtractRecords(rows, 20)
	if err != nil {
		t.Fatalf("ExtractRecords error = %v", err)
	}
	if result.Processed != 1 || len(result.Records) != 1 {
		t.Errorf("Processed = %d, records = %d, want 1 and 1", result.Processed, len(result.Records))
	}
}

func TestExtractRecords_NoValidRecords(t *testing.T) {
	rows := [][]string{
		{"Sr No", "Name", "Age"},
		{"1", "", "30"},
		{"2", "", "45"},
	}

	result, err := ExtractRecords(rows, 20)
	if !errors.Is(err, ErrNoValidRecords) {
		t.Fatalf("err = %v, want ErrNoValidRecords", err)
	}
	if result.Rejected != 2 {
		t.Errorf("Rejected = %d, want 2", result.Rejected)
	}
}
