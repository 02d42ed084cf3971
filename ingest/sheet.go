package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"voterroll_site/models"
)

var (
	// ErrNoSheets means the workbook opened but contains no sheets.
	ErrNoSheets = errors.New("workbook has no sheets")
	// ErrNoDataRows means nothing usable follows the located header row.
	ErrNoDataRows = errors.New("sheet has no data rows below the header")
	// ErrNoValidRecords means every data row failed the name invariant.
	ErrNoValidRecords = errors.New("no row carried a name in either language")
)

// ReadSheet loads an uploaded spreadsheet into raw rows. The first sheet of
// an .xlsx/.xlsm workbook is used; .csv files go through encoding/csv.
// Values come back raw so serial numbers and EPIC identifiers keep their
// source formatting.
func ReadSheet(data []byte, filename string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return readCSV(data)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

// ExtractResult is the outcome of running the locator and transformer over
// one sheet.
type ExtractResult struct {
	Records   []models.VoterRecord
	HeaderRow int
	Processed int // non-blank data rows seen
	Rejected  int // rows dropped for missing names
}

// ExtractRecords locates the header inside the raw sheet and transforms
// every following non-blank row. It fails fast when there is nothing below
// the header or when every row is rejected.
func ExtractRecords(rows [][]string, maxScan int) (ExtractResult, error) {
	res := ExtractResult{HeaderRow: LocateHeaderRow(rows, maxScan)}
	if res.HeaderRow >= len(rows) {
		return res, ErrNoDataRows
	}
	header := rows[res.HeaderRow]

	for _, cells := range rows[res.HeaderRow+1:] {
		if isBlankRow(cells) {
			continue
		}
		res.Processed++
		rec, ok := TransformRow(BuildRawRow(header, cells))
		if !ok {
			res.Rejected++
			continue
		}
		res.Records = append(res.Records, rec)
	}

	if res.Processed == 0 {
		return res, ErrNoDataRows
	}
	if len(res.Records) == 0 {
		return res, ErrNoValidRecords
	}
	return res, nil
}
