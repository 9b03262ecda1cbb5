// SPDX-License-Identifier: MIT

package scenario

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

func isWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

// ReadTable reads a labelled numeric table from an XLSX sheet or a CSV file
// (chosen by extension). The first row holds the column labels; every other
// row must have one number per label. sheet is ignored for CSV.
func ReadTable(path, sheet string) ([]string, [][]float64, error) {
	var (
		records [][]string
		err     error
	)
	switch {
	case isWorkbook(path):
		records, err = readSheet(path, sheet)
	case strings.EqualFold(filepath.Ext(path), ".csv"):
		records, err = readCSV(path)
	default:
		return nil, nil, fmt.Errorf("%w: %s: unsupported table format", ErrInvalidScenario, path)
	}
	if err != nil {
		return nil, nil, err
	}

	return parseRecords(path, records)
}

func readSheet(path, sheet string) ([][]string, error) {
	if sheet == "" {
		return nil, fmt.Errorf("%w: %s: sheet name required", ErrInvalidScenario, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, path, err)
	}

	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return records, nil
}

func parseRecords(path string, records [][]string) ([]string, [][]float64, error) {
	// Spreadsheets often end with blank rows.
	for len(records) > 0 && blank(records[len(records)-1]) {
		records = records[:len(records)-1]
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("%w: %s: need a label row and at least one data row", ErrInvalidScenario, path)
	}

	labels := make([]string, 0, len(records[0]))
	for _, l := range records[0] {
		labels = append(labels, strings.TrimSpace(l))
	}
	for len(labels) > 0 && labels[len(labels)-1] == "" {
		labels = labels[:len(labels)-1]
	}
	n := len(labels)

	data := make([][]float64, len(records)-1)
	for r, rec := range records[1:] {
		if len(rec) < n {
			return nil, nil, fmt.Errorf("%w: %s: row %d has %d values, want %d", ErrInvalidScenario, path, r+2, len(rec), n)
		}
		data[r] = make([]float64, n)
		for c := 0; c < n; c++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[c]), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %s: row %d column %q: %v", ErrInvalidScenario, path, r+2, labels[c], err)
			}
			data[r][c] = v
		}
	}

	return labels, data, nil
}

func blank(rec []string) bool {
	for _, s := range rec {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

// WriteSheet writes header and rows into sheet of the workbook at path,
// replacing the sheet if it exists. The workbook is created when missing;
// other sheets are preserved.
func WriteSheet(path, sheet string, header []string, rows [][]any) error {
	var (
		f   *excelize.File
		err error
	)
	fresh := false
	if _, statErr := os.Stat(path); statErr == nil {
		if f, err = excelize.OpenFile(path); err != nil {
			return fmt.Errorf("opening workbook %s: %w", path, err)
		}
	} else {
		f = excelize.NewFile()
		fresh = true
	}
	defer f.Close()

	// A workbook always needs one sheet; park on a scratch sheet while the
	// target is dropped and recreated.
	const scratch = "_diim_scratch"
	if _, err = f.NewSheet(scratch); err != nil {
		return fmt.Errorf("writing sheet %q: %w", sheet, err)
	}
	if idx, _ := f.GetSheetIndex(sheet); idx >= 0 {
		if err = f.DeleteSheet(sheet); err != nil {
			return fmt.Errorf("replacing sheet %q: %w", sheet, err)
		}
	}
	if _, err = f.NewSheet(sheet); err != nil {
		return fmt.Errorf("writing sheet %q: %w", sheet, err)
	}
	if fresh && sheet != "Sheet1" {
		if err = f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("writing sheet %q: %w", sheet, err)
		}
	}

	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err = setRow(f, sheet, 1, hdr); err != nil {
		return err
	}
	for r, row := range rows {
		if err = setRow(f, sheet, r+2, row); err != nil {
			return err
		}
	}
	if err = f.DeleteSheet(scratch); err != nil {
		return fmt.Errorf("writing sheet %q: %w", sheet, err)
	}
	if idx, idxErr := f.GetSheetIndex(sheet); idxErr == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	if fresh {
		err = f.SaveAs(path)
	} else {
		err = f.Save()
	}
	if err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}

	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err = f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d of sheet %q: %w", row, sheet, err)
	}

	return nil
}
