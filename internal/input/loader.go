// Package input loads product rows from uploaded CSV or XLSX lists and
// validates their shape before anything is fetched.
package input

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ezinulo/pricefinder/pkg/models"
)

// Column names expected in the uploaded list.
const (
	ColumnEAN  = "EAN"
	ColumnName = "Name"
	ColumnCost = "EK"
)

// Load reads product rows from a .csv or .xlsx file. EAN values stay opaque
// text so leading zeros survive. With withCost set, the Name and EK columns
// become mandatory and every row needs an EK value. A missing required
// column aborts the load with a descriptive error; no partial table is
// produced.
func Load(path string, withCost bool) ([]models.ProductRow, error) {
	var records [][]string
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		records, err = readCSV(path)
	case ".xlsx":
		records, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported file type %q (expected .csv or .xlsx)", ext)
	}
	if err != nil {
		return nil, err
	}

	return parseRecords(records, withCost)
}

// Limit caps the number of rows processed; n <= 0 means no limit.
func Limit(rows []models.ProductRow, n int) []models.ProductRow {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows tolerated, cells validated individually
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return records, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func parseRecords(records [][]string, withCost bool) ([]models.ProductRow, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("input file is empty")
	}

	header := records[0]
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}

	required := []string{ColumnEAN}
	if withCost {
		required = append(required, ColumnName, ColumnCost)
	}
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("required column %q not found in input file", c)
		}
	}

	rows := make([]models.ProductRow, 0, len(records)-1)
	for n, rec := range records[1:] {
		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		ean := cell(ColumnEAN)
		if ean == "" {
			// Blank padding rows are common in exported sheets.
			continue
		}

		row := models.ProductRow{EAN: ean, Name: cell(ColumnName)}
		if ek := cell(ColumnCost); ek != "" {
			v, err := strconv.ParseFloat(strings.ReplaceAll(ek, ",", "."), 64)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("row %d: invalid EK value %q (want a non-negative number)", n+2, ek)
			}
			row.Cost = v
			row.HasCost = true
		} else if withCost {
			return nil, fmt.Errorf("row %d: missing EK value", n+2)
		}
		rows = append(rows, row)
	}

	return rows, nil
}
