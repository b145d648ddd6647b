// Package export flattens assembled result rows into a tabular form and
// writes it out as CSV, XLSX or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ezinulo/pricefinder/pkg/models"
)

// SheetName is the sheet the XLSX export writes to.
const SheetName = "Preisvergleich"

// DefaultXLSXName mirrors the historical export name, one file per day.
func DefaultXLSXName() string {
	return "preisvergleich_" + time.Now().Format("2006-01-02") + ".xlsx"
}

// Table flattens result rows into a header plus one record per row. Source
// columns appear in the order of the first row's quotes; every row of a run
// carries the same sources in the same order, so the header is stable.
func Table(rows []models.ResultRow) (header []string, records [][]string) {
	header = []string{"EAN", "Name", "EK"}
	if len(rows) > 0 {
		for _, q := range rows[0].Quotes {
			header = append(header, q.Source+" Price", q.Source+" Link")
		}
	}
	header = append(header, "UVP", "B2B", "Margin %", "Margin vs EK %", "Rating")

	records = make([][]string, 0, len(rows))
	for _, r := range rows {
		rec := []string{r.Row.EAN, r.Row.Name, costCell(r.Row)}
		for _, q := range r.Quotes {
			rec = append(rec, quoteCell(q), q.Link)
		}
		rec = append(rec,
			num(r.Metrics.UVP),
			num(r.Metrics.B2B),
			num(r.Metrics.MarginVsAverage),
			num(r.Metrics.MarginVsCost),
			string(r.Rating),
		)
		records = append(records, rec)
	}
	return header, records
}

func costCell(row models.ProductRow) string {
	if !row.HasCost {
		return ""
	}
	return num(row.Cost)
}

func quoteCell(q models.Quote) string {
	switch {
	case q.Found:
		return num(q.Price)
	case q.Outcome == models.OutcomeError:
		return "Error"
	default:
		return "Not Found"
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// SaveCSV writes the flattened table to path.
func SaveCSV(rows []models.ResultRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header, records := Table(rows)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	w.Flush()
	return w.Error()
}

// SaveXLSX writes the flattened table to a single-sheet workbook at path.
func SaveXLSX(rows []models.ResultRow, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	header, records := Table(rows)
	all := append([][]string{header}, records...)
	for i, rec := range all {
		cells := make([]interface{}, len(rec))
		for j, c := range rec {
			cells[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// SaveJSON writes the result rows as an indented JSON array at path, keeping
// the full structure instead of the flattened table.
func SaveJSON(rows []models.ResultRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
