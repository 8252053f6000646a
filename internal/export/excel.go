package export

import (
	"fmt"

	"github.com/piwi3910/BinPacker/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names used by ExportExcel.
const (
	SheetSummary    = "Summary"
	SheetPlacements = "Placements"
	SheetUnplaced   = "Unplaced"
	SheetFree       = "Free"
)

// ExportExcel writes the layout as a workbook with summary, placement,
// unplaced and free-space sheets. An empty layout still produces a workbook.
func ExportExcel(path string, layout model.Layout) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	summary := [][]interface{}{
		{"Property", "Value"},
		{"Container Width", layout.Container.Width},
		{"Container Height", layout.Container.Height},
		{"Heuristic", layout.Heuristic.String()},
		{"Placed", len(layout.Placements)},
		{"Unplaced", len(layout.Unplaced)},
		{"Free Rectangles", len(layout.Free)},
		{"Used Area", layout.UsedArea()},
		{"Total Area", layout.TotalArea()},
		{"Efficiency %", layout.Efficiency()},
	}

	placements := [][]interface{}{{"#", "ID", "Label", "X", "Y", "Width", "Height"}}
	for i, p := range layout.Placements {
		placements = append(placements, []interface{}{
			i + 1, p.Request.ID, p.Request.Label, p.X, p.Y, p.Request.Width, p.Request.Height,
		})
	}

	unplaced := [][]interface{}{{"#", "ID", "Label", "Width", "Height"}}
	for i, r := range layout.Unplaced {
		unplaced = append(unplaced, []interface{}{i + 1, r.ID, r.Label, r.Width, r.Height})
	}

	free := [][]interface{}{{"#", "X", "Y", "Width", "Height", "Area"}}
	for i, r := range layout.Free {
		free = append(free, []interface{}{i + 1, r.X, r.Y, r.Width, r.Height, r.Area()})
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetSummary, summary},
		{SheetPlacements, placements},
		{SheetUnplaced, unplaced},
		{SheetFree, free},
	}

	for _, s := range sheets {
		if s.name != SheetSummary {
			if _, err := f.NewSheet(s.name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
			}
		}
		if err := writeRows(f, s.name, s.rows, bold); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeRows fills sheet from A1 and makes the first row bold.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return fmt.Errorf("failed to address header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	return nil
}
