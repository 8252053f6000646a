package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/BinPacker/internal/model"
	"github.com/xuri/excelize/v2"
)

func TestExportExcel_Sheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.xlsx")

	if err := ExportExcel(path, buildTestLayout()); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	want := []string{SheetSummary, SheetPlacements, SheetUnplaced, SheetFree}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("expected sheets %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	rows, err := f.GetRows(SheetPlacements)
	if err != nil {
		t.Fatalf("failed to read placements: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 placements, got %d rows", len(rows))
	}
	if rows[2][2] != "Sidebar" || rows[2][3] != "0" || rows[2][4] != "100" {
		t.Errorf("unexpected placement row: %v", rows[2])
	}

	rows, err = f.GetRows(SheetUnplaced)
	if err != nil {
		t.Fatalf("failed to read unplaced: %v", err)
	}
	if len(rows) != 2 || rows[1][2] != "Poster" {
		t.Errorf("unexpected unplaced rows: %v", rows)
	}

	rows, err = f.GetRows(SheetFree)
	if err != nil {
		t.Fatalf("failed to read free: %v", err)
	}
	if len(rows) != 3 || rows[1][5] != "180000" {
		t.Errorf("unexpected free rows: %v", rows)
	}

	eff, err := f.GetCellValue(SheetSummary, "B10")
	if err != nil {
		t.Fatalf("failed to read efficiency: %v", err)
	}
	if eff == "" {
		t.Error("expected efficiency in summary")
	}
}

func TestExportExcel_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	if err := ExportExcel(path, model.Layout{Container: model.NewSize(10, 10)}); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetPlacements)
	if err != nil {
		t.Fatalf("failed to read placements: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected only the header row, got %d", len(rows))
	}
}
