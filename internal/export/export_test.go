package export

import (
	"fmt"
	"os"
	"testing"

	"github.com/piwi3910/BinPacker/internal/model"
)

// buildTestLayout returns a small 800x600 layout with three placements,
// one unplaced request and the matching free rectangles.
func buildTestLayout() model.Layout {
	return model.Layout{
		Container: model.NewSize(800, 600),
		Heuristic: model.HeuristicShortSideFit,
		Placements: []model.Placement{
			{Request: model.Request{ID: "r1", Label: "Header", Width: 800, Height: 100, Quantity: 1}, X: 0, Y: 0},
			{Request: model.Request{ID: "r2", Label: "Sidebar", Width: 200, Height: 500, Quantity: 1}, X: 0, Y: 100},
			{Request: model.Request{ID: "r3", Label: "Card", Width: 300, Height: 200, Quantity: 1}, X: 200, Y: 100},
		},
		Unplaced: []model.Request{
			{ID: "u1", Label: "Poster", Width: 900, Height: 900, Quantity: 1},
		},
		Free: []model.Rect{
			model.NewRect(200, 300, 600, 300),
			model.NewRect(500, 100, 300, 500),
		},
	}
}

// buildManyPlacements lays out n 40x20 rectangles in rows of ten.
func buildManyPlacements(n int) model.Layout {
	layout := model.Layout{
		Container: model.NewSize(400, 20*float64(n/10+1)),
		Heuristic: model.HeuristicAreaFit,
	}
	for i := 0; i < n; i++ {
		layout.Placements = append(layout.Placements, model.Placement{
			Request: model.Request{ID: fmt.Sprintf("m%02d", i), Label: fmt.Sprintf("Tile %d", i+1), Width: 40, Height: 20, Quantity: 1},
			X:       float64(i%10) * 40,
			Y:       float64(i/10) * 20,
		})
	}
	return layout
}

func assertFileSize(t *testing.T, path string, min int64) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() < min {
		t.Errorf("file seems too small: %d bytes", info.Size())
	}
}
