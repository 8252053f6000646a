package ui

import (
	"fmt"

	"github.com/piwi3910/BinPacker/internal/engine"
	"github.com/piwi3910/BinPacker/internal/model"
)

// insertStatus describes the outcome of a single insert for the status line.
func insertStatus(res engine.InsertResult) string {
	r, ok := res.Rect()
	if !ok {
		return fmt.Sprintf("No room for %s", res.Size)
	}
	return fmt.Sprintf("Placed %s at (%g, %g)", res.Size, r.X, r.Y)
}

// layoutSummary is the running tally shown under the canvas.
func layoutSummary(layout model.Layout) string {
	return fmt.Sprintf("Container %s | Placed: %d | Unplaced: %d | Free rects: %d | Efficiency: %.1f%%",
		layout.Container, len(layout.Placements), len(layout.Unplaced), len(layout.Free), layout.Efficiency())
}

// importSummary builds the message shown after an import.
func importSummary(placed, unplaced, skipped int) string {
	msg := fmt.Sprintf("Inserted %d rectangles.", placed+unplaced)
	if unplaced > 0 {
		msg += fmt.Sprintf("\n%d did not fit.", unplaced)
	}
	if skipped > 0 {
		msg += fmt.Sprintf("\n\n%d rows had errors and were skipped.", skipped)
	}
	return msg
}
