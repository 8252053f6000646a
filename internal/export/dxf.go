package export

import (
	"fmt"

	"github.com/piwi3910/BinPacker/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// Layer names used by ExportDXF.
const (
	LayerContainer  = "CONTAINER"
	LayerPlacements = "PLACEMENTS"
	LayerFree       = "FREE"
)

// ExportDXF writes the container outline and every placement as closed
// line loops on separate layers. Free rectangles are included when
// includeFree is set. DXF uses a y-up axis, so y is flipped against the
// container height.
func ExportDXF(path string, layout model.Layout, includeFree bool) error {
	d := dxf.NewDrawing()

	if _, err := d.AddLayer(LayerContainer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerContainer, err)
	}
	h := layout.Container.Height
	if err := drawRectLoop(d, layout.Container.At(0, 0), h); err != nil {
		return err
	}

	if _, err := d.AddLayer(LayerPlacements, color.Green, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerPlacements, err)
	}
	for _, p := range layout.Placements {
		if err := drawRectLoop(d, p.Rect(), h); err != nil {
			return fmt.Errorf("placement %q: %w", p.Request.Label, err)
		}
	}

	if includeFree {
		if _, err := d.AddLayer(LayerFree, color.Red, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", LayerFree, err)
		}
		for _, f := range layout.Free {
			if err := drawRectLoop(d, f, h); err != nil {
				return err
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// drawRectLoop adds the four edges of r to the current layer.
func drawRectLoop(d *drawing.Drawing, r model.Rect, containerHeight float64) error {
	top := containerHeight - r.Y
	bottom := containerHeight - r.Bottom()
	corners := [4][2]float64{
		{r.X, bottom},
		{r.Right(), bottom},
		{r.Right(), top},
		{r.X, top},
	}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%4]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return fmt.Errorf("failed to add line: %w", err)
		}
	}
	return nil
}
