package widgets

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BinPacker/internal/model"
)

func testLayout() model.Layout {
	return model.Layout{
		Container: model.NewSize(200, 100),
		Placements: []model.Placement{
			{Request: model.Request{Label: "Big", Width: 100, Height: 100}, X: 0, Y: 0},
			{Request: model.Request{Label: "Tiny", Width: 10, Height: 10}, X: 100, Y: 0},
		},
		Free: []model.Rect{
			model.NewRect(110, 0, 90, 100),
			model.NewRect(100, 10, 100, 90),
		},
	}
}

func TestScaleToFit(t *testing.T) {
	assert.Equal(t, float32(2), ScaleToFit(model.NewSize(200, 100), 400, 400))
	assert.Equal(t, float32(0.5), ScaleToFit(model.NewSize(800, 800), 400, 600))
	assert.Equal(t, float32(0), ScaleToFit(model.Size{}, 400, 400))
}

func TestTextColorFor(t *testing.T) {
	assert.Equal(t, color.Black, TextColorFor(color.White))
	assert.Equal(t, color.Black, TextColorFor(color.NRGBA{R: 255, G: 235, B: 59, A: 255}))
	assert.Equal(t, color.White, TextColorFor(color.Black))
	assert.Equal(t, color.White, TextColorFor(color.NRGBA{R: 33, G: 33, B: 120, A: 255}))
}

func TestPackCanvas_ColorFor(t *testing.T) {
	test.NewTempApp(t)

	pc := NewPackCanvas(400, 400)
	red := color.NRGBA{R: 255, A: 255}
	pc.SetLayout(testLayout(), []color.Color{red})

	assert.Equal(t, red, pc.ColorFor(0))
	assert.Equal(t, placementColors[1], pc.ColorFor(1), "missing colours fall back to the palette")
}

func TestPackCanvas_RendererObjects(t *testing.T) {
	test.NewTempApp(t)

	pc := NewPackCanvas(400, 400)
	pc.SetLayout(testLayout(), nil)
	r := test.TempWidgetRenderer(t, pc)

	// background + 2 placements + 1 label (Tiny is too small) + border
	require.Len(t, r.Objects(), 5)
	assert.Equal(t, fyne.NewSize(400, 200), r.MinSize())

	pc.SetShowFree(true)
	assert.True(t, pc.ShowFree())
	assert.Len(t, r.Objects(), 7)

	pc.SetShowFree(false)
	assert.Len(t, r.Objects(), 5)
}

func TestPackCanvas_EmptyLayout(t *testing.T) {
	test.NewTempApp(t)

	pc := NewPackCanvas(400, 400)
	r := test.TempWidgetRenderer(t, pc)

	assert.Empty(t, r.Objects())
	assert.Equal(t, fyne.NewSize(0, 0), r.MinSize())
}
