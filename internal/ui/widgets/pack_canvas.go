package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/BinPacker/internal/model"
)

// Fallback palette for placements without an assigned colour.
var placementColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

var (
	containerFill   = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	containerStroke = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	placementStroke = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	freeStroke      = color.NRGBA{R: 200, G: 0, B: 0, A: 160}
)

// PackCanvas draws a container with its placed rectangles and, optionally,
// the outlines of the maximal free rectangles.
type PackCanvas struct {
	widget.BaseWidget

	layout    model.Layout
	colors    []color.Color
	showFree  bool
	maxWidth  float32
	maxHeight float32
}

// NewPackCanvas creates an empty canvas scaled to fit within maxW x maxH.
func NewPackCanvas(maxW, maxH float32) *PackCanvas {
	pc := &PackCanvas{maxWidth: maxW, maxHeight: maxH}
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetLayout replaces the displayed layout. colors[i] fills placement i;
// missing entries fall back to a fixed palette.
func (pc *PackCanvas) SetLayout(layout model.Layout, colors []color.Color) {
	pc.layout = layout
	pc.colors = colors
	pc.Refresh()
}

// SetShowFree toggles the free rectangle outlines.
func (pc *PackCanvas) SetShowFree(show bool) {
	pc.showFree = show
	pc.Refresh()
}

// ShowFree reports whether free rectangles are drawn.
func (pc *PackCanvas) ShowFree() bool { return pc.showFree }

// ColorFor returns the fill colour of placement i.
func (pc *PackCanvas) ColorFor(i int) color.Color {
	if i >= 0 && i < len(pc.colors) && pc.colors[i] != nil {
		return pc.colors[i]
	}
	return placementColors[i%len(placementColors)]
}

// Scale returns the factor that maps container units to canvas pixels.
func (pc *PackCanvas) Scale() float32 {
	return ScaleToFit(pc.layout.Container, pc.maxWidth, pc.maxHeight)
}

// ScaleToFit returns the largest factor that fits size inside maxW x maxH,
// or 0 for an empty size.
func ScaleToFit(size model.Size, maxW, maxH float32) float32 {
	if size.Width <= 0 || size.Height <= 0 {
		return 0
	}
	return min(maxW/float32(size.Width), maxH/float32(size.Height))
}

// TextColorFor picks black or white text, whichever reads better on bg.
func TextColorFor(bg color.Color) color.Color {
	r, g, b, _ := bg.RGBA()
	// ITU-R BT.601 luma on 16-bit channels
	luma := (299*r + 587*g + 114*b) / 1000
	if luma > 0x8000 {
		return color.Black
	}
	return color.White
}

func (pc *PackCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &packCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

type packCanvasRenderer struct {
	pc      *PackCanvas
	objects []fyne.CanvasObject
}

func (r *packCanvasRenderer) rebuild() {
	r.objects = nil

	layout := r.pc.layout
	scale := r.pc.Scale()
	if scale == 0 {
		return
	}

	canvasW := float32(layout.Container.Width) * scale
	canvasH := float32(layout.Container.Height) * scale

	bg := canvas.NewRectangle(containerFill)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	for i, p := range layout.Placements {
		fill := r.pc.ColorFor(i)
		pw := float32(p.Request.Width) * scale
		ph := float32(p.Request.Height) * scale
		pos := fyne.NewPos(float32(p.X)*scale, float32(p.Y)*scale)

		rect := canvas.NewRectangle(fill)
		rect.StrokeColor = placementStroke
		rect.StrokeWidth = 1
		rect.Resize(fyne.NewSize(pw, ph))
		rect.Move(pos)
		r.objects = append(r.objects, rect)

		if pw > 30 && ph > 16 {
			label := canvas.NewText(fmt.Sprintf("%gx%g", p.Request.Width, p.Request.Height), TextColorFor(fill))
			label.TextSize = 10
			label.Move(pos.AddXY(3, 2))
			r.objects = append(r.objects, label)
		}
	}

	if r.pc.showFree {
		for _, f := range layout.Free {
			outline := canvas.NewRectangle(color.Transparent)
			outline.StrokeColor = freeStroke
			outline.StrokeWidth = 1
			outline.Resize(fyne.NewSize(float32(f.Width)*scale, float32(f.Height)*scale))
			outline.Move(fyne.NewPos(float32(f.X)*scale, float32(f.Y)*scale))
			r.objects = append(r.objects, outline)
		}
	}

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = containerStroke
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, border)
}

func (r *packCanvasRenderer) Layout(size fyne.Size)        {}
func (r *packCanvasRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.pc) }
func (r *packCanvasRenderer) Destroy()                     {}
func (r *packCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *packCanvasRenderer) MinSize() fyne.Size {
	scale := r.pc.Scale()
	c := r.pc.layout.Container
	return fyne.NewSize(float32(c.Width)*scale, float32(c.Height)*scale)
}
