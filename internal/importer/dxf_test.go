package importer

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

func saveTestDrawing(t *testing.T, build func(d *drawing.Drawing)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shapes.dxf")

	d := dxf.NewDrawing()
	build(d)
	if err := d.SaveAs(path); err != nil {
		t.Fatalf("failed to save DXF: %v", err)
	}
	return path
}

func addRectLines(t *testing.T, d *drawing.Drawing, x, y, w, h float64) {
	t.Helper()
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			t.Fatalf("failed to add line: %v", err)
		}
	}
}

func TestImportDXF_CircleAndLineChain(t *testing.T) {
	path := saveTestDrawing(t, func(d *drawing.Drawing) {
		if _, err := d.Circle(200, 200, 0, 10); err != nil {
			t.Fatalf("failed to add circle: %v", err)
		}
		addRectLines(t, d, 5, 5, 100, 50)
	})

	result := ImportDXF(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(result.Requests))
	}

	circle := result.Requests[0]
	if math.Abs(circle.Width-20) > 1e-6 || math.Abs(circle.Height-20) > 1e-6 {
		t.Errorf("expected 20x20 circle bounds, got %vx%v", circle.Width, circle.Height)
	}
	rect := result.Requests[1]
	if math.Abs(rect.Width-100) > 1e-9 || math.Abs(rect.Height-50) > 1e-9 {
		t.Errorf("expected 100x50 rectangle, got %vx%v", rect.Width, rect.Height)
	}
	if rect.Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", rect.Quantity)
	}
}

func TestImportDXF_OpenChainIgnored(t *testing.T) {
	path := saveTestDrawing(t, func(d *drawing.Drawing) {
		if _, err := d.Line(0, 0, 0, 10, 0, 0); err != nil {
			t.Fatalf("failed to add line: %v", err)
		}
		if _, err := d.Line(10, 0, 0, 10, 10, 0); err != nil {
			t.Fatalf("failed to add line: %v", err)
		}
	})

	result := ImportDXF(path)
	if len(result.Requests) != 0 {
		t.Errorf("expected no requests, got %d", len(result.Requests))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected a 'no closed shapes' error, got %v", result.Errors)
	}
}

func TestImportDXF_EmptyDrawing(t *testing.T) {
	path := saveTestDrawing(t, func(*drawing.Drawing) {})

	result := ImportDXF(path)
	if len(result.Errors) == 0 {
		t.Error("expected an error for a drawing without entities")
	}
}

func TestImportDXF_FileNotFound(t *testing.T) {
	result := ImportDXF(filepath.Join(t.TempDir(), "missing.dxf"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestChainSegments_OrdersByArea(t *testing.T) {
	square := func(x, y, s float64) []segment {
		return pointsToSegments([]point{{x, y}, {x + s, y}, {x + s, y + s}, {x, y + s}, {x, y}})
	}
	// Reverse one segment so the chain has to match on the far endpoint
	small := square(0, 0, 5)
	small[1] = segment{start: small[1].end, end: small[1].start}

	segs := append(small, square(100, 100, 20)...)
	shapes := chainSegments(segs, chainTolerance)

	if len(shapes) != 2 {
		t.Fatalf("expected 2 shapes, got %d", len(shapes))
	}
	if got := shapes[0].area(); got != 400 {
		t.Errorf("expected largest shape first (area 400), got %v", got)
	}
	if got := shapes[1].bounds(); got.Width != 5 || got.Height != 5 {
		t.Errorf("expected 5x5 bounds, got %v", got)
	}
}

func TestBulgeArcPoints_Semicircle(t *testing.T) {
	pts := bulgeArcPoints(point{0, 0}, point{2, 0}, 1, 32)

	if len(pts) != 33 {
		t.Fatalf("expected 33 points, got %d", len(pts))
	}
	if !pointsClose(pts[0], point{0, 0}, 1e-9) || !pointsClose(pts[32], point{2, 0}, 1e-9) {
		t.Errorf("arc should start and end on the chord endpoints: %v .. %v", pts[0], pts[32])
	}
	box := polygon(pts).bounds()
	if math.Abs(box.Width-2) > 1e-9 || math.Abs(box.Height-1) > 1e-9 {
		t.Errorf("expected 2x1 bounds, got %v", box)
	}
	if box.Y > -0.999 {
		t.Errorf("positive bulge should swing below the chord, got bounds %v", box)
	}
}

func TestBulgeArcPoints_DegenerateChord(t *testing.T) {
	pts := bulgeArcPoints(point{1, 1}, point{1, 1}, 0.5, 8)
	if len(pts) != 2 {
		t.Errorf("expected the two endpoints back, got %d points", len(pts))
	}
}
