package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/BinPacker/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// minShapeSize is the smallest bounding-box side accepted from a drawing.
const minShapeSize = 0.01

// chainTolerance is the maximum gap between two segment endpoints that are
// treated as connected.
const chainTolerance = 0.01

type point struct {
	X, Y float64
}

// polygon is a closed outline; the last point connects back to the first.
type polygon []point

// bounds returns the axis-aligned bounding box of the polygon.
func (p polygon) bounds() model.Rect {
	if len(p) == 0 {
		return model.Rect{}
	}
	minX, minY := p[0].X, p[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return model.NewRect(minX, minY, maxX-minX, maxY-minY)
}

// area computes the absolute area with the shoelace formula.
func (p polygon) area() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	var a float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return math.Abs(a) / 2
}

type segment struct {
	start point
	end   point
}

// ImportDXF imports requests from a DXF drawing. Each closed shape
// (LWPOLYLINE, CIRCLE, or a chain of connected LINEs and ARCs) becomes one
// request sized to its bounding box.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var shapes []polygon
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			shape := lwPolylineToPolygon(e)
			if len(shape) >= 3 {
				shapes = append(shapes, shape)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			shapes = append(shapes, circleToPolygon(e, 64))

		case *entity.Arc:
			segments = append(segments, pointsToSegments(arcToPoints(e, 32))...)

		case *entity.Line:
			segments = append(segments, segment{
				start: point{X: e.Start[0], Y: e.Start[1]},
				end:   point{X: e.End[0], Y: e.End[1]},
			})
		}
	}

	shapes = append(shapes, chainSegments(segments, chainTolerance)...)

	if len(shapes) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, shape := range shapes {
		box := shape.bounds()
		if box.Width < minShapeSize || box.Height < minShapeSize {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", box.Width, box.Height))
			continue
		}
		label := fmt.Sprintf("DXF Shape %d", i+1)
		result.Requests = append(result.Requests, model.NewRequest(label, box.Width, box.Height, 1))
	}

	return result
}

// lwPolylineToPolygon converts a LWPOLYLINE. Vertices with a bulge are
// followed by interpolated arc points up to the next vertex.
func lwPolylineToPolygon(lw *entity.LwPolyline) polygon {
	var out polygon

	for i, v := range lw.Vertices {
		current := point{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) <= 1e-9 {
			out = append(out, current)
			continue
		}

		nv := lw.Vertices[(i+1)%len(lw.Vertices)]
		arc := bulgeArcPoints(current, point{X: nv[0], Y: nv[1]}, bulge, 32)
		out = append(out, arc[:len(arc)-1]...)
	}

	return out
}

// bulgeArcPoints samples the arc between p1 and p2 described by a DXF bulge
// factor, the tangent of a quarter of the included angle. Positive bulges
// run counter-clockwise.
func bulgeArcPoints(p1, p2 point, bulge float64, n int) []point {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return []point{p1, p2}
	}

	sagitta := math.Abs(bulge) * chord / 2
	radius := (chord*chord/(4*sagitta) + sagitta) / 2

	perpX, perpY := -dy/chord, dx/chord
	if bulge < 0 {
		perpX, perpY = -perpX, -perpY
	}
	dist := radius - sagitta
	cx := (p1.X+p2.X)/2 + perpX*dist
	cy := (p1.Y+p2.Y)/2 + perpY*dist

	start := math.Atan2(p1.Y-cy, p1.X-cx)
	end := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 && end > start {
		end -= 2 * math.Pi
	} else if bulge > 0 && end < start {
		end += 2 * math.Pi
	}

	return sampleArc(cx, cy, radius, start, end, n)
}

func circleToPolygon(c *entity.Circle, n int) polygon {
	pts := sampleArc(c.Center[0], c.Center[1], c.Radius, 0, 2*math.Pi, n)
	return polygon(pts[:n])
}

func arcToPoints(a *entity.Arc, n int) []point {
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}
	return sampleArc(a.Circle.Center[0], a.Circle.Center[1], a.Circle.Radius, start, end, n)
}

// sampleArc returns n+1 points from angle start to end inclusive.
func sampleArc(cx, cy, r, start, end float64, n int) []point {
	pts := make([]point, n+1)
	for i := range pts {
		angle := start + float64(i)/float64(n)*(end-start)
		pts[i] = point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return pts
}

func pointsToSegments(pts []point) []segment {
	if len(pts) < 2 {
		return nil
	}
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i+1 < len(pts); i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments joins segments end to end into closed polygons. Chains that
// do not close on themselves are dropped. The result is ordered by area,
// largest first.
func chainSegments(segs []segment, tolerance float64) []polygon {
	used := make([]bool, len(segs))
	var shapes []polygon

	for startIdx := range segs {
		if used[startIdx] {
			continue
		}
		used[startIdx] = true
		chain := []point{segs[startIdx].start, segs[startIdx].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
				} else if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
				} else {
					continue
				}
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) < 4 || !pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			continue
		}
		shapes = append(shapes, polygon(chain[:len(chain)-1]))
	}

	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].area() > shapes[j].area()
	})
	return shapes
}

func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}
