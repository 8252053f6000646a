package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/piwi3910/BinPacker/internal/model"
)

// ErrInvalidDimensions is returned when a container or request size is not
// a finite, strictly positive number.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// Packer implements the maximal-rectangles bin-packing algorithm for a
// single fixed-size container. It keeps a list of free rectangles that may
// overlap each other but never contain one another; together they cover
// exactly the part of the container not covered by positioned rectangles.
//
// A Packer is not safe for concurrent use.
type Packer struct {
	width     float64
	height    float64
	heuristic model.Heuristic

	freeRects    []model.Rect
	positioned   []model.Rect
	unpositioned []model.Size
}

// InsertResult describes the outcome of a single Insert call.
type InsertResult struct {
	Positioned bool
	Size       model.Size

	rect model.Rect
}

// Rect returns the placed rectangle. The second return value is false when
// the request could not be positioned, in which case the rectangle is zero.
func (r InsertResult) Rect() (model.Rect, bool) {
	if !r.Positioned {
		return model.Rect{}, false
	}
	return r.rect, true
}

// NewPacker creates a packer for a width x height container using the best
// short side fit heuristic.
func NewPacker(width, height float64) (*Packer, error) {
	return NewPackerWithHeuristic(width, height, model.HeuristicShortSideFit)
}

// NewPackerWithHeuristic creates a packer that scores free rectangles with h.
func NewPackerWithHeuristic(width, height float64, h model.Heuristic) (*Packer, error) {
	if !model.NewSize(width, height).Valid() {
		return nil, fmt.Errorf("%w: container %vx%v", ErrInvalidDimensions, width, height)
	}
	if h == "" {
		h = model.HeuristicShortSideFit
	}
	if h != model.HeuristicShortSideFit && h != model.HeuristicAreaFit {
		return nil, fmt.Errorf("unsupported heuristic %q", h)
	}
	return &Packer{
		width:     width,
		height:    height,
		heuristic: h,
		freeRects: []model.Rect{model.NewRect(0, 0, width, height)},
	}, nil
}

// Insert places a width x height rectangle in the best fitting free area.
// Running out of space is not an error: the result has Positioned=false and
// the size is recorded in Unpositioned. An error is returned only for
// non-positive or non-finite dimensions, and the packer is left unchanged.
func (p *Packer) Insert(width, height float64) (InsertResult, error) {
	size := model.NewSize(width, height)
	if !size.Valid() {
		return InsertResult{}, fmt.Errorf("%w: rectangle %vx%v", ErrInvalidDimensions, width, height)
	}
	if !p.resolvable(width, height) {
		return InsertResult{}, fmt.Errorf("%w: rectangle %vx%v is too small for a %vx%v container",
			ErrInvalidDimensions, width, height, p.width, p.height)
	}

	r, ok := p.findPosition(width, height)
	if !ok {
		p.unpositioned = append(p.unpositioned, size)
		Logger().Info("rectangle does not fit",
			"size", size.String(),
			"free_rects", len(p.freeRects))
		return InsertResult{Positioned: false, Size: size}, nil
	}

	p.placeRect(r)
	p.positioned = append(p.positioned, r)

	Logger().Debug("rectangle positioned",
		"rect", r.String(),
		"free_rects", len(p.freeRects))

	return InsertResult{Positioned: true, Size: size, rect: r}, nil
}

// placeRect splits every free rectangle overlapping r around it, then prunes
// the free list. Each free rectangle present before the call is visited
// exactly once; the pieces produced by a split are not split again.
func (p *Packer) placeRect(r model.Rect) {
	kept := make([]model.Rect, 0, len(p.freeRects))
	var produced []model.Rect

	for _, f := range p.freeRects {
		pieces, split := splitFreeRect(f, r)
		if !split {
			kept = append(kept, f)
			continue
		}
		produced = append(produced, pieces...)
	}

	p.freeRects = pruneFreeRects(append(kept, produced...))
}

// findPosition returns the placement for a width x height rectangle chosen by
// the packer's heuristic. The rectangle is always placed flush to the top-left
// corner of the winning free rectangle. The second return value is false
// when no free rectangle is large enough.
func (p *Packer) findPosition(width, height float64) (model.Rect, bool) {
	switch p.heuristic {
	case model.HeuristicAreaFit:
		return findPositionBestAreaFit(p.freeRects, width, height)
	default:
		return findPositionBestShortSideFit(p.freeRects, width, height)
	}
}

// findPositionBestShortSideFit picks the free rectangle that leaves the
// smallest leftover on its shorter side, breaking ties on the longer side.
// The first candidate wins any remaining tie.
func findPositionBestShortSideFit(free []model.Rect, width, height float64) (model.Rect, bool) {
	var best model.Rect
	found := false
	bestShortSideFit := math.MaxFloat64
	bestLongSideFit := math.MaxFloat64

	for _, f := range free {
		if f.Width < width || f.Height < height {
			continue
		}

		leftoverHoriz := f.Width - width
		leftoverVert := f.Height - height
		shortSideFit := min(leftoverHoriz, leftoverVert)
		longSideFit := max(leftoverHoriz, leftoverVert)

		if shortSideFit < bestShortSideFit ||
			(shortSideFit == bestShortSideFit && longSideFit < bestLongSideFit) {
			best = model.NewRect(f.X, f.Y, width, height)
			bestShortSideFit = shortSideFit
			bestLongSideFit = longSideFit
			found = true
		}
	}
	return best, found
}

// findPositionBestAreaFit picks the free rectangle with the least area left
// over after placement, breaking ties on the short side leftover.
func findPositionBestAreaFit(free []model.Rect, width, height float64) (model.Rect, bool) {
	var best model.Rect
	found := false
	bestAreaFit := math.MaxFloat64
	bestShortSideFit := math.MaxFloat64

	for _, f := range free {
		if f.Width < width || f.Height < height {
			continue
		}

		areaFit := f.Area() - width*height
		shortSideFit := min(f.Width-width, f.Height-height)

		if areaFit < bestAreaFit ||
			(areaFit == bestAreaFit && shortSideFit < bestShortSideFit) {
			best = model.NewRect(f.X, f.Y, width, height)
			bestAreaFit = areaFit
			bestShortSideFit = shortSideFit
			found = true
		}
	}
	return best, found
}

// splitFreeRect returns the parts of free rectangle f that are not covered by
// the placed rectangle r. The second return value is false when r does not
// overlap f, meaning f should be kept as it is.
//
// Up to four strips are produced (above, below, left and right of r). Each
// strip spans the full extent of f along the other axis, so strips may
// overlap one another.
func splitFreeRect(f, r model.Rect) ([]model.Rect, bool) {
	if r.DisjointFrom(f) {
		return nil, false
	}

	var pieces []model.Rect

	if r.X < f.Right() && f.X < r.Right() {
		// Strip above r
		if f.Y < r.Y && r.Y < f.Bottom() {
			piece := f.Copy()
			piece.Height = r.Y - piece.Y
			pieces = append(pieces, piece)
		}
		// Strip below r
		if r.Bottom() < f.Bottom() {
			piece := f.Copy()
			piece.Y = r.Bottom()
			piece.Height = f.Bottom() - r.Bottom()
			pieces = append(pieces, piece)
		}
	}

	if r.Y < f.Bottom() && f.Y < r.Bottom() {
		// Strip left of r
		if f.X < r.X && r.X < f.Right() {
			piece := f.Copy()
			piece.Width = r.X - piece.X
			pieces = append(pieces, piece)
		}
		// Strip right of r
		if r.Right() < f.Right() {
			piece := f.Copy()
			piece.X = r.Right()
			piece.Width = f.Right() - r.Right()
			pieces = append(pieces, piece)
		}
	}

	return pieces, true
}

// pruneFreeRects removes every free rectangle that is contained in another.
// Of two equal rectangles the earlier one is dropped. The relative order of
// the survivors is preserved.
func pruneFreeRects(free []model.Rect) []model.Rect {
	for i := 0; i < len(free); i++ {
		for j := i + 1; j < len(free); j++ {
			if free[j].Contains(free[i]) {
				free = append(free[:i], free[i+1:]...)
				i--
				break
			}
			if free[i].Contains(free[j]) {
				free = append(free[:j], free[j+1:]...)
				j--
			}
		}
	}
	return free
}

// resolvable reports whether a width x height rectangle still has extent
// once added to any coordinate inside the container. Smaller sides vanish
// in float64 rounding and would leave zero-width placements.
func (p *Packer) resolvable(width, height float64) bool {
	return p.width+width != p.width && p.height+height != p.height
}

// CanFit reports whether a width x height rectangle would be positioned by
// Insert, without modifying the packer.
func (p *Packer) CanFit(width, height float64) bool {
	if !model.NewSize(width, height).Valid() || !p.resolvable(width, height) {
		return false
	}
	_, ok := p.findPosition(width, height)
	return ok
}

// Width returns the container width.
func (p *Packer) Width() float64 { return p.width }

// Height returns the container height.
func (p *Packer) Height() float64 { return p.height }

// Heuristic returns the heuristic used to score free rectangles.
func (p *Packer) Heuristic() model.Heuristic { return p.heuristic }

// Positioned returns a copy of the placed rectangles in insertion order.
func (p *Packer) Positioned() []model.Rect {
	out := make([]model.Rect, len(p.positioned))
	copy(out, p.positioned)
	return out
}

// Unpositioned returns a copy of the sizes that did not fit, in insertion order.
func (p *Packer) Unpositioned() []model.Size {
	out := make([]model.Size, len(p.unpositioned))
	copy(out, p.unpositioned)
	return out
}

// FreeRects returns a copy of the current free rectangle list.
func (p *Packer) FreeRects() []model.Rect {
	out := make([]model.Rect, len(p.freeRects))
	copy(out, p.freeRects)
	return out
}

// UsedArea returns the total area of all positioned rectangles.
func (p *Packer) UsedArea() float64 {
	var total float64
	for _, r := range p.positioned {
		total += r.Area()
	}
	return total
}

// Occupancy returns the fraction of the container covered, from 0 to 1.
func (p *Packer) Occupancy() float64 {
	return p.UsedArea() / (p.width * p.height)
}
