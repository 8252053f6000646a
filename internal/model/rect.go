package model

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle. X and Y are the top-left corner,
// measured from the container's top-left origin.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Size returns the dimensions of the rectangle without its position.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Contains reports whether o lies entirely inside r. Shared edges count as inside.
func (r Rect) Contains(o Rect) bool {
	return r.X <= o.X &&
		r.Y <= o.Y &&
		r.X+r.Width >= o.X+o.Width &&
		r.Y+r.Height >= o.Y+o.Height
}

// DisjointFrom reports whether r and o share no interior area.
// Rectangles that only touch along an edge are disjoint.
func (r Rect) DisjointFrom(o Rect) bool {
	return r.Right() <= o.X ||
		r.Bottom() <= o.Y ||
		o.Right() <= r.X ||
		o.Bottom() <= r.Y
}

// Intersects is the exact complement of DisjointFrom.
func (r Rect) Intersects(o Rect) bool {
	return !r.DisjointFrom(o)
}

// Copy returns an independent rectangle with the same fields.
func (r Rect) Copy() Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func (r Rect) String() string {
	return fmt.Sprintf("%gx%g@(%g,%g)", r.Width, r.Height, r.X, r.Y)
}

// Size is a width/height pair that has not been given a position.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func NewSize(w, h float64) Size {
	return Size{Width: w, Height: h}
}

// At positions the size with its top-left corner at (x, y).
func (s Size) At(x, y float64) Rect {
	return Rect{X: x, Y: y, Width: s.Width, Height: s.Height}
}

func (s Size) Area() float64 {
	return s.Width * s.Height
}

// Valid reports whether both dimensions are finite and strictly positive.
func (s Size) Valid() bool {
	return validDimension(s.Width) && validDimension(s.Height)
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

func validDimension(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
