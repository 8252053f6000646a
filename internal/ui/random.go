package ui

import (
	"image/color"
	"math/rand"

	"github.com/piwi3910/BinPacker/internal/model"
)

// RectGenerator produces the random rectangles and fill colours used by the
// "Insert Rectangle" button.
type RectGenerator struct {
	rng *rand.Rand
	min int
	max int
}

// NewRectGenerator returns a generator whose sides fall in [min, max].
func NewRectGenerator(seed int64, min, max int) *RectGenerator {
	g := &RectGenerator{rng: rand.New(rand.NewSource(seed))}
	g.SetRange(min, max)
	return g
}

// SetRange updates the inclusive side-length bounds. min is raised to 1 and
// max to min when they are out of order.
func (g *RectGenerator) SetRange(min, max int) {
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}
	g.min, g.max = min, max
}

// Range returns the inclusive side-length bounds.
func (g *RectGenerator) Range() (int, int) {
	return g.min, g.max
}

// NextSize returns a rectangle size with each side drawn independently.
func (g *RectGenerator) NextSize() model.Size {
	return model.NewSize(g.side(), g.side())
}

func (g *RectGenerator) side() float64 {
	return float64(g.min + g.rng.Intn(g.max-g.min+1))
}

// NextColor returns an opaque colour chosen uniformly from the 24-bit space.
func (g *RectGenerator) NextColor() color.NRGBA {
	v := g.rng.Intn(0x1000000)
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
