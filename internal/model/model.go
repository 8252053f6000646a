package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Heuristic selects how the packer scores candidate free rectangles.
type Heuristic string

const (
	HeuristicShortSideFit Heuristic = "short-side" // Best short side fit, ties broken by long side
	HeuristicAreaFit      Heuristic = "area"       // Best area fit, ties broken by short side
)

// Heuristics lists the supported heuristics in display order.
var Heuristics = []Heuristic{HeuristicShortSideFit, HeuristicAreaFit}

func (h Heuristic) String() string {
	switch h {
	case HeuristicAreaFit:
		return "Best Area Fit"
	default:
		return "Best Short Side Fit"
	}
}

// ParseHeuristic accepts the canonical names plus a few common abbreviations.
func ParseHeuristic(s string) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "short-side", "short", "bssf":
		return HeuristicShortSideFit, nil
	case "area", "baf":
		return HeuristicAreaFit, nil
	default:
		return "", fmt.Errorf("unknown heuristic %q", s)
	}
}

// Request is a rectangle a caller wants placed.
type Request struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Quantity int     `json:"quantity"`
}

func NewRequest(label string, w, h float64, qty int) Request {
	return Request{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// Size returns the requested dimensions.
func (r Request) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Placement is a request that found a spot in the container.
type Placement struct {
	Request Request `json:"request"`
	X       float64 `json:"x"` // Position from left edge
	Y       float64 `json:"y"` // Position from top edge
}

// Rect returns the area the placement occupies.
func (p Placement) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.Request.Width, Height: p.Request.Height}
}

// Layout is a read-only snapshot of a container and everything placed in it.
type Layout struct {
	Container  Size        `json:"container"`
	Heuristic  Heuristic   `json:"heuristic"`
	Placements []Placement `json:"placements"`
	Unplaced   []Request   `json:"unplaced"`
	Free       []Rect      `json:"free"`
}

// UsedArea returns the total area covered by placements.
func (l Layout) UsedArea() float64 {
	var total float64
	for _, p := range l.Placements {
		total += p.Request.Width * p.Request.Height
	}
	return total
}

// TotalArea returns the container area.
func (l Layout) TotalArea() float64 {
	return l.Container.Area()
}

// FreeArea returns the container area not covered by placements.
func (l Layout) FreeArea() float64 {
	return l.TotalArea() - l.UsedArea()
}

// Efficiency returns the usage percentage.
func (l Layout) Efficiency() float64 {
	ta := l.TotalArea()
	if ta == 0 {
		return 0
	}
	return (l.UsedArea() / ta) * 100.0
}

// LargestFree returns up to n free rectangles ordered by area, largest first.
func (l Layout) LargestFree(n int) []Rect {
	sorted := make([]Rect, len(l.Free))
	copy(sorted, l.Free)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Area() > sorted[j].Area()
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// PackSettings holds the container and packing configuration.
type PackSettings struct {
	ContainerWidth  float64   `json:"container_width"`
	ContainerHeight float64   `json:"container_height"`
	Heuristic       Heuristic `json:"heuristic"`
	SortDescending  bool      `json:"sort_descending"` // Batch packing only: largest area first

	// Random rectangle generator used by the display layer
	MinRandomSize int `json:"min_random_size"`
	MaxRandomSize int `json:"max_random_size"`
}

// Container returns the configured container size.
func (s PackSettings) Container() Size {
	return Size{Width: s.ContainerWidth, Height: s.ContainerHeight}
}

func DefaultSettings() PackSettings {
	return PackSettings{
		ContainerWidth:  800,
		ContainerHeight: 800,
		Heuristic:       HeuristicShortSideFit,
		SortDescending:  false,
		MinRandomSize:   50,
		MaxRandomSize:   249,
	}
}
