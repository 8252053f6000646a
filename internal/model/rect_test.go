package model

import "testing"

func TestRect_RightBottom(t *testing.T) {
	r := NewRect(5, 10, 20, 15)
	if r.Right() != 25 {
		t.Errorf("Right() = %v, want 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %v, want 25", r.Bottom())
	}
	if r.Area() != 300 {
		t.Errorf("Area() = %v, want 300", r.Area())
	}
}

func TestRect_Contains(t *testing.T) {
	outer := NewRect(0, 0, 100, 100)

	tests := map[string]struct {
		inner Rect
		want  bool
	}{
		"fully inside":       {NewRect(10, 10, 20, 20), true},
		"identical":          {NewRect(0, 0, 100, 100), true},
		"touching right":     {NewRect(50, 0, 50, 100), true},
		"overflow right":     {NewRect(90, 0, 20, 10), false},
		"overflow bottom":    {NewRect(0, 90, 10, 20), false},
		"starts before left": {NewRect(-1, 0, 10, 10), false},
		"outside":            {NewRect(200, 200, 10, 10), false},
		"zero size on edge":  {NewRect(100, 100, 0, 0), true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := outer.Contains(tc.inner); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.inner, got, tc.want)
			}
		})
	}
}

func TestRect_ContainsIsNotSymmetric(t *testing.T) {
	big := NewRect(0, 0, 100, 100)
	small := NewRect(10, 10, 10, 10)
	if !big.Contains(small) {
		t.Error("big should contain small")
	}
	if small.Contains(big) {
		t.Error("small should not contain big")
	}
}

func TestRect_DisjointFrom(t *testing.T) {
	a := NewRect(0, 0, 50, 50)

	tests := map[string]struct {
		b    Rect
		want bool
	}{
		"touching right edge":  {NewRect(50, 0, 50, 50), true},
		"touching bottom edge": {NewRect(0, 50, 50, 50), true},
		"touching left edge":   {NewRect(-50, 0, 50, 50), true},
		"touching top edge":    {NewRect(0, -50, 50, 50), true},
		"touching corner":      {NewRect(50, 50, 10, 10), true},
		"far away":             {NewRect(200, 200, 10, 10), true},
		"overlapping":          {NewRect(25, 25, 50, 50), false},
		"contained":            {NewRect(10, 10, 5, 5), false},
		"containing":           {NewRect(-10, -10, 100, 100), false},
		"one unit overlap":     {NewRect(49, 0, 10, 10), false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := a.DisjointFrom(tc.b); got != tc.want {
				t.Errorf("DisjointFrom(%v) = %v, want %v", tc.b, got, tc.want)
			}
			if got := tc.b.DisjointFrom(a); got != tc.want {
				t.Errorf("reverse DisjointFrom(%v) = %v, want %v", tc.b, got, tc.want)
			}
		})
	}
}

func TestRect_IntersectsComplementsDisjointFrom(t *testing.T) {
	var rects []Rect
	for x := 0.0; x <= 30; x += 10 {
		for y := 0.0; y <= 30; y += 10 {
			for _, w := range []float64{0, 5, 10, 20} {
				rects = append(rects, NewRect(x, y, w, 15))
			}
		}
	}

	for _, a := range rects {
		for _, b := range rects {
			if a.Intersects(b) == a.DisjointFrom(b) {
				t.Fatalf("Intersects and DisjointFrom agree for %v / %v", a, b)
			}
		}
	}
}

func TestRect_CopyIsIndependent(t *testing.T) {
	orig := NewRect(1, 2, 3, 4)
	cp := orig.Copy()
	if cp != orig {
		t.Fatalf("copy %v differs from original %v", cp, orig)
	}
	cp.Width = 99
	if orig.Width != 3 {
		t.Errorf("mutating copy changed original: %v", orig)
	}
}

func TestSize_Valid(t *testing.T) {
	tests := map[string]struct {
		size Size
		want bool
	}{
		"positive":     {NewSize(10, 20), true},
		"zero width":   {NewSize(0, 20), false},
		"negative":     {NewSize(10, -1), false},
		"fractional":   {NewSize(0.5, 0.5), true},
		"infinite":     {Size{Width: inf(), Height: 1}, false},
		"not a number": {Size{Width: nan(), Height: 1}, false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tc.size.Valid(); got != tc.want {
				t.Errorf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSize_At(t *testing.T) {
	r := NewSize(30, 40).At(5, 6)
	if r != NewRect(5, 6, 30, 40) {
		t.Errorf("At() = %v", r)
	}
	if r.Size() != NewSize(30, 40) {
		t.Errorf("Size() = %v", r.Size())
	}
}
