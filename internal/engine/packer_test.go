package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/piwi3910/BinPacker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPacker(t *testing.T, w, h float64) *Packer {
	t.Helper()
	p, err := NewPacker(w, h)
	require.NoError(t, err)
	return p
}

func mustInsert(t *testing.T, p *Packer, w, h float64) InsertResult {
	t.Helper()
	res, err := p.Insert(w, h)
	require.NoError(t, err)
	return res
}

// assertCoverage checks on a unit grid that every cell of the container is
// covered by exactly one positioned rectangle or by free space, never both.
func assertCoverage(t *testing.T, p *Packer) {
	t.Helper()
	container := model.NewRect(0, 0, p.Width(), p.Height())
	for _, f := range p.FreeRects() {
		require.True(t, container.Contains(f), "free rect %v outside container", f)
	}

	for y := 0.0; y < p.Height(); y++ {
		for x := 0.0; x < p.Width(); x++ {
			cell := model.NewRect(x, y, 1, 1)

			covered := 0
			for _, r := range p.Positioned() {
				if r.Contains(cell) {
					covered++
				}
			}
			inFree := false
			for _, f := range p.FreeRects() {
				if f.Contains(cell) {
					inFree = true
					break
				}
			}

			require.LessOrEqual(t, covered, 1, "cell (%v,%v) covered by overlapping placements", x, y)
			require.True(t, (covered == 1) != inFree,
				"cell (%v,%v): covered=%d inFree=%v", x, y, covered, inFree)
		}
	}
}

func assertNoRedundantFreeRects(t *testing.T, p *Packer) {
	t.Helper()
	free := p.FreeRects()
	for i := range free {
		for j := range free {
			if i != j {
				require.False(t, free[i].Contains(free[j]),
					"free rect %v contains %v", free[i], free[j])
			}
		}
	}
}

func TestNewPacker_InitialState(t *testing.T) {
	p := newTestPacker(t, 100, 50)

	assert.Equal(t, []model.Rect{model.NewRect(0, 0, 100, 50)}, p.FreeRects())
	assert.Empty(t, p.Positioned())
	assert.Empty(t, p.Unpositioned())
	assert.Equal(t, model.HeuristicShortSideFit, p.Heuristic())
	assert.Equal(t, 0.0, p.Occupancy())
}

func TestNewPacker_InvalidDimensions(t *testing.T) {
	cases := map[string][2]float64{
		"zero width":   {0, 10},
		"zero height":  {10, 0},
		"negative":     {-5, 10},
		"infinite":     {math.Inf(1), 10},
		"not a number": {math.NaN(), 10},
		"both zero":    {0, 0},
	}
	for name, dims := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := NewPacker(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimensions)
			assert.Nil(t, p)
		})
	}
}

func TestNewPackerWithHeuristic_Unknown(t *testing.T) {
	_, err := NewPackerWithHeuristic(10, 10, model.Heuristic("skyline"))
	assert.Error(t, err)
}

func TestInsert_InvalidDimensionsLeavesStateUntouched(t *testing.T) {
	p := newTestPacker(t, 100, 100)

	for _, dims := range [][2]float64{{0, 10}, {10, -1}, {math.NaN(), 5}} {
		res, err := p.Insert(dims[0], dims[1])
		require.ErrorIs(t, err, ErrInvalidDimensions)
		assert.False(t, res.Positioned)
	}

	assert.Empty(t, p.Positioned())
	assert.Empty(t, p.Unpositioned())
	assert.Equal(t, []model.Rect{model.NewRect(0, 0, 100, 100)}, p.FreeRects())
}

func TestInsert_RejectsSidesLostToRounding(t *testing.T) {
	p := newTestPacker(t, 10, 10)

	for _, dims := range [][2]float64{{5e-324, 1}, {1, 1e-20}} {
		res, err := p.Insert(dims[0], dims[1])
		require.ErrorIs(t, err, ErrInvalidDimensions, "size %v", dims)
		assert.False(t, res.Positioned)
		assert.False(t, p.CanFit(dims[0], dims[1]))
	}
	assert.Empty(t, p.Positioned())
	assert.Empty(t, p.Unpositioned())
	assert.Equal(t, []model.Rect{model.NewRect(0, 0, 10, 10)}, p.FreeRects())

	res := mustInsert(t, p, 1e-3, 1)
	r, ok := res.Rect()
	require.True(t, ok)
	assert.Greater(t, r.Right(), r.X)
}

func TestInsert_QuarterOfSquare(t *testing.T) {
	p := newTestPacker(t, 100, 100)

	res := mustInsert(t, p, 50, 50)
	require.True(t, res.Positioned)
	r, ok := res.Rect()
	require.True(t, ok)
	assert.Equal(t, model.NewRect(0, 0, 50, 50), r)

	// Bottom strip then right strip, neither containing the other
	free := p.FreeRects()
	require.Len(t, free, 2)
	assert.Equal(t, model.NewRect(0, 50, 100, 50), free[0])
	assert.Equal(t, model.NewRect(50, 0, 50, 100), free[1])
	assert.False(t, free[0].Contains(free[1]))
	assert.False(t, free[1].Contains(free[0]))

	assert.Equal(t, []model.Rect{model.NewRect(0, 0, 50, 50)}, p.Positioned())
	assertCoverage(t, p)
}

func TestInsert_SecondRectangleDoesNotFit(t *testing.T) {
	p := newTestPacker(t, 100, 100)

	first := mustInsert(t, p, 60, 60)
	require.True(t, first.Positioned)
	r, _ := first.Rect()
	assert.Equal(t, 0.0, r.X)
	assert.Equal(t, 0.0, r.Y)

	freeBefore := p.FreeRects()

	second := mustInsert(t, p, 60, 60)
	assert.False(t, second.Positioned)
	assert.Equal(t, model.NewSize(60, 60), second.Size)
	_, ok := second.Rect()
	assert.False(t, ok, "unplaced result must not expose a position")

	assert.Equal(t, []model.Size{model.NewSize(60, 60)}, p.Unpositioned())
	assert.Len(t, p.Positioned(), 1)
	assert.Equal(t, freeBefore, p.FreeRects(), "overflow must not touch the free list")
}

func TestInsert_ExactFillEmptiesFreeList(t *testing.T) {
	p := newTestPacker(t, 10, 10)

	res := mustInsert(t, p, 10, 10)
	require.True(t, res.Positioned)
	r, _ := res.Rect()
	assert.Equal(t, model.NewRect(0, 0, 10, 10), r)
	assert.Empty(t, p.FreeRects())
	assert.InDelta(t, 1.0, p.Occupancy(), 1e-12)

	next := mustInsert(t, p, 1, 1)
	assert.False(t, next.Positioned)
}

func TestInsert_OverflowIsNotAnError(t *testing.T) {
	p := newTestPacker(t, 10, 10)

	res, err := p.Insert(11, 5)
	require.NoError(t, err)
	assert.False(t, res.Positioned)
	assert.Equal(t, []model.Size{model.NewSize(11, 5)}, p.Unpositioned())
}

func TestInsert_FillsRowOfTiles(t *testing.T) {
	p := newTestPacker(t, 100, 20)

	for i := 0; i < 5; i++ {
		res := mustInsert(t, p, 20, 20)
		require.True(t, res.Positioned, "tile %d should fit", i)
		r, _ := res.Rect()
		assert.Equal(t, float64(i*20), r.X)
		assert.Equal(t, 0.0, r.Y)
	}
	assert.Empty(t, p.FreeRects())
	assert.False(t, mustInsert(t, p, 20, 20).Positioned)
}

func TestSplitFreeRect_Disjoint(t *testing.T) {
	f := model.NewRect(0, 0, 50, 50)
	r := model.NewRect(50, 0, 10, 10) // touching the right edge only

	pieces, split := splitFreeRect(f, r)
	assert.False(t, split)
	assert.Nil(t, pieces)
}

func TestSplitFreeRect_HorizontalBisect(t *testing.T) {
	f := model.NewRect(0, 0, 100, 100)
	r := model.NewRect(0, 40, 100, 20)

	pieces, split := splitFreeRect(f, r)
	require.True(t, split)
	require.Len(t, pieces, 2)
	assert.Equal(t, model.NewRect(0, 0, 100, 40), pieces[0])
	assert.Equal(t, model.NewRect(0, 60, 100, 40), pieces[1])
}

func TestSplitFreeRect_VerticalBisect(t *testing.T) {
	f := model.NewRect(0, 0, 100, 100)
	r := model.NewRect(40, 0, 20, 100)

	pieces, split := splitFreeRect(f, r)
	require.True(t, split)
	require.Len(t, pieces, 2)
	assert.Equal(t, model.NewRect(0, 0, 40, 100), pieces[0])
	assert.Equal(t, model.NewRect(60, 0, 40, 100), pieces[1])
}

func TestSplitFreeRect_CentreProducesFourOverlappingStrips(t *testing.T) {
	f := model.NewRect(0, 0, 100, 100)
	r := model.NewRect(30, 30, 20, 20)

	pieces, split := splitFreeRect(f, r)
	require.True(t, split)
	assert.Equal(t, []model.Rect{
		model.NewRect(0, 0, 100, 30),  // above
		model.NewRect(0, 50, 100, 50), // below
		model.NewRect(0, 0, 30, 100),  // left
		model.NewRect(50, 0, 50, 100), // right
	}, pieces)
	assert.True(t, pieces[0].Intersects(pieces[2]), "strips are allowed to overlap")
}

func TestSplitFreeRect_ExactCoverProducesNothing(t *testing.T) {
	f := model.NewRect(10, 10, 20, 20)

	pieces, split := splitFreeRect(f, f.Copy())
	assert.True(t, split)
	assert.Empty(t, pieces)
}

func TestSplitFreeRect_PartialOverlap(t *testing.T) {
	// r hangs over the bottom-right corner of f
	f := model.NewRect(0, 0, 50, 50)
	r := model.NewRect(40, 40, 30, 30)

	pieces, split := splitFreeRect(f, r)
	require.True(t, split)
	assert.Equal(t, []model.Rect{
		model.NewRect(0, 0, 50, 40), // above
		model.NewRect(0, 0, 40, 50), // left
	}, pieces)
}

func TestPruneFreeRects(t *testing.T) {
	tests := map[string]struct {
		in   []model.Rect
		want []model.Rect
	}{
		"empty": {
			in:   nil,
			want: nil,
		},
		"later contains earlier": {
			in:   []model.Rect{model.NewRect(10, 10, 5, 5), model.NewRect(0, 0, 50, 50)},
			want: []model.Rect{model.NewRect(0, 0, 50, 50)},
		},
		"earlier contains later": {
			in:   []model.Rect{model.NewRect(0, 0, 50, 50), model.NewRect(10, 10, 5, 5)},
			want: []model.Rect{model.NewRect(0, 0, 50, 50)},
		},
		"equal rectangles keep one": {
			in:   []model.Rect{model.NewRect(0, 0, 5, 5), model.NewRect(0, 0, 5, 5), model.NewRect(0, 0, 5, 5)},
			want: []model.Rect{model.NewRect(0, 0, 5, 5)},
		},
		"overlapping but not contained": {
			in:   []model.Rect{model.NewRect(0, 0, 100, 30), model.NewRect(0, 0, 30, 100)},
			want: []model.Rect{model.NewRect(0, 0, 100, 30), model.NewRect(0, 0, 30, 100)},
		},
		"survivor order preserved": {
			in: []model.Rect{
				model.NewRect(0, 0, 10, 10),
				model.NewRect(100, 0, 10, 10),
				model.NewRect(2, 2, 3, 3),
				model.NewRect(200, 0, 10, 10),
				model.NewRect(101, 1, 2, 2),
			},
			want: []model.Rect{
				model.NewRect(0, 0, 10, 10),
				model.NewRect(100, 0, 10, 10),
				model.NewRect(200, 0, 10, 10),
			},
		},
		"chain of containment": {
			in: []model.Rect{
				model.NewRect(2, 2, 1, 1),
				model.NewRect(1, 1, 5, 5),
				model.NewRect(0, 0, 10, 10),
			},
			want: []model.Rect{model.NewRect(0, 0, 10, 10)},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := pruneFreeRects(append([]model.Rect(nil), tc.in...))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFindPosition_BestShortSideFit(t *testing.T) {
	p := newTestPacker(t, 400, 200)
	p.freeRects = []model.Rect{
		model.NewRect(0, 0, 100, 30),   // leftover 70x0
		model.NewRect(200, 0, 40, 40),  // leftover 10x10
		model.NewRect(300, 0, 35, 100), // leftover 5x70
	}

	r, ok := p.findPosition(30, 30)
	require.True(t, ok)
	assert.Equal(t, model.NewRect(0, 0, 30, 30), r)
}

func TestFindPosition_LongSideBreaksTie(t *testing.T) {
	p := newTestPacker(t, 400, 200)
	p.freeRects = []model.Rect{
		model.NewRect(0, 0, 40, 80),   // short 10, long 50
		model.NewRect(100, 0, 40, 50), // short 10, long 20
	}

	r, ok := p.findPosition(30, 30)
	require.True(t, ok)
	assert.Equal(t, model.NewRect(100, 0, 30, 30), r)
}

func TestFindPosition_FirstCandidateWinsFullTie(t *testing.T) {
	p := newTestPacker(t, 400, 200)
	p.freeRects = []model.Rect{
		model.NewRect(0, 0, 50, 40),
		model.NewRect(100, 0, 40, 50),
	}

	r, ok := p.findPosition(30, 30)
	require.True(t, ok)
	assert.Equal(t, model.NewRect(0, 0, 30, 30), r)
}

func TestFindPosition_NoCandidate(t *testing.T) {
	p := newTestPacker(t, 400, 200)
	p.freeRects = []model.Rect{
		model.NewRect(0, 0, 29, 100),
		model.NewRect(100, 0, 100, 29),
	}

	_, ok := p.findPosition(30, 30)
	assert.False(t, ok)
	assert.False(t, p.CanFit(30, 30))
	assert.True(t, p.CanFit(29, 29))
}

func TestFindPosition_IsDeterministic(t *testing.T) {
	p := newTestPacker(t, 200, 200)
	mustInsert(t, p, 70, 30)
	mustInsert(t, p, 20, 90)
	free := p.FreeRects()

	first, ok1 := p.findPosition(25, 25)
	second, ok2 := p.findPosition(25, 25)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
	assert.Equal(t, free, p.FreeRects(), "search must not mutate the free list")
}

func TestFindPosition_BestAreaFit(t *testing.T) {
	p, err := NewPackerWithHeuristic(400, 200, model.HeuristicAreaFit)
	require.NoError(t, err)
	p.freeRects = []model.Rect{
		model.NewRect(0, 0, 100, 30),  // area leftover 2100
		model.NewRect(200, 0, 40, 40), // area leftover 700
	}

	r, ok := p.findPosition(30, 30)
	require.True(t, ok)
	assert.Equal(t, model.NewRect(200, 0, 30, 30), r)
}

func TestInsert_RandomSequenceKeepsInvariants(t *testing.T) {
	for _, h := range model.Heuristics {
		t.Run(string(h), func(t *testing.T) {
			p, err := NewPackerWithHeuristic(40, 30, h)
			require.NoError(t, err)
			rng := rand.New(rand.NewSource(7))

			placed := 0
			for i := 0; i < 60; i++ {
				w := float64(rng.Intn(15) + 1)
				hgt := float64(rng.Intn(15) + 1)
				res := mustInsert(t, p, w, hgt)
				if res.Positioned {
					placed++
					r, _ := res.Rect()
					assert.Equal(t, w, r.Width)
					assert.Equal(t, hgt, r.Height)
				}
				assertCoverage(t, p)
				assertNoRedundantFreeRects(t, p)
			}

			assert.Equal(t, placed, len(p.Positioned()))
			assert.Equal(t, 60-placed, len(p.Unpositioned()))
			assert.Greater(t, placed, 0)
		})
	}
}

func TestInsert_PlacementsNeverOverlap(t *testing.T) {
	p := newTestPacker(t, 800, 800)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		mustInsert(t, p, float64(rng.Intn(200)+50), float64(rng.Intn(200)+50))
	}

	positioned := p.Positioned()
	container := model.NewRect(0, 0, 800, 800)
	for i, a := range positioned {
		require.True(t, container.Contains(a))
		for _, b := range positioned[i+1:] {
			require.True(t, a.DisjointFrom(b), "%v overlaps %v", a, b)
		}
	}
	assertNoRedundantFreeRects(t, p)
}

func TestAccessorsReturnCopies(t *testing.T) {
	p := newTestPacker(t, 100, 100)
	mustInsert(t, p, 50, 50)
	mustInsert(t, p, 200, 200)

	positioned := p.Positioned()
	positioned[0].X = 999
	unpositioned := p.Unpositioned()
	unpositioned[0].Width = 1
	free := p.FreeRects()
	free[0].Width = 0

	assert.Equal(t, 0.0, p.Positioned()[0].X)
	assert.Equal(t, 200.0, p.Unpositioned()[0].Width)
	assert.NotEqual(t, 0.0, p.FreeRects()[0].Width)
}

func TestUsedAreaAndOccupancy(t *testing.T) {
	p := newTestPacker(t, 100, 100)
	mustInsert(t, p, 50, 50)
	mustInsert(t, p, 50, 50)

	assert.Equal(t, 5000.0, p.UsedArea())
	assert.InDelta(t, 0.5, p.Occupancy(), 1e-12)
}
