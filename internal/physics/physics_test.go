package physics

import (
	"math"
	"sort"
	"testing"
)

func TestDistanceSquared(t *testing.T) {
	if got := DistanceSquared(1, 1, 4, 5); got != 25 {
		t.Errorf("DistanceSquared = %v, want 25", got)
	}
}

func TestPointInCircleIsStrict(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   bool
	}{
		{"center", 10, 10, true},
		{"inside", 14, 10, true},
		{"on edge", 15, 10, false},
		{"outside", 16, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInCircle(tt.px, tt.py, 10, 10, 5); got != tt.want {
				t.Errorf("PointInCircle(%v,%v) = %v, want %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}

func TestCirclesOverlap(t *testing.T) {
	if !CirclesOverlap(0, 0, 10, 15, 0, 6) {
		t.Error("expected overlap at distance 15 with radii 10+6")
	}
	if CirclesOverlap(0, 0, 10, 16, 0, 6) {
		t.Error("touching circles should not overlap")
	}
}

func TestAdvance(t *testing.T) {
	x, y := Advance(1, 1, math.Pi/2, 5)
	if math.Abs(x-1) > 1e-9 || math.Abs(y-6) > 1e-9 {
		t.Errorf("Advance = (%v,%v), want (1,6)", x, y)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, size, want float64
	}{
		{5, 100, 5},
		{100, 100, 0},
		{103, 100, 3},
		{-1, 100, 99},
		{-250, 100, 50},
		{0, 100, 0},
		{7, 0, 7},
	}
	for _, tt := range tests {
		if got := Wrap(tt.v, tt.size); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Wrap(%v, %v) = %v, want %v", tt.v, tt.size, got, tt.want)
		}
	}
}

func TestWrapStaysInRange(t *testing.T) {
	const size = 800.0
	for _, v := range []float64{-1e-18, -1e-300, size, size + 1e-12, -size, 3 * size, math.Nextafter(size, 0)} {
		got := Wrap(v, size)
		if got < 0 || got >= size {
			t.Errorf("Wrap(%v) = %v, outside [0, %v)", v, got, size)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, -3, 3); got != 3 {
		t.Errorf("Clamp high = %v", got)
	}
	if got := Clamp(-5, -3, 3); got != -3 {
		t.Errorf("Clamp low = %v", got)
	}
	if got := Clamp(1, -3, 3); got != 1 {
		t.Errorf("Clamp mid = %v", got)
	}
}

func collect(g *SpatialGrid, x, y float64) []int {
	var out []int
	g.QueryAround(x, y, func(i int) bool {
		out = append(out, i)
		return false
	})
	sort.Ints(out)
	return out
}

func TestSpatialGridNeighborhood(t *testing.T) {
	g := NewSpatialGrid(500, 500, 50)
	g.Insert(10, 10, 0)   // cell (0,0)
	g.Insert(60, 60, 1)   // cell (1,1)
	g.Insert(260, 260, 2) // cell (5,5)
	g.Insert(499, 10, 3)  // cell (9,0)

	if got := collect(g, 20, 20); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("query near origin = %v, want [0 1]", got)
	}
	if got := collect(g, 255, 255); len(got) != 1 || got[0] != 2 {
		t.Errorf("query at center = %v, want [2]", got)
	}
	// The grid does not wrap: the far right column is not a neighbor of the left.
	if got := collect(g, 5, 5); len(got) != 2 {
		t.Errorf("query at corner = %v, want two items without wrap", got)
	}
	if g.Len() != 4 {
		t.Errorf("Len = %d, want 4", g.Len())
	}
}

func TestSpatialGridFindsEverythingWithinCellSize(t *testing.T) {
	const cell = 50.0
	g := NewSpatialGrid(800, 600, cell)
	points := [][2]float64{{0, 0}, {799, 599}, {400, 300}, {449, 300}, {351, 349}, {800, 600}, {-3, 20}}
	for i, p := range points {
		g.Insert(p[0], p[1], i)
	}

	for _, q := range points {
		found := map[int]bool{}
		g.QueryAround(q[0], q[1], func(i int) bool {
			found[i] = true
			return false
		})
		for i, p := range points {
			if DistanceSquared(q[0], q[1], p[0], p[1]) < cell*cell && !found[i] {
				t.Errorf("query at %v missed point %v within cell size", q, p)
			}
		}
	}
}

func TestSpatialGridClearAndEarlyStop(t *testing.T) {
	g := NewSpatialGrid(100, 100, 50)
	for i := 0; i < 5; i++ {
		g.Insert(10, 10, i)
	}

	calls := 0
	g.QueryAround(10, 10, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Errorf("early stop visited %d items, want 1", calls)
	}

	g.Clear()
	if got := collect(g, 10, 10); len(got) != 0 {
		t.Errorf("after Clear = %v, want empty", got)
	}
	if g.Len() != 0 {
		t.Errorf("Len after Clear = %d", g.Len())
	}
}
