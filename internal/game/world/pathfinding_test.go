package world

import (
	"testing"
)

// mockGrid is an open grid with the listed cells blocked.
type mockGrid struct {
	width, height int
	blocked       map[[2]int]bool
}

func newMockGrid(width, height int, blocked [][2]int) *mockGrid {
	g := &mockGrid{width: width, height: height, blocked: make(map[[2]int]bool)}
	for _, b := range blocked {
		g.blocked[b] = true
	}
	return g
}

func (g *mockGrid) Size() (int, int) { return g.width, g.height }

func (g *mockGrid) Walkable(col, row int) bool { return !g.blocked[[2]int{col, row}] }

func TestPathFinder_FindPath_Simple(t *testing.T) {
	pf := NewPathFinder(newMockGrid(5, 5, nil))

	path := pf.FindPath(0, 0, 4, 4)
	if path == nil {
		t.Fatal("expected path, got nil")
	}
	if path[0] != [2]int{0, 0} {
		t.Errorf("path should start at (0,0), got %v", path[0])
	}
	if last := path[len(path)-1]; last != [2]int{4, 4} {
		t.Errorf("path should end at (4,4), got %v", last)
	}
	// Cardinal moves: 8 steps plus the start cell
	if len(path) != 9 {
		t.Errorf("path length = %d, want 9", len(path))
	}
}

func TestPathFinder_FindPath_CardinalSteps(t *testing.T) {
	pf := NewPathFinder(newMockGrid(4, 4, nil))
	path := pf.FindPath(0, 0, 3, 2)
	for i := 1; i < len(path); i++ {
		d := abs(path[i][0]-path[i-1][0]) + abs(path[i][1]-path[i-1][1])
		if d != 1 {
			t.Fatalf("step %d moves %d cells: %v -> %v", i, d, path[i-1], path[i])
		}
	}
}

func TestPathFinder_FindPath_WithObstacle(t *testing.T) {
	blocked := [][2]int{{2, 0}, {2, 1}, {2, 2}, {2, 3}}
	pf := NewPathFinder(newMockGrid(5, 5, blocked))

	path := pf.FindPath(0, 0, 4, 0)
	if path == nil {
		t.Fatal("expected path around wall")
	}
	for _, p := range path {
		if p[0] == 2 && p[1] < 4 {
			t.Errorf("path crosses wall at %v", p)
		}
	}
}

func TestPathFinder_NoDiagonalSqueeze(t *testing.T) {
	// Two diagonal walls seal (0,0) from (1,1)
	pf := NewPathFinder(newMockGrid(2, 2, [][2]int{{1, 0}, {0, 1}}))
	if path := pf.FindPath(0, 0, 1, 1); path != nil {
		t.Errorf("expected no path, got %v", path)
	}
}

func TestPathFinder_NoPath(t *testing.T) {
	blocked := [][2]int{{2, 0}, {2, 1}, {2, 2}, {2, 3}, {2, 4}}
	pf := NewPathFinder(newMockGrid(5, 5, blocked))
	if path := pf.FindPath(0, 0, 4, 4); path != nil {
		t.Errorf("expected nil, got %v", path)
	}
}

func TestPathFinder_SameStartGoal(t *testing.T) {
	pf := NewPathFinder(newMockGrid(3, 3, nil))
	path := pf.FindPath(1, 1, 1, 1)
	if len(path) != 1 || path[0] != [2]int{1, 1} {
		t.Errorf("path = %v, want [[1 1]]", path)
	}
}

func TestPathFinder_OutOfBounds(t *testing.T) {
	pf := NewPathFinder(newMockGrid(3, 3, nil))
	if pf.FindPath(-1, 0, 2, 2) != nil {
		t.Error("expected nil for out-of-bounds start")
	}
	if pf.FindPath(0, 0, 3, 3) != nil {
		t.Error("expected nil for out-of-bounds goal")
	}
}

func TestPathFinder_BlockedGoal(t *testing.T) {
	pf := NewPathFinder(newMockGrid(3, 3, [][2]int{{2, 2}}))
	if pf.FindPath(0, 0, 2, 2) != nil {
		t.Error("expected nil for blocked goal")
	}
}

func TestPathFinder_Nil(t *testing.T) {
	var pf *PathFinder
	if NewPathFinder(nil) != nil {
		t.Error("NewPathFinder(nil) should be nil")
	}
	if pf.FindPath(0, 0, 1, 1) != nil || pf.IsWalkable(0, 0) {
		t.Error("nil pathfinder should find nothing")
	}
}

func TestMapSolve(t *testing.T) {
	m := buildMap(t, "5 3\nWWWWW\nS.W.G\n.....\n")
	path := m.Solve()
	if path == nil {
		t.Fatal("expected a path")
	}
	if path[0] != [2]int{0, 1} || path[len(path)-1] != [2]int{4, 1} {
		t.Errorf("path endpoints = %v .. %v", path[0], path[len(path)-1])
	}

	sealed := buildMap(t, "3 1\nSWG\n")
	if sealed.Solve() != nil {
		t.Error("expected nil for sealed goal")
	}
}
