package world

import (
	"container/heap"
	"errors"
)

// Grid is a walkability grid addressed by (col, row).
type Grid interface {
	Size() (width, height int)
	Walkable(col, row int) bool
}

// PathNode is a node in the A* search.
type PathNode struct {
	Col, Row int
	G        int // Cost from start
	H        int // Manhattan distance to goal
	F        int // G + H
	Parent   *PathNode
	Index    int // Index in heap
}

// PathHeap implements a priority queue for A* pathfinding.
type PathHeap []*PathNode

func (h PathHeap) Len() int           { return len(h) }
func (h PathHeap) Less(i, j int) bool { return h[i].F < h[j].F }
func (h PathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Index = i
	h[j].Index = j
}

func (h *PathHeap) Push(x interface{}) {
	n := len(*h)
	node := x.(*PathNode)
	node.Index = n
	*h = append(*h, node)
}

func (h *PathHeap) Pop() interface{} {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.Index = -1
	*h = old[0 : n-1]
	return node
}

// Cardinal moves only: the player cannot slip between diagonal walls.
var directions = [4][2]int{
	{0, 1},  // +row
	{-1, 0}, // -col
	{0, -1}, // -row
	{1, 0},  // +col
}

// PathFinder finds shortest cell paths through a maze grid.
type PathFinder struct {
	grid   Grid
	width  int
	height int
}

// NewPathFinder creates a pathfinder over grid.
func NewPathFinder(grid Grid) *PathFinder {
	if grid == nil {
		return nil
	}
	w, h := grid.Size()
	return &PathFinder{grid: grid, width: w, height: h}
}

// FindPath returns the cells from start to goal inclusive, or nil if the goal
// cannot be reached.
func (pf *PathFinder) FindPath(startCol, startRow, goalCol, goalRow int) [][2]int {
	if pf == nil {
		return nil
	}
	if !pf.IsWalkable(startCol, startRow) || !pf.IsWalkable(goalCol, goalRow) {
		return nil
	}

	openSet := &PathHeap{}
	heap.Init(openSet)

	closed := make([]bool, pf.width*pf.height)
	nodes := make(map[int]*PathNode)

	start := &PathNode{
		Col: startCol,
		Row: startRow,
		H:   manhattan(startCol, startRow, goalCol, goalRow),
	}
	start.F = start.H
	heap.Push(openSet, start)
	nodes[pf.key(startCol, startRow)] = start

	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*PathNode)
		if current.Col == goalCol && current.Row == goalRow {
			return reconstructPath(current)
		}
		closed[pf.key(current.Col, current.Row)] = true

		for _, dir := range directions {
			nc, nr := current.Col+dir[0], current.Row+dir[1]
			if !pf.IsWalkable(nc, nr) || closed[pf.key(nc, nr)] {
				continue
			}

			g := current.G + 1
			neighbor, exists := nodes[pf.key(nc, nr)]
			if !exists {
				neighbor = &PathNode{
					Col:    nc,
					Row:    nr,
					G:      g,
					H:      manhattan(nc, nr, goalCol, goalRow),
					Parent: current,
				}
				neighbor.F = neighbor.G + neighbor.H
				nodes[pf.key(nc, nr)] = neighbor
				heap.Push(openSet, neighbor)
			} else if g < neighbor.G {
				neighbor.G = g
				neighbor.F = neighbor.G + neighbor.H
				neighbor.Parent = current
				heap.Fix(openSet, neighbor.Index)
			}
		}
	}

	return nil
}

// IsWalkable reports whether (col, row) is in bounds and open.
func (pf *PathFinder) IsWalkable(col, row int) bool {
	if pf == nil {
		return false
	}
	if col < 0 || col >= pf.width || row < 0 || row >= pf.height {
		return false
	}
	return pf.grid.Walkable(col, row)
}

func (pf *PathFinder) key(col, row int) int {
	return row*pf.width + col
}

func manhattan(c1, r1, c2, r2 int) int {
	return abs(c2-c1) + abs(r2-r1)
}

func reconstructPath(node *PathNode) [][2]int {
	var path [][2]int
	for node != nil {
		path = append(path, [2]int{node.Col, node.Row})
		node = node.Parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Playability errors.
var (
	ErrNoStart     = errors.New("map has no start cell")
	ErrNoGoal      = errors.New("map has no goal cell")
	ErrUnreachable = errors.New("goal not reachable from start")
)

// Playable checks that the player can spawn and reach the goal.
func (m *Map) Playable() error {
	switch {
	case !m.HasStart:
		return ErrNoStart
	case !m.HasGoal:
		return ErrNoGoal
	case m.Solve() == nil:
		return ErrUnreachable
	}
	return nil
}

// Solve returns the shortest cell path from the start cell to the goal cell,
// or nil if the map lacks either or the goal is walled off.
func (m *Map) Solve() [][2]int {
	if !m.HasStart || !m.HasGoal {
		return nil
	}
	sc, sr := m.CellAt(m.Start)
	gc, gr := m.CellAt(m.Goal)
	return NewPathFinder(m).FindPath(sc, sr, gc, gr)
}
