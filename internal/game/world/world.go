// Package world holds the maze map: its cells, the shared meshes they use,
// and move validation against the cell grid.
package world

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/mazewalk/internal/engine/model"
	"github.com/Faultbox/mazewalk/internal/game/entity"
	"github.com/Faultbox/mazewalk/internal/logger"
	"github.com/Faultbox/mazewalk/pkg/formats"
	"github.com/Faultbox/mazewalk/pkg/math"
)

// World layout. The grid is centered on X and extends from z = -Height to z = 0,
// so file row 0 is the farthest row from the player's default facing (-Z).
const (
	CellHeight  float32 = 0.5  // Y of every cell anchor
	StartHeight float32 = 0.65 // Y of the player start (eye height)
	FloorY      float32 = -0.5 // Y of the floor entity's center
)

// SpinRate is the goal's rotation speed in radians per second.
const SpinRate = gomath.Pi

// ErrMissingMesh is returned when a mesh index does not exist in the store.
var ErrMissingMesh = errors.New("mesh index not in store")

// Outcome classifies a proposed move.
type Outcome uint8

const (
	Invalid Outcome = iota // Out of bounds or into a wall
	Valid                  // Open floor
	Won                    // Goal cell
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	case Won:
		return "won"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// MeshPaths names the four shared mesh files. They are loaded in field order.
type MeshPaths struct {
	Wall   string
	Key    string // Reserved for key tiles, loaded but unused
	Goal   string
	Ground string
}

// MeshIndices holds the store index of each shared mesh.
type MeshIndices struct {
	Wall   int
	Key    int
	Goal   int
	Ground int
}

// Frame carries per-frame values that draw calls need.
type Frame struct {
	DeltaTime float32 // Seconds since the previous frame
	Width     int     // Viewport width in pixels
	Height    int     // Viewport height in pixels
}

// Drawer issues the draw call for one entity using its shared mesh.
type Drawer interface {
	DrawEntity(e *entity.Entity, m model.Model)
}

// Map is a loaded maze. It owns the cell entities and the model store.
type Map struct {
	Width  int
	Height int

	Start    math.Vec3
	Goal     math.Vec3
	HasStart bool
	HasGoal  bool

	Meshes MeshIndices

	cells []entity.Entity // Row-major, Width*Height
	floor entity.Entity
	store *model.Store
}

// Load parses a map file and builds it, loading the shared meshes into a new store.
func Load(path string, meshes MeshPaths) (*Map, error) {
	maze, err := formats.ParseMazeFile(path)
	if err != nil {
		return nil, &MapLoadError{Path: path, Err: err}
	}

	m, err := Build(maze, meshes)
	if err != nil {
		return nil, &MapLoadError{Path: path, Err: err}
	}

	logger.Info("map loaded",
		zap.String("path", path),
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Int("walls", m.Count(entity.KindWall)),
		zap.Int("models", m.store.Len()),
		zap.Int("vertices", m.store.TotalVertices()))

	return m, nil
}

// Build loads the shared meshes in fixed order (wall, key, goal, ground) and
// instantiates the maze cells.
func Build(maze *formats.Maze, meshes MeshPaths) (*Map, error) {
	store := model.NewStore(model.DefaultStride)

	var idx MeshIndices
	for _, m := range []struct {
		path string
		dst  *int
	}{
		{meshes.Wall, &idx.Wall},
		{meshes.Key, &idx.Key},
		{meshes.Goal, &idx.Goal},
		{meshes.Ground, &idx.Ground},
	} {
		i, err := store.Load(m.path)
		if err != nil {
			return nil, err
		}
		*m.dst = i
	}

	return BuildWithStore(maze, store, idx)
}

// BuildWithStore instantiates the maze cells over an already populated store.
// The key mesh may be entity.NoMesh; the others must exist in the store.
func BuildWithStore(maze *formats.Maze, store *model.Store, meshes MeshIndices) (*Map, error) {
	for _, check := range []struct {
		name string
		idx  int
	}{
		{"wall", meshes.Wall},
		{"goal", meshes.Goal},
		{"ground", meshes.Ground},
	} {
		if _, ok := store.Model(check.idx); !ok {
			return nil, fmt.Errorf("%w: %s mesh %d", ErrMissingMesh, check.name, check.idx)
		}
	}

	w, h := maze.Width, maze.Height
	m := &Map{
		Width:  w,
		Height: h,
		Meshes: meshes,
		cells:  make([]entity.Entity, w*h),
		store:  store,
	}

	floor := entity.Identity()
	floor.Translation = math.Vec3{X: 0, Y: FloorY, Z: -float32(h) / 2}
	floor.Scale = math.Vec3{X: float32(w), Y: 1, Z: float32(h)}
	m.floor = entity.NewGround(floor, meshes.Ground)

	for i := range m.cells {
		m.cells[i] = entity.None()
	}

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			idx := row*w + col
			anchor := m.Anchor(col, row)

			switch maze.Cells[idx] {
			case formats.CellWall:
				m.cells[idx] = entity.NewWall(entity.At(anchor), meshes.Wall)
			case formats.CellStart:
				if m.HasStart {
					logger.Warn("multiple start cells, using the last one",
						zap.Int("col", col), zap.Int("row", row))
				}
				m.Start = anchor
				m.Start.Y = StartHeight
				m.HasStart = true
			case formats.CellGoal:
				if m.HasGoal {
					logger.Warn("multiple goal cells, recording the last one",
						zap.Int("col", col), zap.Int("row", row))
				}
				m.cells[idx] = entity.NewGoal(entity.At(anchor), meshes.Goal)
				m.Goal = anchor
				m.HasGoal = true
			}
		}
	}

	if !m.HasStart {
		logger.Warn("map has no start cell")
	}
	if !m.HasGoal {
		logger.Warn("map has no goal cell")
	}

	return m, nil
}

// Anchor returns the world position of a cell's center.
func (m *Map) Anchor(col, row int) math.Vec3 {
	return math.Vec3{
		X: float32(col) - float32(m.Width)/2 + 0.5,
		Y: CellHeight,
		Z: float32(row) + 0.5 - float32(m.Height),
	}
}

// CellAt maps a world position to cell coordinates. The result may be out of bounds.
func (m *Map) CellAt(pos math.Vec3) (col, row int) {
	col = int(gomath.Floor(float64(pos.X + float32(m.Width)/2)))
	row = int(gomath.Floor(float64(float32(m.Height) + pos.Z)))
	return col, row
}

// InBounds reports whether (col, row) is a cell of the map.
func (m *Map) InBounds(col, row int) bool {
	return col >= 0 && col < m.Width && row >= 0 && row < m.Height
}

// Validate classifies a move to pos. It has no side effects.
func (m *Map) Validate(pos math.Vec3) Outcome {
	col, row := m.CellAt(pos)
	if !m.InBounds(col, row) {
		return Invalid
	}

	switch m.cells[row*m.Width+col].Kind() {
	case entity.KindWall:
		return Invalid
	case entity.KindGoal:
		return Won
	default:
		return Valid
	}
}

// Entity returns the entity at (col, row).
func (m *Map) Entity(col, row int) (*entity.Entity, bool) {
	if !m.InBounds(col, row) {
		return nil, false
	}
	return &m.cells[row*m.Width+col], true
}

// Floor returns the floor entity.
func (m *Map) Floor() *entity.Entity {
	return &m.floor
}

// Store returns the model store holding the shared meshes.
func (m *Map) Store() *model.Store {
	return m.store
}

// Count returns the number of cells of the given kind.
func (m *Map) Count(kind entity.Kind) int {
	n := 0
	for i := range m.cells {
		if m.cells[i].Kind() == kind {
			n++
		}
	}
	return n
}

// Walkable reports whether (col, row) is an in-bounds cell without a wall.
func (m *Map) Walkable(col, row int) bool {
	if !m.InBounds(col, row) {
		return false
	}
	return m.cells[row*m.Width+col].Kind() != entity.KindWall
}

// Size returns the grid dimensions.
func (m *Map) Size() (width, height int) {
	return m.Width, m.Height
}

// Draw draws the floor, then every wall and goal. Goals spin by
// -frame.DeltaTime*SpinRate before drawing; nothing else changes.
func (m *Map) Draw(frame Frame, d Drawer) {
	m.drawEntity(&m.floor, d)

	spin := -frame.DeltaTime * float32(SpinRate)
	for i := range m.cells {
		e := &m.cells[i]
		switch e.Kind() {
		case entity.KindNone, entity.KindGround:
			continue
		case entity.KindGoal:
			e.AddAngle(spin)
		}
		m.drawEntity(e, d)
	}
}

func (m *Map) drawEntity(e *entity.Entity, d Drawer) {
	mesh, ok := m.store.Model(e.Mesh())
	if !ok {
		return
	}
	d.DrawEntity(e, mesh)
}

// MapLoadError reports a map that could not be loaded.
type MapLoadError struct {
	Path string
	Err  error
}

func (e *MapLoadError) Error() string {
	return fmt.Sprintf("loading map %s: %v", e.Path, e.Err)
}

func (e *MapLoadError) Unwrap() error {
	return e.Err
}
