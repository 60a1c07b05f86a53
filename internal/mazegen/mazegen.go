// Package mazegen generates maze maps with Wilson's algorithm.
//
// The generator works on cells separated by thin walls; maps need solid wall
// blocks, so a w*h cell maze becomes a (2w+1)*(2h+1) block map.
package mazegen

import (
	"errors"
	"fmt"

	wilson "github.com/beka-birhanu/wilson-maze"
	"go.uber.org/zap"

	"github.com/Faultbox/mazewalk/internal/logger"
	"github.com/Faultbox/mazewalk/pkg/formats"
)

// ErrEmptyGrid is returned when a cell grid has no rows or ragged rows.
var ErrEmptyGrid = errors.New("empty or ragged cell grid")

// Cell is a maze cell with thin walls on each side.
type Cell interface {
	HasNorthWall() bool
	HasSouthWall() bool
	HasEastWall() bool
	HasWestWall() bool
}

// Generate builds a random perfect maze of cols*rows cells. The start is the
// bottom-right cell and the goal the top-left one, so the player begins
// facing into the maze.
func Generate(cols, rows int) (*formats.Maze, error) {
	m, err := wilson.New(cols, rows)
	if err != nil {
		return nil, fmt.Errorf("generating %dx%d maze: %w", cols, rows, err)
	}

	grid := m.RetriveGrid()
	cells := make([][]Cell, len(grid))
	for r, row := range grid {
		cells[r] = make([]Cell, len(row))
		for c, cell := range row {
			cells[r][c] = cell
		}
	}

	maze, err := FromCells(cells)
	if err != nil {
		return nil, err
	}

	logger.Debug("maze generated",
		zap.Int("cols", cols),
		zap.Int("rows", rows),
		zap.Int("walls", maze.Count(formats.CellWall)))
	return maze, nil
}

// FromCells converts a thin-wall cell grid, indexed [row][col], to a block map.
func FromCells(cells [][]Cell) (*formats.Maze, error) {
	rows := len(cells)
	if rows == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	cols := len(cells[0])
	for _, row := range cells {
		if len(row) != cols {
			return nil, ErrEmptyGrid
		}
	}

	w, h := 2*cols+1, 2*rows+1
	m := &formats.Maze{Width: w, Height: h, Cells: make([]byte, w*h)}
	for i := range m.Cells {
		m.Cells[i] = formats.CellWall
	}
	set := func(col, row int, c byte) {
		m.Cells[row*w+col] = c
	}

	for r, row := range cells {
		for c, cell := range row {
			bc, br := 2*c+1, 2*r+1
			set(bc, br, formats.CellOpen)
			// Each opening is recorded on both neighbors; reading east and
			// south covers every interior wall once.
			if c+1 < cols && !cell.HasEastWall() {
				set(bc+1, br, formats.CellOpen)
			}
			if r+1 < rows && !cell.HasSouthWall() {
				set(bc, br+1, formats.CellOpen)
			}
		}
	}

	set(1, 1, formats.CellGoal)
	set(w-2, h-2, formats.CellStart)
	return m, nil
}
