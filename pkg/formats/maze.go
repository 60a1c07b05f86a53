package formats

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Maze format errors.
var (
	ErrInvalidMazeHeader     = errors.New("invalid maze header")
	ErrInvalidMazeDimensions = errors.New("invalid maze dimensions")
	ErrTruncatedMaze         = errors.New("truncated maze data")
)

// Maximum accepted maze edge length.
const maxMazeDimension = 4096

// Cell characters with a meaning. Any other character is open floor.
// 'A'-'E' (doors) and 'a'-'e' (keys) are reserved and currently inert.
const (
	CellWall  byte = 'W'
	CellStart byte = 'S'
	CellGoal  byte = 'G'
	CellOpen  byte = '.'
)

// Maze is a parsed ASCII maze map.
type Maze struct {
	Width  int
	Height int
	Cells  []byte // row-major, Width*Height
}

// Cell returns the character at (col, row).
// Returns 0 if coordinates are out of bounds.
func (m *Maze) Cell(col, row int) byte {
	if col < 0 || row < 0 || col >= m.Width || row >= m.Height {
		return 0
	}
	return m.Cells[row*m.Width+col]
}

// Count returns how many cells hold c.
func (m *Maze) Count(c byte) int {
	n := 0
	for _, cell := range m.Cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Find returns the coordinates of every cell holding c, row-major.
func (m *Maze) Find(c byte) [][2]int {
	var out [][2]int
	for i, cell := range m.Cells {
		if cell == c {
			out = append(out, [2]int{i % m.Width, i / m.Width})
		}
	}
	return out
}

// String renders the maze back into its file form.
func (m *Maze) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d\n", m.Width, m.Height)
	for row := 0; row < m.Height; row++ {
		b.Write(m.Cells[row*m.Width : (row+1)*m.Width])
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseMaze parses a maze map from raw bytes.
//
// The header holds the width and height, followed by Width*Height cell
// characters read row-major. Whitespace between cells, including line
// breaks, is skipped, so rows need no separator.
func ParseMaze(data []byte) (*Maze, error) {
	s := newTokenScanner(data)

	var dims [2]int
	for i, name := range []string{"width", "height"} {
		if !s.Scan() {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidMazeHeader, name)
		}
		v, err := strconv.Atoi(s.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q", ErrInvalidMazeHeader, name, s.Text())
		}
		dims[i] = v
	}

	width, height := dims[0], dims[1]
	if width <= 0 || height <= 0 || width > maxMazeDimension || height > maxMazeDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidMazeDimensions, width, height)
	}

	need := width * height
	m := &Maze{
		Width:  width,
		Height: height,
		Cells:  make([]byte, 0, need),
	}

	for len(m.Cells) < need && s.Scan() {
		tok := s.Bytes()
		if rem := need - len(m.Cells); len(tok) > rem {
			tok = tok[:rem]
		}
		m.Cells = append(m.Cells, tok...)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedMaze, err)
	}
	if len(m.Cells) < need {
		return nil, fmt.Errorf("%w: got %d of %d cells", ErrTruncatedMaze, len(m.Cells), need)
	}

	return m, nil
}

// ParseMazeFile parses a maze map from disk.
func ParseMazeFile(path string) (*Maze, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading maze file: %w", err)
	}
	return ParseMaze(data)
}
