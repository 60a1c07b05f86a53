// Package formats provides parsers for the maze walker's text file formats.
package formats

import (
	"bufio"
	"bytes"
)

// Note: vertex-data model files are implemented in model.go
// Note: ASCII maze maps are implemented in maze.go

// newTokenScanner returns a scanner over whitespace-separated tokens.
func newTokenScanner(data []byte) *bufio.Scanner {
	s := bufio.NewScanner(bytes.NewReader(data))
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	s.Split(bufio.ScanWords)
	return s
}
