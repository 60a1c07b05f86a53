package formats

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Model format errors.
var (
	ErrInvalidModel   = errors.New("invalid model data")
	ErrTruncatedModel = errors.New("truncated model data")
	ErrStrideMismatch = errors.New("float count is not a multiple of the vertex stride")
)

// ParseModel parses a vertex-data model file from raw bytes.
//
// The first token is the number N of floating-point values that follow,
// then N whitespace-separated values. Vertex attributes are interleaved;
// the caller decides the stride.
func ParseModel(data []byte) ([]float32, error) {
	s := newTokenScanner(data)

	if !s.Scan() {
		if err := s.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
		}
		return nil, fmt.Errorf("%w: missing value count", ErrTruncatedModel)
	}

	n, err := strconv.Atoi(s.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: value count %q", ErrInvalidModel, s.Text())
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative value count %d", ErrInvalidModel, n)
	}

	// Each value takes at least one digit and one separator, so the header
	// cannot claim more values than the input holds.
	values := make([]float32, 0, min(n, len(data)/2+1))
	for i := 0; i < n; i++ {
		if !s.Scan() {
			if err := s.Err(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
			}
			return nil, fmt.Errorf("%w: got %d of %d values", ErrTruncatedModel, i, n)
		}
		f, err := strconv.ParseFloat(s.Text(), 32)
		if err != nil {
			return nil, fmt.Errorf("%w: value %d %q", ErrInvalidModel, i, s.Text())
		}
		values = append(values, float32(f))
	}

	return values, nil
}

// ParseModelFile parses a model file from disk.
func ParseModelFile(path string) ([]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	return ParseModel(data)
}

// VertexCount returns the number of vertices in values for the given stride.
// Returns ErrStrideMismatch if the values do not divide evenly.
func VertexCount(values []float32, stride int) (int, error) {
	if stride <= 0 {
		return 0, fmt.Errorf("%w: stride %d", ErrStrideMismatch, stride)
	}
	if len(values)%stride != 0 {
		return 0, fmt.Errorf("%w: %d values, stride %d", ErrStrideMismatch, len(values), stride)
	}
	return len(values) / stride, nil
}
