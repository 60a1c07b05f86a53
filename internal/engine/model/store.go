// Package model stores vertex data for meshes that share one GPU buffer.
package model

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/mazewalk/internal/logger"
	"github.com/Faultbox/mazewalk/pkg/formats"
)

// DefaultStride is the number of floats per vertex in scene models:
// position (3), texture coordinate (2), normal (3).
const DefaultStride = 8

// SkyboxStride is the number of floats per vertex in the skybox model (position only).
const SkyboxStride = 3

// Model is one mesh inside a Store. Data is owned by the store and must not be modified.
type Model struct {
	Name  string
	Start int // First vertex in the combined buffer
	Count int // Number of vertices
	Data  []float32
}

// Store is an ordered, append-only collection of meshes that share one vertex buffer.
// Meshes are addressed by load index; every mesh in a store has the same stride.
type Store struct {
	stride int
	models []Model
	total  int
}

// NewStore creates an empty store. A non-positive stride selects DefaultStride.
func NewStore(stride int) *Store {
	if stride <= 0 {
		stride = DefaultStride
	}
	return &Store{stride: stride}
}

// Load reads a model file and appends it. Returns the model's index.
func (s *Store) Load(path string) (int, error) {
	data, err := formats.ParseModelFile(path)
	if err != nil {
		return -1, &LoadError{Path: path, Err: err}
	}

	idx, err := s.Add(path, data)
	if err != nil {
		return -1, &LoadError{Path: path, Err: err}
	}
	return idx, nil
}

// Add appends in-memory vertex data under name. Returns the model's index.
func (s *Store) Add(name string, data []float32) (int, error) {
	count, err := formats.VertexCount(data, s.stride)
	if err != nil {
		return -1, err
	}

	s.models = append(s.models, Model{
		Name:  name,
		Start: s.total,
		Count: count,
		Data:  data,
	})
	s.total += count

	logger.Debug("model added",
		zap.String("name", name),
		zap.Int("index", len(s.models)-1),
		zap.Int("start", s.total-count),
		zap.Int("vertices", count))

	return len(s.models) - 1, nil
}

// Model returns the model at index i.
func (s *Store) Model(i int) (Model, bool) {
	if i < 0 || i >= len(s.models) {
		return Model{}, false
	}
	return s.models[i], true
}

// Models returns the models in load order.
func (s *Store) Models() []Model {
	out := make([]Model, len(s.models))
	copy(out, s.models)
	return out
}

// Len returns the number of loaded models.
func (s *Store) Len() int {
	return len(s.models)
}

// TotalVertices returns the vertex count across all models.
func (s *Store) TotalVertices() int {
	return s.total
}

// Stride returns the number of floats per vertex.
func (s *Store) Stride() int {
	return s.stride
}

// Combined concatenates every model's data in load order, ready for upload
// as a single vertex buffer. Model i occupies vertices [Start, Start+Count).
func (s *Store) Combined() []float32 {
	buf := make([]float32, 0, s.total*s.stride)
	for _, m := range s.models {
		buf = append(buf, m.Data...)
	}
	return buf
}

// LoadError reports a model file that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading model %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
