// ABOUTME: Flat in-memory vector index with brute-force squared-L2 search
// ABOUTME: Append-only rows whose positions double as document ids
package index

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDimensionMismatch is returned when a vector offered to the index
// does not match the configured embedding dimension.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Hit is one search result: the row position and its squared-L2 distance
// to the query. Lower distance means more similar.
type Hit struct {
	Row      int
	Distance float64
}

// VectorIndex is a flat index over fixed-dimension float64 vectors.
// Rows are append-only; deletion happens only at whole-index granularity
// by replacing the index.
type VectorIndex struct {
	dim     int
	vectors [][]float64
}

// NewVectorIndex creates an empty index for vectors of the given dimension.
func NewVectorIndex(dim int) *VectorIndex {
	return &VectorIndex{dim: dim}
}

// Dimension returns the configured embedding dimension.
func (vi *VectorIndex) Dimension() int {
	return vi.dim
}

// Len returns the number of stored vectors.
func (vi *VectorIndex) Len() int {
	return len(vi.vectors)
}

// Add appends vectors in order. Validation is all-or-nothing: if any
// vector has the wrong dimension, nothing is appended.
func (vi *VectorIndex) Add(vectors [][]float64) error {
	for i, v := range vectors {
		if len(v) != vi.dim {
			return fmt.Errorf("vector %d: %w: expected %d, got %d", i, ErrDimensionMismatch, vi.dim, len(v))
		}
	}
	vi.vectors = append(vi.vectors, vectors...)
	return nil
}

// Search scans every stored vector and returns up to k hits ordered by
// ascending distance. Ties keep insertion order. An empty index returns
// an empty slice.
func (vi *VectorIndex) Search(query []float64, k int) ([]Hit, error) {
	if len(query) != vi.dim {
		return nil, fmt.Errorf("query: %w: expected %d, got %d", ErrDimensionMismatch, vi.dim, len(query))
	}
	if k <= 0 || len(vi.vectors) == 0 {
		return []Hit{}, nil
	}

	hits := make([]Hit, len(vi.vectors))
	for i, v := range vi.vectors {
		hits[i] = Hit{Row: i, Distance: squaredL2(query, v)}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Vectors returns the underlying rows for persistence. Callers must not
// mutate the returned slices.
func (vi *VectorIndex) Vectors() [][]float64 {
	return vi.vectors
}

// squaredL2 computes the squared Euclidean distance between two vectors
// of equal length.
func squaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
