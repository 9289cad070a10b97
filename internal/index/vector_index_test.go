// ABOUTME: Unit tests for the flat vector index
// ABOUTME: Covers dimension enforcement, search ordering, ties and empty-index search
package index

import (
	"errors"
	"testing"
)

func TestVectorIndex_AddAndSearch(t *testing.T) {
	vi := NewVectorIndex(3)

	err := vi.Add([][]float64{
		{1.0, 0.0, 0.0},
		{0.0, 1.0, 0.0},
		{0.9, 0.1, 0.0},
	})
	if err != nil {
		t.Fatalf("Failed to add vectors: %v", err)
	}

	if vi.Len() != 3 {
		t.Fatalf("Expected 3 vectors, got %d", vi.Len())
	}

	hits, err := vi.Search([]float64{0.95, 0.05, 0.0}, 3)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}

	if len(hits) != 3 {
		t.Fatalf("Expected 3 hits, got %d", len(hits))
	}

	// Row 2 ([0.9, 0.1, 0.0]) is closest to the query, row 1 farthest
	if hits[0].Row != 2 {
		t.Errorf("Expected closest hit to be row 2, got row %d", hits[0].Row)
	}
	if hits[2].Row != 1 {
		t.Errorf("Expected farthest hit to be row 1, got row %d", hits[2].Row)
	}

	// Distances must be non-decreasing
	for i := 1; i < len(hits); i++ {
		if hits[i].Distance < hits[i-1].Distance {
			t.Errorf("Hits not sorted: distance[%d]=%.4f < distance[%d]=%.4f",
				i, hits[i].Distance, i-1, hits[i-1].Distance)
		}
	}
}

func TestVectorIndex_DimensionMismatch(t *testing.T) {
	vi := NewVectorIndex(3)

	if err := vi.Add([][]float64{{1.0, 0.0, 0.0}}); err != nil {
		t.Fatalf("Failed to add valid vector: %v", err)
	}

	err := vi.Add([][]float64{
		{0.0, 1.0, 0.0},
		{0.0, 1.0}, // wrong dimension
	})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("Expected ErrDimensionMismatch, got %v", err)
	}

	// All-or-nothing: the valid vector in the failed batch must not land either
	if vi.Len() != 1 {
		t.Errorf("Expected index unchanged at 1 vector, got %d", vi.Len())
	}
}

func TestVectorIndex_EmptySearch(t *testing.T) {
	vi := NewVectorIndex(3)

	hits, err := vi.Search([]float64{1.0, 0.0, 0.0}, 10)
	if err != nil {
		t.Fatalf("Failed to search empty index: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("Expected 0 hits from empty index, got %d", len(hits))
	}
}

func TestVectorIndex_SearchTruncation(t *testing.T) {
	vi := NewVectorIndex(2)
	err := vi.Add([][]float64{
		{0.0, 0.0},
		{1.0, 1.0},
		{2.0, 2.0},
		{3.0, 3.0},
		{4.0, 4.0},
	})
	if err != nil {
		t.Fatalf("Failed to add vectors: %v", err)
	}

	tests := []struct {
		name string
		k    int
		want int
	}{
		{"k smaller than size", 2, 2},
		{"k equals size", 5, 5},
		{"k larger than size", 10, 5},
		{"k zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := vi.Search([]float64{0.0, 0.0}, tt.k)
			if err != nil {
				t.Fatalf("Failed to search: %v", err)
			}
			if len(hits) != tt.want {
				t.Errorf("Expected %d hits, got %d", tt.want, len(hits))
			}
		})
	}
}

func TestVectorIndex_StableTies(t *testing.T) {
	vi := NewVectorIndex(2)
	// Rows 0 and 1 are equidistant from the query
	err := vi.Add([][]float64{
		{1.0, 0.0},
		{-1.0, 0.0},
		{5.0, 5.0},
	})
	if err != nil {
		t.Fatalf("Failed to add vectors: %v", err)
	}

	hits, err := vi.Search([]float64{0.0, 0.0}, 3)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}

	if hits[0].Row != 0 || hits[1].Row != 1 {
		t.Errorf("Expected ties in insertion order (rows 0,1), got rows %d,%d", hits[0].Row, hits[1].Row)
	}
}

func TestVectorIndex_QueryDimensionMismatch(t *testing.T) {
	vi := NewVectorIndex(3)
	if err := vi.Add([][]float64{{1.0, 0.0, 0.0}}); err != nil {
		t.Fatalf("Failed to add vector: %v", err)
	}

	_, err := vi.Search([]float64{1.0, 0.0}, 1)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("Expected ErrDimensionMismatch for short query, got %v", err)
	}
}
