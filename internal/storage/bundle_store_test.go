// ABOUTME: Unit tests for bundle persistence
// ABOUTME: Covers round-trip save/load, listing, idempotent delete and the active pointer
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sfbu/campus-assistant/internal/index"
	"github.com/sfbu/campus-assistant/internal/models"
)

func buildTestIndex(t *testing.T, n, dim int) (*index.VectorIndex, *index.DocumentStore) {
	t.Helper()

	vi := index.NewVectorIndex(dim)
	ds := index.NewDocumentStore()

	vectors := make([][]float64, n)
	for i := 0; i < n; i++ {
		v := make([]float64, dim)
		v[i%dim] = float64(i + 1)
		vectors[i] = v
		ds.Append(models.EmbeddingDocument{
			Text: fmt.Sprintf("Question: q%d\nAnswer: a%d", i, i),
			Metadata: models.DocumentMetadata{
				Question: fmt.Sprintf("q%d", i),
				Answer:   fmt.Sprintf("a%d", i),
				Source:   "test.pdf",
				Category: "general",
			},
		})
	}
	if err := vi.Add(vectors); err != nil {
		t.Fatalf("Failed to add vectors: %v", err)
	}
	return vi, ds
}

func TestBundleStore_RoundTrip(t *testing.T) {
	bs, err := NewBundleStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create bundle store: %v", err)
	}

	vi, ds := buildTestIndex(t, 5, 4)
	if err := bs.Save("t2", vi, ds); err != nil {
		t.Fatalf("Failed to save bundle: %v", err)
	}

	loadedVI, loadedDS, err := bs.Load("t2")
	if err != nil {
		t.Fatalf("Failed to load bundle: %v", err)
	}

	if loadedVI.Len() != 5 || loadedDS.Len() != 5 {
		t.Fatalf("Expected 5 vectors and 5 documents, got %d and %d", loadedVI.Len(), loadedDS.Len())
	}
	if loadedVI.Dimension() != 4 {
		t.Errorf("Expected dimension 4, got %d", loadedVI.Dimension())
	}

	// Metadata must survive in order
	for i := 0; i < 5; i++ {
		doc, err := loadedDS.Get(i)
		if err != nil {
			t.Fatalf("Failed to get document %d: %v", i, err)
		}
		want := fmt.Sprintf("q%d", i)
		if doc.Metadata.Question != want {
			t.Errorf("Document %d: expected question %q, got %q", i, want, doc.Metadata.Question)
		}
	}

	// Save marks the bundle active
	active, ok := bs.ActiveName()
	if !ok || active != "t2" {
		t.Errorf("Expected active index t2, got %q (ok=%v)", active, ok)
	}
}

func TestBundleStore_SaveEmptyIndex(t *testing.T) {
	root := t.TempDir()
	bs, err := NewBundleStore(root)
	if err != nil {
		t.Fatalf("Failed to create bundle store: %v", err)
	}

	vi := index.NewVectorIndex(4)
	ds := index.NewDocumentStore()

	if err := bs.Save("empty", vi, ds); !errors.Is(err, ErrEmptyIndex) {
		t.Fatalf("Expected ErrEmptyIndex, got %v", err)
	}

	// No bundle directory may be created for a failed save
	if _, err := os.Stat(filepath.Join(root, "empty")); !os.IsNotExist(err) {
		t.Errorf("Expected no bundle directory, stat err = %v", err)
	}
}

func TestBundleStore_LoadMissing(t *testing.T) {
	bs, err := NewBundleStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create bundle store: %v", err)
	}

	if _, _, err := bs.Load("missing"); !errors.Is(err, ErrIndexNotFound) {
		t.Fatalf("Expected ErrIndexNotFound, got %v", err)
	}
}

func TestBundleStore_LoadCorrupt(t *testing.T) {
	root := t.TempDir()
	bs, err := NewBundleStore(root)
	if err != nil {
		t.Fatalf("Failed to create bundle store: %v", err)
	}

	// A bundle directory with no artifacts is corrupt
	if err := os.MkdirAll(filepath.Join(root, "broken"), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	if _, _, err := bs.Load("broken"); !errors.Is(err, ErrIndexNotFound) {
		t.Fatalf("Expected ErrIndexNotFound for corrupt bundle, got %v", err)
	}
}

func TestBundleStore_ListEmpty(t *testing.T) {
	bs, err := NewBundleStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create bundle store: %v", err)
	}

	infos, err := bs.List()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("Expected empty list, got %d entries", len(infos))
	}
}

func TestBundleStore_ListSkipsBrokenBundles(t *testing.T) {
	root := t.TempDir()
	bs, err := NewBundleStore(root)
	if err != nil {
		t.Fatalf("Failed to create bundle store: %v", err)
	}

	vi, ds := buildTestIndex(t, 2, 3)
	if err := bs.Save("good", vi, ds); err != nil {
		t.Fatalf("Failed to save bundle: %v", err)
	}

	// Directory without metadata.json must be skipped, not fail the listing
	if err := os.MkdirAll(filepath.Join(root, "partial"), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	infos, err := bs.List()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(infos) != 1 || infos[0].Name != "good" {
		t.Fatalf("Expected only the good bundle, got %+v", infos)
	}
	if infos[0].DocumentCount != 2 {
		t.Errorf("Expected document count 2, got %d", infos[0].DocumentCount)
	}
}

func TestBundleStore_DeleteIdempotent(t *testing.T) {
	bs, err := NewBundleStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create bundle store: %v", err)
	}

	vi, ds := buildTestIndex(t, 1, 3)
	if err := bs.Save("doomed", vi, ds); err != nil {
		t.Fatalf("Failed to save bundle: %v", err)
	}

	if err := bs.Delete("doomed"); err != nil {
		t.Fatalf("First delete failed: %v", err)
	}
	if err := bs.Delete("doomed"); err != nil {
		t.Fatalf("Second delete failed: %v", err)
	}

	// Deleting the active bundle clears the pointer
	if active, ok := bs.ActiveName(); ok {
		t.Errorf("Expected no active index after delete, got %q", active)
	}
}

func TestBundleStore_DeleteNonActiveKeepsPointer(t *testing.T) {
	bs, err := NewBundleStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create bundle store: %v", err)
	}

	vi, ds := buildTestIndex(t, 1, 3)
	if err := bs.Save("first", vi, ds); err != nil {
		t.Fatalf("Failed to save first: %v", err)
	}
	vi2, ds2 := buildTestIndex(t, 1, 3)
	if err := bs.Save("second", vi2, ds2); err != nil {
		t.Fatalf("Failed to save second: %v", err)
	}

	if err := bs.Delete("first"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	active, ok := bs.ActiveName()
	if !ok || active != "second" {
		t.Errorf("Expected active index second, got %q (ok=%v)", active, ok)
	}
}

func TestBundleStore_RejectsUnsafeNames(t *testing.T) {
	bs, err := NewBundleStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create bundle store: %v", err)
	}

	vi, ds := buildTestIndex(t, 1, 3)
	for _, name := range []string{"", "..", "a/b", `a\b`} {
		if err := bs.Save(name, vi, ds); err == nil {
			t.Errorf("Expected save with name %q to fail", name)
		}
	}
}
