// ABOUTME: On-disk persistence for named index bundles with active-index tracking
// ABOUTME: Each bundle is a directory holding vectors.gob, documents.json and metadata.json
package storage

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sfbu/campus-assistant/internal/index"
	"github.com/sfbu/campus-assistant/internal/models"
)

var (
	// ErrEmptyIndex is returned when saving with no documents in memory.
	ErrEmptyIndex = errors.New("no documents to save")
	// ErrIndexNotFound is returned when a named bundle is absent or unreadable.
	ErrIndexNotFound = errors.New("index not found")
)

const (
	vectorsFile    = "vectors.gob"
	documentsFile  = "documents.json"
	metadataFile   = "metadata.json"
	lastActiveFile = "last_active.txt"
)

// vectorArtifact is the gob-encoded form of the vector index.
type vectorArtifact struct {
	Dim     int
	Vectors [][]float64
}

// storedDocument is the persisted form of a document: text and metadata
// only, never the embedding (vectors live in the vector artifact).
type storedDocument struct {
	Text     string                  `json:"text"`
	Metadata models.DocumentMetadata `json:"metadata"`
}

// BundleStore persists named index bundles under a root directory and
// tracks which bundle was last active in a sibling plain-text file.
type BundleStore struct {
	root string
}

// NewBundleStore creates the root directory if needed.
func NewBundleStore(root string) (*BundleStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &BundleStore{root: root}, nil
}

func (bs *BundleStore) bundlePath(name string) string {
	return filepath.Join(bs.root, name)
}

// validateName rejects names that would escape the storage directory.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("index name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("index name %q must be a plain directory name", name)
	}
	return nil
}

// Save writes the index and documents as a named bundle and marks it
// active. Fails with ErrEmptyIndex before touching disk if there is
// nothing to save.
func (bs *BundleStore) Save(name string, vi *index.VectorIndex, ds *index.DocumentStore) error {
	if err := validateName(name); err != nil {
		return err
	}
	if vi == nil || ds == nil || ds.Len() == 0 {
		return ErrEmptyIndex
	}

	path := bs.bundlePath(name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating bundle dir: %w", err)
	}

	if err := writeVectors(filepath.Join(path, vectorsFile), vi); err != nil {
		return err
	}

	docs := ds.All()
	stored := make([]storedDocument, len(docs))
	for i, doc := range docs {
		stored[i] = storedDocument{Text: doc.Text, Metadata: doc.Metadata}
	}
	if err := writeJSON(filepath.Join(path, documentsFile), stored); err != nil {
		return err
	}

	meta := models.BundleMetadata{
		CreatedAt:     time.Now(),
		DocumentCount: ds.Len(),
		EmbeddingDim:  vi.Dimension(),
	}
	if err := writeJSON(filepath.Join(path, metadataFile), meta); err != nil {
		return err
	}

	return bs.setActive(name)
}

// Load reads a named bundle into fresh index structures. The in-memory
// state of callers is untouched until this returns successfully.
func (bs *BundleStore) Load(name string) (*index.VectorIndex, *index.DocumentStore, error) {
	if err := validateName(name); err != nil {
		return nil, nil, err
	}

	path := bs.bundlePath(name)
	if _, err := os.Stat(path); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrIndexNotFound, name)
	}

	var artifact vectorArtifact
	f, err := os.Open(filepath.Join(path, vectorsFile))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: reading vectors: %v", ErrIndexNotFound, name, err)
	}
	err = gob.NewDecoder(f).Decode(&artifact)
	f.Close()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: decoding vectors: %v", ErrIndexNotFound, name, err)
	}

	var stored []storedDocument
	if err := readJSON(filepath.Join(path, documentsFile), &stored); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: reading documents: %v", ErrIndexNotFound, name, err)
	}

	var meta models.BundleMetadata
	if err := readJSON(filepath.Join(path, metadataFile), &meta); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: reading metadata: %v", ErrIndexNotFound, name, err)
	}

	vi := index.NewVectorIndex(artifact.Dim)
	if err := vi.Add(artifact.Vectors); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: restoring vectors: %v", ErrIndexNotFound, name, err)
	}

	ds := index.NewDocumentStore()
	for _, sd := range stored {
		ds.Append(models.EmbeddingDocument{Text: sd.Text, Metadata: sd.Metadata})
	}

	if vi.Len() != ds.Len() {
		return nil, nil, fmt.Errorf("%w: %s: %d vectors but %d documents", ErrIndexNotFound, name, vi.Len(), ds.Len())
	}

	if err := bs.setActive(name); err != nil {
		return nil, nil, err
	}
	return vi, ds, nil
}

// List enumerates valid bundles on disk. Directories missing their
// metadata file are skipped with a warning rather than failing the list.
func (bs *BundleStore) List() ([]models.IndexInfo, error) {
	entries, err := os.ReadDir(bs.root)
	if err != nil {
		return nil, fmt.Errorf("reading storage dir: %w", err)
	}

	infos := []models.IndexInfo{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		var meta models.BundleMetadata
		if err := readJSON(filepath.Join(bs.root, entry.Name(), metadataFile), &meta); err != nil {
			log.Printf("[BundleStore] Skipping %s: %v", entry.Name(), err)
			continue
		}
		infos = append(infos, models.IndexInfo{
			Name:          entry.Name(),
			CreatedAt:     meta.CreatedAt,
			DocumentCount: meta.DocumentCount,
		})
	}
	return infos, nil
}

// Delete removes a bundle directory. Deleting a missing name is a no-op.
// If the deleted bundle was active, the pointer is cleared.
func (bs *BundleStore) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.RemoveAll(bs.bundlePath(name)); err != nil {
		return fmt.Errorf("removing bundle: %w", err)
	}
	if active, ok := bs.ActiveName(); ok && active == name {
		if err := bs.clearActive(); err != nil {
			return err
		}
	}
	return nil
}

// ActiveName returns the last-active bundle name, if one is recorded.
func (bs *BundleStore) ActiveName() (string, bool) {
	data, err := os.ReadFile(filepath.Join(bs.root, lastActiveFile))
	if err != nil {
		return "", false
	}
	name := strings.TrimSpace(string(data))
	return name, name != ""
}

func (bs *BundleStore) setActive(name string) error {
	if err := os.WriteFile(filepath.Join(bs.root, lastActiveFile), []byte(name), 0o644); err != nil {
		return fmt.Errorf("writing active marker: %w", err)
	}
	return nil
}

func (bs *BundleStore) clearActive() error {
	err := os.Remove(filepath.Join(bs.root, lastActiveFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing active marker: %w", err)
	}
	return nil
}

func writeVectors(path string, vi *index.VectorIndex) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing vectors: %w", err)
	}
	defer f.Close()
	artifact := vectorArtifact{Dim: vi.Dimension(), Vectors: vi.Vectors()}
	if err := gob.NewEncoder(f).Encode(&artifact); err != nil {
		return fmt.Errorf("encoding vectors: %w", err)
	}
	return nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
