// ABOUTME: Positional document store aligned row-for-row with the vector index
// ABOUTME: Append/get by row id; row i here corresponds to vector row i
package index

import (
	"errors"
	"fmt"

	"github.com/sfbu/campus-assistant/internal/models"
)

// ErrOutOfRange is returned when a row id has no backing document. It
// indicates positional misalignment with the vector index and is a
// programming-error-level fault, not user input.
var ErrOutOfRange = errors.New("document row out of range")

// DocumentStore holds documents in insertion order. The position of a
// document is its id in the paired VectorIndex.
type DocumentStore struct {
	docs []models.EmbeddingDocument
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{}
}

// Len returns the number of stored documents.
func (ds *DocumentStore) Len() int {
	return len(ds.docs)
}

// Append adds a document and returns the row just written. It must be
// called in lockstep with VectorIndex.Add for the same embedding.
func (ds *DocumentStore) Append(doc models.EmbeddingDocument) int {
	ds.docs = append(ds.docs, doc)
	return len(ds.docs) - 1
}

// Get returns the document at the given row.
func (ds *DocumentStore) Get(row int) (models.EmbeddingDocument, error) {
	if row < 0 || row >= len(ds.docs) {
		return models.EmbeddingDocument{}, fmt.Errorf("row %d of %d: %w", row, len(ds.docs), ErrOutOfRange)
	}
	return ds.docs[row], nil
}

// All returns the documents in insertion order for persistence. Callers
// must not mutate the returned slice.
func (ds *DocumentStore) All() []models.EmbeddingDocument {
	return ds.docs
}
