// ABOUTME: Retriever facade composing embedding, vector index and bundle persistence
// ABOUTME: Owns the in-memory active index and serves get-relevant-context queries
package core

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/sfbu/campus-assistant/internal/index"
	"github.com/sfbu/campus-assistant/internal/models"
	"github.com/sfbu/campus-assistant/internal/storage"
)

// EmbedFunc converts text to a fixed-length embedding vector. The
// retriever treats the embedding provider as an injected collaborator.
type EmbedFunc func(ctx context.Context, text string) ([]float64, error)

// Retriever is the RAG facade. One index is active at a time; lifecycle
// operations replace the in-memory structures wholesale under the write
// lock, while queries run under the read lock.
type Retriever struct {
	mu          sync.RWMutex
	embed       EmbedFunc
	store       *storage.BundleStore
	dim         int
	defaultTopK int

	// nil until a corpus is ingested or a bundle is loaded
	vectors   *index.VectorIndex
	documents *index.DocumentStore
}

// NewRetriever creates a retriever and attempts to restore the
// last-active bundle. A failed restore leaves the retriever usable in
// the no-index-loaded state.
func NewRetriever(store *storage.BundleStore, embed EmbedFunc, dim, defaultTopK int) *Retriever {
	r := &Retriever{
		embed:       embed,
		store:       store,
		dim:         dim,
		defaultTopK: defaultTopK,
	}

	if name, ok := store.ActiveName(); ok {
		vi, ds, err := store.Load(name)
		if err != nil {
			log.Printf("[Retriever] Could not restore active index %q: %v", name, err)
		} else {
			r.vectors = vi
			r.documents = ds
			log.Printf("[Retriever] Restored active index %q with %d documents", name, ds.Len())
		}
	}

	return r
}

// IngestCorpus embeds the records and persists the result under the
// given index name. Embeddings are built into a scratch buffer first, so
// a mid-corpus failure leaves the live index untouched.
func (r *Retriever) IngestCorpus(ctx context.Context, records []models.TrainingRecord, name string) error {
	if len(records) == 0 {
		return storage.ErrEmptyIndex
	}

	scratchVectors := make([][]float64, 0, len(records))
	scratchDocs := make([]models.EmbeddingDocument, 0, len(records))

	for i, rec := range records {
		text := fmt.Sprintf("Question: %s\nAnswer: %s", rec.Question, rec.Answer)
		vector, err := r.embed(ctx, text)
		if err != nil {
			return fmt.Errorf("embedding record %d of %d: %w", i+1, len(records), err)
		}
		scratchVectors = append(scratchVectors, vector)
		scratchDocs = append(scratchDocs, models.EmbeddingDocument{
			Text: text,
			Metadata: models.DocumentMetadata{
				Question: rec.Question,
				Answer:   rec.Answer,
				Source:   rec.Source,
				Category: rec.Category,
			},
		})
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.vectors == nil {
		r.vectors = index.NewVectorIndex(r.dim)
		r.documents = index.NewDocumentStore()
	}

	// Vectors first: a dimension error must leave documents untouched too
	if err := r.vectors.Add(scratchVectors); err != nil {
		return err
	}
	for _, doc := range scratchDocs {
		r.documents.Append(doc)
	}

	if err := r.store.Save(name, r.vectors, r.documents); err != nil {
		return fmt.Errorf("saving index %q: %w", name, err)
	}

	log.Printf("[Retriever] Ingested %d records into index %q (%d total)", len(records), name, r.documents.Len())
	return nil
}

// Query embeds the text and returns the topK closest documents with
// their raw distances, best first. Embedding failures and the
// no-index-loaded state both degrade to an empty result so chat can
// fall back to plain generation.
func (r *Retriever) Query(ctx context.Context, text string, topK int) ([]models.SearchResult, error) {
	if topK <= 0 {
		topK = r.defaultTopK
	}

	r.mu.RLock()
	vi, ds := r.vectors, r.documents
	r.mu.RUnlock()

	if vi == nil || ds.Len() == 0 {
		return []models.SearchResult{}, nil
	}

	queryVector, err := r.embed(ctx, text)
	if err != nil {
		log.Printf("[Retriever] Embedding failed, proceeding without context: %v", err)
		return []models.SearchResult{}, nil
	}

	// Re-read the pair under the lock: a concurrent load/delete may have
	// swapped or cleared the structures while the embedding call ran.
	r.mu.RLock()
	defer r.mu.RUnlock()
	vi, ds = r.vectors, r.documents
	if vi == nil || ds.Len() == 0 {
		return []models.SearchResult{}, nil
	}

	hits, err := vi.Search(queryVector, topK)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	results := make([]models.SearchResult, 0, len(hits))
	for _, hit := range hits {
		doc, err := ds.Get(hit.Row)
		if err != nil {
			// Positional misalignment is an internal invariant violation
			return nil, fmt.Errorf("index misaligned at row %d: %w", hit.Row, err)
		}
		results = append(results, models.SearchResult{
			Text:     doc.Text,
			Metadata: doc.Metadata,
			Score:    hit.Distance,
		})
	}
	return results, nil
}

// LoadIndex replaces the in-memory index with a named bundle.
func (r *Retriever) LoadIndex(name string) error {
	vi, ds, err := r.store.Load(name)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.vectors = vi
	r.documents = ds
	log.Printf("[Retriever] Loaded index %q with %d documents", name, ds.Len())
	return nil
}

// DeleteIndex removes a named bundle. If it was the active one, the
// in-memory state is cleared as well. Deleting a missing name is a no-op.
func (r *Retriever) DeleteIndex(name string) error {
	active, hadActive := r.store.ActiveName()

	if err := r.store.Delete(name); err != nil {
		return err
	}

	if hadActive && active == name {
		r.mu.Lock()
		r.vectors = nil
		r.documents = nil
		r.mu.Unlock()
		log.Printf("[Retriever] Cleared active index %q", name)
	}
	return nil
}

// ListIndices enumerates the bundles available on disk.
func (r *Retriever) ListIndices() ([]models.IndexInfo, error) {
	return r.store.List()
}

// ActiveIndex returns the name of the active index, if any.
func (r *Retriever) ActiveIndex() (string, bool) {
	return r.store.ActiveName()
}

// DocumentCount returns the number of documents in the in-memory index.
func (r *Retriever) DocumentCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.documents == nil {
		return 0
	}
	return r.documents.Len()
}
