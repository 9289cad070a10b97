// ABOUTME: Document models for the RAG index and ingestion pipeline
// ABOUTME: Defines EmbeddingDocument, DocumentMetadata and SearchResult structures
package models

// DocumentMetadata is the structured metadata stored alongside each
// embedded document. Extra carries any fields beyond the known four.
type DocumentMetadata struct {
	Question string            `json:"question"`
	Answer   string            `json:"answer"`
	Source   string            `json:"source,omitempty"`
	Category string            `json:"category,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// EmbeddingDocument represents a text chunk tracked by the index.
// Embedding is populated only while an ingest batch is in flight; it is
// never persisted with the document (vectors live in the index artifact).
type EmbeddingDocument struct {
	Text      string           `json:"text"`
	Metadata  DocumentMetadata `json:"metadata"`
	Embedding []float64        `json:"-"`
}

// SearchResult is one ranked context hit returned to chat consumers.
// Score is the raw squared-L2 distance: lower means more similar. It is
// deliberately not inverted or normalized here.
type SearchResult struct {
	Text     string           `json:"text"`
	Metadata DocumentMetadata `json:"metadata"`
	Score    float64          `json:"score"`
}
