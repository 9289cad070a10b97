// ABOUTME: Index bundle metadata models for persistence and listing
// ABOUTME: Defines IndexInfo and the on-disk BundleMetadata record
package models

import "time"

// BundleMetadata is the metadata.json record written next to each bundle.
type BundleMetadata struct {
	CreatedAt     time.Time `json:"created_at"`
	DocumentCount int       `json:"document_count"`
	EmbeddingDim  int       `json:"embedding_dim"`
}

// IndexInfo describes one named bundle found on disk.
type IndexInfo struct {
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
	DocumentCount int       `json:"document_count"`
}
