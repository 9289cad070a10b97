// ABOUTME: Source tracking model for processed and fine-tuned corpora
// ABOUTME: Defines the SourceRecord entries stored in the flat JSON tracking file
package models

import "time"

// SourceRecord tracks one corpus file that has been processed or used
// for fine-tuning, so operators can see what fed the current indices.
type SourceRecord struct {
	ID          string    `json:"id"`
	FilePath    string    `json:"file_path"`
	DisplayName string    `json:"display_name"`
	Status      string    `json:"status"` // "processed" or "fine_tuned"
	Timestamp   time.Time `json:"timestamp"`
}
