// ABOUTME: Source tracker persisting processed/fine-tuned corpus records
// ABOUTME: Simple CRUD over a flat JSON file, tolerant of a missing file
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sfbu/campus-assistant/internal/models"
)

// SourceTracker records which corpus files have been processed or used
// for fine-tuning. The backing file is created on first Add.
type SourceTracker struct {
	path string
}

// NewSourceTracker creates a tracker backed by the given JSON file.
func NewSourceTracker(path string) *SourceTracker {
	return &SourceTracker{path: path}
}

// Sources returns all tracked records. A missing or unreadable file
// yields an empty list rather than an error.
func (st *SourceTracker) Sources() []models.SourceRecord {
	data, err := os.ReadFile(st.path)
	if err != nil {
		return []models.SourceRecord{}
	}

	var records []models.SourceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return []models.SourceRecord{}
	}

	for i := range records {
		if records[i].DisplayName == "" {
			records[i].DisplayName = DisplayName(records[i].FilePath)
		}
	}
	return records
}

// Add appends a record, filling in ID, display name and timestamp.
func (st *SourceTracker) Add(record models.SourceRecord) error {
	records := st.Sources()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.DisplayName == "" {
		record.DisplayName = DisplayName(record.FilePath)
	}
	record.Timestamp = time.Now()
	records = append(records, record)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling source records: %w", err)
	}
	if err := os.WriteFile(st.path, data, 0o644); err != nil {
		return fmt.Errorf("writing source records: %w", err)
	}
	return nil
}

// DisplayName reduces a source path to a clean filename for display.
func DisplayName(path string) string {
	return strings.TrimSpace(filepath.Base(path))
}
