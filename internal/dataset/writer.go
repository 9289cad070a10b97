// ABOUTME: JSONL writer and train/validation splitting for training records
// ABOUTME: Emits the chat messages format consumed by fine-tuning and ingestion
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sfbu/campus-assistant/internal/models"
)

// outRecord is the JSONL line shape written for each record.
type outRecord struct {
	Messages []models.ChatMessage `json:"messages"`
	Source   string               `json:"source,omitempty"`
	Category string               `json:"category,omitempty"`
}

// Split divides records into train and validation sets by ratio.
// The split is deterministic: the first ratio-share goes to train.
func Split(records []models.TrainingRecord, trainRatio float64) (train, valid []models.TrainingRecord) {
	if trainRatio < 0 {
		trainRatio = 0
	}
	if trainRatio > 1 {
		trainRatio = 1
	}
	cut := int(float64(len(records)) * trainRatio)
	return records[:cut], records[cut:]
}

// WriteFile writes records as newline-delimited JSON in the chat
// messages format.
func WriteFile(path string, records []models.TrainingRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	for _, rec := range records {
		out := outRecord{
			Messages: []models.ChatMessage{
				{Role: "user", Content: rec.Question},
				{Role: "assistant", Content: rec.Answer},
			},
			Source:   rec.Source,
			Category: rec.Category,
		}
		if err := enc.Encode(out); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	// A failed close can mean buffered data never hit disk
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
