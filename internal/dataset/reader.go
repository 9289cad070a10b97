// ABOUTME: JSONL corpus reader for training records
// ABOUTME: Accepts both the chat messages format and the legacy prompt/completion format
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sfbu/campus-assistant/internal/models"
)

// rawRecord covers both supported JSONL line shapes.
type rawRecord struct {
	Messages   []models.ChatMessage `json:"messages"`
	Prompt     string               `json:"prompt"`
	Completion string               `json:"completion"`
	Source     string               `json:"source"`
	Category   string               `json:"category"`
}

// ParseFile reads a newline-delimited JSON corpus from disk.
func ParseFile(path string) ([]models.TrainingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads training records from newline-delimited JSON. Each line is
// either {"messages": [...]} or legacy {"prompt", "completion"}, with
// optional source/category fields. Blank lines are skipped; records with
// no question and no answer are dropped.
func Parse(r io.Reader) ([]models.TrainingRecord, error) {
	var records []models.TrainingRecord

	scanner := bufio.NewScanner(r)
	// Allow long lines; answers can be whole document sections
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw rawRecord
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		rec := models.TrainingRecord{
			Source:   raw.Source,
			Category: raw.Category,
		}
		if len(raw.Messages) > 0 {
			rec.Question = firstContent(raw.Messages, "user")
			rec.Answer = firstContent(raw.Messages, "assistant")
		} else {
			rec.Question = raw.Prompt
			rec.Answer = raw.Completion
		}

		if rec.Question == "" && rec.Answer == "" {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}

	return records, nil
}

func firstContent(messages []models.ChatMessage, role string) string {
	for _, m := range messages {
		if m.Role == role {
			return m.Content
		}
	}
	return ""
}
