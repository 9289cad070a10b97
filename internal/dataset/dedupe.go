// ABOUTME: Content-hash deduplication of training records
// ABOUTME: Seeds hashes from existing JSONL files so re-processing a source adds nothing twice
package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sfbu/campus-assistant/internal/models"
)

// ContentHash fingerprints a Q&A pair for dedup purposes.
func ContentHash(question, answer string) string {
	sum := sha256.Sum256([]byte(question + answer))
	return hex.EncodeToString(sum[:])
}

// Deduper tracks which Q&A pairs have already been produced.
type Deduper struct {
	seen map[string]struct{}
}

// NewDeduper creates an empty deduper.
func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[string]struct{})}
}

// LoadExisting walks a training-data directory and seeds the deduper
// with the hashes of every record in every .jsonl file found. Unreadable
// files are skipped with a warning.
func (d *Deduper) LoadExisting(dir string) {
	if _, err := os.Stat(dir); err != nil {
		return
	}

	_ = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() || !strings.HasSuffix(path, ".jsonl") {
			return nil
		}
		records, err := ParseFile(path)
		if err != nil {
			log.Printf("[Deduper] Skipping %s: %v", path, err)
			return nil
		}
		for _, rec := range records {
			d.seen[ContentHash(rec.Question, rec.Answer)] = struct{}{}
		}
		return nil
	})
}

// Filter returns the records not seen before, marking them as seen.
func (d *Deduper) Filter(records []models.TrainingRecord) []models.TrainingRecord {
	kept := make([]models.TrainingRecord, 0, len(records))
	for _, rec := range records {
		hash := ContentHash(rec.Question, rec.Answer)
		if _, dup := d.seen[hash]; dup {
			continue
		}
		d.seen[hash] = struct{}{}
		kept = append(kept, rec)
	}
	return kept
}

// Len returns the number of distinct pairs seen so far.
func (d *Deduper) Len() int {
	return len(d.seen)
}
