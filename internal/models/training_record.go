// ABOUTME: Training corpus models shared by dataset parsing and ingestion
// ABOUTME: Defines TrainingRecord, the chat-message JSONL shape, and ExtractedSection
package models

// ChatMessage is one role/content entry in a messages-format JSONL line.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TrainingRecord is one Q&A pair extracted from a training corpus,
// the unit consumed by Retriever.IngestCorpus.
type TrainingRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Source   string `json:"source,omitempty"`
	Category string `json:"category,omitempty"`
}

// ExtractedSection is a heading-grouped block of text pulled from a web
// page, ready to be turned into Q&A pairs.
type ExtractedSection struct {
	Section string `json:"section"`
	Content string `json:"content"`
	Source  string `json:"source"`
}
