// ABOUTME: Unit tests for configuration loading
// ABOUTME: Covers defaults, env overrides and validation errors
package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"RAG_STORAGE_DIR", "RAG_TRACKING_FILE", "CAMPUS_OPENAI_MODEL",
		"CAMPUS_EMBEDDING_MODEL", "OPENAI_TIMEOUT", "OPENAI_MAX_RETRIES",
		"OPENAI_RETRY_DELAY", "VECTOR_DIMENSION", "RAG_DEFAULT_TOP_K",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.StorageDir != "rag_processing/storage" {
		t.Errorf("Expected default storage dir, got %q", cfg.StorageDir)
	}
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("Expected default chat model gpt-4o-mini, got %q", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("Expected default embedding model, got %q", cfg.EmbeddingModel)
	}
	if cfg.VectorDimension != 1536 {
		t.Errorf("Expected dimension 1536, got %d", cfg.VectorDimension)
	}
	if cfg.DefaultTopK != 3 {
		t.Errorf("Expected default top-k 3, got %d", cfg.DefaultTopK)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("Expected 3 retries, got %d", cfg.MaxRetries)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", cfg.Timeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RAG_STORAGE_DIR", "/tmp/indices")
	t.Setenv("VECTOR_DIMENSION", "768")
	t.Setenv("RAG_DEFAULT_TOP_K", "5")
	t.Setenv("OPENAI_TIMEOUT", "10s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.StorageDir != "/tmp/indices" {
		t.Errorf("Expected overridden storage dir, got %q", cfg.StorageDir)
	}
	if cfg.VectorDimension != 768 {
		t.Errorf("Expected dimension 768, got %d", cfg.VectorDimension)
	}
	if cfg.DefaultTopK != 5 {
		t.Errorf("Expected top-k 5, got %d", cfg.DefaultTopK)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Expected 10s timeout, got %v", cfg.Timeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"retries too high", func(c *Config) { c.MaxRetries = 11 }, true},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }, true},
		{"zero dimension", func(c *Config) { c.VectorDimension = 0 }, true},
		{"zero top-k", func(c *Config) { c.DefaultTopK = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				MaxRetries:      3,
				VectorDimension: 1536,
				DefaultTopK:     3,
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
