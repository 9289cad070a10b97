// ABOUTME: Shared command setup building config, storage and the retriever
// ABOUTME: Consolidates wiring used by ingest, ask, indices and mcp
package commands

import (
	"context"
	"fmt"

	"github.com/sfbu/campus-assistant/internal/config"
	"github.com/sfbu/campus-assistant/internal/core"
	"github.com/sfbu/campus-assistant/internal/llm"
	"github.com/sfbu/campus-assistant/internal/storage"
)

// buildRetriever wires config, bundle storage and the OpenAI embedder
// into a retriever. With requireKey false, a missing API key yields a
// retriever whose embedding calls fail, which queries degrade on.
func buildRetriever(requireKey bool) (*core.Retriever, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.NewBundleStore(cfg.StorageDir)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}

	var embed core.EmbedFunc
	client, err := llm.NewClient(cfg)
	if err != nil {
		if requireKey {
			return nil, nil, err
		}
		embed = noEmbedder
	} else {
		embed = client.GenerateEmbedding
	}

	return core.NewRetriever(store, embed, cfg.VectorDimension, cfg.DefaultTopK), cfg, nil
}

// noEmbedder stands in when no API key is configured.
func noEmbedder(_ context.Context, _ string) ([]float64, error) {
	return nil, fmt.Errorf("OPENAI_API_KEY not set")
}
