// ABOUTME: Main entry point for the campus assistant MCP server with stdio transport
// ABOUTME: Initializes storage, the retriever and the MCP server with all tools
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sfbu/campus-assistant/internal/config"
	"github.com/sfbu/campus-assistant/internal/core"
	"github.com/sfbu/campus-assistant/internal/llm"
	"github.com/sfbu/campus-assistant/internal/mcp"
	"github.com/sfbu/campus-assistant/internal/storage"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - retrieval queries will return no context")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := storage.NewBundleStore(cfg.StorageDir)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	var embed core.EmbedFunc
	if client, err := llm.NewClient(cfg); err != nil {
		log.Printf("Warning: OpenAI client unavailable: %v", err)
		embed = func(_ context.Context, _ string) ([]float64, error) {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
	} else {
		embed = client.GenerateEmbedding
	}

	retriever := core.NewRetriever(store, embed, cfg.VectorDimension, cfg.DefaultTopK)

	server := mcpserver.NewMCPServer(
		"Campus Assistant RAG",
		"0.1.0",
	)

	mcp.RegisterTools(server, retriever)

	log.Println("Campus MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
