// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes retrieval tools to LLM agents over stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sfbu/campus-assistant/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the retrieval core as an MCP (Model Context Protocol) server,
letting chat agents retrieve context and manage indices via stdio.`,
		RunE: runMCPServe,
		Example: `  # Start MCP server (typically called by an agent host)
  campus mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "campus": {
  #       "command": "campus",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCPServe starts the MCP server
func runMCPServe(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - retrieval queries will return no context")
	}

	retriever, _, err := buildRetriever(false)
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer(
		"Campus Assistant RAG",
		"0.1.0",
	)

	mcp.RegisterTools(server, retriever)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Campus MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
