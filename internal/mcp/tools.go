// ABOUTME: MCP tool definitions and registration for the campus assistant server
// ABOUTME: Defines JSON schemas for the retrieval and index lifecycle tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sfbu/campus-assistant/internal/core"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, retriever *core.Retriever) *Handlers {
	handlers := &Handlers{retriever: retriever}

	// 1. retrieve_context - nearest-neighbor lookup for prompt assembly
	server.AddTool(mcp.Tool{
		Name:        "retrieve_context",
		Description: "Retrieve the most relevant Q&A context for a query from the active index. Scores are raw distances: lower is a better match.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Query text to find context for",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 3)",
					"default":     3,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.RetrieveContext)

	// 2. list_indices - enumerate saved index bundles
	server.AddTool(mcp.Tool{
		Name:        "list_indices",
		Description: "List all saved RAG indices with creation time and document count.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListIndices)

	// 3. load_index - make a named index active
	server.AddTool(mcp.Tool{
		Name:        "load_index",
		Description: "Load a named RAG index, replacing the currently active one.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the index to load",
				},
			},
			Required: []string{"name"},
		},
	}, handlers.LoadIndex)

	// 4. delete_index - remove a named index
	server.AddTool(mcp.Tool{
		Name:        "delete_index",
		Description: "Delete a named RAG index. Deleting the active index leaves the system with no index loaded.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the index to delete",
				},
			},
			Required: []string{"name"},
		},
	}, handlers.DeleteIndex)

	// 5. active_index - report the currently active index
	server.AddTool(mcp.Tool{
		Name:        "active_index",
		Description: "Get the name and document count of the currently active index, if any.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ActiveIndex)

	return handlers
}
