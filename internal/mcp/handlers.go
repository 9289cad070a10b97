// ABOUTME: MCP tool handler implementations for the campus assistant server
// ABOUTME: Thin adapters from tool requests onto the retriever facade
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sfbu/campus-assistant/internal/core"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	retriever *core.Retriever
}

// RetrieveContext handles the retrieve_context tool
func (h *Handlers) RetrieveContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	topK := request.GetInt("top_k", 0)

	results, err := h.retriever.Query(ctx, query, topK)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("context lookup failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"results": results,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListIndices handles the list_indices tool
func (h *Handlers) ListIndices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos, err := h.retriever.ListIndices()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list indices: %v", err)), nil
	}

	indices := make([]map[string]interface{}, 0, len(infos))
	for _, info := range infos {
		indices = append(indices, map[string]interface{}{
			"name":           info.Name,
			"created_at":     info.CreatedAt.Format(time.RFC3339),
			"document_count": info.DocumentCount,
		})
	}

	response := map[string]interface{}{
		"indices": indices,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// LoadIndex handles the load_index tool
func (h *Handlers) LoadIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name argument is required and must be a string"), nil
	}

	if err := h.retriever.LoadIndex(name); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load index: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(`{"loaded": %q, "document_count": %d}`, name, h.retriever.DocumentCount())), nil
}

// DeleteIndex handles the delete_index tool
func (h *Handlers) DeleteIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name argument is required and must be a string"), nil
	}

	if err := h.retriever.DeleteIndex(name); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete index: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(`{"deleted": %q}`, name)), nil
}

// ActiveIndex handles the active_index tool
func (h *Handlers) ActiveIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, ok := h.retriever.ActiveIndex()

	response := map[string]interface{}{
		"active":         ok,
		"name":           name,
		"document_count": h.retriever.DocumentCount(),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
