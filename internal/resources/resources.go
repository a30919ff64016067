// Package resources implements MCP resource handlers for clario.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (clario://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/clario/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler manages clario resource endpoints.
type Handler struct {
	store session.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store session.Store) *Handler {
	return &Handler{store: store}
}

// SessionsResource returns the MCP resource definition for the session list.
func (h *Handler) SessionsResource() mcp.Resource {
	return mcp.NewResource(
		"clario://sessions",
		"Refinement Sessions",
		mcp.WithResourceDescription("All feature refinement sessions with answered/total question counts"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleSessions returns the session summaries as JSON.
func (h *Handler) HandleSessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	summaries, err := h.store.List()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling sessions: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
