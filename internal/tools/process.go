// Package tools implements the MCP tool handlers for the clarification
// assistant.
//
// Each tool follows the same pattern:
//   - a struct with dependencies injected via constructor
//   - Definition() returns the mcp.Tool schema
//   - Handle() processes the request and returns a result
//
// Tools depend on the Engine interface, not the concrete engine, so
// tests can script turns without an oracle backend.
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/clario/internal/engine"
	"github.com/HendryAvila/clario/internal/session"
)

// Engine is the slice of the clarification engine the tools need.
type Engine interface {
	ProcessTurn(ctx context.Context, sessionID, message string) (*engine.TurnResult, error)
	GetSession(sessionID string) (*session.Session, error)
	ListSessions() ([]session.Summary, error)
	ClearSession(sessionID string) error
}

// ProcessFeatureTool handles the clario_process_feature MCP tool.
type ProcessFeatureTool struct {
	engine Engine
}

// NewProcessFeatureTool creates a ProcessFeatureTool.
func NewProcessFeatureTool(e Engine) *ProcessFeatureTool {
	return &ProcessFeatureTool{engine: e}
}

// Definition returns the MCP tool definition for clario_process_feature.
func (t *ProcessFeatureTool) Definition() mcp.Tool {
	return mcp.NewTool("clario_process_feature",
		mcp.WithDescription(
			"Describe a software feature or answer the assistant's clarifying questions. "+
				"Each call advances the conversation: the requirements document is updated, "+
				"answered questions are recorded, and new clarifying questions may be asked. "+
				"Omit session_id to start a new feature conversation.",
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The feature description or follow-up answer"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session to continue; omit to start a new one"),
		),
	)
}

// Handle processes the clario_process_feature tool call.
func (t *ProcessFeatureTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message := req.GetString("message", "")
	if strings.TrimSpace(message) == "" {
		return mcp.NewToolResultError("'message' is required"), nil
	}
	sessionID := req.GetString("session_id", "")

	res, err := t.engine.ProcessTurn(ctx, sessionID, message)
	if errors.Is(err, engine.ErrOffTopic) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"That message doesn't look like it's about a software feature, so the session was left unchanged. (%v)", err,
		)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to process message: %v", err)), nil
	}

	return mcp.NewToolResultText(formatTurn(res)), nil
}

// formatTurn renders a turn result for the MCP client.
func formatTurn(res *engine.TurnResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nFeature: %s\nProgress: %d/%d questions answered\n", res.SessionID, res.Title, res.Answered, res.Total)
	if res.AnsweredNow > 0 || res.DisregardedNow > 0 {
		fmt.Fprintf(&b, "This turn: %d answered, %d set aside\n", res.AnsweredNow, res.DisregardedNow)
	}
	b.WriteString("\n")
	b.WriteString(res.Response)
	b.WriteString("\n")

	if len(res.Questions) > 0 {
		b.WriteString("\nOpen questions:\n")
		for _, q := range res.Questions {
			fmt.Fprintf(&b, "- [%s] %s\n", q.Priority, q.Text)
		}
	}

	b.WriteString("\n---\n\n")
	b.WriteString(res.Markdown)
	return b.String()
}
