package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/clario/internal/document"
	"github.com/HendryAvila/clario/internal/session"
)

// GetSessionTool handles the clario_get_session MCP tool.
type GetSessionTool struct {
	engine Engine
}

// NewGetSessionTool creates a GetSessionTool.
func NewGetSessionTool(e Engine) *GetSessionTool {
	return &GetSessionTool{engine: e}
}

// Definition returns the MCP tool definition for clario_get_session.
func (t *GetSessionTool) Definition() mcp.Tool {
	return mcp.NewTool("clario_get_session",
		mcp.WithDescription(
			"Inspect the full state of a clarification session: the question ledger "+
				"with statuses and answers, and the current requirements document.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session identifier"),
		),
	)
}

// Handle processes the clario_get_session tool call.
func (t *GetSessionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("session_id", "")
	if id == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}

	sess, err := t.engine.GetSession(id)
	if errors.Is(err, session.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("session %q not found", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load session: %v", err)), nil
	}

	return mcp.NewToolResultText(formatSession(sess)), nil
}

func formatSession(sess *session.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nFeature: %s (%s)\nCreated: %s\nUpdated: %s\n",
		sess.ID, sess.Title, sess.FeatureType, sess.CreatedAt, sess.UpdatedAt)

	if len(sess.Questions.Entries) > 0 {
		fmt.Fprintf(&b, "\nQuestions (%d answered, %d disregarded, %d pending):\n",
			len(sess.Questions.Answered()), len(sess.Questions.Disregarded()), len(sess.Questions.Pending()))
		for _, q := range sess.Questions.Entries {
			fmt.Fprintf(&b, "- [%s] %s", q.Status, q.Text)
			if q.Answer != "" {
				fmt.Fprintf(&b, " → %s", q.Answer)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n---\n\n")
	b.WriteString(document.RenderMarkdown(sess.Document))
	return b.String()
}

// ─── ListSessionsTool ───

// ListSessionsTool handles the clario_list_sessions MCP tool.
type ListSessionsTool struct {
	engine Engine
}

// NewListSessionsTool creates a ListSessionsTool.
func NewListSessionsTool(e Engine) *ListSessionsTool {
	return &ListSessionsTool{engine: e}
}

// Definition returns the MCP tool definition for clario_list_sessions.
func (t *ListSessionsTool) Definition() mcp.Tool {
	return mcp.NewTool("clario_list_sessions",
		mcp.WithDescription(
			"List all clarification sessions with their titles and progress, most recently updated first.",
		),
	)
}

// Handle processes the clario_list_sessions tool call.
func (t *ListSessionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries, err := t.engine.ListSessions()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list sessions: %v", err)), nil
	}
	if len(summaries) == 0 {
		return mcp.NewToolResultText("No sessions yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d sessions:\n\n", len(summaries))
	for _, sm := range summaries {
		fmt.Fprintf(&b, "- %s — %q (%d/%d answered, updated %s)\n",
			sm.ID, sm.Title, sm.Answered, sm.Total, sm.UpdatedAt)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// ─── ClearSessionTool ───

// ClearSessionTool handles the clario_clear_session MCP tool.
type ClearSessionTool struct {
	engine Engine
}

// NewClearSessionTool creates a ClearSessionTool.
func NewClearSessionTool(e Engine) *ClearSessionTool {
	return &ClearSessionTool{engine: e}
}

// Definition returns the MCP tool definition for clario_clear_session.
func (t *ClearSessionTool) Definition() mcp.Tool {
	return mcp.NewTool("clario_clear_session",
		mcp.WithDescription(
			"Delete a clarification session and everything it accumulated. This cannot be undone.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session identifier to delete"),
		),
	)
}

// Handle processes the clario_clear_session tool call.
func (t *ClearSessionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("session_id", "")
	if id == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}

	err := t.engine.ClearSession(id)
	if errors.Is(err, session.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("session %q not found", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to clear session: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Session %q cleared", id)), nil
}
