package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/clario/internal/export"
	"github.com/HendryAvila/clario/internal/session"
)

// ExportFeatureTool handles the clario_export_feature MCP tool.
type ExportFeatureTool struct {
	engine     Engine
	defaultDir string
}

// NewExportFeatureTool creates an ExportFeatureTool. defaultDir is the
// configured export directory, used when the caller sets save without
// naming a directory.
func NewExportFeatureTool(e Engine, defaultDir string) *ExportFeatureTool {
	return &ExportFeatureTool{engine: e, defaultDir: defaultDir}
}

// Definition returns the MCP tool definition for clario_export_feature.
func (t *ExportFeatureTool) Definition() mcp.Tool {
	return mcp.NewTool("clario_export_feature",
		mcp.WithDescription(
			"Export a session's requirements document as markdown, with a clarifications "+
				"appendix recording every question and how it was resolved. Optionally writes "+
				"the file to a directory.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session identifier"),
		),
		mcp.WithString("directory",
			mcp.Description("Directory to write the export file into; omit to just return the content"),
		),
		mcp.WithBoolean("save",
			mcp.Description("Write the file into the configured export directory"),
		),
	)
}

// Handle processes the clario_export_feature tool call.
func (t *ExportFeatureTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	dir := req.GetString("directory", "")
	if dir == "" && req.GetBool("save", false) {
		dir = t.defaultDir
	}
	if dir != "" {
		path, err := export.Write(sess, dir)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to write export: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Exported %q to %s", sess.Title, path)), nil
	}

	return mcp.NewToolResultText(export.Render(sess)), nil
}
