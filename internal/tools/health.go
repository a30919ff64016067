package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// HealthChecker reports whether the oracle backend is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthTool handles the clario_health MCP tool.
type HealthTool struct {
	checker HealthChecker
	model   string
}

// NewHealthTool creates a HealthTool.
func NewHealthTool(checker HealthChecker, model string) *HealthTool {
	return &HealthTool{checker: checker, model: model}
}

// Definition returns the MCP tool definition for clario_health.
func (t *HealthTool) Definition() mcp.Tool {
	return mcp.NewTool("clario_health",
		mcp.WithDescription(
			"Check whether the language-model backend is reachable. "+
				"Use this to diagnose failing clario_process_feature calls.",
		),
	)
}

// Handle processes the clario_health tool call.
func (t *HealthTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := t.checker.Health(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("backend unhealthy: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Backend healthy (model: %s)", t.model)), nil
}
