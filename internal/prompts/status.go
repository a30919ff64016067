package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the clario-status MCP prompt.
// It instructs the AI to read and present the state of all sessions.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("clario-status",
		mcp.WithPromptDescription(
			"Check your feature refinement sessions. "+
				"Shows every session, how many questions are answered, "+
				"and which features are ready to export.",
		),
	)
}

// Handle processes the clario-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Refinement session status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `clario_list_sessions` to check my refinement sessions.\n\n" +
						"Then:\n" +
						"1. Show me every session with its answered/total question counts\n" +
						"2. For sessions with open questions, run `clario_get_session` and list what still needs answering\n" +
						"3. Tell me which features are ready to export with `clario_export_feature`",
				),
			},
		},
	}, nil
}
