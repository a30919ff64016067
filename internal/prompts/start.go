// Package prompts implements MCP prompt handlers for clario.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// RefinePrompt handles the clario-refine MCP prompt.
// It guides the AI to open a refinement session for a feature idea.
type RefinePrompt struct{}

// NewRefinePrompt creates a RefinePrompt.
func NewRefinePrompt() *RefinePrompt {
	return &RefinePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *RefinePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("clario-refine",
		mcp.WithPromptDescription(
			"Refine a feature idea into a structured feature document. "+
				"This walks you through describing the feature, answering "+
				"clarifying questions, and exporting the final document.",
		),
		mcp.WithArgument("idea",
			mcp.ArgumentDescription("A first, rough description of the feature you want"),
		),
	)
}

// Handle processes the clario-refine prompt request.
func (p *RefinePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	idea := "a new feature"
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["idea"]; ok && v != "" {
			idea = v
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Refine feature: %s", idea),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to refine this feature idea into a proper feature document: %s\n\n"+
						"Please:\n"+
						"1. Run `clario_process_feature` with my idea as the message (omit session_id so a new session starts)\n"+
						"2. Show me the pending questions it returns and collect my answers\n"+
						"3. Send my answers back through `clario_process_feature` with the same session_id\n"+
						"4. Repeat until no questions remain open, then run `clario_export_feature` and give me the document",
					idea,
				)),
			},
		},
	}, nil
}
