// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on
// abstractions. No business logic lives here — only wiring.
package server

import (
	"context"
	"fmt"
	"log"

	"github.com/HendryAvila/clario/internal/config"
	"github.com/HendryAvila/clario/internal/engine"
	"github.com/HendryAvila/clario/internal/oracle"
	"github.com/HendryAvila/clario/internal/prompts"
	"github.com/HendryAvila/clario/internal/resources"
	"github.com/HendryAvila/clario/internal/session"
	"github.com/HendryAvila/clario/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the session store's database
// connection and must be called on shutdown (typically via defer).
func New() (*server.MCPServer, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, noop, fmt.Errorf("loading config: %w", err)
	}

	// --- Create shared dependencies ---

	store, err := session.NewSQLiteStore(cfg.DataDir)
	if err != nil {
		return nil, noop, fmt.Errorf("opening session store: %w", err)
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Printf("WARNING: session store close: %v", err)
		}
	}

	client, err := oracle.NewClient(cfg.Model, cfg.DrafterModel, cfg.Timeout())
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("creating ollama client: %w", err)
	}

	// The model being down at startup is not fatal — the processing
	// tool reports oracle errors per call. Warn so the operator knows.
	if err := client.Health(context.Background()); err != nil {
		log.Printf("WARNING: ollama not reachable: %v", err)
	}

	eng := engine.New(store, client, client, client)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"clario",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register tools ---

	processTool := tools.NewProcessFeatureTool(eng)
	s.AddTool(processTool.Definition(), processTool.Handle)

	getTool := tools.NewGetSessionTool(eng)
	s.AddTool(getTool.Definition(), getTool.Handle)

	listTool := tools.NewListSessionsTool(eng)
	s.AddTool(listTool.Definition(), listTool.Handle)

	clearTool := tools.NewClearSessionTool(eng)
	s.AddTool(clearTool.Definition(), clearTool.Handle)

	exportTool := tools.NewExportFeatureTool(eng, cfg.ExportDir)
	s.AddTool(exportTool.Definition(), exportTool.Handle)

	healthTool := tools.NewHealthTool(client, cfg.Model)
	s.AddTool(healthTool.Definition(), healthTool.Handle)

	// --- Register prompts ---

	refinePrompt := prompts.NewRefinePrompt()
	s.AddPrompt(refinePrompt.Definition(), refinePrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(store)
	s.AddResource(resourceHandler.SessionsResource(), resourceHandler.HandleSessions)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when server
// construction fails before the store is open.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use clario effectively.
func serverInstructions() string {
	return `You have access to clario, a feature refinement MCP server.

## WHEN TO ACTIVATE clario

You MUST proactively suggest using clario when the user:
- Describes a feature or product change they want built
- Gives a vague one-liner like "add login" or "we need reporting"
- Asks you to turn an idea into requirements or a spec
- Says things like "I want a feature for...", "the app should..."

When you detect any of these, say something like:
"Let's run this through clario to turn it into a structured feature
document with acceptance criteria. Should I start a refinement session?"

You do NOT need to activate clario for:
- Bug fixes or small patches
- Questions, explanations, or documentation
- Anything that is not a product feature request

## How It Works

clario maintains refinement sessions. Each session tracks one feature:
a living feature document plus a ledger of clarifying questions.

1. Call clario_process_feature with the user's message. Omit session_id
   to start a new session; pass the returned session_id on follow-ups.
2. The response contains the assistant's reply, the current feature
   document, and the open questions. Present the open questions to the
   user and collect answers.
3. Send the answers back through clario_process_feature with the same
   session_id. Answered questions are folded into the document;
   questions the user waves off are retired and never asked again.
4. Messages that are not about the feature are bounced: the tool call
   fails and the session is left untouched. Relay the reasoning to the
   user and steer back to the feature.
5. When no questions remain open, call clario_export_feature to produce
   the final Markdown document (optionally writing it to a directory).

## Important Rules

- ALWAYS pass the session_id on follow-up messages — without it a new
  session starts and the accumulated document is not used
- NEVER answer clarifying questions yourself — they are for the user
- Use clario_list_sessions to find past sessions when the user refers
  to earlier work
- Use clario_get_session to show the full state of one session
- Use clario_clear_session only when the user explicitly asks to
  discard a session
- clario_health checks whether the local model is reachable — run it
  first if clario_process_feature keeps failing`
}
