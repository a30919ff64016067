package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/clario/internal/engine"
	"github.com/HendryAvila/clario/internal/ledger"
	"github.com/HendryAvila/clario/internal/session"
)

// fakeEngine scripts the Engine interface for tool tests.
type fakeEngine struct {
	turn     *engine.TurnResult
	turnErr  error
	sess     *session.Session
	sessErr  error
	list     []session.Summary
	listErr  error
	clearErr error
	cleared  string
}

func (f *fakeEngine) ProcessTurn(ctx context.Context, sessionID, message string) (*engine.TurnResult, error) {
	return f.turn, f.turnErr
}

func (f *fakeEngine) GetSession(sessionID string) (*session.Session, error) {
	return f.sess, f.sessErr
}

func (f *fakeEngine) ListSessions() ([]session.Summary, error) {
	return f.list, f.listErr
}

func (f *fakeEngine) ClearSession(sessionID string) error {
	f.cleared = sessionID
	return f.clearErr
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func loginSession() *session.Session {
	s := session.New("s1")
	s.SetTitle("User Login")
	s.FeatureType = "authentication"
	s.Document.FeatureName = "User Login"
	s.Document.Description = "Users can log in."
	s.Questions.AddQuestions([]string{"Do you need two-factor authentication?"}, ledger.PriorityCritical, "authentication")
	return s
}

// ─── ProcessFeatureTool ──────────────────────────────────────────────────────

func TestProcessFeatureTool_Definition(t *testing.T) {
	def := NewProcessFeatureTool(&fakeEngine{}).Definition()
	if def.Name != "clario_process_feature" {
		t.Errorf("Name = %q", def.Name)
	}
}

func TestProcessFeatureTool_RequiresMessage(t *testing.T) {
	tool := NewProcessFeatureTool(&fakeEngine{})
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.IsError {
		t.Error("expected error result for missing message")
	}
}

func TestProcessFeatureTool_FormatsTurn(t *testing.T) {
	fake := &fakeEngine{turn: &engine.TurnResult{
		SessionID:   "s1",
		Title:       "User Login",
		Response:    "Drafted the document.",
		Markdown:    "# User Login",
		Questions:   []ledger.Question{{Text: "Do you need 2FA?", Status: ledger.StatusPending, Priority: ledger.PriorityCritical}},
		Total:       2,
		Answered:    1,
		AnsweredNow: 1,
	}}
	tool := NewProcessFeatureTool(fake)

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"message": "I want a login feature",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	text := resultText(res)
	for _, want := range []string{"Session: s1", "User Login", "Drafted the document.", "This turn: 1 answered, 0 set aside", "Do you need 2FA?", "# User Login"} {
		if !strings.Contains(text, want) {
			t.Errorf("result missing %q:\n%s", want, text)
		}
	}
}

func TestProcessFeatureTool_OffTopicIsToolError(t *testing.T) {
	fake := &fakeEngine{turnErr: engine.ErrOffTopic}
	tool := NewProcessFeatureTool(fake)

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"message": "What's the weather?",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.IsError {
		t.Error("expected error result for off-topic message")
	}
	if !strings.Contains(resultText(res), "left unchanged") {
		t.Errorf("result = %q", resultText(res))
	}
}

// ─── GetSessionTool ──────────────────────────────────────────────────────────

func TestGetSessionTool_FormatsLedgerAndDocument(t *testing.T) {
	sess := loginSession()
	sess.Questions.ApplyJudgment(ledger.Judgment{
		Question: "Do you need two-factor authentication?",
		Status:   ledger.StatusAnswered,
		Answer:   "SMS",
	})
	tool := NewGetSessionTool(&fakeEngine{sess: sess})

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"session_id": "s1",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	text := resultText(res)
	for _, want := range []string{"User Login", "answered", "→ SMS", "# User Login"} {
		if !strings.Contains(text, want) {
			t.Errorf("result missing %q:\n%s", want, text)
		}
	}
}

func TestGetSessionTool_NotFound(t *testing.T) {
	tool := NewGetSessionTool(&fakeEngine{sessErr: session.ErrNotFound})
	res, _ := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"session_id": "nope",
	}))
	if !res.IsError {
		t.Error("expected error result for unknown session")
	}
}

// ─── ListSessionsTool ────────────────────────────────────────────────────────

func TestListSessionsTool_Empty(t *testing.T) {
	tool := NewListSessionsTool(&fakeEngine{})
	res, _ := tool.Handle(context.Background(), makeReq(nil))
	if res.IsError {
		t.Error("unexpected error result")
	}
	if !strings.Contains(resultText(res), "No sessions yet") {
		t.Errorf("result = %q", resultText(res))
	}
}

func TestListSessionsTool_ListsSummaries(t *testing.T) {
	tool := NewListSessionsTool(&fakeEngine{list: []session.Summary{
		{ID: "s1", Title: "User Login", Answered: 1, Total: 2, UpdatedAt: "2026-03-14T10:00:00Z"},
	}})
	res, _ := tool.Handle(context.Background(), makeReq(nil))
	if !strings.Contains(resultText(res), "User Login") {
		t.Errorf("result = %q", resultText(res))
	}
	if !strings.Contains(resultText(res), "1/2") {
		t.Errorf("progress missing: %q", resultText(res))
	}
}

// ─── ClearSessionTool ────────────────────────────────────────────────────────

func TestClearSessionTool(t *testing.T) {
	fake := &fakeEngine{}
	tool := NewClearSessionTool(fake)

	res, _ := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"session_id": "s1",
	}))
	if res.IsError {
		t.Errorf("unexpected error: %q", resultText(res))
	}
	if fake.cleared != "s1" {
		t.Errorf("cleared = %q", fake.cleared)
	}
}

func TestClearSessionTool_NotFound(t *testing.T) {
	tool := NewClearSessionTool(&fakeEngine{clearErr: session.ErrNotFound})
	res, _ := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"session_id": "nope",
	}))
	if !res.IsError {
		t.Error("expected error result for unknown session")
	}
	if !strings.Contains(resultText(res), "not found") {
		t.Errorf("result = %q", resultText(res))
	}
}

// ─── ExportFeatureTool ───────────────────────────────────────────────────────

func TestExportFeatureTool_ReturnsContent(t *testing.T) {
	tool := NewExportFeatureTool(&fakeEngine{sess: loginSession()}, "")
	res, _ := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"session_id": "s1",
	}))
	text := resultText(res)
	if !strings.Contains(text, "# User Login") {
		t.Errorf("result = %q", text)
	}
	if !strings.Contains(text, "Open Questions") {
		t.Errorf("pending appendix missing: %q", text)
	}
}

func TestExportFeatureTool_WritesToDirectory(t *testing.T) {
	dir := t.TempDir()
	tool := NewExportFeatureTool(&fakeEngine{sess: loginSession()}, "")
	res, _ := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"session_id": "s1",
		"directory":  dir,
	}))
	if res.IsError {
		t.Fatalf("unexpected error: %q", resultText(res))
	}
	if !strings.Contains(resultText(res), dir) {
		t.Errorf("result = %q", resultText(res))
	}
}

func TestExportFeatureTool_SaveUsesDefaultDirectory(t *testing.T) {
	dir := t.TempDir()
	tool := NewExportFeatureTool(&fakeEngine{sess: loginSession()}, dir)
	res, _ := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"session_id": "s1",
		"save":       true,
	}))
	if res.IsError {
		t.Fatalf("unexpected error: %q", resultText(res))
	}
	if !strings.Contains(resultText(res), dir) {
		t.Errorf("result = %q", resultText(res))
	}
}

// ─── HealthTool ──────────────────────────────────────────────────────────────

type fakeChecker struct{ err error }

func (f fakeChecker) Health(ctx context.Context) error { return f.err }

func TestHealthTool(t *testing.T) {
	tool := NewHealthTool(fakeChecker{}, "llama3")
	res, _ := tool.Handle(context.Background(), makeReq(nil))
	if res.IsError {
		t.Error("unexpected error result")
	}
	if !strings.Contains(resultText(res), "llama3") {
		t.Errorf("result = %q", resultText(res))
	}
}

func TestHealthTool_Unhealthy(t *testing.T) {
	tool := NewHealthTool(fakeChecker{err: errors.New("connection refused")}, "llama3")
	res, _ := tool.Handle(context.Background(), makeReq(nil))
	if !res.IsError {
		t.Error("expected error result")
	}
}
