package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

// Client is the Ollama-backed implementation of all three oracle roles.
// The judgment roles run at low temperature; drafting runs warmer so the
// document prose stays readable.
type Client struct {
	api          *ollama.Client
	model        string
	drafterModel string
	timeout      time.Duration
}

// judgment oracles are deterministic workloads, drafting is not.
const (
	judgeTemperature = 0.1
	draftTemperature = 0.7
)

// NewClient builds a Client from the environment (OLLAMA_HOST is honored
// the same way the ollama CLI honors it). model serves the judgment
// roles; drafterModel serves drafting and may be the same model.
func NewClient(model, drafterModel string, timeout time.Duration) (*Client, error) {
	c, err := ollama.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}
	if drafterModel == "" {
		drafterModel = model
	}
	return &Client{api: c, model: model, drafterModel: drafterModel, timeout: timeout}, nil
}

// Health reports whether the Ollama backend is reachable.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := c.api.Heartbeat(ctx); err != nil {
		return fmt.Errorf("ollama unreachable: %w", err)
	}
	return nil
}

// ─── Relevance ───

func (c *Client) JudgeProduct(ctx context.Context, message string) (ProductJudgment, error) {
	var out ProductJudgment
	err := c.invoke(ctx, c.model, productPrompt, message, judgeTemperature, func(raw string) error {
		var perr error
		out, perr = ParseSecurity(raw)
		return perr
	})
	return out, err
}

func (c *Client) JudgeContext(ctx context.Context, pending []string, message string) (ContextJudgment, error) {
	var b strings.Builder
	b.WriteString("PENDING QUESTIONS:\n")
	for _, q := range pending {
		fmt.Fprintf(&b, "- %s (status: pending)\n", q)
	}
	fmt.Fprintf(&b, "\nUSER FOLLOW-UP:\n%s", message)

	var out ContextJudgment
	err := c.invoke(ctx, c.model, contextPrompt, b.String(), judgeTemperature, func(raw string) error {
		var perr error
		out, perr = ParseContext(raw)
		return perr
	})
	return out, err
}

// ─── Classifier ───

func (c *Client) JudgeQuestions(ctx context.Context, pending []string, message string) ([]QuestionJudgment, error) {
	items := make([]map[string]string, len(pending))
	for i, q := range pending {
		items[i] = map[string]string{"question": q, "status": "pending"}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding pending questions: %w", err)
	}
	user := fmt.Sprintf("PENDING QUESTIONS:\n%s\n\nUSER FOLLOW-UP:\n%s", encoded, message)

	var out []QuestionJudgment
	err = c.invoke(ctx, c.model, reconcilePrompt, user, judgeTemperature, func(raw string) error {
		var perr error
		out, perr = ParseQuestionJudgments(raw)
		return perr
	})
	return out, err
}

// ─── Drafter ───

func (c *Client) Draft(ctx context.Context, narrative []string, message string, hints []string) (Draft, error) {
	var b strings.Builder
	if len(narrative) > 0 {
		b.WriteString("CONVERSATION SO FAR:\n")
		for _, line := range narrative {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if len(hints) > 0 {
		b.WriteString("Details that usually need clarifying for this kind of feature:\n")
		for _, h := range hints {
			fmt.Fprintf(&b, "- %s\n", h)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "USER MESSAGE:\n%s", message)

	var out Draft
	err := c.invoke(ctx, c.drafterModel, drafterPrompt, b.String(), draftTemperature, func(raw string) error {
		var perr error
		out, perr = ParseDraft(raw)
		return perr
	})
	return out, err
}

// ─── Chat Plumbing ───

// invoke runs one chat completion and hands the raw text to parse. On a
// format failure it re-prompts once with the malformed output attached;
// any second failure is returned as-is.
func (c *Client) invoke(ctx context.Context, model, system, user string, temperature float64, parse func(string) error) error {
	raw, err := c.chat(ctx, model, system, user, temperature)
	if err != nil {
		return err
	}
	perr := parse(raw)
	if perr == nil {
		return nil
	}
	if !IsFormatError(perr) {
		return perr
	}

	corrective := user + "\n\n" + fmt.Sprintf(correctivePrompt, raw)
	raw, err = c.chat(ctx, model, system, corrective, temperature)
	if err != nil {
		return err
	}
	return parse(raw)
}

func (c *Client) chat(ctx context.Context, model, system, user string, temperature float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stream := false
	req := &ollama.ChatRequest{
		Model: model,
		Messages: []ollama.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream: &stream,
		Options: map[string]interface{}{
			"temperature": temperature,
			"num_ctx":     4096,
		},
	}

	var content strings.Builder
	err := c.api.Chat(ctx, req, func(res ollama.ChatResponse) error {
		content.WriteString(res.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("chat with %s: %w", model, err)
	}
	return content.String(), nil
}
