// Package gate screens incoming messages before any session state
// changes. A rejected message leaves the session exactly as it was.
package gate

import (
	"context"
	"fmt"

	"github.com/HendryAvila/clario/internal/oracle"
)

// Result is the gate's verdict on one message.
type Result struct {
	Allowed   bool
	Reasoning string
}

// Gate decides whether a message belongs in a requirements conversation.
type Gate struct {
	relevance oracle.Relevance
}

// New returns a gate backed by the given relevance oracle.
func New(r oracle.Relevance) *Gate {
	return &Gate{relevance: r}
}

// Check screens a message. For the first message of a session only the
// product judgment applies. On a follow-up the contextual judgment is
// consulted first; a message the context oracle rejects still passes if
// it describes product functionality on its own, so pivots within a
// session ("also add audit logging") are not lost. The gate is
// deliberately permissive: both judgments must reject for the message
// to bounce.
func (g *Gate) Check(ctx context.Context, pending []string, message string) (Result, error) {
	if len(pending) > 0 {
		cj, err := g.relevance.JudgeContext(ctx, pending, message)
		if err != nil {
			return Result{}, fmt.Errorf("contextual judgment: %w", err)
		}
		if cj.Relevant {
			return Result{Allowed: true, Reasoning: cj.Reasoning}, nil
		}
	}

	pj, err := g.relevance.JudgeProduct(ctx, message)
	if err != nil {
		return Result{}, fmt.Errorf("product judgment: %w", err)
	}
	return Result{Allowed: pj.IsFeatureRequest, Reasoning: pj.Reasoning}, nil
}
