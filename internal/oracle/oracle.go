// Package oracle defines the boundary to the language-model backend.
//
// Three narrow interfaces cover the three judgment roles the engine
// needs: relevance screening, per-question reconciliation, and document
// drafting. The engine depends only on these interfaces; the Ollama
// client in this package is one implementation, tests inject their own.
//
// All oracle output crosses the boundary as plain text in fixed section
// layouts (see parse.go). Nothing an oracle says is trusted: callers
// re-validate every judgment against their own state.
package oracle

import (
	"context"
	"errors"
	"fmt"
)

// ProductJudgment is the verdict on whether a message describes a
// software feature at all.
type ProductJudgment struct {
	IsFeatureRequest bool
	Confidence       float64
	Reasoning        string
}

// ContextJudgment is the verdict on whether a follow-up message belongs
// to the conversation already in progress.
type ContextJudgment struct {
	Relevant  bool
	Reasoning string
}

// QuestionJudgment is the classification of one pending question against
// the latest user message. Status is one of "pending", "answered", or
// "disregarded"; Answer carries the extracted answer for answered
// questions and is empty otherwise.
type QuestionJudgment struct {
	Question string
	Status   string
	Answer   string
}

// Draft is the drafting oracle's output for one turn: a conversational
// reply, newly proposed clarifying questions, and the full requirements
// document in markdown.
type Draft struct {
	Response  string
	Questions []string
	Markdown  string
}

// Relevance screens incoming messages before any state changes.
type Relevance interface {
	// JudgeProduct decides whether the message describes software
	// functionality at all.
	JudgeProduct(ctx context.Context, message string) (ProductJudgment, error)

	// JudgeContext decides whether a follow-up is relevant to the
	// pending questions of an ongoing session.
	JudgeContext(ctx context.Context, pending []string, message string) (ContextJudgment, error)
}

// Classifier reconciles a user message against the pending questions.
type Classifier interface {
	// JudgeQuestions returns one judgment per pending question it can
	// classify. Questions it omits stay pending.
	JudgeQuestions(ctx context.Context, pending []string, message string) ([]QuestionJudgment, error)
}

// Drafter produces the conversational reply, proposed questions, and
// updated requirements document for a turn.
type Drafter interface {
	// Draft synthesizes a turn from the accumulated narrative, the
	// latest message, and optional question hints from the feature
	// classifier.
	Draft(ctx context.Context, narrative []string, message string, hints []string) (Draft, error)
}

// FormatError reports oracle output that does not follow the expected
// section layout. The client retries once with a corrective prompt; a
// FormatError surfacing from this package means the retry failed too.
type FormatError struct {
	Section string
	Raw     string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("oracle response missing or malformed %s section", e.Section)
}

// IsFormatError reports whether err is, or wraps, a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
