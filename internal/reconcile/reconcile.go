// Package reconcile matches a user message against the pending questions
// of a session and turns the oracle's classifications into validated
// ledger judgments.
package reconcile

import (
	"context"
	"fmt"
	"log"

	"github.com/HendryAvila/clario/internal/ledger"
	"github.com/HendryAvila/clario/internal/oracle"
)

// Delta is the validated outcome of one reconciliation pass. Only
// judgments that survived validation appear; every pending question not
// covered by a judgment stays pending.
type Delta struct {
	Judgments []ledger.Judgment
	Dropped   int // oracle judgments rejected during validation
}

// Answered returns the answered judgments in the delta.
func (d Delta) Answered() []ledger.Judgment {
	return d.byStatus(ledger.StatusAnswered)
}

// Disregarded returns the disregarded judgments in the delta.
func (d Delta) Disregarded() []ledger.Judgment {
	return d.byStatus(ledger.StatusDisregarded)
}

func (d Delta) byStatus(s ledger.Status) []ledger.Judgment {
	var out []ledger.Judgment
	for _, j := range d.Judgments {
		if j.Status == s {
			out = append(out, j)
		}
	}
	return out
}

// Reconciler runs the classification oracle over pending questions.
type Reconciler struct {
	classifier oracle.Classifier
}

// New returns a reconciler backed by the given classifier oracle.
func New(c oracle.Classifier) *Reconciler {
	return &Reconciler{classifier: c}
}

// Reconcile classifies message against the pending questions in a single
// oracle call and validates the result. Oracle output is never trusted:
// judgments for questions that were not pending are dropped, invalid
// statuses are dropped, and answered judgments without an answer are
// dropped. A format failure (after the client's own corrective retry) is
// terminal: the error propagates so the turn fails without committing,
// leaving every question pending.
func (r *Reconciler) Reconcile(ctx context.Context, pending []ledger.Question, message string) (Delta, error) {
	if len(pending) == 0 {
		return Delta{}, nil
	}

	texts := make([]string, len(pending))
	for i, q := range pending {
		texts[i] = q.Text
	}

	raw, err := r.classifier.JudgeQuestions(ctx, texts, message)
	if err != nil {
		if oracle.IsFormatError(err) {
			log.Printf("WARNING: reconcile: unparseable oracle output, %d questions stay pending", len(pending))
		}
		return Delta{}, fmt.Errorf("classifying questions: %w", err)
	}

	known := make(map[string]string, len(pending))
	for _, q := range pending {
		known[ledger.Normalize(q.Text)] = q.Text
	}

	var delta Delta
	seen := map[string]bool{}
	for _, j := range raw {
		norm := ledger.Normalize(j.Question)
		original, ok := known[norm]
		if !ok || seen[norm] {
			delta.Dropped++
			continue
		}

		status := ledger.Status(j.Status)
		if err := ledger.ValidateStatus(status); err != nil || !status.Terminal() {
			if status != ledger.StatusPending {
				delta.Dropped++
			}
			continue
		}
		if status == ledger.StatusAnswered && j.Answer == "" {
			delta.Dropped++
			continue
		}

		seen[norm] = true
		delta.Judgments = append(delta.Judgments, ledger.Judgment{
			Question: original,
			Status:   status,
			Answer:   j.Answer,
		})
	}
	return delta, nil
}
