package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/HendryAvila/clario/internal/classify"
	"github.com/HendryAvila/clario/internal/document"
	"github.com/HendryAvila/clario/internal/session"
)

// synthesize calls the drafting oracle and folds its output into the
// session: document sections merge over the previous document, the
// title follows the draft, and proposed questions are screened against
// the full ledger so nothing the user already answered or disregarded
// ever resurfaces. Returns the conversational response for the turn.
func (e *Engine) synthesize(ctx context.Context, sess *session.Session, message string, firstTurn bool) (string, error) {
	var hints []string
	if firstTurn {
		hints = classify.SeedQuestions(classify.ParseType(sess.FeatureType))
	}

	draft, err := e.drafter.Draft(ctx, sess.Narrative, message, hints)
	if err != nil {
		return "", fmt.Errorf("drafting document: %w", err)
	}

	upd := document.ParseMarkdown(draft.Markdown)
	if upd.Empty() {
		log.Printf("WARNING: synthesize: draft markdown carried no recognizable sections, keeping previous document")
	}
	sess.Document = document.Merge(sess.Document, upd)
	sess.SetTitle(sess.Document.FeatureName)

	e.admitQuestions(sess, draft.Questions)

	return draft.Response, nil
}

// admitQuestions adds the drafter's proposed questions to the ledger,
// one at a time so each gets its own priority. The ledger's own dedup
// drops anything already covered, terminal entries included.
func (e *Engine) admitQuestions(sess *session.Session, proposed []string) {
	ft := classify.ParseType(sess.FeatureType)
	for _, q := range proposed {
		priority := classify.Prioritize(q, ft)
		sess.Questions.AddQuestions([]string{q}, priority, sess.FeatureType)
	}
}
