// Package engine drives one clarification turn end to end: gate the
// message, reconcile it against pending questions, fold it into the
// narrative, synthesize the updated document, and commit the session in
// a single store write. Any failure along the way leaves the stored
// session exactly as it was before the turn.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/HendryAvila/clario/internal/classify"
	"github.com/HendryAvila/clario/internal/document"
	"github.com/HendryAvila/clario/internal/gate"
	"github.com/HendryAvila/clario/internal/ledger"
	"github.com/HendryAvila/clario/internal/oracle"
	"github.com/HendryAvila/clario/internal/reconcile"
	"github.com/HendryAvila/clario/internal/session"
)

// newID is a package-level var to allow test injection.
var newID = uuid.NewString

// TurnResult is everything a caller learns from one accepted turn.
type TurnResult struct {
	SessionID string            `json:"session_id"`
	Title     string            `json:"title"`
	Response  string            `json:"response"`
	Document  document.Document `json:"document"`
	Markdown  string            `json:"markdown"`
	Questions []ledger.Question `json:"pending_questions"`
	Answered  int               `json:"answered_count"`
	Total     int               `json:"total_count"`
	// Questions that moved to a terminal status during this turn.
	AnsweredNow    int    `json:"answered_this_turn"`
	DisregardedNow int    `json:"disregarded_this_turn"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// Engine owns the turn state machine. Construct with New; all fields
// are required.
type Engine struct {
	store      session.Store
	gate       *gate.Gate
	reconciler *reconcile.Reconciler
	drafter    oracle.Drafter
	locks      *sessionLocks
}

// New wires an engine from its collaborators.
func New(store session.Store, relevance oracle.Relevance, classifier oracle.Classifier, drafter oracle.Drafter) *Engine {
	return &Engine{
		store:      store,
		gate:       gate.New(relevance),
		reconciler: reconcile.New(classifier),
		drafter:    drafter,
		locks:      newSessionLocks(),
	}
}

// ProcessTurn runs one conversation turn. An empty sessionID starts a
// new session; a sessionID with no stored state also starts one, under
// the given id. The returned error is ErrOffTopic (wrapped) when the
// gate rejects the message; in that case, as with every other error,
// the stored session is unchanged.
func (e *Engine) ProcessTurn(ctx context.Context, sessionID, message string) (*TurnResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if sessionID == "" {
		sessionID = newID()
	}

	release := e.locks.acquire(sessionID)
	defer release()

	// From here on the turn works on a private copy; the store is not
	// touched again until the final Put.
	sess, err := e.store.Get(sessionID)
	firstTurn := false
	if errors.Is(err, session.ErrNotFound) {
		sess = session.New(sessionID)
		firstTurn = true
	} else if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	pending := sess.Questions.Pending()
	pendingTexts := make([]string, len(pending))
	for i, q := range pending {
		pendingTexts[i] = q.Text
	}

	verdict, err := e.gate.Check(ctx, pendingTexts, message)
	if err != nil {
		return nil, fmt.Errorf("gating message: %w", err)
	}
	if !verdict.Allowed {
		return nil, offTopic(verdict.Reasoning)
	}

	delta, err := e.reconciler.Reconcile(ctx, pending, message)
	if err != nil {
		return nil, fmt.Errorf("reconciling questions: %w", err)
	}
	for _, j := range delta.Judgments {
		sess.Questions.ApplyJudgment(j)
	}

	if sess.FeatureType == "" {
		sess.FeatureType = string(classify.Classify(message).Primary)
	}

	sess.AppendNarrative("user", message)

	response, err := e.synthesize(ctx, sess, message, firstTurn)
	if err != nil {
		return nil, err
	}
	sess.AppendNarrative("assistant", response)
	sess.Touch()

	if err := e.store.Put(sess); err != nil {
		return nil, fmt.Errorf("committing session: %w", err)
	}

	res := e.result(sess, response)
	res.AnsweredNow = len(delta.Answered())
	res.DisregardedNow = len(delta.Disregarded())
	return res, nil
}

// GetSession returns the stored state of one session.
func (e *Engine) GetSession(sessionID string) (*session.Session, error) {
	return e.store.Get(sessionID)
}

// ListSessions returns summaries of every stored session, most recently
// updated first.
func (e *Engine) ListSessions() ([]session.Summary, error) {
	return e.store.List()
}

// ClearSession deletes a session. Unknown ids return
// session.ErrNotFound.
func (e *Engine) ClearSession(sessionID string) error {
	release := e.locks.acquire(sessionID)
	defer release()
	return e.store.Delete(sessionID)
}

func (e *Engine) result(sess *session.Session, response string) *TurnResult {
	return &TurnResult{
		SessionID: sess.ID,
		Title:     sess.Title,
		Response:  response,
		Document:  sess.Document,
		Markdown:  document.RenderMarkdown(sess.Document),
		Questions: sess.Questions.Pending(),
		Answered:  len(sess.Questions.Answered()),
		Total:     len(sess.Questions.Entries),
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
	}
}
