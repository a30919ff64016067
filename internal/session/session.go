// Package session holds the per-feature conversation state and its
// persistence. A session accumulates the user's narrative, the question
// ledger, and the latest requirements document; the engine is the only
// writer and commits a session once per accepted turn.
package session

import (
	"strings"

	"github.com/HendryAvila/clario/internal/document"
	"github.com/HendryAvila/clario/internal/ledger"
)

// MaxNarrativeLength caps how many narrative lines a session keeps.
// Older lines fall off the front; the document already carries what
// they contributed.
const MaxNarrativeLength = 20

// Session is the full state of one clarification conversation.
type Session struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	FeatureType string            `json:"feature_type"`
	Narrative   []string          `json:"narrative"`
	Questions   ledger.Ledger     `json:"questions"`
	Document    document.Document `json:"document"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

// New returns an empty session with the given id and both timestamps
// set to now.
func New(id string) *Session {
	now := timeNow().UTC().Format("2006-01-02T15:04:05Z07:00")
	return &Session{
		ID:        id,
		Title:     "Untitled Feature",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps the updated timestamp.
func (s *Session) Touch() {
	s.UpdatedAt = timeNow().UTC().Format("2006-01-02T15:04:05Z07:00")
}

// AppendNarrative records one line of accepted conversation, evicting
// the oldest lines beyond MaxNarrativeLength.
func (s *Session) AppendNarrative(role, text string) {
	line := role + ": " + strings.TrimSpace(text)
	s.Narrative = append(s.Narrative, line)
	if over := len(s.Narrative) - MaxNarrativeLength; over > 0 {
		s.Narrative = s.Narrative[over:]
	}
}

// SetTitle updates the title unless the new one is blank.
func (s *Session) SetTitle(title string) {
	if t := strings.TrimSpace(title); t != "" {
		s.Title = t
	}
}

// Summary is the compact listing view of a session.
type Summary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Answered  int    `json:"answered"`
	Total     int    `json:"total"`
	UpdatedAt string `json:"updated_at"`
}

// Summarize reduces a session to its listing view.
func Summarize(s *Session) Summary {
	return Summary{
		ID:        s.ID,
		Title:     s.Title,
		Answered:  len(s.Questions.Answered()),
		Total:     len(s.Questions.Entries),
		UpdatedAt: s.UpdatedAt,
	}
}
