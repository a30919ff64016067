// Package ledger implements the per-session record of clarifying questions.
//
// The ledger is the single source of truth for what is still unknown about
// a feature. Every question carries a status; transitions out of "pending"
// are terminal — an answered or disregarded question never reopens and is
// never shown to the user again.
//
// Design principles (shared with the rest of the pipeline):
// - SRP: question types, normalization, and topic matching in separate files
// - invariant violations caused by oracle non-determinism are no-ops, not errors
package ledger

import (
	"fmt"
	"strings"
)

// --- Question status enum ---

// Status tracks the lifecycle of a clarifying question.
type Status string

const (
	StatusPending     Status = "pending"
	StatusAnswered    Status = "answered"
	StatusDisregarded Status = "disregarded"
)

// validStatuses is the set of allowed question statuses.
var validStatuses = map[Status]bool{
	StatusPending:     true,
	StatusAnswered:    true,
	StatusDisregarded: true,
}

// ValidateStatus returns an error if the status is not recognized.
func ValidateStatus(s Status) error {
	if !validStatuses[s] {
		return fmt.Errorf("invalid question status %q: must be one of: pending, answered, disregarded", s)
	}
	return nil
}

// Terminal reports whether a status can no longer change.
func (s Status) Terminal() bool {
	return s == StatusAnswered || s == StatusDisregarded
}

// --- Priority enum ---

// Priority orders pending questions when they are presented to the user.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// priorityRank maps priorities to sort order (lower sorts first).
var priorityRank = map[Priority]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
}

// Rank returns the sort position for a priority. Unknown priorities
// sort after all known ones.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

// --- Core data structures ---

// Question is a single ledger entry.
type Question struct {
	Text        string   `json:"question"`
	Status      Status   `json:"status"`
	Answer      string   `json:"answer,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	FeatureType string   `json:"feature_type,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// Ledger is the ordered set of clarifying questions for one session.
// It is owned exclusively by its session and is not safe for concurrent
// use — callers serialize access per session.
type Ledger struct {
	Entries []Question `json:"entries"`
}

// Judgment is the outcome of reconciling one question against a user message.
type Judgment struct {
	Question string // question text as it appears in the ledger
	Status   Status // answered, disregarded, or pending (no change)
	Answer   string // required when Status is answered
}

// --- Mutations ---

// AddQuestions appends questions that are not already covered by the ledger.
// A candidate is dropped when an existing entry (any status) matches it by
// normalized text or shares a topic family with it. Empty candidates are
// ignored. Returns the entries actually added.
func (l *Ledger) AddQuestions(texts []string, priority Priority, featureType string) []Question {
	var added []Question
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if l.Covers(text) {
			continue
		}
		q := Question{
			Text:        text,
			Status:      StatusPending,
			Priority:    priority,
			FeatureType: featureType,
			CreatedAt:   timeNow().UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
		l.Entries = append(l.Entries, q)
		added = append(added, q)
	}
	return added
}

// ApplyJudgment transitions a pending entry to a terminal status.
//
// Applying a judgment to a non-pending entry, to an unknown question, or
// with a pending/invalid status is a silent no-op: the classification
// oracle re-judges the whole pending set every turn, so redundant or stale
// judgments are expected. Returns true when the ledger changed.
func (l *Ledger) ApplyJudgment(j Judgment) bool {
	if !j.Status.Terminal() {
		return false
	}
	if j.Status == StatusAnswered && strings.TrimSpace(j.Answer) == "" {
		return false
	}

	idx := l.find(j.Question)
	if idx < 0 {
		return false
	}
	if l.Entries[idx].Status != StatusPending {
		return false
	}

	l.Entries[idx].Status = j.Status
	if j.Status == StatusAnswered {
		l.Entries[idx].Answer = strings.TrimSpace(j.Answer)
	} else {
		l.Entries[idx].Answer = ""
	}
	return true
}

// --- Queries ---

// Pending returns the open questions ordered by priority (critical first),
// stable within each priority band.
func (l *Ledger) Pending() []Question {
	var pending []Question
	for _, q := range l.Entries {
		if q.Status == StatusPending {
			pending = append(pending, q)
		}
	}
	// Insertion sort keeps the band order stable without pulling in sort.SliceStable.
	for i := 1; i < len(pending); i++ {
		for j := i; j > 0 && pending[j].Priority.Rank() < pending[j-1].Priority.Rank(); j-- {
			pending[j], pending[j-1] = pending[j-1], pending[j]
		}
	}
	return pending
}

// Answered returns entries the user has answered, in insertion order.
func (l *Ledger) Answered() []Question {
	return l.byStatus(StatusAnswered)
}

// Disregarded returns entries the user has declined, in insertion order.
func (l *Ledger) Disregarded() []Question {
	return l.byStatus(StatusDisregarded)
}

// Covers reports whether the ledger already contains an entry equivalent
// to the given question text, by normalized equality or topic overlap.
// This is the dedup invariant enforcement point: the drafting oracle may
// reissue semantically identical questions with different wording, and
// those must never produce a second entry.
func (l *Ledger) Covers(text string) bool {
	norm := Normalize(text)
	topics := ExtractTopics(text)
	for _, q := range l.Entries {
		if Normalize(q.Text) == norm {
			return true
		}
		if topics.Intersects(ExtractTopics(q.Text)) {
			return true
		}
	}
	return false
}

// find locates an entry by exact or normalized text match.
func (l *Ledger) find(text string) int {
	for i, q := range l.Entries {
		if q.Text == text {
			return i
		}
	}
	norm := Normalize(text)
	for i, q := range l.Entries {
		if Normalize(q.Text) == norm {
			return i
		}
	}
	return -1
}

// byStatus filters entries by status, preserving order.
func (l *Ledger) byStatus(s Status) []Question {
	var out []Question
	for _, q := range l.Entries {
		if q.Status == s {
			out = append(out, q)
		}
	}
	return out
}
