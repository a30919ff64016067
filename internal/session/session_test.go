package session

import (
	"testing"
	"time"

	"github.com/HendryAvila/clario/internal/ledger"
)

func init() {
	frozen := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return frozen }
}

func TestNew_Defaults(t *testing.T) {
	s := New("abc")

	if s.ID != "abc" {
		t.Errorf("ID = %q", s.ID)
	}
	if s.Title != "Untitled Feature" {
		t.Errorf("Title = %q, want placeholder", s.Title)
	}
	if s.CreatedAt != s.UpdatedAt {
		t.Errorf("CreatedAt = %q, UpdatedAt = %q, want equal on creation", s.CreatedAt, s.UpdatedAt)
	}
	if s.CreatedAt != "2026-03-14T10:00:00Z" {
		t.Errorf("CreatedAt = %q", s.CreatedAt)
	}
}

func TestAppendNarrative_CapsHistory(t *testing.T) {
	s := New("abc")
	for i := 0; i < MaxNarrativeLength+5; i++ {
		s.AppendNarrative("user", "message")
	}
	if len(s.Narrative) != MaxNarrativeLength {
		t.Errorf("narrative length = %d, want %d", len(s.Narrative), MaxNarrativeLength)
	}
}

func TestAppendNarrative_PrefixesRole(t *testing.T) {
	s := New("abc")
	s.AppendNarrative("user", "  add a login feature  ")
	if s.Narrative[0] != "user: add a login feature" {
		t.Errorf("narrative[0] = %q", s.Narrative[0])
	}
}

func TestSetTitle_IgnoresBlank(t *testing.T) {
	s := New("abc")
	s.SetTitle("User Login")
	s.SetTitle("   ")
	if s.Title != "User Login" {
		t.Errorf("Title = %q, want %q", s.Title, "User Login")
	}
}

func TestSummarize(t *testing.T) {
	s := New("abc")
	s.SetTitle("User Login")
	s.Questions.AddQuestions([]string{
		"Do you need two-factor authentication?",
		"What are the password complexity rules?",
	}, ledger.PriorityHigh, "authentication")
	s.Questions.ApplyJudgment(ledger.Judgment{
		Question: "Do you need two-factor authentication?",
		Status:   ledger.StatusAnswered,
		Answer:   "SMS",
	})

	sm := Summarize(s)
	if sm.Answered != 1 || sm.Total != 2 {
		t.Errorf("Answered/Total = %d/%d, want 1/2", sm.Answered, sm.Total)
	}
	if sm.Title != "User Login" {
		t.Errorf("Title = %q", sm.Title)
	}
}
