package ledger

import (
	"testing"
	"time"
)

func init() {
	// Freeze time for deterministic tests.
	timeNow = func() time.Time {
		return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	}
}

// --- AddQuestions ---

func TestAddQuestions_NewEntriesArePending(t *testing.T) {
	var l Ledger
	added := l.AddQuestions([]string{
		"What payment methods should be supported?",
		"Do you need invoice generation?",
	}, PriorityMedium, "payment")

	if len(added) != 2 {
		t.Fatalf("added %d questions, want 2", len(added))
	}
	for _, q := range l.Entries {
		if q.Status != StatusPending {
			t.Errorf("question %q status = %s, want pending", q.Text, q.Status)
		}
	}
}

func TestAddQuestions_SkipsEmptyAndWhitespace(t *testing.T) {
	var l Ledger
	added := l.AddQuestions([]string{"", "   ", "Who are the primary users?"}, PriorityMedium, "general")
	if len(added) != 1 {
		t.Fatalf("added %d questions, want 1", len(added))
	}
}

func TestAddQuestions_DedupByNormalizedText(t *testing.T) {
	var l Ledger
	l.AddQuestions([]string{"Do you need audit trails?"}, PriorityMedium, "crud")
	added := l.AddQuestions([]string{"  do you need AUDIT trails ? "}, PriorityMedium, "crud")
	if len(added) != 0 {
		t.Errorf("normalized duplicate was added: %v", added)
	}
	if len(l.Entries) != 1 {
		t.Errorf("ledger has %d entries, want 1", len(l.Entries))
	}
}

func TestAddQuestions_DedupByTopicFamily(t *testing.T) {
	var l Ledger
	l.AddQuestions([]string{
		"Will there be any additional authentication factors required, like two-factor authentication?",
	}, PriorityCritical, "authentication")

	// Different wording, same topic family (2fa).
	added := l.AddQuestions([]string{"Do you want 2FA via SMS or an authenticator app?"}, PriorityCritical, "authentication")
	if len(added) != 0 {
		t.Errorf("topic-equivalent duplicate was added: %v", added)
	}
}

func TestAddQuestions_DedupAgainstTerminalEntries(t *testing.T) {
	var l Ledger
	l.AddQuestions([]string{"Should users receive a temporary link to reset a forgotten password?"}, PriorityHigh, "authentication")
	l.ApplyJudgment(Judgment{
		Question: "Should users receive a temporary link to reset a forgotten password?",
		Status:   StatusDisregarded,
	})

	added := l.AddQuestions([]string{"How should password recovery work?"}, PriorityHigh, "authentication")
	if len(added) != 0 {
		t.Error("disregarded topic resurfaced as a new question")
	}
}

// --- ApplyJudgment ---

func TestApplyJudgment_AnswersPendingQuestion(t *testing.T) {
	var l Ledger
	l.AddQuestions([]string{"What is the expected user load?"}, PriorityHigh, "general")

	changed := l.ApplyJudgment(Judgment{
		Question: "What is the expected user load?",
		Status:   StatusAnswered,
		Answer:   "around 10k concurrent users",
	})
	if !changed {
		t.Fatal("ApplyJudgment should report a change")
	}

	q := l.Entries[0]
	if q.Status != StatusAnswered {
		t.Errorf("status = %s, want answered", q.Status)
	}
	if q.Answer != "around 10k concurrent users" {
		t.Errorf("answer = %q", q.Answer)
	}
}

func TestApplyJudgment_AnsweredRequiresAnswerText(t *testing.T) {
	var l Ledger
	l.AddQuestions([]string{"What is the expected user load?"}, PriorityHigh, "general")

	changed := l.ApplyJudgment(Judgment{
		Question: "What is the expected user load?",
		Status:   StatusAnswered,
		Answer:   "   ",
	})
	if changed {
		t.Error("answered judgment without answer text should be a no-op")
	}
	if l.Entries[0].Status != StatusPending {
		t.Errorf("status = %s, want pending", l.Entries[0].Status)
	}
}

func TestApplyJudgment_TerminalStatusIsMonotonic(t *testing.T) {
	var l Ledger
	l.AddQuestions([]string{"Do you need role-based permissions?"}, PriorityHigh, "authentication")
	l.ApplyJudgment(Judgment{Question: "Do you need role-based permissions?", Status: StatusDisregarded})

	// A later, contradictory judgment must not flip the terminal status.
	changed := l.ApplyJudgment(Judgment{
		Question: "Do you need role-based permissions?",
		Status:   StatusAnswered,
		Answer:   "admins and editors",
	})
	if changed {
		t.Error("terminal entry was re-judged")
	}
	if l.Entries[0].Status != StatusDisregarded {
		t.Errorf("status = %s, want disregarded", l.Entries[0].Status)
	}
}

func TestApplyJudgment_UnknownQuestionIsNoOp(t *testing.T) {
	var l Ledger
	l.AddQuestions([]string{"Who approves workflow steps?"}, PriorityMedium, "workflow")

	changed := l.ApplyJudgment(Judgment{Question: "Something never asked", Status: StatusDisregarded})
	if changed {
		t.Error("judgment for an unknown question changed the ledger")
	}
}

func TestApplyJudgment_PendingStatusIsNoOp(t *testing.T) {
	var l Ledger
	l.AddQuestions([]string{"Who approves workflow steps?"}, PriorityMedium, "workflow")

	changed := l.ApplyJudgment(Judgment{Question: "Who approves workflow steps?", Status: StatusPending})
	if changed {
		t.Error("pending judgment should never mutate the ledger")
	}
}

func TestApplyJudgment_MatchesByNormalizedText(t *testing.T) {
	var l Ledger
	l.AddQuestions([]string{"Do you need delivery confirmation?"}, PriorityMedium, "notification")

	changed := l.ApplyJudgment(Judgment{
		Question: "do you need delivery   confirmation",
		Status:   StatusAnswered,
		Answer:   "yes, read receipts",
	})
	if !changed {
		t.Error("judgment with reworded-whitespace text should match the entry")
	}
}

// --- Pending ordering ---

func TestPending_OrdersByPriority(t *testing.T) {
	var l Ledger
	l.AddQuestions([]string{"Low priority cosmetic question?"}, PriorityLow, "ui")
	l.AddQuestions([]string{"What data retention rules apply?"}, PriorityCritical, "crud")
	l.AddQuestions([]string{"Which report formats do you need?"}, PriorityMedium, "reporting")

	pending := l.Pending()
	if len(pending) != 3 {
		t.Fatalf("pending = %d entries, want 3", len(pending))
	}
	if pending[0].Priority != PriorityCritical {
		t.Errorf("first pending priority = %s, want critical", pending[0].Priority)
	}
	if pending[2].Priority != PriorityLow {
		t.Errorf("last pending priority = %s, want low", pending[2].Priority)
	}
}

func TestPending_StableWithinBand(t *testing.T) {
	var l Ledger
	l.AddQuestions([]string{"First medium question about exports?"}, PriorityMedium, "reporting")
	l.AddQuestions([]string{"Second medium question about workflows?"}, PriorityMedium, "workflow")

	pending := l.Pending()
	if pending[0].Text != "First medium question about exports?" {
		t.Errorf("band order not stable: first = %q", pending[0].Text)
	}
}

func TestPending_NeverContainsNormalizedDuplicates(t *testing.T) {
	var l Ledger
	texts := []string{
		"What type of data will users create?",
		"what TYPE of data will users create",
		"What type of data will users create ?",
	}
	for _, text := range texts {
		l.AddQuestions([]string{text}, PriorityMedium, "crud")
	}

	seen := map[string]bool{}
	for _, q := range l.Pending() {
		norm := Normalize(q.Text)
		if seen[norm] {
			t.Fatalf("pending contains duplicate normalized text %q", norm)
		}
		seen[norm] = true
	}
}

// --- Queries ---

func TestStatusQueriesPartitionEntries(t *testing.T) {
	var l Ledger
	l.AddQuestions([]string{
		"Question one about invoices?",
		"Question two about dashboards?",
		"Question three about webhooks?",
	}, PriorityMedium, "general")

	l.ApplyJudgment(Judgment{Question: "Question one about invoices?", Status: StatusAnswered, Answer: "monthly"})
	l.ApplyJudgment(Judgment{Question: "Question two about dashboards?", Status: StatusDisregarded})

	if got := len(l.Answered()); got != 1 {
		t.Errorf("Answered = %d entries, want 1", got)
	}
	if got := len(l.Disregarded()); got != 1 {
		t.Errorf("Disregarded = %d entries, want 1", got)
	}
	if got := len(l.Pending()); got != 1 {
		t.Errorf("Pending = %d entries, want 1", got)
	}
}

func TestValidateStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusAnswered, StatusDisregarded} {
		if err := ValidateStatus(s); err != nil {
			t.Errorf("ValidateStatus(%s) = %v, want nil", s, err)
		}
	}
	if err := ValidateStatus(Status("bogus")); err == nil {
		t.Error("ValidateStatus(bogus) should fail")
	}
}
