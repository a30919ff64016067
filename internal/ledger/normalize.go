package ledger

import "strings"

// Normalize produces the canonical comparison form of a question:
// lowercase, whitespace collapsed, trailing punctuation stripped.
// Two questions with equal normalized text are the same ledger entry.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimRight(s, "?!. ")
	return s
}

// --- Topic families ---
//
// Normalized equality misses semantically equivalent rewordings, which the
// drafting oracle produces routinely ("Do you need 2FA?" vs "Will there be
// additional authentication factors?"). Topic families catch the common
// cases with keyword matching: two questions sharing any family are treated
// as duplicates. The families mirror the clarification domains the drafter
// actually asks about.

// TopicSet is the set of topic families detected in a question.
type TopicSet map[string]bool

// Intersects reports whether two topic sets share any family.
func (t TopicSet) Intersects(other TopicSet) bool {
	for topic := range t {
		if other[topic] {
			return true
		}
	}
	return false
}

// topicFamilies maps each family to the phrases that signal it.
// Keep phrases lowercase; matching is substring-based on normalized text.
var topicFamilies = map[string][]string{
	"2fa": {
		"2fa", "two factor", "two-factor", "additional authentication",
		"authentication factor", "biometric",
	},
	"password_reset": {
		"password reset", "reset password", "forgotten password",
		"forgot password", "password recovery", "temporary link",
	},
	"registration": {
		"register", "registration", "sign up", "account creation", "new account",
	},
	"password_complexity": {
		"password complexity", "password rules", "password requirements",
		"password strength", "minimum length", "special characters",
		"uppercase", "lowercase",
	},
	"lockout": {
		"wrong password", "incorrect password", "failed attempts",
		"lock account", "lockout", "brute force", "rate limit",
	},
	"security": {
		"security measures", "security requirements", "security considerations",
		"encryption", "compliance", "gdpr",
	},
	"email": {
		"email verification", "email link", "email code", "verification email",
	},
	"roles": {
		"user roles", "permission levels", "role or permission", "admin access",
	},
	"sessions": {
		"stay logged in", "session duration", "remember me", "browser sessions",
	},
	"payments": {
		"payment method", "billing", "subscription", "invoice", "refund",
	},
	"notifications": {
		"notification preference", "push notification", "email notification",
		"sms notification",
	},
	"export": {
		"export format", "download report", "pdf export", "excel",
	},
}

// ExtractTopics returns the topic families a question touches.
func ExtractTopics(text string) TopicSet {
	norm := Normalize(text)
	topics := make(TopicSet)
	for family, phrases := range topicFamilies {
		for _, phrase := range phrases {
			if strings.Contains(norm, phrase) {
				topics[family] = true
				break
			}
		}
	}
	return topics
}
