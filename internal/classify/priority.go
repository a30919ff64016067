package classify

import (
	"strings"

	"github.com/HendryAvila/clario/internal/ledger"
)

// Prioritize assigns a priority to a clarifying question based on what it
// asks about and which feature type it belongs to. Security and data-scope
// questions outrank cosmetic ones; the feature type nudges questions that
// are central to that type upward.
func Prioritize(question string, ft FeatureType) ledger.Priority {
	lower := strings.ToLower(question)

	score := 0.0
	for kw, w := range priorityKeywords {
		if strings.Contains(lower, kw) {
			score += w
		}
	}
	for _, kw := range typeCriticalTopics[ft] {
		if strings.Contains(lower, kw) {
			score += 2.0
		}
	}

	switch {
	case score >= 4.0:
		return ledger.PriorityCritical
	case score >= 2.0:
		return ledger.PriorityHigh
	case score >= 1.0:
		return ledger.PriorityMedium
	default:
		return ledger.PriorityLow
	}
}

// priorityKeywords weight the kind of uncertainty a question resolves.
// Security, money, and data-loss questions block implementation; look
// and feel rarely does.
var priorityKeywords = map[string]float64{
	"security":      2.0,
	"password":      2.0,
	"authentication": 2.0,
	"permission":    2.0,
	"access":        1.5,
	"payment":       2.0,
	"refund":        2.0,
	"currency":      1.5,
	"delete":        1.5,
	"data":          1.0,
	"required":      1.5,
	"validation":    1.0,
	"error":         1.0,
	"fail":          1.5,
	"compliance":    2.0,
	"privacy":       2.0,
	"who":           1.0,
	"which fields":  1.5,
	"integration":   1.0,
	"external":      1.0,
	"format":        0.5,
	"color":         0.0,
	"layout":        0.5,
	"style":         0.5,
}

// typeCriticalTopics marks question topics that are load-bearing for a
// given feature type even when their keywords are otherwise mild.
var typeCriticalTopics = map[FeatureType][]string{
	TypeAuthentication: {"two-factor", "2fa", "lockout", "reset", "session"},
	TypePayment:        {"provider", "recurring", "checkout"},
	TypeIntegration:    {"unavailable", "sync", "oauth", "api key"},
	TypeWorkflow:       {"approval", "escalation", "transition"},
	TypeNotification:   {"channel", "opt out", "trigger"},
	TypeCRUD:           {"audit", "soft", "permanent"},
	TypeReporting:      {"access", "export"},
	TypeSearch:         {"fields", "fuzzy"},
}
