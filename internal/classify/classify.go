// Package classify detects common software feature types and assigns
// priorities to clarifying questions.
//
// Classification is deliberately cheap and deterministic — keyword and
// pattern scoring, no oracle call. The result is only a hint: it biases
// which clarifying questions the drafting oracle proposes and how pending
// questions are ordered, never what the ledger records.
package classify

import (
	"regexp"
	"sort"
	"strings"
)

// FeatureType is one of the supported feature categories.
type FeatureType string

const (
	TypeAuthentication FeatureType = "authentication"
	TypeCRUD           FeatureType = "crud"
	TypeReporting      FeatureType = "reporting"
	TypeIntegration    FeatureType = "integration"
	TypeUI             FeatureType = "ui"
	TypeNotification   FeatureType = "notification"
	TypePayment        FeatureType = "payment"
	TypeSearch         FeatureType = "search"
	TypeWorkflow       FeatureType = "workflow"
	TypeGeneral        FeatureType = "general"
)

// Result holds the outcome of a classification.
type Result struct {
	Primary    FeatureType
	Confidence float64
	Scores     map[FeatureType]float64
	Keywords   []string
}

// pattern weights: a regexp hit is a much stronger signal than a bare keyword.
const (
	keywordScore  = 1.0
	patternScore  = 3.0
	baselineScore = 5.0
)

type typeProfile struct {
	keywords []string
	patterns []*regexp.Regexp
	weight   float64
}

var profiles = map[FeatureType]typeProfile{
	TypeAuthentication: {
		keywords: []string{
			"login", "logout", "sign in", "sign out", "register", "registration",
			"password", "two factor", "2fa", "authentication", "authorization",
			"jwt", "token", "credentials", "verify", "verification",
		},
		patterns: compile(
			`user.*(login|sign in|authentication)`,
			`(login|sign in).*system`,
			`password.*(reset|forgot|recovery)`,
			`two.?factor.*authentication`,
			`user.*(register|registration)`,
			`account.*(create|setup|management)`,
		),
		weight: 1.0,
	},
	TypeCRUD: {
		keywords: []string{
			"create", "read", "update", "delete", "add", "remove", "edit",
			"manage", "list", "view", "store", "save", "archive",
		},
		patterns: compile(
			`(create|add).*(user|item|record|data)`,
			`(edit|update|modify).*(user|item|record|data)`,
			`(delete|remove).*(user|item|record|data)`,
			`manage.*(user|item|record|data)`,
		),
		weight: 0.8,
	},
	TypeReporting: {
		keywords: []string{
			"dashboard", "report", "analytics", "chart", "graph", "statistics",
			"metrics", "kpi", "insights", "trends", "monitoring", "tracking",
		},
		patterns: compile(
			`dashboard.*(view|display|show)`,
			`report.*(generate|create|view|show)`,
			`analytics.*(dashboard|report)`,
			`data.*(visualization|insights)`,
		),
		weight: 0.9,
	},
	TypeIntegration: {
		keywords: []string{
			"api", "integration", "webhook", "third party", "external",
			"connect", "sync", "import", "export", "oauth", "rest", "graphql",
		},
		patterns: compile(
			`api.*(integration|connect)`,
			`third.?party.*(service|integration)`,
			`webhook.*(receive|send)`,
			`sync.*(data|information)`,
		),
		weight: 0.85,
	},
	TypeUI: {
		keywords: []string{
			"interface", "form", "button", "modal", "navigation", "menu",
			"layout", "design", "responsive", "mobile", "component", "widget",
		},
		patterns: compile(
			`user.*interface.*(design|layout)`,
			`form.*(input|submit|validation)`,
			`responsive.*(design|layout)`,
		),
		weight: 0.7,
	},
	TypeNotification: {
		keywords: []string{
			"notification", "email", "sms", "push", "alert", "reminder",
			"announcement", "broadcast", "subscribe", "unsubscribe",
		},
		patterns: compile(
			`email.*(notification|send|deliver)`,
			`sms.*(notification|send|deliver)`,
			`push.*(notification|alert)`,
			`alert.*(user|send|system)`,
		),
		weight: 0.8,
	},
	TypePayment: {
		keywords: []string{
			"payment", "billing", "subscription", "invoice", "charge",
			"credit card", "paypal", "stripe", "transaction", "checkout", "pricing",
		},
		patterns: compile(
			`payment.*(process|gateway|method)`,
			`billing.*(system|service)`,
			`subscription.*(manage|billing)`,
			`checkout.*(process|payment)`,
		),
		weight: 0.9,
	},
	TypeSearch: {
		keywords: []string{
			"search", "filter", "sort", "query", "find", "lookup",
			"browse", "keyword", "autocomplete", "full text",
		},
		patterns: compile(
			`search.*(functionality|feature)`,
			`filter.*(results|data)`,
			`full.?text.*search`,
		),
		weight: 0.8,
	},
	TypeWorkflow: {
		keywords: []string{
			"workflow", "process", "approval", "automation", "pipeline",
			"status", "transition", "stage", "task", "escalation",
		},
		patterns: compile(
			`workflow.*(process|automation)`,
			`approval.*(process|workflow)`,
			`business.*process.*(automation|workflow)`,
			`task.*(assignment|delegation)`,
		),
		weight: 0.85,
	},
	TypeGeneral: {
		keywords: []string{
			"simple", "basic", "file", "upload", "download", "contact",
			"system", "feature", "tool", "utility", "helper",
		},
		patterns: compile(
			`simple.*(system|feature|tool)`,
			`basic.*(form|system|feature)`,
			`file.*(upload|download)`,
			`contact.*form`,
		),
		weight: 0.5,
	},
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

// Classify scores a feature description against every type profile and
// returns the best match. Descriptions that match nothing fall back to
// "general" with zero confidence.
func Classify(description string) Result {
	lower := strings.ToLower(description)
	scores := make(map[FeatureType]float64)
	var keywords []string

	for ft, p := range profiles {
		score := 0.0
		for _, kw := range p.keywords {
			if strings.Contains(lower, kw) {
				score += keywordScore
				keywords = append(keywords, kw)
			}
		}
		for _, re := range p.patterns {
			if re.MatchString(lower) {
				score += patternScore
			}
		}
		score *= p.weight
		if score > 0 {
			scores[ft] = score
		}
	}

	if len(scores) == 0 {
		return Result{Primary: TypeGeneral, Scores: scores}
	}

	primary := TypeGeneral
	max := 0.0
	// Deterministic tie-break: iterate types in a fixed order.
	for _, ft := range orderedTypes() {
		if s, ok := scores[ft]; ok && s > max {
			primary = ft
			max = s
		}
	}

	confidence := max / baselineScore
	if confidence > 1.0 {
		confidence = 1.0
	}
	if max >= patternScore {
		confidence *= 1.5
		if confidence > 1.0 {
			confidence = 1.0
		}
	}

	sort.Strings(keywords)
	keywords = dedupStrings(keywords)

	return Result{
		Primary:    primary,
		Confidence: confidence,
		Scores:     scores,
		Keywords:   keywords,
	}
}

// ParseType coerces arbitrary input to a supported feature type,
// defaulting to general.
func ParseType(s string) FeatureType {
	ft := FeatureType(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range orderedTypes() {
		if ft == valid {
			return ft
		}
	}
	return TypeGeneral
}

func orderedTypes() []FeatureType {
	return []FeatureType{
		TypeAuthentication, TypePayment, TypeReporting, TypeIntegration,
		TypeWorkflow, TypeNotification, TypeSearch, TypeCRUD, TypeUI, TypeGeneral,
	}
}

func dedupStrings(in []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
