package oracle

import (
	"regexp"
	"strconv"
	"strings"
)

// ─── Section Extraction ───

var sectionRes = map[string]*regexp.Regexp{}

func init() {
	for _, name := range []string{"CONTEXT", "SECURITY", "QUESTIONS"} {
		sectionRes[name] = regexp.MustCompile(`(?s)` + name + `:\s*\n(.*?)(\n[A-Z][A-Z _]*:|$)`)
	}
}

// extractSection pulls the body of a "NAME:" block out of an oracle
// response. The block runs until the next all-caps section header or the
// end of the text.
func extractSection(text, name string) (string, bool) {
	re, ok := sectionRes[name]
	if !ok {
		return "", false
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// parseKeyValues decodes "key: value" lines. Values keep everything
// after the first colon, so reasoning strings may themselves contain
// colons.
func parseKeyValues(section string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(section, "\n") {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSuffix(strings.TrimSpace(v), ";")
	}
	return out
}

// ─── Relevance Formats ───

// ParseContext decodes a contextual-relevance response:
//
//	CONTEXT:
//	is_contextually_relevant: true
//	reasoning: directly answers the 2FA question
func ParseContext(text string) (ContextJudgment, error) {
	section, ok := extractSection(text, "CONTEXT")
	if !ok {
		return ContextJudgment{}, &FormatError{Section: "CONTEXT", Raw: text}
	}
	kv := parseKeyValues(section)
	return ContextJudgment{
		Relevant:  strings.EqualFold(kv["is_contextually_relevant"], "true"),
		Reasoning: kv["reasoning"],
	}, nil
}

// ParseSecurity decodes a product-relevance response:
//
//	SECURITY:
//	is_feature_request: false
//	confidence: 0.95
//	reasoning: asks about the weather, not software
func ParseSecurity(text string) (ProductJudgment, error) {
	section, ok := extractSection(text, "SECURITY")
	if !ok {
		return ProductJudgment{}, &FormatError{Section: "SECURITY", Raw: text}
	}
	kv := parseKeyValues(section)

	confidence := 1.0
	if c, err := strconv.ParseFloat(kv["confidence"], 64); err == nil {
		confidence = c
	}
	return ProductJudgment{
		IsFeatureRequest: strings.EqualFold(kv["is_feature_request"], "true"),
		Confidence:       confidence,
		Reasoning:        kv["reasoning"],
	}, nil
}

// ─── Question Judgments ───

// ParseQuestionJudgments decodes the reconciliation response:
//
//	QUESTIONS:
//	- question: "Do you need two-factor authentication?"
//	  status: "answered"
//	  user_answer: "SMS"
//	- question: "What are the password rules?"
//	  status: "pending"
//	  user_answer: null
func ParseQuestionJudgments(text string) ([]QuestionJudgment, error) {
	section, ok := extractSection(text, "QUESTIONS")
	if !ok {
		return nil, &FormatError{Section: "QUESTIONS", Raw: text}
	}

	var (
		out     []QuestionJudgment
		current *QuestionJudgment
	)
	flush := func() {
		if current != nil && current.Question != "" {
			out = append(out, *current)
		}
		current = nil
	}

	for _, raw := range strings.Split(section, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "- question:"):
			flush()
			current = &QuestionJudgment{
				Question: unquote(strings.TrimPrefix(line, "- question:")),
				Status:   "pending",
			}
		case strings.HasPrefix(line, "status:") && current != nil:
			current.Status = strings.ToLower(unquote(strings.TrimPrefix(line, "status:")))
		case strings.HasPrefix(line, "user_answer:") && current != nil:
			v := unquote(strings.TrimPrefix(line, "user_answer:"))
			if !strings.EqualFold(v, "null") {
				current.Answer = v
			}
		}
	}
	flush()
	return out, nil
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}

// ─── Drafter Format ───

var (
	responseRe = regexp.MustCompile(`(?s)RESPONSE:\s*(.*?)(?:PENDING QUESTIONS:|MARKDOWN:)`)
	pendingRe  = regexp.MustCompile(`(?s)PENDING QUESTIONS:\s*(.*?)MARKDOWN:`)
	markdownRe = regexp.MustCompile(`(?s)MARKDOWN:\s*(.*)$`)
)

// ParseDraft decodes the drafting oracle's three-part layout. RESPONSE
// and MARKDOWN are mandatory; when PENDING QUESTIONS is absent the
// questions are salvaged from the response text itself.
func ParseDraft(text string) (Draft, error) {
	text = strings.TrimSpace(text)

	rm := responseRe.FindStringSubmatch(text)
	if rm == nil {
		return Draft{}, &FormatError{Section: "RESPONSE", Raw: text}
	}
	mm := markdownRe.FindStringSubmatch(text)
	if mm == nil {
		return Draft{}, &FormatError{Section: "MARKDOWN", Raw: text}
	}

	d := Draft{
		Response: strings.TrimSpace(rm[1]),
		Markdown: strings.TrimSpace(mm[1]),
	}
	if pm := pendingRe.FindStringSubmatch(text); pm != nil {
		d.Questions = parseQuestionList(pm[1])
	}
	if len(d.Questions) == 0 {
		d.Questions = salvageQuestions(d.Response)
	}
	return d, nil
}

func parseQuestionList(body string) []string {
	var out []string
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		line = strings.TrimSpace(strings.TrimLeft(line, "-*"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// salvageQuestions pulls question sentences out of free text when the
// drafter skipped its PENDING QUESTIONS section. Very short fragments
// are discarded.
func salvageQuestions(response string) []string {
	var out []string
	for _, part := range strings.Split(response, "?") {
		q := strings.TrimSpace(part)
		if len(q) > 10 {
			if i := strings.LastIndexAny(q, ".!\n"); i >= 0 {
				q = strings.TrimSpace(q[i+1:])
			}
			if len(q) > 10 {
				out = append(out, q+"?")
			}
		}
	}
	return out
}
