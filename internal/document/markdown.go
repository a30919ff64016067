package document

import (
	"fmt"
	"regexp"
	"strings"
)

// Section headers the drafting oracle must emit. Matching is
// case-insensitive and tolerant of trailing decoration.
const (
	headerDescription = "description"
	headerAcceptance  = "acceptance criteria"
	headerBackend     = "backend changes"
	headerFrontend    = "frontend changes"
)

var (
	titleRe  = regexp.MustCompile(`^#\s+(.+?)\s*$`)
	headerRe = regexp.MustCompile(`^##\s+(.+?)\s*$`)
	bulletRe = regexp.MustCompile(`^[-*]\s+(.*)$`)
	itemRe   = regexp.MustCompile(`^\*\*Title:\s*(.+?)\*\*\s*[-:–]?\s*(.*)$`)
)

// ParseMarkdown decodes the oracle's markdown draft into a Document.
// Unknown sections are ignored, missing sections stay empty; the parser
// never fails, a draft it cannot make sense of just parses to an empty
// document the caller can detect with Empty.
func ParseMarkdown(markdown string) Document {
	var doc Document
	section := ""
	var descLines []string

	for _, raw := range strings.Split(markdown, "\n") {
		line := strings.TrimSpace(raw)

		if m := titleRe.FindStringSubmatch(line); m != nil {
			if doc.FeatureName == "" {
				doc.FeatureName = strings.TrimSpace(m[1])
			}
			continue
		}
		if m := headerRe.FindStringSubmatch(line); m != nil {
			section = strings.ToLower(strings.TrimSpace(m[1]))
			continue
		}
		if line == "" {
			continue
		}

		switch section {
		case headerDescription:
			descLines = append(descLines, line)
		case headerAcceptance:
			if m := bulletRe.FindStringSubmatch(line); m != nil {
				if c := strings.TrimSpace(m[1]); c != "" {
					doc.AcceptanceCriteria = append(doc.AcceptanceCriteria, c)
				}
			}
		case headerBackend:
			if item, ok := parseItem(line); ok {
				doc.BackendItems = append(doc.BackendItems, item)
			}
		case headerFrontend:
			if item, ok := parseItem(line); ok {
				doc.FrontendItems = append(doc.FrontendItems, item)
			}
		}
	}

	doc.Description = strings.Join(descLines, " ")
	return doc
}

// parseItem decodes a work-item bullet. The canonical form is
// "- **Title: Add endpoint** - implement POST /login"; a plain bullet
// without the bold title becomes an item with the whole text as title.
func parseItem(line string) (WorkItem, bool) {
	m := bulletRe.FindStringSubmatch(line)
	if m == nil {
		return WorkItem{}, false
	}
	body := strings.TrimSpace(m[1])
	if body == "" {
		return WorkItem{}, false
	}
	if tm := itemRe.FindStringSubmatch(body); tm != nil {
		return WorkItem{
			Title:       strings.TrimSpace(tm[1]),
			Description: strings.TrimSpace(tm[2]),
		}, true
	}
	return WorkItem{Title: body}, true
}

// RenderMarkdown encodes a document back to the canonical markdown
// layout. Empty sections are omitted entirely.
func RenderMarkdown(d Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", d.Title())

	if d.Description != "" {
		fmt.Fprintf(&b, "\n## Description\n%s\n", d.Description)
	}
	if len(d.AcceptanceCriteria) > 0 {
		b.WriteString("\n## Acceptance Criteria\n")
		for _, c := range d.AcceptanceCriteria {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}
	renderItems(&b, "Backend Changes", d.BackendItems)
	renderItems(&b, "Frontend Changes", d.FrontendItems)

	return b.String()
}

func renderItems(b *strings.Builder, header string, items []WorkItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n", header)
	for _, it := range items {
		if it.Description != "" {
			fmt.Fprintf(b, "- **Title: %s** - %s\n", it.Title, it.Description)
		} else {
			fmt.Fprintf(b, "- %s\n", it.Title)
		}
	}
}
