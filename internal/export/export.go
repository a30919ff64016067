// Package export renders a finished (or in-progress) clarification
// session as a shareable markdown artifact.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/HendryAvila/clario/internal/document"
	"github.com/HendryAvila/clario/internal/session"
)

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// Filename builds a filesystem-safe markdown filename from the feature
// title and session id.
func Filename(title, sessionID string) string {
	slug := strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "untitled-feature"
	}
	short := sessionID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%s-%s.md", slug, short)
}

// Render produces the export document: the requirements markdown plus a
// clarifications appendix recording what was asked and how it was
// resolved. Questions still pending are listed so the reader knows the
// document's open edges.
func Render(sess *session.Session) string {
	var b strings.Builder
	b.WriteString(document.RenderMarkdown(sess.Document))

	answered := sess.Questions.Answered()
	disregarded := sess.Questions.Disregarded()
	pending := sess.Questions.Pending()
	if len(answered)+len(disregarded)+len(pending) == 0 {
		return b.String()
	}

	b.WriteString("\n## Clarifications\n")
	for _, q := range answered {
		fmt.Fprintf(&b, "- %s — %s\n", q.Text, q.Answer)
	}
	for _, q := range disregarded {
		fmt.Fprintf(&b, "- %s — not needed\n", q.Text)
	}
	if len(pending) > 0 {
		b.WriteString("\n### Open Questions\n")
		for _, q := range pending {
			fmt.Fprintf(&b, "- %s\n", q.Text)
		}
	}
	return b.String()
}

// Write renders the session and writes it under dir, creating the
// directory if needed. Returns the full path of the written file.
func Write(sess *session.Session, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: creating directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, Filename(sess.Title, sess.ID))
	if err := os.WriteFile(path, []byte(Render(sess)), 0o644); err != nil {
		return "", fmt.Errorf("export: writing %s: %w", path, err)
	}
	return path, nil
}
