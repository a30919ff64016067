// Package document models the living requirements document a clarification
// session converges on, plus the markdown wire format the drafting oracle
// emits and the export tool renders.
package document

import "strings"

// WorkItem is a single backend or frontend change in the document.
type WorkItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Document is the structured requirements document for one feature.
// Every field may legitimately be empty early in a session; synthesis
// fills sections in as answers arrive.
type Document struct {
	FeatureName        string     `json:"feature_name,omitempty"`
	Description        string     `json:"description,omitempty"`
	AcceptanceCriteria []string   `json:"acceptance_criteria,omitempty"`
	BackendItems       []WorkItem `json:"backend_changes,omitempty"`
	FrontendItems      []WorkItem `json:"frontend_changes,omitempty"`
}

// Empty reports whether the document carries no content at all.
func (d Document) Empty() bool {
	return d.FeatureName == "" && d.Description == "" &&
		len(d.AcceptanceCriteria) == 0 &&
		len(d.BackendItems) == 0 && len(d.FrontendItems) == 0
}

// Merge overlays upd onto d: sections the update carries replace the
// existing ones, sections the update omits are kept. The oracle re-emits
// the whole document each turn, but a malformed or partial draft must
// never wipe out accumulated sections.
func Merge(d, upd Document) Document {
	out := d
	if upd.FeatureName != "" {
		out.FeatureName = upd.FeatureName
	}
	if upd.Description != "" {
		out.Description = upd.Description
	}
	if len(upd.AcceptanceCriteria) > 0 {
		out.AcceptanceCriteria = upd.AcceptanceCriteria
	}
	if len(upd.BackendItems) > 0 {
		out.BackendItems = upd.BackendItems
	}
	if len(upd.FrontendItems) > 0 {
		out.FrontendItems = upd.FrontendItems
	}
	return out
}

// Title returns the feature name, or a placeholder for unnamed features.
func (d Document) Title() string {
	if t := strings.TrimSpace(d.FeatureName); t != "" {
		return t
	}
	return "Untitled Feature"
}
