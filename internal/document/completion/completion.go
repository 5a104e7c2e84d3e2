// Package completion scores how far a document has been filled in. The
// results depend on the document content only.
package completion

import (
	"strings"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
)

// IsSectionComplete reports whether a section satisfies its completion rule:
// a record needs every required field non-blank, a collection needs at least
// one entry. Anything that is not a content section (the finalize step, the
// title overrides, unknown ids) is never complete.
func IsSectionComplete(sectionID string, doc *document.Document) bool {
	sec, ok := doc.Schema().Section(sectionID)
	if !ok {
		return false
	}
	switch sec.Kind {
	case document.SectionRecord:
		r := doc.Record(sectionID)
		for _, f := range sec.Required {
			if strings.TrimSpace(r[f]) == "" {
				return false
			}
		}
		return true
	case document.SectionCollection:
		return len(doc.Entries(sectionID)) > 0
	}
	return false
}

// Progress is round-half-up(100 * complete / trackable), or 0 when the schema
// has no trackable section.
func Progress(doc *document.Document) int {
	trackable := doc.Schema().Trackable()
	total := len(trackable)
	if total == 0 {
		return 0
	}
	done := 0
	for _, id := range trackable {
		if IsSectionComplete(id, doc) {
			done++
		}
	}
	return (200*done + total) / (2 * total)
}

// Breakdown returns the completion flag of every trackable section.
func Breakdown(doc *document.Document) map[string]bool {
	trackable := doc.Schema().Trackable()
	out := make(map[string]bool, len(trackable))
	for _, id := range trackable {
		out[id] = IsSectionComplete(id, doc)
	}
	return out
}
