// Package optional tracks which optional record fields the user has revealed.
package optional

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
)

var ErrUnknownField = errors.New("not an optional field")

// Registry is the set of revealed optional fields of one document.
type Registry struct {
	pool    map[string]string
	visible map[string]bool
}

func New(schema *document.Schema) *Registry {
	return &Registry{pool: schema.OptionalFields(), visible: make(map[string]bool)}
}

// Add reveals a field. Adding a visible field is a no-op.
func (r *Registry) Add(field string) error {
	if _, ok := r.pool[field]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	r.visible[field] = true
	return nil
}

// Remove hides a field and clears its value in doc, so revealing it again
// starts from a blank value.
func (r *Registry) Remove(field string, doc *document.Document) error {
	section, ok := r.pool[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	delete(r.visible, field)
	return doc.SetField(section, field, "")
}

func (r *Registry) Visible(field string) bool { return r.visible[field] }

// Fields returns the revealed fields, sorted.
func (r *Registry) Fields() []string {
	out := make([]string, 0, len(r.visible))
	for f := range r.visible {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Available returns the optional fields that are still hidden, sorted.
func (r *Registry) Available() []string {
	out := make([]string, 0, len(r.pool))
	for f := range r.pool {
		if !r.visible[f] {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

// Sync reveals every optional field that already holds a value in doc. It is
// run after hydration so previously filled fields stay visible.
func (r *Registry) Sync(doc *document.Document) {
	for field, section := range r.pool {
		if strings.TrimSpace(doc.Record(section)[field]) != "" {
			r.visible[field] = true
		}
	}
}
