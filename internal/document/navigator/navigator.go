// Package navigator walks the fixed step order of a document wizard and
// checks the required fields of form steps.
package navigator

import (
	"strings"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
)

// Violations maps a field name to a violation code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

const codeRequired = "required"

// Navigator is pure index arithmetic over a schema's steps. Every step is
// reachable at any time; validity only gates saving.
type Navigator struct {
	schema *document.Schema
	order  []string
	index  map[string]int
}

func New(schema *document.Schema) *Navigator {
	n := &Navigator{schema: schema, index: make(map[string]int)}
	for i, st := range schema.Steps() {
		n.order = append(n.order, st.ID)
		n.index[st.ID] = i
	}
	return n
}

// Steps returns the step ids in order.
func (n *Navigator) Steps() []string {
	return append([]string(nil), n.order...)
}

func (n *Navigator) First() string { return n.order[0] }

func (n *Navigator) Has(stepID string) bool {
	_, ok := n.index[stepID]
	return ok
}

// Next returns the step after current, or current itself on the last step
// or when current is unknown.
func (n *Navigator) Next(current string) string {
	i, ok := n.index[current]
	if !ok || i == len(n.order)-1 {
		return current
	}
	return n.order[i+1]
}

// Previous returns the step before current, or current itself on the first
// step or when current is unknown.
func (n *Navigator) Previous(current string) string {
	i, ok := n.index[current]
	if !ok || i == 0 {
		return current
	}
	return n.order[i-1]
}

// Violations lists the required fields of the step that are missing or blank
// in values. An unknown step yields a violation under the "step" key.
func (n *Navigator) Violations(stepID string, values document.Record) Violations {
	v := Violations{}
	st, ok := n.schema.Step(stepID)
	if !ok {
		v["step"] = "unknown"
		return v
	}
	for _, f := range st.Required {
		if strings.TrimSpace(values[f]) == "" {
			v[f] = codeRequired
		}
	}
	return v
}

// IsStepValid reports whether every required field of the step is present and non-blank.
func (n *Navigator) IsStepValid(stepID string, values document.Record) bool {
	return n.Violations(stepID, values).Empty()
}
