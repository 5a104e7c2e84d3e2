// Package tracker detects unsaved edits by comparing a live document against
// the snapshots taken at the last successful hydration or save.
package tracker

import (
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document/equal"
)

// Tracker holds the last-saved baseline of one document. It is not safe for
// concurrent use; callers serialize access per editing session.
type Tracker struct {
	schema *document.Schema

	saved    *document.Content
	steps    map[string]map[string]any
	settings document.TemplateSettings
}

func New(schema *document.Schema) *Tracker {
	return &Tracker{schema: schema}
}

// Initialize stores deep copies of the whole document, of every step
// projection and of the template settings. Calling it again re-baselines.
func (t *Tracker) Initialize(doc *document.Document, settings document.TemplateSettings) {
	content := doc.Content()
	t.saved = &content
	t.steps = make(map[string]map[string]any, len(t.schema.Steps()))
	for _, st := range t.schema.Steps() {
		t.steps[st.ID] = doc.Project(st.DataKeys)
	}
	t.settings = settings
}

// Initialized reports whether a baseline exists. Before that every dirty
// check answers false.
func (t *Tracker) Initialized() bool { return t.saved != nil }

// HasStepChanges reports whether the data of one step differs from its baseline.
func (t *Tracker) HasStepChanges(stepID string, doc *document.Document) bool {
	if t.saved == nil {
		return false
	}
	st, ok := t.schema.Step(stepID)
	if !ok {
		return false
	}
	return !equal.Equal(doc.Project(st.DataKeys), t.steps[stepID])
}

// HasTemplateChanges reports whether the template id or styles differ from the baseline.
func (t *Tracker) HasTemplateChanges(settings document.TemplateSettings) bool {
	if t.saved == nil {
		return false
	}
	return settings.TemplateID != t.settings.TemplateID || !equal.Equal(settings.Styles, t.settings.Styles)
}

// HasAnyChanges compares the whole document, not just the steps, so edits
// made on any step are caught.
func (t *Tracker) HasAnyChanges(doc *document.Document, settings document.TemplateSettings) bool {
	if t.saved == nil {
		return false
	}
	return !equal.Equal(doc.Content(), *t.saved) || t.HasTemplateChanges(settings)
}

// SaveLoad returns the payload to persist when leaving activeStep, or nil when
// neither that step nor the template changed. A non-nil payload always carries
// the whole content, not only the dirty step.
func (t *Tracker) SaveLoad(activeStep string, doc *document.Document, settings document.TemplateSettings) *document.SavePayload {
	if !t.HasStepChanges(activeStep, doc) && !t.HasTemplateChanges(settings) {
		return nil
	}
	return &document.SavePayload{Sections: doc.Content(), TemplateSettings: settings}
}

// MarkStepSaved re-baselines a single step projection.
func (t *Tracker) MarkStepSaved(stepID string, doc *document.Document) {
	if t.saved == nil {
		return
	}
	st, ok := t.schema.Step(stepID)
	if !ok {
		return
	}
	t.steps[stepID] = doc.Project(st.DataKeys)
}

// MarkAllSaved re-baselines everything after a successful save.
func (t *Tracker) MarkAllSaved(doc *document.Document, settings document.TemplateSettings) {
	t.Initialize(doc, settings)
}

// DirtySteps lists, in wizard order, the steps whose data differs from the baseline.
func (t *Tracker) DirtySteps(doc *document.Document) []string {
	out := []string{}
	for _, st := range t.schema.Steps() {
		if t.HasStepChanges(st.ID, doc) {
			out = append(out, st.ID)
		}
	}
	return out
}
