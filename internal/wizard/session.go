// Package wizard drives one editing session: it owns the live document, its
// change tracker, optional-field registry and step navigator, and talks to the
// persistence gateway on load and on "save & continue".
package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document/completion"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document/navigator"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document/optional"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document/tracker"
	"github.com/md-rejoyan-islam/resume-builder-sub002/pkg/logger"
	"github.com/md-rejoyan-islam/resume-builder-sub002/pkg/metrics"
)

var (
	ErrUnknownStep = errors.New("unknown step")
	ErrNotLoaded   = errors.New("session has not been loaded")
)

var log = logger.Named("wizard")

// Outcome of a save & continue request.
type Outcome string

const (
	OutcomeSaved   Outcome = "saved"
	OutcomeSkipped Outcome = "skipped"
	OutcomeInvalid Outcome = "invalid"
)

// SaveResult reports what SaveAndContinue did. Violations is set only for
// OutcomeInvalid, in which case the step did not change.
type SaveResult struct {
	Outcome    Outcome              `json:"outcome"`
	Step       string               `json:"step"`
	Violations navigator.Violations `json:"violations,omitempty"`
}

// State is a read-only view of a session for the presentation layer.
type State struct {
	DocumentID       string                    `json:"documentId"`
	Kind             document.Kind             `json:"kind"`
	Step             string                    `json:"step"`
	Steps            []string                  `json:"steps"`
	Progress         int                       `json:"progress"`
	Completion       map[string]bool           `json:"completion"`
	DirtySteps       []string                  `json:"dirtySteps"`
	HasChanges       bool                      `json:"hasChanges"`
	TemplateChanged  bool                      `json:"templateChanged"`
	OptionalFields   []string                  `json:"optionalFields"`
	Sections         document.Content          `json:"sections"`
	TemplateSettings document.TemplateSettings `json:"templateSettings"`
}

// Session is not safe for concurrent use; Manager serializes access.
type Session struct {
	documentID string
	schema     *document.Schema

	doc      *document.Document
	settings document.TemplateSettings
	step     string

	tracker  *tracker.Tracker
	optional *optional.Registry
	nav      *navigator.Navigator
}

// NewSession prepares an empty session for the document id. Call Load before
// trusting any dirty flag.
func NewSession(schema *document.Schema, documentID string) *Session {
	nav := navigator.New(schema)
	return &Session{
		documentID: documentID,
		schema:     schema,
		doc:        document.New(schema),
		settings:   schema.DefaultSettings(),
		step:       nav.First(),
		tracker:    tracker.New(schema),
		optional:   optional.New(schema),
		nav:        nav,
	}
}

// Load fetches the document, hydrates it with per-field defaults, reveals the
// optional fields that hold values and takes the saved baseline.
func (s *Session) Load(ctx context.Context, gw document.Gateway) error {
	snap, err := gw.Fetch(ctx, s.documentID)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", s.documentID, err)
	}
	return s.hydrate(snap)
}

func (s *Session) hydrate(snap *document.Snapshot) error {
	doc, settings, err := document.Hydrate(s.schema, snap)
	if err != nil {
		return err
	}
	s.doc = doc
	s.settings = settings
	s.optional = optional.New(s.schema)
	s.optional.Sync(doc)
	s.tracker.Initialize(doc, settings)
	s.step = s.nav.First()
	log.Debugf("loaded %s (%s), progress %d%%", s.documentID, s.schema.Kind(), completion.Progress(doc))
	return nil
}

func (s *Session) DocumentID() string                          { return s.documentID }
func (s *Session) Kind() document.Kind                         { return s.schema.Kind() }
func (s *Session) Document() *document.Document                { return s.doc }
func (s *Session) Optional() *optional.Registry                { return s.optional }
func (s *Session) Step() string                                { return s.step }
func (s *Session) TemplateSettings() document.TemplateSettings { return s.settings }

// SetTemplate replaces the selected template and style settings.
func (s *Session) SetTemplate(settings document.TemplateSettings) {
	s.settings = settings
}

// GoTo jumps to any step; steps are never locked.
func (s *Session) GoTo(step string) error {
	if !s.nav.Has(step) {
		return fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}
	s.step = step
	return nil
}

func (s *Session) Next() string {
	s.step = s.nav.Next(s.step)
	return s.step
}

func (s *Session) Previous() string {
	s.step = s.nav.Previous(s.step)
	return s.step
}

// stepValues returns the record edited by the active step, nil for non-form steps.
func (s *Session) stepValues() document.Record {
	st, _ := s.schema.Step(s.step)
	if st.Kind != document.StepForm {
		return nil
	}
	return s.doc.Record(st.Section)
}

// SaveAndContinue validates the active step, persists the document if the
// step or template changed and advances to the next step. A gateway error is
// returned as is and leaves the baseline untouched so the edits stay dirty.
func (s *Session) SaveAndContinue(ctx context.Context, gw document.Gateway) (SaveResult, error) {
	kind := string(s.schema.Kind())
	if !s.tracker.Initialized() {
		return SaveResult{}, ErrNotLoaded
	}

	if v := s.nav.Violations(s.step, s.stepValues()); !v.Empty() {
		metrics.WizardSaves.WithLabelValues(kind, string(OutcomeInvalid)).Inc()
		return SaveResult{Outcome: OutcomeInvalid, Step: s.step, Violations: v}, nil
	}

	payload := s.tracker.SaveLoad(s.step, s.doc, s.settings)
	if payload == nil {
		s.tracker.MarkStepSaved(s.step, s.doc)
		metrics.WizardSaves.WithLabelValues(kind, string(OutcomeSkipped)).Inc()
		return SaveResult{Outcome: OutcomeSkipped, Step: s.Next()}, nil
	}

	if err := gw.Save(ctx, s.documentID, payload); err != nil {
		metrics.WizardSaves.WithLabelValues(kind, "failed").Inc()
		log.Warnf("save %s at step %s failed: %v", s.documentID, s.step, err)
		return SaveResult{}, fmt.Errorf("save %s: %w", s.documentID, err)
	}
	s.tracker.MarkAllSaved(s.doc, s.settings)
	metrics.WizardSaves.WithLabelValues(kind, string(OutcomeSaved)).Inc()
	log.Infof("saved %s at step %s", s.documentID, s.step)
	return SaveResult{Outcome: OutcomeSaved, Step: s.Next()}, nil
}

// State summarizes the session.
func (s *Session) State() State {
	return State{
		DocumentID:       s.documentID,
		Kind:             s.schema.Kind(),
		Step:             s.step,
		Steps:            s.nav.Steps(),
		Progress:         completion.Progress(s.doc),
		Completion:       completion.Breakdown(s.doc),
		DirtySteps:       s.tracker.DirtySteps(s.doc),
		HasChanges:       s.tracker.HasAnyChanges(s.doc, s.settings),
		TemplateChanged:  s.tracker.HasTemplateChanges(s.settings),
		OptionalFields:   s.optional.Fields(),
		Sections:         s.doc.Content(),
		TemplateSettings: s.settings,
	}
}
