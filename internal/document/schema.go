package document

import (
	"fmt"
	"slices"
)

// SectionKind distinguishes single-record sections from repeatable collections.
type SectionKind int

const (
	SectionRecord SectionKind = iota
	SectionCollection
)

func (k SectionKind) String() string {
	switch k {
	case SectionRecord:
		return "record"
	case SectionCollection:
		return "collection"
	}
	return "unknown"
}

// SectionDef declares one content section.
//
// For record sections Fields is the exact key set of the record, Required the
// subset that must be non-empty for the section to count as complete and
// Optional the fields hidden until the user reveals them. For collection
// sections Fields is the key set of every entry.
type SectionDef struct {
	ID       string
	Title    string
	Kind     SectionKind
	Fields   []string
	Required []string
	Optional []string
}

// StepKind tells what a wizard step edits.
type StepKind int

const (
	StepForm StepKind = iota
	StepCollection
	StepFinalize
)

func (k StepKind) String() string {
	switch k {
	case StepForm:
		return "form"
	case StepCollection:
		return "collection"
	case StepFinalize:
		return "finalize"
	}
	return "unknown"
}

// StepDef declares one wizard step. DataKeys lists the sections (or TitlesKey)
// whose data belongs to the step for change detection.
type StepDef struct {
	ID       string
	Title    string
	Kind     StepKind
	Section  string
	Required []string
	DataKeys []string
}

// Schema describes one document kind. Build it with NewSchema or MustSchema.
type Schema struct {
	kind     Kind
	sections []SectionDef
	steps    []StepDef
	defaults TemplateSettings

	sectionIndex map[string]int
	stepIndex    map[string]int
	optional     map[string]string
}

// NewSchema validates the declarations and returns the schema. Every step data
// key must name a declared section or TitlesKey, so an unknown projection is
// caught here rather than when comparing snapshots.
func NewSchema(kind Kind, sections []SectionDef, steps []StepDef, defaults TemplateSettings) (*Schema, error) {
	s := &Schema{
		kind:         kind,
		sections:     sections,
		steps:        steps,
		defaults:     defaults,
		sectionIndex: make(map[string]int, len(sections)),
		stepIndex:    make(map[string]int, len(steps)),
		optional:     make(map[string]string),
	}
	if kind == "" {
		return nil, fmt.Errorf("schema: %w", ErrUnknownKind)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("schema %s: no steps declared", kind)
	}

	for i, sec := range sections {
		if sec.ID == "" || sec.ID == TitlesKey {
			return nil, fmt.Errorf("schema %s: invalid section id %q", kind, sec.ID)
		}
		if _, dup := s.sectionIndex[sec.ID]; dup {
			return nil, fmt.Errorf("schema %s: duplicate section %q", kind, sec.ID)
		}
		if len(sec.Fields) == 0 {
			return nil, fmt.Errorf("schema %s: section %q declares no fields", kind, sec.ID)
		}
		for _, f := range sec.Required {
			if !slices.Contains(sec.Fields, f) {
				return nil, fmt.Errorf("schema %s: section %q requires undeclared field %q", kind, sec.ID, f)
			}
		}
		for _, f := range sec.Optional {
			if sec.Kind != SectionRecord {
				return nil, fmt.Errorf("schema %s: optional fields are only allowed on record sections (%q)", kind, sec.ID)
			}
			if !slices.Contains(sec.Fields, f) {
				return nil, fmt.Errorf("schema %s: section %q has undeclared optional field %q", kind, sec.ID, f)
			}
			if slices.Contains(sec.Required, f) {
				return nil, fmt.Errorf("schema %s: field %q is both required and optional", kind, f)
			}
			if owner, dup := s.optional[f]; dup {
				return nil, fmt.Errorf("schema %s: optional field %q declared by %q and %q", kind, f, owner, sec.ID)
			}
			s.optional[f] = sec.ID
		}
		s.sectionIndex[sec.ID] = i
	}

	for i, st := range steps {
		if st.ID == "" {
			return nil, fmt.Errorf("schema %s: step %d has no id", kind, i)
		}
		if _, dup := s.stepIndex[st.ID]; dup {
			return nil, fmt.Errorf("schema %s: duplicate step %q", kind, st.ID)
		}
		for _, key := range st.DataKeys {
			if key == TitlesKey {
				continue
			}
			if _, ok := s.sectionIndex[key]; !ok {
				return nil, fmt.Errorf("schema %s: step %q projects unknown data key %q", kind, st.ID, key)
			}
		}
		if st.Kind == StepForm || st.Kind == StepCollection {
			sec, ok := s.Section(st.Section)
			if !ok {
				return nil, fmt.Errorf("schema %s: step %q edits unknown section %q", kind, st.ID, st.Section)
			}
			if st.Kind == StepForm && sec.Kind != SectionRecord {
				return nil, fmt.Errorf("schema %s: form step %q must edit a record section", kind, st.ID)
			}
			if st.Kind == StepCollection && sec.Kind != SectionCollection {
				return nil, fmt.Errorf("schema %s: collection step %q must edit a collection section", kind, st.ID)
			}
			for _, f := range st.Required {
				if !slices.Contains(sec.Fields, f) {
					return nil, fmt.Errorf("schema %s: step %q requires undeclared field %q", kind, st.ID, f)
				}
			}
		} else if len(st.Required) > 0 {
			return nil, fmt.Errorf("schema %s: finalize step %q cannot require fields", kind, st.ID)
		}
		s.stepIndex[st.ID] = i
	}
	return s, nil
}

// MustSchema is NewSchema that panics on an invalid declaration.
func MustSchema(kind Kind, sections []SectionDef, steps []StepDef, defaults TemplateSettings) *Schema {
	s, err := NewSchema(kind, sections, steps, defaults)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Kind() Kind                       { return s.kind }
func (s *Schema) Sections() []SectionDef           { return s.sections }
func (s *Schema) Steps() []StepDef                 { return s.steps }
func (s *Schema) DefaultSettings() TemplateSettings { return s.defaults }

// Section returns the declaration of the given section.
func (s *Schema) Section(id string) (SectionDef, bool) {
	i, ok := s.sectionIndex[id]
	if !ok {
		return SectionDef{}, false
	}
	return s.sections[i], true
}

// Step returns the declaration of the given step.
func (s *Schema) Step(id string) (StepDef, bool) {
	i, ok := s.stepIndex[id]
	if !ok {
		return StepDef{}, false
	}
	return s.steps[i], true
}

// OptionalFields maps every optional field name to the record section that owns it.
func (s *Schema) OptionalFields() map[string]string {
	out := make(map[string]string, len(s.optional))
	for f, sec := range s.optional {
		out[f] = sec
	}
	return out
}

// TitleKeys is the key set of the section titles record.
func (s *Schema) TitleKeys() []string {
	keys := make([]string, 0, len(s.sections))
	for _, sec := range s.sections {
		keys = append(keys, sec.ID)
	}
	return keys
}

// Trackable returns the ids of the sections that count towards progress.
func (s *Schema) Trackable() []string {
	return s.TitleKeys()
}
