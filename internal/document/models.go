package document

import "time"

// Kind names one of the document variants the builder supports.
type Kind string

const (
	KindResume           Kind = "resume"
	KindCoverLetter      Kind = "cover_letter"
	KindDisclosureLetter Kind = "disclosure_letter"
)

// TitlesKey is the data key under which the section title overrides are projected.
const TitlesKey = "sectionTitles"

// Record is a flat field map. Keys are fixed by the schema and unset values are "".
type Record map[string]string

// Clone returns an independent copy of r. A nil record clones to an empty one.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Entry is one identified item of a collection section.
type Entry struct {
	ID     string `json:"id" bson:"id"`
	Fields Record `json:"fields" bson:"fields"`
}

func (e Entry) Clone() Entry {
	return Entry{ID: e.ID, Fields: e.Fields.Clone()}
}

func cloneEntries(in []Entry) []Entry {
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}

// Content holds every content section of a document: the record sections,
// the collection sections and the section title overrides.
type Content struct {
	Records     map[string]Record  `json:"records" bson:"records"`
	Collections map[string][]Entry `json:"collections" bson:"collections"`
	Titles      Record             `json:"sectionTitles" bson:"sectionTitles"`
}

// Clone deep-copies c.
func (c Content) Clone() Content {
	out := Content{
		Records:     make(map[string]Record, len(c.Records)),
		Collections: make(map[string][]Entry, len(c.Collections)),
		Titles:      c.Titles.Clone(),
	}
	for id, r := range c.Records {
		out.Records[id] = r.Clone()
	}
	for id, entries := range c.Collections {
		out.Collections[id] = cloneEntries(entries)
	}
	return out
}

// StyleSettings are the visual options applied on top of a template.
type StyleSettings struct {
	FontFamily  string `json:"fontFamily" bson:"fontFamily"`
	Spacing     string `json:"spacing" bson:"spacing"`
	AccentColor string `json:"accentColor" bson:"accentColor"`
}

// TemplateSettings is the selected template plus its style settings.
type TemplateSettings struct {
	TemplateID string        `json:"templateId" bson:"templateId"`
	Styles     StyleSettings `json:"styles" bson:"styles"`
}

// Snapshot is a document as returned by the persistence gateway. Sections may be
// partial and TemplateSettings may be nil; Hydrate fills the gaps with defaults.
type Snapshot struct {
	ID               string            `json:"id" bson:"id"`
	Kind             Kind              `json:"kind" bson:"kind"`
	Name             string            `json:"name" bson:"name"`
	Sections         Content           `json:"sections" bson:"sections"`
	TemplateSettings *TemplateSettings `json:"templateSettings,omitempty" bson:"templateSettings,omitempty"`
	CreatedAt        time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// Clone deep-copies s.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Sections = s.Sections.Clone()
	if s.TemplateSettings != nil {
		ts := *s.TemplateSettings
		out.TemplateSettings = &ts
	}
	return &out
}

// SavePayload is the body handed to the gateway on save: the whole content
// plus the template settings.
type SavePayload struct {
	Sections         Content          `json:"sections" bson:"sections"`
	TemplateSettings TemplateSettings `json:"templateSettings" bson:"templateSettings"`
}
