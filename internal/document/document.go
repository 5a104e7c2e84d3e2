package document

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Document is the in-memory instance of one resume, cover letter or
// disclosure letter. It is mutated only through the section-scoped setters
// below, which keep every record at exactly the schema's key set and every
// collection non-nil.
type Document struct {
	schema  *Schema
	content Content
}

// New returns an empty document of the schema's kind.
func New(schema *Schema) *Document {
	d := &Document{schema: schema, content: Content{
		Records:     make(map[string]Record),
		Collections: make(map[string][]Entry),
		Titles:      blankRecord(schema.TitleKeys()),
	}}
	for _, sec := range schema.Sections() {
		switch sec.Kind {
		case SectionRecord:
			d.content.Records[sec.ID] = blankRecord(sec.Fields)
		case SectionCollection:
			d.content.Collections[sec.ID] = []Entry{}
		}
	}
	return d
}

// Hydrate builds a document from a fetched snapshot, copying it field by
// field. Anything the snapshot lacks falls back to its default, keys unknown
// to the schema are dropped and entries without a usable id get a fresh one.
// The returned settings fall back to the schema defaults when the snapshot
// carries none.
func Hydrate(schema *Schema, snap *Snapshot) (*Document, TemplateSettings, error) {
	d := New(schema)
	settings := schema.DefaultSettings()
	if snap == nil {
		return d, settings, nil
	}
	if snap.Kind != "" && snap.Kind != schema.Kind() {
		return nil, TemplateSettings{}, fmt.Errorf("%w: got %q, want %q", ErrKindMismatch, snap.Kind, schema.Kind())
	}

	for _, sec := range schema.Sections() {
		switch sec.Kind {
		case SectionRecord:
			fillRecord(d.content.Records[sec.ID], snap.Sections.Records[sec.ID])
		case SectionCollection:
			fetched := snap.Sections.Collections[sec.ID]
			seen := make(map[string]bool, len(fetched))
			entries := make([]Entry, 0, len(fetched))
			for _, e := range fetched {
				id := e.ID
				if id == "" || seen[id] {
					id = newEntryID()
				}
				seen[id] = true
				fields := blankRecord(sec.Fields)
				fillRecord(fields, e.Fields)
				entries = append(entries, Entry{ID: id, Fields: fields})
			}
			d.content.Collections[sec.ID] = entries
		}
	}
	fillRecord(d.content.Titles, snap.Sections.Titles)

	if snap.TemplateSettings != nil {
		ts := snap.TemplateSettings
		if ts.TemplateID != "" {
			settings.TemplateID = ts.TemplateID
		}
		if ts.Styles.FontFamily != "" {
			settings.Styles.FontFamily = ts.Styles.FontFamily
		}
		if ts.Styles.Spacing != "" {
			settings.Styles.Spacing = ts.Styles.Spacing
		}
		if ts.Styles.AccentColor != "" {
			settings.Styles.AccentColor = ts.Styles.AccentColor
		}
	}
	return d, settings, nil
}

func (d *Document) Schema() *Schema { return d.schema }
func (d *Document) Kind() Kind      { return d.schema.Kind() }

// Content returns a deep copy of every content section.
func (d *Document) Content() Content { return d.content.Clone() }

// Record returns a copy of a record section, or nil if there is no such record.
func (d *Document) Record(section string) Record {
	r, ok := d.content.Records[section]
	if !ok {
		return nil
	}
	return r.Clone()
}

// Entries returns a copy of a collection section, or nil if there is no such collection.
func (d *Document) Entries(section string) []Entry {
	e, ok := d.content.Collections[section]
	if !ok {
		return nil
	}
	return cloneEntries(e)
}

// Titles returns a copy of the section title overrides.
func (d *Document) Titles() Record { return d.content.Titles.Clone() }

// Project returns deep copies of the values named by keys. Keys are section
// ids or TitlesKey; unknown keys are skipped.
func (d *Document) Project(keys []string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if k == TitlesKey {
			out[k] = d.content.Titles.Clone()
			continue
		}
		if r, ok := d.content.Records[k]; ok {
			out[k] = r.Clone()
			continue
		}
		if e, ok := d.content.Collections[k]; ok {
			out[k] = cloneEntries(e)
		}
	}
	return out
}

// SetField sets one field of a record section.
func (d *Document) SetField(section, field, value string) error {
	r, err := d.record(section)
	if err != nil {
		return err
	}
	if _, ok := r[field]; !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, section, field)
	}
	r[field] = value
	return nil
}

// SetRecord sets several fields of a record section at once. Fields not
// present in values are left untouched. Nothing is written if any key is unknown.
func (d *Document) SetRecord(section string, values Record) error {
	r, err := d.record(section)
	if err != nil {
		return err
	}
	for k := range values {
		if _, ok := r[k]; !ok {
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, section, k)
		}
	}
	for k, v := range values {
		r[k] = v
	}
	return nil
}

// AddEntry appends a new entry with a fresh id to a collection section.
func (d *Document) AddEntry(section string, values Record) (Entry, error) {
	sec, err := d.collectionDef(section)
	if err != nil {
		return Entry{}, err
	}
	fields := blankRecord(sec.Fields)
	for k, v := range values {
		if _, ok := fields[k]; !ok {
			return Entry{}, fmt.Errorf("%w: %s.%s", ErrUnknownField, section, k)
		}
		fields[k] = v
	}
	e := Entry{ID: newEntryID(), Fields: fields}
	d.content.Collections[section] = append(d.content.Collections[section], e)
	return e.Clone(), nil
}

// UpdateEntry sets fields of an existing entry. The entry id never changes.
func (d *Document) UpdateEntry(section, id string, values Record) error {
	if _, err := d.collectionDef(section); err != nil {
		return err
	}
	entries := d.content.Collections[section]
	i := indexOf(entries, id)
	if i < 0 {
		return fmt.Errorf("%w: %s/%s", ErrEntryNotFound, section, id)
	}
	for k := range values {
		if _, ok := entries[i].Fields[k]; !ok {
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, section, k)
		}
	}
	for k, v := range values {
		entries[i].Fields[k] = v
	}
	return nil
}

// RemoveEntry deletes an entry from a collection section.
func (d *Document) RemoveEntry(section, id string) error {
	if _, err := d.collectionDef(section); err != nil {
		return err
	}
	entries := d.content.Collections[section]
	i := indexOf(entries, id)
	if i < 0 {
		return fmt.Errorf("%w: %s/%s", ErrEntryNotFound, section, id)
	}
	d.content.Collections[section] = slices.Delete(entries, i, i+1)
	return nil
}

// MoveEntry moves an entry to position to, shifting the others.
func (d *Document) MoveEntry(section, id string, to int) error {
	if _, err := d.collectionDef(section); err != nil {
		return err
	}
	entries := d.content.Collections[section]
	from := indexOf(entries, id)
	if from < 0 {
		return fmt.Errorf("%w: %s/%s", ErrEntryNotFound, section, id)
	}
	if to < 0 || to >= len(entries) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, to)
	}
	e := entries[from]
	entries = slices.Delete(entries, from, from+1)
	d.content.Collections[section] = slices.Insert(entries, to, e)
	return nil
}

// SetTitle overrides the display title of a section. An empty title restores the default.
func (d *Document) SetTitle(section, title string) error {
	if _, ok := d.content.Titles[section]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	d.content.Titles[section] = title
	return nil
}

func (d *Document) record(section string) (Record, error) {
	sec, ok := d.schema.Section(section)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	if sec.Kind != SectionRecord {
		return nil, fmt.Errorf("%w: %q", ErrNotRecordSection, section)
	}
	return d.content.Records[section], nil
}

func (d *Document) collectionDef(section string) (SectionDef, error) {
	sec, ok := d.schema.Section(section)
	if !ok {
		return SectionDef{}, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	if sec.Kind != SectionCollection {
		return SectionDef{}, fmt.Errorf("%w: %q", ErrNotCollectionSection, section)
	}
	return sec, nil
}

func blankRecord(keys []string) Record {
	r := make(Record, len(keys))
	for _, k := range keys {
		r[k] = ""
	}
	return r
}

// fillRecord copies the values of src whose keys already exist in dst.
func fillRecord(dst, src Record) {
	for k := range dst {
		if v, ok := src[k]; ok {
			dst[k] = v
		}
	}
}

func indexOf(entries []Entry, id string) int {
	return slices.IndexFunc(entries, func(e Entry) bool { return e.ID == id })
}

func newEntryID() string { return uuid.NewString() }
