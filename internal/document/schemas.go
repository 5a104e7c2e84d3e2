package document

import (
	"fmt"
	"sort"
)

var defaultStyles = StyleSettings{FontFamily: "Inter", Spacing: "normal", AccentColor: "#2563eb"}

func collection(id, title string, fields ...string) SectionDef {
	return SectionDef{ID: id, Title: title, Kind: SectionCollection, Fields: fields}
}

func collectionStep(id, title, section string) StepDef {
	return StepDef{ID: id, Title: title, Kind: StepCollection, Section: section, DataKeys: []string{section}}
}

func finalizeStep() StepDef {
	return StepDef{ID: "finalize", Title: "Finalize", Kind: StepFinalize, DataKeys: []string{TitlesKey}}
}

// ResumeSchema is the resume: one contact record and nine collections.
var ResumeSchema = MustSchema(KindResume,
	[]SectionDef{
		{
			ID:    "contact",
			Title: "Personal Details",
			Kind:  SectionRecord,
			Fields: []string{
				"firstName", "lastName", "jobTitle", "email", "phone", "address", "city",
				"postalCode", "country", "summary",
				"dateOfBirth", "nationality", "drivingLicense", "linkedin", "website",
			},
			Required: []string{"firstName", "lastName", "email"},
			Optional: []string{"dateOfBirth", "nationality", "drivingLicense", "linkedin", "website"},
		},
		collection("experiences", "Employment History", "jobTitle", "employer", "city", "startDate", "endDate", "description"),
		collection("educations", "Education", "degree", "school", "city", "startDate", "endDate", "description"),
		collection("skills", "Skills", "name", "level"),
		collection("languages", "Languages", "name", "level"),
		collection("projects", "Projects", "name", "role", "url", "startDate", "endDate", "description"),
		collection("certifications", "Certifications", "name", "issuer", "date", "url"),
		collection("awards", "Awards", "title", "issuer", "date", "description"),
		collection("interests", "Interests", "name"),
		collection("references", "References", "name", "company", "email", "phone"),
	},
	[]StepDef{
		{
			ID: "contact", Title: "Contact", Kind: StepForm, Section: "contact",
			Required: []string{"firstName", "lastName", "email"},
			DataKeys: []string{"contact"},
		},
		collectionStep("experiences", "Experience", "experiences"),
		collectionStep("educations", "Education", "educations"),
		collectionStep("skills", "Skills", "skills"),
		collectionStep("languages", "Languages", "languages"),
		collectionStep("projects", "Projects", "projects"),
		collectionStep("certifications", "Certifications", "certifications"),
		collectionStep("awards", "Awards", "awards"),
		collectionStep("interests", "Interests", "interests"),
		collectionStep("references", "References", "references"),
		finalizeStep(),
	},
	TemplateSettings{TemplateID: "classic", Styles: defaultStyles},
)

// CoverLetterSchema is the cover letter: sender and recipient records plus body paragraphs.
var CoverLetterSchema = MustSchema(KindCoverLetter,
	[]SectionDef{
		{
			ID:       "personal",
			Title:    "Your Details",
			Kind:     SectionRecord,
			Fields:   []string{"fullName", "jobTitle", "email", "phone", "address", "city", "linkedin", "website"},
			Required: []string{"fullName", "email"},
			Optional: []string{"linkedin", "website"},
		},
		{
			ID:       "recipient",
			Title:    "Recipient",
			Kind:     SectionRecord,
			Fields:   []string{"companyName", "hiringManager", "companyAddress", "jobPosition", "date", "subject"},
			Required: []string{"companyName", "jobPosition"},
		},
		collection("paragraphs", "Letter Body", "content"),
	},
	[]StepDef{
		{
			ID: "personal", Title: "Your Details", Kind: StepForm, Section: "personal",
			Required: []string{"fullName", "email"},
			DataKeys: []string{"personal"},
		},
		{
			ID: "recipient", Title: "Recipient", Kind: StepForm, Section: "recipient",
			Required: []string{"companyName"},
			DataKeys: []string{"recipient"},
		},
		collectionStep("body", "Letter Body", "paragraphs"),
		finalizeStep(),
	},
	TemplateSettings{TemplateID: "modern-letter", Styles: defaultStyles},
)

// DisclosureLetterSchema is the disclosure letter: sender and recipient records,
// the disclosed items and supporting statements.
var DisclosureLetterSchema = MustSchema(KindDisclosureLetter,
	[]SectionDef{
		{
			ID:       "personal",
			Title:    "Your Details",
			Kind:     SectionRecord,
			Fields:   []string{"fullName", "email", "phone", "address", "city", "dateOfBirth", "nationality", "referenceNumber"},
			Required: []string{"fullName", "email"},
			Optional: []string{"dateOfBirth", "nationality", "referenceNumber"},
		},
		{
			ID:       "recipient",
			Title:    "Recipient",
			Kind:     SectionRecord,
			Fields:   []string{"organization", "recipientName", "position", "date"},
			Required: []string{"organization"},
		},
		collection("disclosures", "Disclosures", "category", "date", "details"),
		collection("statements", "Supporting Statements", "content"),
	},
	[]StepDef{
		{
			ID: "personal", Title: "Your Details", Kind: StepForm, Section: "personal",
			Required: []string{"fullName", "email"},
			DataKeys: []string{"personal"},
		},
		{
			ID: "recipient", Title: "Recipient", Kind: StepForm, Section: "recipient",
			Required: []string{"organization"},
			DataKeys: []string{"recipient"},
		},
		collectionStep("disclosures", "Disclosures", "disclosures"),
		collectionStep("statements", "Statements", "statements"),
		finalizeStep(),
	},
	TemplateSettings{TemplateID: "formal", Styles: defaultStyles},
)

var schemas = map[Kind]*Schema{
	KindResume:           ResumeSchema,
	KindCoverLetter:      CoverLetterSchema,
	KindDisclosureLetter: DisclosureLetterSchema,
}

// SchemaFor returns the registered schema of kind.
func SchemaFor(kind Kind) (*Schema, error) {
	s, ok := schemas[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return s, nil
}

// Kinds lists the registered document kinds in a stable order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(schemas))
	for k := range schemas {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
