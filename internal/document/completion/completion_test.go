package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
)

func TestIsSectionComplete(t *testing.T) {
	t.Run("record with every required field", func(t *testing.T) {
		d := document.New(document.ResumeSchema)
		require.NoError(t, d.SetRecord("contact", document.Record{"firstName": "John", "lastName": "Doe", "email": "john@x.com"}))
		assert.True(t, IsSectionComplete("contact", d))
	})

	t.Run("record with a blank required field", func(t *testing.T) {
		d := document.New(document.ResumeSchema)
		require.NoError(t, d.SetRecord("contact", document.Record{"firstName": "John", "lastName": "Doe", "email": ""}))
		assert.False(t, IsSectionComplete("contact", d))

		require.NoError(t, d.SetField("contact", "email", "   "))
		assert.False(t, IsSectionComplete("contact", d), "whitespace is blank")
	})

	t.Run("collection needs one entry", func(t *testing.T) {
		d := document.New(document.ResumeSchema)
		assert.False(t, IsSectionComplete("skills", d))
		_, err := d.AddEntry("skills", nil)
		require.NoError(t, err)
		assert.True(t, IsSectionComplete("skills", d))
	})

	t.Run("non content sections never complete", func(t *testing.T) {
		d := document.New(document.ResumeSchema)
		assert.False(t, IsSectionComplete("finalize", d))
		assert.False(t, IsSectionComplete(document.TitlesKey, d))
		assert.False(t, IsSectionComplete("unknown", d))
	})
}

func TestProgress(t *testing.T) {
	t.Run("four of ten sections", func(t *testing.T) {
		d := document.New(document.ResumeSchema)
		require.NoError(t, d.SetRecord("contact", document.Record{"firstName": "John", "lastName": "Doe", "email": "john@x.com"}))
		for _, sec := range []string{"skills", "languages", "interests"} {
			_, err := d.AddEntry(sec, document.Record{"name": "x"})
			require.NoError(t, err)
		}
		assert.Equal(t, 40, Progress(d))
	})

	t.Run("rounds half up", func(t *testing.T) {
		d := document.New(document.CoverLetterSchema)
		require.NoError(t, d.SetRecord("personal", document.Record{"fullName": "A", "email": "a@b.c"}))
		assert.Equal(t, 33, Progress(d))

		require.NoError(t, d.SetRecord("recipient", document.Record{"companyName": "Acme", "jobPosition": "Dev"}))
		assert.Equal(t, 67, Progress(d))
	})

	t.Run("empty and full documents", func(t *testing.T) {
		d := document.New(document.DisclosureLetterSchema)
		assert.Equal(t, 0, Progress(d))

		require.NoError(t, d.SetRecord("personal", document.Record{"fullName": "A", "email": "a@b.c"}))
		require.NoError(t, d.SetField("recipient", "organization", "Org"))
		_, err := d.AddEntry("disclosures", nil)
		require.NoError(t, err)
		_, err = d.AddEntry("statements", nil)
		require.NoError(t, err)
		assert.Equal(t, 100, Progress(d))
	})

	t.Run("no trackable sections", func(t *testing.T) {
		s := document.MustSchema("blank", nil,
			[]document.StepDef{{ID: "finalize", Kind: document.StepFinalize, DataKeys: []string{document.TitlesKey}}},
			document.TemplateSettings{})
		assert.Equal(t, 0, Progress(document.New(s)))
	})

	t.Run("adding an entry strictly increases progress", func(t *testing.T) {
		d := document.New(document.ResumeSchema)
		before := Progress(d)
		_, err := d.AddEntry("experiences", document.Record{"jobTitle": "Engineer"})
		require.NoError(t, err)
		assert.Greater(t, Progress(d), before)
		assert.True(t, Breakdown(d)["experiences"])
		assert.False(t, Breakdown(d)["contact"])
	})
}

func TestProgressBounds(t *testing.T) {
	for _, kind := range document.Kinds() {
		s, err := document.SchemaFor(kind)
		require.NoError(t, err)
		d := document.New(s)
		for _, sec := range s.Sections() {
			p := Progress(d)
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, 100)
			if sec.Kind == document.SectionCollection {
				_, err := d.AddEntry(sec.ID, nil)
				require.NoError(t, err)
			} else {
				for _, f := range sec.Required {
					require.NoError(t, d.SetField(sec.ID, f, "x"))
				}
			}
		}
		assert.Equal(t, 100, Progress(d), kind)
	}
}
