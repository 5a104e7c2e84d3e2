package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
	"github.com/md-rejoyan-islam/resume-builder-sub002/pkg/metrics"
)

type fakeGateway struct {
	snap    *document.Snapshot
	saves   []*document.SavePayload
	saveErr error
	fetches int
}

func (f *fakeGateway) Fetch(ctx context.Context, id string) (*document.Snapshot, error) {
	f.fetches++
	if f.snap == nil || f.snap.ID != id {
		return nil, document.ErrNotFound
	}
	return f.snap.Clone(), nil
}

func (f *fakeGateway) Save(ctx context.Context, id string, p *document.SavePayload) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, p)
	return nil
}

func resumeSnapshot() *document.Snapshot {
	return &document.Snapshot{
		ID:   "doc-1",
		Kind: document.KindResume,
		Sections: document.Content{
			Records: map[string]document.Record{
				"contact": {"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "linkedin": "ada"},
			},
			Collections: map[string][]document.Entry{
				"skills": {{ID: "s1", Fields: document.Record{"name": "Go"}}},
			},
		},
	}
}

func loaded(t *testing.T, gw *fakeGateway) *Session {
	t.Helper()
	s := NewSession(document.ResumeSchema, gw.snap.ID)
	require.NoError(t, s.Load(context.Background(), gw))
	return s
}

func TestLoadHydratesAndBaselines(t *testing.T) {
	gw := &fakeGateway{snap: resumeSnapshot()}
	s := loaded(t, gw)

	st := s.State()
	assert.Equal(t, "contact", st.Step)
	assert.Equal(t, "classic", st.TemplateSettings.TemplateID)
	assert.Equal(t, []string{"linkedin"}, st.OptionalFields)
	assert.Empty(t, st.DirtySteps)
	assert.False(t, st.HasChanges)
	assert.True(t, st.Completion["contact"])
	assert.True(t, st.Completion["skills"])
	assert.False(t, st.Completion["experiences"])
	// 2 of 10 sections complete
	assert.Equal(t, 20, st.Progress)
	assert.Equal(t, "", s.Document().Record("contact")["phone"])
}

func TestLoadFetchError(t *testing.T) {
	gw := &fakeGateway{}
	s := NewSession(document.ResumeSchema, "missing")
	err := s.Load(context.Background(), gw)
	require.ErrorIs(t, err, document.ErrNotFound)

	_, err = s.SaveAndContinue(context.Background(), gw)
	require.ErrorIs(t, err, ErrNotLoaded)
}

func TestSaveAndContinueSkipsUnchangedStep(t *testing.T) {
	gw := &fakeGateway{snap: resumeSnapshot()}
	s := loaded(t, gw)
	before := testutil.ToFloat64(metrics.WizardSaves.WithLabelValues("resume", "skipped"))

	res, err := s.SaveAndContinue(context.Background(), gw)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.Equal(t, "experiences", res.Step)
	assert.Empty(t, gw.saves)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.WizardSaves.WithLabelValues("resume", "skipped")))
}

func TestSaveAndContinueRejectsInvalidStep(t *testing.T) {
	gw := &fakeGateway{snap: resumeSnapshot()}
	s := loaded(t, gw)
	require.NoError(t, s.Document().SetField("contact", "email", "  "))

	res, err := s.SaveAndContinue(context.Background(), gw)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, res.Outcome)
	assert.Equal(t, "contact", res.Step)
	assert.Equal(t, "required", res.Violations["email"])
	assert.Equal(t, "contact", s.Step())
	assert.Empty(t, gw.saves)
}

func TestSaveAndContinueSavesWholeDocument(t *testing.T) {
	gw := &fakeGateway{snap: resumeSnapshot()}
	s := loaded(t, gw)
	require.NoError(t, s.Document().SetField("contact", "city", "London"))
	_, err := s.Document().AddEntry("skills", document.Record{"name": "SQL"})
	require.NoError(t, err)
	assert.Equal(t, []string{"contact", "skills"}, s.State().DirtySteps)

	res, err := s.SaveAndContinue(context.Background(), gw)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSaved, res.Outcome)
	assert.Equal(t, "experiences", res.Step)
	require.Len(t, gw.saves, 1)
	p := gw.saves[0]
	assert.Equal(t, "London", p.Sections.Records["contact"]["city"])
	assert.Len(t, p.Sections.Collections["skills"], 2)
	assert.Equal(t, "classic", p.TemplateSettings.TemplateID)

	st := s.State()
	assert.Empty(t, st.DirtySteps)
	assert.False(t, st.HasChanges)
}

func TestSaveAndContinueKeepsEditsDirtyOnFailure(t *testing.T) {
	gw := &fakeGateway{snap: resumeSnapshot()}
	s := loaded(t, gw)
	require.NoError(t, s.Document().SetField("contact", "city", "London"))
	gw.saveErr = errors.New("upstream unavailable")

	_, err := s.SaveAndContinue(context.Background(), gw)
	require.ErrorIs(t, err, gw.saveErr)
	assert.Equal(t, "contact", s.Step())
	assert.Equal(t, []string{"contact"}, s.State().DirtySteps)

	gw.saveErr = nil
	res, err := s.SaveAndContinue(context.Background(), gw)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSaved, res.Outcome)
	assert.Len(t, gw.saves, 1)
}

func TestTemplateChangeSavesOnAnyStep(t *testing.T) {
	gw := &fakeGateway{snap: resumeSnapshot()}
	s := loaded(t, gw)
	require.NoError(t, s.GoTo("finalize"))

	ts := s.TemplateSettings()
	ts.Styles.AccentColor = "#000000"
	s.SetTemplate(ts)
	assert.True(t, s.State().TemplateChanged)
	assert.Empty(t, s.State().DirtySteps)

	res, err := s.SaveAndContinue(context.Background(), gw)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSaved, res.Outcome)
	// last step stays put
	assert.Equal(t, "finalize", res.Step)
	assert.False(t, s.State().TemplateChanged)
}

func TestNavigation(t *testing.T) {
	gw := &fakeGateway{snap: resumeSnapshot()}
	s := loaded(t, gw)

	assert.Equal(t, "contact", s.Previous())
	assert.Equal(t, "experiences", s.Next())
	require.ErrorIs(t, s.GoTo("nope"), ErrUnknownStep)
	assert.Equal(t, "experiences", s.Step())
	require.NoError(t, s.GoTo("references"))
	assert.Equal(t, "finalize", s.Next())
	assert.Equal(t, "finalize", s.Next())
}

func TestRemovingOptionalFieldDirtiesStep(t *testing.T) {
	gw := &fakeGateway{snap: resumeSnapshot()}
	s := loaded(t, gw)

	require.NoError(t, s.Optional().Remove("linkedin", s.Document()))
	assert.Equal(t, "", s.Document().Record("contact")["linkedin"])
	assert.Equal(t, []string{"contact"}, s.State().DirtySteps)
	assert.Empty(t, s.State().OptionalFields)
}
