package wizard

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
	"github.com/md-rejoyan-islam/resume-builder-sub002/pkg/metrics"
)

func TestManagerOpenPicksSchemaByKind(t *testing.T) {
	gw := &fakeGateway{snap: &document.Snapshot{ID: "cl-1", Kind: document.KindCoverLetter}}
	m := NewManager(gw)

	id, st, err := m.Open(context.Background(), "cl-1")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, gw.fetches)
	assert.Equal(t, document.KindCoverLetter, st.Kind)
	assert.Equal(t, []string{"personal", "recipient", "body", "finalize"}, st.Steps)
	assert.Equal(t, "modern-letter", st.TemplateSettings.TemplateID)
	assert.Equal(t, 0, st.Progress)
}

func TestManagerOpenErrors(t *testing.T) {
	m := NewManager(&fakeGateway{})
	_, _, err := m.Open(context.Background(), "missing")
	require.ErrorIs(t, err, document.ErrNotFound)

	m = NewManager(&fakeGateway{snap: &document.Snapshot{ID: "x", Kind: "invoice"}})
	_, _, err = m.Open(context.Background(), "x")
	require.ErrorIs(t, err, document.ErrUnknownKind)
	assert.Equal(t, 0, m.Len())
}

func TestManagerWithAndClose(t *testing.T) {
	gw := &fakeGateway{snap: resumeSnapshot()}
	m := NewManager(gw)
	before := testutil.ToFloat64(metrics.OpenSessions)

	id, _, err := m.Open(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.OpenSessions))

	var res SaveResult
	err = m.With(id, func(s *Session) error {
		if err := s.Document().SetField("contact", "phone", "123"); err != nil {
			return err
		}
		res, err = s.SaveAndContinue(context.Background(), m.Gateway())
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSaved, res.Outcome)
	require.Len(t, gw.saves, 1)

	require.NoError(t, m.Close(id))
	assert.Equal(t, before, testutil.ToFloat64(metrics.OpenSessions))
	require.ErrorIs(t, m.Close(id), ErrSessionNotFound)
	require.ErrorIs(t, m.With(id, func(*Session) error { return nil }), ErrSessionNotFound)
}

func TestManagerSerializesSessionAccess(t *testing.T) {
	gw := &fakeGateway{snap: resumeSnapshot()}
	m := NewManager(gw)
	id, _, err := m.Open(context.Background(), "doc-1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.With(id, func(s *Session) error {
				_, err := s.Document().AddEntry("interests", document.Record{"name": "chess"})
				return err
			})
		}()
	}
	wg.Wait()

	require.NoError(t, m.With(id, func(s *Session) error {
		assert.Len(t, s.Document().Entries("interests"), 20)
		return nil
	}))
	require.NoError(t, m.Close(id))
}
