package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document/service"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/wizard"
)

func init() { gin.SetMode(gin.TestMode) }

type stateResp struct {
	Step             string                    `json:"step"`
	Progress         int                       `json:"progress"`
	DirtySteps       []string                  `json:"dirtySteps"`
	HasChanges       bool                      `json:"hasChanges"`
	OptionalFields   []string                  `json:"optionalFields"`
	Sections         document.Content          `json:"sections"`
	TemplateSettings document.TemplateSettings `json:"templateSettings"`
}

type harness struct {
	t   *testing.T
	g   *gin.Engine
	svc service.Service
	sid string
	doc string
}

func do(g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	g.ServeHTTP(w, req)
	return w
}

func newHarness(t *testing.T, gw func(service.Service) document.Gateway) *harness {
	t.Helper()
	svc := service.NewMemoryService()
	d, err := svc.Create(context.Background(), document.KindResume, "cv")
	require.NoError(t, err)

	var g document.Gateway = svc
	if gw != nil {
		g = gw(svc)
	}
	r := gin.New()
	RegisterWizardRoutes(r, wizard.NewManager(g))

	w := do(r, http.MethodPost, "/api/wizard/sessions", `{"documentId":"`+d.ID+`"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var opened struct {
		SessionID string    `json:"sessionId"`
		State     stateResp `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opened))
	require.Equal(t, "contact", opened.State.Step)
	return &harness{t: t, g: r, svc: svc, sid: opened.SessionID, doc: d.ID}
}

func (h *harness) call(method, path, body string) *httptest.ResponseRecorder {
	return do(h.g, method, "/api/wizard/sessions/"+h.sid+path, body)
}

func (h *harness) state(w *httptest.ResponseRecorder) stateResp {
	h.t.Helper()
	var st stateResp
	require.NoError(h.t, json.Unmarshal(w.Body.Bytes(), &st), w.Body.String())
	return st
}

func TestWizardFlow(t *testing.T) {
	h := newHarness(t, nil)

	// required fields missing: save is rejected
	w := h.call(http.MethodPost, "/save", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"firstName":"required"`)

	w = h.call(http.MethodPatch, "/records/contact", `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	st := h.state(w)
	assert.Equal(t, []string{"contact"}, st.DirtySteps)
	assert.Equal(t, 10, st.Progress)

	w = h.call(http.MethodPost, "/save", "")
	require.Equal(t, http.StatusOK, w.Code)
	var saved struct {
		Result wizard.SaveResult `json:"result"`
		State  stateResp         `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, wizard.OutcomeSaved, saved.Result.Outcome)
	assert.Equal(t, "experiences", saved.State.Step)
	assert.False(t, saved.State.HasChanges)

	stored, err := h.svc.Get(context.Background(), h.doc)
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.Sections.Records["contact"]["firstName"])

	// nothing changed on experiences: skipped
	w = h.call(http.MethodPost, "/save", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"outcome":"skipped"`)

	w = h.call(http.MethodGet, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "educations", h.state(w).Step)
}

func TestWizardEntries(t *testing.T) {
	h := newHarness(t, nil)

	w := h.call(http.MethodPost, "/collections/skills/entries", `{"name":"Go"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	first := w.Header().Get("X-Entry-Id")
	require.NotEmpty(t, first)
	w = h.call(http.MethodPost, "/collections/skills/entries", `{"name":"SQL"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = h.call(http.MethodPatch, "/collections/skills/entries/"+first, `{"level":"expert"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.call(http.MethodPost, "/collections/skills/entries/"+first+"/move", `{"to":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	skills := h.state(w).Sections.Collections["skills"]
	require.Len(t, skills, 2)
	assert.Equal(t, first, skills[1].ID)
	assert.Equal(t, "expert", skills[1].Fields["level"])

	assert.Equal(t, http.StatusBadRequest, h.call(http.MethodPost, "/collections/skills/entries/"+first+"/move", `{"to":5}`).Code)
	assert.Equal(t, http.StatusBadRequest, h.call(http.MethodPost, "/collections/skills/entries", `{"colour":"red"}`).Code)
	assert.Equal(t, http.StatusBadRequest, h.call(http.MethodPost, "/collections/contact/entries", `{"name":"x"}`).Code)

	w = h.call(http.MethodDelete, "/collections/skills/entries/"+first, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, h.state(w).Sections.Collections["skills"], 1)
	assert.Equal(t, http.StatusNotFound, h.call(http.MethodDelete, "/collections/skills/entries/"+first, "").Code)
}

func TestWizardOptionalTitlesTemplateAndNavigation(t *testing.T) {
	h := newHarness(t, nil)

	w := h.call(http.MethodPost, "/optional/linkedin", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"linkedin"}, h.state(w).OptionalFields)
	assert.Equal(t, http.StatusBadRequest, h.call(http.MethodPost, "/optional/firstName", "").Code)

	h.call(http.MethodPatch, "/records/contact", `{"linkedin":"ada"}`)
	w = h.call(http.MethodDelete, "/optional/linkedin", "")
	require.Equal(t, http.StatusOK, w.Code)
	st := h.state(w)
	assert.Empty(t, st.OptionalFields)
	assert.Equal(t, "", st.Sections.Records["contact"]["linkedin"])

	w = h.call(http.MethodPut, "/titles/skills", `{"title":"Toolbox"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Toolbox", h.state(w).Sections.Titles["skills"])
	assert.Contains(t, h.state(w).DirtySteps, "finalize")

	w = h.call(http.MethodPut, "/template", `{"templateId":"modern","styles":{"accentColor":"#111111"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	ts := h.state(w).TemplateSettings
	assert.Equal(t, "modern", ts.TemplateID)
	assert.Equal(t, "#111111", ts.Styles.AccentColor)
	assert.Equal(t, "Inter", ts.Styles.FontFamily)

	w = h.call(http.MethodPost, "/next", "")
	assert.Equal(t, "experiences", h.state(w).Step)
	w = h.call(http.MethodPost, "/previous", "")
	assert.Equal(t, "contact", h.state(w).Step)
	w = h.call(http.MethodPost, "/steps/finalize", "")
	assert.Equal(t, "finalize", h.state(w).Step)
	assert.Equal(t, http.StatusBadRequest, h.call(http.MethodPost, "/steps/nowhere", "").Code)
}

type failingGateway struct{ document.Gateway }

func (failingGateway) Save(context.Context, string, *document.SavePayload) error {
	return errors.New("upstream down")
}

func TestWizardSaveGatewayFailure(t *testing.T) {
	h := newHarness(t, func(svc service.Service) document.Gateway { return failingGateway{svc} })

	h.call(http.MethodPatch, "/records/contact", `{"firstName":"Ada","lastName":"L","email":"a@b.c"}`)
	w := h.call(http.MethodPost, "/save", "")
	require.Equal(t, http.StatusBadGateway, w.Code)

	w = h.call(http.MethodGet, "", "")
	st := h.state(w)
	assert.Equal(t, "contact", st.Step)
	assert.Equal(t, []string{"contact"}, st.DirtySteps)
}

func TestWizardSessionLifecycle(t *testing.T) {
	h := newHarness(t, nil)

	assert.Equal(t, http.StatusNotFound, do(h.g, http.MethodPost, "/api/wizard/sessions", `{"documentId":"missing"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h.g, http.MethodPost, "/api/wizard/sessions", `{}`).Code)

	require.Equal(t, http.StatusNoContent, h.call(http.MethodDelete, "", "").Code)
	assert.Equal(t, http.StatusNotFound, h.call(http.MethodGet, "", "").Code)
	assert.Equal(t, http.StatusNotFound, h.call(http.MethodDelete, "", "").Code)
}
