package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document/optional"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/wizard"
)

// RegisterWizardRoutes mounts the editing session API under /api/wizard/sessions.
// Every mutating route answers with the session state after the change.
func RegisterWizardRoutes(r gin.IRouter, m *wizard.Manager) {
	g := r.Group("/api/wizard/sessions")

	g.POST("", func(c *gin.Context) {
		var req struct {
			DocumentID string `json:"documentId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		id, st, err := m.Open(c.Request.Context(), req.DocumentID)
		if err != nil {
			status := http.StatusBadGateway
			switch {
			case errors.Is(err, document.ErrNotFound):
				status = http.StatusNotFound
			case errors.Is(err, document.ErrUnknownKind), errors.Is(err, document.ErrKindMismatch):
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"sessionId": id, "state": st})
	})

	g.GET("/:sid", func(c *gin.Context) {
		withSession(c, m, func(*wizard.Session) error { return nil })
	})

	g.DELETE("/:sid", func(c *gin.Context) {
		if err := m.Close(c.Param("sid")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	g.PATCH("/:sid/records/:section", func(c *gin.Context) {
		var values document.Record
		if err := c.ShouldBindJSON(&values); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		withSession(c, m, func(s *wizard.Session) error {
			return s.Document().SetRecord(c.Param("section"), values)
		})
	})

	g.POST("/:sid/collections/:section/entries", func(c *gin.Context) {
		var values document.Record
		if err := c.ShouldBindJSON(&values); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		withSessionStatus(c, m, http.StatusCreated, func(s *wizard.Session) error {
			e, err := s.Document().AddEntry(c.Param("section"), values)
			if err == nil {
				c.Header("X-Entry-Id", e.ID)
			}
			return err
		})
	})

	g.PATCH("/:sid/collections/:section/entries/:entryId", func(c *gin.Context) {
		var values document.Record
		if err := c.ShouldBindJSON(&values); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		withSession(c, m, func(s *wizard.Session) error {
			return s.Document().UpdateEntry(c.Param("section"), c.Param("entryId"), values)
		})
	})

	g.DELETE("/:sid/collections/:section/entries/:entryId", func(c *gin.Context) {
		withSession(c, m, func(s *wizard.Session) error {
			return s.Document().RemoveEntry(c.Param("section"), c.Param("entryId"))
		})
	})

	g.POST("/:sid/collections/:section/entries/:entryId/move", func(c *gin.Context) {
		var req struct {
			To *int `json:"to" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		withSession(c, m, func(s *wizard.Session) error {
			return s.Document().MoveEntry(c.Param("section"), c.Param("entryId"), *req.To)
		})
	})

	g.PUT("/:sid/titles/:section", func(c *gin.Context) {
		var req struct {
			Title string `json:"title"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		withSession(c, m, func(s *wizard.Session) error {
			return s.Document().SetTitle(c.Param("section"), req.Title)
		})
	})

	g.PUT("/:sid/template", func(c *gin.Context) {
		var req document.TemplateSettings
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		withSession(c, m, func(s *wizard.Session) error {
			// blank values keep the current setting
			ts := s.TemplateSettings()
			if req.TemplateID != "" {
				ts.TemplateID = req.TemplateID
			}
			if req.Styles.FontFamily != "" {
				ts.Styles.FontFamily = req.Styles.FontFamily
			}
			if req.Styles.Spacing != "" {
				ts.Styles.Spacing = req.Styles.Spacing
			}
			if req.Styles.AccentColor != "" {
				ts.Styles.AccentColor = req.Styles.AccentColor
			}
			s.SetTemplate(ts)
			return nil
		})
	})

	g.POST("/:sid/optional/:field", func(c *gin.Context) {
		withSession(c, m, func(s *wizard.Session) error {
			return s.Optional().Add(c.Param("field"))
		})
	})

	g.DELETE("/:sid/optional/:field", func(c *gin.Context) {
		withSession(c, m, func(s *wizard.Session) error {
			return s.Optional().Remove(c.Param("field"), s.Document())
		})
	})

	g.POST("/:sid/next", func(c *gin.Context) {
		withSession(c, m, func(s *wizard.Session) error { s.Next(); return nil })
	})

	g.POST("/:sid/previous", func(c *gin.Context) {
		withSession(c, m, func(s *wizard.Session) error { s.Previous(); return nil })
	})

	g.POST("/:sid/steps/:step", func(c *gin.Context) {
		withSession(c, m, func(s *wizard.Session) error { return s.GoTo(c.Param("step")) })
	})

	g.POST("/:sid/save", func(c *gin.Context) {
		var (
			res     wizard.SaveResult
			st      wizard.State
			saveErr error
		)
		err := m.With(c.Param("sid"), func(s *wizard.Session) error {
			res, saveErr = s.SaveAndContinue(c.Request.Context(), m.Gateway())
			st = s.State()
			return nil
		})
		if err != nil {
			writeError(c, err)
			return
		}
		if saveErr != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": saveErr.Error(), "state": st})
			return
		}
		status := http.StatusOK
		if res.Outcome == wizard.OutcomeInvalid {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"result": res, "state": st})
	})
}

func withSession(c *gin.Context, m *wizard.Manager, fn func(*wizard.Session) error) {
	withSessionStatus(c, m, http.StatusOK, fn)
}

// withSessionStatus runs fn under the session lock and answers with the
// resulting state, or with the mapped error.
func withSessionStatus(c *gin.Context, m *wizard.Manager, status int, fn func(*wizard.Session) error) {
	var st wizard.State
	err := m.With(c.Param("sid"), func(s *wizard.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		st = s.State()
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, st)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound), errors.Is(err, document.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, document.ErrUnknownSection),
		errors.Is(err, document.ErrUnknownField),
		errors.Is(err, document.ErrNotRecordSection),
		errors.Is(err, document.ErrNotCollectionSection),
		errors.Is(err, document.ErrIndexOutOfRange),
		errors.Is(err, optional.ErrUnknownField),
		errors.Is(err, wizard.ErrUnknownStep):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
