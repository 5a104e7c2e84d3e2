package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document/completion"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document/service"
)

// RegisterDocumentRoutes mounts the document persistence API.
func RegisterDocumentRoutes(r gin.IRouter, svc service.Service) {
	r.GET("/api/documents", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out := make([]gin.H, 0, len(list))
		for _, d := range list {
			item := gin.H{"id": d.ID, "kind": d.Kind, "name": d.Name, "updatedAt": d.UpdatedAt}
			if schema, err := document.SchemaFor(d.Kind); err == nil {
				if doc, _, err := document.Hydrate(schema, d); err == nil {
					item["progress"] = completion.Progress(doc)
				}
			}
			out = append(out, item)
		}
		c.JSON(http.StatusOK, out)
	})

	r.POST("/api/documents", func(c *gin.Context) {
		var req struct {
			Kind document.Kind `json:"kind" binding:"required"`
			Name string        `json:"name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		d, err := svc.Create(c.Request.Context(), req.Kind, req.Name)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, d)
	})

	r.GET("/api/documents/:id", func(c *gin.Context) {
		d, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	})

	r.PUT("/api/documents/:id/content", func(c *gin.Context) {
		var req document.SavePayload
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		id := c.Param("id")
		if err := svc.Save(c.Request.Context(), id, &req); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	r.DELETE("/api/documents/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, document.ErrUnknownKind), errors.Is(err, document.ErrKindMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
