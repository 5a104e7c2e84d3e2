package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger serves the API description:
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>resume-builder API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "resume-builder", "version": "v0.1.0" },
  "paths": {
    "/api/documents": {
      "get": { "summary": "List documents with progress", "responses": { "200": { "description": "documents" } } },
      "post": {
        "summary": "Create an empty resume, cover letter or disclosure letter",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["kind"],"properties":{"kind":{"type":"string","enum":["resume","cover_letter","disclosure_letter"]},"name":{"type":"string"}}}}}},
        "responses": { "201": { "description": "created snapshot" }, "400": { "description": "unknown kind" } }
      }
    },
    "/api/documents/{id}": {
      "get": { "summary": "Fetch a document snapshot", "responses": { "200": { "description": "snapshot" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a document", "responses": { "204": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/documents/{id}/content": {
      "put": { "summary": "Save sections and template settings", "responses": { "200": { "description": "saved" }, "404": { "description": "not found" } } }
    },
    "/api/wizard/sessions": {
      "post": { "summary": "Open an editing session", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["documentId"],"properties":{"documentId":{"type":"string"}}}}}}, "responses": { "201": { "description": "session id and state" }, "404": { "description": "document not found" } } }
    },
    "/api/wizard/sessions/{sid}": {
      "get": { "summary": "Session state: progress, completion, dirty steps", "responses": { "200": { "description": "state" } } },
      "delete": { "summary": "Discard a session", "responses": { "204": { "description": "closed" } } }
    },
    "/api/wizard/sessions/{sid}/records/{section}": {
      "patch": { "summary": "Set record fields", "responses": { "200": { "description": "state" }, "400": { "description": "unknown section or field" } } }
    },
    "/api/wizard/sessions/{sid}/collections/{section}/entries": {
      "post": { "summary": "Add an entry; the id is returned in X-Entry-Id", "responses": { "201": { "description": "state" } } }
    },
    "/api/wizard/sessions/{sid}/collections/{section}/entries/{entryId}": {
      "patch": { "summary": "Update an entry", "responses": { "200": { "description": "state" }, "404": { "description": "entry not found" } } },
      "delete": { "summary": "Remove an entry", "responses": { "200": { "description": "state" }, "404": { "description": "entry not found" } } }
    },
    "/api/wizard/sessions/{sid}/collections/{section}/entries/{entryId}/move": {
      "post": { "summary": "Move an entry to a new position", "responses": { "200": { "description": "state" }, "400": { "description": "index out of range" } } }
    },
    "/api/wizard/sessions/{sid}/titles/{section}": {
      "put": { "summary": "Override a section title", "responses": { "200": { "description": "state" } } }
    },
    "/api/wizard/sessions/{sid}/template": {
      "put": { "summary": "Change template and styles", "responses": { "200": { "description": "state" } } }
    },
    "/api/wizard/sessions/{sid}/optional/{field}": {
      "post": { "summary": "Reveal an optional field", "responses": { "200": { "description": "state" } } },
      "delete": { "summary": "Hide an optional field and clear its value", "responses": { "200": { "description": "state" } } }
    },
    "/api/wizard/sessions/{sid}/next": { "post": { "summary": "Go to the next step", "responses": { "200": { "description": "state" } } } },
    "/api/wizard/sessions/{sid}/previous": { "post": { "summary": "Go to the previous step", "responses": { "200": { "description": "state" } } } },
    "/api/wizard/sessions/{sid}/steps/{step}": { "post": { "summary": "Jump to a step", "responses": { "200": { "description": "state" }, "400": { "description": "unknown step" } } } },
    "/api/wizard/sessions/{sid}/save": {
      "post": { "summary": "Save & continue", "responses": { "200": { "description": "saved or skipped" }, "400": { "description": "required fields missing" }, "502": { "description": "gateway save failed" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
