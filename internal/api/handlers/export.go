package handlers

import (
	"fmt"
	"net/http"

	"questionai/internal/models"
	"questionai/internal/pdf"
	"questionai/internal/workspace"

	"github.com/gin-gonic/gin"
)

// readyPDF returns the workspace's document or aborts with the matching
// status: 404 without questions, 409 while rendering, 500 on render failure.
func (h *Handler) readyPDF(c *gin.Context, ws *workspace.Workspace) ([]byte, bool) {
	if ws.Snapshot().Text == "" {
		h.abortWithError(c, http.StatusNotFound, "Export PDF", errNoQuestions)
		return nil, false
	}

	data, state := ws.PDF()
	switch state {
	case pdf.StateReady:
		return data, true
	case pdf.StateError:
		h.abortWithError(c, http.StatusInternalServerError, "Export PDF", errPDFFailed)
	default:
		h.abortWithError(c, http.StatusConflict, "Export PDF", errPDFNotReady)
	}
	return nil, false
}

// HandleExportPDF serves the current questions as a PDF attachment.
func (h *Handler) HandleExportPDF(c *gin.Context) {
	ws, ok := h.workspaceFrom(c)
	if !ok {
		return
	}
	data, ok := h.readyPDF(c, ws)
	if !ok {
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdf.FileName))
	c.Data(http.StatusOK, "application/pdf", data)
}

// HandlePublishPDF uploads the current PDF to object storage and returns its
// public URL.
func (h *Handler) HandlePublishPDF(c *gin.Context) {
	ws, ok := h.workspaceFrom(c)
	if !ok {
		return
	}
	if h.Publisher == nil {
		h.abortWithError(c, http.StatusServiceUnavailable, "Publish PDF", errPublishDisabled)
		return
	}
	data, ok := h.readyPDF(c, ws)
	if !ok {
		return
	}

	url, err := h.Publisher.UploadPDF(c.Request.Context(), ws.ID(), data)
	if err != nil {
		h.abortWithError(c, http.StatusBadGateway, "Publish PDF", err)
		return
	}

	h.Log.WithField("workspace", ws.ID()).WithField("url", url).Info("published PDF")
	c.JSON(http.StatusOK, models.PublishResponse{URL: url})
}
