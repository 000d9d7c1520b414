package handlers

import (
	"net/http"

	"questionai/internal/models"
	"questionai/internal/pdf"
	"questionai/internal/render"
	"questionai/internal/workspace"

	"github.com/gin-gonic/gin"
)

// pageData feeds the index template.
type pageData struct {
	Form         models.FormInput
	Submitted    bool
	Loading      bool
	Lines        []models.DisplayLine
	ShowDownload bool
	PDFReady     bool
	PDFPending   bool
	PDFLabel     string
}

// StateResponse is the JSON view of a workspace.
type StateResponse struct {
	workspace.Snapshot
	Lines []models.DisplayLine `json:"lines"`
}

// HandleIndex renders the form and the results pane for the caller's
// workspace.
func (h *Handler) HandleIndex(c *gin.Context) {
	ws, ok := h.workspaceFrom(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "index.html", h.newPageData(ws.Snapshot()))
}

func (h *Handler) newPageData(snap workspace.Snapshot) pageData {
	data := pageData{
		Form:         snap.Form,
		Submitted:    snap.Submitted,
		Loading:      snap.Loading,
		Lines:        render.Lines(snap.Text),
		ShowDownload: snap.Text != "",
		PDFReady:     snap.HasPDF(),
	}
	switch snap.PDFState {
	case pdf.StateReady:
		data.PDFLabel = "Download PDF"
	case pdf.StateError:
		data.PDFLabel = "PDF unavailable"
	default:
		data.PDFLabel = "Generating PDF..."
		data.PDFPending = data.ShowDownload
	}
	return data
}

// HandleGenerate handles the HTML form submit. Generation runs in the
// background; the browser is sent back to the page, which shows the loading
// state until the run completes.
func (h *Handler) HandleGenerate(c *gin.Context) {
	ws, ok := h.workspaceFrom(c)
	if !ok {
		return
	}

	var form models.FormInput
	if err := c.ShouldBind(&form); err != nil {
		h.abortWithError(c, http.StatusBadRequest, "Bind question form", err)
		return
	}

	h.Log.WithField("workspace", ws.ID()).Info("question form submitted")
	ws.Submit(form)
	c.Redirect(http.StatusSeeOther, "/")
}

// HandleGenerateQuestions is the JSON variant of the form submit. It waits
// for the run to finish and returns the text and its display lines. A
// failed generation yields an empty result, not an error.
func (h *Handler) HandleGenerateQuestions(c *gin.Context) {
	ws, ok := h.workspaceFrom(c)
	if !ok {
		return
	}

	var form models.FormInput
	if err := c.ShouldBindJSON(&form); err != nil {
		h.abortWithError(c, http.StatusBadRequest, "Bind question request", err)
		return
	}

	ws.Submit(form)
	if err := ws.Wait(c.Request.Context()); err != nil {
		h.abortWithError(c, http.StatusGatewayTimeout, "Wait for generation", err)
		return
	}

	text := ws.Snapshot().Text
	c.JSON(http.StatusOK, models.QuestionsResponse{
		Text:  text,
		Lines: render.Lines(text),
	})
}

// HandleState returns the caller's workspace as JSON.
func (h *Handler) HandleState(c *gin.Context) {
	ws, ok := h.workspaceFrom(c)
	if !ok {
		return
	}
	snap := ws.Snapshot()
	c.JSON(http.StatusOK, StateResponse{Snapshot: snap, Lines: render.Lines(snap.Text)})
}
