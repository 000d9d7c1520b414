package handlers

import (
	"context"
	"errors"
	"net/http"

	"questionai/internal/models"
	"questionai/internal/workspace"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// WorkspaceContextKey is the gin context key holding the caller's
// *workspace.Workspace, set by the workspace middleware.
const WorkspaceContextKey = "workspace"

var (
	errMissingWorkspace = errors.New("workspace not found in context")
	errNoQuestions      = errors.New("no generated questions")
	errPDFNotReady      = errors.New("PDF is still being generated")
	errPDFFailed        = errors.New("PDF rendering failed")
	errPublishDisabled  = errors.New("PDF publishing is not configured")
)

// Publisher uploads an exported document and returns its public URL.
type Publisher interface {
	UploadPDF(ctx context.Context, workspaceID string, data []byte) (string, error)
}

// Handler contains the API handlers dependencies
type Handler struct {
	Store     *workspace.Store
	Publisher Publisher // nil when publishing is not configured
	Log       logrus.FieldLogger
}

// NewHandler creates a new Handler. publisher may be nil.
func NewHandler(store *workspace.Store, publisher Publisher, log logrus.FieldLogger) *Handler {
	return &Handler{
		Store:     store,
		Publisher: publisher,
		Log:       log,
	}
}

// workspaceFrom returns the workspace the middleware attached to the request.
func (h *Handler) workspaceFrom(c *gin.Context) (*workspace.Workspace, bool) {
	value, exists := c.Get(WorkspaceContextKey)
	if !exists {
		h.abortWithError(c, http.StatusInternalServerError, "Get workspace from context", errMissingWorkspace)
		return nil, false
	}
	ws, ok := value.(*workspace.Workspace)
	if !ok {
		h.abortWithError(c, http.StatusInternalServerError, "Get workspace from context", errMissingWorkspace)
		return nil, false
	}
	return ws, true
}

// abortWithError logs an error and aborts the request with a JSON body.
func (h *Handler) abortWithError(c *gin.Context, statusCode int, errorContext string, err error) {
	entry := h.Log.WithError(err).WithFields(logrus.Fields{
		"path":   c.Request.URL.Path,
		"status": statusCode,
	})
	if statusCode >= http.StatusInternalServerError {
		entry.Error(errorContext)
	} else {
		entry.Warn(errorContext)
	}
	c.AbortWithStatusJSON(statusCode, models.ErrorResponse{Error: errorContext + ": " + err.Error()})
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
