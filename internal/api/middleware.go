package api

import (
	"net/http"
	"strings"

	"questionai/internal/api/handlers"
	"questionai/internal/workspace"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// workspaceSessionKey is the session value holding the workspace ID.
const workspaceSessionKey = "workspace_id"

// CORSMiddleware allows credentialed requests from a separately hosted
// frontend. An empty origin disables the headers.
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	origin := strings.TrimSuffix(frontendURL, "/")
	return func(c *gin.Context) {
		if origin == "" {
			c.Next()
			return
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// WorkspaceRequired attaches the caller's workspace to the context, issuing
// a new workspace ID in the session when the caller has none.
func WorkspaceRequired(store *workspace.Store, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		id, _ := session.Get(workspaceSessionKey).(string)
		if _, err := uuid.Parse(id); err != nil {
			id = workspace.NewID()
			session.Set(workspaceSessionKey, id)
			if err := session.Save(); err != nil {
				log.WithError(err).Error("failed to save workspace session")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
				return
			}
			log.WithField("workspace", id).Info("issued new workspace")
		}

		c.Set(handlers.WorkspaceContextKey, store.Get(id))
		c.Next()
	}
}
