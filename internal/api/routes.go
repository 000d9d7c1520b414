package api

import (
	"questionai/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up the page and API routes. Every route except the
// health check runs inside the caller's workspace.
func SetupRoutes(router *gin.Engine, handler *handlers.Handler, frontendURL string) {
	router.Use(CORSMiddleware(frontendURL))

	router.GET("/healthz", handler.HandleHealth)

	session := router.Group("/")
	session.Use(WorkspaceRequired(handler.Store, handler.Log))
	{
		// --- Page ---
		session.GET("/", handler.HandleIndex)
		session.POST("/generate", handler.HandleGenerate)
		session.GET("/export.pdf", handler.HandleExportPDF)

		// --- JSON API ---
		api := session.Group("/api")
		api.POST("/questions", handler.HandleGenerateQuestions)
		api.GET("/state", handler.HandleState)
		api.POST("/export/publish", handler.HandlePublishPDF)
	}
}
