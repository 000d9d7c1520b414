// Package app wires configuration into the generator backends and the HTTP
// server shared by the binaries.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"questionai/internal/api"
	"questionai/internal/api/handlers"
	"questionai/internal/config"
	"questionai/internal/db"
	"questionai/internal/gemini"
	"questionai/internal/openai"
	"questionai/internal/r2"
	"questionai/internal/workspace"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const shutdownGrace = 5 * time.Second

// Generator is a generation backend that holds resources.
type Generator interface {
	workspace.Generator
	ModelName() string
	Close()
}

// NewGenerator builds the backend selected by cfg.Provider.
func NewGenerator(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, log)
	case config.ProviderOpenAI:
		return openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, log)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedProvider, cfg.Provider)
	}
}

// NewRouter builds the gin engine serving the page and the JSON API.
func NewRouter(cfg *config.Config, store *workspace.Store, sessionStore sessions.Store, publisher handlers.Publisher, log logrus.FieldLogger) (*gin.Engine, error) {
	tmpl, err := api.LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.Default()
	router.SetHTMLTemplate(tmpl)
	router.Use(sessions.Sessions(api.SessionName, sessionStore))

	handler := handlers.NewHandler(store, publisher, log)
	api.SetupRoutes(router, handler, cfg.FrontendURL)
	return router, nil
}

// Serve runs the HTTP server until ctx is cancelled, then cancels the
// generation runs in flight and shuts the server down gracefully.
func Serve(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	gin.SetMode(cfg.GinMode)

	gen, err := NewGenerator(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize %s client: %w", cfg.Provider, err)
	}
	defer gen.Close()
	log.WithFields(logrus.Fields{"provider": cfg.Provider, "model": gen.ModelName()}).Info("generator ready")

	var sessionDB *sql.DB
	if cfg.Session.DatabaseURL != "" {
		sessionDB, err = db.Open(ctx, cfg.Session.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect session database: %w", err)
		}
		defer sessionDB.Close()
	}
	sessionStore, err := api.NewSessionStore(cfg.Session, sessionDB, log)
	if err != nil {
		return err
	}

	r2Client, err := r2.NewClient(ctx, cfg.R2, log)
	if err != nil {
		return fmt.Errorf("failed to initialize R2 client: %w", err)
	}
	var publisher handlers.Publisher
	if r2Client != nil {
		publisher = r2Client
	}

	store := workspace.NewStore(gen, log,
		workspace.WithTimeout(cfg.GenerationTimeout),
		workspace.WithIdleTTL(cfg.Session.MaxAge),
	)

	router, err := NewRouter(cfg, store, sessionStore, publisher, log)
	if err != nil {
		store.Close()
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		store.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server...")
	store.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exited properly")
	return nil
}
