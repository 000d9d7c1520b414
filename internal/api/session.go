package api

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"net/http"

	"questionai/internal/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	gsessions "github.com/gin-contrib/sessions/postgres"
	"github.com/sirupsen/logrus"
)

// SessionName is the cookie carrying the workspace session.
const SessionName = "questionai_session"

// NewSessionStore builds the session store. With a database the sessions
// live in Postgres, otherwise in the signed cookie itself. An empty secret
// is replaced by a random one, so sessions do not survive a restart.
func NewSessionStore(cfg config.Session, sessionDB *sql.DB, log logrus.FieldLogger) (sessions.Store, error) {
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		log.Warn("SESSION_SECRET is not set, using a random key")
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
	}

	var store sessions.Store
	if sessionDB != nil {
		pgStore, err := gsessions.NewStore(sessionDB, secret)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres session store: %w", err)
		}
		store = pgStore
		log.Info("using postgres session store")
	} else {
		store = cookie.NewStore(secret)
		log.Info("using cookie session store")
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
