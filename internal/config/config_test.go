package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 2*time.Minute, cfg.GenerationTimeout)
	assert.Equal(t, DefaultSessionMaxAge, cfg.Session.MaxAge)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.R2.Enabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GENERATOR_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:1234/v1")
	t.Setenv("GENERATION_TIMEOUT", "0s")
	t.Setenv("DATABASE_URL", "postgres://localhost/questionai")
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "acct")
	t.Setenv("R2_BUCKET_NAME", "papers")
	t.Setenv("R2_ACCESS_KEY_ID", "id")
	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")
	t.Setenv("R2_PUBLIC_URL", "https://pub.example.dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "http://localhost:1234/v1", cfg.OpenAI.BaseURL)
	assert.Zero(t, cfg.GenerationTimeout)
	assert.Equal(t, "postgres://localhost/questionai", cfg.Session.DatabaseURL)
	assert.True(t, cfg.R2.Enabled())
}

func TestLoadMissingCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestValidateUnknownProvider(t *testing.T) {
	cfg := &Config{Provider: "llama"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	loaded, err := LoadDotEnv(t.TempDir() + "/does-not-exist.env")
	require.NoError(t, err)
	assert.False(t, loaded)
}

func TestValidateGinMode(t *testing.T) {
	cfg := &Config{Provider: ProviderGemini, Gemini: Gemini{APIKey: "k"}, GinMode: "production"}
	assert.Error(t, cfg.Validate())

	cfg.GinMode = "release"
	assert.NoError(t, cfg.Validate())
}

func TestReadSkipsValidation(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Read()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)

	cfg.Provider = ProviderOpenAI
	assert.NoError(t, cfg.Validate())
}
