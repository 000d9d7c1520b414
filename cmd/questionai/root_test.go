package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"questionai/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openAIOnlyEnv configures only the OpenAI credential and keeps a stray .env
// file out of the test.
func openAIOnlyEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GENERATOR_PROVIDER", "")
	require.NoError(t, rootCmd.PersistentFlags().Set("env-file", filepath.Join(t.TempDir(), "missing.env")))
	t.Cleanup(func() {
		_ = rootCmd.PersistentFlags().Set("provider", "")
	})
}

func TestLoadConfigProviderFlagSelectsBackend(t *testing.T) {
	openAIOnlyEnv(t)
	require.NoError(t, generateCmd.ParseFlags([]string{"--provider", "openai"}))

	cfg, _, err := loadConfig(generateCmd)
	require.NoError(t, err)
	assert.Equal(t, config.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
}

func TestLoadConfigWithoutFlagValidatesDefault(t *testing.T) {
	openAIOnlyEnv(t)
	require.NoError(t, generateCmd.ParseFlags(nil))

	_, _, err := loadConfig(generateCmd)
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
}

func TestGenerateWithProviderFlag(t *testing.T) {
	openAIOnlyEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": "**Arrays**\nQ1?"},
					"finish_reason": "stop",
				},
			},
		})
	}))
	t.Cleanup(server.Close)
	t.Setenv("OPENAI_BASE_URL", server.URL+"/v1")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	rootCmd.SetArgs([]string{
		"generate", "--provider", "openai",
		"--type", "MCQ", "--count", "1", "--topic", "Arrays", "--level", "Easy",
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "\nArrays\n------\nQ1?\n", out.String())
}
