package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported generation backends.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var (
	ErrMissingAPIKey       = errors.New("missing API key for the selected generator provider")
	ErrUnsupportedProvider = errors.New("unsupported generator provider")
)

// DefaultSessionMaxAge bounds both the session cookie and how long an idle
// workspace is kept.
const DefaultSessionMaxAge = 7 * 24 * time.Hour

// Config holds application configuration loaded from the environment and an
// optional config file.
type Config struct {
	Port              string        `mapstructure:"port"`
	Provider          string        `mapstructure:"generator_provider"`
	GenerationTimeout time.Duration `mapstructure:"generation_timeout"`
	Gemini            Gemini        `mapstructure:"gemini"`
	OpenAI            OpenAI        `mapstructure:"openai"`
	Session           Session       `mapstructure:"session"`
	R2                R2            `mapstructure:"r2"`
	Log               Log           `mapstructure:"log"`
	GinMode           string        `mapstructure:"gin_mode"`
	FrontendURL       string        `mapstructure:"frontend_url"` // enables CORS for a separate frontend
}

// Gemini configures the Google Gemini backend.
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// OpenAI configures an OpenAI-compatible chat completion backend.
type OpenAI struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"` // optional, for compatible gateways
}

// Session configures the workspace cookie and its backing store.
type Session struct {
	Secret      string        `mapstructure:"secret"`
	MaxAge      time.Duration `mapstructure:"max_age"`
	Secure      bool          `mapstructure:"secure"`
	DatabaseURL string        `mapstructure:"database_url"` // empty means cookie-only sessions
}

// R2 configures optional PDF publishing to Cloudflare R2.
type R2 struct {
	AccountID       string `mapstructure:"account_id"`
	BucketName      string `mapstructure:"bucket_name"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	PublicURL       string `mapstructure:"public_url"`
}

// Enabled reports whether every R2 setting is present.
func (r R2) Enabled() bool {
	return r.AccountID != "" && r.BucketName != "" && r.AccessKeyID != "" &&
		r.SecretAccessKey != "" && r.PublicURL != ""
}

// Log configures the application logger.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// LoadDotEnv loads a .env file into the process environment. A missing file
// is not an error; the returned flag reports whether a file was read.
func LoadDotEnv(files ...string) (bool, error) {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("error loading .env file: %w", err)
	}
	return true, nil
}

// Load reads and validates configuration.
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read reads configuration from ./config/config.yaml (if present) and the
// environment without validating it, so callers can apply overrides first.
// Environment variables win over file values.
func Read() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the selected provider is known and has a credential,
// and that the gin mode is one gin accepts.
func (c *Config) Validate() error {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	switch c.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrMissingAPIKey)
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrMissingAPIKey)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedProvider, c.Provider)
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid GIN_MODE %q", c.GinMode)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("generator_provider", ProviderGemini)
	v.SetDefault("generation_timeout", "2m")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("session.max_age", DefaultSessionMaxAge)
	v.SetDefault("session.secure", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("gin_mode", "debug")
}

// bindEnv maps the flat variable names used in deployments onto nested keys.
func bindEnv(v *viper.Viper) {
	bindings := map[string]string{
		"port":                 "PORT",
		"generator_provider":   "GENERATOR_PROVIDER",
		"generation_timeout":   "GENERATION_TIMEOUT",
		"gemini.api_key":       "GEMINI_API_KEY",
		"gemini.model":         "GEMINI_MODEL",
		"openai.api_key":       "OPENAI_API_KEY",
		"openai.model":         "OPENAI_MODEL",
		"openai.base_url":      "OPENAI_BASE_URL",
		"session.secret":       "SESSION_SECRET",
		"session.max_age":      "SESSION_MAX_AGE",
		"session.secure":       "SESSION_SECURE",
		"session.database_url": "DATABASE_URL",
		"r2.account_id":        "CLOUDFLARE_ACCOUNT_ID",
		"r2.bucket_name":       "R2_BUCKET_NAME",
		"r2.access_key_id":     "R2_ACCESS_KEY_ID",
		"r2.secret_access_key": "R2_SECRET_ACCESS_KEY",
		"r2.public_url":        "R2_PUBLIC_URL",
		"log.level":            "LOG_LEVEL",
		"log.format":           "LOG_FORMAT",
		"gin_mode":             "GIN_MODE",
		"frontend_url":         "FRONTEND_URL",
	}
	for key, env := range bindings {
		_ = v.BindEnv(key, env)
	}
}
