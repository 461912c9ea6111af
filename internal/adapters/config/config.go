package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"concierge/pkg/errors"
)

type Config struct {
	App           AppConfig
	AI            AIConfig
	Demo          DemoConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"concierge"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type AIConfig struct {
	GeminiKey       string        `envconfig:"GEMINI_API_KEY"`
	OpenAIKey       string        `envconfig:"OPENAI_API_KEY"`
	DefaultProvider string        `envconfig:"DEFAULT_AI_PROVIDER" default:"openai"`
	GeminiModel     string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash-lite"`
	OpenAIModel     string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	RequestTimeout  time.Duration `envconfig:"AI_REQUEST_TIMEOUT" default:"60s"`
	RequestsPerMin  float64       `envconfig:"AI_REQUESTS_PER_MINUTE" default:"60"`
}

type DemoConfig struct {
	CaseTimeout time.Duration `envconfig:"DEMO_CASE_TIMEOUT" default:"2m"`
	Streaming   bool          `envconfig:"DEMO_STREAMING" default:"true"`
	MetricsAddr string        `envconfig:"DEMO_METRICS_ADDR"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"development"`
}

// Load reads configuration from environment variables.
// It first tries to load a .env file, which is useful for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
