package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "concierge", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "openai", cfg.AI.DefaultProvider)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.AI.GeminiModel)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.OpenAIModel)
	assert.Equal(t, 60*time.Second, cfg.AI.RequestTimeout)
	assert.Equal(t, float64(60), cfg.AI.RequestsPerMin)
	assert.Equal(t, 2*time.Minute, cfg.Demo.CaseTimeout)
	assert.True(t, cfg.Demo.Streaming)
	assert.False(t, cfg.ErrorTracking.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("DEMO_STREAMING", "false")
	t.Setenv("DEMO_CASE_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "test-key", cfg.AI.GeminiKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.AI.GeminiModel)
	assert.False(t, cfg.Demo.Streaming)
	assert.Equal(t, 30*time.Second, cfg.Demo.CaseTimeout)
}
