package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.ErrorContains(t, err, "read config file")

	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, ProviderGemini, cfg.LLM.Provider)
	require.Equal(t, 3, cfg.Recommendation.MaxTitles)
	require.ElementsMatch(t, []string{"llm.apiKey", "catalog.apiKey"}, cfg.MissingCredentials())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9000"
llm:
  provider: openai
  model: gpt-4o-mini
  apiKey: file-key
  safetySettings:
    - category: HARM_CATEGORY_HATE_SPEECH
      threshold: BLOCK_NONE
catalog:
  timeout: 3s
recommendation:
  maxTitles: 2
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LLM_API_KEY", "env-key")
	t.Setenv("GOOGLE_BOOKS_API_KEY", "books-key")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("LLM_TIMEOUT", "15s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.HTTP.Address)
	require.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	require.Equal(t, "env-key", cfg.LLM.APIKey)
	require.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	require.Equal(t, []SafetySetting{{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"}}, cfg.LLM.SafetySettings)
	require.Equal(t, "books-key", cfg.Catalog.APIKey)
	require.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	require.Equal(t, 2, cfg.Recommendation.MaxTitles)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.Empty(t, cfg.MissingCredentials())
}

func TestGeminiKeyTakesPrecedence(t *testing.T) {
	cfg := defaultConfig()
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("LLM_API_KEY", "generic-key")
	applyEnvOverrides(cfg)
	require.Equal(t, "gemini-key", cfg.LLM.APIKey)
}

func TestLoadRejectsTitleCountAboveLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recommendation:\n  maxTitles: 2\n"), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("RECOMMENDATION_MAX_TITLES", "10")

	_, err := Load()
	require.ErrorContains(t, err, "recommendation.maxTitles")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "empty address", mutate: func(c *Config) { c.HTTP.Address = "" }, wantErr: "http.address"},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "bard" }, wantErr: "llm.provider"},
		{name: "empty model", mutate: func(c *Config) { c.LLM.Model = " " }, wantErr: "llm.model"},
		{name: "prompt without placeholder", mutate: func(c *Config) { c.Recommendation.Prompt = "recommend books" }, wantErr: "placeholder"},
		{name: "non positive titles", mutate: func(c *Config) { c.Recommendation.MaxTitles = 0 }, wantErr: "maxTitles"},
		{name: "too many titles", mutate: func(c *Config) { c.Recommendation.MaxTitles = 4 }, wantErr: "cannot exceed 3"},
		{name: "negative timeout", mutate: func(c *Config) { c.Catalog.Timeout = -time.Second }, wantErr: "catalog.timeout"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			require.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}
