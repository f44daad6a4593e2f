package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported text generation providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// maxRecommendedTitles bounds recommendation.maxTitles.
const maxRecommendedTitles = 3

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP           HTTPConfig           `yaml:"http"`
	LLM            LLMConfig            `yaml:"llm"`
	Catalog        CatalogConfig        `yaml:"catalog"`
	Recommendation RecommendationConfig `yaml:"recommendation"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// LLMConfig contains the generative-language provider settings.
type LLMConfig struct {
	Provider       string          `yaml:"provider"`
	APIKey         string          `yaml:"apiKey"`
	BaseURL        string          `yaml:"baseUrl"`
	Model          string          `yaml:"model"`
	Temperature    float32         `yaml:"temperature"`
	Timeout        time.Duration   `yaml:"timeout"`
	SafetySettings []SafetySetting `yaml:"safetySettings"`
}

// SafetySetting maps to a Gemini harm category threshold.
type SafetySetting struct {
	Category  string `yaml:"category"`
	Threshold string `yaml:"threshold"`
}

// CatalogConfig contains the book catalog (Google Books) settings.
type CatalogConfig struct {
	APIKey  string        `yaml:"apiKey"`
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// RecommendationConfig drives the recommendation domain.
type RecommendationConfig struct {
	Prompt    string `yaml:"prompt"`
	MaxTitles int    `yaml:"maxTitles"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := firstEnv("GEMINI_API_KEY", "LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := firstEnv("GOOGLE_BOOKS_API_KEY", "CATALOG_API_KEY"); v != "" {
		cfg.Catalog.APIKey = v
	}
	if v := os.Getenv("CATALOG_BASE_URL"); v != "" {
		cfg.Catalog.BaseURL = v
	}
	if v := os.Getenv("CATALOG_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Catalog.Timeout = parsed
		}
	}
	if v := os.Getenv("RECOMMENDATION_PROMPT"); v != "" {
		cfg.Recommendation.Prompt = v
	}
	if v := os.Getenv("RECOMMENDATION_MAX_TITLES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Recommendation.MaxTitles = parsed
		}
	}
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if clean := strings.TrimSpace(part); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 90 * time.Second,
		},
		LLM: LLMConfig{
			Provider: ProviderGemini,
			Model:    "gemini-pro",
			Timeout:  60 * time.Second,
		},
		Catalog: CatalogConfig{
			BaseURL: "https://www.googleapis.com/books/v1",
			Timeout: 10 * time.Second,
		},
		Recommendation: RecommendationConfig{
			Prompt:    `You are a book recommendation expert. Based on these preferences, recommend exactly 3 bestselling and highly-rated books (4+ stars on Goodreads). Return ONLY the book titles in a simple array format like this: ["Title 1", "Title 2", "Title 3"]. NO other text or explanation. Here are the preferences: %s`,
			MaxTitles: 3,
		},
	}
}

// Validate ensures the configuration is safe to use. API keys are not
// checked here; see MissingCredentials.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Timeout < 0 {
		return errors.New("llm.timeout cannot be negative")
	}
	if c.Catalog.Timeout < 0 {
		return errors.New("catalog.timeout cannot be negative")
	}
	if !strings.Contains(c.Recommendation.Prompt, "%s") {
		return errors.New("recommendation.prompt must contain a %s placeholder")
	}
	if c.Recommendation.MaxTitles <= 0 {
		return errors.New("recommendation.maxTitles must be positive")
	}
	if c.Recommendation.MaxTitles > maxRecommendedTitles {
		return fmt.Errorf("recommendation.maxTitles cannot exceed %d", maxRecommendedTitles)
	}
	return nil
}

// MissingCredentials lists the upstream credentials that are not configured.
func (c *Config) MissingCredentials() []string {
	var missing []string
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		missing = append(missing, "llm.apiKey")
	}
	if strings.TrimSpace(c.Catalog.APIKey) == "" {
		missing = append(missing, "catalog.apiKey")
	}
	return missing
}
