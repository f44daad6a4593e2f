package main

import (
	"log/slog"

	"github.com/yanqian/recombooks/internal/domain/recommendation"
	"github.com/yanqian/recombooks/internal/infra/catalog/googlebooks"
	"github.com/yanqian/recombooks/internal/infra/config"
	"github.com/yanqian/recombooks/internal/infra/llm/chatgpt"
	"github.com/yanqian/recombooks/internal/infra/llm/gemini"
)

func provideRecommendationConfig(cfg *config.Config, logger *slog.Logger) recommendation.Config {
	missing := cfg.MissingCredentials()
	if len(missing) > 0 {
		logger.Error("upstream credentials missing, recommendations will fail until configured", "missing", missing)
	}
	return recommendation.Config{
		Prompt:             cfg.Recommendation.Prompt,
		MaxTitles:          cfg.Recommendation.MaxTitles,
		MissingCredentials: missing,
	}
}

func provideTextGenerator(cfg *config.Config, logger *slog.Logger) recommendation.TextGenerator {
	if cfg.LLM.Provider == config.ProviderOpenAI {
		logger.Info("text generator enabled", "provider", config.ProviderOpenAI, "model", cfg.LLM.Model)
		return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.Temperature, cfg.LLM.Timeout)
	}
	safety := make([]gemini.SafetySetting, 0, len(cfg.LLM.SafetySettings))
	for _, s := range cfg.LLM.SafetySettings {
		safety = append(safety, gemini.SafetySetting{Category: s.Category, Threshold: s.Threshold})
	}
	logger.Info("text generator enabled", "provider", config.ProviderGemini, "model", cfg.LLM.Model)
	return gemini.NewClient(cfg.LLM.APIKey, gemini.Options{
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Temperature:    cfg.LLM.Temperature,
		Timeout:        cfg.LLM.Timeout,
		SafetySettings: safety,
	})
}

func provideCatalogClient(cfg *config.Config) *googlebooks.Client {
	return googlebooks.NewClient(cfg.Catalog.APIKey, cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
}
