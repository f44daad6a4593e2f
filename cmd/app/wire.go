//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/recombooks/internal/bootstrap"
	"github.com/yanqian/recombooks/internal/domain/recommendation"
	"github.com/yanqian/recombooks/internal/infra/catalog/googlebooks"
	"github.com/yanqian/recombooks/internal/infra/config"
	httpiface "github.com/yanqian/recombooks/internal/interface/http"
	"github.com/yanqian/recombooks/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideRecommendationConfig,
		provideTextGenerator,
		provideCatalogClient,
		wire.Bind(new(recommendation.Catalog), new(*googlebooks.Client)),
		recommendation.NewService,
		httpiface.NewRecommendationHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
