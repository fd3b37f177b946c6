//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/yanqian/safeland/internal/bootstrap"
	"github.com/yanqian/safeland/internal/domain/advisor"
	"github.com/yanqian/safeland/internal/domain/risk"
	"github.com/yanqian/safeland/internal/domain/weather"
	"github.com/yanqian/safeland/internal/infra/config"
	"github.com/yanqian/safeland/internal/infra/weatherapi"
	httpiface "github.com/yanqian/safeland/internal/interface/http"
	"github.com/yanqian/safeland/internal/observability"
	"github.com/yanqian/safeland/pkg/logger"
)

func initializeApp(ctx context.Context) (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		observability.NewMetrics,
		provideClock,
		provideRiskConfig,
		provideRiskTable,
		risk.NewSynthesizer,
		risk.NewService,
		provideRiskLookup,
		provideAdvisorConfig,
		provideChatClient,
		provideWeatherClient,
		advisor.NewService,
		wire.Bind(new(risk.Observer), new(*observability.Metrics)),
		wire.Bind(new(advisor.Observer), new(*observability.Metrics)),
		wire.Bind(new(weather.Provider), new(*weatherapi.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
