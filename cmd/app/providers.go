package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/yanqian/safeland/internal/domain/advisor"
	"github.com/yanqian/safeland/internal/domain/risk"
	"github.com/yanqian/safeland/internal/infra/config"
	"github.com/yanqian/safeland/internal/infra/llm/chatgpt"
	"github.com/yanqian/safeland/internal/infra/llm/gemini"
	"github.com/yanqian/safeland/internal/infra/riskrepo"
	"github.com/yanqian/safeland/internal/infra/weatherapi"
)

func provideClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

func provideRiskConfig(cfg *config.Config) risk.Config {
	return risk.Config{SimulatedLatency: cfg.Risk.SimulatedLatency}
}

// provideRiskTable reads the curated table from Postgres when a DSN is set and
// falls back to the built-in table on any failure.
func provideRiskTable(ctx context.Context, cfg *config.Config, logger *slog.Logger) risk.Table {
	fallback := risk.CuratedTable()
	dsn := strings.TrimSpace(cfg.Risk.Postgres.DSN)
	if dsn == "" {
		logger.Info("risk postgres dsn not set, using built-in table")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using built-in table", "error", err)
		return fallback
	}
	if cfg.Risk.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Risk.Postgres.MaxConns
	}
	if cfg.Risk.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Risk.Postgres.MinConns
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using built-in table", "error", err)
		return fallback
	}
	// The table is read once; the pool is not needed afterwards.
	defer pool.Close()

	table, err := riskrepo.NewPostgresLoader(pool).Load(ctx)
	if err != nil {
		logger.Error("failed to load curated risk table, using built-in table", "error", err)
		return fallback
	}
	if len(table) == 0 {
		logger.Warn("curated risk table is empty, using built-in table")
		return fallback
	}
	logger.Info("curated risk table loaded from postgres", "locations", len(table))
	return table
}

func provideRiskLookup(svc risk.Service) risk.Lookup {
	return svc
}

func provideAdvisorConfig(cfg *config.Config) advisor.Config {
	return advisor.Config{
		Model:                cfg.LLM.Model,
		Temperature:          cfg.LLM.Temperature,
		ChatMaxTokens:        cfg.LLM.ChatMaxTokens,
		ExplanationMaxTokens: cfg.LLM.ExplanationMaxTokens,
	}
}

func provideChatClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (advisor.ChatClient, error) {
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.LLM.APIKey)
		if err != nil {
			return nil, err
		}
		logger.Info("using gemini chat backend", "model", cfg.LLM.Model)
		return client, nil
	case config.ProviderOpenAI, "":
		client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
		if err != nil {
			return nil, err
		}
		logger.Info("using openai-compatible chat backend", "baseUrl", cfg.LLM.BaseURL, "model", cfg.LLM.Model)
		return client, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

func provideWeatherClient(cfg *config.Config) (*weatherapi.Client, error) {
	return weatherapi.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Timeout)
}
