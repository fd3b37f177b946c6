package advisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/yanqian/safeland/internal/domain/risk"
	"github.com/yanqian/safeland/internal/domain/weather"
	apperrors "github.com/yanqian/safeland/pkg/errors"
	"github.com/yanqian/safeland/pkg/util"
)

const (
	msgLocationRequired         = "Location parameter is required"
	msgLocationQuestionRequired = "Location and question parameters are required"
)

// Service exposes the LLM-backed advisory use cases.
type Service interface {
	ExplainRisk(ctx context.Context, req ExplainRequest) (Explanation, error)
	AnalyzeWeather(ctx context.Context, req WeatherRequest) (WeatherAnalysis, error)
	Recommend(ctx context.Context, req RecommendRequest) (Recommendations, error)
	Chat(ctx context.Context, req ChatRequest) (ChatAnswer, error)
	ResolveLocation(ctx context.Context, location string) (weather.Place, error)
}

// Observer receives completion and extraction telemetry.
type Observer interface {
	ExtractionObserver
	ObserveCompletion(useCase, outcome string, elapsed time.Duration)
}

type service struct {
	cfg       Config
	client    ChatClient
	weather   weather.Provider
	risks     risk.Lookup
	extractor *Extractor
	observer  Observer
	clock     clockwork.Clock
	logger    *slog.Logger
}

// NewService wires the advisor domain.
func NewService(cfg Config, client ChatClient, provider weather.Provider, risks risk.Lookup, observer Observer, clock clockwork.Clock, logger *slog.Logger) Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &service{
		cfg:       cfg,
		client:    client,
		weather:   provider,
		risks:     risks,
		extractor: NewExtractor(logger, observer),
		observer:  observer,
		clock:     clock,
		logger:    logger.With("component", "advisor.service"),
	}
}

func (s *service) ExplainRisk(ctx context.Context, req ExplainRequest) (Explanation, error) {
	req.Location = trim(req.Location)
	if err := check(req, msgLocationRequired); err != nil {
		return Explanation{}, err
	}

	scores := s.resolveRisks(ctx, req.Location, req.FloodRisk, req.LandslideRisk)
	raw, err := s.complete(ctx, UseCaseRiskExplanation, PromptContext{Location: req.Location, Risks: scores}, CompletionOptions{
		MaxTokens: s.cfg.ExplanationMaxTokens,
		Stream:    true,
	})
	if err != nil {
		return Explanation{}, err
	}

	return Explanation{
		Timestamp:   util.Timestamp(s.clock),
		Description: s.extractor.Text(UseCaseRiskExplanation, raw),
	}, nil
}

func (s *service) AnalyzeWeather(ctx context.Context, req WeatherRequest) (WeatherAnalysis, error) {
	req.Location = trim(req.Location)
	if err := check(req, msgLocationRequired); err != nil {
		return WeatherAnalysis{}, err
	}

	snapshot, err := s.fetchWeather(ctx, req.Location)
	if err != nil {
		return WeatherAnalysis{}, err
	}
	summary := Assemble(snapshot, nil, nil)

	raw, err := s.complete(ctx, UseCaseWeatherAnalysis, PromptContext{
		Location: req.Location,
		Snapshot: snapshot,
		Summary:  summary,
	}, CompletionOptions{Stream: true})
	if err != nil {
		return WeatherAnalysis{}, err
	}

	parsed, _ := s.extractor.JSON(UseCaseWeatherAnalysis, raw)
	description := parsed.Analysis
	if description == "" {
		description = trim(raw)
	}
	return WeatherAnalysis{
		Timestamp:       util.Timestamp(s.clock),
		Description:     description,
		Recommendations: parsed.Recommendations,
		WeatherSummary:  summary.NaturalLanguage,
		StructuredData:  summary.Structured,
	}, nil
}

func (s *service) Recommend(ctx context.Context, req RecommendRequest) (Recommendations, error) {
	req.Location = trim(req.Location)
	if err := check(req, msgLocationRequired); err != nil {
		return Recommendations{}, err
	}

	snapshot, scores, err := s.gather(ctx, req.Location, req.FloodRisk, req.LandslideRisk)
	if err != nil {
		return Recommendations{}, err
	}
	summary := Assemble(snapshot, &scores, req.Profile)

	raw, err := s.complete(ctx, UseCaseRecommendations, PromptContext{
		Location: req.Location,
		Snapshot: snapshot,
		Summary:  summary,
		Risks:    scores,
		Profile:  req.Profile,
	}, CompletionOptions{})
	if err != nil {
		return Recommendations{}, err
	}

	parsed, _ := s.extractor.JSON(UseCaseRecommendations, raw)
	return Recommendations{
		Timestamp:       util.Timestamp(s.clock),
		Location:        snapshot.Place.Name + ", " + snapshot.Place.Country,
		Analysis:        parsed.Analysis,
		Recommendations: parsed.Recommendations,
		Conditions:      conditions(snapshot, scores),
	}, nil
}

func (s *service) Chat(ctx context.Context, req ChatRequest) (ChatAnswer, error) {
	req.Location, req.Question = trim(req.Location), trim(req.Question)
	if err := check(req, msgLocationQuestionRequired); err != nil {
		return ChatAnswer{}, err
	}

	snapshot, scores, err := s.gather(ctx, req.Location, req.FloodRisk, req.LandslideRisk)
	if err != nil {
		return ChatAnswer{}, err
	}
	summary := Assemble(snapshot, &scores, nil)

	raw, err := s.complete(ctx, UseCaseChat, PromptContext{
		Location: req.Location,
		Snapshot: snapshot,
		Summary:  summary,
		Risks:    scores,
		Question: req.Question,
	}, CompletionOptions{MaxTokens: s.cfg.ChatMaxTokens})
	if err != nil {
		return ChatAnswer{}, err
	}

	return ChatAnswer{
		Timestamp: util.Timestamp(s.clock),
		Question:  req.Question,
		Answer:    s.extractor.Text(UseCaseChat, raw),
		Location:  req.Location,
		Context: ChatContext{
			Weather: summary.NaturalLanguage,
			Risks:   scores,
		},
	}, nil
}

func (s *service) ResolveLocation(ctx context.Context, location string) (weather.Place, error) {
	location = trim(location)
	if location == "" {
		return weather.Place{}, apperrors.Wrap(apperrors.CodeInvalidInput, msgLocationRequired, nil)
	}
	place, err := s.weather.Locate(ctx, location)
	if err != nil {
		return weather.Place{}, apperrors.Wrap(apperrors.CodeWeather, "failed to get location name", err)
	}
	return place, nil
}

// gather fetches weather and, when scores are missing, the risk record concurrently.
func (s *service) gather(ctx context.Context, location string, flood, landslide *float64) (weather.Snapshot, Risks, error) {
	var (
		snapshot weather.Snapshot
		scores   Risks
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapshot, err = s.fetchWeather(gctx, location)
		return err
	})
	g.Go(func() error {
		scores = s.resolveRisks(gctx, location, flood, landslide)
		return nil
	})
	if err := g.Wait(); err != nil {
		return weather.Snapshot{}, Risks{}, err
	}
	return snapshot, scores, nil
}

func (s *service) fetchWeather(ctx context.Context, location string) (weather.Snapshot, error) {
	snapshot, err := s.weather.Forecast(ctx, location)
	if err != nil {
		return weather.Snapshot{}, apperrors.Wrap(apperrors.CodeWeather, "failed to fetch weather", err)
	}
	s.logger.Info("weather fetched", "location", location, "resolved", snapshot.Place.Name, "alerts", len(snapshot.Alerts))
	return snapshot, nil
}

// resolveRisks prefers caller supplied scores and looks up only when one is missing.
func (s *service) resolveRisks(ctx context.Context, location string, flood, landslide *float64) Risks {
	if flood != nil && landslide != nil {
		return Risks{Flood: *flood, Landslide: *landslide}
	}
	record := s.risks.Lookup(ctx, location)
	out := Risks{Flood: record.FloodRisk, Landslide: record.LandslideRisk}
	if flood != nil {
		out.Flood = *flood
	}
	if landslide != nil {
		out.Landslide = *landslide
	}
	return out
}

func (s *service) complete(ctx context.Context, useCase UseCase, pc PromptContext, opts CompletionOptions) (string, error) {
	messages, err := BuildMessages(useCase, pc)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "unsupported use case", err)
	}
	opts.Model = s.cfg.Model
	opts.Temperature = s.cfg.Temperature

	start := s.clock.Now()
	raw, err := Complete(ctx, s.client, messages, opts)
	elapsed := s.clock.Since(start)
	if err != nil {
		s.observe(useCase, "error", elapsed)
		return "", apperrors.Wrap(apperrors.CodeLLM, "llm request failed", err)
	}
	s.observe(useCase, "ok", elapsed)
	s.logger.Debug("llm completion", "useCase", useCase, "stream", opts.Stream, "chars", len(raw), "raw", raw)
	return raw, nil
}

func (s *service) observe(useCase UseCase, outcome string, elapsed time.Duration) {
	if s.observer != nil {
		s.observer.ObserveCompletion(string(useCase), outcome, elapsed)
	}
}

func conditions(snapshot weather.Snapshot, scores Risks) Conditions {
	cur := snapshot.Current
	out := Conditions{
		Weather: ConditionsWeather{
			Condition:     cur.Condition,
			Temperature:   cur.TempC,
			FeelsLike:     cur.FeelsLikeC,
			Humidity:      cur.Humidity,
			WindSpeed:     cur.WindKph,
			Precipitation: cur.PrecipMM,
			Visibility:    cur.VisibilityKM,
			UVIndex:       cur.UV,
			IsNight:       !cur.IsDay,
		},
		Risks: scores,
	}
	if day := snapshot.Forecast; day != nil {
		out.Forecast = &ConditionsForecast{
			MaxTemp:      day.MaxTempC,
			MinTemp:      day.MinTempC,
			ChanceOfRain: day.ChanceOfRain,
			Condition:    day.Condition,
		}
	}
	return out
}
