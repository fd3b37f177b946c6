package advisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/yanqian/safeland/internal/domain/risk"
	"github.com/yanqian/safeland/internal/domain/weather"
	"github.com/yanqian/safeland/internal/infra/llm/chatgpt"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bernSnapshot() weather.Snapshot {
	return weather.Snapshot{
		Place: weather.Place{
			Name:      "Bern",
			Region:    "Bern",
			Country:   "Switzerland",
			Lat:       46.95,
			Lon:       7.45,
			TimeZone:  "Europe/Zurich",
			LocalTime: "2025-09-27 10:00",
		},
		Current: weather.Current{
			Condition:    "Partly cloudy",
			TempC:        9.2,
			TempF:        48.6,
			FeelsLikeC:   7.1,
			FeelsLikeF:   44.8,
			Humidity:     81,
			WindKph:      11.2,
			WindMph:      6.9,
			WindDir:      "WSW",
			PrecipMM:     0,
			VisibilityKM: 10,
			UV:           2,
			PressureMB:   1019,
			Cloud:        50,
			IsDay:        true,
		},
		Forecast: &weather.Day{
			MaxTempC:      14.3,
			MaxTempF:      57.7,
			MinTempC:      6.8,
			MinTempF:      44.2,
			Condition:     "Patchy rain nearby",
			ChanceOfRain:  71,
			TotalPrecipMM: 1.4,
			MaxWindKph:    15.8,
			AvgHumidity:   78,
			UV:            1.5,
		},
	}
}

type stubWeather struct {
	snapshot weather.Snapshot
	place    weather.Place
	err      error

	mu      sync.Mutex
	queries []string
}

func (s *stubWeather) Forecast(_ context.Context, location string) (weather.Snapshot, error) {
	s.mu.Lock()
	s.queries = append(s.queries, location)
	s.mu.Unlock()
	if s.err != nil {
		return weather.Snapshot{}, s.err
	}
	return s.snapshot, nil
}

func (s *stubWeather) Locate(_ context.Context, location string) (weather.Place, error) {
	if s.err != nil {
		return weather.Place{}, s.err
	}
	return s.place, nil
}

type stubRisks struct {
	table risk.Table

	mu    sync.Mutex
	calls int
}

func (s *stubRisks) Lookup(_ context.Context, location string) risk.Record {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.table[risk.NormalizeKey(location)]
}

type stubChatClient struct {
	response string
	chunks   []string
	err      error

	requests []chatgpt.ChatCompletionRequest
}

func (s *stubChatClient) CreateChatCompletion(_ context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return chatgpt.ChatCompletionResponse{}, s.err
	}
	return chatgpt.ChatCompletionResponse{
		Choices: []chatgpt.Choice{{Message: chatgpt.Message{Role: "assistant", Content: s.response}}},
	}, nil
}

func (s *stubChatClient) CreateChatCompletionStream(_ context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.Stream, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return &stubStream{chunks: s.chunks}, nil
}

type stubStream struct {
	chunks []string
	err    error
	idx    int
	closed bool
}

func (s *stubStream) Recv() (chatgpt.ChatCompletionStreamChunk, error) {
	if s.idx >= len(s.chunks) {
		if s.err != nil {
			return chatgpt.ChatCompletionStreamChunk{}, s.err
		}
		return chatgpt.ChatCompletionStreamChunk{}, io.EOF
	}
	content := s.chunks[s.idx]
	s.idx++
	return chatgpt.ChatCompletionStreamChunk{
		Choices: []chatgpt.StreamChoice{{Delta: chatgpt.Message{Content: content}}},
	}, nil
}

func (s *stubStream) Close() error {
	s.closed = true
	return nil
}

type countingObserver struct {
	mu          sync.Mutex
	fallbacks   []string
	schema      []string
	completions []string
}

func (o *countingObserver) ObserveExtractionFallback(useCase string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fallbacks = append(o.fallbacks, useCase)
}

func (o *countingObserver) ObserveSchemaIssue(useCase string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.schema = append(o.schema, useCase)
}

func (o *countingObserver) ObserveCompletion(useCase, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.completions = append(o.completions, useCase+":"+outcome)
}

var errUpstream = errors.New("upstream status=503")
