package advisor

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/safeland/internal/domain/risk"
	"github.com/yanqian/safeland/internal/domain/weather"
	apperrors "github.com/yanqian/safeland/pkg/errors"
)

var testConfig = Config{Model: "swiss-ai/Apertus-70B", Temperature: 0.2, ChatMaxTokens: 300}

func newTestService(client ChatClient, provider weather.Provider, risks risk.Lookup, observer Observer) *service {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 9, 27, 8, 30, 0, 0, time.UTC))
	return NewService(testConfig, client, provider, risks, observer, clock, discardLogger()).(*service)
}

func ptr(v float64) *float64 { return &v }

func TestRecommendBernEndToEnd(t *testing.T) {
	client := &stubChatClient{response: "Sure! " + `{"analysis":"Cool and showery.","recommendations":[` +
		`{"item":"waterproof jacket","reason":"71% chance of rain","priority":"high"},` +
		`{"item":"warm layer","reason":"lows near 7°C","priority":"medium"}]}`}
	risks := &stubRisks{table: risk.CuratedTable()}
	observer := &countingObserver{}
	svc := newTestService(client, &stubWeather{snapshot: bernSnapshot()}, risks, observer)

	result, err := svc.Recommend(context.Background(), RecommendRequest{Location: "bern"})
	require.NoError(t, err)

	require.Equal(t, 1, risks.calls)
	require.Len(t, client.requests, 1)
	req := client.requests[0]
	require.False(t, req.Stream)
	require.Equal(t, "swiss-ai/Apertus-70B", req.Model)
	require.Contains(t, req.Messages[1].Content, "Flood Risk: 2.1/5.0, Landslide Risk: 2.5/5.0")

	require.Equal(t, "2025-09-27T08:30:00.000Z", result.Timestamp)
	require.Equal(t, "Bern, Switzerland", result.Location)
	require.Equal(t, "Cool and showery.", result.Analysis)
	require.Equal(t, []Recommendation{
		{Item: "waterproof jacket", Reason: "71% chance of rain", Priority: "high"},
		{Item: "warm layer", Reason: "lows near 7°C", Priority: "medium"},
	}, result.Recommendations)
	require.Equal(t, Risks{Flood: 2.1, Landslide: 2.5}, result.Conditions.Risks)
	require.False(t, result.Conditions.Weather.IsNight)
	require.NotNil(t, result.Conditions.Forecast)
	require.Equal(t, 71.0, result.Conditions.Forecast.ChanceOfRain)
	require.Equal(t, []string{"recommendations:ok"}, observer.completions)
	require.Empty(t, observer.fallbacks)
}

func TestRecommendUsesSuppliedRisksAndFallback(t *testing.T) {
	client := &stubChatClient{response: "no json today"}
	risks := &stubRisks{table: risk.CuratedTable()}
	svc := newTestService(client, &stubWeather{snapshot: bernSnapshot()}, risks, nil)

	result, err := svc.Recommend(context.Background(), RecommendRequest{
		Location:      "bern",
		FloodRisk:     ptr(4.4),
		LandslideRisk: ptr(0.3),
		Profile:       &UserProfile{Experience: "beginner"},
	})
	require.NoError(t, err)
	require.Zero(t, risks.calls)
	require.Contains(t, client.requests[0].Messages[1].Content, "Flood Risk: 4.4/5.0, Landslide Risk: 0.3/5.0")
	require.Contains(t, client.requests[0].Messages[1].Content, "User profile:")
	require.Equal(t, FallbackAnalysisResult().Recommendations, result.Recommendations)
}

func TestRecommendValidation(t *testing.T) {
	client := &stubChatClient{}
	provider := &stubWeather{snapshot: bernSnapshot()}
	svc := newTestService(client, provider, &stubRisks{}, nil)

	_, err := svc.Recommend(context.Background(), RecommendRequest{Location: "  "})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Empty(t, client.requests)
	require.Empty(t, provider.queries)
}

func TestWeatherFailureAbortsRequest(t *testing.T) {
	client := &stubChatClient{}
	svc := newTestService(client, &stubWeather{err: errUpstream}, &stubRisks{table: risk.CuratedTable()}, nil)

	_, err := svc.Recommend(context.Background(), RecommendRequest{Location: "bern"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeWeather))
	require.ErrorContains(t, err, "status=503")

	_, err = svc.Chat(context.Background(), ChatRequest{Location: "bern", Question: "q"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeWeather))

	_, err = svc.AnalyzeWeather(context.Background(), WeatherRequest{Location: "bern"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeWeather))
	require.Empty(t, client.requests)
}

func TestLLMFailureIsReported(t *testing.T) {
	observer := &countingObserver{}
	svc := newTestService(&stubChatClient{err: errUpstream}, &stubWeather{snapshot: bernSnapshot()}, &stubRisks{table: risk.CuratedTable()}, observer)

	_, err := svc.ExplainRisk(context.Background(), ExplainRequest{Location: "bern"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeLLM))
	require.Equal(t, []string{"risk-explanation:error"}, observer.completions)
}

func TestExplainRiskStreams(t *testing.T) {
	client := &stubChatClient{chunks: []string{"  Bern sits on the Aare", ", so floods are moderate. "}}
	risks := &stubRisks{table: risk.CuratedTable()}
	svc := newTestService(client, &stubWeather{}, risks, nil)

	result, err := svc.ExplainRisk(context.Background(), ExplainRequest{Location: "Bern", FloodRisk: ptr(2.1), LandslideRisk: ptr(2.5)})
	require.NoError(t, err)
	require.Equal(t, "Bern sits on the Aare, so floods are moderate.", result.Description)
	require.True(t, client.requests[0].Stream)
	require.Zero(t, risks.calls)

	empty := newTestService(&stubChatClient{}, &stubWeather{}, risks, nil)
	result, err = empty.ExplainRisk(context.Background(), ExplainRequest{Location: "Bern"})
	require.NoError(t, err)
	require.Equal(t, FallbackAnswer, result.Description)
	require.Equal(t, 1, risks.calls)
}

func TestAnalyzeWeather(t *testing.T) {
	client := &stubChatClient{chunks: []string{`{"analysis":"Showers later.",`, `"recommendations":[{"item":"umbrella","reason":"rain"}]}`}}
	svc := newTestService(client, &stubWeather{snapshot: bernSnapshot()}, &stubRisks{}, nil)

	result, err := svc.AnalyzeWeather(context.Background(), WeatherRequest{Location: "Bern"})
	require.NoError(t, err)
	require.Equal(t, "Showers later.", result.Description)
	require.Equal(t, []Recommendation{{Item: "umbrella", Reason: "rain"}}, result.Recommendations)
	require.Contains(t, result.WeatherSummary, "Weather conditions for Bern, Switzerland")
	require.Nil(t, result.StructuredData.Risk)
	require.True(t, client.requests[0].Stream)
}

func TestAnalyzeWeatherEmptyAnalysisUsesRawText(t *testing.T) {
	client := &stubChatClient{chunks: []string{` {"recommendations":[]} `}}
	svc := newTestService(client, &stubWeather{snapshot: bernSnapshot()}, &stubRisks{}, nil)

	result, err := svc.AnalyzeWeather(context.Background(), WeatherRequest{Location: "Bern"})
	require.NoError(t, err)
	require.Equal(t, `{"recommendations":[]}`, result.Description)
}

func TestChat(t *testing.T) {
	client := &stubChatClient{response: "  Yes, waterproof boots.  "}
	risks := &stubRisks{table: risk.CuratedTable()}
	svc := newTestService(client, &stubWeather{snapshot: bernSnapshot()}, risks, nil)

	answer, err := svc.Chat(context.Background(), ChatRequest{Location: "Bern", Question: " Do I need boots? ", FloodRisk: ptr(3)})
	require.NoError(t, err)
	require.Equal(t, "Yes, waterproof boots.", answer.Answer)
	require.Equal(t, "Do I need boots?", answer.Question)
	require.Equal(t, "Bern", answer.Location)
	require.Equal(t, Risks{Flood: 3, Landslide: 2.5}, answer.Context.Risks)
	require.Equal(t, 1, risks.calls)
	require.Equal(t, 300, client.requests[0].MaxTokens)
	require.Len(t, client.requests[0].Messages, 2)

	_, err = svc.Chat(context.Background(), ChatRequest{Location: "Bern"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.ErrorContains(t, err, "Location and question parameters are required")
}

func TestResolveLocation(t *testing.T) {
	place := weather.Place{Name: "Bern", Country: "Switzerland"}
	svc := newTestService(&stubChatClient{}, &stubWeather{place: place}, &stubRisks{}, nil)

	got, err := svc.ResolveLocation(context.Background(), "46.95,7.45")
	require.NoError(t, err)
	require.Equal(t, place, got)

	_, err = svc.ResolveLocation(context.Background(), "")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	failing := newTestService(&stubChatClient{}, &stubWeather{err: errUpstream}, &stubRisks{}, nil)
	_, err = failing.ResolveLocation(context.Background(), "x")
	require.True(t, apperrors.IsCode(err, apperrors.CodeWeather))
}
