package advisor

import (
	"fmt"
	"strings"

	"github.com/yanqian/safeland/internal/domain/weather"
	"github.com/yanqian/safeland/internal/infra/llm/chatgpt"
)

// UseCase selects the prompt pair and the response handling.
type UseCase string

const (
	UseCaseChat            UseCase = "chat"
	UseCaseRecommendations UseCase = "recommendations"
	UseCaseWeatherAnalysis UseCase = "weather-analysis"
	UseCaseRiskExplanation UseCase = "risk-explanation"
)

// ExpectsJSON reports whether the model is asked for a JSON object.
func (u UseCase) ExpectsJSON() bool {
	return u == UseCaseRecommendations || u == UseCaseWeatherAnalysis
}

// PromptContext is everything a prompt may draw on for one request.
type PromptContext struct {
	Location string
	Snapshot weather.Snapshot
	Summary  Context
	Risks    Risks
	Profile  *UserProfile
	Question string
}

const (
	riskExplanationSystemPrompt = "You need to create a description in a webpage that explains why in a certain location that it will be given to you by the user there are certain values for flood risk and landslide risk. You can use your geographic knowledge of the location. As your answer will be fed directly in the webpage, please be extremely compact with your answer, while keeping a friendly tone. Your answer really shouldn't go over two sentences"
	weatherAnalysisSystemPrompt = "You are a practical outdoor safety advisor. Analyze weather conditions and recommend specific items people should bring. Always respond with valid JSON format. Be concise but helpful."
	recommendationsSystemPrompt = "You are an expert outdoor safety advisor. Analyze weather and risk conditions to recommend essential items for safety and comfort. Always respond with valid JSON format only."
	chatSystemPrompt            = "You are a knowledgeable outdoor safety advisor and travel expert. Provide practical, safety-focused advice based on weather conditions and risk assessments. Be friendly, concise, and helpful. Always prioritize user safety while being encouraging about their trip planning."
)

// BuildMessages returns the system and user message for a use case.
// Output depends only on its inputs.
func BuildMessages(useCase UseCase, pc PromptContext) ([]chatgpt.Message, error) {
	var system, user string
	switch useCase {
	case UseCaseRiskExplanation:
		system, user = riskExplanationSystemPrompt, riskExplanationPrompt(pc)
	case UseCaseWeatherAnalysis:
		system, user = weatherAnalysisSystemPrompt, weatherAnalysisPrompt(pc)
	case UseCaseRecommendations:
		system, user = recommendationsSystemPrompt, recommendationsPrompt(pc)
	case UseCaseChat:
		system, user = chatSystemPrompt, chatPrompt(pc)
	default:
		return nil, fmt.Errorf("unknown use case %q", useCase)
	}
	return []chatgpt.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}, nil
}

func riskExplanationPrompt(pc PromptContext) string {
	return fmt.Sprintf(
		"Provide a brief explanation (3-4 lines) about the situation in %s. Justify why the flood risk is rated as %s and the landslide risk is rated as %s.",
		pc.Location, num(pc.Risks.Flood), num(pc.Risks.Landslide),
	)
}

func weatherAnalysisPrompt(pc PromptContext) string {
	return `Analyze the following weather conditions and risk data, then provide two things:

1. A brief weather analysis (2-3 sentences) highlighting important aspects for outdoor activities
2. A list of recommended items to bring based on the conditions

Weather data: ` + pc.Summary.NaturalLanguage + `

Please format your response as JSON with this structure:
{
  "analysis": "Brief weather analysis text here",
  "recommendations": [
    {"item": "torch", "reason": "low visibility expected"},
    {"item": "waterproof jacket", "reason": "high chance of rain"},
    {"item": "warm clothing", "reason": "temperature below 10°C"}
  ]
}

Consider factors like temperature, precipitation, wind, visibility, UV index, and time of day. Recommend practical items like: torch/flashlight, waterproof clothing, warm layers, sun protection, sturdy footwear, umbrella, etc.`
}

func recommendationsPrompt(pc PromptContext) string {
	place, cur, day := pc.Snapshot.Place, pc.Snapshot.Current, pc.Snapshot.Forecast

	timeOfDay := "Night"
	if cur.IsDay {
		timeOfDay = "Day"
	}

	var b strings.Builder
	b.WriteString("Based on the following conditions, provide comprehensive recommendations for items to bring when visiting this location:\n\n")
	fmt.Fprintf(&b, "Location: %s, %s\n", place.Name, place.Country)
	fmt.Fprintf(&b, "Weather: %s, %s°C (feels like %s°C)\n", cur.Condition, num(cur.TempC), num(cur.FeelsLikeC))
	fmt.Fprintf(&b, "Humidity: %s%%, Wind: %s km/h\n", num(cur.Humidity), num(cur.WindKph))
	fmt.Fprintf(&b, "Precipitation: %smm, Visibility: %skm\n", num(cur.PrecipMM), num(cur.VisibilityKM))
	fmt.Fprintf(&b, "UV Index: %s, Time: %s\n", num(cur.UV), timeOfDay)
	if day != nil {
		fmt.Fprintf(&b, "Today's forecast: %s°C to %s°C, %s, %s%% chance of rain", num(day.MinTempC), num(day.MaxTempC), day.Condition, num(day.ChanceOfRain))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Flood Risk: %s, Landslide Risk: %s\n", scoreOutOfFive(pc.Risks.Flood), scoreOutOfFive(pc.Risks.Landslide))
	if len(pc.Snapshot.Alerts) > 0 {
		headlines := make([]string, 0, len(pc.Snapshot.Alerts))
		for _, alert := range pc.Snapshot.Alerts {
			headlines = append(headlines, alert.Headline)
		}
		b.WriteString("Weather Alerts: " + strings.Join(headlines, ", "))
	} else {
		b.WriteString("No active alerts")
	}
	b.WriteString("\n")
	if pc.Summary.Profile != "" {
		b.WriteString(pc.Summary.Profile + "\n")
		for _, hint := range pc.Profile.Hints() {
			b.WriteString(hint + "\n")
		}
	}
	b.WriteString(`
Please respond with ONLY a JSON object in this exact format:
{
  "analysis": "Brief analysis of conditions (2-3 sentences)",
  "recommendations": [
    {"item": "item name", "reason": "why this item is needed", "priority": "high|medium|low"},
    {"item": "another item", "reason": "explanation", "priority": "medium"}
  ]
}

Consider items like: torch/flashlight, waterproof jacket, umbrella, warm clothing, sunscreen, hat/cap, sturdy boots, first aid kit, emergency whistle, reflective vest, portable charger, water bottle, snacks, etc. Base priority on safety needs and weather severity.`)
	return b.String()
}

func chatPrompt(pc PromptContext) string {
	return fmt.Sprintf(`You are a helpful outdoor safety and travel assistant. A user is asking about preparations for visiting %s.

CURRENT CONDITIONS:
%s
Flood Risk: %s
Landslide Risk: %s

USER QUESTION: %s

Please provide a helpful, practical response considering the weather conditions and risk levels. Be specific about clothing, gear, safety precautions, or activities as relevant to their question. Keep your response conversational, friendly, and under 200 words.`,
		pc.Location,
		pc.Summary.NaturalLanguage,
		scoreOutOfFive(pc.Risks.Flood),
		scoreOutOfFive(pc.Risks.Landslide),
		pc.Question,
	)
}
