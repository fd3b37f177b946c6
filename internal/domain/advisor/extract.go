package advisor

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// FallbackAnswer replaces an empty free-text completion.
const FallbackAnswer = "Sorry, I could not generate a response at this time."

const fallbackAnalysis = "Weather and risk analysis unavailable, showing basic recommendations."

// Recommendation is one suggested item. Priority is empty for weather analysis.
type Recommendation struct {
	Item     string `json:"item"`
	Reason   string `json:"reason"`
	Priority string `json:"priority,omitempty"`
}

// Analysis is the parsed JSON answer of the structured use cases.
type Analysis struct {
	Analysis        string           `json:"analysis"`
	Recommendations []Recommendation `json:"recommendations"`
}

// FallbackAnalysisResult is substituted when no usable JSON object is found.
func FallbackAnalysisResult() Analysis {
	return Analysis{
		Analysis: fallbackAnalysis,
		Recommendations: []Recommendation{
			{Item: "torch", Reason: "general safety", Priority: "medium"},
			{Item: "first aid kit", Reason: "emergency preparedness", Priority: "high"},
			{Item: "water bottle", Reason: "stay hydrated", Priority: "medium"},
		},
	}
}

const weatherAnalysisSchema = `{
  "type": "object",
  "required": ["analysis", "recommendations"],
  "properties": {
    "analysis": {"type": "string"},
    "recommendations": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["item", "reason"],
        "properties": {
          "item": {"type": "string"},
          "reason": {"type": "string"}
        }
      }
    }
  }
}`

const recommendationsSchema = `{
  "type": "object",
  "required": ["analysis", "recommendations"],
  "properties": {
    "analysis": {"type": "string"},
    "recommendations": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["item", "reason", "priority"],
        "properties": {
          "item": {"type": "string"},
          "reason": {"type": "string"},
          "priority": {"type": "string", "enum": ["high", "medium", "low"]}
        }
      }
    }
  }
}`

// ExtractionObserver counts degraded extractions.
type ExtractionObserver interface {
	ObserveExtractionFallback(useCase string)
	ObserveSchemaIssue(useCase string)
}

// Extractor turns raw completions into results. It never fails.
type Extractor struct {
	logger   *slog.Logger
	observer ExtractionObserver
	schemas  map[UseCase]*gojsonschema.Schema
}

// NewExtractor compiles the answer schemas used for drift logging.
func NewExtractor(logger *slog.Logger, observer ExtractionObserver) *Extractor {
	e := &Extractor{
		logger:   logger.With("component", "advisor.extractor"),
		observer: observer,
		schemas:  make(map[UseCase]*gojsonschema.Schema, 2),
	}
	for useCase, raw := range map[UseCase]string{
		UseCaseWeatherAnalysis: weatherAnalysisSchema,
		UseCaseRecommendations: recommendationsSchema,
	} {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
		if err != nil {
			e.logger.Error("compile answer schema", "useCase", useCase, "error", err)
			continue
		}
		e.schemas[useCase] = schema
	}
	return e
}

// Text trims a free-text completion, substituting FallbackAnswer when empty.
func (e *Extractor) Text(useCase UseCase, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		e.logger.Warn("empty completion, using fallback answer", "useCase", useCase)
		e.fallback(useCase)
		return FallbackAnswer
	}
	return trimmed
}

// JSON parses the first complete object embedded in raw. The second return
// value is false when the fallback result was substituted.
func (e *Extractor) JSON(useCase UseCase, raw string) (Analysis, bool) {
	object, ok := FindJSONObject(raw)
	if !ok {
		e.logger.Warn("no json object in completion, using fallback", "useCase", useCase)
		e.fallback(useCase)
		return FallbackAnalysisResult(), false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(object), &fields); err != nil {
		e.logger.Warn("invalid json in completion, using fallback", "useCase", useCase, "error", err)
		e.fallback(useCase)
		return FallbackAnalysisResult(), false
	}

	e.checkSchema(useCase, object)

	out := Analysis{Recommendations: []Recommendation{}}
	if rawAnalysis, ok := fields["analysis"]; ok {
		if err := json.Unmarshal(rawAnalysis, &out.Analysis); err != nil {
			e.logger.Warn("analysis is not a string, leaving it empty", "useCase", useCase, "error", err)
		}
	}
	if rawRecs, ok := fields["recommendations"]; ok {
		out.Recommendations = decodeRecommendations(rawRecs)
	}
	return out, true
}

// decodeRecommendations keeps well-formed items in model order; a non-array yields an empty list.
func decodeRecommendations(raw json.RawMessage) []Recommendation {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []Recommendation{}
	}
	recs := make([]Recommendation, 0, len(items))
	for _, item := range items {
		var rec Recommendation
		if err := json.Unmarshal(item, &rec); err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	return recs
}

func (e *Extractor) checkSchema(useCase UseCase, object string) {
	schema, ok := e.schemas[useCase]
	if !ok {
		return
	}
	result, err := schema.Validate(gojsonschema.NewStringLoader(object))
	if err != nil || result.Valid() {
		return
	}
	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.Field()+": "+desc.Description())
	}
	e.logger.Warn("completion json drifted from expected shape", "useCase", useCase, "issues", issues)
	if e.observer != nil {
		e.observer.ObserveSchemaIssue(string(useCase))
	}
}

func (e *Extractor) fallback(useCase UseCase) {
	if e.observer != nil {
		e.observer.ObserveExtractionFallback(string(useCase))
	}
}

// FindJSONObject returns the first balanced {...} substring of s. Braces inside
// JSON strings are ignored. If an opening brace never closes, scanning resumes
// at the next one.
func FindJSONObject(s string) (string, bool) {
	for start := strings.IndexByte(s, '{'); start >= 0; {
		if end, ok := matchObject(s, start); ok {
			return s[start : end+1], true
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

func matchObject(s string, start int) (int, bool) {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
