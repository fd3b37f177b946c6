package advisor

// Config captures model parameters per use case.
type Config struct {
	Model                string
	Temperature          float32
	ChatMaxTokens        int
	ExplanationMaxTokens int
}

// ExplainRequest asks for a short risk explanation. Missing scores are looked up.
type ExplainRequest struct {
	Location      string `validate:"required"`
	FloodRisk     *float64
	LandslideRisk *float64
}

// WeatherRequest asks for a weather analysis.
type WeatherRequest struct {
	Location string `validate:"required"`
}

// RecommendRequest asks for packing recommendations.
type RecommendRequest struct {
	Location      string `validate:"required"`
	FloodRisk     *float64
	LandslideRisk *float64
	Profile       *UserProfile
}

// ChatRequest is a single-turn question about a location.
type ChatRequest struct {
	Location      string `validate:"required"`
	Question      string `validate:"required"`
	FloodRisk     *float64
	LandslideRisk *float64
}

// Explanation is the risk explanation result.
type Explanation struct {
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
}

// WeatherAnalysis is the weather analysis result.
type WeatherAnalysis struct {
	Timestamp       string           `json:"timestamp"`
	Description     string           `json:"description"`
	Recommendations []Recommendation `json:"recommendations"`
	WeatherSummary  string           `json:"weatherSummary"`
	StructuredData  Structured       `json:"structuredData"`
}

// ConditionsWeather is the raw current conditions echoed with recommendations.
type ConditionsWeather struct {
	Condition     string  `json:"condition"`
	Temperature   float64 `json:"temperature"`
	FeelsLike     float64 `json:"feelsLike"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	Precipitation float64 `json:"precipitation"`
	Visibility    float64 `json:"visibility"`
	UVIndex       float64 `json:"uvIndex"`
	IsNight       bool    `json:"isNight"`
}

// ConditionsForecast is the raw forecast echoed with recommendations.
type ConditionsForecast struct {
	MaxTemp      float64 `json:"maxTemp"`
	MinTemp      float64 `json:"minTemp"`
	ChanceOfRain float64 `json:"chanceOfRain"`
	Condition    string  `json:"condition"`
}

// Conditions groups the inputs a recommendation was based on.
type Conditions struct {
	Weather  ConditionsWeather   `json:"weather"`
	Forecast *ConditionsForecast `json:"forecast"`
	Risks    Risks               `json:"risks"`
}

// Recommendations is the packing recommendations result.
type Recommendations struct {
	Timestamp       string           `json:"timestamp"`
	Location        string           `json:"location"`
	Analysis        string           `json:"analysis"`
	Recommendations []Recommendation `json:"recommendations"`
	Conditions      Conditions       `json:"conditions"`
}

// ChatContext echoes the context attached to a chat answer.
type ChatContext struct {
	Weather string `json:"weather"`
	Risks   Risks  `json:"risks"`
}

// ChatAnswer is the chat result.
type ChatAnswer struct {
	Timestamp string      `json:"timestamp"`
	Question  string      `json:"question"`
	Answer    string      `json:"answer"`
	Location  string      `json:"location"`
	Context   ChatContext `json:"context"`
}
