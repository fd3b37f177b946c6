package weather

import "context"

// Place identifies the resolved location of a provider response.
type Place struct {
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	TimeZone  string  `json:"tz_id"`
	LocalTime string  `json:"localtime"`
}

// Current holds observed conditions.
type Current struct {
	Condition    string
	TempC        float64
	TempF        float64
	FeelsLikeC   float64
	FeelsLikeF   float64
	Humidity     float64
	WindKph      float64
	WindMph      float64
	WindDir      string
	PrecipMM     float64
	VisibilityKM float64
	UV           float64
	PressureMB   float64
	Cloud        float64
	IsDay        bool
}

// Day is the one-day forecast.
type Day struct {
	MaxTempC      float64
	MaxTempF      float64
	MinTempC      float64
	MinTempF      float64
	Condition     string
	ChanceOfRain  float64
	TotalPrecipMM float64
	MaxWindKph    float64
	AvgHumidity   float64
	UV            float64
}

// Alert is an active weather warning.
type Alert struct {
	Headline string
	Severity string
	Areas    string
	Category string
}

// Snapshot is the normalized provider response for one request.
type Snapshot struct {
	Place    Place
	Current  Current
	Forecast *Day
	Alerts   []Alert
}

// Provider fetches weather data for a free-text location query.
type Provider interface {
	Forecast(ctx context.Context, location string) (Snapshot, error)
	Locate(ctx context.Context, location string) (Place, error)
}
