package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/safeland/internal/domain/weather"
)

// DefaultBaseURL is the weatherapi.com v1 endpoint.
const DefaultBaseURL = "http://api.weatherapi.com/v1"

// Client fetches forecasts and location identity from weatherapi.com.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("weather api key cannot be empty")
	}
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Forecast retrieves current conditions, a one-day forecast and alerts.
func (c *Client) Forecast(ctx context.Context, location string) (weather.Snapshot, error) {
	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("q", location)
	query.Set("days", "1")
	query.Set("aqi", "no")
	query.Set("alerts", "yes")

	var raw forecastResponse
	if err := c.get(ctx, "/forecast.json", query, &raw); err != nil {
		return weather.Snapshot{}, err
	}
	return raw.normalize(), nil
}

// Locate resolves a free-text query or "lat,lon" pair to a named place.
func (c *Client) Locate(ctx context.Context, location string) (weather.Place, error) {
	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("q", location)
	query.Set("aqi", "no")

	var raw currentResponse
	if err := c.get(ctx, "/current.json", query, &raw); err != nil {
		return weather.Place{}, err
	}
	return raw.Location.normalize(), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("weather api error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode weather response: %w", err)
	}
	return nil
}

type apiLocation struct {
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	TimeZone  string  `json:"tz_id"`
	LocalTime string  `json:"localtime"`
}

type apiCondition struct {
	Text string `json:"text"`
}

type apiCurrent struct {
	Condition  apiCondition `json:"condition"`
	TempC      float64      `json:"temp_c"`
	TempF      float64      `json:"temp_f"`
	FeelsLikeC float64      `json:"feelslike_c"`
	FeelsLikeF float64      `json:"feelslike_f"`
	Humidity   float64      `json:"humidity"`
	WindKph    float64      `json:"wind_kph"`
	WindMph    float64      `json:"wind_mph"`
	WindDir    string       `json:"wind_dir"`
	PrecipMM   float64      `json:"precip_mm"`
	VisKM      float64      `json:"vis_km"`
	UV         float64      `json:"uv"`
	PressureMB float64      `json:"pressure_mb"`
	Cloud      float64      `json:"cloud"`
	IsDay      int          `json:"is_day"`
}

type apiDay struct {
	MaxTempC          float64      `json:"maxtemp_c"`
	MaxTempF          float64      `json:"maxtemp_f"`
	MinTempC          float64      `json:"mintemp_c"`
	MinTempF          float64      `json:"mintemp_f"`
	Condition         apiCondition `json:"condition"`
	DailyChanceOfRain float64      `json:"daily_chance_of_rain"`
	TotalPrecipMM     float64      `json:"totalprecip_mm"`
	MaxWindKph        float64      `json:"maxwind_kph"`
	AvgHumidity       float64      `json:"avghumidity"`
	UV                float64      `json:"uv"`
}

type apiAlert struct {
	Headline string `json:"headline"`
	Severity string `json:"severity"`
	Areas    string `json:"areas"`
	Category string `json:"category"`
}

type forecastResponse struct {
	Location apiLocation `json:"location"`
	Current  apiCurrent  `json:"current"`
	Forecast struct {
		ForecastDay []struct {
			Day apiDay `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
	Alerts struct {
		Alert []apiAlert `json:"alert"`
	} `json:"alerts"`
}

type currentResponse struct {
	Location apiLocation `json:"location"`
}

func (l apiLocation) normalize() weather.Place {
	return weather.Place{
		Name:      l.Name,
		Region:    l.Region,
		Country:   l.Country,
		Lat:       l.Lat,
		Lon:       l.Lon,
		TimeZone:  l.TimeZone,
		LocalTime: l.LocalTime,
	}
}

func (r forecastResponse) normalize() weather.Snapshot {
	cur := r.Current
	snapshot := weather.Snapshot{
		Place: r.Location.normalize(),
		Current: weather.Current{
			Condition:    cur.Condition.Text,
			TempC:        cur.TempC,
			TempF:        cur.TempF,
			FeelsLikeC:   cur.FeelsLikeC,
			FeelsLikeF:   cur.FeelsLikeF,
			Humidity:     cur.Humidity,
			WindKph:      cur.WindKph,
			WindMph:      cur.WindMph,
			WindDir:      cur.WindDir,
			PrecipMM:     cur.PrecipMM,
			VisibilityKM: cur.VisKM,
			UV:           cur.UV,
			PressureMB:   cur.PressureMB,
			Cloud:        cur.Cloud,
			IsDay:        cur.IsDay == 1,
		},
	}
	if len(r.Forecast.ForecastDay) > 0 {
		day := r.Forecast.ForecastDay[0].Day
		snapshot.Forecast = &weather.Day{
			MaxTempC:      day.MaxTempC,
			MaxTempF:      day.MaxTempF,
			MinTempC:      day.MinTempC,
			MinTempF:      day.MinTempF,
			Condition:     day.Condition.Text,
			ChanceOfRain:  day.DailyChanceOfRain,
			TotalPrecipMM: day.TotalPrecipMM,
			MaxWindKph:    day.MaxWindKph,
			AvgHumidity:   day.AvgHumidity,
			UV:            day.UV,
		}
	}
	for _, alert := range r.Alerts.Alert {
		snapshot.Alerts = append(snapshot.Alerts, weather.Alert{
			Headline: alert.Headline,
			Severity: alert.Severity,
			Areas:    alert.Areas,
			Category: alert.Category,
		})
	}
	return snapshot
}
