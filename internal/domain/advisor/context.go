package advisor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yanqian/safeland/internal/domain/risk"
	"github.com/yanqian/safeland/internal/domain/weather"
)

// Risks carries the two scores attached to a prompt.
type Risks struct {
	Flood     float64 `json:"flood"`
	Landslide float64 `json:"landslide"`
}

// StructuredLocation is the display view of the resolved place.
type StructuredLocation struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	Coordinates string `json:"coordinates"`
	LocalTime   string `json:"localTime"`
	Timezone    string `json:"timezone"`
}

// StructuredCurrent is the display view of current conditions.
type StructuredCurrent struct {
	Condition     string  `json:"condition"`
	Temperature   string  `json:"temperature"`
	FeelsLike     string  `json:"feelsLike"`
	Humidity      string  `json:"humidity"`
	WindSpeed     string  `json:"windSpeed"`
	WindDirection string  `json:"windDirection"`
	Pressure      string  `json:"pressure"`
	Visibility    string  `json:"visibility"`
	CloudCover    string  `json:"cloudCover"`
	Precipitation string  `json:"precipitation"`
	UVIndex       float64 `json:"uvIndex"`
}

// StructuredForecast is the display view of the day forecast.
type StructuredForecast struct {
	MaxTemp            string  `json:"maxTemp"`
	MinTemp            string  `json:"minTemp"`
	Condition          string  `json:"condition"`
	ChanceOfRain       string  `json:"chanceOfRain"`
	TotalPrecipitation string  `json:"totalPrecipitation"`
	MaxWindSpeed       string  `json:"maxWindSpeed"`
	AvgHumidity        string  `json:"avgHumidity"`
	UVIndex            float64 `json:"uvIndex"`
}

// StructuredAlert is the display view of one alert.
type StructuredAlert struct {
	Headline string `json:"headline"`
	Severity string `json:"severity"`
	Areas    string `json:"areas"`
	Category string `json:"category"`
}

// StructuredRisk is the display view of the scores.
type StructuredRisk struct {
	Flood          string `json:"flood"`
	Landslide      string `json:"landslide"`
	FloodLevel     string `json:"floodLevel"`
	LandslideLevel string `json:"landslideLevel"`
}

// Structured mirrors the snapshot with unit suffixed strings.
type Structured struct {
	Location StructuredLocation  `json:"location"`
	Current  StructuredCurrent   `json:"current"`
	Forecast *StructuredForecast `json:"forecast"`
	Alerts   []StructuredAlert   `json:"alerts"`
	Risk     *StructuredRisk     `json:"risk,omitempty"`
}

// Context is the assembled prompt material for one request.
type Context struct {
	Structured      Structured
	NaturalLanguage string
	Profile         string
}

// Assemble builds the structured and prose views of the inputs. risks and profile are optional.
func Assemble(snapshot weather.Snapshot, risks *Risks, profile *UserProfile) Context {
	return Context{
		Structured:      structure(snapshot, risks),
		NaturalLanguage: describe(snapshot),
		Profile:         profile.Clause(),
	}
}

func structure(snapshot weather.Snapshot, risks *Risks) Structured {
	place, cur := snapshot.Place, snapshot.Current
	out := Structured{
		Location: StructuredLocation{
			Name:        place.Name,
			Country:     place.Country,
			Coordinates: num(place.Lat) + ", " + num(place.Lon),
			LocalTime:   place.LocalTime,
			Timezone:    place.TimeZone,
		},
		Current: StructuredCurrent{
			Condition:     cur.Condition,
			Temperature:   fmt.Sprintf("%s°C (%s°F)", num(cur.TempC), num(cur.TempF)),
			FeelsLike:     fmt.Sprintf("%s°C (%s°F)", num(cur.FeelsLikeC), num(cur.FeelsLikeF)),
			Humidity:      num(cur.Humidity) + "%",
			WindSpeed:     fmt.Sprintf("%s km/h (%s mph)", num(cur.WindKph), num(cur.WindMph)),
			WindDirection: cur.WindDir,
			Pressure:      num(cur.PressureMB) + " mb",
			Visibility:    num(cur.VisibilityKM) + " km",
			CloudCover:    num(cur.Cloud) + "%",
			Precipitation: num(cur.PrecipMM) + " mm",
			UVIndex:       cur.UV,
		},
		Alerts: make([]StructuredAlert, 0, len(snapshot.Alerts)),
	}
	if day := snapshot.Forecast; day != nil {
		out.Forecast = &StructuredForecast{
			MaxTemp:            fmt.Sprintf("%s°C (%s°F)", num(day.MaxTempC), num(day.MaxTempF)),
			MinTemp:            fmt.Sprintf("%s°C (%s°F)", num(day.MinTempC), num(day.MinTempF)),
			Condition:          day.Condition,
			ChanceOfRain:       num(day.ChanceOfRain) + "%",
			TotalPrecipitation: num(day.TotalPrecipMM) + " mm",
			MaxWindSpeed:       num(day.MaxWindKph) + " km/h",
			AvgHumidity:        num(day.AvgHumidity) + "%",
			UVIndex:            day.UV,
		}
	}
	for _, alert := range snapshot.Alerts {
		out.Alerts = append(out.Alerts, StructuredAlert{
			Headline: alert.Headline,
			Severity: alert.Severity,
			Areas:    alert.Areas,
			Category: alert.Category,
		})
	}
	if risks != nil {
		out.Risk = &StructuredRisk{
			Flood:          scoreOutOfFive(risks.Flood),
			Landslide:      scoreOutOfFive(risks.Landslide),
			FloodLevel:     risk.Level(risks.Flood),
			LandslideLevel: risk.Level(risks.Landslide),
		}
	}
	return out
}

// describe renders the paragraph shown to the model. Clause order is fixed.
func describe(snapshot weather.Snapshot) string {
	place, cur, day := snapshot.Place, snapshot.Current, snapshot.Forecast

	var b strings.Builder
	fmt.Fprintf(&b, "Weather conditions for %s, %s: ", place.Name, place.Country)
	fmt.Fprintf(&b, "Currently %s with %s°C, feeling like %s°C. ", strings.ToLower(cur.Condition), num(cur.TempC), num(cur.FeelsLikeC))
	fmt.Fprintf(&b, "Humidity at %s%%, wind from %s at %s km/h. ", num(cur.Humidity), cur.WindDir, num(cur.WindKph))
	fmt.Fprintf(&b, "Atmospheric pressure is %s mb with %s%% cloud cover. ", num(cur.PressureMB), num(cur.Cloud))
	if cur.PrecipMM > 0 {
		fmt.Fprintf(&b, "Recent precipitation: %s mm. ", num(cur.PrecipMM))
	}
	if day != nil {
		fmt.Fprintf(&b, "Today's forecast: High %s°C, low %s°C, %s. ", num(day.MaxTempC), num(day.MinTempC), strings.ToLower(day.Condition))
		fmt.Fprintf(&b, "Chance of rain: %s%%. ", num(day.ChanceOfRain))
	}
	if len(snapshot.Alerts) > 0 {
		headlines := make([]string, 0, len(snapshot.Alerts))
		for _, alert := range snapshot.Alerts {
			headlines = append(headlines, alert.Headline)
		}
		fmt.Fprintf(&b, "Weather alerts active: %s. ", strings.Join(headlines, ", "))
	} else {
		b.WriteString(noAlertsSentence)
	}
	fmt.Fprintf(&b, "Visibility: %s km, UV index: %s.", num(cur.VisibilityKM), num(cur.UV))
	return b.String()
}

const noAlertsSentence = "No weather alerts active. "

// num prints a float with the shortest exact representation, so 10 renders as "10" and 9.2 as "9.2".
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func scoreOutOfFive(v float64) string {
	return num(v) + "/5.0"
}
