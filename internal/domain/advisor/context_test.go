package advisor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/safeland/internal/domain/weather"
)

func TestAssembleNaturalLanguage(t *testing.T) {
	ctx := Assemble(bernSnapshot(), nil, nil)
	require.Equal(t,
		"Weather conditions for Bern, Switzerland: Currently partly cloudy with 9.2°C, feeling like 7.1°C. "+
			"Humidity at 81%, wind from WSW at 11.2 km/h. "+
			"Atmospheric pressure is 1019 mb with 50% cloud cover. "+
			"Today's forecast: High 14.3°C, low 6.8°C, patchy rain nearby. Chance of rain: 71%. "+
			"No weather alerts active. "+
			"Visibility: 10 km, UV index: 2.",
		ctx.NaturalLanguage,
	)
	require.Empty(t, ctx.Profile)
}

func TestAssemblePrecipitationBoundary(t *testing.T) {
	dry := bernSnapshot()
	dry.Current.PrecipMM = 0
	require.NotContains(t, Assemble(dry, nil, nil).NaturalLanguage, "Recent precipitation")

	wet := bernSnapshot()
	wet.Current.PrecipMM = 0.1
	require.Contains(t, Assemble(wet, nil, nil).NaturalLanguage, "cloud cover. Recent precipitation: 0.1 mm. Today's forecast")
}

func TestAssembleAlertsAndMissingForecast(t *testing.T) {
	snapshot := bernSnapshot()
	snapshot.Forecast = nil
	snapshot.Alerts = []weather.Alert{
		{Headline: "Flood warning Aare", Severity: "Moderate", Areas: "Bern", Category: "Flood"},
		{Headline: "Wind advisory", Severity: "Minor"},
	}

	ctx := Assemble(snapshot, nil, nil)
	require.NotContains(t, ctx.NaturalLanguage, "Today's forecast")
	require.NotContains(t, ctx.NaturalLanguage, "No weather alerts active.")
	require.Contains(t, ctx.NaturalLanguage, "Weather alerts active: Flood warning Aare, Wind advisory. Visibility: 10 km")
	require.Nil(t, ctx.Structured.Forecast)
	require.Len(t, ctx.Structured.Alerts, 2)
	require.Equal(t, "Flood", ctx.Structured.Alerts[0].Category)
}

func TestAssembleStructured(t *testing.T) {
	ctx := Assemble(bernSnapshot(), &Risks{Flood: 2.1, Landslide: 4}, nil)
	s := ctx.Structured

	require.Equal(t, "46.95, 7.45", s.Location.Coordinates)
	require.Equal(t, "Europe/Zurich", s.Location.Timezone)
	require.Equal(t, "9.2°C (48.6°F)", s.Current.Temperature)
	require.Equal(t, "7.1°C (44.8°F)", s.Current.FeelsLike)
	require.Equal(t, "11.2 km/h (6.9 mph)", s.Current.WindSpeed)
	require.Equal(t, "1019 mb", s.Current.Pressure)
	require.Equal(t, "0 mm", s.Current.Precipitation)
	require.Equal(t, "81%", s.Current.Humidity)
	require.Equal(t, 2.0, s.Current.UVIndex)
	require.NotNil(t, s.Forecast)
	require.Equal(t, "14.3°C (57.7°F)", s.Forecast.MaxTemp)
	require.Equal(t, "15.8 km/h", s.Forecast.MaxWindSpeed)
	require.Equal(t, "71%", s.Forecast.ChanceOfRain)
	require.NotNil(t, s.Alerts)
	require.Empty(t, s.Alerts)
	require.Equal(t, &StructuredRisk{Flood: "2.1/5.0", Landslide: "4/5.0", FloodLevel: "Moderate", LandslideLevel: "Very High"}, s.Risk)
}

func TestProfileClause(t *testing.T) {
	age, weight := 34, 62
	full := &UserProfile{Experience: "beginner", Age: &age, Gender: "female", Weight: &weight, Fitness: "moderate", HikeDifficulty: "easy"}
	require.Equal(t,
		"User profile: 34 years old, female, 62 kg, experience level: beginner, fitness level: moderate, planned hike difficulty: easy.",
		full.Clause(),
	)

	sparse := &UserProfile{Gender: "  ", Experience: "expert"}
	require.Equal(t,
		"User profile: experience level: expert, fitness level: unspecified, planned hike difficulty: unspecified.",
		sparse.Clause(),
	)

	var none *UserProfile
	require.Empty(t, none.Clause())
	require.Nil(t, none.Hints())
}

func TestProfileHints(t *testing.T) {
	require.Len(t, (&UserProfile{Experience: "beginner", HikeDifficulty: "very-difficult"}).Hints(), 2)
	require.Empty(t, (&UserProfile{Experience: "advanced", HikeDifficulty: "moderate"}).Hints())
}
