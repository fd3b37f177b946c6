package risk

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"unicode/utf16"
)

// Synthesizer derives a plausible record for locations missing from the curated table.
// The result depends on the name and on a random jitter, so repeated calls may differ.
type Synthesizer struct {
	rand func() float64
}

// NewSynthesizer returns a synthesizer backed by math/rand.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{rand: rand.Float64}
}

// NewSynthesizerWithSource injects the jitter source, which must return values in [0,1).
func NewSynthesizerWithSource(src func() float64) *Synthesizer {
	if src == nil {
		src = rand.Float64
	}
	return &Synthesizer{rand: src}
}

// Synthesize builds a record for location. The name is used verbatim in the description.
func (s *Synthesizer) Synthesize(location string) Record {
	hash := nameHash(location)
	floodSeed := float64((hash * 7) % 100)
	landslideSeed := float64((hash * 13) % 100)

	flood := math.Min(MaxScore, floodSeed/20+s.rand())
	landslide := math.Min(MaxScore, landslideSeed/20+s.rand())

	// Bands describe the raw scores; only the stored values are rounded.
	return Record{
		FloodRisk:     Round1(flood),
		LandslideRisk: Round1(landslide),
		Description: fmt.Sprintf(
			"Risk assessment for %s: Based on geographical analysis and available data, this location shows %s flood risk and %s landslide risk. Consider local topography, water proximity, and soil composition for detailed evaluation.",
			location, Band(flood), Band(landslide),
		),
		Source: SourceDynamic,
	}
}

// nameHash sums the UTF-16 code units of the lowercased name.
func nameHash(location string) int {
	sum := 0
	for _, unit := range utf16.Encode([]rune(strings.ToLower(location))) {
		sum += int(unit)
	}
	return sum
}

// Band describes a score in lowercase prose.
func Band(score float64) string {
	switch {
	case score < 1.5:
		return "low"
	case score < 3:
		return "moderate"
	case score < 4:
		return "high"
	default:
		return "very high"
	}
}

// Level is the display label for a score, using the same thresholds as Band.
func Level(score float64) string {
	switch {
	case score < 1.5:
		return "Low"
	case score < 3:
		return "Moderate"
	case score < 4:
		return "High"
	default:
		return "Very High"
	}
}

// Round1 rounds half up to one decimal place.
func Round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// Clamp bounds a score to the risk scale.
func Clamp(v float64) float64 {
	return math.Max(MinScore, math.Min(MaxScore, v))
}
