package advisor

import (
	"fmt"
	"strings"
)

// UserProfile biases recommendation prompts. Values are passed through as given.
type UserProfile struct {
	Experience     string `json:"experience"`
	Age            *int   `json:"age,omitempty"`
	Gender         string `json:"gender,omitempty"`
	Weight         *int   `json:"weight,omitempty"`
	Fitness        string `json:"fitness"`
	HikeDifficulty string `json:"hikeDifficulty"`
}

// Clause renders the profile as one sentence, or "" for a nil profile.
func (p *UserProfile) Clause() string {
	if p == nil {
		return ""
	}
	parts := make([]string, 0, 6)
	if p.Age != nil {
		parts = append(parts, fmt.Sprintf("%d years old", *p.Age))
	}
	if g := strings.TrimSpace(p.Gender); g != "" {
		parts = append(parts, g)
	}
	if p.Weight != nil {
		parts = append(parts, fmt.Sprintf("%d kg", *p.Weight))
	}
	parts = append(parts,
		"experience level: "+orUnspecified(p.Experience),
		"fitness level: "+orUnspecified(p.Fitness),
		"planned hike difficulty: "+orUnspecified(p.HikeDifficulty),
	)
	return "User profile: " + strings.Join(parts, ", ") + "."
}

// Hints returns extra item suggestions keyed off experience and difficulty.
func (p *UserProfile) Hints() []string {
	if p == nil {
		return nil
	}
	var hints []string
	if strings.EqualFold(p.Experience, "beginner") {
		hints = append(hints, "As a beginner, also consider: trail map, emergency whistle, extra snacks, fully charged phone, and telling someone your route.")
	}
	if strings.EqualFold(p.Fitness, "low") {
		hints = append(hints, "Given a low fitness level, favour lightweight gear and plan extra rest stops with additional water.")
	}
	if strings.EqualFold(p.HikeDifficulty, "very-difficult") {
		hints = append(hints, "For a very difficult hike, consider technical gear: trekking poles, helmet, crampons or microspikes, rope, and a GPS device.")
	}
	return hints
}

func orUnspecified(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return "unspecified"
	}
	return v
}
