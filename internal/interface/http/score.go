package http

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// score is a risk value that may arrive as a JSON number or a numeric string.
// Anything unparsable is treated as absent.
type score struct {
	value *float64
}

func (s *score) UnmarshalJSON(data []byte) error {
	s.value = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		s.value = &number
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		s.value = parseScore(text)
	}
	return nil
}

func parseScore(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// firstScore returns the first present value.
func firstScore(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
