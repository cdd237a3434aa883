package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"culturate/internal/models"
)

var (
	scoreRegex      = regexp.MustCompile(`\d+\.?\d*`)
	fenceOpenRegex  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	fenceCloseRegex = regexp.MustCompile("\\s*```$")
)

// ClampConfidence bounds a confidence value to [0, 1].
func ClampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ExtractConfidence pulls the first decimal number out of free-form
// oracle text. Values above 1.0 are treated as percentages and divided by
// 100, then the result is clamped to [0, 1]. The second return value is
// false when no number could be found at all.
func ExtractConfidence(text string) (float64, bool) {
	match := scoreRegex.FindString(text)
	if match == "" {
		return 0, false
	}

	score, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}

	if score > 1.0 {
		score = score / 100.0
	}
	return ClampConfidence(score), true
}

// StripCodeFence removes a leading ``` or ```json wrapper (any case) and
// the trailing fence, leaving inner content untouched.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = fenceOpenRegex.ReplaceAllString(s, "")
	s = fenceCloseRegex.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

type locationPayload struct {
	Province   string   `json:"province"`
	Confidence *float64 `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

// ParseLocationResponse turns raw oracle text into a LocationGuessResult.
// Parse failures never return an error: the caller always gets a usable
// result with the Unknown sentinel and the failure recorded in Err.
func ParseLocationResponse(text string) models.LocationGuessResult {
	cleaned := StripCodeFence(text)

	var payload locationPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return models.LocationGuessResult{
			ProvinceGuess: models.UnknownProvince,
			Confidence:    0,
			Err:           fmt.Sprintf("failed to parse model response: %v", err),
		}
	}

	if payload.Province == "" || payload.Confidence == nil {
		return models.LocationGuessResult{
			ProvinceGuess: models.UnknownProvince,
			Confidence:    0,
			Err:           "model response missing province or confidence",
		}
	}

	return models.LocationGuessResult{
		ProvinceGuess: payload.Province,
		Confidence:    ClampConfidence(*payload.Confidence),
		Reasoning:     payload.Reasoning,
	}
}
