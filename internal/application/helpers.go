package application

import (
	"strings"
	"unicode"
)

// keywordScore is the deterministic fallback when the oracle cannot score
// a candidate: each matched cultural keyword adds a fixed step, saturating
// between floor and ceiling.
func keywordScore(text string, floor, ceiling float64) float64 {
	lower := strings.ToLower(text)
	matches := 0
	for _, term := range culturalKeywords {
		if strings.Contains(lower, term) {
			matches++
		}
	}

	score := float64(matches) * keywordStep
	if score < floor {
		return floor
	}
	if score > ceiling {
		return ceiling
	}
	return score
}

// fallbackQuery is the query used when the oracle cannot synthesize one.
func fallbackQuery(category, province string) string {
	return strings.ReplaceAll(category+" "+province, "traditional ", "")
}

// truncateAtWord caps s to max runes, cutting at the last word boundary
// and appending an ellipsis when anything was dropped.
func truncateAtWord(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	cut := max
	for i := max; i > 0; i-- {
		if unicode.IsSpace(runes[i-1]) {
			cut = i - 1
			break
		}
	}
	if cut == 0 {
		cut = max
	}
	return strings.TrimSpace(string(runes[:cut])) + "…"
}
