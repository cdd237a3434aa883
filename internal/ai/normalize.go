package ai

import (
	"regexp"
	"strings"
	"unicode"
)

var nonAlphaNumericRegex = regexp.MustCompile(`[^\p{L}\p{N}\s.-]`)

// NormalizeProvince strips punctuation noise and collapses whitespace so
// that model output like " Jawa  Barat." compares equal to the catalog
// entry "Jawa Barat".
func NormalizeProvince(name string) string {
	name = strings.TrimSpace(name)
	name = nonAlphaNumericRegex.ReplaceAllString(name, "")
	name = strings.TrimSuffix(name, ".")

	var result strings.Builder
	prevSpace := false
	for _, r := range name {
		if unicode.IsSpace(r) {
			if !prevSpace {
				result.WriteRune(' ')
				prevSpace = true
			}
		} else {
			result.WriteRune(r)
			prevSpace = false
		}
	}

	return strings.TrimSpace(result.String())
}

// SameProvince reports whether a guess names the same province as the
// ground truth, ignoring case, punctuation and spacing differences.
func SameProvince(guess, actual string) bool {
	return strings.EqualFold(NormalizeProvince(guess), NormalizeProvince(actual))
}
