package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims the string and collapses any internal whitespace
// runs into single spaces.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeAddressField trims street/city fields without touching case;
// addresses are display data, not lookup keys.
func NormalizeAddressField(field string) string {
	return TrimAndNormalize(field)
}

func NormalizeState(state string) string {
	return strings.ToUpper(TrimAndNormalize(state))
}
