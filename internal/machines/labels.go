package machines

import (
	"strings"
	"unicode"
)

// FormatSpecLabel turns a stored spec key such as "power_supply" or
// "maxCapacity" into a display label ("Power Supply", "Max Capacity").
// Transformation never applies it; keys stay verbatim in view models.
func FormatSpecLabel(key string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	runes := []rune(strings.TrimSpace(key))
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()

	for i, w := range words {
		rs := []rune(w)
		if isAllUpper(rs) {
			continue
		}
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	return strings.Join(words, " ")
}

func isAllUpper(rs []rune) bool {
	for _, r := range rs {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
