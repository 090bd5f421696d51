// Package header holds the site header's state: the session indicator,
// scroll tracking, and the mobile menu.
package header

import (
	"strings"
	"unicode"
)

// FallbackInitial is shown when no display name is available.
const FallbackInitial = "G"

const maxInitials = 2

// Initials returns up to two uppercase initials for a display name.
func Initials(displayName string) string {
	words := strings.Fields(displayName)
	if len(words) == 0 {
		return FallbackInitial
	}

	out := make([]rune, 0, maxInitials)
	for _, w := range words {
		if len(out) == maxInitials {
			break
		}
		first := []rune(w)[0]
		out = append(out, unicode.ToUpper(first))
	}
	return string(out)
}
