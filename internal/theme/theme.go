// Package theme derives the site's running color theme from a single brand color.
package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// Channel shifts applied to the base color for the derived variants.
const (
	DarkShift  = -35
	LightShift = 40
)

// DefaultColor is the brand color used when none is configured.
const DefaultColor = "#C7A046"

// Shift adds amount to each RGB channel of a 3- or 6-digit hex color,
// clamping every channel to [0,255]. The result is always rendered as a
// lowercase "#rrggbb" string, so only the numeric value round-trips, not
// the original spelling. Input that does not parse as hex is returned as is.
func Shift(color string, amount int) string {
	if color == "" {
		return color
	}

	hex := strings.TrimPrefix(strings.TrimSpace(color), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color
	}

	numeric, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color
	}

	// No shift moves a channel further than 255, and saturating keeps the
	// sum below from overflowing.
	amount = max(-255, min(amount, 255))

	r := clamp(int(numeric>>16&0xff) + amount)
	g := clamp(int(numeric>>8&0xff) + amount)
	b := clamp(int(numeric&0xff) + amount)

	return fmt.Sprintf("#%06x", r<<16|g<<8|b)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
