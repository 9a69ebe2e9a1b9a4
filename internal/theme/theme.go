package theme

import (
	"fmt"
	"math"
	"strings"
)

// RGB is a parsed hex color.
type RGB struct {
	R, G, B uint8
}

// DefaultAccent is the accent color components fall back to.
const DefaultAccent = "#2563eb"

// palette maps the accent classes the dashboard front end understands to
// their reference colors. Arbitrary hex input snaps to the nearest entry.
var palette = map[string]RGB{
	"accent-red":    {220, 38, 38},
	"accent-orange": {234, 88, 12},
	"accent-amber":  {217, 119, 6},
	"accent-green":  {22, 163, 74},
	"accent-teal":   {13, 148, 136},
	"accent-blue":   {37, 99, 235},
	"accent-indigo": {79, 70, 229},
	"accent-purple": {147, 51, 234},
	"accent-pink":   {219, 39, 119},
	"accent-slate":  {71, 85, 105},
}

// ParseHex parses #rgb or #rrggbb, case-insensitive, leading '#' optional.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return RGB{}, fmt.Errorf("invalid hex color length %d", len(s))
	}

	var c RGB
	if _, err := fmt.Sscanf(strings.ToLower(s), "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	return c, nil
}

// IsValidHex reports whether s parses as a hex color.
func IsValidHex(s string) bool {
	_, err := ParseHex(s)
	return err == nil
}

// NearestClass maps a hex color to the closest palette accent class by
// Euclidean distance in RGB space. Unparseable input maps to the class of
// DefaultAccent.
func NearestClass(hex string) string {
	c, err := ParseHex(hex)
	if err != nil {
		c, _ = ParseHex(DefaultAccent)
	}

	best := ""
	bestDist := math.MaxFloat64
	for class, ref := range palette {
		d := colorDistance(c, ref)
		// Tie-break on class name so the result does not depend on map order.
		if d < bestDist || (d == bestDist && class < best) {
			best = class
			bestDist = d
		}
	}
	return best
}

func colorDistance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}
