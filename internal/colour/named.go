package colour

import (
	"strings"

	"golang.org/x/image/colornames"
)

// Named resolves an SVG/CSS colour keyword (e.g. "red", "SteelBlue") to canonical hex.
func Named(name string) (string, bool) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", false
	}
	return RGBToHex(c.R, c.G, c.B), true
}

// IsNone reports whether a paint value explicitly disables painting.
// Such values are never treated as colours.
func IsNone(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none", "transparent":
		return true
	}
	return false
}

// Paint interprets a fill/stroke/stop-color value and returns its canonical hex form.
// Keywords are resolved only when resolveNamed is set. Anything else (none, transparent,
// currentColor, inherit, url(#…) references, malformed values) yields false.
func Paint(value string, resolveNamed bool) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" || IsNone(value) {
		return "", false
	}
	if hex, ok := Canonical(value); ok {
		return hex, true
	}
	if resolveNamed {
		return Named(value)
	}
	return "", false
}
