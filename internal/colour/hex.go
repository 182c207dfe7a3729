// Package colour provides colour parsing, normalisation and palette bookkeeping for SVG recolouring.
package colour

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHex parses a hex colour string into an RGB struct.
// Supports formats: #RRGGBB, RRGGBB, #RGB, RGB (any case).
func ParseHex(hex string) (RGB, error) {
	hex = strings.TrimSpace(hex)
	hex = strings.TrimPrefix(hex, "#")

	// Expand shorthand format (RGB -> RRGGBB).
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}

	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour length: expected 6 characters, got %d", len(hex))
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid red component: %w", err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid green component: %w", err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid blue component: %w", err)
	}

	return RGB{
		R: uint8(r),
		G: uint8(g),
		B: uint8(b),
	}, nil
}

// Canonical returns the canonical form (#RRGGBB, uppercase) of a hex colour.
// The leading '#' is required; both the 3 and 6 digit forms are accepted.
func Canonical(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if (len(s) != 4 && len(s) != 7) || s[0] != '#' {
		return "", false
	}
	for i := 1; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return "", false
		}
	}
	if len(s) == 4 {
		s = ExpandShortHex(s)
	}
	return strings.ToUpper(s), true
}

// IsCanonical reports whether s is already in #RRGGBB uppercase form.
func IsCanonical(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for i := 1; i < 7; i++ {
		c := s[i]
		if !isHexDigit(c) || (c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}

// ExpandShortHex doubles each nibble of a #RGB colour and uppercases the result.
// Values that are not 3-digit hex are returned unchanged.
func ExpandShortHex(s string) string {
	if len(s) != 4 || s[0] != '#' {
		return s
	}
	for i := 1; i < 4; i++ {
		if !isHexDigit(s[i]) {
			return s
		}
	}
	b := []byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]}
	return strings.ToUpper(string(b))
}

// RGBToHex encodes three channel bytes as canonical hex.
func RGBToHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
