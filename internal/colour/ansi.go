package colour

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreview returns an ANSI-coloured preview string for a colour.
// Width specifies how many characters wide the colour block should be.
// Uses background colour with spaces for a solid block.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bgColour + strings.Repeat(" ", width) + ansiReset
}

// FormatSwatch renders an original/current pair as two preview blocks followed by the hex values.
// Values that are not valid hex (replacements are accepted verbatim) are shown without a block.
func FormatSwatch(s Swatch, width int) string {
	return fmt.Sprintf("%s %s  ->  %s %s", previewOrBlank(s.Original, width), s.Original, previewOrBlank(s.Current, width), s.Current)
}

func previewOrBlank(value string, width int) string {
	rgb, err := ParseHex(value)
	if err != nil || !strings.HasPrefix(strings.TrimSpace(value), "#") {
		if width <= 0 {
			width = defaultWidth
		}
		return strings.Repeat(" ", width)
	}
	return ColourPreview(rgb, width)
}

// SupportsANSIColours reports whether ANSI colour codes should be written to f.
// NO_COLOR and TERM=dumb disable colour; otherwise f must be a terminal.
func SupportsANSIColours(f *os.File) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

// StripANSI removes SGR escape sequences, leaving the printable text.
func StripANSI(s string) string {
	if !strings.Contains(s, "\033[") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			i = j
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
