package colour

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	hexLiteralRegex = regexp.MustCompile(`#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)
	rgbLiteralRegex = regexp.MustCompile(`(?i)\brgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*[0-9.]+%?\s*)?\)`)
)

// NormalizeText rewrites every hex (#abc, #aabbcc) and rgb()/rgba() colour literal in text
// to canonical #RRGGBB form. Alpha is discarded. Literals that cannot be converted
// (channels above 255, percentages) are left untouched.
//
// Fragment references such as url(#abc) or href="#abc" and numeric character
// references (&#123;) are not colours and are skipped.
func NormalizeText(text string) string {
	text = replaceRGB(text)
	return replaceHex(text)
}

func replaceRGB(text string) string {
	matches := rgbLiteralRegex.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		var channels [3]uint8
		ok := true
		for i := range channels {
			v, err := strconv.Atoi(text[m[2+2*i]:m[3+2*i]])
			if err != nil || v > 255 {
				ok = false
				break
			}
			channels[i] = uint8(v) // #nosec G115 -- bounded above
		}
		if !ok {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(RGBToHex(channels[0], channels[1], channels[2]))
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func replaceHex(text string) string {
	matches := hexLiteralRegex.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		if isReference(text, m[0]) || continuesName(text, m[1]) {
			continue
		}
		canonical, ok := Canonical(text[m[0]:m[1]])
		if !ok {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(canonical)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// continuesName reports whether the literal ending at end is really the start of a
// longer name such as the id selector #bad-path.
func continuesName(text string, end int) bool {
	if end >= len(text) {
		return false
	}
	c := text[end]
	return c == '-' || c == '_' || c >= 0x80 ||
		c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// referenceWindow is how far back isReference looks for url( or href=.
const referenceWindow = 64

// isReference reports whether the '#' at pos starts a fragment or character reference.
func isReference(text string, pos int) bool {
	if pos == 0 {
		return false
	}
	if text[pos-1] == '&' {
		return true
	}

	before := strings.TrimRight(text[max(0, pos-referenceWindow):pos], " \t\r\n")
	quoted := false
	if strings.HasSuffix(before, `"`) || strings.HasSuffix(before, `'`) {
		before = strings.TrimRight(before[:len(before)-1], " \t\r\n")
		quoted = true
	}
	lower := strings.ToLower(before)
	if strings.HasSuffix(lower, "url(") {
		return true
	}
	if quoted && strings.HasSuffix(lower, "=") {
		name := strings.TrimRight(lower[:len(lower)-1], " \t\r\n")
		return strings.HasSuffix(name, "href")
	}
	return false
}
