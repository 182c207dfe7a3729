package colour

import (
	"strings"
	"testing"
)

func TestColourPreview(t *testing.T) {
	got := ColourPreview(RGB{R: 255, G: 0, B: 0}, 4)
	if !strings.HasPrefix(got, "\033[48;2;255;0;0m") {
		t.Errorf("unexpected escape prefix: %q", got)
	}
	if StripANSI(got) != "    " {
		t.Errorf("StripANSI(preview) = %q, want 4 spaces", StripANSI(got))
	}
}

func TestFormatSwatchNonHexReplacement(t *testing.T) {
	got := StripANSI(FormatSwatch(Swatch{Original: "#FF0000", Current: "tomato"}, 2))
	want := "   #FF0000  ->     tomato"
	if got != want {
		t.Errorf("FormatSwatch() = %q, want %q", got, want)
	}
}

func TestSupportsANSIColoursNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if SupportsANSIColours(nil) {
		t.Error("expected NO_COLOR to disable colour output")
	}
}
