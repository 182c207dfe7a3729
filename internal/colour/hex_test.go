package colour

import "testing"

func TestCanonical(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "#abc", want: "#AABBCC", wantOK: true},
		{in: "#AbCdEf", want: "#ABCDEF", wantOK: true},
		{in: "  #000000 ", want: "#000000", wantOK: true},
		{in: "abc", wantOK: false},
		{in: "#abcd", wantOK: false},
		{in: "#ggg", wantOK: false},
		{in: "none", wantOK: false},
		{in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Canonical(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("Canonical(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsCanonical(t *testing.T) {
	if !IsCanonical("#A1B2C3") {
		t.Error("expected #A1B2C3 to be canonical")
	}
	for _, s := range []string{"#a1b2c3", "#ABC", "A1B2C3", "#A1B2CZ"} {
		if IsCanonical(s) {
			t.Errorf("IsCanonical(%q) = true, want false", s)
		}
	}
}

func TestParseHex(t *testing.T) {
	rgb, err := ParseHex("#0080ff")
	if err != nil {
		t.Fatalf("ParseHex() error = %v", err)
	}
	if rgb != (RGB{R: 0, G: 128, B: 255}) {
		t.Errorf("ParseHex() = %+v", rgb)
	}
	if rgb.String() != "rgb(0, 128, 255)" {
		t.Errorf("String() = %s", rgb.String())
	}

	if _, err := ParseHex("#12"); err == nil {
		t.Error("expected error for short value")
	}
}

func TestPaint(t *testing.T) {
	tests := []struct {
		value        string
		resolveNamed bool
		want         string
		wantOK       bool
	}{
		{value: "#f00", want: "#FF0000", wantOK: true},
		{value: "none", wantOK: false},
		{value: "Transparent", wantOK: false},
		{value: "url(#grad)", wantOK: false},
		{value: "currentColor", resolveNamed: true, wantOK: false},
		{value: "red", wantOK: false},
		{value: "red", resolveNamed: true, want: "#FF0000", wantOK: true},
		{value: "SteelBlue", resolveNamed: true, want: "#4682B4", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := Paint(tt.value, tt.resolveNamed)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Paint(%q, %v) = (%q, %v), want (%q, %v)", tt.value, tt.resolveNamed, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
