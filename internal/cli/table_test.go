package cli

import (
	"strings"
	"testing"

	"github.com/jmylchreest/svgtint/internal/colour"
)

func TestTableString(t *testing.T) {
	table := newTable("#", "Original", "Current")
	table.addRow("1", "#FF0000", "#00FF00")
	table.addRow("12", "#0000FF", "#0000FF")

	want := "#   Original  Current\n" +
		"--  --------  -------\n" +
		"1   #FF0000   #00FF00\n" +
		"12  #0000FF   #0000FF\n"
	if got := table.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRowLength(t *testing.T) {
	table := newTable("ID", "State")
	table.addRow("short")
	table.addRow("a", "ready", "extra")

	if len(table.rows[0]) != 2 || table.rows[0][1] != "" {
		t.Errorf("Expected short row to be padded, got %q", table.rows[0])
	}
	if len(table.rows[1]) != 2 {
		t.Errorf("Expected long row to be truncated, got %q", table.rows[1])
	}
}

func TestTableEmpty(t *testing.T) {
	if got := newTable().String(); got != "" {
		t.Errorf("Expected empty output for a table without headers, got %q", got)
	}

	lines := strings.Split(strings.TrimSuffix(newTable("ID", "State").String(), "\n"), "\n")
	if len(lines) != 2 || lines[1] != "--  -----" {
		t.Errorf("Expected header and separator only, got %q", lines)
	}
}

func TestTableWrapColumn(t *testing.T) {
	table := newTable("ID", "Palette")
	table.wrapColumn(1, 15)
	table.addRow("logo", "#111111 #222222 #333333")
	table.addRow("icon", "#444444")

	want := "ID    Palette\n" +
		"----  ---------------\n" +
		"logo  #111111 #222222\n" +
		"      #333333\n" +
		"icon  #444444\n"
	if got := table.String(); got != want {
		t.Errorf("String() =\n%q\nwant\n%q", got, want)
	}
}

func TestTableANSICells(t *testing.T) {
	swatch := colour.FormatSwatch(colour.Swatch{Original: "#FF0000", Current: "#FF0000"}, 2)

	table := newTable("Preview", "Hex")
	table.addRow(swatch, "#FF0000")
	table.addRow("", "#00FF00")

	lines := strings.Split(table.String(), "\n")
	if got, want := strings.Index(colour.StripANSI(lines[2]), "#FF0000"), strings.Index(lines[3], "#00FF00"); got != want {
		t.Errorf("Hex column starts at %d and %d:\n%q\n%q", got, want, lines[2], lines[3])
	}
}

func TestWrapWords(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  []string
	}{
		{"", 5, []string{""}},
		{"short", 10, []string{"short"}},
		{"aa bb cc", 5, []string{"aa bb", "cc"}},
		{"toolongword x", 4, []string{"toolongword", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := wrapWords(tt.input, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrapWords(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestVisibleWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"#FF0000", 7},
		{"★ ☆", 3},
		{"\033[48;2;255;0;0m  \033[0m", 2},
	}
	for _, tt := range tests {
		if got := visibleWidth(tt.input); got != tt.want {
			t.Errorf("visibleWidth(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
