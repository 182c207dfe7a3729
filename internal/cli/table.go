package cli

import (
	"strings"
	"unicode/utf8"

	"github.com/jmylchreest/svgtint/internal/colour"
)

// columnGap separates table columns.
const columnGap = "  "

// table lays out rows under a header with a dashed separator. Cells may contain
// ANSI colour sequences, which do not count towards a column's width.
type table struct {
	headers []string
	rows    [][]string
	wrap    map[int]int
}

func newTable(headers ...string) *table {
	return &table{headers: headers, wrap: map[int]int{}}
}

// wrapColumn word-wraps cells of column col longer than width onto extra lines.
func (t *table) wrapColumn(col, width int) {
	t.wrap[col] = width
}

// addRow appends a row, padding or truncating it to the header count.
func (t *table) addRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *table) String() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = visibleWidth(h)
	}

	// Each row becomes one or more physical lines once wrapped.
	lines := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		lines[r] = make([][]string, len(row))
		for c, cell := range row {
			parts := []string{cell}
			if w := t.wrap[c]; w > 0 {
				parts = wrapWords(cell, w)
			}
			for _, p := range parts {
				widths[c] = max(widths[c], visibleWidth(p))
			}
			lines[r][c] = parts
		}
	}

	var b strings.Builder
	writeLine := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString(columnGap)
			}
			if i == len(cells)-1 {
				b.WriteString(cell)
			} else {
				b.WriteString(padRight(cell, widths[i]))
			}
		}
		b.WriteByte('\n')
	}

	writeLine(t.headers)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeLine(sep)

	for _, row := range lines {
		height := 1
		for _, parts := range row {
			height = max(height, len(parts))
		}
		for l := 0; l < height; l++ {
			cells := make([]string, len(row))
			for c, parts := range row {
				if l < len(parts) {
					cells[c] = parts[l]
				}
			}
			writeLine(cells)
		}
	}

	return b.String()
}

// visibleWidth returns the number of printed characters in s.
func visibleWidth(s string) int {
	return utf8.RuneCountInString(colour.StripANSI(s))
}

func padRight(s string, width int) string {
	if w := visibleWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// wrapWords breaks text at spaces so no line exceeds width, unless a single word does.
func wrapWords(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || visibleWidth(text) <= width {
		return []string{text}
	}

	var (
		lines []string
		line  string
	)
	for _, word := range words {
		switch {
		case line == "":
			line = word
		case visibleWidth(line)+1+visibleWidth(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	return append(lines, line)
}
