package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/svgtint/internal/colour"
)

// Output formats.
const (
	formatSVG   = "svg"
	formatJSON  = "json"
	formatHex   = "hex"
	formatTable = "table"
)

// paletteDocument is the JSON form of a loaded or recoloured document's palette.
type paletteDocument struct {
	Prefix  string         `json:"prefix"`
	Source  string         `json:"source,omitempty"`
	Count   int            `json:"count"`
	Colours []swatchOutput `json:"colors"`
}

type swatchOutput struct {
	Original string      `json:"original"`
	Current  string      `json:"current"`
	RGB      *colour.RGB `json:"rgb,omitempty"`
}

func newPaletteDocument(prefix, location string, swatches []colour.Swatch) paletteDocument {
	doc := paletteDocument{
		Prefix:  prefix,
		Source:  location,
		Count:   len(swatches),
		Colours: make([]swatchOutput, len(swatches)),
	}
	for i, s := range swatches {
		out := swatchOutput{Original: s.Original, Current: s.Current}
		if hex, ok := colour.Canonical(s.Current); ok {
			if rgb, err := colour.ParseHex(hex); err == nil {
				out.RGB = &rgb
			}
		}
		doc.Colours[i] = out
	}
	return doc
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderSwatchTable lists swatches with optional ANSI previews.
func renderSwatchTable(swatches []colour.Swatch, preview bool) string {
	headers := []string{"#", "Original", "Current", "RGB"}
	if preview {
		headers = append(headers, "Preview")
	}
	table := newTable(headers...)
	for i, s := range swatches {
		rgb := ""
		if c, err := colour.ParseHex(s.Current); err == nil && strings.HasPrefix(s.Current, "#") {
			rgb = c.String()
		}
		row := []string{strconv.Itoa(i + 1), s.Original, s.Current, rgb}
		if preview {
			row = append(row, colour.FormatSwatch(s, 4))
		}
		table.addRow(row...)
	}
	return table.String()
}

// renderSwatches writes swatches in a palette format (json, hex or table).
func renderSwatches(w io.Writer, format, prefix, location string, swatches []colour.Swatch, preview bool) error {
	switch format {
	case formatJSON:
		return writeJSON(w, newPaletteDocument(prefix, location, swatches))
	case formatHex:
		for _, s := range swatches {
			line := s.Current
			if preview {
				line = colour.FormatSwatch(s, 4)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	case formatTable:
		_, err := io.WriteString(w, renderSwatchTable(swatches, preview))
		return err
	}
	return fmt.Errorf("unsupported format %q", format)
}

// wantPreview reports whether ANSI previews should be written to the command output.
func wantPreview(cmd *cobra.Command, forced bool) bool {
	if forced {
		return true
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && colour.SupportsANSIColours(f)
}

// writeOutput writes data to path, or to the command output when path is empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Output directory needs standard permissions
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - Output files need standard read permissions
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// defaultPrefix derives a prefix from a document location: the file name without
// its extension, reduced to identifier characters.
func defaultPrefix(location string) string {
	base := location
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimSuffix(filepath.Base(filepath.ToSlash(base)), filepath.Ext(base))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '-':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if b.Len() == 0 {
				b.WriteByte('s')
			}
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 || b.String()[0] == '-' {
		return "svg" + b.String()
	}
	return b.String()
}
