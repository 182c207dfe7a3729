package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// colourEdit replaces one original colour.
type colourEdit struct {
	Original string
	New      string
}

// colourEditsValue collects repeated --set old=new flags in order.
type colourEditsValue struct {
	edits []colourEdit
}

var _ pflag.Value = (*colourEditsValue)(nil)

func (v *colourEditsValue) String() string {
	parts := make([]string, len(v.edits))
	for i, e := range v.edits {
		parts[i] = e.Original + "=" + e.New
	}
	return strings.Join(parts, ",")
}

// Set parses one or more comma-separated old=new pairs.
func (v *colourEditsValue) Set(s string) error {
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		original, replacement, ok := strings.Cut(pair, "=")
		original, replacement = strings.TrimSpace(original), strings.TrimSpace(replacement)
		if !ok || original == "" || replacement == "" {
			return fmt.Errorf("invalid colour edit %q: expected old=new", pair)
		}
		v.edits = append(v.edits, colourEdit{Original: original, New: replacement})
	}
	return nil
}

func (v *colourEditsValue) Type() string {
	return "old=new"
}

// formatValue restricts a flag to a fixed set of formats.
type formatValue struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*formatValue)(nil)

func newFormatValue(def string, allowed ...string) *formatValue {
	return &formatValue{value: def, allowed: allowed}
}

func (f *formatValue) String() string {
	return f.value
}

func (f *formatValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range f.allowed {
		if a == s {
			f.value = s
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(f.allowed, ", "))
}

func (f *formatValue) Type() string {
	return "format"
}
