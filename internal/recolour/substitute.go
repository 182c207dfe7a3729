package recolour

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/svgtint/internal/colour"
)

// Apply replaces every literal occurrence of each original colour in text with its
// current value. All entries are substituted in one pass over text, so a replacement
// is never substituted again. Where originals overlap, the entry discovered first wins.
func Apply(text string, m *colour.Mapping) string {
	if m == nil || m.IsIdentity() {
		return text
	}

	var pairs []string
	for _, s := range m.Swatches() {
		if s.Original == s.Current {
			continue
		}
		pairs = append(pairs, s.Original, s.Current)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// SetColor points original at newColor and re-applies the whole mapping to text, which
// must be the pristine rewritten document. The passed mapping is not modified.
// newColor is not validated.
func SetColor(text string, m *colour.Mapping, original, newColor string) (string, *colour.Mapping, error) {
	if m == nil {
		return "", nil, fmt.Errorf("%w: %s", colour.ErrUnknownColour, original)
	}
	next := m.Clone()
	if err := next.Set(original, newColor); err != nil {
		return "", nil, err
	}
	return Apply(text, next), next, nil
}

// SetColor is the Pipeline form of the package-level SetColor.
func (p *Pipeline) SetColor(text string, m *colour.Mapping, original, newColor string) (string, *colour.Mapping, error) {
	out, next, err := SetColor(text, m, original, newColor)
	if err != nil {
		p.logger.Debug("colour edit rejected", "original", original, "error", err)
		return "", nil, err
	}
	p.logger.Trace("colour edit applied", "original", original, "current", newColor)
	return out, next, nil
}
