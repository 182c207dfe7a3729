package colour

import (
	"fmt"
	"slices"
)

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Palette is the ordered set of canonical colours discovered in a document.
// Insertion order is first-discovery order; duplicates are suppressed.
type Palette struct {
	colours []string
	seen    map[string]struct{}
}

// NewPalette creates a palette from the given colours, keeping only valid hex values.
func NewPalette(colours ...string) *Palette {
	p := &Palette{seen: make(map[string]struct{})}
	for _, c := range colours {
		p.Add(c)
	}
	return p
}

// Add appends a colour if it is valid hex and not yet present.
// The value is canonicalised first; it reports whether the palette grew.
func (p *Palette) Add(c string) bool {
	hex, ok := Canonical(c)
	if !ok {
		return false
	}
	if p.seen == nil {
		p.seen = make(map[string]struct{})
	}
	if _, dup := p.seen[hex]; dup {
		return false
	}
	p.seen[hex] = struct{}{}
	p.colours = append(p.colours, hex)
	return true
}

// Merge appends every colour of other, preserving its order.
func (p *Palette) Merge(other *Palette) {
	if other == nil {
		return
	}
	for _, c := range other.colours {
		p.Add(c)
	}
}

// Contains reports whether the canonical form of c is in the palette.
func (p *Palette) Contains(c string) bool {
	hex, ok := Canonical(c)
	if !ok {
		return false
	}
	_, found := p.seen[hex]
	return found
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.colours)
}

// Colours returns a copy of the colours in discovery order.
func (p *Palette) Colours() []string {
	return slices.Clone(p.colours)
}
