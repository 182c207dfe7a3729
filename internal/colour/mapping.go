package colour

import (
	"errors"
	"fmt"
)

// ErrUnknownColour is returned when an edit names an original colour the mapping does not hold.
var ErrUnknownColour = errors.New("colour not present in mapping")

// Swatch pairs an original discovered colour with its current replacement.
type Swatch struct {
	Original string `json:"original"`
	Current  string `json:"current"`
}

// Mapping assigns each original colour its desired replacement.
// Keys keep insertion order and are never removed.
type Mapping struct {
	keys    []string
	current map[string]string
}

// NewIdentityMapping maps every colour of the palette to itself.
func NewIdentityMapping(p *Palette) *Mapping {
	m := &Mapping{current: make(map[string]string)}
	if p == nil {
		return m
	}
	for _, c := range p.colours {
		m.keys = append(m.keys, c)
		m.current[c] = c
	}
	return m
}

// Len returns the number of original colours in the mapping.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Get returns the current replacement for an original colour.
func (m *Mapping) Get(original string) (string, bool) {
	c, ok := m.current[m.key(original)]
	return c, ok
}

// Set replaces the current value of an original colour. The new value is stored verbatim.
func (m *Mapping) Set(original, replacement string) error {
	key := m.key(original)
	if _, ok := m.current[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColour, original)
	}
	m.current[key] = replacement
	return nil
}

// Reset restores the identity assignment for one original colour.
func (m *Mapping) Reset(original string) error {
	key := m.key(original)
	if _, ok := m.current[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColour, original)
	}
	m.current[key] = key
	return nil
}

// IsIdentity reports whether no colour has been reassigned.
func (m *Mapping) IsIdentity() bool {
	for _, k := range m.keys {
		if m.current[k] != k {
			return false
		}
	}
	return true
}

// Swatches returns the original/current pairs in discovery order.
func (m *Mapping) Swatches() []Swatch {
	swatches := make([]Swatch, len(m.keys))
	for i, k := range m.keys {
		swatches[i] = Swatch{Original: k, Current: m.current[k]}
	}
	return swatches
}

// Clone returns an independent copy of the mapping.
func (m *Mapping) Clone() *Mapping {
	c := &Mapping{
		keys:    make([]string, len(m.keys)),
		current: make(map[string]string, len(m.current)),
	}
	copy(c.keys, m.keys)
	for k, v := range m.current {
		c.current[k] = v
	}
	return c
}

// key canonicalises lookups so "#f00" addresses the "#FF0000" entry.
func (m *Mapping) key(original string) string {
	if IsCanonical(original) {
		return original
	}
	if hex, ok := Canonical(original); ok {
		return hex
	}
	return original
}
