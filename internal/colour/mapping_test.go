package colour

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewIdentityMapping(t *testing.T) {
	m := NewIdentityMapping(NewPalette("#FF0000", "#00FF00"))

	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	if !m.IsIdentity() {
		t.Error("expected fresh mapping to be identity")
	}
	want := []Swatch{{Original: "#FF0000", Current: "#FF0000"}, {Original: "#00FF00", Current: "#00FF00"}}
	if got := m.Swatches(); !reflect.DeepEqual(got, want) {
		t.Errorf("Swatches() = %v, want %v", got, want)
	}
}

func TestMappingSetAndReset(t *testing.T) {
	m := NewIdentityMapping(NewPalette("#FF0000", "#00FF00"))

	if err := m.Set("#f00", "tomato"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, _ := m.Get("#FF0000"); got != "tomato" {
		t.Errorf("Get() = %q, want tomato", got)
	}
	if m.IsIdentity() {
		t.Error("expected mapping to be modified")
	}

	if err := m.Reset("#FF0000"); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if !m.IsIdentity() {
		t.Error("expected reset to restore identity")
	}
	if m.Len() != 2 {
		t.Errorf("keys must never be removed, Len() = %d", m.Len())
	}
}

func TestMappingUnknownColour(t *testing.T) {
	m := NewIdentityMapping(NewPalette("#FF0000"))

	if err := m.Set("#123456", "#000000"); !errors.Is(err, ErrUnknownColour) {
		t.Errorf("Set() error = %v, want ErrUnknownColour", err)
	}
	if err := m.Reset("#123456"); !errors.Is(err, ErrUnknownColour) {
		t.Errorf("Reset() error = %v, want ErrUnknownColour", err)
	}
}

func TestMappingClone(t *testing.T) {
	m := NewIdentityMapping(NewPalette("#FF0000"))
	c := m.Clone()

	if err := c.Set("#FF0000", "#000000"); err != nil {
		t.Fatal(err)
	}
	if got, _ := m.Get("#FF0000"); got != "#FF0000" {
		t.Errorf("clone mutation leaked into original: %q", got)
	}
}
