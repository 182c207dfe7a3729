// Package gallery manages a set of independently recoloured SVG documents.
//
// Each Instance owns its document, palette and colour mapping. Loads follow
// last-requested-wins: starting a load cancels the one in flight, and a result that
// arrives after a newer request is discarded.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/svgtint/internal/colour"
	"github.com/jmylchreest/svgtint/internal/recolour"
	"github.com/jmylchreest/svgtint/internal/source"
)

var (
	// ErrSuperseded is returned by Load when a newer Load started before it finished.
	ErrSuperseded = errors.New("load superseded by a newer request")

	// ErrNotReady is returned by edits made before a document has loaded.
	ErrNotReady = errors.New("document not loaded")
)

// State is the load state of an Instance.
type State int

// Load states.
const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Loader turns raw document text into a namespaced document and palette.
type Loader interface {
	Load(raw, prefix string) (*recolour.Result, error)
}

// Instance is one document in a gallery.
type Instance struct {
	prefix  string
	fetcher source.Fetcher
	loader  Loader
	logger  hclog.Logger

	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	state    State
	err      error
	location string
	pristine string
	text     string
	mapping  *colour.Mapping
}

// NewInstance creates an idle Instance whose classes and ids are scoped under prefix.
func NewInstance(prefix string, fetcher source.Fetcher, loader Loader, logger hclog.Logger) *Instance {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Instance{
		prefix:  prefix,
		fetcher: fetcher,
		loader:  loader,
		logger:  logger.Named(prefix),
	}
}

// Prefix returns the namespace of the instance.
func (i *Instance) Prefix() string {
	return i.prefix
}

// Load fetches the document at location and replaces the instance's state with it.
// A Load that is overtaken by a later one returns ErrSuperseded and changes nothing.
// On failure the instance enters StateFailed and keeps no document.
func (i *Instance) Load(ctx context.Context, location string) error {
	i.mu.Lock()
	i.gen++
	gen := i.gen
	if i.cancel != nil {
		i.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	i.cancel = cancel
	i.state = StateLoading
	i.err = nil
	i.location = location
	i.mu.Unlock()
	defer cancel()

	i.logger.Debug("loading document", "location", location, "generation", gen)

	raw, err := i.fetcher.Fetch(ctx, location)
	var res *recolour.Result
	if err == nil {
		res, err = i.loader.Load(raw, i.prefix)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if gen != i.gen {
		i.logger.Debug("discarding stale load", "location", location, "generation", gen, "current", i.gen)
		return ErrSuperseded
	}
	i.cancel = nil

	if err != nil {
		i.state = StateFailed
		i.err = err
		i.pristine, i.text, i.mapping = "", "", nil
		i.logger.Warn("load failed", "location", location, "error", err)
		return err
	}

	i.state = StateReady
	i.pristine = res.Text
	i.text = res.Text
	i.mapping = res.Mapping()
	i.logger.Debug("document ready", "location", location, "colours", i.mapping.Len())
	return nil
}

// SetColor replaces original with newColor and returns the re-rendered document.
// Every edit is applied to the document as loaded, never to a previous edit.
func (i *Instance) SetColor(original, newColor string) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != StateReady {
		return "", ErrNotReady
	}
	text, mapping, err := recolour.SetColor(i.pristine, i.mapping, original, newColor)
	if err != nil {
		return "", fmt.Errorf("%s: %w", i.prefix, err)
	}
	i.text, i.mapping = text, mapping
	return text, nil
}

// Reset restores the original value of one colour and returns the re-rendered document.
func (i *Instance) Reset(original string) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != StateReady {
		return "", ErrNotReady
	}
	mapping := i.mapping.Clone()
	if err := mapping.Reset(original); err != nil {
		return "", fmt.Errorf("%s: %w", i.prefix, err)
	}
	i.text, i.mapping = recolour.Apply(i.pristine, mapping), mapping
	return i.text, nil
}

// Text returns the current rendering of the document.
func (i *Instance) Text() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.text
}

// Swatches returns the original/current colour pairs in discovery order.
func (i *Instance) Swatches() []colour.Swatch {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.mapping == nil {
		return nil
	}
	return i.mapping.Swatches()
}

// State returns the load state and, for StateFailed, the error that caused it.
func (i *Instance) State() (State, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state, i.err
}

// Snapshot is a point-in-time view of an Instance.
type Snapshot struct {
	Prefix   string          `json:"prefix"`
	Location string          `json:"location,omitempty"`
	State    State           `json:"state"`
	Error    string          `json:"error,omitempty"`
	Colours  []colour.Swatch `json:"colors"`
}

// Snapshot captures the current state of the instance.
func (i *Instance) Snapshot() Snapshot {
	i.mu.Lock()
	defer i.mu.Unlock()

	s := Snapshot{
		Prefix:   i.prefix,
		Location: i.location,
		State:    i.state,
		Colours:  []colour.Swatch{},
	}
	if i.err != nil {
		s.Error = i.err.Error()
	}
	if i.mapping != nil {
		s.Colours = i.mapping.Swatches()
	}
	return s
}
