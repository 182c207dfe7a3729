// Package recolour turns a raw SVG document into a namespaced, colour-normalised variant
// with an editable palette, and re-renders it when palette entries change.
//
// Loading runs two stages: Normalize rewrites colour literals in the raw text, then
// Rewrite parses the result, namespaces classes, ids and url(#…) references under the
// caller's prefix and collects the palette. Edits never touch the loaded document: Apply
// re-runs the complete mapping against it every time.
package recolour

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/svgtint/internal/colour"
	"github.com/jmylchreest/svgtint/internal/stylesheet"
	"github.com/jmylchreest/svgtint/internal/svgdoc"
)

// DefaultFallbackFill is assigned to paths that would otherwise rely on the implicit black fill.
const DefaultFallbackFill = "#000000"

// ErrParse wraps markup errors reported by the codec.
var ErrParse = errors.New("unable to parse SVG document")

// Options configures a Pipeline.
type Options struct {
	// NewCodec returns the parser/serialiser used for one Load call.
	// Defaults to svgdoc.NewXMLCodec.
	NewCodec func() svgdoc.Codec

	// ClassPattern selects the stylesheet classes that are namespaced.
	// Defaults to stylesheet.DefaultClassPattern.
	ClassPattern *regexp.Regexp

	// FallbackFill is the colour given to unfilled, unclassed paths. Defaults to DefaultFallbackFill.
	FallbackFill string

	// ResolveNamedColours rewrites keyword colours (fill="red") in attributes and inline
	// styles to hex so they join the palette.
	ResolveNamedColours bool

	Logger hclog.Logger
}

// Pipeline loads SVG documents. It holds no per-document state and is safe for concurrent use.
type Pipeline struct {
	newCodec     func() svgdoc.Codec
	classPattern *regexp.Regexp
	fallbackFill string
	resolveNamed bool
	logger       hclog.Logger
}

// New creates a Pipeline, applying defaults for unset options.
func New(opts Options) (*Pipeline, error) {
	p := &Pipeline{
		newCodec:     opts.NewCodec,
		classPattern: opts.ClassPattern,
		fallbackFill: opts.FallbackFill,
		resolveNamed: opts.ResolveNamedColours,
		logger:       opts.Logger,
	}
	if p.newCodec == nil {
		p.newCodec = func() svgdoc.Codec { return svgdoc.NewXMLCodec() }
	}
	if p.classPattern == nil {
		p.classPattern = stylesheet.DefaultClassPattern
	}
	if p.fallbackFill == "" {
		p.fallbackFill = DefaultFallbackFill
	}
	fill, ok := colour.Canonical(p.fallbackFill)
	if !ok {
		return nil, fmt.Errorf("invalid fallback fill %q: must be a hex colour", p.fallbackFill)
	}
	p.fallbackFill = fill
	if p.logger == nil {
		p.logger = hclog.NewNullLogger()
	}
	return p, nil
}

// Result is a loaded document.
type Result struct {
	Prefix string

	// Text is the rewritten document every edit is applied against.
	Text string

	Palette *colour.Palette
}

// Colours returns the discovered colours in discovery order.
func (r *Result) Colours() []string {
	return r.Palette.Colours()
}

// Mapping returns a fresh identity mapping over the palette.
func (r *Result) Mapping() *colour.Mapping {
	return colour.NewIdentityMapping(r.Palette)
}

// Load normalises and rewrites raw under prefix. A document that cannot be parsed
// yields an error wrapping ErrParse and no partial result.
func (p *Pipeline) Load(raw, prefix string) (*Result, error) {
	normalized := Normalize(raw)

	text, palette, err := p.Rewrite(normalized, prefix)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("document loaded", "prefix", prefix, "bytes_in", len(raw), "bytes_out", len(text), "colours", palette.Len())

	return &Result{Prefix: prefix, Text: text, Palette: palette}, nil
}

// Normalize rewrites every hex, rgb() and rgba() literal in raw to canonical #RRGGBB.
func Normalize(raw string) string {
	return colour.NormalizeText(raw)
}
