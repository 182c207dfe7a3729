package recolour

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/svgtint/internal/colour"
	"github.com/jmylchreest/svgtint/internal/stylesheet"
	"github.com/jmylchreest/svgtint/internal/svgdoc"
)

// paintAttrs are the presentation attributes and declarations that carry colour.
var paintAttrs = []string{"fill", "stroke", "stop-color"}

// refAttrs may hold url(#id) references to namespaced ids.
var refAttrs = []string{"fill", "stroke", "stop-color", "filter", "clip-path", "mask", "style"}

// hrefAttrs may hold bare #id fragment references.
var hrefAttrs = []string{"href", "xlink:href"}

// Rewrite parses normalised text, namespaces it under prefix and collects its palette.
//
// Colours are reported in discovery order: first those found on elements, inline styles
// and stylesheet classes, then those only found once classes were renamed or fallback
// fills were assigned. Elements inside <mask> never contribute colours.
func (p *Pipeline) Rewrite(text, prefix string) (string, *colour.Palette, error) {
	codec := p.newCodec()

	doc, err := svgdoc.ParseString(codec, text)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	ns := stylesheet.Namespace{Prefix: prefix, Pattern: p.classPattern}
	c := &collector{
		resolveNamed: p.resolveNamed,
		logger:       p.logger.Named("collect").With("prefix", prefix),
		found:        colour.NewPalette(),
		late:         colour.NewPalette(),
	}

	// Stylesheets: read class paint, then namespace selectors and references.
	rules := make(stylesheet.Rules)
	renamed := make(stylesheet.Rules)
	for _, style := range doc.ElementsByName("style") {
		css := style.Text()
		parsed, err := stylesheet.Parse(css)
		if err != nil {
			c.logger.Warn("ignoring unparseable stylesheet", "error", err)
		}
		rules.Merge(parsed)

		rewritten := ns.Rewrite(css)
		if rewritten != css {
			style.SetText(rewritten)
		}
		if parsed, err := stylesheet.Parse(rewritten); err == nil {
			renamed.Merge(parsed)
		}
	}

	visible := visibleElements(doc)

	for _, el := range visible {
		c.collectElement(el, rules)
	}

	for _, el := range doc.Elements() {
		if classes, ok := el.Attr("class"); ok {
			el.SetAttr("class", ns.ClassList(classes))
		}
	}
	for _, el := range visible {
		c.collectClasses(el, renamed, c.late)
	}

	for _, el := range doc.Elements() {
		rewriteReferences(el, ns)
	}

	fallbacks := 0
	for _, el := range visible {
		if !el.Is("path") {
			continue
		}
		if _, hasClass := el.Attr("class"); hasClass {
			continue
		}
		if _, ok := EffectiveFill(el); ok {
			continue
		}
		el.SetAttr("fill", p.fallbackFill)
		c.late.Add(p.fallbackFill)
		fallbacks++
	}

	out, err := svgdoc.SerializeString(codec, doc)
	if err != nil {
		return "", nil, fmt.Errorf("failed to serialise document: %w", err)
	}

	palette := c.found
	palette.Merge(c.late)

	c.logger.Debug("document rewritten", "elements", len(visible), "colours", palette.Len(), "fallback_fills", fallbacks)

	return out, palette, nil
}

// visibleElements returns the elements outside any <mask> subtree, in document order.
func visibleElements(doc *svgdoc.Document) []*svgdoc.Node {
	var elements []*svgdoc.Node
	doc.Root.Walk(func(n *svgdoc.Node) bool {
		if n.Kind != svgdoc.ElementNode {
			return false
		}
		if InMask(n) {
			return false
		}
		elements = append(elements, n)
		return true
	})
	return elements
}

// InMask reports whether n is a mask or lies inside one.
func InMask(n *svgdoc.Node) bool {
	return n.Within("mask")
}

// EffectiveFill resolves the fill n renders with: its own fill attribute or inline style
// fill, then the same on each ancestor up to the root. Any declared value counts,
// including "none". Stylesheet classes are not consulted.
func EffectiveFill(n *svgdoc.Node) (string, bool) {
	for el := n; el != nil && el.Kind == svgdoc.ElementNode; el = el.Parent {
		if v, ok := el.Attr("fill"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
		if style, ok := el.Attr("style"); ok {
			if v, ok := stylesheet.Lookup(style, "fill"); ok && v != "" {
				return v, true
			}
		}
	}
	return "", false
}

func rewriteReferences(el *svgdoc.Node, ns stylesheet.Namespace) {
	if id, ok := el.Attr("id"); ok {
		el.SetAttr("id", ns.ID(id))
	}
	for _, name := range refAttrs {
		if v, ok := el.Attr(name); ok {
			if rewritten := ns.URLRefs(v); rewritten != v {
				el.SetAttr(name, rewritten)
			}
		}
	}
	for _, name := range hrefAttrs {
		if v, ok := el.Attr(name); ok {
			if rewritten := ns.Fragment(v); rewritten != v {
				el.SetAttr(name, rewritten)
			}
		}
	}
}

// collector accumulates palette colours while the document is walked.
type collector struct {
	resolveNamed bool
	logger       hclog.Logger

	// found holds colours discovered before renaming, late those discovered afterwards.
	found *colour.Palette
	late  *colour.Palette
}

func (c *collector) collectElement(el *svgdoc.Node, rules stylesheet.Rules) {
	for _, name := range paintAttrs {
		value, ok := el.Attr(name)
		if !ok {
			continue
		}
		hex, ok := c.paint(el, name, value)
		if !ok {
			continue
		}
		if value != hex {
			// Keyword colours are replaced so edits can find them.
			el.SetAttr(name, hex)
		}
		c.found.Add(hex)
	}

	if style, ok := el.Attr("style"); ok {
		rewritten := stylesheet.RewriteDeclarations(style, func(property, value string) (string, bool) {
			if !isPaintProperty(property) {
				return value, false
			}
			hex, ok := c.paint(el, property, value)
			if !ok {
				return value, false
			}
			c.found.Add(hex)
			return hex, true
		})
		if rewritten != style {
			el.SetAttr("style", rewritten)
		}
	}

	c.collectClasses(el, rules, c.found)
}

func (c *collector) collectClasses(el *svgdoc.Node, rules stylesheet.Rules, into *colour.Palette) {
	classes, ok := el.Attr("class")
	if !ok {
		return
	}
	for _, class := range strings.Fields(classes) {
		rule, ok := rules[class]
		if !ok {
			continue
		}
		for _, value := range []string{rule.Fill, rule.Stroke} {
			if hex, ok := colour.Paint(value, false); ok {
				into.Add(hex)
			}
		}
	}
}

// paint resolves one colour value, logging values that are dropped.
func (c *collector) paint(el *svgdoc.Node, property, value string) (string, bool) {
	if hex, ok := colour.Paint(value, c.resolveNamed); ok {
		return hex, true
	}
	if v := strings.TrimSpace(value); v != "" && !colour.IsNone(v) && !strings.HasPrefix(strings.ToLower(v), "url(") {
		c.logger.Trace("dropping unrecognised colour", "element", el.Name, "property", property, "value", v)
	}
	return "", false
}

func isPaintProperty(property string) bool {
	for _, p := range paintAttrs {
		if p == property {
			return true
		}
	}
	return false
}
