// Package stylesheet reads and rewrites the flat, generator-produced CSS found in SVG
// <style> blocks and style attributes.
package stylesheet

import (
	"fmt"
	"strings"

	cssast "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"github.com/jmylchreest/svgtint/internal/colour"
)

// Rule holds the paint declared for one class. Empty fields were not declared.
// Short hex values are expanded; other values are kept as written.
type Rule struct {
	Fill   string
	Stroke string
}

// Rules maps class names (without the leading dot) to their paint.
type Rules map[string]Rule

// Parse extracts the fill and stroke of every simple class selector (".name") in css.
// Grouped selectors (".a, .b") apply to each class; rules inside @media and similar
// blocks are included. Later declarations override earlier ones per property.
func Parse(css string) (Rules, error) {
	rules := make(Rules)
	if strings.TrimSpace(css) == "" {
		return rules, nil
	}

	sheet, err := parser.Parse(css)
	if err != nil {
		return rules, fmt.Errorf("failed to parse stylesheet: %w", err)
	}

	var walk func([]*cssast.Rule)
	walk = func(list []*cssast.Rule) {
		for _, rule := range list {
			if rule == nil {
				continue
			}
			if rule.Kind == cssast.AtRule {
				if rule.EmbedsRules() {
					walk(rule.Rules)
				}
				continue
			}
			for _, class := range classSelectors(rule.Selectors) {
				r := rules[class]
				for _, decl := range rule.Declarations {
					if decl == nil {
						continue
					}
					switch strings.ToLower(strings.TrimSpace(decl.Property)) {
					case "fill":
						r.Fill = paintValue(decl.Value)
					case "stroke":
						r.Stroke = paintValue(decl.Value)
					}
				}
				rules[class] = r
			}
		}
	}
	walk(sheet.Rules)

	return rules, nil
}

// Merge copies every rule of other into r, overriding per declared property.
func (r Rules) Merge(other Rules) {
	for class, rule := range other {
		existing := r[class]
		if rule.Fill != "" {
			existing.Fill = rule.Fill
		}
		if rule.Stroke != "" {
			existing.Stroke = rule.Stroke
		}
		r[class] = existing
	}
}

// classSelectors returns the class names of selectors consisting of exactly one class.
func classSelectors(selectors []string) []string {
	var classes []string
	for _, group := range selectors {
		for _, sel := range strings.Split(group, ",") {
			sel = strings.TrimSpace(sel)
			if len(sel) < 2 || sel[0] != '.' {
				continue
			}
			name := sel[1:]
			if strings.ContainsAny(name, ".#:[]>+~* \t\r\n") {
				continue
			}
			classes = append(classes, name)
		}
	}
	return classes
}

func paintValue(v string) string {
	v = strings.TrimSpace(v)
	return colour.ExpandShortHex(v)
}

// Declaration is a single property: value pair of an inline style.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Declarations parses the content of a style attribute. Unparseable input yields no declarations.
func Declarations(style string) []Declaration {
	style = strings.TrimSpace(style)
	if style == "" {
		return nil
	}
	// douceur only assigns a value once it reaches ';' or '}'.
	if !strings.HasSuffix(style, ";") {
		style += ";"
	}
	parsed, err := parser.ParseDeclarations(style)
	if err != nil {
		return nil
	}
	decls := make([]Declaration, 0, len(parsed))
	for _, d := range parsed {
		if d == nil {
			continue
		}
		decls = append(decls, Declaration{
			Property:  strings.ToLower(strings.TrimSpace(d.Property)),
			Value:     strings.TrimSpace(d.Value),
			Important: d.Important,
		})
	}
	return decls
}

// Lookup returns the last value declared for property in an inline style.
func Lookup(style, property string) (string, bool) {
	var (
		value string
		found bool
	)
	for _, d := range Declarations(style) {
		if d.Property == property {
			value, found = d.Value, true
		}
	}
	return value, found
}

// RewriteDeclarations passes every declaration of style through fn. When fn changes
// at least one value the style is re-serialised as "prop:value;…"; otherwise the
// original text is returned untouched.
func RewriteDeclarations(style string, fn func(property, value string) (string, bool)) string {
	decls := Declarations(style)
	changed := false
	for i := range decls {
		if v, ok := fn(decls[i].Property, decls[i].Value); ok && v != decls[i].Value {
			decls[i].Value = v
			changed = true
		}
	}
	if !changed {
		return style
	}

	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.Property + ":" + d.Value
		if d.Important {
			parts[i] += " !important"
		}
	}
	return strings.Join(parts, ";") + ";"
}
