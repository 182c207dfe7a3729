package stylesheet

import (
	"io"
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// DefaultClassPattern matches the st0, st1, … classes emitted by Illustrator-style exporters.
var DefaultClassPattern = regexp.MustCompile(`^st[\w-]*$`)

var urlRefRegex = regexp.MustCompile(`(?i)(url)\((\s*)(['"]?)#([^'")\s]+)(['"]?)(\s*)\)`)

// blocks opened by these at-rules contain rules rather than declarations.
var groupingAtRules = map[string]bool{
	"@media":     true,
	"@supports":  true,
	"@document":  true,
	"@layer":     true,
	"@container": true,
}

// Namespace scopes the classes, ids and fragment references of one document under a prefix.
type Namespace struct {
	Prefix string

	// Pattern selects the class names that are namespaced. A nil Pattern selects every class.
	Pattern *regexp.Regexp
}

// NewNamespace returns a Namespace using DefaultClassPattern.
func NewNamespace(prefix string) Namespace {
	return Namespace{Prefix: prefix, Pattern: DefaultClassPattern}
}

func (ns Namespace) scoped(name string) bool {
	return strings.HasPrefix(name, ns.Prefix+"-")
}

// Class returns the namespaced class name. Classes outside the pattern and classes
// already carrying the prefix are returned unchanged.
func (ns Namespace) Class(name string) string {
	if ns.Prefix == "" || name == "" || ns.scoped(name) {
		return name
	}
	if ns.Pattern != nil && !ns.Pattern.MatchString(name) {
		return name
	}
	return ns.Prefix + "-" + name
}

// ClassList namespaces every token of a whitespace-separated class attribute.
func (ns Namespace) ClassList(classes string) string {
	fields := strings.Fields(classes)
	for i, f := range fields {
		fields[i] = ns.Class(f)
	}
	return strings.Join(fields, " ")
}

// ID returns the namespaced id.
func (ns Namespace) ID(id string) string {
	if ns.Prefix == "" || id == "" || ns.scoped(id) {
		return id
	}
	return ns.Prefix + "-" + id
}

// Fragment namespaces a "#id" reference such as an href value. Other values are returned unchanged.
func (ns Namespace) Fragment(ref string) string {
	if !strings.HasPrefix(ref, "#") {
		return ref
	}
	return "#" + ns.ID(ref[1:])
}

// URLRefs namespaces every url(#id) reference in s, preserving quotes and spacing.
func (ns Namespace) URLRefs(s string) string {
	if !strings.Contains(strings.ToLower(s), "url(") {
		return s
	}
	return urlRefRegex.ReplaceAllStringFunc(s, func(m string) string {
		sub := urlRefRegex.FindStringSubmatch(m)
		if sub[3] != sub[5] {
			return m
		}
		return sub[1] + "(" + sub[2] + sub[3] + "#" + ns.ID(sub[4]) + sub[5] + sub[6] + ")"
	})
}

// Rewrite namespaces the class and id selectors and url(#id) references of a stylesheet.
// Everything else, including comments and whitespace, is copied through unchanged.
// If the stylesheet cannot be tokenised it is returned as is.
func (ns Namespace) Rewrite(src string) string {
	l := css.NewLexer(parse.NewInputString(src))

	var (
		b          strings.Builder
		blocks     []bool // true for blocks holding declarations
		atRule     string
		afterDot   bool
		inDeclared = func() bool { return len(blocks) > 0 && blocks[len(blocks)-1] }
	)
	b.Grow(len(src) + 16)

	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if l.Err() != io.EOF {
				return src
			}
			break
		}

		text := string(data)
		dot := false
		switch tt {
		case css.AtKeywordToken:
			atRule = strings.ToLower(text)
		case css.LeftBraceToken:
			declarations := inDeclared() || atRule == "" || !groupingAtRules[atRule]
			blocks = append(blocks, declarations)
			atRule = ""
		case css.RightBraceToken:
			if len(blocks) > 0 {
				blocks = blocks[:len(blocks)-1]
			}
			atRule = ""
		case css.SemicolonToken:
			if !inDeclared() {
				atRule = ""
			}
		case css.DelimToken:
			dot = text == "." && !inDeclared() && atRule == ""
		case css.IdentToken:
			if afterDot {
				text = ns.Class(text)
			}
		case css.HashToken:
			if !inDeclared() && atRule == "" {
				text = "#" + ns.ID(text[1:])
			}
		case css.URLToken:
			text = ns.URLRefs(text)
		}
		afterDot = dot
		b.WriteString(text)
	}

	return b.String()
}
