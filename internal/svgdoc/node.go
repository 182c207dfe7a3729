// Package svgdoc provides a small mutable tree for SVG markup.
//
// Text, attribute values, comments and doctypes are kept as raw markup so that a
// document round-trips through Parse and Serialize without re-escaping.
package svgdoc

import (
	"strings"
)

// Kind identifies the type of a Node.
type Kind int

// Node kinds.
const (
	ElementNode Kind = iota
	TextNode
	CDataNode
	CommentNode
	ProcInstNode
	DoctypeNode
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CDataNode:
		return "cdata"
	case CommentNode:
		return "comment"
	case ProcInstNode:
		return "procinst"
	case DoctypeNode:
		return "doctype"
	}
	return "unknown"
}

// Attr is a single attribute. Value is raw markup (entities are not decoded).
type Attr struct {
	Name  string
	Value string
	Quote byte
}

// Node is an element, text run, CDATA section, comment, processing instruction or doctype.
type Node struct {
	Kind  Kind
	Name  string
	Attrs []Attr

	// Data holds the raw text of text, comment and doctype nodes and the
	// unwrapped content of CDATA sections.
	Data string

	Parent   *Node
	Children []*Node

	// SelfClosing records that an element was written as <name/>.
	SelfClosing bool
}

// LocalName returns the element name without its namespace prefix.
func (n *Node) LocalName() string {
	if i := strings.IndexByte(n.Name, ':'); i >= 0 {
		return n.Name[i+1:]
	}
	return n.Name
}

// Is reports whether n is an element with the given local name (case-insensitive).
func (n *Node) Is(name string) bool {
	return n != nil && n.Kind == ElementNode && strings.EqualFold(n.LocalName(), name)
}

// Attr returns the raw value of an attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, keeping its position and quote style if it already exists.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value, Quote: '"'})
}

// RemoveAttr deletes an attribute if present.
func (n *Node) RemoveAttr(name string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return
		}
	}
}

// AppendChild adds c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// Ancestors returns the element chain from the parent up to the root.
func (n *Node) Ancestors() []*Node {
	var chain []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		chain = append(chain, p)
	}
	return chain
}

// Within reports whether n or one of its ancestors is an element with the given local name.
func (n *Node) Within(name string) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Is(name) {
			return true
		}
	}
	return false
}

// Text concatenates the text and CDATA children of n.
func (n *Node) Text() string {
	var b strings.Builder
	for _, c := range n.Children {
		if c.Kind == TextNode || c.Kind == CDataNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// SetText replaces the children of n with a single text run. When the existing
// content was wrapped in a CDATA section the replacement is too.
func (n *Node) SetText(s string) {
	kind := TextNode
	for _, c := range n.Children {
		if c.Kind == CDataNode {
			kind = CDataNode
			break
		}
	}
	n.Children = nil
	n.SelfClosing = false
	n.AppendChild(&Node{Kind: kind, Data: s})
}

// Walk visits n and its descendants in document order. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Document is a parsed SVG file: the root element plus any prolog and epilog nodes.
type Document struct {
	// Nodes are the top-level nodes in order; Root is one of them.
	Nodes []*Node
	Root  *Node
}

// Elements returns every element of the document in document order.
func (d *Document) Elements() []*Node {
	var elements []*Node
	if d.Root == nil {
		return elements
	}
	d.Root.Walk(func(n *Node) bool {
		if n.Kind == ElementNode {
			elements = append(elements, n)
		}
		return true
	})
	return elements
}

// ElementsByName returns the elements with the given local name in document order.
func (d *Document) ElementsByName(name string) []*Node {
	var matched []*Node
	for _, el := range d.Elements() {
		if el.Is(name) {
			matched = append(matched, el)
		}
	}
	return matched
}
