package svgdoc

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// Codec parses markup into a Document and serialises it back.
// Implementations must not keep state between calls.
type Codec interface {
	Parse(r io.Reader) (*Document, error)
	Serialize(w io.Writer, doc *Document) error
}

// ParseError reports markup that cannot be turned into a tree.
type ParseError struct {
	Element string
	Reason  string
	Err     error
}

func (e *ParseError) Error() string {
	msg := "svg parse error: " + e.Reason
	if e.Element != "" {
		msg += " (in <" + e.Element + ">)"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// XMLCodec is the default Codec, built on the tdewolff XML lexer.
type XMLCodec struct{}

// NewXMLCodec returns an XML codec.
func NewXMLCodec() *XMLCodec {
	return &XMLCodec{}
}

// ParseString parses s with the given codec.
func ParseString(c Codec, s string) (*Document, error) {
	return c.Parse(strings.NewReader(s))
}

// SerializeString serialises doc with the given codec.
func SerializeString(c Codec, doc *Document) (string, error) {
	var buf bytes.Buffer
	if err := c.Serialize(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Parse builds a Document from r. Mismatched or unclosed tags, content outside the
// root element and a missing root element are reported as *ParseError.
func (XMLCodec) Parse(r io.Reader) (*Document, error) {
	l := xml.NewLexer(parse.NewInput(r))
	doc := &Document{}

	var (
		stack   []*Node // open elements
		pending *Node   // element or PI whose start tag is not yet closed
	)

	appendNode := func(n *Node) error {
		if len(stack) > 0 {
			stack[len(stack)-1].AppendChild(n)
			return nil
		}
		if n.Kind == ElementNode {
			if doc.Root != nil {
				return &ParseError{Element: n.Name, Reason: "multiple root elements"}
			}
			doc.Root = n
		}
		if n.Kind == TextNode && strings.TrimSpace(n.Data) != "" {
			return &ParseError{Reason: "text outside the root element"}
		}
		doc.Nodes = append(doc.Nodes, n)
		return nil
	}

	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if err := l.Err(); err != io.EOF {
				return nil, &ParseError{Reason: "malformed markup", Err: err}
			}
			if pending != nil {
				return nil, &ParseError{Element: pending.Name, Reason: "unterminated start tag"}
			}
			if len(stack) > 0 {
				return nil, &ParseError{Element: stack[len(stack)-1].Name, Reason: "unclosed element"}
			}
			if doc.Root == nil {
				return nil, &ParseError{Reason: "no root element"}
			}
			return doc, nil

		case xml.StartTagToken:
			name := string(l.Text())
			if name == "" {
				return nil, &ParseError{Reason: "empty tag name"}
			}
			pending = &Node{Kind: ElementNode, Name: name}

		case xml.StartTagPIToken:
			pending = &Node{Kind: ProcInstNode, Name: string(l.Text())}

		case xml.AttributeToken:
			if pending == nil {
				return nil, &ParseError{Reason: "attribute outside of a start tag"}
			}
			pending.Attrs = append(pending.Attrs, newAttr(string(l.Text()), l.AttrVal()))

		case xml.StartTagCloseToken:
			if pending == nil {
				return nil, &ParseError{Reason: "unexpected '>'"}
			}
			if err := appendNode(pending); err != nil {
				return nil, err
			}
			stack = append(stack, pending)
			pending = nil

		case xml.StartTagCloseVoidToken:
			if pending == nil {
				return nil, &ParseError{Reason: "unexpected '/>'"}
			}
			pending.SelfClosing = true
			if err := appendNode(pending); err != nil {
				return nil, err
			}
			pending = nil

		case xml.StartTagClosePIToken:
			if pending == nil {
				return nil, &ParseError{Reason: "unexpected '?>'"}
			}
			if err := appendNode(pending); err != nil {
				return nil, err
			}
			pending = nil

		case xml.EndTagToken:
			name := strings.TrimSpace(string(l.Text()))
			if len(stack) == 0 {
				return nil, &ParseError{Element: name, Reason: "closing tag without matching start tag"}
			}
			top := stack[len(stack)-1]
			if top.Name != name {
				return nil, &ParseError{Element: top.Name, Reason: fmt.Sprintf("unexpected closing tag </%s>", name)}
			}
			stack = stack[:len(stack)-1]

		case xml.TextToken:
			if err := appendNode(&Node{Kind: TextNode, Data: string(data)}); err != nil {
				return nil, err
			}

		case xml.CDATAToken:
			if err := appendNode(&Node{Kind: CDataNode, Data: cdataContent(data, l.Text())}); err != nil {
				return nil, err
			}

		case xml.CommentToken:
			if err := appendNode(&Node{Kind: CommentNode, Data: rawOrWrapped(data, l.Text(), "<!--", "<!--", "-->")}); err != nil {
				return nil, err
			}

		case xml.DOCTYPEToken:
			if err := appendNode(&Node{Kind: DoctypeNode, Data: rawOrWrapped(data, l.Text(), "<!", "<!DOCTYPE", ">")}); err != nil {
				return nil, err
			}
		}
	}
}

// Serialize writes doc back out as markup.
func (XMLCodec) Serialize(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	for _, n := range doc.Nodes {
		writeNode(bw, n)
	}
	return bw.Flush()
}

func writeNode(w *bufio.Writer, n *Node) {
	switch n.Kind {
	case ElementNode:
		w.WriteByte('<')
		w.WriteString(n.Name)
		writeAttrs(w, n.Attrs)
		if n.SelfClosing && len(n.Children) == 0 {
			w.WriteString("/>")
			return
		}
		w.WriteByte('>')
		for _, c := range n.Children {
			writeNode(w, c)
		}
		w.WriteString("</")
		w.WriteString(n.Name)
		w.WriteByte('>')
	case ProcInstNode:
		w.WriteString("<?")
		w.WriteString(n.Name)
		writeAttrs(w, n.Attrs)
		w.WriteString("?>")
	case CDataNode:
		w.WriteString("<![CDATA[")
		w.WriteString(n.Data)
		w.WriteString("]]>")
	default:
		w.WriteString(n.Data)
	}
}

func writeAttrs(w *bufio.Writer, attrs []Attr) {
	for _, a := range attrs {
		q := a.Quote
		if q != '\'' {
			q = '"'
		}
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteByte('=')
		w.WriteByte(q)
		w.WriteString(a.Value)
		w.WriteByte(q)
	}
}

// newAttr strips the quotes from a raw attribute value and remembers which were used.
func newAttr(name string, raw []byte) Attr {
	val := string(raw)
	if len(val) >= 2 && (val[0] == '"' || val[0] == '\'') && val[len(val)-1] == val[0] {
		return Attr{Name: name, Value: val[1 : len(val)-1], Quote: val[0]}
	}
	return Attr{Name: name, Value: val, Quote: '"'}
}

func cdataContent(data, text []byte) string {
	s := string(data)
	if strings.HasPrefix(s, "<![CDATA[") {
		return strings.TrimSuffix(s[len("<![CDATA["):], "]]>")
	}
	return string(text)
}

// rawOrWrapped returns the raw lexeme when it carries its delimiters, otherwise
// rebuilds it from the token text.
func rawOrWrapped(data, text []byte, marker, open, closing string) string {
	if s := string(data); strings.HasPrefix(s, marker) {
		return s
	}
	return open + string(text) + closing
}
