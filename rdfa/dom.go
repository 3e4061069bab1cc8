package rdfa

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// xmlNamespaceURI is the URI encoding/xml.Decoder auto-expands the "xml"
// prefix to (it never leaves it as the literal string "xml"). Normalized
// back here so AttrNS("xml", ...) lookups work the same for XML- and
// HTML-parsed trees.
const xmlNamespaceURI = "http://www.w3.org/XML/1998/namespace"

// NodeKind distinguishes the handful of DOM node shapes the traversal
// engine cares about.
type NodeKind int

const (
	KindDocument NodeKind = iota
	KindElement
	KindText
	KindComment
)

// Attr is a single attribute, namespace-qualified when the source format
// carries namespaces (XML/SVG hosts); Space is empty for HTML attributes.
type Attr struct {
	Space string
	Local string
	Value string
}

// Node is the document tree this package's Traversal Engine walks. It is
// the concrete form of the "external DOM" collaborator spec.md treats as a
// black box (§1, §6.3): NewReader reads raw bytes and builds the tree via
// ParseHTML/ParseXML; it has no entry point for a *Node built some other way.
type Node struct {
	Kind     NodeKind
	Space    string // element namespace URI, when known
	Local    string // element/attribute local name
	Attrs    []Attr
	Text     string // concatenated character data, for KindText
	Children []*Node
	Parent   *Node

	index int // this node's position among its parent's element children
}

// Attr looks up an attribute by local name, ignoring namespace. RDFa
// attributes of interest (about, rel, typeof, ...) are never namespaced.
func (n *Node) Attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// AttrNS looks up a namespace-qualified attribute (used for xml:lang,
// xml:base, and xmlns:* scanning).
func (n *Node) AttrNS(space, local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Space == space && a.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// Path renders an XPath-like pointer to this element, for processor-graph
// diagnostics (§4.7 ptr:expression).
func (n *Node) Path() string {
	if n == nil || n.Kind != KindElement {
		return "/"
	}
	var segments []string
	for cur := n; cur != nil && cur.Kind == KindElement; cur = cur.Parent {
		segments = append([]string{fmt.Sprintf("%s[%d]", cur.Local, cur.index+1)}, segments...)
	}
	return "/" + strings.Join(segments, "/")
}

// TextContent concatenates all descendant text, used by the Literal
// Builder for plain-literal content (§4.6).
func (n *Node) TextContent() string {
	var b strings.Builder
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur.Kind == KindText {
			b.WriteString(cur.Text)
			return
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// HasOnlyTextChildren reports whether every child is a text or comment node
// (§4.6 RDFa 1.0 plain-literal rule).
func (n *Node) HasOnlyTextChildren() bool {
	for _, c := range n.Children {
		if c.Kind == KindElement {
			return false
		}
	}
	return true
}

// ParseHTML builds a Node tree from an HTML5 document or fragment using
// golang.org/x/net/html, the idiomatic Go HTML5 tree builder (DOMAIN STACK,
// see DESIGN.md dom.go entry).
func ParseHTML(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("rdfa: parsing HTML: %w", err)
	}
	return convertHTMLNode(doc, nil), nil
}

func convertHTMLNode(h *html.Node, parent *Node) *Node {
	n := &Node{Parent: parent}
	switch h.Type {
	case html.DocumentNode:
		n.Kind = KindDocument
	case html.ElementNode:
		n.Kind = KindElement
		n.Local = h.Data
		n.Space = htmlNamespace(h)
		for _, a := range h.Attr {
			space, local := a.Namespace, a.Key
			// x/net/html never splits xmlns:*/xml:* attribute names on the
			// colon (HTML has no attribute namespaces); normalize them here
			// so mapping.go/traversal.go can look them up the same way
			// regardless of host.
			if space == "" {
				switch {
				case local == "xmlns":
				case strings.HasPrefix(local, "xmlns:"):
					space, local = "xmlns", strings.TrimPrefix(local, "xmlns:")
				case strings.HasPrefix(local, "xml:"):
					space, local = "xml", strings.TrimPrefix(local, "xml:")
				}
			}
			n.Attrs = append(n.Attrs, Attr{Space: space, Local: local, Value: a.Val})
		}
	case html.TextNode:
		n.Kind = KindText
		n.Text = h.Data
	case html.CommentNode:
		n.Kind = KindComment
		n.Text = h.Data
	default:
		n.Kind = KindDocument
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		child := convertHTMLNode(c, n)
		if child.Kind == KindElement {
			child.index = countElementChildren(n)
		}
		n.Children = append(n.Children, child)
	}
	return n
}

func countElementChildren(n *Node) int {
	count := 0
	for _, c := range n.Children {
		if c.Kind == KindElement {
			count++
		}
	}
	return count
}

func htmlNamespace(h *html.Node) string {
	switch h.Namespace {
	case "svg":
		return "http://www.w3.org/2000/svg"
	case "math":
		return "http://www.w3.org/1998/Math/MathML"
	default:
		return "http://www.w3.org/1999/xhtml"
	}
}

// ParseXML builds a Node tree from a generic XML document (xml1/svg/xhtml1
// hosts) by draining an encoding/xml.Decoder's token stream, the same
// technique the teacher's rdfxml.go uses to stream RDF/XML (DESIGN.md).
func ParseXML(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	root := &Node{Kind: KindDocument}
	stack := []*Node{root}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("rdfa: parsing XML: %w", err)
		}
		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Node{Kind: KindElement, Space: t.Name.Space, Local: t.Name.Local, Parent: top}
			el.index = countElementChildren(top)
			for _, a := range t.Attr {
				space := a.Name.Space
				if space == xmlNamespaceURI {
					space = "xml"
				}
				el.Attrs = append(el.Attrs, Attr{Space: space, Local: a.Name.Local, Value: a.Value})
			}
			top.Children = append(top.Children, el)
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			top.Children = append(top.Children, &Node{Kind: KindText, Text: string(t), Parent: top})
		case xml.Comment:
			top.Children = append(top.Children, &Node{Kind: KindComment, Text: string(t), Parent: top})
		}
	}
	return root, nil
}

// DocumentElement returns the first element child of a document node (the
// root element), or nil if the document has none.
func (n *Node) DocumentElement() *Node {
	for _, c := range n.Children {
		if c.Kind == KindElement {
			return c
		}
	}
	return nil
}
