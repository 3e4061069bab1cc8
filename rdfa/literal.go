package rdfa

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
)

// serializeXMLLiteral renders el's children as a self-contained XML exclusive
// c14n-ish fragment: each element carries its in-scope namespace
// declarations, so the fragment's meaning survives detachment from the
// document (§4.6 "XML literals carry their own namespace context").
//
// Grounded on the teacher's rdfxml.go element-to-string encoding, generalized
// from encoding the whole document to encoding an arbitrary fragment with
// namespace fixup, written by hand with encoding/xml's EscapeText for text.
func serializeXMLLiteral(el *Node) string {
	var buf bytes.Buffer
	for _, child := range el.Children {
		writeXMLNode(&buf, child, collectInScopeNamespaces(el))
	}
	return buf.String()
}

// collectInScopeNamespaces walks up from el collecting prefix->IRI
// declarations so the serialized fragment can restate them on each of its
// elements.
func collectInScopeNamespaces(el *Node) map[string]string {
	out := map[string]string{}
	for cur := el; cur != nil; cur = cur.Parent {
		for _, a := range cur.Attrs {
			switch {
			case a.Space == "xmlns":
				if _, ok := out[a.Local]; !ok {
					out[a.Local] = a.Value
				}
			case a.Space == "" && a.Local == "xmlns":
				if _, ok := out[""]; !ok {
					out[""] = a.Value
				}
			}
		}
	}
	return out
}

func writeXMLNode(buf *bytes.Buffer, n *Node, inherited map[string]string) {
	switch n.Kind {
	case KindText:
		xml.EscapeText(buf, []byte(n.Text))
	case KindComment:
		buf.WriteString("<!--")
		buf.WriteString(n.Text)
		buf.WriteString("-->")
	case KindElement:
		childInherited := mergeNamespaces(inherited, n)
		name := qualifiedName(n.Space, n.Local, childInherited)
		fmt.Fprintf(buf, "<%s", name)
		// Restate every inherited namespace not already declared locally, so
		// the fragment is self-describing once detached.
		declared := map[string]bool{}
		for _, a := range n.Attrs {
			if a.Space == "xmlns" {
				declared[a.Local] = true
			} else if a.Space == "" && a.Local == "xmlns" {
				declared[""] = true
			}
		}
		var prefixes []string
		for p := range inherited {
			if !declared[p] {
				prefixes = append(prefixes, p)
			}
		}
		sort.Strings(prefixes)
		for _, p := range prefixes {
			if p == "" {
				fmt.Fprintf(buf, ` xmlns="%s"`, inherited[p])
			} else {
				fmt.Fprintf(buf, ` xmlns:%s="%s"`, p, inherited[p])
			}
		}
		for _, a := range n.Attrs {
			if a.Space == "xmlns" || (a.Space == "" && a.Local == "xmlns") {
				continue // already restated above via the namespace map
			}
			buf.WriteByte(' ')
			// Unprefixed attributes never inherit the element's default
			// namespace (XML Namespaces §5.2), so only a genuinely
			// namespaced a.Space gets qualified.
			buf.WriteString(qualifiedName(a.Space, a.Local, childInherited))
			buf.WriteString(`="`)
			var escaped bytes.Buffer
			xml.EscapeText(&escaped, []byte(a.Value))
			buf.Write(escaped.Bytes())
			buf.WriteString(`"`)
		}
		if len(n.Children) == 0 {
			buf.WriteString("/>")
			return
		}
		buf.WriteString(">")
		for _, c := range n.Children {
			writeXMLNode(buf, c, childInherited)
		}
		fmt.Fprintf(buf, "</%s>", name)
	}
}

// qualifiedName reconstructs a prefix:local serialization for a node whose
// Space holds a resolved namespace URI (or the literal "xml") rather than the
// original source prefix string, by reverse-looking-up that URI in nsmap. "xml"
// is XML's one fixed, always-bound prefix (never declared via xmlns:xml), so
// it's recognized directly instead of requiring a reverse-map hit.
func qualifiedName(space, local string, nsmap map[string]string) string {
	if space == "" {
		return local
	}
	if space == "xml" {
		return "xml:" + local
	}
	var prefixes []string
	for p, uri := range nsmap {
		if uri == space {
			prefixes = append(prefixes, p)
		}
	}
	sort.Strings(prefixes)
	for _, p := range prefixes {
		if p != "" {
			return p + ":" + local
		}
	}
	if len(prefixes) > 0 {
		// Only the default ("") prefix maps to this URI; use it unqualified.
		return local
	}
	return local
}

func mergeNamespaces(inherited map[string]string, n *Node) map[string]string {
	out := make(map[string]string, len(inherited))
	for k, v := range inherited {
		out[k] = v
	}
	for _, a := range n.Attrs {
		if a.Space == "xmlns" {
			out[a.Local] = a.Value
		} else if a.Space == "" && a.Local == "xmlns" {
			out[""] = a.Value
		}
	}
	return out
}

// trimPlain collapses runs of whitespace the way a typical XHTML rendering
// would. Used by postprocess.go's canonicalizeTerm when Options.Canonicalize
// is set; literal content is left exactly as authored otherwise, per §4.6's
// "literal content is not normalized" default.
func trimPlain(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
