package rdfa

const (
	rdfNS  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xhvNS  = "http://www.w3.org/1999/xhtml/vocab#"
	rdfaNS = "http://www.w3.org/ns/rdfa#"
	dcNS   = "http://purl.org/dc/terms/"
	ptrNS  = "http://www.w3.org/2009/pointers#"

	rdfType = rdfNS + "type"

	hasVocabulary = rdfaNS + "hasVocabulary"
	xpathPointer  = ptrNS + "XPathPointer"
	ptrExpression = ptrNS + "expression"
	rdfaContext   = rdfaNS + "context"
	dcDescription = dcNS + "description"
	dcDate        = dcNS + "date"
)

// Version identifies the RDFa processing rule set in effect for a parse
// (§3 "Version lock": fixed once detected).
type Version int

const (
	// Version10 selects RDFa 1.0 processing rules.
	Version10 Version = iota
	// Version11 selects RDFa 1.1 processing rules (the default).
	Version11
)

func (v Version) String() string {
	if v == Version10 {
		return "1.0"
	}
	return "1.1"
}

// HostLanguage identifies the markup language carrying RDFa (§4.1).
type HostLanguage int

const (
	HostUnknown HostLanguage = iota
	HostXML1
	HostXHTML1
	HostXHTML5
	HostHTML4
	HostHTML5
	HostSVG
)

func (h HostLanguage) String() string {
	switch h {
	case HostXML1:
		return "xml1"
	case HostXHTML1:
		return "xhtml1"
	case HostXHTML5:
		return "xhtml5"
	case HostHTML4:
		return "html4"
	case HostHTML5:
		return "html5"
	case HostSVG:
		return "svg"
	default:
		return "unknown"
	}
}

// IsHTML reports whether the host language is one of the HTML family (as
// opposed to a generic XML host), governing §4.5's head/body special cases
// and §4.3's xmlns-attribute-scanning fallback.
func (h HostLanguage) IsHTML() bool {
	switch h {
	case HostXHTML1, HostXHTML5, HostHTML4, HostHTML5:
		return true
	default:
		return false
	}
}

// defaultXHTMLTerms are the RDFa 1.0 host-default term mappings (§4.5
// preamble). NewRootContext seeds them for HTML-family and xml1 hosts, for
// either RDFa version.
var defaultXHTMLTerms = []string{
	"alternate", "appendix", "bookmark", "cite", "chapter", "contents",
	"copyright", "first", "glossary", "help", "icon", "index", "last",
	"license", "meta", "next", "p3pv1", "prev", "role", "section",
	"stylesheet", "subsection", "start", "top", "up",
}
