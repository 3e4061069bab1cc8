package rdfa

import (
	"net/url"
	"strings"
	"sync"
)

// canonicalizeStatement implements Options.Canonicalize (§6.1): IRIs get
// their scheme/host lowercased per RFC 3986 equivalence rules, and plain and
// typed literal lexical forms have surrounding/internal whitespace runs collapsed
// the way a typical XHTML renderer would. XML literals are left untouched,
// since their lexical form is markup, not text.
func canonicalizeStatement(s Statement) Statement {
	s.Subject = canonicalizeTerm(s.Subject)
	s.Predicate = IRI{Value: canonicalizeIRIValue(s.Predicate.Value)}
	s.Object = canonicalizeTerm(s.Object)
	return s
}

func canonicalizeTerm(t Term) Term {
	switch v := t.(type) {
	case IRI:
		return IRI{Value: canonicalizeIRIValue(v.Value)}
	case Literal:
		if v.Datatype.Value != "" {
			v.Datatype = IRI{Value: canonicalizeIRIValue(v.Datatype.Value)}
		}
		if !v.IsXML() {
			v.Lexical = trimPlain(v.Lexical)
		}
		return v
	default:
		return t
	}
}

func canonicalizeIRIValue(v string) string {
	u, err := url.Parse(v)
	if err != nil {
		return v
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String()
}

// stringInterner backs Options.Intern (§6.1): repeated IRI/literal strings
// across one parse share a single backing string instead of each resolver
// call allocating its own copy.
type stringInterner struct {
	mu    sync.Mutex
	table map[string]string
}

func newStringInterner() *stringInterner {
	return &stringInterner{table: map[string]string{}}
}

func (in *stringInterner) get(s string) string {
	in.mu.Lock()
	defer in.mu.Unlock()
	if v, ok := in.table[s]; ok {
		return v
	}
	in.table[s] = s
	return s
}

func (in *stringInterner) statement(s Statement) Statement {
	s.Subject = in.term(s.Subject)
	s.Predicate = IRI{Value: in.get(s.Predicate.Value)}
	s.Object = in.term(s.Object)
	return s
}

func (in *stringInterner) term(t Term) Term {
	switch v := t.(type) {
	case IRI:
		return IRI{Value: in.get(v.Value)}
	case BlankNode:
		return BlankNode{ID: in.get(v.ID)}
	case Literal:
		v.Lexical = in.get(v.Lexical)
		if v.Datatype.Value != "" {
			v.Datatype = IRI{Value: in.get(v.Datatype.Value)}
		}
		if v.Lang != "" {
			v.Lang = in.get(v.Lang)
		}
		return v
	default:
		return t
	}
}
