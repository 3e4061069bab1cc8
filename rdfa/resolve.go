package rdfa

import (
	"strings"
)

// Restriction is a bitset of the token forms a Reference Resolver call will
// accept (§4.4, §9 "Express restrictions as a bitset ... not a web of
// branches"). The three presets below give each attribute group's set for
// each RDFa version; they depend on the version only, not on the host.
type Restriction uint8

const (
	RestrictSafeCURIE Restriction = 1 << iota
	RestrictCURIE
	RestrictTerm
	RestrictURI
	RestrictAbsURI
	RestrictBNode
)

func (r Restriction) has(flag Restriction) bool { return r&flag != 0 }

// SafeCURIEorCURIEorURI is the restriction set for @about/@resource (§4.4
// preset list); @src and @href are resolved with RestrictURI alone.
func SafeCURIEorCURIEorURI(v Version) Restriction {
	if v == Version10 {
		return RestrictTerm | RestrictSafeCURIE | RestrictURI | RestrictBNode
	}
	return RestrictSafeCURIE | RestrictCURIE | RestrictTerm | RestrictURI | RestrictBNode
}

// TERMorCURIEorAbsURI is the restriction set for @rel/@rev/@typeof/@datatype.
func TERMorCURIEorAbsURI(v Version) Restriction {
	if v == Version10 {
		return RestrictTerm | RestrictCURIE
	}
	return RestrictTerm | RestrictCURIE | RestrictAbsURI
}

// TERMorCURIEorAbsURIProp is the restriction set for @property, which in
// 1.0 excludes bare terms.
func TERMorCURIEorAbsURIProp(v Version) Restriction {
	if v == Version10 {
		return RestrictCURIE
	}
	return RestrictTerm | RestrictCURIE | RestrictAbsURI
}

// resolveReference converts a single trimmed attribute token into an RDF
// term under the given restrictions (§4.4). It never returns a Go error:
// malformed input is reported via the returned diagnostics and a nil term.
func (tr *traverser) resolveReference(token string, restrictions Restriction, ctx *EvalContext) (Term, []DiagnosticRecord) {
	token = strings.TrimSpace(token)

	// Step 1: safe CURIE.
	if restrictions.has(RestrictSafeCURIE) && strings.HasPrefix(token, "[") && strings.HasSuffix(token, "]") && len(token) >= 2 {
		inner := token[1 : len(token)-1]
		term, ok, diags := tr.resolveCURIE(inner, restrictions, ctx)
		if !ok {
			return nil, diags
		}
		return term, diags
	}

	// Step 2: term.
	if restrictions.has(RestrictTerm) && isNCName(token) {
		term, diags := tr.resolveTerm(token, ctx)
		return term, diags
	}

	// Step 3: CURIE (a `_:` blank node CURIE needs only the bnode flag).
	if restrictions.has(RestrictCURIE) || restrictions.has(RestrictSafeCURIE) ||
		(restrictions.has(RestrictBNode) && strings.HasPrefix(token, "_:")) {
		if term, ok, diags := tr.resolveCURIE(token, restrictions, ctx); ok {
			return term, diags
		}
	}

	// Step 4: reserved xml* prefix guard, 1.0 only.
	if tr.version == Version10 && len(token) >= 3 && strings.EqualFold(token[:3], "xml") {
		return nil, nil
	}

	// Step 5: absolute URI only.
	if restrictions.has(RestrictAbsURI) {
		if !isAbsoluteIRI(token) {
			return nil, []DiagnosticRecord{{Class: ClassWarning, Message: "expected an absolute IRI: " + token}}
		}
		return IRI{Value: token}, nil
	}

	// Step 6: URI resolved against base.
	if restrictions.has(RestrictURI) {
		return IRI{Value: resolveIRI(ctx.Base, token)}, nil
	}

	return nil, []DiagnosticRecord{{Class: ClassUnresolvedCURIE, Message: "could not resolve token: " + token}}
}

// resolveTerm implements §4.4.1.
func (tr *traverser) resolveTerm(term string, ctx *EvalContext) (Term, []DiagnosticRecord) {
	if iri, ok := ctx.TermMappings[term]; ok {
		return IRI{Value: iri}, nil
	}
	lower := strings.ToLower(term)
	for k, v := range ctx.TermMappings {
		if strings.ToLower(k) == lower {
			return IRI{Value: v}, nil
		}
	}
	if ctx.DefaultVocabulary != "" {
		return IRI{Value: ctx.DefaultVocabulary + term}, nil
	}
	return nil, []DiagnosticRecord{{Class: ClassUnresolvedTerm, Message: "unresolved term: " + term}}
}

// resolveCURIE implements §4.4.2. ok is false when token is not a CURIE at
// all (no colon) so the caller can fall through to later steps; it is also
// false when the token looked like a CURIE but its prefix is unmapped, in
// which case diags explains why.
func (tr *traverser) resolveCURIE(token string, restrictions Restriction, ctx *EvalContext) (Term, bool, []DiagnosticRecord) {
	idx := strings.IndexByte(token, ':')
	if idx < 0 {
		return nil, false, nil
	}
	prefix := token[:idx]
	reference := token[idx+1:]

	if prefix == "_" && restrictions.has(RestrictBNode) {
		return tr.blankNode(reference), true, nil
	}

	if prefix == "" {
		if iri, ok := ctx.URIMappings[""]; ok {
			return IRI{Value: iri + reference}, true, nil
		}
		return IRI{Value: xhvNS + reference}, true, nil
	}

	lookupPrefix := prefix
	if tr.version == Version11 {
		lookupPrefix = strings.ToLower(prefix)
	}
	if iri, ok := ctx.URIMappings[lookupPrefix]; ok {
		return IRI{Value: iri + reference}, true, nil
	}
	return nil, false, []DiagnosticRecord{{Class: ClassUnresolvedCURIE, Message: "unmapped CURIE prefix: " + prefix}}
}
