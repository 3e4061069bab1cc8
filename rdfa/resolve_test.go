package rdfa

import "testing"

func newTestTraverser(version Version) *traverser {
	return newTraverser(version, HostXML1, "http://base.example/", nil, nil, false, false)
}

func testCtx() *EvalContext {
	ctx := NewRootContext("http://base.example/", HostXML1)
	ctx.URIMappings["ex"] = "http://ex.example/"
	ctx.TermMappings["Thing"] = "http://ex.example/Thing"
	ctx.DefaultVocabulary = "http://vocab.example/"
	return &ctx
}

func TestResolveSafeCURIE(t *testing.T) {
	tr := newTestTraverser(Version11)
	ctx := testCtx()
	term, diags := tr.resolveReference("[ex:Foo]", SafeCURIEorCURIEorURI(Version11), ctx)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	iri, ok := term.(IRI)
	if !ok || iri.Value != "http://ex.example/Foo" {
		t.Fatalf("got %#v", term)
	}
}

func TestResolveTermCaseInsensitiveFallback(t *testing.T) {
	tr := newTestTraverser(Version11)
	ctx := testCtx()
	term, _ := tr.resolveReference("thing", RestrictTerm, ctx)
	iri, ok := term.(IRI)
	if !ok || iri.Value != "http://ex.example/Thing" {
		t.Fatalf("expected case-insensitive term hit, got %#v", term)
	}
}

func TestResolveTermFallsBackToVocab(t *testing.T) {
	tr := newTestTraverser(Version11)
	ctx := testCtx()
	term, _ := tr.resolveReference("widget", RestrictTerm, ctx)
	iri, ok := term.(IRI)
	if !ok || iri.Value != "http://vocab.example/widget" {
		t.Fatalf("expected vocab-expanded term, got %#v", term)
	}
}

func TestResolveUnresolvedTermNoVocab(t *testing.T) {
	tr := newTestTraverser(Version11)
	ctx := testCtx()
	ctx.DefaultVocabulary = ""
	term, diags := tr.resolveReference("widget", RestrictTerm, ctx)
	if term != nil {
		t.Fatalf("expected nil term, got %#v", term)
	}
	if len(diags) != 1 || diags[0].Class != ClassUnresolvedTerm {
		t.Fatalf("expected UnresolvedTerm diagnostic, got %+v", diags)
	}
}

func TestResolveEmptyPrefixCURIEDefaultsToXHV(t *testing.T) {
	tr := newTestTraverser(Version11)
	ctx := testCtx()
	term, _ := tr.resolveReference(":next", RestrictCURIE, ctx)
	iri, ok := term.(IRI)
	if !ok || iri.Value != xhvNS+"next" {
		t.Fatalf("expected XHV fallback, got %#v", term)
	}
}

func TestResolveEmptyPrefixExplicitOverride(t *testing.T) {
	tr := newTestTraverser(Version11)
	ctx := testCtx()
	ctx.URIMappings[""] = "http://override.example/"
	term, _ := tr.resolveReference(":next", RestrictCURIE, ctx)
	iri, ok := term.(IRI)
	if !ok || iri.Value != "http://override.example/next" {
		t.Fatalf("expected explicit xmlns=\"\" to win, got %#v", term)
	}
}

func TestResolveBlankNodeCURIEStableWithinDocument(t *testing.T) {
	tr := newTestTraverser(Version11)
	ctx := testCtx()
	a, _ := tr.resolveReference("_:x", RestrictBNode, ctx)
	b, _ := tr.resolveReference("_:x", RestrictBNode, ctx)
	if a.String() != b.String() {
		t.Fatalf("expected stable blank node identity, got %s vs %s", a, b)
	}
	c, _ := tr.resolveReference("_:y", RestrictBNode, ctx)
	if a.String() == c.String() {
		t.Fatalf("expected distinct blank nodes for distinct references")
	}
}

func TestResolveAbsURIRejectsRelative(t *testing.T) {
	tr := newTestTraverser(Version11)
	ctx := testCtx()
	term, diags := tr.resolveReference("relative/path", RestrictAbsURI, ctx)
	if term != nil {
		t.Fatalf("expected nil for non-absolute IRI under absuri restriction, got %#v", term)
	}
	if len(diags) == 0 {
		t.Fatalf("expected a warning diagnostic")
	}
}

func TestResolveURIResolvesAgainstBase(t *testing.T) {
	tr := newTestTraverser(Version11)
	ctx := testCtx()
	term, _ := tr.resolveReference("sub/page", RestrictURI, ctx)
	iri, ok := term.(IRI)
	if !ok || iri.Value != "http://base.example/sub/page" {
		t.Fatalf("expected base-resolved IRI, got %#v", term)
	}
}

func TestResolveReservedXMLPrefix10(t *testing.T) {
	tr := newTestTraverser(Version10)
	ctx := testCtx()
	term, diags := tr.resolveReference("xml:foo", RestrictCURIE, ctx)
	if term != nil || len(diags) != 0 {
		t.Fatalf("expected silently-dropped reserved xml* token in 1.0, got term=%#v diags=%+v", term, diags)
	}
}

func TestResolvePrefixLowercasedOnlyIn11(t *testing.T) {
	ctx := testCtx()
	ctx.URIMappings["ex"] = "http://ex.example/"

	tr11 := newTestTraverser(Version11)
	term, _ := tr11.resolveReference("EX:Foo", RestrictCURIE, ctx)
	if iri, ok := term.(IRI); !ok || iri.Value != "http://ex.example/Foo" {
		t.Fatalf("expected 1.1 to lower-case the prefix, got %#v", term)
	}

	tr10 := newTestTraverser(Version10)
	term10, diags := tr10.resolveReference("EX:Foo", RestrictCURIE, ctx)
	if term10 != nil {
		t.Fatalf("expected 1.0 to NOT lower-case and miss the mapping, got %#v", term10)
	}
	if len(diags) == 0 {
		t.Fatalf("expected an unresolved-CURIE diagnostic")
	}
}
