package rdfa

import (
	"strings"
	"testing"
)

func mustReadXML(t *testing.T, src string, opts ...Option) *Reader {
	t.Helper()
	allOpts := append([]Option{WithHostLanguage(HostXML1)}, opts...)
	r, err := NewReader(strings.NewReader(src), allOpts...)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	return r
}

func findStatement(stmts []Statement, subj, pred, obj string) bool {
	for _, s := range stmts {
		if s.Subject.String() == subj && s.Predicate.String() == pred && s.Object.String() == obj {
			return true
		}
	}
	return false
}

// S1: chaining through rel+resource on a child with no @about.
func TestScenarioChaining(t *testing.T) {
	src := `<div about="http://a.example/s"><span rel="http://a.example/p" resource="http://a.example/o"/></div>`
	r := mustReadXML(t, src)
	stmts := r.ReadAll()
	if len(stmts) != 1 {
		t.Fatalf("expected exactly 1 statement, got %d: %+v", len(stmts), stmts)
	}
	if !findStatement(stmts, "http://a.example/s", "http://a.example/p", "http://a.example/o") {
		t.Fatalf("missing (s, p, o) in %+v", stmts)
	}
}

// S2: @typeof on an anonymous element creates a fresh blank subject.
func TestScenarioTypeofAnonymous(t *testing.T) {
	src := `<div typeof="http://a.example/T"/>`
	r := mustReadXML(t, src, WithVersion(Version11))
	stmts := r.ReadAll()
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d: %+v", len(stmts), stmts)
	}
	s := stmts[0]
	bn, ok := s.Subject.(BlankNode)
	if !ok {
		t.Fatalf("expected blank node subject, got %T", s.Subject)
	}
	if bn.ID == "" {
		t.Fatalf("blank node has empty ID")
	}
	if s.Predicate.Value != rdfType {
		t.Fatalf("expected rdf:type predicate, got %s", s.Predicate.Value)
	}
	if s.Object.String() != "http://a.example/T" {
		t.Fatalf("expected type http://a.example/T, got %s", s.Object.String())
	}
}

// S3: @property on <head> in an XHTML document falls back to the document
// base as subject.
func TestScenarioHeadSubjectFallback(t *testing.T) {
	src := `<html><head property="http://a.example/p" content="hi"></head><body></body></html>`
	r, err := NewReader(strings.NewReader(src), WithHostLanguage(HostXHTML1), WithBaseURI("http://d/"))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	stmts := r.ReadAll()
	if !findStatement(stmts, "http://d/", "http://a.example/p", `"hi"`) {
		t.Fatalf("missing (http://d/, p, \"hi\") in %+v", stmts)
	}
}

// S4: an incomplete triple left by @rel (no @resource/@href) is completed by
// the child element's @about.
func TestScenarioIncompleteTriple(t *testing.T) {
	src := `<div about="http://a.example/s" rel="http://a.example/p"><span about="http://a.example/o"/></div>`
	r := mustReadXML(t, src)
	stmts := r.ReadAll()
	if !findStatement(stmts, "http://a.example/s", "http://a.example/p", "http://a.example/o") {
		t.Fatalf("missing (s, p, o) in %+v", stmts)
	}
}

// S5: RDFa 1.0 builds an XML literal for rich content and does not descend
// into the element's children as separate traversal steps.
func TestScenarioXMLLiteral10(t *testing.T) {
	src := `<span property="http://a.example/p">hello <em>world</em></span>`
	r := mustReadXML(t, src, WithVersion(Version10))
	stmts := r.ReadAll()
	if len(stmts) != 1 {
		t.Fatalf("expected exactly 1 statement (no separate descent), got %d: %+v", len(stmts), stmts)
	}
	lit, ok := stmts[0].Object.(Literal)
	if !ok {
		t.Fatalf("expected literal object, got %T", stmts[0].Object)
	}
	if !lit.IsXML() {
		t.Fatalf("expected XML literal datatype, got %s", lit.Datatype.Value)
	}
	if !strings.Contains(lit.Lexical, "<em>world</em>") {
		t.Fatalf("expected serialized markup to contain <em>world</em>, got %q", lit.Lexical)
	}
}

// S6: @vocab scopes a bare term's expansion, and an empty @vocab resets to
// the host default (none here, so the bare term is simply dropped).
func TestScenarioVocabReset(t *testing.T) {
	src := `<div about="http://a.example/s" vocab="http://v/"><span property="x"/><span vocab=""><span property="x"/></span></div>`
	r := mustReadXML(t, src, WithVersion(Version11))
	stmts := r.ReadAll()
	var literalStmts []Statement
	for _, s := range stmts {
		if _, ok := s.Object.(Literal); ok {
			literalStmts = append(literalStmts, s)
		}
	}
	if len(literalStmts) != 1 {
		t.Fatalf("expected exactly 1 literal statement (second is unresolved-term dropped), got %d: %+v", len(literalStmts), literalStmts)
	}
	if literalStmts[0].Predicate.Value != "http://v/x" {
		t.Fatalf("expected predicate http://v/x, got %s", literalStmts[0].Predicate.Value)
	}
}

func TestEmptyDocumentRejected(t *testing.T) {
	_, err := NewReader(strings.NewReader(""))
	if err == nil {
		t.Fatalf("expected an error for empty input")
	}
}

func TestRelRevBothOnSameElement(t *testing.T) {
	src := `<div about="http://a.example/s"><span rel="http://a.example/p" rev="http://a.example/q" resource="http://a.example/o"/></div>`
	r := mustReadXML(t, src)
	stmts := r.ReadAll()
	if !findStatement(stmts, "http://a.example/s", "http://a.example/p", "http://a.example/o") {
		t.Fatalf("missing forward rel statement in %+v", stmts)
	}
	if !findStatement(stmts, "http://a.example/o", "http://a.example/q", "http://a.example/s") {
		t.Fatalf("missing reversed rev statement in %+v", stmts)
	}
}
