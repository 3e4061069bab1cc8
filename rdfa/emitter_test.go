package rdfa

import "testing"

func TestClassIRIMapsKnownClasses(t *testing.T) {
	cases := []struct {
		class MessageClass
		want  string
	}{
		{ClassDocumentError, rdfaNS + "DocumentError"},
		{ClassUnresolvedCURIE, rdfaNS + "UnresolvedCURIE"},
		{ClassUnresolvedTerm, rdfaNS + "UnresolvedTerm"},
		{ClassError, rdfaNS + "Error"},
		{ClassLiteralError, rdfaNS + "Error"},
		{ClassPrefixError, rdfaNS + "Error"},
		{ClassWarning, rdfaNS + "Warning"},
		{ClassInfo, rdfaNS + "Info"},
	}
	for _, c := range cases {
		if got := c.class.ClassIRI().Value; got != c.want {
			t.Fatalf("ClassIRI(%v) = %q, want %q", c.class, got, c.want)
		}
	}
}

func TestEmitProcessorGraphEmitsMessageAndPointer(t *testing.T) {
	var got []Statement
	sink := func(s Statement) { got = append(got, s) }
	gen := newBlankNodeGenerator()

	d := DiagnosticRecord{
		Class:       ClassUnresolvedTerm,
		Message:     "unresolved term \"bogus\"",
		ElementPath: "/html[1]/body[1]/div[1]",
	}
	emitProcessorGraph(d, "http://example.com/doc", gen, sink)

	if len(got) != 7 {
		t.Fatalf("expected 4 message triples + 3 pointer triples, got %d: %+v", len(got), got)
	}

	var sawType, sawDescription, sawPointer, sawExpression bool
	for _, s := range got {
		switch s.Predicate.Value {
		case rdfType:
			if obj, ok := s.Object.(IRI); ok && obj.Value == rdfaNS+"UnresolvedTerm" {
				sawType = true
			}
		case dcDescription:
			sawDescription = true
		case "http://www.w3.org/2009/pointers#pointer":
			sawPointer = true
		case ptrExpression:
			if lit, ok := s.Object.(Literal); ok && lit.Lexical == d.ElementPath {
				sawExpression = true
			}
		}
	}
	if !sawType || !sawDescription || !sawPointer || !sawExpression {
		t.Fatalf("missing expected triples: %+v", got)
	}
}

func TestEmitProcessorGraphSkipsPointerWithoutElementPath(t *testing.T) {
	var got []Statement
	sink := func(s Statement) { got = append(got, s) }
	gen := newBlankNodeGenerator()

	emitProcessorGraph(DiagnosticRecord{Class: ClassWarning, Message: "no element"}, "http://example.com/doc", gen, sink)

	if len(got) != 4 {
		t.Fatalf("expected only the 4 message triples, got %d: %+v", len(got), got)
	}
	for _, s := range got {
		if s.Predicate.Value == "http://www.w3.org/2009/pointers#pointer" {
			t.Fatalf("did not expect a pointer triple without ElementPath")
		}
	}
}

func TestEmitProcessorGraphNoopWithoutSink(t *testing.T) {
	gen := newBlankNodeGenerator()
	emitProcessorGraph(DiagnosticRecord{Class: ClassInfo, Message: "ignored"}, "http://example.com/doc", gen, nil)
}
