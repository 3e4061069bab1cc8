package rdfa

import "testing"

func TestEvalContextCloneIsolatesMaps(t *testing.T) {
	parent := NewRootContext("http://base.example/", HostXML1)
	parent.URIMappings["ex"] = "http://ex.example/"

	child := parent.Clone()
	child.URIMappings["ex"] = "http://overwritten.example/"
	child.URIMappings["new"] = "http://new.example/"

	if parent.URIMappings["ex"] != "http://ex.example/" {
		t.Fatalf("mutating the clone's map mutated the parent: %+v", parent.URIMappings)
	}
	if _, ok := parent.URIMappings["new"]; ok {
		t.Fatalf("parent should not see keys added only to the clone")
	}
}

func TestEvalContextCloneIsolatesIncompleteTriples(t *testing.T) {
	parent := NewRootContext("http://base.example/", HostXML1)
	parent.IncompleteTriples = []IncompleteTriple{{Predicate: IRI{Value: "http://ex.example/p"}, Direction: Forward}}

	child := parent.Clone()
	child.IncompleteTriples = append(child.IncompleteTriples, IncompleteTriple{Predicate: IRI{Value: "http://ex.example/q"}, Direction: Reverse})

	if len(parent.IncompleteTriples) != 1 {
		t.Fatalf("appending to the clone's slice leaked into the parent: %+v", parent.IncompleteTriples)
	}
}

func TestNewRootContextSeedsXHTMLTermsForHTMLHosts(t *testing.T) {
	ctx := NewRootContext("http://base.example/", HostHTML5)
	if ctx.TermMappings["next"] != xhvNS+"next" {
		t.Fatalf("expected HTML host to seed default XHTML terms, got %+v", ctx.TermMappings)
	}
}

func TestNewRootContextNoXHTMLTermsForSVG(t *testing.T) {
	ctx := NewRootContext("http://base.example/", HostSVG)
	if len(ctx.TermMappings) != 0 {
		t.Fatalf("expected SVG host to start with no default terms, got %+v", ctx.TermMappings)
	}
}

func TestSameScopeFieldsDetectsDivergence(t *testing.T) {
	parent := NewRootContext("http://base.example/", HostXML1)
	child := parent.Clone()
	if !sameScopeFields(parent, child) {
		t.Fatalf("expected an untouched clone to report same scope")
	}
	child.Language = "en"
	if sameScopeFields(parent, child) {
		t.Fatalf("expected a changed language to report divergent scope")
	}
}
