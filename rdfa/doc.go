// Package rdfa implements an RDFa 1.0/1.1 Core processor: it walks a parsed
// (X)HTML/XML document and emits the RDF triples the markup encodes,
// following the RDFa processing model's evaluation-context chaining rules.
//
// It focuses on the reader side only — parsing, not writing, RDFa:
//   - NewReader wires a document read from an io.Reader plus options into a
//     Reader; it does not accept an already-built *Node.
//   - Reader.EachStatement and Reader.EachTriple stream emitted statements.
//   - ReadAll collects every statement into a slice for small documents.
//
// Host language and RDFa version are auto-detected from the document unless
// overridden via Options; CURIE, term, and safe-CURIE resolution follow the
// restriction sets defined per version in resolve.go. Profile documents
// (§ RDFa Profiles) are fetched through the ProfileLoader interface, which
// callers can replace with an in-memory fixture or a caching HTTP loader.
//
// Example (reading statements from an HTML document):
//
//	r, err := rdfa.NewReader(strings.NewReader(doc), rdfa.WithBaseURI("http://example.org/"))
//	if err != nil {
//	    // handle error
//	}
//	r.EachStatement(func(stmt rdfa.Statement) bool {
//	    // process stmt.Subject, stmt.Predicate, stmt.Object
//	    return true
//	})
//
// RDFa writing, SPARQL generation, RDF-syntax transformation, and
// host-language syntax validation are not implemented.
package rdfa
