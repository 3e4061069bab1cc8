package rdfa

import "time"

const xsdDateTime = "http://www.w3.org/2001/XMLSchema#dateTime"

// ClassIRI returns the rdf:type object used for a diagnostic record's
// processor-graph node. Only the resolver/term/prefix warning classes and
// the two fatal classes are named in §4.7; Info/Warning fall back to the
// RDFa processor-graph vocabulary's generic Info/Warning classes.
func (c MessageClass) ClassIRI() IRI {
	switch c {
	case ClassDocumentError:
		return IRI{Value: rdfaNS + "DocumentError"}
	case ClassProfileReferenceError:
		return IRI{Value: rdfaNS + "ProfileReferenceError"}
	case ClassUnresolvedCURIE:
		return IRI{Value: rdfaNS + "UnresolvedCURIE"}
	case ClassUnresolvedTerm:
		return IRI{Value: rdfaNS + "UnresolvedTerm"}
	case ClassError, ClassLiteralError, ClassPrefixError:
		return IRI{Value: rdfaNS + "Error"}
	case ClassWarning:
		return IRI{Value: rdfaNS + "Warning"}
	default:
		return IRI{Value: rdfaNS + "Info"}
	}
}

// emitProcessorGraph renders one diagnostic record as the processor-graph
// fragment described in §4.7: a message blank node plus a pointer blank node
// naming the offending element's path. gen supplies fresh blank node labels
// so processor-graph nodes never collide with document blank nodes.
func emitProcessorGraph(d DiagnosticRecord, documentBase string, gen *blankNodeGenerator, sink StatementSink) {
	if sink == nil {
		return
	}
	msgNode := gen.next()
	sink(Statement{Subject: msgNode, Predicate: IRI{Value: rdfType}, Object: d.Class.ClassIRI()})
	sink(Statement{Subject: msgNode, Predicate: IRI{Value: dcDescription}, Object: Literal{Lexical: d.Message}})
	sink(Statement{Subject: msgNode, Predicate: IRI{Value: dcDate}, Object: Literal{
		Lexical:  time.Now().UTC().Format(time.RFC3339),
		Datatype: IRI{Value: xsdDateTime},
	}})
	sink(Statement{Subject: msgNode, Predicate: IRI{Value: rdfaContext}, Object: IRI{Value: documentBase}})

	if d.ElementPath == "" {
		return
	}
	ptrNode := gen.next()
	sink(Statement{Subject: msgNode, Predicate: IRI{Value: "http://www.w3.org/2009/pointers#pointer"}, Object: ptrNode})
	sink(Statement{Subject: ptrNode, Predicate: IRI{Value: rdfType}, Object: IRI{Value: xpathPointer}})
	sink(Statement{Subject: ptrNode, Predicate: IRI{Value: ptrExpression}, Object: Literal{Lexical: d.ElementPath}})
}
