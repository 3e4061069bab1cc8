package rdfa

import "fmt"

// blankNodeGenerator issues unique, parse-scoped blank node labels.
// Document blank nodes and processor-graph blank nodes use generators with
// distinct prefixes, so a document store and its processor graph can be
// merged without a label in one ever aliasing a different resource in the
// other (§4.7).
type blankNodeGenerator struct {
	prefix  string
	counter int
}

// newBlankNodeGenerator creates a generator for document blank nodes
// ("b1", "b2", ...).
func newBlankNodeGenerator() *blankNodeGenerator {
	return &blankNodeGenerator{prefix: "b"}
}

// newProcessorGraphBlankNodeGenerator creates a generator for processor-graph
// blank nodes ("pg1", "pg2", ...).
func newProcessorGraphBlankNodeGenerator() *blankNodeGenerator {
	return &blankNodeGenerator{prefix: "pg"}
}

// next generates the next blank node ID.
func (g *blankNodeGenerator) next() BlankNode {
	g.counter++
	return BlankNode{ID: fmt.Sprintf("%s%d", g.prefix, g.counter)}
}
