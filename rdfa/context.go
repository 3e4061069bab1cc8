package rdfa

// Direction identifies which way a pending incomplete triple points: the
// descendant that completes it becomes the object (forward, from @rel) or
// the subject (reverse, from @rev) of the finished statement (§3, §4.5
// steps 9/11).
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// IncompleteTriple is a (predicate, direction) pair awaiting a subject from
// a descendant element (§3 "Incomplete Triple").
type IncompleteTriple struct {
	Predicate IRI
	Direction Direction
}

// EvalContext is the per-element evaluation context (§3), threaded through
// the recursive Traversal Engine. Values, not pointers: every mutation
// happens on a freshly cloned copy so a child's context can never
// back-propagate into its parent's (§3 "Context isolation" invariant,
// §9 "cloning on write avoids aliasing bugs").
//
// The copy-on-write shape is grounded on jsonldContext/jsonldContext.withContext
// in the teacher's jsonld.go, generalized here to actually clone its maps
// instead of mutating them in place.
type EvalContext struct {
	Base              string
	ParentSubject     Term
	ParentObject      Term
	URIMappings       map[string]string // prefix -> IRI
	Namespaces        map[string]string // prefix -> namespace IRI, xmlns-declared subset
	IncompleteTriples []IncompleteTriple
	Language          string
	TermMappings      map[string]string // NCName -> IRI
	DefaultVocabulary string
}

// NewRootContext builds the initial evaluation context for a document,
// seeded with the host language's default term mappings (§4.5 preamble) and
// with parent_subject/parent_object set to the document base, per RDFa's
// initial-context rule. Seeding both (rather than leaving them nil) matters
// even when base is the empty string: a root element carrying only
// @property with no ancestor to inherit from still needs a non-nil subject
// to emit against (§8 S5).
func NewRootContext(base string, host HostLanguage) EvalContext {
	ctx := EvalContext{
		Base:          base,
		ParentSubject: IRI{Value: base},
		ParentObject:  IRI{Value: base},
		URIMappings:   map[string]string{},
		Namespaces:    map[string]string{},
		TermMappings:  map[string]string{},
	}
	if host.IsHTML() || host == HostXML1 {
		for _, term := range defaultXHTMLTerms {
			ctx.TermMappings[term] = xhvNS + term
		}
	}
	return ctx
}

// Clone returns a deep-enough copy of the context: map fields get fresh
// backing stores, scalar fields copy by value, and IncompleteTriples gets a
// fresh backing array. Mutating the clone never affects the receiver.
func (c EvalContext) Clone() EvalContext {
	clone := c
	clone.URIMappings = cloneStringMap(c.URIMappings)
	clone.Namespaces = cloneStringMap(c.Namespaces)
	clone.TermMappings = cloneStringMap(c.TermMappings)
	if len(c.IncompleteTriples) > 0 {
		clone.IncompleteTriples = append([]IncompleteTriple(nil), c.IncompleteTriples...)
	} else {
		clone.IncompleteTriples = nil
	}
	return clone
}

func cloneStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// sameScopeFields reports whether the "skip" fields (§4.5 step 12) are
// unchanged between two contexts, i.e. whether a skip element's child can
// reuse the parent context value instead of cloning.
func sameScopeFields(parent, child EvalContext) bool {
	if parent.Language != child.Language {
		return false
	}
	if parent.Base != child.Base {
		return false
	}
	if parent.DefaultVocabulary != child.DefaultVocabulary {
		return false
	}
	return sameStringMap(parent.URIMappings, child.URIMappings) &&
		sameStringMap(parent.TermMappings, child.TermMappings)
}

func sameStringMap(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
