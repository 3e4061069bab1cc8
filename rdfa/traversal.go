package rdfa

import "strings"

// StatementSink receives every triple the Traversal Engine emits, in
// document order (§5 "Ordering").
type StatementSink func(Statement)

// traverser holds the state shared across one document's recursive descent:
// the blank-node label table (stable only within one parse, §5 "Shared
// resources"), the statement sink, and the fixed document base used by
// rdfa:hasVocabulary/rdfa:context emissions regardless of later xml:base
// overrides.
//
// Grounded on the teacher's rdf.Decoder, which likewise bundles parse-wide
// mutable state (blank node counters, base IRI) behind a single receiver
// rather than threading a dozen parameters through every call.
type traverser struct {
	version      Version
	host         HostLanguage
	documentBase string

	sink     StatementSink
	diagSink func(DiagnosticRecord)

	blankNodes map[string]BlankNode
	gen        *blankNodeGenerator

	canonicalize bool            // §6.1 Options.Canonicalize: normalize literal/IRI form before emitting
	intern       *stringInterner // §6.1 Options.Intern: dedupe repeated IRI/literal strings; nil disables

	path string // XPath-like pointer of the element currently being processed
}

func newTraverser(version Version, host HostLanguage, documentBase string, sink StatementSink, diagSink func(DiagnosticRecord), canonicalize, intern bool) *traverser {
	tr := &traverser{
		version:      version,
		host:         host,
		documentBase: documentBase,
		sink:         sink,
		diagSink:     diagSink,
		blankNodes:   map[string]BlankNode{},
		gen:          newBlankNodeGenerator(),
		canonicalize: canonicalize,
	}
	if intern {
		tr.intern = newStringInterner()
	}
	return tr
}

// blankNode returns the BlankNode for a named CURIE reference (§4.4.2: "a
// stable identity within the document"), or a fresh one when reference is
// empty.
func (tr *traverser) blankNode(reference string) Term {
	if reference == "" {
		return tr.gen.next()
	}
	if bn, ok := tr.blankNodes[reference]; ok {
		return bn
	}
	bn := tr.gen.next()
	tr.blankNodes[reference] = bn
	return bn
}

func (tr *traverser) emit(s Statement) {
	if tr.canonicalize {
		s = canonicalizeStatement(s)
	}
	if tr.intern != nil {
		s = tr.intern.statement(s)
	}
	if tr.sink != nil {
		tr.sink(s)
	}
}

func (tr *traverser) report(diags []DiagnosticRecord) {
	if tr.diagSink == nil {
		return
	}
	for _, d := range diags {
		if d.ElementPath == "" {
			d.ElementPath = tr.path
		}
		if d.DocumentBase == "" {
			d.DocumentBase = tr.documentBase
		}
		tr.diagSink(d)
	}
}

// resolveMaybe resolves a single trimmed token, reporting any diagnostics,
// and returns nil when resolution produced nothing.
func (tr *traverser) resolveMaybe(raw string, restriction Restriction, ctx *EvalContext) Term {
	term, diags := tr.resolveReference(strings.TrimSpace(raw), restriction, ctx)
	tr.report(diags)
	return term
}

// resolveIRIList resolves a whitespace-separated attribute value token by
// token, keeping only results that resolved to an IRI (§4.5 steps 7/8/9:
// rel/rev/typeof tokens that resolve to a blank node or nothing are
// dropped).
func (tr *traverser) resolveIRIList(raw string, restriction Restriction, ctx *EvalContext) []IRI {
	var out []IRI
	for _, tok := range strings.Fields(raw) {
		term, diags := tr.resolveReference(tok, restriction, ctx)
		tr.report(diags)
		if iri, ok := term.(IRI); ok {
			out = append(out, iri)
		}
	}
	return out
}

// Process runs the Traversal Engine over root's document element, following
// the Preamble + Per-element procedure of §4.5. base is the document base
// established by the Preamble (explicit option, <base href>, or xml:base on
// the root); seed is the root evaluation context, already carrying the
// term/URI mappings merged from the profile loader (§4.2).
func (tr *traverser) Process(root *Node, base string, seed EvalContext) {
	el := root.DocumentElement()
	if el == nil {
		return
	}
	seed.Base = base
	tr.processElement(el, seed, true)
}

// processElement implements the per-element procedure of §4.5. ctx is the
// in-scope (parent) evaluation context; it is never mutated, only cloned.
func (tr *traverser) processElement(el *Node, ctx EvalContext, isRoot bool) {
	tr.path = el.Path()
	newCtx := ctx.Clone()
	newCtx.IncompleteTriples = nil
	skip := false
	recurse := true

	// Base update.
	localBase := ctx.Base
	if !tr.host.IsHTML() {
		if v, ok := el.AttrNS("xml", "base"); ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				localBase = resolveIRI(ctx.Base, trimmed)
			}
		}
	}
	newCtx.Base = localBase

	aboutRaw, hasAbout := el.Attr("about")
	srcRaw, hasSrc := el.Attr("src")
	resourceRaw, hasResource := el.Attr("resource")
	hrefRaw, hasHref := el.Attr("href")
	vocabRaw, hasVocab := el.Attr("vocab")
	propertyRaw, hasProperty := el.Attr("property")
	typeofRaw, hasTypeof := el.Attr("typeof")
	datatypeRaw, hasDatatype := el.Attr("datatype")
	relRaw, hasRel := el.Attr("rel")
	revRaw, hasRev := el.Attr("rev")

	// Step 2 - @vocab.
	if hasVocab {
		trimmed := strings.TrimSpace(vocabRaw)
		if trimmed == "" {
			newCtx.DefaultVocabulary = ""
		} else {
			resolved := resolveIRI(localBase, trimmed)
			newCtx.DefaultVocabulary = resolved
			tr.emit(Statement{
				Subject:   IRI{Value: tr.documentBase},
				Predicate: IRI{Value: hasVocabulary},
				Object:    IRI{Value: resolved},
			})
		}
	}

	// Step 3 - mappings.
	tr.report(applyMappings(el, tr.host, tr.version, newCtx.URIMappings, newCtx.Namespaces))

	// Step 4 - language.
	xmlLang, hasXMLLang := el.AttrNS("xml", "lang")
	lang, hasLang := el.Attr("lang")
	switch {
	case hasXMLLang:
		newCtx.Language = normalizeLangOrEmpty(xmlLang)
	case hasLang:
		newCtx.Language = normalizeLangOrEmpty(lang)
	}

	subjRestriction := SafeCURIEorCURIEorURI(tr.version)
	uriOnly := RestrictURI

	var newSubject Term
	var currentObjectResource Term

	if !hasRel && !hasRev {
		// Step 5.
		switch {
		case hasAbout:
			newSubject = tr.resolveMaybe(aboutRaw, subjRestriction, &newCtx)
		case hasSrc:
			newSubject = tr.resolveMaybe(srcRaw, uriOnly, &newCtx)
		case hasResource:
			newSubject = tr.resolveMaybe(resourceRaw, subjRestriction, &newCtx)
		case hasHref:
			newSubject = tr.resolveMaybe(hrefRaw, uriOnly, &newCtx)
		}
		if newSubject == nil {
			switch {
			case tr.host.IsHTML() && (el.Local == "head" || el.Local == "body"):
				newSubject = IRI{Value: localBase}
			case isRoot && localBase != "":
				newSubject = IRI{Value: localBase}
			case hasTypeof:
				newSubject = tr.blankNode("")
			default:
				newSubject = ctx.ParentObject
				if !hasProperty {
					skip = true
				}
			}
		}
	} else {
		// Step 6.
		switch {
		case hasAbout:
			newSubject = tr.resolveMaybe(aboutRaw, subjRestriction, &newCtx)
		case hasSrc:
			newSubject = tr.resolveMaybe(srcRaw, uriOnly, &newCtx)
		}
		if newSubject == nil {
			switch {
			case isRoot && localBase != "":
				newSubject = IRI{Value: localBase}
			case tr.host.IsHTML() && (el.Local == "head" || el.Local == "body") && localBase != "":
				newSubject = IRI{Value: localBase}
			case hasTypeof:
				newSubject = tr.blankNode("")
			default:
				newSubject = ctx.ParentObject
			}
		}
		switch {
		case hasResource:
			currentObjectResource = tr.resolveMaybe(resourceRaw, subjRestriction, &newCtx)
		case hasHref:
			currentObjectResource = tr.resolveMaybe(hrefRaw, uriOnly, &newCtx)
		}
	}

	// Step 7 - @typeof.
	if hasTypeof && newSubject != nil {
		for _, t := range tr.resolveIRIList(typeofRaw, TERMorCURIEorAbsURI(tr.version), &newCtx) {
			tr.emit(Statement{Subject: newSubject, Predicate: IRI{Value: rdfType}, Object: t})
		}
	}

	relTokens := tr.resolveIRIList(relRaw, TERMorCURIEorAbsURI(tr.version), &newCtx)
	revTokens := tr.resolveIRIList(revRaw, TERMorCURIEorAbsURI(tr.version), &newCtx)

	if newSubject != nil && currentObjectResource != nil {
		// Step 8 - complete rel/rev locally.
		for _, r := range relTokens {
			tr.emit(Statement{Subject: newSubject, Predicate: r, Object: currentObjectResource})
		}
		for _, r := range revTokens {
			tr.emit(Statement{Subject: currentObjectResource, Predicate: r, Object: newSubject})
		}
	} else if (hasRel || hasRev) && currentObjectResource == nil {
		// Step 9 - defer to a child.
		currentObjectResource = tr.blankNode("")
		for _, r := range relTokens {
			newCtx.IncompleteTriples = append(newCtx.IncompleteTriples, IncompleteTriple{Predicate: r, Direction: Forward})
		}
		for _, r := range revTokens {
			newCtx.IncompleteTriples = append(newCtx.IncompleteTriples, IncompleteTriple{Predicate: r, Direction: Reverse})
		}
	}

	// Step 11 - complete incoming incomplete triples. Runs before Step 10's
	// literal emission so a parent's pending rel/rev triple is always emitted
	// ahead of this element's own @property triples (§5 ordering).
	if !skip && newSubject != nil {
		for _, it := range ctx.IncompleteTriples {
			switch it.Direction {
			case Forward:
				tr.emit(Statement{Subject: ctx.ParentSubject, Predicate: it.Predicate, Object: newSubject})
			case Reverse:
				tr.emit(Statement{Subject: newSubject, Predicate: it.Predicate, Object: ctx.ParentSubject})
			}
		}
	}

	// Step 10 - @property.
	if hasProperty {
		predicates := tr.resolveIRIList(propertyRaw, TERMorCURIEorAbsURIProp(tr.version), &newCtx)
		var datatype *IRI
		if hasDatatype {
			trimmed := strings.TrimSpace(datatypeRaw)
			if trimmed == "" {
				// An explicit empty @datatype forces a plain literal even when
				// the content would otherwise be serialized as an XML literal
				// (§4.6).
				datatype = &IRI{Value: ""}
			} else if term, diags := tr.resolveReference(trimmed, TERMorCURIEorAbsURI(tr.version), &newCtx); term != nil {
				tr.report(diags)
				if iri, ok := term.(IRI); ok {
					datatype = &iri
				}
			} else {
				tr.report(diags)
			}
		}
		content, hasContent := el.Attr("content")
		literal := tr.buildPropertyLiteral(el, datatype, newCtx.Language, hasContent, content)
		if literal.Datatype.Value == XMLLiteralDatatype && tr.version == Version10 && datatype == nil {
			recurse = false
		}
		if newSubject != nil {
			for _, p := range predicates {
				tr.emit(Statement{Subject: newSubject, Predicate: p, Object: literal})
			}
		}
	}

	if !recurse {
		return
	}

	// Step 12 - recurse.
	var childCtx EvalContext
	if skip {
		if sameScopeFields(ctx, newCtx) {
			childCtx = ctx
		} else {
			childCtx = ctx.Clone()
			childCtx.Language = newCtx.Language
			childCtx.Base = newCtx.Base
			childCtx.DefaultVocabulary = newCtx.DefaultVocabulary
			childCtx.URIMappings = newCtx.URIMappings
			childCtx.Namespaces = newCtx.Namespaces
			childCtx.TermMappings = newCtx.TermMappings
		}
	} else {
		childCtx = newCtx
		if newSubject != nil {
			childCtx.ParentSubject = newSubject
		} else {
			childCtx.ParentSubject = ctx.ParentSubject
		}
		switch {
		case currentObjectResource != nil:
			childCtx.ParentObject = currentObjectResource
		case newSubject != nil:
			childCtx.ParentObject = newSubject
		default:
			childCtx.ParentObject = ctx.ParentSubject
		}
	}

	for _, child := range el.Children {
		if child.Kind == KindElement {
			tr.processElement(child, childCtx, false)
		}
	}
}

// buildPropertyLiteral implements §4.6, threading through the @content
// shortcut the algorithm text folds into "lexical form = @content if
// present else concatenated text".
func (tr *traverser) buildPropertyLiteral(el *Node, datatype *IRI, lang string, hasContent bool, content string) Literal {
	// An explicit empty @datatype forces a plain literal regardless of
	// version or content shape (§4.6); it must never fall into either the
	// typed-literal branch below or an XML-literal branch.
	explicitPlain := datatype != nil && datatype.Value == ""

	if datatype != nil && !explicitPlain && datatype.Value != XMLLiteralDatatype {
		lexical := el.TextContent()
		if hasContent {
			lexical = content
		}
		return Literal{Lexical: lexical, Datatype: *datatype}
	}

	if tr.version == Version11 {
		if datatype != nil && !explicitPlain && datatype.Value == XMLLiteralDatatype {
			return Literal{Lexical: serializeXMLLiteral(el), Datatype: *datatype}
		}
		lexical := el.TextContent()
		if hasContent {
			lexical = content
		}
		return Literal{Lexical: lexical, Lang: lang}
	}

	// Version 1.0.
	if hasContent || el.HasOnlyTextChildren() || len(el.Children) == 0 || explicitPlain {
		lexical := el.TextContent()
		if hasContent {
			lexical = content
		}
		return Literal{Lexical: lexical, Lang: lang}
	}
	return Literal{Lexical: serializeXMLLiteral(el), Datatype: IRI{Value: XMLLiteralDatatype}}
}

func normalizeLangOrEmpty(v string) string {
	if v == "" {
		return ""
	}
	return normalizeLang(v)
}
