package rdfa

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Default profile IRIs the preamble of §4.5 always loads for version != 1.0:
// "xml profile for all hosts; xhtml profile additionally for HTML hosts."
const (
	DefaultXMLProfileIRI   = "http://www.w3.org/2011/rdfa-context/rdfa-1.1"
	DefaultXHTMLProfileIRI = "http://www.w3.org/2011/rdfa-context/xhtml-1.1"
)

// defaultInitialContext seeds the well-known RDFa 1.1 initial-context
// prefixes locally so a fresh Reader never needs network access for the
// common case; WithProfileLoader/HTTPProfileLoader still let a caller
// resolve the full W3C-published context or a private one over HTTP.
func defaultInitialContext() InMemoryProfileLoader {
	return InMemoryProfileLoader{
		DefaultXMLProfileIRI: {
			Prefixes: map[string]string{
				"dc":    dcNS,
				"rdf":   rdfNS,
				"rdfa":  rdfaNS,
				"owl":   "http://www.w3.org/2002/07/owl#",
				"rdfs":  "http://www.w3.org/2000/01/rdf-schema#",
				"xsd":   "http://www.w3.org/2001/XMLSchema#",
				"skos":  "http://www.w3.org/2004/02/skos/core#",
				"foaf":  "http://xmlns.com/foaf/0.1/",
				"schema": "http://schema.org/",
			},
		},
		DefaultXHTMLProfileIRI: {
			Prefixes: map[string]string{
				"xhv": xhvNS,
			},
		},
	}
}

// Reader is the Reader Facade (C8, §6.1): it wires host detection, root
// context construction, default-profile merging, the Traversal Engine and
// the Emitter together behind a small pull/push API, mirroring the
// teacher's Reader/Handler split in api.go.
type Reader struct {
	opts        Options
	statements  []Statement
	diagnostics []DiagnosticRecord
}

// NewReader parses src (HTML or XML bytes, auto-detected via C1 unless
// overridden) and runs the full traversal eagerly, buffering statements for
// EachStatement/EachTriple/ReadAll. The Traversal Engine itself never
// suspends (§5); eager evaluation keeps the public API's synchronous
// contract simple without giving up anything a coroutine-based reader would
// offer here.
func NewReader(src io.Reader, options ...Option) (*Reader, error) {
	opts := defaultOptions()
	for _, opt := range options {
		opt(&opts)
	}
	opts = normalizeOptions(opts)

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("rdfa: reading input: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}

	encoding := opts.Encoding
	if !opts.encodingSet {
		encoding = DetectEncoding(head)
	}
	var encodingDiag *DiagnosticRecord
	if !isUTF8OrASCII(encoding) {
		encodingDiag = &DiagnosticRecord{
			Class:   ClassDocumentError,
			Message: "input encoding " + encoding + " is not UTF-8/US-ASCII; no transcoder is wired, reading as UTF-8 best-effort",
		}
	}
	opts.Encoding = encoding

	host := opts.HostLanguage
	version := opts.Version
	detect := DetectInput{
		HostLanguage:  opts.HostLanguage,
		Version:       opts.Version,
		VersionForced: opts.versionSet,
		MIMEType:      opts.MIMEType,
		Head:          head,
	}
	if host == HostUnknown {
		host = DetectHostLanguage(detect)
	}
	if !opts.versionSet {
		version = DetectVersion(detect)
	}

	var root *Node
	if host.IsHTML() {
		root, err = ParseHTML(bytes.NewReader(data))
	} else {
		root, err = ParseXML(bytes.NewReader(data))
	}
	if err != nil {
		return nil, &ReaderError{Diagnostics: []DiagnosticRecord{{Class: ClassDocumentError, Message: err.Error()}}}
	}
	el := root.DocumentElement()
	if el == nil {
		return nil, ErrEmptyDocument
	}

	base := resolveDocumentBase(root, el, host, opts.BaseURI)

	r := &Reader{opts: opts}

	seed := NewRootContext(base, host)
	for k, v := range opts.Prefixes {
		seed.URIMappings[k] = v
	}

	loader := opts.ProfileLoader
	if loader == nil {
		loader = defaultInitialContext()
	}
	if version != Version10 {
		mergeDefaultProfiles(&seed, loader, host, opts)
	}

	processorGraphGen := newProcessorGraphBlankNodeGenerator()
	diagSink := func(d DiagnosticRecord) {
		r.diagnostics = append(r.diagnostics, d)
		if opts.ProcessorGraph != nil {
			emitProcessorGraph(d, base, processorGraphGen, opts.ProcessorGraph)
		}
	}
	if encodingDiag != nil {
		diagSink(*encodingDiag)
	}

	tr := newTraverser(version, host, base, func(s Statement) {
		r.statements = append(r.statements, s)
	}, diagSink, opts.Canonicalize, opts.Intern)
	tr.Process(root, base, seed)

	if opts.Validate {
		var fatal []DiagnosticRecord
		for _, d := range r.diagnostics {
			if d.Class.Fatal() {
				fatal = append(fatal, d)
			}
		}
		if len(fatal) > 0 {
			return nil, &ReaderError{Diagnostics: fatal}
		}
	}

	return r, nil
}

// isUTF8OrASCII reports whether enc names one of the two encodings this
// package reads without transcoding (SPEC_FULL.md C1 supplement). Anything
// else is still read as UTF-8 best-effort, but surfaced as a DocumentError
// diagnostic since a real golang.org/x/text decoder isn't wired in.
func isUTF8OrASCII(enc string) bool {
	switch strings.ToLower(enc) {
	case "utf-8", "utf8", "us-ascii", "ascii":
		return true
	default:
		return false
	}
}

func mergeDefaultProfiles(seed *EvalContext, loader ProfileLoader, host HostLanguage, opts Options) {
	iris := []string{DefaultXMLProfileIRI}
	if host.IsHTML() {
		iris = append(iris, DefaultXHTMLProfileIRI)
	}
	for _, iri := range iris {
		profile, err := loader.Find(opts.Context, iri)
		if err != nil {
			continue
		}
		mergeProfile(seed, profile)
	}
}

// resolveDocumentBase implements the §4.5 Preamble base-location rule:
// html>head>base[href] for HTML hosts (fragment stripped), else xml:base on
// the root element, else the caller-supplied base_uri option.
func resolveDocumentBase(root, el *Node, host HostLanguage, optBase string) string {
	if host.IsHTML() {
		if href := findHTMLBaseHref(el); href != "" {
			return stripFragment(href)
		}
	} else if v, ok := el.AttrNS("xml", "base"); ok && v != "" {
		return v
	}
	return optBase
}

func findHTMLBaseHref(el *Node) string {
	var head *Node
	var walk func(*Node)
	walk = func(n *Node) {
		if head != nil {
			return
		}
		if n.Kind == KindElement && n.Local == "head" {
			head = n
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(el)
	if head == nil {
		return ""
	}
	for _, c := range head.Children {
		if c.Kind == KindElement && c.Local == "base" {
			if href, ok := c.Attr("href"); ok {
				return href
			}
		}
	}
	return ""
}

func stripFragment(uri string) string {
	for i, r := range uri {
		if r == '#' {
			return uri[:i]
		}
	}
	return uri
}

// EachStatement calls fn for every emitted Statement in document order,
// stopping early if fn returns false.
func (r *Reader) EachStatement(fn func(Statement) bool) {
	for _, s := range r.statements {
		if !fn(s) {
			return
		}
	}
}

// EachTriple calls fn with the decomposed (subject, predicate, object) of
// every emitted statement.
func (r *Reader) EachTriple(fn func(Term, IRI, Term) bool) {
	for _, s := range r.statements {
		if !fn(s.Subject, s.Predicate, s.Object) {
			return
		}
	}
}

// ReadAll returns every emitted Statement.
func (r *Reader) ReadAll() []Statement {
	out := make([]Statement, len(r.statements))
	copy(out, r.statements)
	return out
}

// Diagnostics returns the accumulated debug buffer (populated regardless of
// WithDebug; the option only controls whether a caller bothers reading it).
func (r *Reader) Diagnostics() []DiagnosticRecord {
	return r.diagnostics
}
