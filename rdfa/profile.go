package rdfa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/piprate/json-gold/ld"
	"github.com/pquerna/cachecontrol"
)

// Profile is the result of the Profile Loader (C2, §4.2): prefix and term
// mappings plus an optional default vocabulary, merged into the root
// evaluation context before traversal begins.
type Profile struct {
	Prefixes   map[string]string
	Terms      map[string]string
	Vocabulary string
}

// ProfileLoader resolves an @profile/default-profile IRI to its mappings.
// Find must never recurse into the document currently being parsed
// (§4.2 "self-recursion guard").
type ProfileLoader interface {
	Find(ctx context.Context, iri string) (Profile, error)
}

// InMemoryProfileLoader serves profiles from a fixed table, used to seed the
// two always-on default profiles (§4.5 Preamble: "xml profile for all
// hosts; xhtml profile additionally for HTML hosts") without a network
// round trip, and in tests.
type InMemoryProfileLoader map[string]Profile

func (l InMemoryProfileLoader) Find(_ context.Context, iri string) (Profile, error) {
	if p, ok := l[iri]; ok {
		return p, nil
	}
	return Profile{}, fmt.Errorf("%w: no profile registered for %s", ErrProfileNotFound, iri)
}

// ErrProfileNotFound is wrapped into a ProfileReferenceError by callers that
// want a fatal/non-fatal distinction per §7.
var ErrProfileNotFound = fmt.Errorf("rdfa: profile not found")

// HTTPProfileLoader fetches profile documents over HTTP, dispatching on
// Content-Type: application/ld+json profiles go through the json-gold
// processor's ToRDF (DOMAIN STACK), anything else is parsed as RDFa/XML
// (self-hosting: a profile document is itself a small RDFa document using
// rdfa:prefix/rdfa:term/rdfa:uri/rdfa:vocabulary statements).
//
// Grounded on the teacher's jsonld_api.go ToRDF pipeline (NewJsonLdProcessor
// -> ToRDF -> NQuadRDFSerializer), reused here for the "format" profile
// case instead of the teacher's own JSON-LD document decoding.
type HTTPProfileLoader struct {
	Client       *http.Client
	DocumentBase string // the document currently being parsed; never re-fetched

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	profile Profile
	expires time.Time
}

func (l *HTTPProfileLoader) client() *http.Client {
	if l.Client != nil {
		return l.Client
	}
	return http.DefaultClient
}

func (l *HTTPProfileLoader) Find(ctx context.Context, iri string) (Profile, error) {
	if normalizeIRIForCompare(iri) == normalizeIRIForCompare(l.DocumentBase) {
		return Profile{}, fmt.Errorf("%w: profile %s recurses into the document being parsed", ErrProfileNotFound, iri)
	}

	l.mu.Lock()
	if l.cache == nil {
		l.cache = map[string]cacheEntry{}
	}
	if entry, ok := l.cache[iri]; ok && time.Now().Before(entry.expires) {
		l.mu.Unlock()
		return entry.profile, nil
	}
	l.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, iri, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("rdfa: building profile request for %s: %w", iri, err)
	}
	resp, err := l.client().Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("rdfa: fetching profile %s: %w", iri, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("rdfa: profile %s returned status %d", iri, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Profile{}, fmt.Errorf("rdfa: reading profile %s: %w", iri, err)
	}

	contentType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))

	var profile Profile
	if contentType == "application/ld+json" {
		profile, err = parseJSONLDProfile(ctx, body, iri)
	} else {
		profile, err = parseRDFaProfile(body, iri)
	}
	if err != nil {
		return Profile{}, err
	}

	l.mu.Lock()
	l.cache[iri] = cacheEntry{profile: profile, expires: cacheExpiry(req, resp)}
	l.mu.Unlock()
	return profile, nil
}

// cacheExpiry uses cachecontrol to honor the profile response's caching
// headers (DOMAIN STACK); an unparseable or explicitly non-cacheable
// response falls back to a short fixed TTL so a broken profile server can't
// wedge every subsequent parse behind a network call, but also never gets
// treated as permanently fresh.
func cacheExpiry(req *http.Request, resp *http.Response) time.Time {
	reasons, expires, err := cachecontrol.CachableResponse(req, resp, cachecontrol.Options{})
	if err != nil || len(reasons) > 0 {
		return time.Now().Add(5 * time.Minute)
	}
	if expires.IsZero() {
		return time.Now().Add(5 * time.Minute)
	}
	return expires
}

func normalizeIRIForCompare(iri string) string {
	return strings.TrimRight(strings.TrimSpace(iri), "/")
}

// parseJSONLDProfile converts a JSON-LD profile document to RDF via
// json-gold, then groups the resulting statements the same way an RDFa
// profile document would be.
func parseJSONLDProfile(ctx context.Context, body []byte, iri string) (Profile, error) {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return Profile{}, fmt.Errorf("rdfa: decoding JSON-LD profile %s: %w", iri, err)
	}
	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions(iri)
	result, err := proc.ToRDF(doc, opts)
	if err != nil {
		return Profile{}, fmt.Errorf("rdfa: expanding JSON-LD profile %s: %w", iri, err)
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return Profile{}, fmt.Errorf("rdfa: unexpected JSON-LD ToRDF result %T for profile %s", result, iri)
	}
	serializer := &ld.NQuadRDFSerializer{}
	serialized, err := serializer.Serialize(dataset)
	if err != nil {
		return Profile{}, fmt.Errorf("rdfa: serializing JSON-LD profile %s: %w", iri, err)
	}
	nquads, _ := serialized.(string)
	statements := parseNQuadStatements(nquads)
	return groupProfileStatements(statements), nil
}

// parseRDFaProfile parses body as a small standalone RDFa/XML document and
// groups its statements into a Profile.
func parseRDFaProfile(body []byte, iri string) (Profile, error) {
	root, err := ParseXML(bytes.NewReader(body))
	if err != nil {
		return Profile{}, fmt.Errorf("rdfa: parsing RDFa profile %s: %w", iri, err)
	}
	var statements []Statement
	tr := newTraverser(Version11, HostXML1, iri, func(s Statement) { statements = append(statements, s) }, nil, false, false)
	tr.Process(root, iri, NewRootContext(iri, HostXML1))
	return groupProfileStatements(statements), nil
}

// parseNQuadStatements does a minimal, profile-document-scale N-Quads parse
// (one statement per line; any trailing graph-name term is ignored since
// profiles only ever carry a default graph). Full N-Triples/N-Quads parsing
// is out of scope (see SPEC_FULL.md Non-goals) - this exists only to bridge
// json-gold's serializer output back into this package's own Term types.
func parseNQuadStatements(nquads string) []Statement {
	var out []Statement
	for _, line := range strings.Split(nquads, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSuffix(strings.TrimSpace(line), ".")
		tokens := splitNQuadTokens(strings.TrimSpace(line))
		if len(tokens) < 3 {
			continue
		}
		subj := parseNQuadTerm(tokens[0])
		predIRI, ok := parseNQuadTerm(tokens[1]).(IRI)
		if !ok {
			continue
		}
		obj := parseNQuadTerm(tokens[2])
		if subj == nil || obj == nil {
			continue
		}
		out = append(out, Statement{Subject: subj, Predicate: predIRI, Object: obj})
	}
	return out
}

// splitNQuadTokens splits an N-Quads statement body into its subject,
// predicate, object (and optional graph) terms, respecting quoted literals
// so embedded spaces inside a literal's lexical form are not mistaken for
// token separators.
func splitNQuadTokens(line string) []string {
	var tokens []string
	var cur strings.Builder
	inLiteral := false
	depth := 0
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"' && (i == 0 || runes[i-1] != '\\'):
			inLiteral = !inLiteral
			cur.WriteRune(r)
		case inLiteral:
			cur.WriteRune(r)
		case r == '<':
			depth++
			cur.WriteRune(r)
		case r == '>':
			depth--
			cur.WriteRune(r)
		case r == ' ' && depth == 0:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

var literalRe = regexp.MustCompile(`^"((?:[^"\\]|\\.)*)"(?:\^\^<([^>]*)>|@([A-Za-z-]+))?$`)

func parseNQuadTerm(tok string) Term {
	switch {
	case strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">"):
		return IRI{Value: tok[1 : len(tok)-1]}
	case strings.HasPrefix(tok, "_:"):
		return BlankNode{ID: strings.TrimPrefix(tok, "_:")}
	case strings.HasPrefix(tok, `"`):
		lm := literalRe.FindStringSubmatch(tok)
		if lm == nil {
			return nil
		}
		lit := Literal{Lexical: strings.ReplaceAll(strings.ReplaceAll(lm[1], `\"`, `"`), `\\`, `\`)}
		if lm[2] != "" {
			lit.Datatype = IRI{Value: lm[2]}
		}
		if lm[3] != "" {
			lit.Lang = lm[3]
		}
		return lit
	default:
		return nil
	}
}

// groupProfileStatements implements the conventional profile-document shape:
// each mapping is a subject carrying rdfa:prefix+rdfa:uri or
// rdfa:term+rdfa:uri, plus an optional standalone rdfa:vocabulary triple.
func groupProfileStatements(statements []Statement) Profile {
	profile := Profile{Prefixes: map[string]string{}, Terms: map[string]string{}}
	type bySubject struct {
		prefix, term, uri string
	}
	grouped := map[string]*bySubject{}
	key := func(t Term) string {
		if t == nil {
			return ""
		}
		return t.String()
	}
	for _, s := range statements {
		lit, isLit := s.Object.(Literal)
		switch s.Predicate.Value {
		case rdfaNS + "prefix":
			if isLit {
				k := key(s.Subject)
				g := grouped[k]
				if g == nil {
					g = &bySubject{}
					grouped[k] = g
				}
				g.prefix = lit.Lexical
			}
		case rdfaNS + "term":
			if isLit {
				k := key(s.Subject)
				g := grouped[k]
				if g == nil {
					g = &bySubject{}
					grouped[k] = g
				}
				g.term = lit.Lexical
			}
		case rdfaNS + "uri":
			k := key(s.Subject)
			g := grouped[k]
			if g == nil {
				g = &bySubject{}
				grouped[k] = g
			}
			if iri, ok := s.Object.(IRI); ok {
				g.uri = iri.Value
			} else if isLit {
				g.uri = lit.Lexical
			}
		case rdfaNS + "vocabulary":
			if iri, ok := s.Object.(IRI); ok {
				profile.Vocabulary = iri.Value
			}
		}
	}
	for _, g := range grouped {
		switch {
		case g.prefix != "" && g.uri != "":
			profile.Prefixes[g.prefix] = g.uri
		case g.term != "" && g.uri != "":
			profile.Terms[g.term] = g.uri
		}
	}
	return profile
}

// mergeProfile folds a loaded Profile's mappings into a root evaluation
// context, without overwriting entries the document itself will still be
// free to shadow (§4.5 Preamble: profiles merge, they don't replace).
func mergeProfile(ctx *EvalContext, p Profile) {
	for k, v := range p.Prefixes {
		if _, exists := ctx.URIMappings[k]; !exists {
			ctx.URIMappings[k] = v
		}
	}
	for k, v := range p.Terms {
		if _, exists := ctx.TermMappings[k]; !exists {
			ctx.TermMappings[k] = v
		}
	}
	if p.Vocabulary != "" && ctx.DefaultVocabulary == "" {
		ctx.DefaultVocabulary = p.Vocabulary
	}
}
