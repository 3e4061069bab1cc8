package rdfa

import "context"

// Option configures a Reader, following the teacher's functional-option
// shape (rdf.Option / rdf.Options).
type Option func(*Options)

// Options configures Reader behavior (§6.1).
type Options struct {
	// Context for cancellation of the (currently only) blocking step: profile
	// fetches. The traversal itself never suspends (§5).
	Context context.Context

	BaseURI      string
	MIMEType     string // declared Content-Type, feeds C1 rule 3
	HostLanguage HostLanguage // HostUnknown lets DetectHostLanguage decide
	Version      Version
	versionSet   bool
	Encoding     string
	encodingSet  bool

	Validate      bool
	Canonicalize  bool
	Intern        bool
	Prefixes      map[string]string
	ProcessorGraph StatementSink
	Debug         bool

	ProfileLoader ProfileLoader
}

func defaultOptions() Options {
	return Options{
		Context:  context.Background(),
		Encoding: "utf-8",
	}
}

func normalizeOptions(opts Options) Options {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Encoding == "" {
		opts.Encoding = "utf-8"
	}
	if opts.Prefixes == nil {
		opts.Prefixes = map[string]string{}
	}
	return opts
}

// WithBaseURI sets the IRI used for relative resolution absent an in-document
// base (§6.1 base_uri).
func WithBaseURI(uri string) Option {
	return func(o *Options) { o.BaseURI = uri }
}

// WithMIMEType supplies the transport-level Content-Type, used by C1 when
// the host language isn't forced.
func WithMIMEType(mime string) Option {
	return func(o *Options) { o.MIMEType = mime }
}

// WithHostLanguage forces the host language, bypassing C1 detection.
func WithHostLanguage(h HostLanguage) Option {
	return func(o *Options) { o.HostLanguage = h }
}

// WithVersion forces the RDFa version, bypassing doctype/version-attribute
// detection.
func WithVersion(v Version) Option {
	return func(o *Options) { o.Version = v; o.versionSet = true }
}

// WithEncoding forces the input byte encoding, bypassing meta-charset
// sniffing.
func WithEncoding(enc string) Option {
	return func(o *Options) { o.Encoding = enc; o.encodingSet = true }
}

// WithValidate makes NewReader fail with a *ReaderError when a fatal-class
// diagnostic (DocumentError or ProfileReferenceError) was recorded.
// Unresolvable or malformed IRIs are non-fatal warnings and never abort, and
// a default profile the loader cannot find is skipped without a diagnostic.
func WithValidate(v bool) Option {
	return func(o *Options) { o.Validate = v }
}

// WithCanonicalize enables literal/IRI canonicalization (whitespace
// collapsing on plain and typed literals, IRI normalization).
func WithCanonicalize(v bool) Option {
	return func(o *Options) { o.Canonicalize = v }
}

// WithIntern enables IRI string interning to reduce allocations on
// documents with heavily repeated IRIs.
func WithIntern(v bool) Option {
	return func(o *Options) { o.Intern = v }
}

// WithPrefixes seeds the root context's prefix->IRI mappings, applied
// before any in-document xmlns/prefix declarations (which still shadow
// these per normal scoping).
func WithPrefixes(prefixes map[string]string) Option {
	return func(o *Options) { o.Prefixes = prefixes }
}

// WithProcessorGraph registers a sink for diagnostic-record triples (§4.7).
func WithProcessorGraph(sink StatementSink) Option {
	return func(o *Options) { o.ProcessorGraph = sink }
}

// WithDebug sets Options.Debug. The append-only diagnostic buffer returned
// by Reader.Diagnostics is filled whether or not this is set.
func WithDebug(v bool) Option {
	return func(o *Options) { o.Debug = v }
}

// WithProfileLoader overrides the default HTTP-backed profile loader, e.g.
// with an InMemoryProfileLoader for hermetic tests.
func WithProfileLoader(l ProfileLoader) Option {
	return func(o *Options) { o.ProfileLoader = l }
}

// WithContext sets the context used for profile-loader cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) { o.Context = ctx }
}
