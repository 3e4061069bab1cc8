package rdfa

import (
	"regexp"
	"strings"
)

var (
	doctypeRe    = regexp.MustCompile(`(?i)<!DOCTYPE\s+([^>]*)>`)
	versionAttrRe = regexp.MustCompile(`(?i)\bversion\s*=\s*["']?\s*(?:XHTML\+)?RDFa\s+(1\.0|1\.1)`)
	metaCharsetRe = regexp.MustCompile(`(?i)<meta[^>]+charset\s*=\s*["']?\s*([A-Za-z0-9_-]+)`)
	httpEquivRe   = regexp.MustCompile(`(?i)<meta[^>]+http-equiv\s*=\s*["']?content-type["'][^>]*content\s*=\s*["'][^"']*charset=([A-Za-z0-9_-]+)`)
)

// DetectInput bundles everything the Host-Language Detector (C1) may use:
// an explicit override, the declared MIME type, and a slice of the raw
// leading bytes of the document (head sniffing, §4.1 "first ~1000 bytes").
type DetectInput struct {
	HostLanguage HostLanguage // explicit override; HostUnknown if not forced
	Version      Version
	VersionForced bool
	MIMEType     string
	Head         []byte
	RootElement  string // lower-cased local name of the document element, when already parsed
}

// DetectHostLanguage implements §4.1's "first match wins" rule chain.
func DetectHostLanguage(in DetectInput) HostLanguage {
	if in.HostLanguage != HostUnknown {
		return in.HostLanguage
	}

	head := string(in.Head)
	doctype := doctypeRe.FindString(head)
	lowerDoctype := strings.ToLower(doctype)
	root := strings.ToLower(in.RootElement)

	switch {
	case in.MIMEType == "application/xml":
		return HostXML1
	case in.MIMEType == "image/svg+xml", root == "svg":
		return HostSVG
	case in.MIMEType == "text/html":
		switch {
		case strings.Contains(lowerDoctype, "html 4"):
			return HostHTML4
		case strings.Contains(lowerDoctype, "xhtml"):
			return HostXHTML1
		default:
			return HostHTML5
		}
	case in.MIMEType == "application/xhtml+xml":
		switch {
		case strings.Contains(lowerDoctype, "html 4"):
			return HostHTML4
		case strings.Contains(lowerDoctype, "xhtml"):
			return HostXHTML1
		default:
			return HostXHTML5
		}
	}

	// No MIME type known (e.g. a bare byte stream, §6.3): sniff the doctype
	// and opening tag the way a browser's content sniffer would, so the
	// common "just parse these bytes" call path doesn't default every HTML
	// document to the XML host by surprise.
	switch {
	case strings.Contains(lowerDoctype, "html 4"):
		return HostHTML4
	case strings.Contains(lowerDoctype, "xhtml"):
		return HostXHTML1
	case strings.Contains(lowerDoctype, "html"):
		return HostHTML5
	case strings.Contains(strings.ToLower(head), "<html"):
		return HostHTML5
	case strings.Contains(strings.ToLower(head), "<svg"):
		return HostSVG
	}
	return HostXML1
}

// DetectVersion implements §4.1 rule 2: doctype/root version attribute,
// defaulting to 1.1.
func DetectVersion(in DetectInput) Version {
	if in.VersionForced {
		return in.Version
	}
	head := string(in.Head)
	if m := versionAttrRe.FindStringSubmatch(head); m != nil {
		if m[1] == "1.0" {
			return Version10
		}
		return Version11
	}
	return Version11
}

// DetectEncoding implements the §4.1 "side effect" of inferring input byte
// encoding from a meta charset or http-equiv Content-Type declaration,
// falling back to UTF-8.
func DetectEncoding(head []byte) string {
	h := string(head)
	if m := metaCharsetRe.FindStringSubmatch(h); m != nil {
		return strings.ToLower(m[1])
	}
	if m := httpEquivRe.FindStringSubmatch(h); m != nil {
		return strings.ToLower(m[1])
	}
	return "utf-8"
}
