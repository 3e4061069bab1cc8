package rdfa

import "golang.org/x/text/language"

// normalizeLang canonicalizes a BCP-47 language tag the way §3's in-scope
// "language" field expects it stored (case-insensitive on the wire, but
// compared/rendered consistently). Malformed tags are returned unchanged:
// RDFa does not reject bad language tags, it just carries them (Non-goal:
// "validating host-language syntax").
//
// Grounded on the pack reference other_examples/seehuhn-go-xmp, which
// validates xml:lang via golang.org/x/text/language.Parse.
func normalizeLang(tag string) string {
	if tag == "" {
		return ""
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	return parsed.String()
}
