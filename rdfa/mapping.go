package rdfa

import "strings"

// applyMappings extracts xmlns declarations and the `prefix` attribute from
// el, writing resolved prefix->IRI pairs into uriMappings and the xmlns
// subset into namespaces (§4.3). Both maps are mutated in place; callers
// must have already cloned them off the parent context.
func applyMappings(el *Node, host HostLanguage, version Version, uriMappings, namespaces map[string]string) []DiagnosticRecord {
	var diags []DiagnosticRecord

	for prefix, iri := range scanXMLNS(el, host) {
		applyPrefix(prefix, iri, version, uriMappings)
		namespaces[prefix] = iri
	}

	if version == Version11 {
		if raw, ok := el.Attr("prefix"); ok {
			diags = append(diags, applyPrefixAttribute(raw, uriMappings)...)
		}
	}

	return diags
}

// scanXMLNS returns the xmlns declarations on el as prefix->IRI pairs
// (empty string key = unprefixed/default xmlns). HTML hosts have no DOM
// namespace nodes to read (§4.3 "the DOM may not expose namespace nodes"),
// so dom.go's ParseHTML normalizes xmlns/xmlns:* attribute names into the
// same (Space, Local) shape ParseXML produces, letting this scan stay
// host-agnostic.
func scanXMLNS(el *Node, host HostLanguage) map[string]string {
	out := map[string]string{}
	for _, a := range el.Attrs {
		if a.Space == "xmlns" {
			out[a.Local] = a.Value
		} else if a.Space == "" && a.Local == "xmlns" {
			out[""] = a.Value
		}
	}
	return out
}

// applyPrefix installs a single prefix->IRI mapping, applying the `_`
// immunity invariant and the 1.1 lower-casing rule (§3, §4.3).
func applyPrefix(prefix, iri string, version Version, uriMappings map[string]string) {
	if prefix == "_" {
		return
	}
	if version == Version11 {
		prefix = strings.ToLower(prefix)
	}
	uriMappings[prefix] = iri
}

// applyPrefixAttribute parses the RDFa 1.1 `prefix` attribute: whitespace-
// separated tokens forming `NCName:` `<IRI>` pairs (§4.3 rule 2).
func applyPrefixAttribute(raw string, uriMappings map[string]string) []DiagnosticRecord {
	var diags []DiagnosticRecord
	tokens := strings.Fields(raw)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !strings.HasSuffix(tok, ":") {
			// A token lacking the trailing colon terminates the current
			// pair and is ignored (§4.3 rule 2).
			continue
		}
		prefix := strings.TrimSuffix(tok, ":")
		if i+1 >= len(tokens) {
			break
		}
		iri := tokens[i+1]
		i++
		if prefix == "_" {
			continue
		}
		if !isNCName(prefix) {
			diags = append(diags, DiagnosticRecord{
				Class:   ClassPrefixError,
				Message: "prefix \"" + prefix + "\" is not a valid NCName",
			})
			continue
		}
		applyPrefix(prefix, iri, Version11, uriMappings)
	}
	return diags
}
