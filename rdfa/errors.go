package rdfa

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument indicates the input had no content to parse (§7 DocumentError).
var ErrEmptyDocument = errors.New("rdfa: empty document")

// MessageClass identifies the kind of diagnostic a DiagnosticRecord carries.
// These are abstract kinds (§7), not Go error types: only DocumentError and
// ProfileReferenceError diagnostics abort a parse, and only in validating
// mode. Empty or unparsable input is returned as an error by NewReader in
// every mode.
type MessageClass int

const (
	ClassInfo MessageClass = iota
	ClassWarning
	ClassError
	ClassDocumentError
	ClassProfileReferenceError
	ClassUnresolvedCURIE
	ClassUnresolvedTerm
	ClassLiteralError
	ClassPrefixError
)

// String returns the message class's name, as used by DiagnosticRecord.String.
// The processor-graph rdf:type object comes from ClassIRI instead, which maps
// LiteralError and PrefixError to the generic rdfa:Error class.
func (c MessageClass) String() string {
	switch c {
	case ClassInfo:
		return "Info"
	case ClassWarning:
		return "Warning"
	case ClassError:
		return "Error"
	case ClassDocumentError:
		return "DocumentError"
	case ClassProfileReferenceError:
		return "ProfileReferenceError"
	case ClassUnresolvedCURIE:
		return "UnresolvedCURIE"
	case ClassUnresolvedTerm:
		return "UnresolvedTerm"
	case ClassLiteralError:
		return "LiteralError"
	case ClassPrefixError:
		return "PrefixError"
	default:
		return "Info"
	}
}

// Fatal reports whether this class aborts the parse when Options.Validate is set.
func (c MessageClass) Fatal() bool {
	return c == ClassDocumentError || c == ClassProfileReferenceError
}

// DiagnosticRecord is a single processing message (§4.7, §7). Non-fatal
// records are appended to the reader's debug buffer and/or forwarded to the
// processor graph sink; fatal records (in validating mode) are collected
// into a ReaderError and abort the parse.
type DiagnosticRecord struct {
	Class        MessageClass
	Message      string
	ElementPath  string // an XPath-like pointer to the offending element
	DocumentBase string
}

func (d DiagnosticRecord) String() string {
	if d.ElementPath == "" {
		return fmt.Sprintf("%s: %s", d.Class, d.Message)
	}
	return fmt.Sprintf("%s: %s (at %s)", d.Class, d.Message, d.ElementPath)
}

// ReaderError wraps one or more fatal diagnostics that aborted a validating
// parse (§7 "fatal errors in validate mode surface as a single ReaderError").
type ReaderError struct {
	Diagnostics []DiagnosticRecord
}

func (e *ReaderError) Error() string {
	if len(e.Diagnostics) == 0 {
		return "rdfa: parse failed"
	}
	first := e.Diagnostics[0]
	if len(e.Diagnostics) == 1 {
		return fmt.Sprintf("rdfa: %s", first)
	}
	return fmt.Sprintf("rdfa: %s (and %d more)", first, len(e.Diagnostics)-1)
}
