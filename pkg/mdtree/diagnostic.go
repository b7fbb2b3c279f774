package mdtree

import "fmt"

// DiagnosticKind classifies a recoverable structural note from a parse.
type DiagnosticKind uint8

const (
	// DiagUnterminatedFence marks a code fence closed implicitly at
	// end of input.
	DiagUnterminatedFence DiagnosticKind = iota

	// DiagMalformedTable marks a table attempt that fell back to a
	// paragraph because the separator row was invalid.
	DiagMalformedTable

	// DiagUnresolvedFootnote marks a footnote reference with no matching
	// definition; the reference rendered as literal text.
	DiagUnresolvedFootnote

	// DiagUnresolvedReference marks a reference-style link whose label
	// has no definition; the link text rendered as plain text.
	DiagUnresolvedReference

	// DiagDepthExceeded marks content flattened to literal text because
	// the nesting cap was reached.
	DiagDepthExceeded
)

// String returns the stable name of the diagnostic kind.
func (k DiagnosticKind) String() string {
	switch k {
	case DiagUnterminatedFence:
		return "unterminated-fence"
	case DiagMalformedTable:
		return "malformed-table"
	case DiagUnresolvedFootnote:
		return "unresolved-footnote"
	case DiagUnresolvedReference:
		return "unresolved-reference"
	case DiagDepthExceeded:
		return "depth-exceeded"
	default:
		return "unknown"
	}
}

// Diagnostic records one recoverable ambiguity and how it was resolved.
// Diagnostics never abort a parse; a Document is produced for any input.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	Span    SourceRange
}

// String renders the diagnostic in "kind: message" form.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}
