package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdtree/pkg/mdtree"
)

// FormatDiagnostic formats a single parse diagnostic for terminal
// output, resolving its span against the document's line index.
func (s *Styles) FormatDiagnostic(doc *mdtree.Document, path string, diag mdtree.Diagnostic, showContext bool) string {
	var builder strings.Builder

	line, col := doc.LineAt(diag.Span.Start)

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		line,
		col,
	)

	kind := s.DiagKind.Render(diag.Kind.String())

	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		location,
		kind,
		s.Message.Render(diag.Message),
	))

	if showContext {
		if source := sourceLine(doc, line); source != "" {
			builder.WriteString(s.FormatSourceContext(source, col))
		}
	}

	return builder.String()
}

// sourceLine returns the 1-based line's text without its newline.
func sourceLine(doc *mdtree.Document, line int) string {
	if line < 1 || line > len(doc.Lines) {
		return ""
	}
	info := doc.Lines[line-1]
	return string(doc.Source[info.Start:info.ContentEnd])
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with diagnostic output
	const indent = "        "

	// Source line
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	// Caret marker
	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, diagCount int) string {
	header := s.FilePath.Render(path)
	if diagCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d diagnostics)", diagCount))
	}
	return header
}
