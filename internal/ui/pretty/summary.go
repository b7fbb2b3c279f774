package pretty

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/mdtree/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files parsed, 412 nodes, 2 diagnostics".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	fileWord := wordFiles
	if stats.FilesParsed == 1 {
		fileWord = wordFile
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d %s parsed", stats.FilesParsed, fileWord))
	parts = append(parts, fmt.Sprintf("%d nodes", stats.NodesTotal))

	if stats.DiagnosticsTotal > 0 {
		parts = append(parts, s.DiagKind.Render(fmt.Sprintf("%d diagnostics", stats.DiagnosticsTotal)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	line := strings.Join(parts, ", ")
	if stats.DiagnosticsTotal == 0 && stats.FilesErrored == 0 {
		line = s.Success.Render(line)
	}
	return line + "\n"
}

// FormatSummaryBlock formats run statistics as a labeled block,
// including the per-kind diagnostic breakdown.
func (s *Styles) FormatSummaryBlock(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString(s.SummaryTitle.Render("Summary") + "\n")
	writeRow := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-22s %s\n",
			s.Dim.Render(label), s.SummaryValue.Render(value)))
	}

	writeRow("Files parsed", fmt.Sprintf("%d", stats.FilesParsed))
	writeRow("Nodes", fmt.Sprintf("%d", stats.NodesTotal))
	writeRow("Diagnostics", fmt.Sprintf("%d", stats.DiagnosticsTotal))
	if stats.FilesErrored > 0 {
		writeRow("Failures", s.Failure.Render(fmt.Sprintf("%d", stats.FilesErrored)))
	}
	if stats.Duration > 0 {
		writeRow("Elapsed", stats.Duration.String())
	}

	kinds := make([]string, 0, len(stats.DiagnosticsByKind))
	for kind := range stats.DiagnosticsByKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		writeRow("  "+kind, fmt.Sprintf("%d", stats.DiagnosticsByKind[kind]))
	}

	return builder.String()
}
