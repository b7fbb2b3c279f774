package export_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/config"
	"github.com/yaklabco/mdtree/pkg/export"
)

func renderTree(t *testing.T, source, path string) string {
	t.Helper()

	var buf strings.Builder
	exporter := export.NewTreeExporter(export.Options{
		Writer:          &buf,
		Color:           "never",
		ShowDiagnostics: true,
	})
	require.NoError(t, exporter.Export(context.Background(), path, parse(t, source)))
	return buf.String()
}

func TestTreeExporter_Structure(t *testing.T) {
	t.Parallel()

	got := renderTree(t, "# Title\n\nbody text\n", "")
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "document", lines[0])
	assert.Contains(t, lines[1], "├── heading level=1 id=title")
	assert.Contains(t, lines[2], `│   └── text "Title"`)
	assert.Contains(t, lines[3], "└── paragraph")
	assert.Contains(t, lines[4], `    └── text "body text"`)
}

func TestTreeExporter_FileHeader(t *testing.T) {
	t.Parallel()

	got := renderTree(t, "x\n", "docs/readme.md")
	assert.Contains(t, strings.Split(got, "\n")[0], "docs/readme.md")
}

func TestTreeExporter_AttrSummaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"ordered list", "2. a\n", "ordered start=2"},
		{"tight flag", "- a\n- b\n", "unordered tight"},
		{"task state", "- [x] done\n", "task=checked"},
		{"code language", "```go\nx\n```\n", "fenced lang=go"},
		{"table columns", "| a | b |\n|---|---|\n", "columns=2"},
		{"link url", "[t](https://e.com)\n", "url=https://e.com"},
		{"strong", "**b**\n", "emphasis strong"},
		{"footnote index", "x[^a]\n\n[^a]: n\n", "label=a index=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Contains(t, renderTree(t, tt.source, ""), tt.want)
		})
	}
}

func TestTreeExporter_Diagnostics(t *testing.T) {
	t.Parallel()

	got := renderTree(t, "```\nopen\n", "")
	assert.Contains(t, got, "unterminated-fence")
}

func TestTreeExporter_DiagnosticsSuppressed(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	exporter := export.NewTreeExporter(export.Options{Writer: &buf, Color: "never"})
	require.NoError(t, exporter.Export(context.Background(), "", parse(t, "```\nopen\n")))

	assert.NotContains(t, buf.String(), "unterminated-fence")
}

func TestTreeExporter_TruncatesLongLiterals(t *testing.T) {
	t.Parallel()

	got := renderTree(t, strings.Repeat("a", 200)+"\n", "")
	assert.Contains(t, got, "...")
	assert.NotContains(t, got, strings.Repeat("a", 100))
}

func TestNew_FormatDispatch(t *testing.T) {
	t.Parallel()

	var buf strings.Builder

	for _, format := range []config.OutputFormat{config.FormatTree, config.FormatJSON, config.FormatMarkdown} {
		exporter, err := export.New(export.Options{Writer: &buf, Format: format, Color: "never"})
		require.NoError(t, err, "%s", format)
		require.NotNil(t, exporter)
	}

	_, err := export.New(export.Options{Writer: &buf, Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
