package langdetect_test

import (
	"testing"

	"github.com/yaklabco/mdtree/pkg/langdetect"
	"github.com/yaklabco/mdtree/pkg/mdtree"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "shebang bash",
			content:  "#!/bin/bash\necho hello",
			expected: "bash",
		},
		{
			name:     "shebang sh",
			content:  "#!/bin/sh\necho hello",
			expected: "bash",
		},
		{
			name:     "shebang python",
			content:  "#!/usr/bin/env python3\nprint('hello')",
			expected: "python",
		},
		{
			name:     "go code",
			content:  "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}",
			expected: "go",
		},
		{
			name:     "json object",
			content:  `{"key": "value", "number": 123}`,
			expected: "json",
		},
		{
			name:     "yaml content",
			content:  "key: value\nother: 123\nlist:\n  - item1\n  - item2",
			expected: "yaml",
		},
		{
			name:     "dockerfile",
			content:  "FROM golang:1.25\nWORKDIR /app\nCOPY . .\nRUN go build",
			expected: "dockerfile",
		},
		{
			name:     "empty content fallback",
			content:  "",
			expected: "text",
		},
		{
			name:     "whitespace only fallback",
			content:  "   \n\t\n",
			expected: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := langdetect.Detect([]byte(tt.content))

			if result != tt.expected {
				t.Errorf("Detect() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestDetect_ShebangTakesPrecedence(t *testing.T) {
	t.Parallel()

	// Content looks like Python but has bash shebang
	content := []byte("#!/bin/bash\ndef foo():\n    pass")
	result := langdetect.Detect(content)

	if result != "bash" {
		t.Errorf("Detect() = %q, want %q (shebang should take precedence)", result, "bash")
	}
}

func TestAnnotate(t *testing.T) {
	t.Parallel()

	doc := mdtree.NewDocument(nil)

	bare := codeBlock("package main\n\nfunc main() {}\n", "", true)
	tagged := codeBlock("print('hi')\n", "python", true)
	indented := codeBlock("some indented text\n", "", false)

	mdtree.AppendChild(doc.Root, bare)
	mdtree.AppendChild(doc.Root, tagged)
	mdtree.AppendChild(doc.Root, indented)

	annotated := langdetect.Annotate(doc)

	if annotated != 1 {
		t.Fatalf("Annotate() = %d, want 1", annotated)
	}
	if got := bare.Block.CodeBlock.Language; got != "go" {
		t.Errorf("bare fence language = %q, want %q", got, "go")
	}
	if got := tagged.Block.CodeBlock.Language; got != "python" {
		t.Errorf("tagged fence language = %q, want it untouched", got)
	}
	if got := indented.Block.CodeBlock.Language; got != "" {
		t.Errorf("indented block language = %q, want it untouched", got)
	}
}

func codeBlock(literal, lang string, fenced bool) *mdtree.Node {
	n := mdtree.NewNode(mdtree.NodeCodeBlock)
	n.Block = &mdtree.BlockAttrs{CodeBlock: &mdtree.CodeBlockAttrs{
		Literal:  literal,
		Language: lang,
		Fenced:   fenced,
	}}
	return n
}
