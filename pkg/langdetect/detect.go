// Package langdetect infers languages for code blocks that carry no
// info string. It leans on go-enry's shebang and classifier detection,
// with a few cheap structural checks in front for formats the
// classifier confuses.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/mdtree/pkg/mdtree"
)

// Fallback is reported when nothing matches with confidence.
const Fallback = "text"

// candidates bounds the classifier to languages that commonly appear in
// markdown code blocks.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// Annotate fills in the Language attribute of every fenced code block
// in the document that has no info string. Returns the number of
// blocks annotated.
func Annotate(doc *mdtree.Document) int {
	annotated := 0

	for _, block := range mdtree.FindByKind(doc.Root, mdtree.NodeCodeBlock) {
		attrs := block.Block.CodeBlock
		if !attrs.Fenced || attrs.Language != "" || attrs.Literal == "" {
			continue
		}
		attrs.Language = Detect([]byte(attrs.Literal))
		annotated++
	}

	return annotated
}

// Detect returns the fence tag for a code snippet, or Fallback when
// detection is not confident.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Fallback
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fenceTag(lang)
	}

	if lang := structuralGuess(content); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return fenceTag(lang)
	}

	return Fallback
}

// structuralGuess catches formats the bayesian classifier tends to
// misfile: JSON, YAML, and a handful of unmistakable prefixes.
func structuralGuess(content []byte) string {
	trimmed := bytes.TrimSpace(content)

	if bytes.HasPrefix(trimmed, []byte("package ")) {
		return "go"
	}
	if bytes.HasPrefix(trimmed, []byte("FROM ")) && bytes.Contains(content, []byte("RUN ")) {
		return "dockerfile"
	}
	if (trimmed[0] == '{' || trimmed[0] == '[') && bytes.Contains(trimmed, []byte(`"`)) {
		return "json"
	}
	if looksLikeYAML(content) {
		return "yaml"
	}
	return ""
}

// looksLikeYAML counts root-level `key: value` lines, excluding lines
// that look like code.
func looksLikeYAML(content []byte) bool {
	keys := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' || line[0] == '"' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") {
			keys++
		}
	}
	return keys >= 2
}

// fenceTag converts an enry language name to the tag conventionally
// used on fences.
func fenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
