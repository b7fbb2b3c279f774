// Package feature declares which markdown syntax features the parser
// promotes to typed nodes. Disabled syntax stays literal text, so
// documents using not-yet-enabled constructs still parse cleanly.
//
// A Set is built once before parsing and is never mutated afterwards,
// which makes it safe to share across concurrent parses.
package feature

import (
	"fmt"
	"sort"
)

// Feature identifies one gated syntax feature.
type Feature string

// The recognized feature tags. These are exactly the syntax checklist:
// anything else passed to NewSet is a configuration error.
const (
	Heading        Feature = "heading"
	Bold           Feature = "bold"
	Italic         Feature = "italic"
	Blockquote     Feature = "blockquote"
	OrderedList    Feature = "ordered-list"
	UnorderedList  Feature = "unordered-list"
	Code           Feature = "code"
	HorizontalRule Feature = "horizontal-rule"
	Link           Feature = "link"
	Image          Feature = "image"
	Table          Feature = "table"
	FencedCode     Feature = "fenced-code-block"
	Footnote       Feature = "footnote"
	HeadingID      Feature = "heading-id"
	DefinitionList Feature = "definition-list"
	Strikethrough  Feature = "strikethrough"
	TaskList       Feature = "task-list"
	Emoji          Feature = "emoji"
	Highlight      Feature = "highlight"
	Subscript      Feature = "subscript"
	Superscript    Feature = "superscript"
)

// all lists every recognized feature tag.
//
//nolint:gochecknoglobals // fixed catalog of recognized tags
var all = []Feature{
	Heading, Bold, Italic, Blockquote, OrderedList, UnorderedList, Code,
	HorizontalRule, Link, Image, Table, FencedCode, Footnote, HeadingID,
	DefinitionList, Strikethrough, TaskList, Emoji, Highlight, Subscript,
	Superscript,
}

// All returns every recognized feature tag in stable order.
func All() []Feature {
	out := make([]Feature, len(all))
	copy(out, all)
	return out
}

// IsKnown returns true if the tag is a recognized feature.
func IsKnown(f Feature) bool {
	for _, known := range all {
		if f == known {
			return true
		}
	}
	return false
}

// Set is an immutable collection of enabled features.
// The zero value has nothing enabled.
type Set struct {
	enabled map[Feature]bool
}

// NewSet creates a set with exactly the given features enabled.
// Unknown tags fail fast: this is the only condition that aborts the
// pipeline, and it happens before any parse call.
func NewSet(features ...Feature) (Set, error) {
	enabled := make(map[Feature]bool, len(features))
	for _, f := range features {
		if !IsKnown(f) {
			return Set{}, fmt.Errorf("unrecognized feature tag %q", f)
		}
		enabled[f] = true
	}
	return Set{enabled: enabled}, nil
}

// AllEnabled returns a set with every recognized feature enabled.
func AllEnabled() Set {
	enabled := make(map[Feature]bool, len(all))
	for _, f := range all {
		enabled[f] = true
	}
	return Set{enabled: enabled}
}

// Enabled returns true if the feature is enabled in this set.
func (s Set) Enabled(f Feature) bool {
	return s.enabled[f]
}

// Without returns a copy of the set with the given features disabled.
func (s Set) Without(features ...Feature) Set {
	enabled := make(map[Feature]bool, len(s.enabled))
	for f := range s.enabled {
		enabled[f] = true
	}
	for _, f := range features {
		delete(enabled, f)
	}
	return Set{enabled: enabled}
}

// With returns a copy of the set with the given features enabled.
// Unknown tags are rejected the same way NewSet rejects them.
func (s Set) With(features ...Feature) (Set, error) {
	enabled := make(map[Feature]bool, len(s.enabled)+len(features))
	for f := range s.enabled {
		enabled[f] = true
	}
	for _, f := range features {
		if !IsKnown(f) {
			return Set{}, fmt.Errorf("unrecognized feature tag %q", f)
		}
		enabled[f] = true
	}
	return Set{enabled: enabled}, nil
}

// List returns the enabled features in stable order.
func (s Set) List() []Feature {
	out := make([]Feature, 0, len(s.enabled))
	for f := range s.enabled {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
