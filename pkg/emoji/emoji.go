// Package emoji resolves GitHub-style emoji shortcodes to unicode
// glyphs.
package emoji

import (
	"github.com/yuin/goldmark-emoji/definition"
)

var table = definition.Github()

// Lookup resolves a shortcode like "rocket" to its glyph. Shortcodes
// without a unicode representation report false.
func Lookup(shortcode string) (string, bool) {
	e, ok := table.Get(shortcode)
	if !ok || !e.IsUnicode() {
		return "", false
	}
	return string(e.Unicode), true
}
