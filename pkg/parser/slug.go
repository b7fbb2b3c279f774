package parser

import (
	"strings"
	"unicode"
)

// slugify derives a heading anchor from its plain text: lowercased,
// words joined by single hyphens, everything else dropped.
func slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	pendingHyphen := false

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r) || r == '_':
			pendingHyphen = true
		}
	}

	if b.Len() == 0 {
		return "section"
	}
	return b.String()
}
