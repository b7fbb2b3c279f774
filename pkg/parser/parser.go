// Package parser turns markdown source into a typed node tree.
//
// Parsing runs in two passes over the token stream. The block pass
// builds the container skeleton a line at a time, collecting the raw
// text segments of every leaf. The inline pass then resolves those
// segments into emphasis, links, code spans and the rest, using a
// delimiter stack. Malformed constructs never fail a parse; they fall
// back to plain text and surface as diagnostics on the document.
package parser

import (
	"bytes"
	"context"

	"github.com/yaklabco/mdtree/pkg/emoji"
	"github.com/yaklabco/mdtree/pkg/feature"
	"github.com/yaklabco/mdtree/pkg/mdtree"
)

// Parser parses markdown documents with a fixed feature set. A Parser
// is safe for concurrent use.
type Parser struct {
	feats feature.Set
	emoji EmojiLookup
}

// Option configures a Parser.
type Option func(*Parser)

// WithEmojiLookup overrides the shortcode table used for :emoji:
// resolution.
func WithEmojiLookup(lookup EmojiLookup) Option {
	return func(p *Parser) {
		p.emoji = lookup
	}
}

// New creates a Parser honoring the given feature set.
func New(feats feature.Set, opts ...Option) *Parser {
	p := &Parser{
		feats: feats,
		emoji: emoji.Lookup,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds the document tree for source. Content never fails a
// parse; the only error is context cancellation.
func (p *Parser) Parse(ctx context.Context, source []byte) (*mdtree.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := normalize(source)
	doc := mdtree.NewDocument(src)
	doc.Root.Span = mdtree.SourceRange{Start: 0, End: len(src)}

	tokens := Tokenize(src)

	bp := newBlockParser(src, p.feats, doc)
	pend, refs := bp.parse(tokens)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ip := &inlineParser{
		src:   src,
		feats: p.feats,
		doc:   doc,
		refs:  refs,
		emoji: p.emoji,
	}
	for _, pi := range pend {
		ip.parseInto(pi.node, pi.segs)
	}

	(&assembler{doc: doc, src: src}).run()

	return doc, nil
}

// normalize strips a UTF-8 BOM and rewrites CRLF and lone CR line
// endings to LF, so every later stage sees '\n' only.
func normalize(source []byte) []byte {
	source = bytes.TrimPrefix(source, []byte{0xEF, 0xBB, 0xBF})

	if !bytes.ContainsRune(source, '\r') {
		return source
	}

	out := make([]byte, 0, len(source))
	for i := 0; i < len(source); i++ {
		if source[i] == '\r' {
			if i+1 < len(source) && source[i+1] == '\n' {
				continue
			}
			out = append(out, '\n')
			continue
		}
		out = append(out, source[i])
	}
	return out
}
