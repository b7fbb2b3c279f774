package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yaklabco/mdtree/pkg/feature"
	"github.com/yaklabco/mdtree/pkg/mdtree"
)

// EmojiLookup resolves an emoji shortcode to its glyph.
type EmojiLookup func(shortcode string) (glyph string, ok bool)

// inlineParser resolves the raw segments attached to a leaf block into
// inline children, using a delimiter stack for the emphasis family and
// a bracket stack for links and images.
type inlineParser struct {
	src   []byte
	feats feature.Set
	doc   *mdtree.Document
	refs  map[string]linkRef
	emoji EmojiLookup
}

type delimFamily uint8

const (
	famEmphasis delimFamily = iota
	famStrike
	famSub
	famSup
	famHighlight
)

// maxInlineDelims caps the delimiter and bracket stacks. Markers past
// the cap stay literal text, so a pathological run of openers cannot
// build an arbitrarily deep tree.
const maxInlineDelims = 256

type delimiter struct {
	node     *mdtree.Node
	char     byte
	length   int
	family   delimFamily
	canOpen  bool
	canClose bool
}

type bracket struct {
	node       *mdtree.Node
	image      bool
	delimFloor int
	active     bool
}

// inlineRun is the mutable state of one leaf's inline resolution.
type inlineRun struct {
	parent    *mdtree.Node
	delims    []*delimiter
	brackets  []*bracket
	textBuf   bytes.Buffer
	textStart int
	textEnd   int
}

func (ip *inlineParser) parseInto(node *mdtree.Node, segs []inlineSeg) {
	r := &inlineRun{parent: node, textStart: -1}

	for si, seg := range segs {
		if si > 0 {
			ip.flushText(r)
			kind := mdtree.NodeSoftBreak
			if segs[si-1].hard {
				kind = mdtree.NodeHardBreak
			}
			br := mdtree.NewNode(kind)
			br.Span = mdtree.SourceRange{Start: segs[si-1].span.End, End: seg.span.Start}
			mdtree.AppendChild(node, br)
		}
		ip.scanSeg(r, seg)
	}

	ip.flushText(r)
	ip.processEmphasis(r, 0)
}

func (ip *inlineParser) scanSeg(r *inlineRun, seg inlineSeg) {
	toks := ScanInline(ip.src, seg.span.Start, seg.span.End)

	for j := 0; j < len(toks); j++ {
		tok := toks[j]
		switch tok.Kind {
		case TokText, TokWhitespace, TokParenOpen, TokParenClose:
			ip.appendRaw(r, tok)

		case TokEscapedChar:
			ip.appendLiteral(r, string(ip.src[tok.Start+1:tok.End]), tok.Start, tok.End)

		case TokBacktick:
			j = ip.codeSpan(r, toks, j)

		case TokEmphasisMarker:
			ip.emphasisDelim(r, tok)

		case TokTildeRun:
			switch {
			case tok.Len() == 2 && ip.feats.Enabled(feature.Strikethrough):
				ip.pushDelim(r, tok, famStrike)
			case tok.Len() == 1 && ip.feats.Enabled(feature.Subscript):
				ip.pushDelim(r, tok, famSub)
			default:
				ip.appendRaw(r, tok)
			}

		case TokCaretRun:
			if tok.Len() == 1 && ip.feats.Enabled(feature.Superscript) {
				ip.pushDelim(r, tok, famSup)
			} else {
				ip.appendRaw(r, tok)
			}

		case TokEqualsRun:
			if tok.Len() == 2 && ip.feats.Enabled(feature.Highlight) {
				ip.pushDelim(r, tok, famHighlight)
			} else {
				ip.appendRaw(r, tok)
			}

		case TokLinkOpen:
			j = ip.openBracket(r, toks, j)

		case TokImageMarker:
			if ip.feats.Enabled(feature.Image) && len(r.brackets) < maxInlineDelims &&
				j+1 < len(toks) && toks[j+1].Kind == TokLinkOpen && toks[j+1].Start == tok.End {
				ip.flushText(r)
				text := ip.literalNode("![", tok.Start, toks[j+1].End)
				mdtree.AppendChild(r.parent, text)
				r.brackets = append(r.brackets, &bracket{
					node:       text,
					image:      true,
					delimFloor: len(r.delims),
					active:     true,
				})
				j++
			} else {
				ip.appendRaw(r, tok)
			}

		case TokLinkClose:
			j = ip.closeBracket(r, toks, j, seg.span.End)

		case TokColon:
			j = ip.emojiShortcode(r, toks, j)

		case TokAngleOpen:
			j = ip.autolink(r, toks, j)

		case TokAngleClose:
			ip.appendRaw(r, tok)
		}
	}
}

// appendRaw appends a token's raw bytes to the pending text run.
func (ip *inlineParser) appendRaw(r *inlineRun, tok Token) {
	ip.appendLiteral(r, string(ip.src[tok.Start:tok.End]), tok.Start, tok.End)
}

func (ip *inlineParser) appendLiteral(r *inlineRun, literal string, start, end int) {
	if r.textStart < 0 {
		r.textStart = start
	}
	r.textBuf.WriteString(literal)
	r.textEnd = end
}

func (ip *inlineParser) flushText(r *inlineRun) {
	if r.textStart < 0 {
		return
	}
	text := mdtree.NewText(r.textBuf.String())
	text.Span = mdtree.SourceRange{Start: r.textStart, End: r.textEnd}
	mdtree.AppendChild(r.parent, text)
	r.textBuf.Reset()
	r.textStart = -1
}

func (ip *inlineParser) literalNode(literal string, start, end int) *mdtree.Node {
	n := mdtree.NewText(literal)
	n.Span = mdtree.SourceRange{Start: start, End: end}
	return n
}

// codeSpan matches a backtick run against the next run of equal length.
// Unmatched runs stay literal.
func (ip *inlineParser) codeSpan(r *inlineRun, toks []Token, j int) int {
	open := toks[j]
	if !ip.feats.Enabled(feature.Code) {
		ip.appendRaw(r, open)
		return j
	}

	for k := j + 1; k < len(toks); k++ {
		if toks[k].Kind != TokBacktick || toks[k].Len() != open.Len() {
			continue
		}

		literal := string(ip.src[open.End:toks[k].Start])
		// One padding space on each side strips, per convention.
		if len(literal) >= 2 && literal[0] == ' ' && literal[len(literal)-1] == ' ' &&
			strings.TrimSpace(literal) != "" {
			literal = literal[1 : len(literal)-1]
		}

		ip.flushText(r)
		node := mdtree.NewNode(mdtree.NodeCodeSpan)
		node.Span = mdtree.SourceRange{Start: open.Start, End: toks[k].End}
		node.Inline = &mdtree.InlineAttrs{Text: literal}
		mdtree.AppendChild(r.parent, node)
		return k
	}

	ip.appendRaw(r, open)
	return j
}

// emphasisDelim pushes a * or _ run as a delimiter, or keeps it literal
// when neither bold nor italic is enabled.
func (ip *inlineParser) emphasisDelim(r *inlineRun, tok Token) {
	if !ip.feats.Enabled(feature.Bold) && !ip.feats.Enabled(feature.Italic) {
		ip.appendRaw(r, tok)
		return
	}
	ip.pushDelim(r, tok, famEmphasis)
}

func (ip *inlineParser) pushDelim(r *inlineRun, tok Token, family delimFamily) {
	if len(r.delims) >= maxInlineDelims {
		ip.appendRaw(r, tok)
		return
	}
	canOpen, canClose := ip.flanking(tok)
	if !canOpen && !canClose {
		ip.appendRaw(r, tok)
		return
	}

	ip.flushText(r)
	node := ip.literalNode(string(ip.src[tok.Start:tok.End]), tok.Start, tok.End)
	mdtree.AppendChild(r.parent, node)
	r.delims = append(r.delims, &delimiter{
		node:     node,
		char:     ip.src[tok.Start],
		length:   tok.Len(),
		family:   family,
		canOpen:  canOpen,
		canClose: canClose,
	})
}

// flanking decides whether a delimiter run can open or close, from the
// bytes on either side. Underscores additionally refuse intraword use.
func (ip *inlineParser) flanking(tok Token) (canOpen, canClose bool) {
	var before, after byte = ' ', ' '
	if tok.Start > 0 {
		before = ip.src[tok.Start-1]
	}
	if tok.End < len(ip.src) {
		after = ip.src[tok.End]
	}

	canOpen = !isSpaceByte(after)
	canClose = !isSpaceByte(before)

	if ip.src[tok.Start] == '_' {
		if isWordByte(before) {
			canOpen = false
		}
		if isWordByte(after) {
			canClose = false
		}
	}
	return canOpen, canClose
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// openBracket handles a '[': footnote reference, link opener, or plain
// text depending on features and what follows.
func (ip *inlineParser) openBracket(r *inlineRun, toks []Token, j int) int {
	tok := toks[j]

	if ip.feats.Enabled(feature.Footnote) {
		if end, label, ok := ip.footnoteRef(toks, j); ok {
			ip.flushText(r)
			node := mdtree.NewNode(mdtree.NodeFootnoteReference)
			node.Span = mdtree.SourceRange{Start: tok.Start, End: toks[end].End}
			node.Inline = &mdtree.InlineAttrs{FootnoteRef: &mdtree.FootnoteRefAttrs{Label: label}}
			mdtree.AppendChild(r.parent, node)
			return end
		}
	}

	if !ip.feats.Enabled(feature.Link) && !ip.feats.Enabled(feature.Image) {
		ip.appendRaw(r, tok)
		return j
	}
	if len(r.brackets) >= maxInlineDelims {
		ip.appendRaw(r, tok)
		return j
	}

	ip.flushText(r)
	text := ip.literalNode("[", tok.Start, tok.End)
	mdtree.AppendChild(r.parent, text)
	r.brackets = append(r.brackets, &bracket{
		node:       text,
		delimFloor: len(r.delims),
		active:     true,
	})
	return j
}

// footnoteRef matches `[^label]` starting at toks[j] and returns the
// index of the closing bracket token.
func (ip *inlineParser) footnoteRef(toks []Token, j int) (end int, label string, ok bool) {
	if j+1 >= len(toks) || toks[j+1].Kind != TokCaretRun ||
		toks[j+1].Len() != 1 || toks[j+1].Start != toks[j].End {
		return 0, "", false
	}

	for k := j + 2; k < len(toks); k++ {
		switch toks[k].Kind {
		case TokLinkClose:
			label = string(ip.src[toks[j+1].End:toks[k].Start])
			if label == "" || strings.ContainsAny(label, " \t") {
				return 0, "", false
			}
			return k, label, true
		case TokText, TokTildeRun, TokCaretRun:
			continue
		default:
			return 0, "", false
		}
	}
	return 0, "", false
}

// closeBracket resolves a ']' against the bracket stack: inline link,
// reference link, or literal text.
func (ip *inlineParser) closeBracket(r *inlineRun, toks []Token, j int, segEnd int) int {
	tok := toks[j]

	var br *bracket
	for len(r.brackets) > 0 {
		cand := r.brackets[len(r.brackets)-1]
		if cand.active {
			br = cand
			break
		}
		r.brackets = r.brackets[:len(r.brackets)-1]
	}
	if br == nil {
		ip.appendRaw(r, tok)
		return j
	}

	if br.image && !ip.feats.Enabled(feature.Image) || !br.image && !ip.feats.Enabled(feature.Link) {
		r.brackets = r.brackets[:len(r.brackets)-1]
		ip.appendRaw(r, tok)
		return j
	}

	// Inline form: `](dest "title")` with the paren adjacent.
	if j+1 < len(toks) && toks[j+1].Kind == TokParenOpen && toks[j+1].Start == tok.End {
		dest, title, end, ok := parseLinkTarget(ip.src, toks[j+1].Start, segEnd)
		if ok {
			ip.buildLink(r, br, dest, title, "", end)
			for j+1 < len(toks) && toks[j+1].Start < end {
				j++
			}
			return j
		}
	}

	// Reference forms: `][label]`, `][]`, and shortcut `]`.
	enclosed := string(ip.src[br.node.Span.End:tok.Start])

	if j+1 < len(toks) && toks[j+1].Kind == TokLinkOpen && toks[j+1].Start == tok.End {
		if end, label, ok := ip.refLabel(toks, j+1); ok {
			if label == "" {
				label = enclosed
			}
			if ref, found := ip.refs[normalizeLabel(label)]; found {
				ip.buildLink(r, br, ref.dest, ref.title, label, toks[end].End)
				return end
			}
			ip.doc.Diagnostics = append(ip.doc.Diagnostics, mdtree.Diagnostic{
				Kind:    mdtree.DiagUnresolvedReference,
				Message: fmt.Sprintf("link reference %q has no definition", normalizeLabel(label)),
				Span:    mdtree.SourceRange{Start: br.node.Span.Start, End: toks[end].End},
			})
			r.brackets = r.brackets[:len(r.brackets)-1]
			ip.appendRaw(r, tok)
			return j
		}
	}

	if ref, found := ip.refs[normalizeLabel(enclosed)]; found && enclosed != "" {
		ip.buildLink(r, br, ref.dest, ref.title, enclosed, tok.End)
		return j
	}

	// Plain brackets with no target stay literal, quietly.
	r.brackets = r.brackets[:len(r.brackets)-1]
	ip.appendRaw(r, tok)
	return j
}

// refLabel matches `[label]` starting at the given open bracket token.
// An empty label means the collapsed form.
func (ip *inlineParser) refLabel(toks []Token, j int) (end int, label string, ok bool) {
	for k := j + 1; k < len(toks); k++ {
		switch toks[k].Kind {
		case TokLinkClose:
			return k, string(ip.src[toks[j].End:toks[k].Start]), true
		case TokText, TokWhitespace:
			continue
		default:
			return 0, "", false
		}
	}
	return 0, "", false
}

// buildLink wraps everything after the bracket opener into a link or
// image node ending at byte offset end.
func (ip *inlineParser) buildLink(r *inlineRun, br *bracket, dest, title, refLabel string, end int) {
	// The label's trailing text is still buffered; it must become a node
	// before the bracket's children are reparented.
	ip.flushText(r)
	ip.processEmphasis(r, br.delimFloor)
	r.delims = r.delims[:br.delimFloor]

	kind := mdtree.NodeLink
	if br.image {
		kind = mdtree.NodeImage
	}

	node := mdtree.NewNode(kind)
	node.Span = mdtree.SourceRange{Start: br.node.Span.Start, End: end}
	node.Inline = &mdtree.InlineAttrs{Link: &mdtree.LinkAttrs{
		Destination:    dest,
		Title:          title,
		ReferenceLabel: refLabel,
	}}

	for child := br.node.Next; child != nil; {
		next := child.Next
		mdtree.RemoveChild(r.parent, child)
		mdtree.AppendChild(node, child)
		child = next
	}
	mdtree.RemoveChild(r.parent, br.node)
	mdtree.AppendChild(r.parent, node)

	if br.image {
		node.Inline.Link.Alt = node.PlainText()
	} else {
		// Links do not nest; earlier link openers deactivate.
		for _, other := range r.brackets {
			if !other.image {
				other.active = false
			}
		}
	}

	r.brackets = r.brackets[:len(r.brackets)-1]
}

// parseLinkTarget parses `(dest "title")` beginning at the opening
// paren and returns the byte offset just past the closing paren.
func parseLinkTarget(src []byte, open, limit int) (dest, title string, end int, ok bool) {
	pos := open + 1
	for pos < limit && src[pos] == ' ' {
		pos++
	}

	var destBuf strings.Builder
	if pos < limit && src[pos] == '<' {
		pos++
		for pos < limit && src[pos] != '>' {
			if src[pos] == '\n' {
				return "", "", 0, false
			}
			destBuf.WriteByte(src[pos])
			pos++
		}
		if pos >= limit {
			return "", "", 0, false
		}
		pos++
	} else {
		depth := 0
		for pos < limit {
			b := src[pos]
			if b == ' ' || b == '\t' {
				break
			}
			if b == '(' {
				depth++
			}
			if b == ')' {
				if depth == 0 {
					break
				}
				depth--
			}
			if b == '\\' && pos+1 < limit {
				pos++
				destBuf.WriteByte(src[pos])
				pos++
				continue
			}
			destBuf.WriteByte(b)
			pos++
		}
	}

	for pos < limit && (src[pos] == ' ' || src[pos] == '\t') {
		pos++
	}

	if pos < limit && (src[pos] == '"' || src[pos] == '\'') {
		quote := src[pos]
		pos++
		start := pos
		for pos < limit && src[pos] != quote {
			pos++
		}
		if pos >= limit {
			return "", "", 0, false
		}
		title = string(src[start:pos])
		pos++
		for pos < limit && (src[pos] == ' ' || src[pos] == '\t') {
			pos++
		}
	}

	if pos >= limit || src[pos] != ')' {
		return "", "", 0, false
	}

	return destBuf.String(), title, pos + 1, true
}

// autolink matches `<scheme:uri>` or `<user@host>` at the angle bracket.
func (ip *inlineParser) autolink(r *inlineRun, toks []Token, j int) int {
	open := toks[j]
	if !ip.feats.Enabled(feature.Link) {
		ip.appendRaw(r, open)
		return j
	}

	for k := j + 1; k < len(toks); k++ {
		if toks[k].Kind == TokAngleOpen || toks[k].Kind == TokWhitespace {
			break
		}
		if toks[k].Kind != TokAngleClose {
			continue
		}

		literal := string(ip.src[open.End:toks[k].Start])
		dest, ok := autolinkDestination(literal)
		if !ok {
			break
		}

		ip.flushText(r)
		node := mdtree.NewNode(mdtree.NodeLink)
		node.Span = mdtree.SourceRange{Start: open.Start, End: toks[k].End}
		node.Inline = &mdtree.InlineAttrs{Link: &mdtree.LinkAttrs{Destination: dest}}
		mdtree.AppendChild(node, ip.literalNode(literal, open.End, toks[k].Start))
		mdtree.AppendChild(r.parent, node)
		return k
	}

	ip.appendRaw(r, open)
	return j
}

// autolinkDestination validates the bracketed content as an absolute
// URI or an email address, returning the link destination.
func autolinkDestination(s string) (string, bool) {
	if isEmailAddress(s) {
		return "mailto:" + s, true
	}
	if isAbsoluteURI(s) {
		return s, true
	}
	return "", false
}

func isAbsoluteURI(s string) bool {
	colon := strings.IndexByte(s, ':')
	if colon < 2 || colon > 32 || colon == len(s)-1 {
		return false
	}
	if !isASCIILetter(s[0]) {
		return false
	}
	for i := 1; i < colon; i++ {
		ch := s[i]
		if !isASCIILetter(ch) && !isDigit(ch) && ch != '+' && ch != '.' && ch != '-' {
			return false
		}
	}
	return true
}

func isEmailAddress(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if !strings.Contains(domain, ".") {
		return false
	}
	for i := 0; i < len(local); i++ {
		ch := local[i]
		if !isASCIILetter(ch) && !isDigit(ch) && !strings.ContainsRune(".!#$%&'*+/=?^_`{|}~-", rune(ch)) {
			return false
		}
	}
	for i := 0; i < len(domain); i++ {
		ch := domain[i]
		if !isASCIILetter(ch) && !isDigit(ch) && ch != '.' && ch != '-' {
			return false
		}
	}
	return true
}

func isASCIILetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// emojiShortcode matches `:shortcode:` at the colon token.
func (ip *inlineParser) emojiShortcode(r *inlineRun, toks []Token, j int) int {
	tok := toks[j]
	if !ip.feats.Enabled(feature.Emoji) {
		ip.appendRaw(r, tok)
		return j
	}

	if j+2 >= len(toks) ||
		toks[j+1].Kind != TokText || toks[j+1].Start != tok.End ||
		toks[j+2].Kind != TokColon || toks[j+2].Start != toks[j+1].End {
		ip.appendRaw(r, tok)
		return j
	}

	shortcode := string(ip.src[toks[j+1].Start:toks[j+1].End])
	if !validShortcode(shortcode) {
		ip.appendRaw(r, tok)
		return j
	}

	glyph, found := ip.emoji(shortcode)
	if !found {
		ip.appendRaw(r, tok)
		return j
	}

	ip.flushText(r)
	node := mdtree.NewNode(mdtree.NodeEmoji)
	node.Span = mdtree.SourceRange{Start: tok.Start, End: toks[j+2].End}
	node.Inline = &mdtree.InlineAttrs{Emoji: &mdtree.EmojiAttrs{Shortcode: shortcode, Glyph: glyph}}
	mdtree.AppendChild(r.parent, node)
	return j + 2
}

func validShortcode(s string) bool {
	if s == "" || len(s) > 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if !(b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '_' || b == '+' || b == '-') {
			return false
		}
	}
	return true
}

// processEmphasis resolves delimiters from floor upward into nested
// emphasis-family nodes. Crossed openers drop to literal text.
func (ip *inlineParser) processEmphasis(r *inlineRun, floor int) {
	for i := floor; i < len(r.delims); i++ {
		closer := r.delims[i]
		if closer == nil || closer.length == 0 || !closer.canClose {
			continue
		}

		opener := -1
		for k := i - 1; k >= floor; k-- {
			cand := r.delims[k]
			if cand == nil || cand.length == 0 || !cand.canOpen {
				continue
			}
			if cand.char != closer.char || cand.family != closer.family {
				continue
			}
			if closer.family == famEmphasis && ip.pairWidth(cand, closer) == 0 {
				continue
			}
			opener = k
			break
		}

		if opener < 0 {
			if !closer.canOpen {
				r.delims[i] = nil
			}
			continue
		}

		for k := opener + 1; k < i; k++ {
			r.delims[k] = nil
		}

		ip.pairDelims(r, opener, i)

		if r.delims[i] != nil && r.delims[i].length > 0 {
			i-- // same closer may pair again
		}
	}
}

// pairWidth returns how many delimiter characters one pairing consumes,
// zero when the features in play allow no pairing at all.
func (ip *inlineParser) pairWidth(opener, closer *delimiter) int {
	switch opener.family {
	case famStrike, famHighlight:
		return 2
	case famSub, famSup:
		return 1
	}

	bold := ip.feats.Enabled(feature.Bold)
	italic := ip.feats.Enabled(feature.Italic)

	if bold && opener.length >= 2 && closer.length >= 2 {
		return 2
	}
	if italic {
		return 1
	}
	return 0
}

func (ip *inlineParser) pairDelims(r *inlineRun, oi, ci int) {
	opener := r.delims[oi]
	closer := r.delims[ci]
	use := ip.pairWidth(opener, closer)

	var node *mdtree.Node
	switch opener.family {
	case famEmphasis:
		node = mdtree.NewNode(mdtree.NodeEmphasis)
		node.Inline = &mdtree.InlineAttrs{Strong: use == 2}
	case famStrike:
		node = mdtree.NewNode(mdtree.NodeStrikethrough)
	case famSub:
		node = mdtree.NewNode(mdtree.NodeSubscript)
	case famSup:
		node = mdtree.NewNode(mdtree.NodeSuperscript)
	case famHighlight:
		node = mdtree.NewNode(mdtree.NodeHighlight)
	}
	node.Span = mdtree.SourceRange{
		Start: opener.node.Span.End - use,
		End:   closer.node.Span.Start + use,
	}

	for child := opener.node.Next; child != closer.node; {
		next := child.Next
		mdtree.RemoveChild(r.parent, child)
		mdtree.AppendChild(node, child)
		child = next
	}
	mdtree.InsertBefore(closer.node, node)

	ip.shrinkDelim(r, oi, use, false)
	ip.shrinkDelim(r, ci, use, true)
}

// shrinkDelim consumes width characters from a delimiter run, from the
// front for closers and the back for openers, dropping it at zero.
func (ip *inlineParser) shrinkDelim(r *inlineRun, idx, width int, fromFront bool) {
	d := r.delims[idx]
	d.length -= width
	if fromFront {
		d.node.Span.Start += width
	} else {
		d.node.Span.End -= width
	}

	if d.length <= 0 {
		mdtree.RemoveChild(r.parent, d.node)
		r.delims[idx] = nil
		return
	}
	d.node.Inline.Text = string(ip.src[d.node.Span.Start:d.node.Span.End])
}
