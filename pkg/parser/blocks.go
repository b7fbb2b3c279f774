package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdtree/pkg/feature"
	"github.com/yaklabco/mdtree/pkg/mdtree"
)

// maxContainerDepth bounds the container stack. Markers past the bound
// stay literal paragraph text instead of growing the tree without limit.
const maxContainerDepth = 128

// tabWidth is the column width of a tab for indent matching.
const tabWidth = 4

// inlineSeg is one raw source segment of unresolved inline content.
type inlineSeg struct {
	span mdtree.SourceRange

	// hard is true when the segment ends in a hard line break.
	hard bool
}

// pendingInline pairs a leaf node with the raw segments the inline
// parser resolves into its children.
type pendingInline struct {
	node *mdtree.Node
	segs []inlineSeg
}

// linkRef is one collected link reference definition.
type linkRef struct {
	dest  string
	title string
}

// blockParser builds the block-level skeleton of the tree. It scans the
// token stream a line at a time, maintaining a stack of open containers
// matched by marker and indent.
type blockParser struct {
	src   []byte
	feats feature.Set
	doc   *mdtree.Document

	containers []*container
	pend       []pendingInline
	refs       map[string]linkRef

	para  *paraState
	fence *fenceState
	code  *codeState

	// blankPending is true when the last content line was blank while a
	// list item was open; it decides list looseness.
	blankPending bool

	depthDiagnosed bool
}

type container struct {
	node *mdtree.Node

	// contIndent is the column count continuation lines must be
	// indented by, relative to the enclosing container's content.
	// Used by list items and footnote definitions.
	contIndent int

	// loose is set on lists when a blank line separates items.
	loose bool
}

type paraState struct {
	node *mdtree.Node
	segs []inlineSeg
}

type fenceState struct {
	node     *mdtree.Node
	char     byte
	length   int
	indent   int // extra columns before the fence, stripped from content
	depth    int // container depth owning the fence
	buf      bytes.Buffer
	anyLines bool
}

type codeState struct {
	node          *mdtree.Node
	depth         int
	buf           bytes.Buffer
	pendingBlanks int
}

func newBlockParser(src []byte, feats feature.Set, doc *mdtree.Document) *blockParser {
	return &blockParser{
		src:        src,
		feats:      feats,
		doc:        doc,
		containers: []*container{{node: doc.Root}},
		refs:       make(map[string]linkRef),
	}
}

// parse consumes the block-level token stream and returns the pending
// inline work and the collected link reference definitions.
func (p *blockParser) parse(tokens []Token) ([]pendingInline, map[string]linkRef) {
	lines := splitLines(tokens, len(p.src))

	for i := 0; i < len(lines); i++ {
		i = p.parseLine(lines, i)
	}

	// closeToDepth only finalizes leaves inside containers it closes, so
	// an open top-level leaf must be flushed here.
	p.closePara()
	p.closeFence()
	p.closeCode()
	p.closeToDepth(1)
	p.finishSpans(p.doc.Root)

	return p.pend, p.refs
}

// line is one source line's tokens, excluding the trailing newline.
type line struct {
	toks  []Token
	start int
	end   int // content end, excluding the newline
	blank bool
}

func splitLines(tokens []Token, srcLen int) []line {
	var lines []line
	cur := line{start: 0, blank: true}
	started := false

	for _, tok := range tokens {
		if !started {
			cur.start = tok.Start
			cur.end = tok.Start
			started = true
		}
		if tok.Kind == TokNewline {
			lines = append(lines, cur)
			cur = line{start: tok.End, end: tok.End, blank: true}
			started = false
			continue
		}
		if tok.Kind != TokWhitespace {
			cur.blank = false
		}
		cur.toks = append(cur.toks, tok)
		cur.end = tok.End
	}

	if started || len(cur.toks) > 0 {
		lines = append(lines, cur)
	} else if len(lines) == 0 && srcLen > 0 {
		lines = append(lines, line{start: 0, end: srcLen, blank: true})
	}

	return lines
}

// parseLine processes lines[i] and returns the index of the last line it
// consumed (tables consume several).
func (p *blockParser) parseLine(lines []line, i int) int {
	ln := lines[i]
	cur := newLineCursor(p.src, ln)

	matched := p.matchPrefix(cur, ln.blank)

	// An open fence swallows any line whose containers still match,
	// blank lines included.
	if p.fence != nil && matched >= p.fence.depth {
		p.fenceLine(cur, ln)
		return i
	}

	if ln.blank {
		p.closePara()
		if p.code != nil {
			p.code.pendingBlanks++
		}
		// Blank lines close blockquotes but keep list items open.
		p.closeToDepth(p.shallowestBlockquote(matched))
		if p.openListItem() != nil {
			p.blankPending = true
		}
		return i
	}

	if matched < len(p.containers) {
		p.closeToDepth(matched)
	}

	if p.code != nil {
		if cur.wsWidth() >= 4 {
			cur.consumeCols(4)
			p.codeLine(cur, ln)
			return i
		}
		p.closeCode()
	}

	return p.openBlocks(cur, lines, i)
}

// shallowestBlockquote returns the depth to keep open when a blank line
// arrives: everything below the outermost unmatched-or-any blockquote
// closes, list items survive.
func (p *blockParser) shallowestBlockquote(matched int) int {
	for depth, c := range p.containers {
		if depth == 0 {
			continue
		}
		if c.node.Kind == mdtree.NodeBlockquote {
			return depth
		}
	}
	_ = matched
	return len(p.containers)
}

// matchPrefix consumes the markers and indentation of already-open
// containers. It returns how many containers (including the document)
// the line continues.
func (p *blockParser) matchPrefix(cur *lineCursor, blank bool) int {
	matched := 1

	for _, c := range p.containers[1:] {
		switch c.node.Kind {
		case mdtree.NodeBlockquote:
			if blank {
				return matched
			}
			save := cur.mark()
			if cur.wsWidth() <= 3 {
				cur.consumeAllWs()
			}
			if cur.peekKind() != TokBlockquoteMarker {
				cur.reset(save)
				return matched
			}
			cur.consumeToken()
			cur.consumeCols(1)
			cur.col = 0
			matched++

		case mdtree.NodeList:
			matched++

		case mdtree.NodeListItem, mdtree.NodeFootnoteDefinition:
			if blank {
				matched++
				continue
			}
			need := c.contIndent
			if cur.wsWidth() >= need {
				cur.consumeCols(need)
				cur.col = 0
				matched++
			} else {
				return matched
			}
		}
	}

	return matched
}

// openBlocks opens new containers from the line's remaining markers and
// dispatches the leaf content.
func (p *blockParser) openBlocks(cur *lineCursor, lines []line, i int) int {
	// indent counts columns consumed since the last container marker;
	// an opening fence strips that many columns from its content lines.
	indent := 0

	for {
		if len(p.containers) >= maxContainerDepth {
			p.diagnoseDepth(cur.pos())
			break
		}

		// Up to three columns of indent do not change the block type.
		if cur.peekKind() == TokWhitespace {
			if cur.wsWidth() >= 4 {
				return p.leafLine(cur, lines, i)
			}
			indent = cur.wsWidth()
			cur.consumeAllWs()
			continue
		}

		switch cur.peekKind() {
		case TokBlockquoteMarker:
			if !p.feats.Enabled(feature.Blockquote) {
				return p.leafLine(cur, lines, i)
			}
			p.closePara()
			node := mdtree.NewNode(mdtree.NodeBlockquote)
			node.Span.Start = cur.pos()
			p.appendBlock(node)
			p.push(&container{node: node})
			cur.consumeToken()
			cur.consumeCols(1)
			cur.col = 0
			indent = 0
			continue

		case TokListBullet, TokListNumber:
			if !p.openListMarker(cur) {
				return p.leafLine(cur, lines, i)
			}
			indent = 0
			continue

		case TokFootnoteLabel:
			if !p.feats.Enabled(feature.Footnote) {
				return p.leafLine(cur, lines, i)
			}
			p.closePara()
			tok := cur.consumeToken()
			label := string(p.src[tok.Start+2 : tok.End-2])
			node := mdtree.NewNode(mdtree.NodeFootnoteDefinition)
			node.Span.Start = tok.Start
			node.Block = &mdtree.BlockAttrs{Footnote: &mdtree.FootnoteAttrs{Label: label}}
			p.appendBlock(node)
			p.push(&container{node: node, contIndent: 4})
			cur.consumeAllWs()
			cur.col = 0
			indent = 0
			continue

		case TokHeadingMarker:
			if !p.feats.Enabled(feature.Heading) {
				return p.leafLine(cur, lines, i)
			}
			p.heading(cur)
			return i

		case TokCodeFence:
			if !p.feats.Enabled(feature.FencedCode) {
				return p.leafLine(cur, lines, i)
			}
			p.openFence(cur, indent)
			return i

		case TokThematicBreak:
			if !p.feats.Enabled(feature.HorizontalRule) {
				return p.leafLine(cur, lines, i)
			}
			p.closePara()
			tok := cur.consumeToken()
			node := mdtree.NewNode(mdtree.NodeHorizontalRule)
			node.Span = mdtree.SourceRange{Start: tok.Start, End: tok.End}
			p.appendBlock(node)
			return i

		case TokSetextUnderline:
			if p.setextHeading(cur) {
				return i
			}
			return p.leafLine(cur, lines, i)

		case TokDefColon:
			if p.feats.Enabled(feature.DefinitionList) && p.definitionLine(cur) {
				return i
			}
			return p.leafLine(cur, lines, i)

		default:
			return p.leafLine(cur, lines, i)
		}
	}

	return p.leafLine(cur, lines, i)
}

// openListMarker opens (or continues) a list for a bullet or number
// marker at the cursor. Returns false when the relevant list feature is
// disabled, leaving the marker for literal text.
func (p *blockParser) openListMarker(cur *lineCursor) bool {
	tok := cur.peekToken()
	ordered := tok.Kind == TokListNumber

	if ordered && !p.feats.Enabled(feature.OrderedList) {
		return false
	}
	if !ordered && !p.feats.Enabled(feature.UnorderedList) {
		return false
	}

	markerCol := cur.col
	cur.consumeToken()
	cur.consumeCols(1)

	marker := p.src[tok.Start]
	delim := p.src[tok.End-1]

	p.closePara()

	list := p.openList()
	if list != nil {
		attrs := list.node.Block.List
		sameKind := attrs.Ordered == ordered &&
			(ordered && attrs.Delimiter == delim || !ordered && attrs.BulletMarker == marker)
		if !sameKind {
			p.closeToDepth(p.depthOf(list))
			list = nil
		}
	}

	if list == nil {
		node := mdtree.NewNode(mdtree.NodeList)
		node.Span.Start = tok.Start
		attrs := &mdtree.ListAttrs{Ordered: ordered}
		if ordered {
			attrs.Delimiter = delim
			attrs.Start = 1
			if n, err := strconv.Atoi(string(p.src[tok.Start : tok.End-1])); err == nil {
				attrs.Start = n
			}
		} else {
			attrs.BulletMarker = marker
		}
		node.Block = &mdtree.BlockAttrs{List: attrs}
		p.appendBlock(node)
		list = &container{node: node}
		p.push(list)
	} else {
		// New item in an existing list: close the previous item.
		p.closeToDepth(p.depthOf(list) + 1)
		if p.blankPending {
			list.loose = true
		}
	}
	p.blankPending = false

	item := mdtree.NewNode(mdtree.NodeListItem)
	item.Span.Start = tok.Start
	item.Block = &mdtree.BlockAttrs{ListItem: &mdtree.ListItemAttrs{}}
	mdtree.AppendChild(list.node, item)
	p.push(&container{node: item, contIndent: markerCol + tok.Len() + 1})

	p.taskMarker(cur, item)

	// Reset the indent origin for anything nested in this item.
	cur.col = 0
	return true
}

// taskMarker consumes a leading [ ] / [x] checkbox on a list item.
func (p *blockParser) taskMarker(cur *lineCursor, item *mdtree.Node) {
	if !p.feats.Enabled(feature.TaskList) {
		return
	}

	rest := p.src[cur.pos():cur.lineEnd()]
	if len(rest) < 4 || rest[0] != '[' || rest[2] != ']' || rest[3] != ' ' {
		return
	}

	switch rest[1] {
	case ' ':
		item.Block.ListItem.Task = mdtree.TaskUnchecked
	case 'x', 'X':
		item.Block.ListItem.Task = mdtree.TaskChecked
	default:
		return
	}

	cur.skipBytes(4)
}

// openList returns the list at the top of the stack, or nil. A sibling
// marker always arrives with the previous item already closed; a marker
// while an item is still open starts a nested list instead.
func (p *blockParser) openList() *container {
	if top := p.top(); top.node.Kind == mdtree.NodeList {
		return top
	}
	return nil
}

// openListItem returns the innermost open list item, or nil.
func (p *blockParser) openListItem() *container {
	for i := len(p.containers) - 1; i > 0; i-- {
		if p.containers[i].node.Kind == mdtree.NodeListItem {
			return p.containers[i]
		}
	}
	return nil
}

func (p *blockParser) depthOf(c *container) int {
	for i, cand := range p.containers {
		if cand == c {
			return i
		}
	}
	return len(p.containers)
}

// heading parses an ATX heading leaf at the cursor.
func (p *blockParser) heading(cur *lineCursor) {
	p.closePara()

	tok := cur.consumeToken()
	level := tok.Len()
	cur.consumeAllWs()

	span := mdtree.SourceRange{Start: cur.pos(), End: cur.lineEnd()}
	span = trimSpan(p.src, span)
	span = trimClosingHashes(p.src, span)

	attrs := &mdtree.HeadingAttrs{Level: level}
	if p.feats.Enabled(feature.HeadingID) {
		span = extractHeadingID(p.src, span, attrs)
	}

	node := mdtree.NewNode(mdtree.NodeHeading)
	node.Span = mdtree.SourceRange{Start: tok.Start, End: span.End}
	if span.End < tok.Start {
		node.Span.End = tok.End
	}
	node.Block = &mdtree.BlockAttrs{Heading: attrs}
	p.appendBlock(node)
	p.pend = append(p.pend, pendingInline{node: node, segs: []inlineSeg{{span: span}}})
}

// setextHeading converts the open paragraph into a heading when the
// current token is its underline. Returns false when there is no open
// paragraph to convert.
func (p *blockParser) setextHeading(cur *lineCursor) bool {
	if !p.feats.Enabled(feature.Heading) {
		return false
	}
	if p.para == nil || len(p.para.segs) == 0 || p.para.node.Parent != p.top().node {
		return false
	}

	tok := cur.consumeToken()
	level := 1
	if p.src[tok.Start] == '-' {
		level = 2
	}

	node := p.para.node
	node.Kind = mdtree.NodeHeading
	node.Span.End = tok.End
	node.Block = &mdtree.BlockAttrs{Heading: &mdtree.HeadingAttrs{Level: level}}
	p.pend = append(p.pend, pendingInline{node: node, segs: p.para.segs})
	p.para = nil
	return true
}

// definitionLine turns the open paragraph into a definition list and
// appends one details entry, or extends the preceding definition list.
func (p *blockParser) definitionLine(cur *lineCursor) bool {
	parent := p.top().node

	var dl *mdtree.Node
	switch {
	case p.para != nil && p.para.node.Parent == parent:
		dl = mdtree.NewNode(mdtree.NodeDefinitionList)
		dl.Span.Start = p.para.node.Span.Start
		mdtree.InsertBefore(p.para.node, dl)
		for _, seg := range p.para.segs {
			term := mdtree.NewNode(mdtree.NodeDefinitionTerm)
			term.Span = seg.span
			mdtree.AppendChild(dl, term)
			p.pend = append(p.pend, pendingInline{node: term, segs: []inlineSeg{{span: seg.span}}})
		}
		mdtree.RemoveChild(parent, p.para.node)
		p.para = nil
	case parent.LastChild != nil && parent.LastChild.Kind == mdtree.NodeDefinitionList:
		dl = parent.LastChild
	default:
		return false
	}

	cur.consumeToken()
	cur.consumeAllWs()

	span := trimSpan(p.src, mdtree.SourceRange{Start: cur.pos(), End: cur.lineEnd()})
	details := mdtree.NewNode(mdtree.NodeDefinitionDetails)
	details.Span = span
	mdtree.AppendChild(dl, details)
	p.pend = append(p.pend, pendingInline{node: details, segs: []inlineSeg{{span: span}}})
	return true
}

// openFence opens a fenced code block at the cursor. indent is the
// column count between the enclosing container and the fence, stripped
// again from content lines.
func (p *blockParser) openFence(cur *lineCursor, indent int) {
	p.closePara()

	tok := cur.consumeToken()

	node := mdtree.NewNode(mdtree.NodeCodeBlock)
	node.Span.Start = tok.Start
	attrs := &mdtree.CodeBlockAttrs{
		Fenced:      true,
		FenceChar:   p.src[tok.Start],
		FenceLength: tok.Len(),
	}
	node.Block = &mdtree.BlockAttrs{CodeBlock: attrs}

	if cur.peekKind() == TokCodeFenceInfo {
		info := cur.consumeToken()
		attrs.Info = strings.TrimSpace(string(p.src[info.Start:info.End]))
		if attrs.Info != "" {
			attrs.Language = strings.Fields(attrs.Info)[0]
		}
	}

	p.appendBlock(node)
	p.fence = &fenceState{
		node:   node,
		char:   attrs.FenceChar,
		length: attrs.FenceLength,
		indent: indent,
		depth:  len(p.containers),
	}
}

// fenceLine handles one line while a fence is open: either the closing
// fence or verbatim content.
func (p *blockParser) fenceLine(cur *lineCursor, ln line) {
	raw := p.src[cur.pos():ln.end]

	if isClosingFence(raw, p.fence.char, p.fence.length) {
		p.fence.node.Span.End = ln.end
		p.fence.node.Block.CodeBlock.Literal = p.fence.buf.String()
		p.fence = nil
		return
	}

	// Strip up to the opening fence's indent from content lines.
	strip := p.fence.indent
	for strip > 0 && len(raw) > 0 && raw[0] == ' ' {
		raw = raw[1:]
		strip--
	}

	p.fence.buf.Write(raw)
	p.fence.buf.WriteByte('\n')
	p.fence.anyLines = true
	p.fence.node.Span.End = ln.end
}

// closeFence finalizes an open fence that never saw its closing line.
func (p *blockParser) closeFence() {
	if p.fence == nil {
		return
	}

	p.fence.node.Block.CodeBlock.Literal = p.fence.buf.String()
	p.doc.Diagnostics = append(p.doc.Diagnostics, mdtree.Diagnostic{
		Kind:    mdtree.DiagUnterminatedFence,
		Message: "code fence closed implicitly at end of block",
		Span:    p.fence.node.Span,
	})
	p.fence = nil
}

// codeLine appends one line to an open indented code block, opening it
// first if needed.
func (p *blockParser) codeLine(cur *lineCursor, ln line) {
	if p.code == nil {
		node := mdtree.NewNode(mdtree.NodeCodeBlock)
		node.Span.Start = cur.pos()
		node.Block = &mdtree.BlockAttrs{CodeBlock: &mdtree.CodeBlockAttrs{}}
		p.appendBlock(node)
		p.code = &codeState{node: node, depth: len(p.containers)}
	}

	for range p.code.pendingBlanks {
		p.code.buf.WriteByte('\n')
	}
	p.code.pendingBlanks = 0

	p.code.buf.Write(p.src[cur.pos():ln.end])
	p.code.buf.WriteByte('\n')
	p.code.node.Span.End = ln.end
}

func (p *blockParser) closeCode() {
	if p.code == nil {
		return
	}
	p.code.node.Block.CodeBlock.Literal = p.code.buf.String()
	p.code = nil
}

// leafLine handles plain leaf content: tables, indented code, link
// reference definitions, and paragraph text.
func (p *blockParser) leafLine(cur *lineCursor, lines []line, i int) int {
	// Indented code opens only outside a paragraph.
	if p.para == nil && p.feats.Enabled(feature.Code) && cur.wsWidth() >= 4 {
		cur.consumeCols(4)
		p.codeLine(cur, lines[i])
		return i
	}

	cur.consumeAllWs()
	span := trimSpan(p.src, mdtree.SourceRange{Start: cur.pos(), End: cur.lineEnd()})
	if span.IsEmpty() {
		return i
	}

	if p.para == nil && p.feats.Enabled(feature.Link) {
		if p.tryLinkRefDef(span) {
			return i
		}
	}

	if p.feats.Enabled(feature.Table) && lineHasPipe(cur) {
		if consumed, ok := p.tryTable(cur, lines, i); ok {
			return consumed
		}
	}

	p.paraLine(cur, lines[i])
	return i
}

// paraLine appends one segment to the open paragraph, opening one first
// if needed.
func (p *blockParser) paraLine(cur *lineCursor, ln line) {
	if p.para == nil || p.para.node.Parent != p.top().node {
		p.closePara()
		node := mdtree.NewNode(mdtree.NodeParagraph)
		node.Span.Start = cur.pos()
		p.appendBlock(node)
		p.para = &paraState{node: node}
	}
	p.blankPending = false

	seg := inlineSeg{span: mdtree.SourceRange{Start: cur.pos(), End: ln.end}}

	// Hard breaks: two trailing spaces or a trailing backslash.
	raw := p.src[seg.span.Start:seg.span.End]
	trimmed := bytes.TrimRight(raw, " \t")
	if len(raw)-len(trimmed) >= 2 {
		seg.hard = true
	}
	if len(trimmed) > 0 && trimmed[len(trimmed)-1] == '\\' && !endsWithEscapedBackslash(trimmed) {
		seg.hard = true
		trimmed = trimmed[:len(trimmed)-1]
	}
	seg.span.End = seg.span.Start + len(trimmed)

	p.para.node.Span.End = seg.span.End
	p.para.segs = append(p.para.segs, seg)
}

// endsWithEscapedBackslash reports whether the trailing backslash is
// itself escaped (an even-length run counts as literal backslashes).
func endsWithEscapedBackslash(raw []byte) bool {
	run := 0
	for i := len(raw) - 1; i >= 0 && raw[i] == '\\'; i-- {
		run++
	}
	return run%2 == 0
}

func (p *blockParser) closePara() {
	if p.para == nil {
		return
	}
	p.pend = append(p.pend, pendingInline{node: p.para.node, segs: p.para.segs})
	p.para = nil
}

// tryLinkRefDef collects a `[label]: destination "title"` line.
func (p *blockParser) tryLinkRefDef(span mdtree.SourceRange) bool {
	raw := string(span.Text(p.src))
	label, rest, ok := splitRefLabel(raw)
	if !ok {
		return false
	}

	dest, title, ok := splitRefTarget(rest)
	if !ok {
		return false
	}

	key := normalizeLabel(label)
	if _, exists := p.refs[key]; !exists {
		p.refs[key] = linkRef{dest: dest, title: title}
	}
	return true
}

func splitRefLabel(raw string) (label, rest string, ok bool) {
	if len(raw) < 4 || raw[0] != '[' {
		return "", "", false
	}
	close := strings.IndexByte(raw, ']')
	if close < 1 || close+1 >= len(raw) || raw[close+1] != ':' {
		return "", "", false
	}
	label = raw[1:close]
	if strings.ContainsAny(label, "[]") || strings.TrimSpace(label) == "" {
		return "", "", false
	}
	return label, strings.TrimSpace(raw[close+2:]), true
}

func splitRefTarget(rest string) (dest, title string, ok bool) {
	if rest == "" {
		return "", "", false
	}

	fields := strings.SplitN(rest, " ", 2)
	dest = strings.Trim(fields[0], "<>")
	if dest == "" {
		return "", "", false
	}

	if len(fields) == 2 {
		t := strings.TrimSpace(fields[1])
		if len(t) >= 2 && (t[0] == '"' && t[len(t)-1] == '"' ||
			t[0] == '\'' && t[len(t)-1] == '\'') {
			title = t[1 : len(t)-1]
		} else if t != "" {
			return "", "", false
		}
	}

	return dest, title, true
}

func normalizeLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}

// lineHasPipe reports whether the line's unconsumed tokens contain a
// table pipe.
func lineHasPipe(cur *lineCursor) bool {
	for i := cur.ti; i < len(cur.toks); i++ {
		if cur.toks[i].Kind == TokPipe {
			return true
		}
	}
	return false
}

// tryTable attempts to parse a table whose header row is the current
// line. Returns the last consumed line index on success.
func (p *blockParser) tryTable(cur *lineCursor, lines []line, i int) (int, bool) {
	if i+1 >= len(lines) {
		return i, false
	}

	sepCur := newLineCursor(p.src, lines[i+1])
	if p.matchPeek(sepCur, lines[i+1].blank) != len(p.containers) {
		return i, false
	}

	header := splitTableRow(p.src, cur)
	if len(header) == 0 {
		return i, false
	}

	aligns, ok := parseSeparatorRow(p.src, sepCur)
	if !ok {
		return i, false
	}
	if len(aligns) != len(header) {
		p.doc.Diagnostics = append(p.doc.Diagnostics, mdtree.Diagnostic{
			Kind: mdtree.DiagMalformedTable,
			Message: fmt.Sprintf("table separator has %d columns, header has %d; parsed as paragraph",
				len(aligns), len(header)),
			Span: mdtree.SourceRange{Start: lines[i].start, End: lines[i+1].end},
		})
		return i, false
	}

	p.closePara()

	table := mdtree.NewNode(mdtree.NodeTable)
	table.Span = mdtree.SourceRange{Start: cur.pos(), End: lines[i+1].end}
	table.Block = &mdtree.BlockAttrs{Table: &mdtree.TableAttrs{Alignments: aligns}}
	p.appendBlock(table)

	p.tableRow(table, header, aligns, true)

	last := i + 1
	for next := i + 2; next < len(lines); next++ {
		ln := lines[next]
		if ln.blank {
			break
		}
		rowCur := newLineCursor(p.src, ln)
		if p.matchPeek(rowCur, false) != len(p.containers) {
			break
		}
		if !lineHasPipe(rowCur) {
			break
		}
		cells := splitTableRow(p.src, rowCur)

		// Short rows pad with empty cells, long rows truncate.
		if len(cells) > len(aligns) {
			cells = cells[:len(aligns)]
		}
		for len(cells) < len(aligns) {
			cells = append(cells, mdtree.SourceRange{})
		}

		p.tableRow(table, cells, aligns, false)
		table.Span.End = ln.end
		last = next
	}

	return last, true
}

// matchPeek runs container matching on a scratch cursor without
// mutating parser state.
func (p *blockParser) matchPeek(cur *lineCursor, blank bool) int {
	return p.matchPrefix(cur, blank)
}

func (p *blockParser) tableRow(table *mdtree.Node, cells []mdtree.SourceRange, aligns []mdtree.Alignment, header bool) {
	row := mdtree.NewNode(mdtree.NodeTableRow)
	mdtree.AppendChild(table, row)

	for col, span := range cells {
		cell := mdtree.NewNode(mdtree.NodeTableCell)
		cell.Span = span
		cell.Block = &mdtree.BlockAttrs{TableCell: &mdtree.TableCellAttrs{
			Alignment: aligns[col],
			Header:    header,
		}}
		mdtree.AppendChild(row, cell)
		if !span.IsEmpty() {
			p.pend = append(p.pend, pendingInline{node: cell, segs: []inlineSeg{{span: span}}})
		}
		if !span.IsEmpty() {
			row.Span.End = span.End
			if row.Span.Start == 0 || row.Span.Start > span.Start {
				if row.FirstChild == cell {
					row.Span.Start = span.Start
				}
			}
		}
	}
}

// splitTableRow splits the cursor's remaining tokens into cell spans at
// unescaped pipes. Boundary pipes are dropped.
func splitTableRow(src []byte, cur *lineCursor) []mdtree.SourceRange {
	var cells []mdtree.SourceRange
	cellStart := -1
	cellEnd := -1
	sawPipe := false
	leading := true

	flush := func() {
		if cellStart < 0 {
			cells = append(cells, mdtree.SourceRange{})
			return
		}
		cells = append(cells, trimSpan(src, mdtree.SourceRange{Start: cellStart, End: cellEnd}))
		cellStart, cellEnd = -1, -1
	}

	for j := cur.ti; j < len(cur.toks); j++ {
		tok := cur.toks[j]
		if tok.Kind == TokPipe {
			if leading && cellStart < 0 {
				// Leading pipe opens the row; no empty first cell.
				leading = false
				sawPipe = true
				continue
			}
			flush()
			sawPipe = true
			leading = false
			continue
		}
		leading = false
		if cellStart < 0 {
			cellStart = tok.Start
		}
		cellEnd = tok.End
	}

	if !sawPipe {
		return nil
	}

	// Trailing content after the last pipe is a final cell; a trailing
	// pipe just closes the row.
	if cellStart >= 0 {
		flush()
	}

	return cells
}

// parseSeparatorRow validates an alignment separator row and returns the
// column alignments.
func parseSeparatorRow(src []byte, cur *lineCursor) ([]mdtree.Alignment, bool) {
	cells := splitTableRow(src, cur)
	if len(cells) == 0 {
		return nil, false
	}

	aligns := make([]mdtree.Alignment, 0, len(cells))
	for _, span := range cells {
		raw := strings.TrimSpace(string(span.Text(src)))
		if raw == "" {
			return nil, false
		}

		left := strings.HasPrefix(raw, ":")
		right := strings.HasSuffix(raw, ":")
		dashes := strings.Trim(raw, ":")
		if dashes == "" || strings.Count(dashes, "-") != len(dashes) {
			return nil, false
		}

		switch {
		case left && right:
			aligns = append(aligns, mdtree.AlignCenter)
		case left:
			aligns = append(aligns, mdtree.AlignLeft)
		case right:
			aligns = append(aligns, mdtree.AlignRight)
		default:
			aligns = append(aligns, mdtree.AlignNone)
		}
	}

	return aligns, true
}

func (p *blockParser) diagnoseDepth(pos int) {
	if p.depthDiagnosed {
		return
	}
	p.depthDiagnosed = true
	p.doc.Diagnostics = append(p.doc.Diagnostics, mdtree.Diagnostic{
		Kind:    mdtree.DiagDepthExceeded,
		Message: fmt.Sprintf("container nesting exceeds %d levels; deeper markers kept as text", maxContainerDepth),
		Span:    mdtree.SourceRange{Start: pos, End: pos},
	})
}

func (p *blockParser) top() *container {
	return p.containers[len(p.containers)-1]
}

func (p *blockParser) push(c *container) {
	p.containers = append(p.containers, c)
}

func (p *blockParser) appendBlock(node *mdtree.Node) {
	mdtree.AppendChild(p.top().node, node)
}

// closeToDepth closes containers until only depth remain, finalizing
// any open leaves that live inside them.
func (p *blockParser) closeToDepth(depth int) {
	if depth < 1 {
		depth = 1
	}
	if depth >= len(p.containers) {
		return
	}

	p.closePara()

	for len(p.containers) > depth {
		if p.fence != nil && p.fence.depth == len(p.containers) {
			p.closeFence()
		}
		if p.code != nil && p.code.depth == len(p.containers) {
			p.closeCode()
		}

		c := p.top()
		if c.node.Kind == mdtree.NodeList {
			c.node.Block.List.Tight = !c.loose
		}
		p.containers = p.containers[:len(p.containers)-1]
	}

	if p.fence != nil && p.fence.depth > len(p.containers) {
		p.closeFence()
	}
	if p.code != nil && p.code.depth > len(p.containers) {
		p.closeCode()
	}
}

// finishSpans widens container spans to cover their children.
func (p *blockParser) finishSpans(node *mdtree.Node) {
	for child := node.FirstChild; child != nil; child = child.Next {
		p.finishSpans(child)
		if child.Span.IsEmpty() {
			continue
		}
		if node.Span.Start == 0 && node.Span.End == 0 || node.Span.Start > child.Span.Start {
			if node.FirstChild == child || node.Span.End == 0 {
				node.Span.Start = child.Span.Start
			}
		}
		if child.Span.End > node.Span.End {
			node.Span.End = child.Span.End
		}
	}
}

// trimSpan trims leading and trailing whitespace from a span.
func trimSpan(src []byte, span mdtree.SourceRange) mdtree.SourceRange {
	for span.Start < span.End && (src[span.Start] == ' ' || src[span.Start] == '\t') {
		span.Start++
	}
	for span.End > span.Start && (src[span.End-1] == ' ' || src[span.End-1] == '\t') {
		span.End--
	}
	return span
}

// trimClosingHashes strips an ATX closing sequence (` ###`) from a
// heading span.
func trimClosingHashes(src []byte, span mdtree.SourceRange) mdtree.SourceRange {
	end := span.End
	for end > span.Start && src[end-1] == '#' {
		end--
	}
	if end == span.End {
		return span
	}
	if end == span.Start {
		// The heading text is nothing but hashes; keep it.
		return span
	}
	if src[end-1] == ' ' || src[end-1] == '\t' {
		return trimSpan(src, mdtree.SourceRange{Start: span.Start, End: end})
	}
	return span
}

// extractHeadingID strips a trailing `{#id}` from a heading span.
func extractHeadingID(src []byte, span mdtree.SourceRange, attrs *mdtree.HeadingAttrs) mdtree.SourceRange {
	raw := span.Text(src)
	if len(raw) < 4 || raw[len(raw)-1] != '}' {
		return span
	}

	open := bytes.LastIndex(raw, []byte("{#"))
	if open < 0 {
		return span
	}

	id := string(raw[open+2 : len(raw)-1])
	if id == "" || strings.ContainsAny(id, " \t{}") {
		return span
	}

	attrs.ID = id
	attrs.Custom = true
	return trimSpan(src, mdtree.SourceRange{Start: span.Start, End: span.Start + open})
}

// isClosingFence reports whether a raw line closes a fence of the given
// character and minimum length.
func isClosingFence(raw []byte, char byte, length int) bool {
	pos := 0
	for pos < len(raw) && raw[pos] == ' ' && pos < 3 {
		pos++
	}

	count := 0
	for pos < len(raw) && raw[pos] == char {
		pos++
		count++
	}
	if count < length {
		return false
	}

	for pos < len(raw) {
		if raw[pos] != ' ' && raw[pos] != '\t' {
			return false
		}
		pos++
	}
	return true
}
