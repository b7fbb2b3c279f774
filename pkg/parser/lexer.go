package parser

// The lexer makes two kinds of passes over the source. Tokenize walks the
// whole document line by line and classifies block-level markers, leaving
// line remainders as coarse text runs. ScanInline re-scans one block's
// span on demand and classifies inline delimiters. Neither pass keeps
// state between calls, and unrecognized bytes always degrade to text.

type lexer struct {
	source []byte
	tokens []Token
	pos    int
}

// Tokenize performs the block-level pass over the source.
// The returned tokens are contiguous within each line and cover every
// byte of the input in order.
func Tokenize(source []byte) []Token {
	if len(source) == 0 {
		return nil
	}

	const initialCapacityDivisor = 4
	lex := &lexer{
		source: source,
		tokens: make([]Token, 0, len(source)/initialCapacityDivisor),
	}

	for lex.pos < len(lex.source) {
		lex.scanLine()
	}

	return lex.tokens
}

// scanLine tokenizes one line: leading containers and markers first,
// then the remainder as coarse text.
func (l *lexer) scanLine() {
	for {
		l.consumeIndentation()

		if l.pos >= len(l.source) {
			return
		}

		switch l.source[l.pos] {
		case '\n':
			l.consumeNewline()
			return
		case '>':
			l.emitSingle(TokBlockquoteMarker)
			l.consumeOptionalSpace()
			continue
		case '#':
			if l.tryHeadingMarker() {
				l.scanRemainder()
				return
			}
		case '-', '+', '*':
			if l.isThematicBreak(l.source[l.pos]) {
				l.consumeThematicBreak()
				return
			}
			if l.tryListBullet() {
				continue
			}
			if l.source[l.pos] == '-' && l.trySetextUnderline('-') {
				return
			}
		case '_':
			if l.isThematicBreak('_') {
				l.consumeThematicBreak()
				return
			}
		case '`', '~':
			if l.tryCodeFence() {
				return
			}
		case '=':
			if l.trySetextUnderline('=') {
				return
			}
		case '[':
			if l.tryFootnoteLabel() {
				l.scanRemainder()
				return
			}
		case ':':
			if l.tryDefColon() {
				l.scanRemainder()
				return
			}
		}

		if isDigit(l.source[l.pos]) && l.tryOrderedListMarker() {
			continue
		}

		l.scanRemainder()
		return
	}
}

// consumeIndentation consumes leading spaces and tabs.
func (l *lexer) consumeIndentation() {
	start := l.pos
	for l.pos < len(l.source) && (l.source[l.pos] == ' ' || l.source[l.pos] == '\t') {
		l.pos++
	}
	if l.pos > start {
		l.emit(TokWhitespace, start, l.pos)
	}
}

// consumeOptionalSpace consumes at most one space after a marker.
func (l *lexer) consumeOptionalSpace() {
	if l.pos < len(l.source) && l.source[l.pos] == ' ' {
		l.emit(TokWhitespace, l.pos, l.pos+1)
		l.pos++
	}
}

// tryHeadingMarker attempts an ATX heading marker (# through ######).
func (l *lexer) tryHeadingMarker() bool {
	start := l.pos
	count := 0

	for l.pos < len(l.source) && l.source[l.pos] == '#' && count < 7 {
		l.pos++
		count++
	}

	// 1-6 hashes followed by space, tab, or end of line.
	if count >= 1 && count <= 6 {
		if l.pos >= len(l.source) || l.source[l.pos] == ' ' || l.source[l.pos] == '\t' || l.source[l.pos] == '\n' {
			l.emit(TokHeadingMarker, start, l.pos)
			l.consumeOptionalSpace()
			return true
		}
	}

	l.pos = start
	return false
}

// tryListBullet attempts an unordered list bullet (-, +, * plus space).
func (l *lexer) tryListBullet() bool {
	start := l.pos
	l.pos++
	if l.pos < len(l.source) && (l.source[l.pos] == ' ' || l.source[l.pos] == '\t') {
		l.emit(TokListBullet, start, l.pos)
		l.emit(TokWhitespace, l.pos, l.pos+1)
		l.pos++
		return true
	}

	l.pos = start
	return false
}

// tryOrderedListMarker attempts an ordered list marker (1., 2), ...).
func (l *lexer) tryOrderedListMarker() bool {
	start := l.pos

	for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
		l.pos++
	}

	if l.pos >= len(l.source) {
		l.pos = start
		return false
	}

	delimiter := l.source[l.pos]
	if delimiter != '.' && delimiter != ')' {
		l.pos = start
		return false
	}
	l.pos++

	if l.pos >= len(l.source) || (l.source[l.pos] != ' ' && l.source[l.pos] != '\t') {
		l.pos = start
		return false
	}

	l.emit(TokListNumber, start, l.pos)
	l.emit(TokWhitespace, l.pos, l.pos+1)
	l.pos++
	return true
}

// isThematicBreak checks whether the rest of the line is a thematic
// break built from the given marker.
func (l *lexer) isThematicBreak(marker byte) bool {
	count := 0
	pos := l.pos

	for pos < len(l.source) && l.source[pos] != '\n' {
		ch := l.source[pos]
		if ch == marker {
			count++
		} else if ch != ' ' && ch != '\t' {
			return false
		}
		pos++
	}

	return count >= 3
}

// consumeThematicBreak consumes the rest of the line as a thematic break.
func (l *lexer) consumeThematicBreak() {
	start := l.pos
	for l.pos < len(l.source) && l.source[l.pos] != '\n' {
		l.pos++
	}
	l.emit(TokThematicBreak, start, l.pos)
	l.consumeNewline()
}

// tryCodeFence attempts an opening or closing fence line (``` or ~~~).
// Fence content is not consumed here; the block parser decides what the
// following lines mean.
func (l *lexer) tryCodeFence() bool {
	start := l.pos
	fenceChar := l.source[l.pos]
	count := 0

	for l.pos < len(l.source) && l.source[l.pos] == fenceChar {
		l.pos++
		count++
	}

	if count < 3 {
		l.pos = start
		return false
	}

	l.emit(TokCodeFence, start, l.pos)

	if l.pos < len(l.source) && l.source[l.pos] != '\n' {
		infoStart := l.pos
		for l.pos < len(l.source) && l.source[l.pos] != '\n' {
			l.pos++
		}
		l.emit(TokCodeFenceInfo, infoStart, l.pos)
	}

	l.consumeNewline()
	return true
}

// trySetextUnderline attempts a setext heading underline.
func (l *lexer) trySetextUnderline(char byte) bool {
	start := l.pos
	count := 0

	for l.pos < len(l.source) && l.source[l.pos] == char {
		l.pos++
		count++
	}

	if count < 1 {
		l.pos = start
		return false
	}

	for l.pos < len(l.source) && l.source[l.pos] != '\n' {
		if l.source[l.pos] != ' ' && l.source[l.pos] != '\t' {
			l.pos = start
			return false
		}
		l.pos++
	}

	l.emit(TokSetextUnderline, start, l.pos)
	l.consumeNewline()
	return true
}

// tryFootnoteLabel attempts a footnote definition label: [^label]:
func (l *lexer) tryFootnoteLabel() bool {
	start := l.pos
	pos := l.pos + 1

	if pos >= len(l.source) || l.source[pos] != '^' {
		return false
	}
	pos++

	labelStart := pos
	for pos < len(l.source) && l.source[pos] != ']' && l.source[pos] != '\n' && l.source[pos] != ' ' {
		pos++
	}

	if pos == labelStart || pos+1 >= len(l.source) || l.source[pos] != ']' || l.source[pos+1] != ':' {
		return false
	}

	l.pos = pos + 2
	l.emit(TokFootnoteLabel, start, l.pos)
	l.consumeOptionalSpace()
	return true
}

// tryDefColon attempts a definition-details marker: ':' plus space.
func (l *lexer) tryDefColon() bool {
	if l.pos+1 >= len(l.source) || (l.source[l.pos+1] != ' ' && l.source[l.pos+1] != '\t') {
		return false
	}

	l.emit(TokDefColon, l.pos, l.pos+1)
	l.pos++
	l.consumeOptionalSpace()
	return true
}

// scanRemainder tokenizes the rest of the line as coarse content: pipes
// and escapes are split out for table parsing, everything else is text.
func (l *lexer) scanRemainder() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]

		switch {
		case ch == '\n':
			l.consumeNewline()
			return
		case ch == '|':
			l.emitSingle(TokPipe)
		case ch == '\\':
			l.consumeEscape()
		default:
			l.consumeBlockText()
		}
	}
}

// consumeBlockText consumes a text run up to the next structural byte.
func (l *lexer) consumeBlockText() {
	start := l.pos
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch == '\n' || ch == '|' || ch == '\\' {
			break
		}
		l.pos++
	}
	if l.pos > start {
		l.emit(TokText, start, l.pos)
	}
}

// consumeEscape consumes a backslash escape, or a bare backslash as text.
func (l *lexer) consumeEscape() {
	start := l.pos
	l.pos++

	if l.pos < len(l.source) && isPunctuation(l.source[l.pos]) {
		l.pos++
		l.emit(TokEscapedChar, start, l.pos)
	} else {
		l.emit(TokText, start, l.pos)
	}
}

// consumeNewline consumes a single newline. The source is normalized, so
// only '\n' occurs.
func (l *lexer) consumeNewline() {
	if l.pos < len(l.source) && l.source[l.pos] == '\n' {
		l.emit(TokNewline, l.pos, l.pos+1)
		l.pos++
	}
}

func (l *lexer) emit(kind TokenKind, start, end int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Start: start, End: end})
}

func (l *lexer) emitSingle(kind TokenKind) {
	l.emit(kind, l.pos, l.pos+1)
	l.pos++
}

// ScanInline re-scans a block's span and classifies inline delimiters.
// It is called lazily, once per block, when inline content is resolved.
func ScanInline(source []byte, lo, hi int) []Token {
	if hi > len(source) {
		hi = len(source)
	}
	if lo >= hi {
		return nil
	}

	var tokens []Token
	pos := lo

	emit := func(kind TokenKind, start, end int) {
		tokens = append(tokens, Token{Kind: kind, Start: start, End: end})
	}

	run := func(ch byte) int {
		start := pos
		for pos < hi && source[pos] == ch {
			pos++
		}
		return pos - start
	}

	for pos < hi {
		ch := source[pos]
		start := pos

		switch ch {
		case '\\':
			pos++
			if pos < hi && isPunctuation(source[pos]) {
				pos++
				emit(TokEscapedChar, start, pos)
			} else {
				emit(TokText, start, pos)
			}
		case '`':
			run('`')
			emit(TokBacktick, start, pos)
		case '*', '_':
			run(ch)
			emit(TokEmphasisMarker, start, pos)
		case '~':
			run('~')
			emit(TokTildeRun, start, pos)
		case '^':
			run('^')
			emit(TokCaretRun, start, pos)
		case '=':
			if run('=') >= 2 {
				emit(TokEqualsRun, start, pos)
			} else {
				emit(TokText, start, pos)
			}
		case '[':
			pos++
			emit(TokLinkOpen, start, pos)
		case ']':
			pos++
			emit(TokLinkClose, start, pos)
		case '(':
			pos++
			emit(TokParenOpen, start, pos)
		case ')':
			pos++
			emit(TokParenClose, start, pos)
		case '!':
			pos++
			emit(TokImageMarker, start, pos)
		case ':':
			pos++
			emit(TokColon, start, pos)
		case '<':
			pos++
			emit(TokAngleOpen, start, pos)
		case '>':
			pos++
			emit(TokAngleClose, start, pos)
		case ' ', '\t':
			for pos < hi && (source[pos] == ' ' || source[pos] == '\t') {
				pos++
			}
			emit(TokWhitespace, start, pos)
		default:
			for pos < hi && !isInlineSpecial(source[pos]) {
				pos++
			}
			emit(TokText, start, pos)
		}
	}

	return tokens
}

func isInlineSpecial(ch byte) bool {
	switch ch {
	case '\\', '`', '*', '_', '~', '^', '=', '[', ']', '(', ')', '!', ':', '<', '>', ' ', '\t':
		return true
	default:
		return false
	}
}

// isDigit returns true if the byte is an ASCII digit.
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isPunctuation returns true if the byte is escapable ASCII punctuation.
func isPunctuation(b byte) bool {
	switch b {
	case '!', '"', '#', '$', '%', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '/',
		':', ';', '<', '=', '>', '?', '@', '[', '\\', ']', '^', '_', '`', '{', '|', '}', '~':
		return true
	default:
		return false
	}
}
