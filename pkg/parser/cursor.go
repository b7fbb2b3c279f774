package parser

// lineCursor walks one line's tokens during block parsing. Whitespace
// tokens can be consumed partially, a column at a time, so container
// indent requirements that land mid-token still work.
type lineCursor struct {
	src  []byte
	toks []Token
	end  int // content end of the line

	ti  int
	off int // bytes consumed of toks[ti]

	// col counts columns consumed since the current indent origin.
	// Container opens reset it.
	col int
}

type cursorMark struct {
	ti  int
	off int
	col int
}

func newLineCursor(src []byte, ln line) *lineCursor {
	return &lineCursor{src: src, toks: ln.toks, end: ln.end}
}

func (c *lineCursor) mark() cursorMark {
	return cursorMark{ti: c.ti, off: c.off, col: c.col}
}

func (c *lineCursor) reset(m cursorMark) {
	c.ti, c.off, c.col = m.ti, m.off, m.col
}

func (c *lineCursor) atEnd() bool {
	return c.ti >= len(c.toks)
}

// pos returns the byte offset of the next unconsumed byte.
func (c *lineCursor) pos() int {
	if c.atEnd() {
		return c.end
	}
	return c.toks[c.ti].Start + c.off
}

func (c *lineCursor) lineEnd() int {
	return c.end
}

func (c *lineCursor) peekKind() TokenKind {
	if c.atEnd() {
		return TokNewline
	}
	return c.toks[c.ti].Kind
}

func (c *lineCursor) peekToken() Token {
	return c.toks[c.ti]
}

// consumeToken consumes the current token whole and returns it.
func (c *lineCursor) consumeToken() Token {
	tok := c.toks[c.ti]
	c.col += colWidth(c.src, tok.Start+c.off, tok.End)
	c.ti++
	c.off = 0
	return tok
}

// wsWidth returns the column width of the run of whitespace tokens at
// the cursor, zero when the next token is not whitespace.
func (c *lineCursor) wsWidth() int {
	width := 0
	off := c.off
	for i := c.ti; i < len(c.toks) && c.toks[i].Kind == TokWhitespace; i++ {
		width += colWidth(c.src, c.toks[i].Start+off, c.toks[i].End)
		off = 0
	}
	return width
}

// consumeCols consumes up to n columns of whitespace. A tab that
// straddles the boundary is consumed whole.
func (c *lineCursor) consumeCols(n int) {
	for n > 0 && !c.atEnd() && c.toks[c.ti].Kind == TokWhitespace {
		tok := c.toks[c.ti]
		pos := tok.Start + c.off
		if pos >= tok.End {
			c.ti++
			c.off = 0
			continue
		}
		w := 1
		if c.src[pos] == '\t' {
			w = tabWidth
		}
		n -= w
		c.col += w
		c.off++
		if tok.Start+c.off >= tok.End {
			c.ti++
			c.off = 0
		}
	}
}

// consumeAllWs consumes every whitespace token at the cursor.
func (c *lineCursor) consumeAllWs() {
	for !c.atEnd() && c.toks[c.ti].Kind == TokWhitespace {
		c.consumeToken()
	}
}

// skipBytes advances n bytes through the current token.
func (c *lineCursor) skipBytes(n int) {
	for n > 0 && !c.atEnd() {
		tok := c.toks[c.ti]
		avail := tok.End - (tok.Start + c.off)
		if avail > n {
			c.off += n
			c.col += n
			return
		}
		n -= avail
		c.col += avail
		c.ti++
		c.off = 0
	}
}

// colWidth returns the column width of src[start:end] with tabs counted
// at a fixed width.
func colWidth(src []byte, start, end int) int {
	width := 0
	for i := start; i < end; i++ {
		if src[i] == '\t' {
			width += tabWidth
		} else {
			width++
		}
	}
	return width
}
