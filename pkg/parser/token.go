package parser

// TokenKind classifies a lexical unit in the markdown source.
type TokenKind uint16

// Token kinds. The block pass emits structural markers plus coarse text
// runs; the inline pass re-scans block spans and emits the delimiter
// kinds below the divider.
const (
	TokText TokenKind = iota
	TokWhitespace
	TokNewline

	// Block pass.
	TokHeadingMarker    // '#' through '######'
	TokSetextUnderline  // '====' / '----'
	TokListBullet       // '-', '+', '*'
	TokListNumber       // '1.', '2)', ...
	TokBlockquoteMarker // '>'
	TokCodeFence        // ``` or ~~~ run at line start
	TokCodeFenceInfo    // info string after an opening fence
	TokThematicBreak    // '---', '***', '___'
	TokFootnoteLabel    // '[^label]:' at line start
	TokDefColon         // ':' starting a definition-details line
	TokPipe             // '|' (table structure)

	// Inline pass.
	TokEmphasisMarker // runs of '*' or '_'
	TokTildeRun       // runs of '~'
	TokCaretRun       // runs of '^'
	TokEqualsRun      // runs of '==' or longer
	TokBacktick       // backtick runs
	TokLinkOpen       // '['
	TokLinkClose      // ']'
	TokParenOpen      // '('
	TokParenClose     // ')'
	TokImageMarker    // '!'
	TokColon          // ':' (emoji shortcode delimiter)
	TokAngleOpen      // '<' (autolink opener)
	TokAngleClose     // '>'
	TokEscapedChar    // '\' + punctuation
)

// Token is an immutable classified span of bytes in the source.
// Tokens are ephemeral: they exist only on the lexer-to-parser handoff
// and are never referenced from the finished tree.
type Token struct {
	// Kind classifies what this token represents.
	Kind TokenKind

	// Start is the byte index where this token begins (inclusive).
	Start int

	// End is the byte index where this token ends (exclusive).
	End int
}

// Text returns the source text of this token.
func (t Token) Text(source []byte) []byte {
	if t.Start < 0 || t.End > len(source) || t.Start > t.End {
		return nil
	}
	return source[t.Start:t.End]
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}
