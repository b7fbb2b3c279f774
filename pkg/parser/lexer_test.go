package parser_test

import (
	"testing"

	"github.com/yaklabco/mdtree/pkg/parser"
)

func kinds(tokens []parser.Token) []parser.TokenKind {
	out := make([]parser.TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, got, want []parser.TokenKind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestTokenize_Empty(t *testing.T) {
	t.Parallel()

	if tokens := parser.Tokenize(nil); tokens != nil {
		t.Errorf("expected no tokens, got %v", tokens)
	}
}

func TestTokenize_Heading(t *testing.T) {
	t.Parallel()

	tokens := parser.Tokenize([]byte("## Title\n"))
	assertKinds(t, kinds(tokens), []parser.TokenKind{
		parser.TokHeadingMarker,
		parser.TokWhitespace,
		parser.TokText,
		parser.TokNewline,
	})

	if tokens[0].Len() != 2 {
		t.Errorf("marker length = %d, want 2", tokens[0].Len())
	}
	if got := string(tokens[2].Text([]byte("## Title\n"))); got != "Title" {
		t.Errorf("text = %q, want %q", got, "Title")
	}
}

func TestTokenize_HashesWithoutSpaceAreText(t *testing.T) {
	t.Parallel()

	tokens := parser.Tokenize([]byte("#hashtag\n"))
	assertKinds(t, kinds(tokens), []parser.TokenKind{
		parser.TokText,
		parser.TokNewline,
	})
}

func TestTokenize_ListMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []parser.TokenKind
	}{
		{
			name:  "bullet",
			input: "- item\n",
			want: []parser.TokenKind{
				parser.TokListBullet, parser.TokWhitespace,
				parser.TokText, parser.TokNewline,
			},
		},
		{
			name:  "ordered dot",
			input: "12. item\n",
			want: []parser.TokenKind{
				parser.TokListNumber, parser.TokWhitespace,
				parser.TokText, parser.TokNewline,
			},
		},
		{
			name:  "ordered paren",
			input: "3) item\n",
			want: []parser.TokenKind{
				parser.TokListNumber, parser.TokWhitespace,
				parser.TokText, parser.TokNewline,
			},
		},
		{
			name:  "dash without space is text",
			input: "-item\n",
			want:  []parser.TokenKind{parser.TokText, parser.TokNewline},
		},
		{
			name:  "number without delimiter is text",
			input: "12 items\n",
			want:  []parser.TokenKind{parser.TokText, parser.TokNewline},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertKinds(t, kinds(parser.Tokenize([]byte(tt.input))), tt.want)
		})
	}
}

func TestTokenize_Blockquote(t *testing.T) {
	t.Parallel()

	tokens := parser.Tokenize([]byte("> > nested\n"))
	assertKinds(t, kinds(tokens), []parser.TokenKind{
		parser.TokBlockquoteMarker, parser.TokWhitespace,
		parser.TokBlockquoteMarker, parser.TokWhitespace,
		parser.TokText, parser.TokNewline,
	})
}

func TestTokenize_ThematicBreak(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"---\n", "***\n", "___\n", "- - -\n"} {
		tokens := parser.Tokenize([]byte(input))
		assertKinds(t, kinds(tokens), []parser.TokenKind{
			parser.TokThematicBreak, parser.TokNewline,
		})
	}
}

func TestTokenize_CodeFence(t *testing.T) {
	t.Parallel()

	tokens := parser.Tokenize([]byte("```go\n"))
	assertKinds(t, kinds(tokens), []parser.TokenKind{
		parser.TokCodeFence, parser.TokCodeFenceInfo, parser.TokNewline,
	})

	tokens = parser.Tokenize([]byte("~~~\n"))
	assertKinds(t, kinds(tokens), []parser.TokenKind{
		parser.TokCodeFence, parser.TokNewline,
	})

	// Two backticks are not a fence.
	tokens = parser.Tokenize([]byte("``x\n"))
	assertKinds(t, kinds(tokens), []parser.TokenKind{
		parser.TokText, parser.TokNewline,
	})
}

func TestTokenize_SetextUnderline(t *testing.T) {
	t.Parallel()

	tokens := parser.Tokenize([]byte("====\n"))
	assertKinds(t, kinds(tokens), []parser.TokenKind{
		parser.TokSetextUnderline, parser.TokNewline,
	})

	// Two dashes underline; three are a thematic break.
	tokens = parser.Tokenize([]byte("--\n"))
	assertKinds(t, kinds(tokens), []parser.TokenKind{
		parser.TokSetextUnderline, parser.TokNewline,
	})
}

func TestTokenize_FootnoteLabel(t *testing.T) {
	t.Parallel()

	tokens := parser.Tokenize([]byte("[^note]: body\n"))
	assertKinds(t, kinds(tokens), []parser.TokenKind{
		parser.TokFootnoteLabel, parser.TokWhitespace,
		parser.TokText, parser.TokNewline,
	})

	// A plain bracketed line is just text.
	tokens = parser.Tokenize([]byte("[note]: body\n"))
	assertKinds(t, kinds(tokens), []parser.TokenKind{
		parser.TokText, parser.TokNewline,
	})
}

func TestTokenize_DefColon(t *testing.T) {
	t.Parallel()

	tokens := parser.Tokenize([]byte(": details here\n"))
	assertKinds(t, kinds(tokens), []parser.TokenKind{
		parser.TokDefColon, parser.TokWhitespace,
		parser.TokText, parser.TokNewline,
	})
}

func TestTokenize_Pipes(t *testing.T) {
	t.Parallel()

	tokens := parser.Tokenize([]byte("| a | b |\n"))
	assertKinds(t, kinds(tokens), []parser.TokenKind{
		parser.TokPipe, parser.TokText,
		parser.TokPipe, parser.TokText,
		parser.TokPipe, parser.TokNewline,
	})
}

func TestTokenize_CoversEveryByte(t *testing.T) {
	t.Parallel()

	source := []byte("# Title\n\n> quote\n- item\n    code\n| a | b |\n")
	tokens := parser.Tokenize(source)

	pos := 0
	for i, tok := range tokens {
		if tok.Start != pos {
			t.Fatalf("token %d starts at %d, expected %d (gap or overlap)", i, tok.Start, pos)
		}
		if tok.End < tok.Start {
			t.Fatalf("token %d has negative length", i)
		}
		pos = tok.End
	}
	if pos != len(source) {
		t.Errorf("tokens cover %d bytes, source has %d", pos, len(source))
	}
}

func TestScanInline_Delimiters(t *testing.T) {
	t.Parallel()

	source := []byte("**bold** `code` ~~x~~ ==y== ^2^")
	tokens := parser.ScanInline(source, 0, len(source))

	assertKinds(t, kinds(tokens), []parser.TokenKind{
		parser.TokEmphasisMarker, parser.TokText, parser.TokEmphasisMarker,
		parser.TokWhitespace,
		parser.TokBacktick, parser.TokText, parser.TokBacktick,
		parser.TokWhitespace,
		parser.TokTildeRun, parser.TokText, parser.TokTildeRun,
		parser.TokWhitespace,
		parser.TokEqualsRun, parser.TokText, parser.TokEqualsRun,
		parser.TokWhitespace,
		parser.TokCaretRun, parser.TokText, parser.TokCaretRun,
	})
}

func TestScanInline_LinksAndEscapes(t *testing.T) {
	t.Parallel()

	source := []byte(`![a](b) \* :x:`)
	tokens := parser.ScanInline(source, 0, len(source))

	assertKinds(t, kinds(tokens), []parser.TokenKind{
		parser.TokImageMarker, parser.TokLinkOpen, parser.TokText,
		parser.TokLinkClose, parser.TokParenOpen, parser.TokText,
		parser.TokParenClose,
		parser.TokWhitespace,
		parser.TokEscapedChar,
		parser.TokWhitespace,
		parser.TokColon, parser.TokText, parser.TokColon,
	})
}

func TestScanInline_SingleEqualsIsText(t *testing.T) {
	t.Parallel()

	source := []byte("a = b")
	tokens := parser.ScanInline(source, 0, len(source))
	assertKinds(t, kinds(tokens), []parser.TokenKind{
		parser.TokText, parser.TokWhitespace,
		parser.TokText, parser.TokWhitespace,
		parser.TokText,
	})
}

func TestScanInline_EmptyRange(t *testing.T) {
	t.Parallel()

	if tokens := parser.ScanInline([]byte("abc"), 2, 2); tokens != nil {
		t.Errorf("expected no tokens for empty range, got %v", tokens)
	}
}
