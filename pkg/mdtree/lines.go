package mdtree

import "sort"

// LineInfo holds metadata for a single line in a document.
// The source is newline-normalized before parsing, so lines end in a
// single '\n' (or end-of-input for the last line).
type LineInfo struct {
	// Start is the byte index of the line start.
	Start int

	// ContentEnd is the byte index where the trailing newline begins.
	// Equals End for lines without a trailing newline.
	ContentEnd int

	// End is the byte index just after the newline (or end of input).
	End int
}

// BuildLines constructs line metadata from normalized source bytes.
func BuildLines(source []byte) []LineInfo {
	if len(source) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range source {
		if char == '\n' {
			lines = append(lines, LineInfo{
				Start:      lineStart,
				ContentEnd: idx,
				End:        idx + 1,
			})
			lineStart = idx + 1
		}
	}

	if lineStart < len(source) {
		lines = append(lines, LineInfo{
			Start:      lineStart,
			ContentEnd: len(source),
			End:        len(source),
		})
	}

	return lines
}

// LineAt converts a byte offset into 1-based line and column numbers.
// Column counts bytes. Returns (0, 0) if the offset is out of range.
func (d *Document) LineAt(offset int) (int, int) {
	if offset < 0 || len(d.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(d.Source) {
		lastLine := d.Lines[len(d.Lines)-1]
		return len(d.Lines), offset - lastLine.Start + 1
	}

	lineIdx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].End > offset
	})

	if lineIdx >= len(d.Lines) {
		lineIdx = len(d.Lines) - 1
	}

	info := d.Lines[lineIdx]
	if offset < info.Start {
		return 0, 0
	}

	return lineIdx + 1, offset - info.Start + 1
}

// PositionFor converts a source range into line/column positions.
func (d *Document) PositionFor(r SourceRange) SourcePosition {
	startLine, startCol := d.LineAt(r.Start)
	endLine, endCol := d.LineAt(r.End)

	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}
