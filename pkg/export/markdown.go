package export

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/mdtree/pkg/mdtree"
)

// MarkdownExporter re-serializes a tree as canonical markdown. The
// output is normalized (ATX headings, `-` bullets, inline links), but
// reparsing it yields a structurally equal tree.
type MarkdownExporter struct {
	opts Options
}

// NewMarkdownExporter creates a new markdown exporter.
func NewMarkdownExporter(opts Options) *MarkdownExporter {
	return &MarkdownExporter{opts: opts}
}

// Export implements Exporter.
func (e *MarkdownExporter) Export(_ context.Context, _ string, doc *mdtree.Document) (err error) {
	bw := bufio.NewWriterSize(e.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	for _, line := range Render(doc) {
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}
	}
	return nil
}

// Render returns the canonical markdown lines for a document.
func Render(doc *mdtree.Document) []string {
	return renderBlocks(doc.Root, false)
}

// renderBlocks renders a container's block children, separated by
// blank lines unless tight is set.
func renderBlocks(parent *mdtree.Node, tight bool) []string {
	var out []string

	for child := parent.FirstChild; child != nil; child = child.Next {
		lines := renderBlock(child)
		if len(lines) == 0 {
			continue
		}
		if len(out) > 0 && !tight {
			out = append(out, "")
		}
		out = append(out, lines...)
	}

	return out
}

func renderBlock(n *mdtree.Node) []string {
	switch n.Kind {
	case mdtree.NodeParagraph:
		return guardLineStarts(inlineLines(n))

	case mdtree.NodeHeading:
		return []string{renderHeading(n)}

	case mdtree.NodeBlockquote:
		return prefixLines(renderBlocks(n, false), "> ")

	case mdtree.NodeList:
		return renderList(n)

	case mdtree.NodeCodeBlock:
		return renderCodeBlock(n)

	case mdtree.NodeHorizontalRule:
		return []string{"---"}

	case mdtree.NodeTable:
		return renderTable(n)

	case mdtree.NodeDefinitionList:
		return renderDefinitionList(n)

	case mdtree.NodeFootnoteDefinition:
		return renderFootnoteDefinition(n)

	default:
		// A block we don't know how to serialize renders as its
		// plain text.
		if text := n.PlainText(); text != "" {
			return []string{escapeInline(text)}
		}
		return nil
	}
}

func renderHeading(n *mdtree.Node) string {
	attrs := n.Block.Heading
	line := strings.Repeat("#", attrs.Level) + " " + strings.Join(inlineLines(n), " ")
	if attrs.Custom && attrs.ID != "" {
		line += " {#" + attrs.ID + "}"
	}
	return strings.TrimRight(line, " ")
}

func renderList(n *mdtree.Node) []string {
	attrs := n.Block.List
	var out []string

	number := attrs.Start
	for item := n.FirstChild; item != nil; item = item.Next {
		marker := "-"
		if attrs.Ordered {
			delim := attrs.Delimiter
			if delim == 0 {
				delim = '.'
			}
			marker = fmt.Sprintf("%d%c", number, delim)
			number++
		} else if attrs.BulletMarker != 0 {
			marker = string(attrs.BulletMarker)
		}

		if task := itemTask(item); task != "" {
			marker += " " + task
		}

		lines := renderItemContent(item, attrs.Tight)
		if len(lines) == 0 {
			lines = []string{""}
		}

		indent := strings.Repeat(" ", len(marker)+1)
		if len(out) > 0 && !attrs.Tight {
			out = append(out, "")
		}
		out = append(out, strings.TrimRight(marker+" "+lines[0], " "))
		for _, line := range lines[1:] {
			if line == "" {
				out = append(out, "")
				continue
			}
			out = append(out, indent+line)
		}
	}

	return out
}

func itemTask(item *mdtree.Node) string {
	if item.Block == nil || item.Block.ListItem == nil {
		return ""
	}
	switch item.Block.ListItem.Task {
	case mdtree.TaskUnchecked:
		return "[ ]"
	case mdtree.TaskChecked:
		return "[x]"
	default:
		return ""
	}
}

// renderItemContent renders a list item's children. Tight items carry
// inline content directly, possibly mixed with nested blocks.
func renderItemContent(item *mdtree.Node, tight bool) []string {
	var out []string

	child := item.FirstChild
	for child != nil {
		if child.IsInline() {
			lines, next := inlineSiblingLines(child)
			out = append(out, guardLineStarts(lines)...)
			child = next
			continue
		}

		lines := renderBlock(child)
		if len(out) > 0 && !tight {
			out = append(out, "")
		}
		out = append(out, lines...)
		child = child.Next
	}

	return out
}

// inlineSiblingLines renders the run of adjacent inline siblings
// starting at first, returning the lines and the first non-inline
// successor.
func inlineSiblingLines(first *mdtree.Node) ([]string, *mdtree.Node) {
	var lines []string
	var cur strings.Builder

	child := first
	for ; child != nil && child.IsInline(); child = child.Next {
		switch child.Kind {
		case mdtree.NodeSoftBreak:
			lines = append(lines, cur.String())
			cur.Reset()
		case mdtree.NodeHardBreak:
			lines = append(lines, cur.String()+"\\")
			cur.Reset()
		default:
			cur.WriteString(renderInline(child))
		}
	}

	return append(lines, cur.String()), child
}

func renderCodeBlock(n *mdtree.Node) []string {
	attrs := n.Block.CodeBlock
	literal := strings.TrimSuffix(attrs.Literal, "\n")

	var content []string
	if literal != "" {
		content = strings.Split(literal, "\n")
	}

	if !attrs.Fenced {
		return prefixLines(content, "    ")
	}

	char := attrs.FenceChar
	if char == 0 {
		char = '`'
	}
	length := attrs.FenceLength
	if length < 3 {
		length = 3
	}
	fence := strings.Repeat(string(char), length)

	out := []string{fence + attrs.Info}
	out = append(out, content...)
	out = append(out, fence)
	return out
}

func renderTable(n *mdtree.Node) []string {
	attrs := n.Block.Table
	var out []string

	for row := n.FirstChild; row != nil; row = row.Next {
		var cells []string
		for cell := row.FirstChild; cell != nil; cell = cell.Next {
			cells = append(cells, strings.Join(inlineLines(cell), " "))
		}
		out = append(out, "| "+strings.Join(cells, " | ")+" |")

		if row == n.FirstChild {
			var seps []string
			for _, align := range attrs.Alignments {
				seps = append(seps, separatorCell(align))
			}
			out = append(out, "| "+strings.Join(seps, " | ")+" |")
		}
	}

	return out
}

func separatorCell(align mdtree.Alignment) string {
	switch align {
	case mdtree.AlignLeft:
		return ":---"
	case mdtree.AlignCenter:
		return ":---:"
	case mdtree.AlignRight:
		return "---:"
	default:
		return "---"
	}
}

func renderDefinitionList(n *mdtree.Node) []string {
	var out []string
	for child := n.FirstChild; child != nil; child = child.Next {
		switch child.Kind {
		case mdtree.NodeDefinitionTerm:
			out = append(out, strings.Join(inlineLines(child), " "))
		case mdtree.NodeDefinitionDetails:
			out = append(out, ": "+strings.Join(inlineLines(child), " "))
		}
	}
	return out
}

func renderFootnoteDefinition(n *mdtree.Node) []string {
	label := n.Block.Footnote.Label
	body := renderBlocks(n, false)
	if len(body) == 0 {
		return []string{"[^" + label + "]:"}
	}

	out := []string{"[^" + label + "]: " + body[0]}
	for _, line := range body[1:] {
		if line == "" {
			out = append(out, "")
			continue
		}
		out = append(out, "    "+line)
	}
	return out
}

// inlineLines renders a node's inline children, splitting into lines
// at break nodes. Hard breaks end their line with a backslash.
func inlineLines(parent *mdtree.Node) []string {
	lines, _ := inlineSiblingLines(parent.FirstChild)
	return lines
}

func renderInline(n *mdtree.Node) string {
	switch n.Kind {
	case mdtree.NodeText:
		return escapeInline(n.Inline.Text)

	case mdtree.NodeEmphasis:
		delim := "*"
		if n.Inline != nil && n.Inline.Strong {
			delim = "**"
		}
		return delim + renderInlineChildren(n) + delim

	case mdtree.NodeStrikethrough:
		return "~~" + renderInlineChildren(n) + "~~"

	case mdtree.NodeHighlight:
		return "==" + renderInlineChildren(n) + "=="

	case mdtree.NodeSubscript:
		return "~" + renderInlineChildren(n) + "~"

	case mdtree.NodeSuperscript:
		return "^" + renderInlineChildren(n) + "^"

	case mdtree.NodeCodeSpan:
		return renderCodeSpan(n.Inline.Text)

	case mdtree.NodeLink:
		return "[" + renderInlineChildren(n) + "]" + linkTarget(n.Inline.Link)

	case mdtree.NodeImage:
		return "![" + renderInlineChildren(n) + "]" + linkTarget(n.Inline.Link)

	case mdtree.NodeEmoji:
		return ":" + n.Inline.Emoji.Shortcode + ":"

	case mdtree.NodeFootnoteReference:
		return "[^" + n.Inline.FootnoteRef.Label + "]"

	case mdtree.NodeSoftBreak:
		return " "

	case mdtree.NodeHardBreak:
		return " "

	default:
		return escapeInline(n.PlainText())
	}
}

func renderInlineChildren(n *mdtree.Node) string {
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.Next {
		b.WriteString(renderInline(child))
	}
	return b.String()
}

func renderCodeSpan(literal string) string {
	if !strings.Contains(literal, "`") {
		return "`" + literal + "`"
	}
	return "`` " + literal + " ``"
}

func linkTarget(attrs *mdtree.LinkAttrs) string {
	if attrs == nil {
		return "()"
	}
	if attrs.Title != "" {
		return "(" + attrs.Destination + ` "` + attrs.Title + `")`
	}
	return "(" + attrs.Destination + ")"
}

// inlineEscapes are characters with inline meaning that plain text
// must escape to survive a reparse.
const inlineEscapes = "\\`*_~^[]|<"

func escapeInline(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if strings.IndexByte(inlineEscapes, text[i]) >= 0 {
			b.WriteByte('\\')
		}
		// `==` runs read as highlight markers; break them up.
		if text[i] == '=' && i+1 < len(text) && text[i+1] == '=' {
			b.WriteByte('\\')
		}
		b.WriteByte(text[i])
	}
	return b.String()
}

// guardLineStarts escapes leading characters that would reparse as
// block markers.
func guardLineStarts(lines []string) []string {
	for i, line := range lines {
		lines[i] = guardLineStart(line)
	}
	return lines
}

func guardLineStart(line string) string {
	if line == "" {
		return line
	}

	switch line[0] {
	case '#', '>', '+':
		return "\\" + line
	case '-', '*':
		if len(line) > 1 && line[1] == ' ' {
			return "\\" + line
		}
		return line
	}

	// Ordered list markers: digits followed by '.' or ')' and space.
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(line) && (line[i] == '.' || line[i] == ')') && line[i+1] == ' ' {
		return line[:i] + "\\" + line[i:]
	}

	return line
}

func prefixLines(lines []string, prefix string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line == "" {
			out[i] = strings.TrimRight(prefix, " ")
			continue
		}
		out[i] = prefix + line
	}
	return out
}
