package export

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/mdtree/internal/ui/pretty"
	"github.com/yaklabco/mdtree/pkg/mdtree"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// maxLiteralLen bounds how much of a text literal the tree view shows.
const maxLiteralLen = 60

// TreeExporter renders a document as a styled tree for terminals.
type TreeExporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
}

// NewTreeExporter creates a new tree exporter.
func NewTreeExporter(opts Options) *TreeExporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TreeExporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  terminalWidth(opts.Writer),
	}
}

// Export implements Exporter.
func (e *TreeExporter) Export(_ context.Context, path string, doc *mdtree.Document) (err error) {
	bw := bufio.NewWriterSize(e.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if path != "" {
		fmt.Fprintln(bw, e.styles.FormatFileHeader(path, len(doc.Diagnostics)))
	}

	e.writeNode(bw, doc.Root, "", "")

	if e.opts.ShowDiagnostics && len(doc.Diagnostics) > 0 {
		fmt.Fprintln(bw)
		for _, diag := range doc.Diagnostics {
			fmt.Fprint(bw, e.styles.FormatDiagnostic(doc, path, diag, true))
		}
	}

	return nil
}

func (e *TreeExporter) writeNode(bw *bufio.Writer, n *mdtree.Node, selfPrefix, childPrefix string) {
	fmt.Fprintln(bw, e.styles.Branch.Render(selfPrefix)+e.describe(n))

	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Next != nil {
			e.writeNode(bw, child, childPrefix+"├── ", childPrefix+"│   ")
		} else {
			e.writeNode(bw, child, childPrefix+"└── ", childPrefix+"    ")
		}
	}
}

// describe renders one node's label: kind plus the attributes worth
// seeing at a glance.
func (e *TreeExporter) describe(n *mdtree.Node) string {
	label := e.styles.NodeKind.Render(n.Kind.String())

	if attrs := e.attrSummary(n); attrs != "" {
		label += " " + e.styles.Attr.Render(attrs)
	}
	if literal := nodeLiteral(n); literal != "" {
		limit := maxLiteralLen
		if e.width/2 < limit {
			limit = e.width / 2
		}
		label += " " + e.styles.Literal.Render(strconv.Quote(truncate(literal, limit)))
	}

	return label
}

//nolint:cyclop // One case per renderable node kind.
func (e *TreeExporter) attrSummary(n *mdtree.Node) string {
	switch n.Kind {
	case mdtree.NodeHeading:
		a := n.Block.Heading
		return fmt.Sprintf("level=%d id=%s", a.Level, a.ID)
	case mdtree.NodeList:
		a := n.Block.List
		parts := []string{}
		if a.Ordered {
			parts = append(parts, fmt.Sprintf("ordered start=%d", a.Start))
		} else {
			parts = append(parts, "unordered")
		}
		if a.Tight {
			parts = append(parts, "tight")
		}
		return strings.Join(parts, " ")
	case mdtree.NodeListItem:
		switch n.Block.ListItem.Task {
		case mdtree.TaskChecked:
			return "task=checked"
		case mdtree.TaskUnchecked:
			return "task=unchecked"
		default:
			return ""
		}
	case mdtree.NodeCodeBlock:
		a := n.Block.CodeBlock
		parts := []string{}
		if a.Fenced {
			parts = append(parts, "fenced")
		}
		if a.Language != "" {
			parts = append(parts, "lang="+a.Language)
		}
		return strings.Join(parts, " ")
	case mdtree.NodeTable:
		return fmt.Sprintf("columns=%d", len(n.Block.Table.Alignments))
	case mdtree.NodeTableCell:
		a := n.Block.TableCell
		if a.Header {
			return "header align=" + a.Alignment.String()
		}
		return "align=" + a.Alignment.String()
	case mdtree.NodeFootnoteDefinition:
		a := n.Block.Footnote
		return fmt.Sprintf("label=%s index=%d", a.Label, a.Index)
	case mdtree.NodeEmphasis:
		if n.Inline != nil && n.Inline.Strong {
			return "strong"
		}
		return ""
	case mdtree.NodeLink, mdtree.NodeImage:
		return "url=" + n.Inline.Link.Destination
	case mdtree.NodeEmoji:
		return ":" + n.Inline.Emoji.Shortcode + ": " + n.Inline.Emoji.Glyph
	case mdtree.NodeFootnoteReference:
		a := n.Inline.FootnoteRef
		return fmt.Sprintf("label=%s index=%d", a.Label, a.Index)
	default:
		return ""
	}
}

func nodeLiteral(n *mdtree.Node) string {
	switch n.Kind {
	case mdtree.NodeText, mdtree.NodeCodeSpan:
		return n.Inline.Text
	case mdtree.NodeCodeBlock:
		return n.Block.CodeBlock.Literal
	default:
		return ""
	}
}

func truncate(s string, limit int) string {
	if limit < 8 {
		limit = 8
	}
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}

// terminalWidth returns the width of the writer's terminal, or a
// default when the writer is not a terminal.
func terminalWidth(writer any) int {
	if f, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
