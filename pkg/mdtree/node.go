package mdtree

// NodeKind classifies the type of a node in the document tree.
type NodeKind uint16

// Node kinds form a closed set. Renderers switch over the kind; new syntax
// features add kinds here and nowhere else.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeBlockquote
	NodeList
	NodeListItem
	NodeCodeBlock
	NodeHorizontalRule
	NodeTable
	NodeTableRow
	NodeTableCell
	NodeDefinitionList
	NodeDefinitionTerm
	NodeDefinitionDetails
	NodeFootnoteDefinition

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrikethrough
	NodeHighlight
	NodeSubscript
	NodeSuperscript
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeEmoji
	NodeFootnoteReference
	NodeSoftBreak
	NodeHardBreak
)

// String returns the stable name of the node kind used in serialized trees.
func (k NodeKind) String() string {
	switch k {
	case NodeDocument:
		return "document"
	case NodeParagraph:
		return "paragraph"
	case NodeHeading:
		return "heading"
	case NodeBlockquote:
		return "blockquote"
	case NodeList:
		return "list"
	case NodeListItem:
		return "list-item"
	case NodeCodeBlock:
		return "code-block"
	case NodeHorizontalRule:
		return "horizontal-rule"
	case NodeTable:
		return "table"
	case NodeTableRow:
		return "table-row"
	case NodeTableCell:
		return "table-cell"
	case NodeDefinitionList:
		return "definition-list"
	case NodeDefinitionTerm:
		return "definition-term"
	case NodeDefinitionDetails:
		return "definition-details"
	case NodeFootnoteDefinition:
		return "footnote-definition"
	case NodeText:
		return "text"
	case NodeEmphasis:
		return "emphasis"
	case NodeStrikethrough:
		return "strikethrough"
	case NodeHighlight:
		return "highlight"
	case NodeSubscript:
		return "subscript"
	case NodeSuperscript:
		return "superscript"
	case NodeCodeSpan:
		return "code-span"
	case NodeLink:
		return "link"
	case NodeImage:
		return "image"
	case NodeEmoji:
		return "emoji"
	case NodeFootnoteReference:
		return "footnote-reference"
	case NodeSoftBreak:
		return "soft-break"
	case NodeHardBreak:
		return "hard-break"
	default:
		return "unknown"
	}
}

// Node represents a single node in the document tree.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Span is the byte range this node covers in the normalized source.
	// A zero span means the node is synthetic (e.g. padded table cells).
	Span SourceRange

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeParagraph, NodeHeading, NodeBlockquote, NodeList,
		NodeListItem, NodeCodeBlock, NodeHorizontalRule, NodeTable, NodeTableRow,
		NodeTableCell, NodeDefinitionList, NodeDefinitionTerm,
		NodeDefinitionDetails, NodeFootnoteDefinition:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeEmphasis, NodeStrikethrough, NodeHighlight,
		NodeSubscript, NodeSuperscript, NodeCodeSpan, NodeLink, NodeImage,
		NodeEmoji, NodeFootnoteReference, NodeSoftBreak, NodeHardBreak:
		return true
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// PlainText returns the concatenated literal text of this node's subtree.
// Code spans contribute their literal, emoji contribute their glyph, and
// breaks contribute a single space.
func (n *Node) PlainText() string {
	var out []byte
	//nolint:errcheck // the callback never fails
	Walk(n, func(child *Node) error {
		switch child.Kind {
		case NodeText, NodeCodeSpan:
			if child.Inline != nil {
				out = append(out, child.Inline.Text...)
			}
		case NodeEmoji:
			if child.Inline != nil && child.Inline.Emoji != nil {
				out = append(out, child.Inline.Emoji.Glyph...)
			}
		case NodeSoftBreak, NodeHardBreak:
			out = append(out, ' ')
		}
		return nil
	})
	return string(out)
}
