// Package mdtree defines the typed node tree a markdown parse produces.
// The tree is the contract between the parser and an external rendering
// engine: every node carries its variant tag, ordered children, and
// kind-specific attributes, and the whole tree serializes to JSON.
//
// A Document is built once per parse and is not mutated afterwards.
package mdtree

// Document is the root of a parsed markdown tree.
//
// Cross-references (footnote labels, heading IDs) go through the side
// tables rather than node-to-node pointers, keeping the tree acyclic.
type Document struct {
	// Source is the newline-normalized input all node spans index into.
	Source []byte

	// Lines is the line index for position lookups.
	Lines []LineInfo

	// Root is the tree root; Root.Kind is NodeDocument.
	Root *Node

	// HeadingIDs maps assigned heading ID to its heading node.
	HeadingIDs map[string]*Node

	// Footnotes maps footnote label to its definition node.
	Footnotes map[string]*Node

	// Diagnostics collects recoverable structural notes from the parse.
	Diagnostics []Diagnostic
}

// NewDocument creates an empty document shell for the given source.
// The parser fills in the root, side tables, and diagnostics.
func NewDocument(source []byte) *Document {
	return &Document{
		Source:     source,
		Lines:      BuildLines(source),
		Root:       NewNode(NodeDocument),
		HeadingIDs: make(map[string]*Node),
		Footnotes:  make(map[string]*Node),
	}
}

// Heading returns the heading node with the given ID, or nil.
func (d *Document) Heading(id string) *Node {
	return d.HeadingIDs[id]
}

// Footnote returns the footnote definition for the given label, or nil.
func (d *Document) Footnote(label string) *Node {
	return d.Footnotes[label]
}

// NodeText returns the source text a node's span covers.
func (d *Document) NodeText(n *Node) []byte {
	if n == nil {
		return nil
	}
	return n.Span.Text(d.Source)
}
