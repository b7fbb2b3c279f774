package mdtree

// StructuralEqual reports whether two subtrees have the same shape:
// kinds, kind-specific attributes, and children match pairwise.
// Spans are ignored, so trees parsed from re-serialized markdown can be
// compared against the original.
func StructuralEqual(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.Kind != b.Kind {
		return false
	}

	if !attrsEqual(a, b) {
		return false
	}

	ac, bc := a.FirstChild, b.FirstChild
	for ac != nil && bc != nil {
		if !StructuralEqual(ac, bc) {
			return false
		}
		ac, bc = ac.Next, bc.Next
	}

	return ac == nil && bc == nil
}

func attrsEqual(a, b *Node) bool {
	switch a.Kind {
	case NodeHeading:
		ha, hb := a.Block.Heading, b.Block.Heading
		return ha.Level == hb.Level && ha.ID == hb.ID
	case NodeList:
		la, lb := a.Block.List, b.Block.List
		return la.Ordered == lb.Ordered && la.Tight == lb.Tight &&
			(!la.Ordered || la.Start == lb.Start)
	case NodeListItem:
		return taskOf(a) == taskOf(b)
	case NodeCodeBlock:
		ca, cb := a.Block.CodeBlock, b.Block.CodeBlock
		return ca.Literal == cb.Literal && ca.Language == cb.Language &&
			ca.Fenced == cb.Fenced
	case NodeTable:
		aa, ab := a.Block.Table.Alignments, b.Block.Table.Alignments
		if len(aa) != len(ab) {
			return false
		}
		for i := range aa {
			if aa[i] != ab[i] {
				return false
			}
		}
		return true
	case NodeTableCell:
		ca, cb := a.Block.TableCell, b.Block.TableCell
		return ca.Alignment == cb.Alignment && ca.Header == cb.Header
	case NodeFootnoteDefinition:
		return a.Block.Footnote.Label == b.Block.Footnote.Label
	case NodeText, NodeCodeSpan:
		return a.Inline.Text == b.Inline.Text
	case NodeEmphasis:
		return a.Inline.Strong == b.Inline.Strong
	case NodeLink, NodeImage:
		la, lb := a.Inline.Link, b.Inline.Link
		return la.Destination == lb.Destination && la.Title == lb.Title &&
			la.Alt == lb.Alt
	case NodeEmoji:
		return a.Inline.Emoji.Shortcode == b.Inline.Emoji.Shortcode
	case NodeFootnoteReference:
		return a.Inline.FootnoteRef.Label == b.Inline.FootnoteRef.Label
	default:
		return true
	}
}

func taskOf(n *Node) TaskState {
	if n.Block == nil || n.Block.ListItem == nil {
		return TaskNone
	}
	return n.Block.ListItem.Task
}
