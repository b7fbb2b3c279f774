package mdtree

import "encoding/json"

// The JSON shape is the stable serialization of the node-tree contract:
// every node carries "kind", an optional "span", kind-specific "attrs",
// and ordered "children". Parent pointers are structural only and never
// serialized, so the output is a plain acyclic tree.

type jsonSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonNode struct {
	Kind     string    `json:"kind"`
	Span     *jsonSpan `json:"span,omitempty"`
	Attrs    any       `json:"attrs,omitempty"`
	Children []*Node   `json:"children,omitempty"`
}

// MarshalJSON serializes the node with its kind tag, span, attributes,
// and children in order.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := jsonNode{
		Kind:     n.Kind.String(),
		Attrs:    n.attrsValue(),
		Children: n.Children(),
	}

	if !n.Span.IsEmpty() {
		out.Span = &jsonSpan{Start: n.Span.Start, End: n.Span.End}
	}

	return json.Marshal(out)
}

// attrsValue returns the kind-specific attribute payload, or nil when the
// kind carries none (blockquote, horizontal rule, breaks, ...).
func (n *Node) attrsValue() any {
	switch n.Kind {
	case NodeHeading:
		if n.Block != nil && n.Block.Heading != nil {
			h := n.Block.Heading
			return map[string]any{"level": h.Level, "id": h.ID}
		}
	case NodeList:
		if n.Block != nil && n.Block.List != nil {
			l := n.Block.List
			attrs := map[string]any{"ordered": l.Ordered, "tight": l.Tight}
			if l.Ordered {
				attrs["start"] = l.Start
			}
			return attrs
		}
	case NodeListItem:
		if n.Block != nil && n.Block.ListItem != nil {
			switch n.Block.ListItem.Task {
			case TaskChecked:
				return map[string]any{"task": "checked"}
			case TaskUnchecked:
				return map[string]any{"task": "unchecked"}
			}
		}
	case NodeCodeBlock:
		if n.Block != nil && n.Block.CodeBlock != nil {
			c := n.Block.CodeBlock
			attrs := map[string]any{"literal": c.Literal, "fenced": c.Fenced}
			if c.Language != "" {
				attrs["language"] = c.Language
			}
			if c.Info != "" {
				attrs["info"] = c.Info
			}
			return attrs
		}
	case NodeTable:
		if n.Block != nil && n.Block.Table != nil {
			aligns := make([]string, len(n.Block.Table.Alignments))
			for i, a := range n.Block.Table.Alignments {
				aligns[i] = a.String()
			}
			return map[string]any{"alignments": aligns}
		}
	case NodeTableCell:
		if n.Block != nil && n.Block.TableCell != nil {
			c := n.Block.TableCell
			return map[string]any{
				"alignment": c.Alignment.String(),
				"header":    c.Header,
			}
		}
	case NodeFootnoteDefinition:
		if n.Block != nil && n.Block.Footnote != nil {
			f := n.Block.Footnote
			return map[string]any{"label": f.Label, "index": f.Index}
		}
	case NodeText, NodeCodeSpan:
		if n.Inline != nil {
			return map[string]any{"literal": n.Inline.Text}
		}
	case NodeEmphasis:
		if n.Inline != nil {
			return map[string]any{"strong": n.Inline.Strong}
		}
	case NodeLink, NodeImage:
		if n.Inline != nil && n.Inline.Link != nil {
			l := n.Inline.Link
			attrs := map[string]any{"url": l.Destination}
			if l.Title != "" {
				attrs["title"] = l.Title
			}
			if n.Kind == NodeImage {
				attrs["alt"] = l.Alt
			}
			if l.ReferenceLabel != "" {
				attrs["reference"] = l.ReferenceLabel
			}
			return attrs
		}
	case NodeEmoji:
		if n.Inline != nil && n.Inline.Emoji != nil {
			e := n.Inline.Emoji
			return map[string]any{"shortcode": e.Shortcode, "glyph": e.Glyph}
		}
	case NodeFootnoteReference:
		if n.Inline != nil && n.Inline.FootnoteRef != nil {
			r := n.Inline.FootnoteRef
			return map[string]any{"label": r.Label, "index": r.Index}
		}
	}
	return nil
}

type jsonDiagnostic struct {
	Kind    string   `json:"kind"`
	Message string   `json:"message"`
	Span    jsonSpan `json:"span"`
}

type jsonDocument struct {
	Root        *Node            `json:"root"`
	Diagnostics []jsonDiagnostic `json:"diagnostics,omitempty"`
}

// MarshalJSON serializes the document root and its diagnostics.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := jsonDocument{Root: d.Root}

	for _, diag := range d.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic{
			Kind:    diag.Kind.String(),
			Message: diag.Message,
			Span:    jsonSpan{Start: diag.Span.Start, End: diag.Span.End},
		})
	}

	return json.Marshal(out)
}
