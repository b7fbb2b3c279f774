package parser

import (
	"fmt"

	"github.com/yaklabco/mdtree/pkg/mdtree"
)

// assembler finishes the tree after inline resolution: heading anchors,
// footnote numbering, and tight list unwrapping.
type assembler struct {
	doc *mdtree.Document
	src []byte
}

func (a *assembler) run() {
	a.unwrapTightLists()
	a.assignHeadingIDs()
	a.resolveFootnotes()
}

// unwrapTightLists splices paragraph children of tight list items up
// into the item, so tight items carry their inline content directly.
func (a *assembler) unwrapTightLists() {
	lists := mdtree.FindByKind(a.doc.Root, mdtree.NodeList)
	for _, list := range lists {
		if list.Block == nil || list.Block.List == nil || !list.Block.List.Tight {
			continue
		}
		for item := list.FirstChild; item != nil; item = item.Next {
			var paras []*mdtree.Node
			for child := item.FirstChild; child != nil; child = child.Next {
				if child.Kind == mdtree.NodeParagraph {
					paras = append(paras, child)
				}
			}
			for _, para := range paras {
				mdtree.ReplaceWithChildren(para)
			}
		}
	}
}

// assignHeadingIDs gives every heading a unique anchor. Explicit IDs
// win; generated ones come from the heading text; collisions append a
// numeric suffix in document order.
func (a *assembler) assignHeadingIDs() {
	used := make(map[string]bool)

	for _, h := range mdtree.FindByKind(a.doc.Root, mdtree.NodeHeading) {
		attrs := h.Block.Heading
		base := attrs.ID
		if !attrs.Custom || base == "" {
			base = slugify(h.PlainText())
		}

		id := base
		for n := 1; used[id]; n++ {
			id = fmt.Sprintf("%s-%d", base, n)
		}

		used[id] = true
		attrs.ID = id
		a.doc.HeadingIDs[id] = h
	}
}

// resolveFootnotes numbers definitions and references. Referenced
// definitions take indexes in first-reference order; unreferenced
// definitions follow in definition order; references without a
// definition degrade to literal text and produce a diagnostic.
func (a *assembler) resolveFootnotes() {
	defs := mdtree.FindByKind(a.doc.Root, mdtree.NodeFootnoteDefinition)
	for _, def := range defs {
		label := def.Block.Footnote.Label
		if _, exists := a.doc.Footnotes[label]; !exists {
			a.doc.Footnotes[label] = def
		}
	}

	next := 1
	diagnosed := make(map[string]bool)

	for _, ref := range mdtree.FindByKind(a.doc.Root, mdtree.NodeFootnoteReference) {
		attrs := ref.Inline.FootnoteRef
		def, found := a.doc.Footnotes[attrs.Label]
		if !found {
			if !diagnosed[attrs.Label] {
				diagnosed[attrs.Label] = true
				a.doc.Diagnostics = append(a.doc.Diagnostics, mdtree.Diagnostic{
					Kind:    mdtree.DiagUnresolvedFootnote,
					Message: fmt.Sprintf("footnote %q has no definition", attrs.Label),
					Span:    ref.Span,
				})
			}

			// Degrade to the marker's source text so renderers never
			// see a reference with no definition.
			text := mdtree.NewNode(mdtree.NodeText)
			text.Span = ref.Span
			text.Inline = &mdtree.InlineAttrs{Text: string(ref.Span.Text(a.src))}
			mdtree.InsertBefore(ref, text)
			mdtree.RemoveChild(ref.Parent, ref)
			continue
		}

		if def.Block.Footnote.Index == 0 {
			def.Block.Footnote.Index = next
			next++
		}
		attrs.Index = def.Block.Footnote.Index
	}

	for _, def := range defs {
		if def.Block.Footnote.Index == 0 && a.doc.Footnotes[def.Block.Footnote.Label] == def {
			def.Block.Footnote.Index = next
			next++
		}
	}
}
