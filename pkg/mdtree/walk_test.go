package mdtree_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/mdtree/pkg/mdtree"
)

func buildTestTree() *mdtree.Node {
	doc := mdtree.NewNode(mdtree.NodeDocument)

	heading := mdtree.NewNode(mdtree.NodeHeading)
	heading.Block = &mdtree.BlockAttrs{Heading: &mdtree.HeadingAttrs{Level: 1}}
	mdtree.AppendChild(heading, mdtree.NewText("Title"))

	para := mdtree.NewNode(mdtree.NodeParagraph)
	mdtree.AppendChild(para, mdtree.NewText("Body "))
	em := mdtree.NewNode(mdtree.NodeEmphasis)
	em.Inline = &mdtree.InlineAttrs{}
	mdtree.AppendChild(em, mdtree.NewText("text"))
	mdtree.AppendChild(para, em)

	mdtree.AppendChild(doc, heading)
	mdtree.AppendChild(doc, para)
	return doc
}

func TestWalk_VisitsAllNodesInOrder(t *testing.T) {
	t.Parallel()

	var kinds []mdtree.NodeKind
	err := mdtree.Walk(buildTestTree(), func(n *mdtree.Node) error {
		kinds = append(kinds, n.Kind)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}

	want := []mdtree.NodeKind{
		mdtree.NodeDocument,
		mdtree.NodeHeading,
		mdtree.NodeText,
		mdtree.NodeParagraph,
		mdtree.NodeText,
		mdtree.NodeEmphasis,
		mdtree.NodeText,
	}
	if len(kinds) != len(want) {
		t.Fatalf("visited %d nodes, want %d", len(kinds), len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("visit %d = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("stop")
	visited := 0
	err := mdtree.Walk(buildTestTree(), func(n *mdtree.Node) error {
		visited++
		if n.Kind == mdtree.NodeHeading {
			return sentinel
		}
		return nil
	})

	if !errors.Is(err, sentinel) {
		t.Errorf("expected sentinel error, got %v", err)
	}
	if visited != 2 {
		t.Errorf("expected walk to stop after 2 visits, got %d", visited)
	}
}

func TestWalk_NilRoot(t *testing.T) {
	t.Parallel()

	err := mdtree.Walk(nil, func(n *mdtree.Node) error {
		t.Error("callback should not run for nil root")
		return nil
	})
	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestFindByKind(t *testing.T) {
	t.Parallel()

	texts := mdtree.FindByKind(buildTestTree(), mdtree.NodeText)
	if len(texts) != 3 {
		t.Fatalf("expected 3 text nodes, got %d", len(texts))
	}
	if texts[0].Inline.Text != "Title" {
		t.Errorf("first text = %q, want %q", texts[0].Inline.Text, "Title")
	}
}

func TestFindFirst(t *testing.T) {
	t.Parallel()

	tree := buildTestTree()

	em := mdtree.FindFirst(tree, func(n *mdtree.Node) bool {
		return n.Kind == mdtree.NodeEmphasis
	})
	if em == nil {
		t.Fatal("expected to find an emphasis node")
	}

	missing := mdtree.FindFirst(tree, func(n *mdtree.Node) bool {
		return n.Kind == mdtree.NodeTable
	})
	if missing != nil {
		t.Error("expected nil for absent kind")
	}
}
