package mdtree_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/yaklabco/mdtree/pkg/mdtree"
)

func TestNode_MarshalJSON_Heading(t *testing.T) {
	t.Parallel()

	h := headingNode(2, "setup", "Setup")
	h.Span = mdtree.SourceRange{Start: 0, End: 8}

	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out struct {
		Kind  string `json:"kind"`
		Span  *struct{ Start, End int }
		Attrs struct {
			Level int    `json:"level"`
			ID    string `json:"id"`
		} `json:"attrs"`
		Children []json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.Kind != "heading" {
		t.Errorf("kind = %q, want %q", out.Kind, "heading")
	}
	if out.Attrs.Level != 2 || out.Attrs.ID != "setup" {
		t.Errorf("attrs = %+v, want level 2, id setup", out.Attrs)
	}
	if len(out.Children) != 1 {
		t.Errorf("expected 1 child, got %d", len(out.Children))
	}
}

func TestNode_MarshalJSON_OmitsEmptySpan(t *testing.T) {
	t.Parallel()

	n := mdtree.NewNode(mdtree.NodeHorizontalRule)

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if strings.Contains(string(data), "span") {
		t.Errorf("synthetic node should omit span: %s", data)
	}
	if strings.Contains(string(data), "attrs") {
		t.Errorf("horizontal rule carries no attrs: %s", data)
	}
}

func TestNode_MarshalJSON_TaskItem(t *testing.T) {
	t.Parallel()

	item := mdtree.NewNode(mdtree.NodeListItem)
	item.Block = &mdtree.BlockAttrs{ListItem: &mdtree.ListItemAttrs{Task: mdtree.TaskChecked}}

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"task":"checked"`) {
		t.Errorf("expected checked task attr, got %s", data)
	}

	plain := mdtree.NewNode(mdtree.NodeListItem)
	plain.Block = &mdtree.BlockAttrs{ListItem: &mdtree.ListItemAttrs{}}

	data, err = json.Marshal(plain)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "task") {
		t.Errorf("plain item should omit task attr, got %s", data)
	}
}

func TestNode_MarshalJSON_Image(t *testing.T) {
	t.Parallel()

	img := mdtree.NewNode(mdtree.NodeImage)
	img.Inline = &mdtree.InlineAttrs{
		Link: &mdtree.LinkAttrs{Destination: "logo.png", Alt: "Logo"},
	}

	data, err := json.Marshal(img)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got := string(data)
	for _, want := range []string{`"kind":"image"`, `"url":"logo.png"`, `"alt":"Logo"`} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %s: %s", want, got)
		}
	}
}

func TestDocument_MarshalJSON(t *testing.T) {
	t.Parallel()

	doc := mdtree.NewDocument([]byte("~~~\ncode"))
	doc.Diagnostics = append(doc.Diagnostics, mdtree.Diagnostic{
		Kind:    mdtree.DiagUnterminatedFence,
		Message: "code fence closed implicitly at end of block",
		Span:    mdtree.SourceRange{Start: 0, End: 3},
	})

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got := string(data)
	if !strings.Contains(got, `"root"`) {
		t.Errorf("output missing root: %s", got)
	}
	if !strings.Contains(got, `"kind":"unterminated-fence"`) {
		t.Errorf("output missing diagnostic kind: %s", got)
	}
}

func TestDiagnostic_String(t *testing.T) {
	t.Parallel()

	d := mdtree.Diagnostic{
		Kind:    mdtree.DiagMalformedTable,
		Message: "separator mismatch",
	}
	want := "malformed-table: separator mismatch"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
