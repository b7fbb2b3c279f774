package mdtree

// Alignment describes the horizontal alignment of a table column.
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the serialized name of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "none"
	}
}

// TaskState describes the checkbox state of a task-list item.
type TaskState uint8

const (
	// TaskNone marks a plain list item without a checkbox.
	TaskNone TaskState = iota
	TaskUnchecked
	TaskChecked
)

// BlockAttrs holds attributes for block-level nodes.
// Exactly one of the pointer fields is set, matching the node kind.
type BlockAttrs struct {
	Heading   *HeadingAttrs
	List      *ListAttrs
	ListItem  *ListItemAttrs
	CodeBlock *CodeBlockAttrs
	Table     *TableAttrs
	TableCell *TableCellAttrs
	Footnote  *FootnoteAttrs
}

// HeadingAttrs holds attributes for NodeHeading.
type HeadingAttrs struct {
	// Level is the heading level, 1 through 6.
	Level int

	// ID is the document-unique identifier assigned by the assembler.
	// Custom `{#id}` syntax wins over the auto-generated slug.
	ID string

	// Custom is true when the ID came from explicit `{#id}` syntax.
	Custom bool
}

// ListAttrs holds attributes for NodeList.
type ListAttrs struct {
	// Ordered is true for numbered lists.
	Ordered bool

	// Start is the first item number of an ordered list.
	Start int

	// BulletMarker is the bullet character used ('-', '+', '*').
	BulletMarker byte

	// Delimiter is the ordered-list delimiter ('.' or ')').
	Delimiter byte

	// Tight is true if no blank line separates the items.
	// Tight items carry inline children directly; loose items wrap
	// their content in paragraphs.
	Tight bool
}

// ListItemAttrs holds attributes for NodeListItem.
type ListItemAttrs struct {
	// Task is the checkbox state for task-list items.
	Task TaskState
}

// CodeBlockAttrs holds attributes for NodeCodeBlock.
type CodeBlockAttrs struct {
	// Literal is the verbatim code content.
	Literal string

	// Language is the language identifier from the info string,
	// possibly inferred when the info string is absent.
	Language string

	// Info is the full, raw info string of a fenced block.
	Info string

	// Fenced is true for fenced blocks, false for indented ones.
	Fenced bool

	// FenceChar is the fence character ('`' or '~') of fenced blocks.
	FenceChar byte

	// FenceLength is the opening fence length of fenced blocks.
	FenceLength int
}

// TableAttrs holds attributes for NodeTable.
type TableAttrs struct {
	// Alignments holds one entry per column, taken from the separator row.
	Alignments []Alignment
}

// TableCellAttrs holds attributes for NodeTableCell.
type TableCellAttrs struct {
	// Alignment is the column alignment this cell inherits.
	Alignment Alignment

	// Header is true for cells in the header row.
	Header bool
}

// FootnoteAttrs holds attributes for NodeFootnoteDefinition.
type FootnoteAttrs struct {
	// Label is the footnote label without the `^` prefix.
	Label string

	// Index is the 1-based footnote number in first-reference order.
	// Zero for definitions that are never referenced.
	Index int
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text holds the literal content for NodeText and NodeCodeSpan.
	Text string

	// Strong is true for strong emphasis on NodeEmphasis.
	Strong bool

	// Link holds attributes for NodeLink and NodeImage.
	Link *LinkAttrs

	// Emoji holds attributes for NodeEmoji.
	Emoji *EmojiAttrs

	// FootnoteRef holds attributes for NodeFootnoteReference.
	FootnoteRef *FootnoteRefAttrs
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	// Destination is the link URL or image source.
	Destination string

	// Title is the optional title.
	Title string

	// Alt is the flattened alternative text of images.
	Alt string

	// ReferenceLabel is the label of reference-style links.
	// Empty for inline links.
	ReferenceLabel string
}

// EmojiAttrs holds attributes for NodeEmoji.
type EmojiAttrs struct {
	// Shortcode is the name between the colons, e.g. "smile".
	Shortcode string

	// Glyph is the resolved unicode glyph.
	Glyph string
}

// FootnoteRefAttrs holds attributes for NodeFootnoteReference.
type FootnoteRefAttrs struct {
	// Label is the referenced footnote label without the `^` prefix.
	Label string

	// Index is the 1-based footnote number shared with the definition.
	Index int
}
