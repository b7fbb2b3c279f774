package mdtree

// NewNode creates a detached node of the given kind.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewText creates a detached text node with the given literal.
func NewText(literal string) *Node {
	return &Node{
		Kind:   NodeText,
		Inline: &InlineAttrs{Text: literal},
	}
}

// AppendChild appends child as the last child of parent,
// detaching it from any previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// InsertBefore inserts newNode immediately before sibling.
// sibling must have a parent.
func InsertBefore(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil {
		return
	}

	if newNode.Parent != nil {
		RemoveChild(newNode.Parent, newNode)
	}

	parent := sibling.Parent
	newNode.Parent = parent
	newNode.Prev = sibling.Prev
	newNode.Next = sibling

	if sibling.Prev != nil {
		sibling.Prev.Next = newNode
	} else {
		parent.FirstChild = newNode
	}

	sibling.Prev = newNode
}

// RemoveChild detaches child from parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// ReplaceWithChildren splices node's children into its place and detaches
// the node itself. Used when unwrapping paragraphs in tight list items.
func ReplaceWithChildren(node *Node) {
	parent := node.Parent
	if parent == nil {
		return
	}

	for node.FirstChild != nil {
		child := node.FirstChild
		RemoveChild(node, child)
		InsertBefore(node, child)
	}

	RemoveChild(parent, node)
}
