package syntax

// LinkedNode pairs a node with the context of one traversal from the root:
// the parent link, the node's index among its siblings, and the absolute
// byte offset where its text begins. Nodes themselves store only lengths,
// so traversal is how absolute positions are recovered.
type LinkedNode struct {
	node   *Node
	parent *LinkedNode
	index  int
	offset int
}

// NewLinkedNode returns the traversal root for a tree.
func NewLinkedNode(root *Node) *LinkedNode {
	return &LinkedNode{node: root}
}

// Node returns the underlying node.
func (l *LinkedNode) Node() *Node { return l.node }

// Kind returns the underlying node's kind.
func (l *LinkedNode) Kind() Kind { return l.node.kind }

// Parent returns the parent's context, or nil at the root.
func (l *LinkedNode) Parent() *LinkedNode { return l.parent }

// Index returns the node's position among its siblings.
func (l *LinkedNode) Index() int { return l.index }

// Offset returns the absolute byte offset of the node's start.
func (l *LinkedNode) Offset() int { return l.offset }

// Range returns the absolute byte range the node covers.
func (l *LinkedNode) Range() Range {
	return Range{Start: l.offset, End: l.offset + l.node.length}
}

// Children returns traversal contexts for the node's children, offsets
// laid out left to right.
func (l *LinkedNode) Children() []*LinkedNode {
	out := make([]*LinkedNode, len(l.node.children))
	offset := l.offset
	for i, c := range l.node.children {
		out[i] = &LinkedNode{node: c, parent: l, index: i, offset: offset}
		offset += c.length
	}
	return out
}

// PrevSibling returns the context of the sibling before the node, or nil.
func (l *LinkedNode) PrevSibling() *LinkedNode {
	if l.parent == nil || l.index == 0 {
		return nil
	}
	prev := l.parent.node.children[l.index-1]
	return &LinkedNode{
		node:   prev,
		parent: l.parent,
		index:  l.index - 1,
		offset: l.offset - prev.length,
	}
}

// NextSibling returns the context of the sibling after the node, or nil.
func (l *LinkedNode) NextSibling() *LinkedNode {
	if l.parent == nil || l.index+1 >= len(l.parent.node.children) {
		return nil
	}
	next := l.parent.node.children[l.index+1]
	return &LinkedNode{
		node:   next,
		parent: l.parent,
		index:  l.index + 1,
		offset: l.offset + l.node.length,
	}
}

// Find returns the context of the node whose span is exactly span,
// descending through the one child whose recorded number range contains
// it. It returns nil for detached spans and for spans absent from the
// subtree, including spans that belong to another document.
func (l *LinkedNode) Find(span Span) *LinkedNode {
	if span.IsDetached() {
		return nil
	}
	if l.node.span == span {
		return l
	}
	if l.node.leaf {
		return nil
	}
	number := span.Number()
	offset := l.offset
	for i, c := range l.node.children {
		if c.span.Number() <= number && number < c.upperBound() {
			child := &LinkedNode{node: c, parent: l, index: i, offset: offset}
			return child.Find(span)
		}
		offset += c.length
	}
	return nil
}

// LeafAt returns the deepest leaf whose range contains offset, or nil when
// offset lies outside the subtree. An offset at the very end of the
// covered text resolves to the last leaf.
func (l *LinkedNode) LeafAt(offset int) *LinkedNode {
	r := l.Range()
	if offset < r.Start || offset > r.End {
		return nil
	}
	if l.node.leaf {
		return l
	}
	children := l.Children()
	for i, c := range children {
		// Zero-length nodes are skipped unless nothing follows them.
		if offset < c.offset+c.node.length || i == len(children)-1 {
			return c.LeafAt(offset)
		}
	}
	return nil
}
