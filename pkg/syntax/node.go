// Package syntax defines the span-carrying syntax trees of the document
// model. Nodes store the byte length of the text they cover rather than
// absolute offsets, so an edit that shifts a subtree wholesale leaves every
// node of the subtree untouched; absolute positions are recovered during
// traversal with LinkedNode. Each node carries a Span, a stable identifier
// that survives edits elsewhere in the document and supports exact lookup
// with Find.
package syntax

import (
	"errors"
	"fmt"
	"strings"
)

// Node is a single node of a syntax tree. Leaves carry text; inner nodes
// carry children whose lengths sum to the parent's. Error leaves carry a
// message in addition to the text they cover.
//
// Nodes are created with NewLeaf, NewInner, and NewError and are treated as
// immutable by consumers. The only mutating operations are Numberize,
// Synthesize, and ReplaceChildren, which the document layer applies while
// it holds exclusive ownership of the tree.
type Node struct {
	kind Kind
	span Span
	leaf bool

	// text is set on leaves; children on inner nodes.
	text     string
	children []*Node

	// length is the number of bytes covered; for inner nodes the sum of
	// the children's lengths.
	length int

	// descendants counts the node itself plus everything below it.
	descendants int

	// erroneous is true when the subtree contains an error node.
	erroneous bool

	// upper is the exclusive upper bound of the span numbers in this
	// subtree. Maintained for inner nodes only; leaves bound themselves.
	upper uint64

	// message is set on error leaves.
	message string
}

// NewLeaf returns a leaf node of the given kind covering text.
func NewLeaf(kind Kind, text string) *Node {
	return &Node{
		kind:        kind,
		leaf:        true,
		text:        text,
		length:      len(text),
		descendants: 1,
	}
}

// NewInner returns an inner node of the given kind over children. The
// node's length is the sum of the children's lengths.
func NewInner(kind Kind, children []*Node) *Node {
	n := &Node{
		kind:        kind,
		children:    children,
		descendants: 1,
	}
	for _, c := range children {
		n.length += c.length
		n.descendants += c.descendants
		n.erroneous = n.erroneous || c.erroneous
	}
	return n
}

// NewError returns an error leaf covering text. The text may be empty when
// the problem is an absence, such as an unclosed delimiter.
func NewError(message, text string) *Node {
	return &Node{
		kind:        KindError,
		leaf:        true,
		text:        text,
		message:     message,
		length:      len(text),
		descendants: 1,
		erroneous:   true,
	}
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind { return n.kind }

// Span returns the node's stable identifier. It is detached until the tree
// has been numbered or synthesized.
func (n *Node) Span() Span { return n.span }

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool { return n.leaf }

// Len returns the number of bytes of text the node covers.
func (n *Node) Len() int { return n.length }

// Text returns a leaf's text. Inner nodes return the empty string; use
// WriteText to reconstruct the text a subtree covers.
func (n *Node) Text() string { return n.text }

// Children returns the node's children. The slice is shared, not copied;
// callers must not modify it.
func (n *Node) Children() []*Node { return n.children }

// Descendants returns the number of nodes in the subtree, itself included.
func (n *Node) Descendants() int { return n.descendants }

// Erroneous reports whether the subtree contains an error node.
func (n *Node) Erroneous() bool { return n.erroneous }

// Message returns the message of an error leaf, or the empty string.
func (n *Node) Message() string { return n.message }

// WriteText appends the text covered by the subtree to b. The
// concatenation of all leaf texts in pre-order is exactly the text the
// tree was parsed from.
func (n *Node) WriteText(b *strings.Builder) {
	if n.leaf {
		b.WriteString(n.text)
		return
	}
	for _, c := range n.children {
		c.WriteText(b)
	}
}

// NodeError describes one error node of a tree.
type NodeError struct {
	Message string
	Span    Span
}

// Errors collects the errors of the subtree in source order.
func (n *Node) Errors() []NodeError {
	if !n.erroneous {
		return nil
	}
	var out []NodeError
	n.collectErrors(&out)
	return out
}

func (n *Node) collectErrors(out *[]NodeError) {
	if n.kind == KindError {
		*out = append(*out, NodeError{Message: n.message, Span: n.span})
		return
	}
	for _, c := range n.children {
		if c.erroneous {
			c.collectErrors(out)
		}
	}
}

// Clone returns a deep copy of the subtree. Spans are preserved.
func (n *Node) Clone() *Node {
	m := *n
	if !n.leaf {
		m.children = make([]*Node, len(n.children))
		for i, c := range n.children {
			m.children[i] = c.Clone()
		}
	}
	return &m
}

// String renders the node for debugging.
func (n *Node) String() string {
	if n.leaf {
		return fmt.Sprintf("%s: %q", n.kind, n.text)
	}
	return fmt.Sprintf("%s: %d", n.kind, n.length)
}

// WalkFunc is invoked for every node visited by Walk.
type WalkFunc func(n *Node) error

// ErrSkipChildren can be returned by a WalkFunc to prune descent below the
// current node without stopping the walk.
var ErrSkipChildren = errors.New("skip children")

// Walk visits the subtree rooted at n in pre-order, parents before
// children. Any error other than ErrSkipChildren aborts the walk and is
// returned to the caller.
func Walk(n *Node, fn WalkFunc) error {
	if n == nil {
		return nil
	}
	if err := fn(n); err != nil {
		if errors.Is(err, ErrSkipChildren) {
			return nil
		}
		return err
	}
	for _, c := range n.children {
		if err := Walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}
