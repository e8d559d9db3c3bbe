package syntax

import (
	"errors"
	"fmt"
)

// ErrNumberSpace reports that a numbering operation ran out of span
// numbers, either because a tree is enormous or because repeated splices
// at one position exhausted the local gap. The remedy is a fresh full
// numbering, usually by rebuilding the tree.
var ErrNumberSpace = errors.New("span number space exhausted")

// Numberize assigns fresh spans to every node of the subtree, keyed by id,
// strictly increasing in pre-order. Numbers are spread evenly across the
// whole number space so that ReplaceChildren can renumber a patched region
// inside the gap between its untouched neighbors while every other node
// keeps its span.
func (n *Node) Numberize(id FileID) error {
	total := uint64(n.descendants)
	stride := (spanNumberHigh - spanNumberLow) / (total + 1)
	if stride == 0 {
		return ErrNumberSpace
	}
	next := spanNumberLow + stride
	n.assignSpans(id, &next, stride)
	if !n.leaf {
		// The root owns the rest of the space, which keeps room to number
		// children appended at the very end of the document.
		n.upper = spanNumberHigh
	}
	return nil
}

// assignSpans numbers the subtree in pre-order, stride apart, starting at
// *next. On return *next is the number that would follow the subtree;
// inner nodes record it as the exclusive upper bound of their numbers.
func (n *Node) assignSpans(id FileID, next *uint64, stride uint64) {
	n.span = makeSpan(id, *next)
	*next += stride
	if n.leaf {
		return
	}
	for _, c := range n.children {
		c.assignSpans(id, next, stride)
	}
	n.upper = *next
}

// numberizeForest assigns spans to every node of the given subtrees,
// strictly inside the open interval (lo, hi).
func numberizeForest(nodes []*Node, id FileID, lo, hi uint64) error {
	if len(nodes) == 0 {
		return nil
	}
	var total uint64
	for _, n := range nodes {
		total += uint64(n.descendants)
	}
	if hi <= lo {
		return ErrNumberSpace
	}
	stride := (hi - lo) / (total + 1)
	if stride == 0 {
		return ErrNumberSpace
	}
	next := lo + stride
	for _, n := range nodes {
		n.assignSpans(id, &next, stride)
	}
	return nil
}

// maxNumber returns the largest span number in the subtree. With pre-order
// assignment that is the number of the rightmost deepest node.
func (n *Node) maxNumber() uint64 {
	for !n.leaf && len(n.children) > 0 {
		n = n.children[len(n.children)-1]
	}
	return n.span.Number()
}

// upperBound is the exclusive upper bound of span numbers in the subtree.
func (n *Node) upperBound() uint64 {
	if n.leaf {
		return n.span.Number() + 1
	}
	return n.upper
}

// tightenUpper caps the recorded subtree bounds along the rightmost spine
// at bound, so numbers granted to a following splice are not claimed by
// this subtree during lookup.
func (n *Node) tightenUpper(bound uint64) {
	for !n.leaf {
		if n.upper > bound {
			n.upper = bound
		}
		if len(n.children) == 0 {
			return
		}
		n = n.children[len(n.children)-1]
	}
}

// Synthesize gives every node of the subtree the same fixed span, for
// generated text whose nodes should all report a single origin.
func (n *Node) Synthesize(span Span) {
	n.span = span
	if n.leaf {
		return
	}
	n.upper = span.Number() + 1
	for _, c := range n.children {
		c.Synthesize(span)
	}
}

// ReplaceChildren splices replacement in place of the children in
// [from, to) and refreshes the node's length, descendant count, and error
// flag. On a numbered tree the inserted subtrees are renumbered into the
// gap between the untouched neighbors, which keep their spans along with
// every other node of the tree.
//
// It fails with ErrNumberSpace when splices at one position have exhausted
// the local gap; the caller then rebuilds and renumbers the whole tree.
func (n *Node) ReplaceChildren(from, to int, replacement []*Node) error {
	if n.leaf {
		panic("syntax: ReplaceChildren on a leaf")
	}
	if from < 0 || to < from || to > len(n.children) {
		panic(fmt.Sprintf("syntax: child range %d..%d out of bounds", from, to))
	}
	if !n.span.IsDetached() {
		lo := n.span.Number()
		if from > 0 {
			lo = n.children[from-1].maxNumber()
		}
		hi := n.upperBound()
		if to < len(n.children) {
			hi = n.children[to].span.Number()
		}
		if err := numberizeForest(replacement, n.span.ID(), lo, hi); err != nil {
			return err
		}
		// The left neighbor's recorded bounds may reach into the gap that
		// was just numbered into; pull them back below the new numbers.
		if from > 0 && len(replacement) > 0 {
			n.children[from-1].tightenUpper(lo + 1)
		}
	}
	children := make([]*Node, 0, len(n.children)-(to-from)+len(replacement))
	children = append(children, n.children[:from]...)
	children = append(children, replacement...)
	children = append(children, n.children[to:]...)
	n.children = children
	n.length = 0
	n.descendants = 1
	n.erroneous = false
	for _, c := range n.children {
		n.length += c.length
		n.descendants += c.descendants
		n.erroneous = n.erroneous || c.erroneous
	}
	return nil
}
