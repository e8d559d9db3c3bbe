package goldmark

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yaklabco/vellum/pkg/syntax"
)

// Markdown content a window parse cannot judge in isolation. Reference
// definitions and reference-style links bind across the whole document,
// and an odd number of fence lines means a code fence crosses the window
// boundary. Any hit forces a full reparse.
var (
	refDefPattern  = regexp.MustCompile(`(?m)^ {0,3}\[[^\]]*\]:`)
	refLinkPattern = regexp.MustCompile(`\]([^(]|$)`)
	fencePattern   = regexp.MustCompile("(?m)^ {0,3}(```|~~~)")
)

// reparseMinChildren is the document size below which a targeted reparse
// is not worth the bookkeeping.
const reparseMinChildren = 4

// Reparse patches root after an edit replaced the byte range replaced of
// the previous text with replLen bytes; text is the text after the edit.
//
// The strategy is conservative: it reparses a window of the document's
// direct children around the edit and splices the result, keeping the
// spans of everything outside the window. The window is widened by up to
// two children per side and aligned to line boundaries; the widened
// boundary children must reparse identically, which catches edits whose
// effects leak past the edited blocks. Anything riskier falls back to a
// full parse (ok=false).
func (p *Parser) Reparse(root *syntax.Node, text string, replaced syntax.Range, replLen int) (syntax.Range, bool) {
	delta := replLen - replaced.Len()
	if root == nil || root.Kind() != syntax.KindDocument || root.IsLeaf() {
		return syntax.Range{}, false
	}
	if replaced.Start < 0 || replaced.End < replaced.Start || replLen < 0 {
		return syntax.Range{}, false
	}

	children := root.Children()
	n := len(children)
	if n < reparseMinChildren {
		return syntax.Range{}, false
	}

	offsets := make([]int, n+1)
	for i, c := range children {
		offsets[i+1] = offsets[i] + c.Len()
	}
	if offsets[n] != len(text)-delta || replaced.End > offsets[n] {
		return syntax.Range{}, false
	}

	// The run of children the edit touches, boundaries included.
	c0 := sort.Search(n, func(i int) bool { return offsets[i+1] >= replaced.Start })
	c1 := sort.Search(n, func(i int) bool { return offsets[i] > replaced.End }) - 1
	if c0 >= n || c1 < c0 {
		return syntax.Range{}, false
	}

	// Widen so that each side keeps verifiable untouched children, then
	// align the window to line boundaries by absorbing more.
	w0 := max(0, c0-2)
	w1 := min(n-1, c1+2)
	for w0 > 0 && text[offsets[w0]-1] != '\n' {
		w0--
	}
	for w1 < n-1 && !endsLine(text, offsets[w1+1]+delta) {
		w1++
	}
	if w0 == 0 && w1 == n-1 {
		return syntax.Range{}, false
	}

	wstart := offsets[w0]
	win := text[wstart : offsets[w1+1]+delta]
	if windowRisky(win) {
		return syntax.Range{}, false
	}
	var oldWin strings.Builder
	for _, c := range children[w0 : w1+1] {
		c.WriteText(&oldWin)
	}
	if windowRisky(oldWin.String()) {
		return syntax.Range{}, false
	}

	winRoot := p.Parse(win)
	kids := winRoot.Children()
	left := c0 - w0
	right := w1 - c1
	if len(kids) < left+right {
		return syntax.Range{}, false
	}

	// The widened boundary children must come out of the window parse
	// unchanged, or the edit's effects reach past the touched blocks.
	for i := range left {
		if !sameShape(kids[i], children[w0+i]) {
			return syntax.Range{}, false
		}
	}
	for i := range right {
		if !sameShape(kids[len(kids)-right+i], children[w1+1-right+i]) {
			return syntax.Range{}, false
		}
	}

	if err := root.ReplaceChildren(w0+left, w1+1-right, kids[left:len(kids)-right]); err != nil {
		return syntax.Range{}, false
	}

	affectedStart := wstart
	for i := range left {
		affectedStart += kids[i].Len()
	}
	affectedEnd := wstart + winRoot.Len()
	for i := range right {
		affectedEnd -= kids[len(kids)-right+i].Len()
	}
	return syntax.NewRange(affectedStart, affectedEnd), true
}

// sameShape reports whether a reparsed boundary child matches its
// original in kind and length. Interior structure may differ only if the
// covered bytes differ, which equal lengths of untouched text rule out.
func sameShape(a, b *syntax.Node) bool {
	return a.Kind() == b.Kind() && a.Len() == b.Len()
}

// endsLine reports whether offset e sits just past a line terminator or
// at the end of text.
func endsLine(text string, e int) bool {
	return e >= len(text) || e == 0 || text[e-1] == '\n'
}

func windowRisky(win string) bool {
	if refDefPattern.MatchString(win) || refLinkPattern.MatchString(win) {
		return true
	}
	return len(fencePattern.FindAllString(win, -1))%2 == 1
}
