package goldmark

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/vellum/pkg/syntax"
)

// builder converts a goldmark AST into a lossless syntax tree.
//
// goldmark nodes reference the source through segments that cover content
// but not delimiters: "# Hi" parses to a heading whose segments cover only
// "Hi". The builder assigns every node an extent, a byte range widened to
// include the node's own syntax, and tiles the bytes between child extents
// with classified leaves. The resulting tree covers the source exactly.
type builder struct {
	source []byte
}

func newBuilder(source []byte) *builder {
	return &builder{source: source}
}

// extent is the absolute byte range claimed by one node.
type extent struct {
	start, end int
}

func (e extent) valid() bool {
	return e.start >= 0 && e.end >= e.start
}

func (e extent) union(o extent) extent {
	if !o.valid() {
		return e
	}
	if !e.valid() {
		return o
	}
	if o.start < e.start {
		e.start = o.start
	}
	if o.end > e.end {
		e.end = o.end
	}
	return e
}

// document builds the root node. The root's extent is the whole source, so
// leading and trailing bytes outside any block also get leaves.
func (b *builder) document(gmDoc ast.Node) *syntax.Node {
	return syntax.NewInner(syntax.KindDocument, b.children(gmDoc, extent{0, len(b.source)}))
}

// build converts one goldmark node with its final extent.
func (b *builder) build(gm ast.Node, ext extent) *syntax.Node {
	switch n := gm.(type) {
	case *ast.Heading:
		return syntax.NewInner(syntax.KindHeading, b.children(n, ext))
	case *ast.Paragraph:
		return syntax.NewInner(syntax.KindParagraph, b.children(n, ext))
	case *ast.TextBlock:
		// Tight list items carry a text block instead of a paragraph.
		return syntax.NewInner(syntax.KindParagraph, b.children(n, ext))
	case *ast.Blockquote:
		return syntax.NewInner(syntax.KindBlockquote, b.children(n, ext))
	case *ast.List:
		return syntax.NewInner(syntax.KindList, b.children(n, ext))
	case *ast.ListItem:
		return syntax.NewInner(syntax.KindListItem, b.children(n, ext))
	case *ast.FencedCodeBlock:
		return b.fencedCode(n, ext)
	case *ast.CodeBlock:
		return b.indentedCode(n, ext)
	case *ast.HTMLBlock:
		return syntax.NewInner(syntax.KindHTMLBlock, b.htmlLeaf(ext))
	case *ast.ThematicBreak:
		return syntax.NewInner(syntax.KindThematicBreak, b.children(n, ext))
	case *ast.Text:
		return syntax.NewLeaf(syntax.KindText, b.slice(ext))
	case *ast.CodeSpan:
		return b.codeSpan(ext)
	case *ast.Emphasis:
		kind := syntax.KindEmphasis
		if n.Level >= 2 {
			kind = syntax.KindStrong
		}
		return syntax.NewInner(kind, b.children(n, ext))
	case *east.Strikethrough:
		return syntax.NewInner(syntax.KindEmphasis, b.children(n, ext))
	case *ast.Link:
		return b.link(n, syntax.KindLink, ext)
	case *ast.Image:
		return b.link(n, syntax.KindImage, ext)
	case *ast.AutoLink:
		return b.autoLink(ext)
	case *ast.RawHTML:
		return syntax.NewInner(syntax.KindRaw, b.htmlLeaf(ext))
	case *east.TaskCheckBox:
		return syntax.NewLeaf(syntax.KindMarker, b.slice(ext))
	default:
		// Tables and any future node types keep their shape under Raw.
		return syntax.NewInner(syntax.KindRaw, b.children(gm, ext))
	}
}

// children tiles the parent's extent: built child nodes where goldmark
// reported structure, classified gap leaves everywhere else.
func (b *builder) children(parent ast.Node, ext extent) []*syntax.Node {
	out, cursor := b.allocate(parent, ext)
	return b.appendGap(out, cursor, ext.end)
}

// allocate walks the goldmark children in source order, assigning each a
// final extent within [ext.start, ext.end) and filling inter-child gaps.
// It returns the built nodes and the position up to which they tile.
func (b *builder) allocate(parent ast.Node, ext extent) ([]*syntax.Node, int) {
	var out []*syntax.Node
	cursor := ext.start
	first := true

	for gm := parent.FirstChild(); gm != nil; gm = gm.NextSibling() {
		ce := b.rawExtent(gm)
		if !ce.valid() {
			ce = b.placeBlind(gm, cursor, ext.end)
		}
		wasFirst := first
		first = false
		if !ce.valid() {
			continue
		}

		ce = b.widenChild(gm, parent, ce, cursor, ext.end, wasFirst)
		if ce.end <= ce.start {
			continue
		}

		out = b.appendGap(out, cursor, ce.start)
		out = append(out, b.build(gm, ce))
		cursor = ce.end
	}

	return out, cursor
}

// rawExtent computes the byte range goldmark itself accounts for: line
// segments for blocks, text segments for inlines, unioned over children.
// Nodes goldmark gives no position for report an invalid extent.
func (b *builder) rawExtent(gm ast.Node) extent {
	ext := extent{-1, -1}

	switch n := gm.(type) {
	case *ast.Text:
		return extent{n.Segment.Start, n.Segment.Stop}
	case *ast.RawHTML:
		for i := range n.Segments.Len() {
			seg := n.Segments.At(i)
			ext = ext.union(extent{seg.Start, seg.Stop})
		}
		return ext
	}

	// Inline nodes have no Lines; asking would panic.
	if gm.Type() != ast.TypeInline {
		if lines := gm.Lines(); lines.Len() > 0 {
			first, last := lines.At(0), lines.At(lines.Len()-1)
			ext = ext.union(extent{first.Start, last.Stop})
		}
		if h, ok := gm.(*ast.HTMLBlock); ok && h.HasClosure() {
			ext = ext.union(extent{h.ClosureLine.Start, h.ClosureLine.Stop})
		}
	}

	for child := gm.FirstChild(); child != nil; child = child.NextSibling() {
		ext = ext.union(b.rawExtent(child))
	}
	return ext
}

// placeBlind locates nodes goldmark keeps no position for by scanning the
// unallocated gap for the content that must have produced them.
func (b *builder) placeBlind(gm ast.Node, cursor, limit int) extent {
	switch n := gm.(type) {
	case *ast.FencedCodeBlock:
		// A fence without content lines: the opening fence line, plus a
		// closing line when one follows.
		open := b.firstContentLine(cursor, limit)
		if !open.valid() {
			return open
		}
		ch, _, ok := b.fenceAt(open.start, open.end)
		if !ok {
			return open
		}
		if open.end < limit && b.source[open.end] == '\n' {
			if closeEnd := b.fenceCloseEnd(open.end+1, limit, ch); closeEnd >= 0 {
				open.end = closeEnd
			}
		}
		return open
	case *ast.AutoLink:
		label := n.Label(b.source)
		if len(label) == 0 {
			return extent{-1, -1}
		}
		window := b.source[cursor:limit]
		bracketed := make([]byte, 0, len(label)+2)
		bracketed = append(append(append(bracketed, '<'), label...), '>')
		if k := bytes.Index(window, bracketed); k >= 0 {
			return extent{cursor + k, cursor + k + len(bracketed)}
		}
		if k := bytes.Index(window, label); k >= 0 {
			return extent{cursor + k, cursor + k + len(label)}
		}
		return extent{-1, -1}
	case *east.TaskCheckBox:
		cands := []string{"[ ]"}
		if n.IsChecked {
			cands = []string{"[x]", "[X]"}
		}
		for _, lit := range cands {
			if k := bytes.Index(b.source[cursor:limit], []byte(lit)); k >= 0 {
				return extent{cursor + k, cursor + k + len(lit)}
			}
		}
		return extent{-1, -1}
	}

	if gm.Type() != ast.TypeInline {
		// Thematic breaks and empty headings own the next content line.
		return b.firstContentLine(cursor, limit)
	}
	return extent{-1, -1}
}

// widenChild grows a raw extent to include the child's own syntax: line
// prefixes for blocks, delimiters for inlines, fence and underline lines
// for code blocks and headings. The result is clamped to the unallocated
// remainder [cursor, limit).
func (b *builder) widenChild(gm, parent ast.Node, ce extent, cursor, limit int, first bool) extent {
	switch n := gm.(type) {
	case *ast.FencedCodeBlock:
		ce = b.fencedExtent(n, ce, cursor, limit)
	case *ast.Heading:
		ce = b.headingExtent(ce, limit)
	case *ast.Emphasis:
		ce = b.widenRun(ce, n.Level, cursor, limit, '*', '_')
	case *east.Strikethrough:
		ce = b.widenRun(ce, 2, cursor, limit, '~', '~')
	case *ast.CodeSpan:
		ce = b.widenSymmetric(ce, '`', cursor, limit)
	case *ast.Link:
		ce = b.widenBrackets(ce, false, cursor, limit)
	case *ast.Image:
		ce = b.widenBrackets(ce, true, cursor, limit)
	}

	// A block child claims the prefix of the line it starts on (list
	// bullets, quote markers, indentation). The first child of a parent
	// with its own leading syntax must not: "# Hi" keeps "# " in the
	// heading, not in the heading's first text leaf.
	if gm.Type() == ast.TypeBlock && (!first || isTransparent(parent)) {
		if ls := b.lineStart(ce.start); ls >= cursor {
			ce.start = ls
		}
	}

	if ce.start < cursor {
		ce.start = cursor
	}
	if ce.end > limit {
		ce.end = limit
	}
	return ce
}

// isTransparent reports whether the parent has no leading syntax of its
// own, so even its first child claims its full line.
func isTransparent(parent ast.Node) bool {
	switch parent.(type) {
	case *ast.Document, *ast.List:
		return true
	}
	return false
}

// fencedExtent extends a fenced code block's content extent to the
// opening fence line before it and the closing fence line after it.
func (b *builder) fencedExtent(n *ast.FencedCodeBlock, ce extent, cursor, limit int) extent {
	lines := n.Lines()
	if lines.Len() == 0 {
		return ce // placed blind, fence lines already included
	}

	contentStart := lines.At(0).Start
	contentEnd := lines.At(lines.Len() - 1).Stop

	if p := b.lineStart(contentStart); p > cursor {
		// The opening fence sits on the line before the content.
		if fs := b.lineStart(p - 1); fs >= cursor {
			ce.start = fs
		}
	}

	ce.end = contentEnd
	if ch, _, ok := b.fenceAt(ce.start, b.lineContentEnd(ce.start, limit)); ok && contentEnd < limit {
		if closeEnd := b.fenceCloseEnd(contentEnd, limit, ch); closeEnd >= 0 {
			ce.end = closeEnd
		}
	}
	return ce
}

// headingExtent widens a heading over its marker lines: the rest of the
// line for an ATX heading, the underline line for a setext heading.
func (b *builder) headingExtent(ce extent, limit int) extent {
	ls := b.lineStart(ce.start)
	i := ls
	for i < limit && b.source[i] == ' ' {
		i++
	}
	if i < limit && b.source[i] == '#' {
		ce.end = b.lineContentEnd(ce.start, limit)
		return ce
	}

	u := ce.end
	if u < limit && b.source[u] == '\n' {
		u++
	}
	if ue := b.lineContentEnd(u, limit); isSetextUnderline(b.source[u:ue]) {
		ce.end = ue
	}
	return ce
}

func isSetextUnderline(line []byte) bool {
	trimmed := bytes.Trim(line, " \t\r")
	if len(trimmed) == 0 {
		return false
	}
	c := trimmed[0]
	if c != '=' && c != '-' {
		return false
	}
	for _, x := range trimmed {
		if x != c {
			return false
		}
	}
	return true
}

// widenRun takes up to count delimiter bytes on each side of the extent.
func (b *builder) widenRun(ce extent, count, lo, hi int, c1, c2 byte) extent {
	for k := 0; k < count && ce.start > lo && (b.source[ce.start-1] == c1 || b.source[ce.start-1] == c2); k++ {
		ce.start--
	}
	for k := 0; k < count && ce.end < hi && (b.source[ce.end] == c1 || b.source[ce.end] == c2); k++ {
		ce.end++
	}
	return ce
}

// widenSymmetric grows the extent while both sides carry the delimiter,
// matching the balanced backtick runs of a code span.
func (b *builder) widenSymmetric(ce extent, c byte, lo, hi int) extent {
	for ce.start > lo && ce.end < hi && b.source[ce.start-1] == c && b.source[ce.end] == c {
		ce.start--
		ce.end++
	}
	return ce
}

// widenBrackets grows a link or image extent over "[", "![", and the
// trailing "](destination)" or "][reference]" syntax.
func (b *builder) widenBrackets(ce extent, image bool, lo, hi int) extent {
	if ce.end < hi && b.source[ce.end] == ']' {
		ce.end++
		if ce.end < hi {
			switch b.source[ce.end] {
			case '(':
				if p := b.matchParen(ce.end, hi); p >= 0 {
					ce.end = p + 1
				}
			case '[':
				if p := bytes.IndexByte(b.source[ce.end:hi], ']'); p >= 0 {
					ce.end += p + 1
				}
			}
		}
	}
	if ce.start > lo && b.source[ce.start-1] == '[' {
		ce.start--
		if image && ce.start > lo && b.source[ce.start-1] == '!' {
			ce.start--
		}
	}
	return ce
}

// matchParen returns the offset of the parenthesis closing the one at
// open, or -1.
func (b *builder) matchParen(open, hi int) int {
	depth := 0
	for i := open; i < hi; i++ {
		switch b.source[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		case '\n':
			return -1
		}
	}
	return -1
}

// fencedCode decomposes a fenced code block extent into the opening fence
// line, the content, and the closing fence line. An unclosed fence gets a
// zero-length error node in place of the closing marker.
func (b *builder) fencedCode(n *ast.FencedCodeBlock, ext extent) *syntax.Node {
	lines := n.Lines()
	contentStart, contentEnd := ext.end, ext.end
	if lines.Len() > 0 {
		contentStart = lines.At(0).Start
		contentEnd = lines.At(lines.Len() - 1).Stop
	} else if nl := bytes.IndexByte(b.source[ext.start:ext.end], '\n'); nl >= 0 {
		contentStart = ext.start + nl + 1
		contentEnd = contentStart
	}
	contentStart = clamp(contentStart, ext.start, ext.end)
	contentEnd = clamp(contentEnd, contentStart, ext.end)

	out := b.fenceLine(nil, ext.start, contentStart, n.Info)
	out = b.codeLines(out, lines, contentStart, contentEnd)
	if contentEnd < ext.end {
		out = b.fenceLine(out, contentEnd, ext.end, nil)
	} else {
		out = append(out, syntax.NewError("unclosed code fence", ""))
	}
	return syntax.NewInner(syntax.KindCodeBlock, out)
}

// fenceLine splits one fence line into indentation, the fence marker, the
// info string on an opening fence, and trailing whitespace.
func (b *builder) fenceLine(out []*syntax.Node, from, to int, info *ast.Text) []*syntax.Node {
	i := from
	for i < to && (b.source[i] == ' ' || b.source[i] == '\t') {
		i++
	}
	out = b.appendGap(out, from, i)

	run := i
	for run < to && (b.source[run] == '`' || b.source[run] == '~') {
		run++
	}
	if run > i {
		out = append(out, syntax.NewLeaf(syntax.KindMarker, string(b.source[i:run])))
		i = run
	}

	if info != nil {
		if seg := info.Segment; seg.Start >= i && seg.Stop <= to && seg.Stop > seg.Start {
			out = b.appendGap(out, i, seg.Start)
			out = append(out, syntax.NewLeaf(syntax.KindText, string(b.source[seg.Start:seg.Stop])))
			i = seg.Stop
		}
	}

	return b.appendGap(out, i, to)
}

// indentedCode builds an indented code block: code leaves per content
// line, indentation and blank lines as space leaves.
func (b *builder) indentedCode(n *ast.CodeBlock, ext extent) *syntax.Node {
	return syntax.NewInner(syntax.KindCodeBlock, b.codeLines(nil, n.Lines(), ext.start, ext.end))
}

// codeLines emits one code leaf per content segment and classifies the
// bytes between segments.
func (b *builder) codeLines(out []*syntax.Node, lines *text.Segments, start, end int) []*syntax.Node {
	cursor := start
	for i := range lines.Len() {
		seg := lines.At(i)
		s := clamp(seg.Start, cursor, end)
		e := clamp(seg.Stop, s, end)
		if e <= s {
			continue
		}
		out = b.appendGap(out, cursor, s)
		out = append(out, syntax.NewLeaf(syntax.KindCode, string(b.source[s:e])))
		cursor = e
	}
	return b.appendGap(out, cursor, end)
}

// codeSpan splits a code span extent into its backtick runs and content.
func (b *builder) codeSpan(ext extent) *syntax.Node {
	s, e := ext.start, ext.end

	open := 0
	for s+open < e && b.source[s+open] == '`' {
		open++
	}
	clos := 0
	for e-1-clos >= s+open && b.source[e-1-clos] == '`' {
		clos++
	}
	t := min(open, clos)
	if t == 0 {
		return syntax.NewInner(syntax.KindCodeSpan, []*syntax.Node{
			syntax.NewLeaf(syntax.KindCode, b.slice(ext)),
		})
	}

	nodes := []*syntax.Node{syntax.NewLeaf(syntax.KindMarker, string(b.source[s:s+t]))}
	if e-t > s+t {
		nodes = append(nodes, syntax.NewLeaf(syntax.KindCode, string(b.source[s+t:e-t])))
	}
	nodes = append(nodes, syntax.NewLeaf(syntax.KindMarker, string(b.source[e-t:e])))
	return syntax.NewInner(syntax.KindCodeSpan, nodes)
}

// link builds a link or image: bracket markers and the destination around
// the label's inline children.
func (b *builder) link(gm ast.Node, kind syntax.Kind, ext extent) *syntax.Node {
	out, cursor := b.allocate(gm, ext)
	out = b.linkTail(out, cursor, ext.end)
	return syntax.NewInner(kind, out)
}

// linkTail decomposes the "](destination)" or "][reference]" trailer.
func (b *builder) linkTail(out []*syntax.Node, from, end int) []*syntax.Node {
	if from >= end || b.source[from] != ']' {
		return b.appendGap(out, from, end)
	}
	j := from + 1
	if j < end && (b.source[j] == '(' || b.source[j] == '[') {
		out = append(out, syntax.NewLeaf(syntax.KindMarker, string(b.source[from:j+1])))
		closer := end - 1
		if closer > j {
			if closer > j+1 {
				out = append(out, syntax.NewLeaf(syntax.KindText, string(b.source[j+1:closer])))
			}
			out = append(out, syntax.NewLeaf(syntax.KindMarker, string(b.source[closer:end])))
		}
		return out
	}
	out = append(out, syntax.NewLeaf(syntax.KindMarker, "]"))
	return b.appendGap(out, j, end)
}

// autoLink builds "<url>" with its angle markers, or a bare text leaf for
// extension-recognized links without them.
func (b *builder) autoLink(ext extent) *syntax.Node {
	s, e := ext.start, ext.end
	if e-s >= 2 && b.source[s] == '<' && b.source[e-1] == '>' {
		nodes := []*syntax.Node{syntax.NewLeaf(syntax.KindMarker, "<")}
		if e-1 > s+1 {
			nodes = append(nodes, syntax.NewLeaf(syntax.KindText, string(b.source[s+1:e-1])))
		}
		nodes = append(nodes, syntax.NewLeaf(syntax.KindMarker, ">"))
		return syntax.NewInner(syntax.KindLink, nodes)
	}
	return syntax.NewInner(syntax.KindLink, []*syntax.Node{
		syntax.NewLeaf(syntax.KindText, b.slice(ext)),
	})
}

func (b *builder) htmlLeaf(ext extent) []*syntax.Node {
	if ext.end <= ext.start {
		return nil
	}
	return []*syntax.Node{syntax.NewLeaf(syntax.KindText, b.slice(ext))}
}

// appendGap classifies the bytes of [start, end) into runs of whitespace,
// invalid UTF-8, and everything else, and appends one leaf per run.
func (b *builder) appendGap(out []*syntax.Node, start, end int) []*syntax.Node {
	i := start
	for i < end {
		class, size := classifyByte(b.source[i:end])
		j := i + size
		for j < end {
			c, s := classifyByte(b.source[j:end])
			if c != class {
				break
			}
			j += s
		}
		run := string(b.source[i:j])
		switch class {
		case gapSpace:
			out = append(out, syntax.NewLeaf(syntax.KindSpace, run))
		case gapInvalid:
			out = append(out, syntax.NewError("invalid UTF-8", run))
		default:
			out = append(out, syntax.NewLeaf(syntax.KindMarker, run))
		}
		i = j
	}
	return out
}

type gapClass uint8

const (
	gapMarker gapClass = iota
	gapSpace
	gapInvalid
)

func classifyByte(s []byte) (gapClass, int) {
	r, size := utf8.DecodeRune(s)
	if r == utf8.RuneError && size == 1 {
		return gapInvalid, 1
	}
	if unicode.IsSpace(r) {
		return gapSpace, size
	}
	return gapMarker, size
}

// firstContentLine returns the first line in [cursor, limit) with content,
// terminator excluded.
func (b *builder) firstContentLine(cursor, limit int) extent {
	i := cursor
	for i < limit {
		ls := i
		le := b.lineContentEnd(i, limit)
		if len(bytes.TrimSpace(b.source[ls:le])) > 0 {
			return extent{ls, le}
		}
		i = le + 1
	}
	return extent{-1, -1}
}

// fenceAt reports the fence character and run length of a fence line, or
// ok=false when the bytes are no fence.
func (b *builder) fenceAt(from, to int) (byte, int, bool) {
	i := from
	for i < to && (b.source[i] == ' ' || b.source[i] == '\t') {
		i++
	}
	if i >= to || (b.source[i] != '`' && b.source[i] != '~') {
		return 0, 0, false
	}
	ch := b.source[i]
	run := 0
	for i < to && b.source[i] == ch {
		i++
		run++
	}
	if run < 3 {
		return 0, 0, false
	}
	return ch, run, true
}

// fenceCloseEnd checks whether the line starting at from closes a fence
// of the given character and returns the offset past its content,
// terminator excluded, or -1.
func (b *builder) fenceCloseEnd(from, limit int, ch byte) int {
	if from >= limit {
		return -1
	}
	i := from
	for i < limit && b.source[i] == ' ' {
		i++
	}
	run := 0
	for i < limit && b.source[i] == ch {
		i++
		run++
	}
	if run < 3 {
		return -1
	}
	for i < limit && (b.source[i] == ' ' || b.source[i] == '\t') {
		i++
	}
	if i < limit && b.source[i] != '\n' {
		return -1
	}
	return i
}

// lineStart scans backwards to the first byte of the line containing pos.
func (b *builder) lineStart(pos int) int {
	if pos > len(b.source) {
		pos = len(b.source)
	}
	for pos > 0 && b.source[pos-1] != '\n' {
		pos--
	}
	return pos
}

// lineContentEnd scans forward to the terminator of the line containing
// pos, clamped to limit.
func (b *builder) lineContentEnd(pos, limit int) int {
	for pos < limit && b.source[pos] != '\n' {
		pos++
	}
	return pos
}

func (b *builder) slice(e extent) string {
	return string(b.source[e.start:e.end])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
