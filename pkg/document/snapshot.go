// Package document maintains the coupled state of one markup source file:
// the raw text, the syntax tree derived from it, and a position index
// mapping between byte offsets, UTF-16 offsets, and line/column pairs.
// The three stay consistent under single-range edits, which re-derive only
// the damaged region (see Snapshot.Edit).
//
// Snapshots are handles that share state on Clone and copy lazily on
// write: readers of one handle keep a complete, stable view while another
// handle advances.
package document

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/yaklabco/vellum/pkg/syntax"
)

// Snapshot is a handle to one document's text, tree, and line table.
//
// Any number of goroutines may query a handle concurrently. Mutation
// (Edit, Replace) is single-writer per handle: it must not race with reads
// of the same handle, while clones remain unaffected because a mutating
// handle takes a private copy of shared state first.
type Snapshot struct {
	state *state
}

// New parses text as the content of the document identified by id. It
// never fails; malformed markup surfaces as error nodes in the tree.
func New(id syntax.FileID, text string, parser Parser) *Snapshot {
	root := parser.Parse(text)
	numberize(root, id)
	return &Snapshot{state: newState(id, text, root, parser)}
}

// Detached parses text that belongs to no tracked document.
func Detached(text string, parser Parser) *Snapshot {
	return New(syntax.FileIDDetached, text, parser)
}

// Synthesized parses generated text whose nodes should all report origin
// as their span instead of getting fresh ones. Synthesized documents
// answer position queries like any other but are not meant to be edited.
func Synthesized(text string, origin syntax.Span, parser Parser) *Snapshot {
	root := parser.Parse(text)
	root.Synthesize(origin)
	return &Snapshot{state: newState(syntax.FileIDDetached, text, root, parser)}
}

// ID returns the document's identity.
func (s *Snapshot) ID() syntax.FileID { return s.state.id }

// Text returns the current text.
func (s *Snapshot) Text() string { return s.state.text }

// Root returns the current syntax tree. The tree is valid for this
// handle's state until the handle's next mutation.
func (s *Snapshot) Root() *syntax.Node { return s.state.root }

// Parser returns the parser the document was built with.
func (s *Snapshot) Parser() Parser { return s.state.parser }

// Clone returns a new handle sharing this snapshot's state. The sharing is
// undone lazily: whichever handle mutates first takes a private copy.
func (s *Snapshot) Clone() *Snapshot {
	s.state.refs.Add(1)
	return &Snapshot{state: s.state}
}

// Find returns the node identified by span, or nil when the span is
// detached, belongs to another document, or is stale.
func (s *Snapshot) Find(span syntax.Span) *syntax.LinkedNode {
	if span.IsDetached() {
		return nil
	}
	root := s.state.root
	// Synthesized trees carry a foreign origin identity, so compare
	// against the root's own span rather than the document identity.
	if span.ID() != root.Span().ID() {
		return nil
	}
	return syntax.NewLinkedNode(root).Find(span)
}

// Replace substitutes the entire text, rebuilding the tree and the line
// table wholesale. Identity is kept. Prefer Edit for single-range changes.
func (s *Snapshot) Replace(text string) {
	s.detach()
	st := s.state
	st.text = text
	st.lines = scanLines(text)
	st.root = st.parser.Parse(text)
	numberize(st.root, st.id)
}

// Edit replaces the byte range replace of the text with with, updates the
// line table incrementally, and patches the tree through the parser,
// falling back to a full parse when no narrower patch was safe. It returns
// the byte range of the new text that was re-derived.
//
// Edit panics when replace is out of bounds of the current text or cut
// inside a UTF-8 sequence; callers validate ranges first.
func (s *Snapshot) Edit(replace syntax.Range, with string) syntax.Range {
	startUTF16, ok := s.ByteToUTF16(replace.Start)
	if !ok {
		panic(fmt.Sprintf("document: edit start %d invalid for text of %d bytes",
			replace.Start, len(s.state.text)))
	}
	if replace.End < replace.Start || !s.isBoundary(replace.End) {
		panic(fmt.Sprintf("document: edit range %v invalid for text of %d bytes",
			replace, len(s.state.text)))
	}
	line := lineIndexForByte(s.state.lines, replace.Start)

	s.detach()
	st := s.state

	// Update the text itself.
	st.text = st.text[:replace.Start] + with + st.text[replace.End:]

	// Remove invalidated line starts.
	st.lines = st.lines[:line+1]

	// The break between a retained "\r" and an inserted "\n" vanishes,
	// since together they form a single terminator.
	if strings.HasSuffix(st.text[:replace.Start], "\r") && strings.HasPrefix(with, "\n") {
		st.lines = st.lines[:len(st.lines)-1]
	}

	st.lines = appendLinesFrom(st.lines, replace.Start, startUTF16, st.text[replace.Start:])

	affected, ok := st.parser.Reparse(st.root, st.text, replace, len(with))
	if !ok {
		st.root = st.parser.Parse(st.text)
		numberize(st.root, st.id)
		affected = syntax.NewRange(0, len(st.text))
	}
	return affected
}

// String renders the snapshot for debugging.
func (s *Snapshot) String() string {
	if path, ok := syntax.Path(s.state.id); ok {
		return fmt.Sprintf("Snapshot(%s)", path)
	}
	return "Snapshot(detached)"
}

// state is the triple shared by the handles of one logical document, plus
// the count of handles sharing it.
type state struct {
	refs   atomic.Int64
	id     syntax.FileID
	text   string
	root   *syntax.Node
	lines  []Line
	parser Parser
}

func newState(id syntax.FileID, text string, root *syntax.Node, parser Parser) *state {
	st := &state{id: id, text: text, root: root, lines: scanLines(text), parser: parser}
	st.refs.Store(1)
	return st
}

// detach gives the handle exclusive ownership of its state, copying when
// other handles still share it. Handles dropped without mutating leave the
// count high; that only costs a spurious copy later, never correctness.
func (s *Snapshot) detach() {
	if s.state.refs.Load() == 1 {
		return
	}
	st := &state{
		id:     s.state.id,
		text:   s.state.text,
		root:   s.state.root.Clone(),
		lines:  append([]Line(nil), s.state.lines...),
		parser: s.state.parser,
	}
	st.refs.Store(1)
	s.state.refs.Add(-1)
	s.state = st
}

// numberize panics on number space exhaustion, which would take a tree of
// around 2^46 nodes; no real document reaches that.
func numberize(root *syntax.Node, id syntax.FileID) {
	if err := root.Numberize(id); err != nil {
		panic(fmt.Sprintf("document: %v", err))
	}
}
