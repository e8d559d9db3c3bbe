package document_test

import (
	"testing"

	"github.com/yaklabco/vellum/pkg/document"
	"github.com/yaklabco/vellum/pkg/syntax"
)

func TestNewSnapshot(t *testing.T) {
	t.Parallel()

	id := syntax.Intern("test/new.md")
	doc := document.New(id, "hello\nworld", rawParser{})

	if doc.ID() != id {
		t.Errorf("expected identity %d, got %d", id, doc.ID())
	}
	if doc.Text() != "hello\nworld" {
		t.Errorf("unexpected text %q", doc.Text())
	}
	if doc.Root() == nil {
		t.Fatal("nil root")
	}
	if doc.Root().Len() != doc.LenBytes() {
		t.Errorf("root covers %d bytes, text has %d", doc.Root().Len(), doc.LenBytes())
	}
	if doc.Root().Span().ID() != id {
		t.Errorf("root numbered with identity %d, expected %d", doc.Root().Span().ID(), id)
	}
	if doc.LenLines() != 2 {
		t.Errorf("expected 2 lines, got %d", doc.LenLines())
	}
}

func TestDetachedSnapshot(t *testing.T) {
	t.Parallel()

	doc := document.Detached("side note", rawParser{})

	if doc.ID() != syntax.FileIDDetached {
		t.Errorf("expected detached identity, got %d", doc.ID())
	}
	// Untracked text still gets usable spans.
	if doc.Root().Span().IsDetached() {
		t.Error("detached document has an unnumbered root")
	}
	if doc.String() != "Snapshot(detached)" {
		t.Errorf("unexpected rendering %q", doc.String())
	}
}

func TestSynthesizedSnapshot(t *testing.T) {
	t.Parallel()

	base := document.New(syntax.Intern("test/synth-origin.md"), "origin", rawParser{})
	origin := base.Root().Span()

	syn := document.Synthesized("generated text", origin, rawParser{})

	if syn.ID() != syntax.FileIDDetached {
		t.Errorf("expected detached identity, got %d", syn.ID())
	}
	err := syntax.Walk(syn.Root(), func(n *syntax.Node) error {
		if n.Span() != origin {
			t.Errorf("node %s has span %v, expected the origin %v", n, n.Span(), origin)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}

	// Lookup by the origin span resolves against the synthesized tree.
	if found := syn.Find(origin); found == nil || found.Node() != syn.Root() {
		t.Error("origin span did not resolve to the synthesized root")
	}

	// Position queries work as usual.
	if u, ok := syn.ByteToUTF16(9); !ok || u != 9 {
		t.Errorf("ByteToUTF16(9): expected (9, true), got (%d, %v)", u, ok)
	}
}

func TestEditUpdatesLinesIncrementally(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		start, end int
		with       string
		want       string
	}{
		{
			name: "insert line at start",
			text: "abc\n",
			with: "hi\n",
			want: "hi\nabc\n",
		},
		{
			name:  "insert cr before lf joins them",
			text:  "\nabc",
			start: 0, end: 0,
			with: "hi\r",
			want: "hi\r\nabc",
		},
		{
			name:  "insert lf after cr joins them",
			text:  "abc\ndef\r",
			start: 8, end: 8,
			with: "\nghi",
			want: "abc\ndef\r\nghi",
		},
		{
			name:  "delete everything",
			text:  testText,
			start: 0, end: 21,
			want: "",
		},
		{
			name:  "replace a supplementary scalar",
			text:  testText,
			start: 8, end: 12,
			with: "?",
			want: "ä\tcde\nf?g\r\nhi\rjkl",
		},
		{
			name:  "append at end",
			text:  "one\ntwo",
			start: 7, end: 7,
			with: "\nthree\n",
			want: "one\ntwo\nthree\n",
		},
		{
			name:  "delete a terminator",
			text:  "one\ntwo\n",
			start: 3, end: 4,
			with: " ",
			want: "one two\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := document.Detached(tt.text, rawParser{})
			affected := doc.Edit(syntax.NewRange(tt.start, tt.end), tt.with)

			if doc.Text() != tt.want {
				t.Fatalf("expected text %q, got %q", tt.want, doc.Text())
			}

			// The fallback parser reports the whole file.
			if affected.Start != 0 || affected.End != len(tt.want) {
				t.Errorf("expected affected 0..%d, got %v", len(tt.want), affected)
			}

			// The incrementally maintained table must equal one built from
			// scratch over the new text.
			fresh := document.Detached(tt.want, rawParser{}).Lines()
			got := doc.Lines()
			if len(got) != len(fresh) {
				t.Fatalf("expected %d lines, got %d (%v vs %v)", len(fresh), len(got), fresh, got)
			}
			for i := range fresh {
				if got[i] != fresh[i] {
					t.Errorf("line %d: expected %+v, got %+v", i, fresh[i], got[i])
				}
			}

			// The tree was rebuilt against the new text.
			if doc.Root().Len() != len(tt.want) {
				t.Errorf("root covers %d bytes, text has %d", doc.Root().Len(), len(tt.want))
			}
		})
	}
}

// patchParser pretends every edit was patched in place, so Edit must
// neither re-parse nor touch the tree.
type patchParser struct {
	rawParser
}

func (patchParser) Reparse(_ *syntax.Node, _ string, replaced syntax.Range, replLen int) (syntax.Range, bool) {
	return syntax.NewRange(replaced.Start, replaced.Start+replLen), true
}

func TestEditUsesParserPatch(t *testing.T) {
	t.Parallel()

	doc := document.Detached("one two", patchParser{})
	rootBefore := doc.Root()

	affected := doc.Edit(syntax.NewRange(4, 7), "2")

	if doc.Text() != "one 2" {
		t.Errorf("unexpected text %q", doc.Text())
	}
	if affected != syntax.NewRange(4, 5) {
		t.Errorf("expected affected 4..5, got %v", affected)
	}
	if doc.Root() != rootBefore {
		t.Error("tree replaced although the parser patched in place")
	}
}

func TestEditPanicsOnBadRanges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		start, end int
	}{
		{name: "start past end of text", text: "abc", start: 4, end: 4},
		{name: "end past end of text", text: "abc", start: 0, end: 4},
		{name: "inverted", text: "abc", start: 2, end: 1},
		{name: "negative", text: "abc", start: -1, end: 0},
		{name: "start inside a scalar", text: "ä", start: 1, end: 2},
		{name: "end inside a scalar", text: "xä", start: 0, end: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := document.Detached(tt.text, rawParser{})
			defer func() {
				if recover() == nil {
					t.Errorf("Edit(%d..%d) on %q did not panic", tt.start, tt.end, tt.text)
				}
			}()
			doc.Edit(syntax.NewRange(tt.start, tt.end), "x")
		})
	}
}

func TestCloneSharesThenIsolates(t *testing.T) {
	t.Parallel()

	doc := document.New(syntax.Intern("test/clone-isolate.md"), "one\ntwo\n", rawParser{})
	clone := doc.Clone()

	if clone.Text() != doc.Text() || clone.Root() != doc.Root() {
		t.Fatal("clone does not share state before mutation")
	}

	doc.Edit(syntax.NewRange(0, 3), "1")

	if doc.Text() != "1\ntwo\n" {
		t.Errorf("unexpected edited text %q", doc.Text())
	}
	if clone.Text() != "one\ntwo\n" {
		t.Errorf("clone observed the edit: %q", clone.Text())
	}
	if clone.LenLines() != 3 || doc.LenLines() != 3 {
		t.Errorf("line counts diverged wrong: doc %d, clone %d", doc.LenLines(), clone.LenLines())
	}
	if clone.Root() == doc.Root() {
		t.Error("clone shares a tree with the edited document")
	}

	// The clone, now sole owner of the old state, can mutate too.
	clone.Edit(syntax.NewRange(4, 7), "2")
	if clone.Text() != "one\n2\n" {
		t.Errorf("unexpected clone text %q", clone.Text())
	}
	if doc.Text() != "1\ntwo\n" {
		t.Errorf("edit of the clone leaked into the original: %q", doc.Text())
	}
}

func TestCloneOfCloneIsolates(t *testing.T) {
	t.Parallel()

	doc := document.Detached("alpha", rawParser{})
	one := doc.Clone()
	two := one.Clone()

	one.Replace("beta")

	if doc.Text() != "alpha" || two.Text() != "alpha" {
		t.Errorf("sibling handles observed a replace: %q, %q", doc.Text(), two.Text())
	}
	if one.Text() != "beta" {
		t.Errorf("unexpected replaced text %q", one.Text())
	}
}

func TestReplaceRebuildsEverything(t *testing.T) {
	t.Parallel()

	id := syntax.Intern("test/replace.md")
	doc := document.New(id, "before\n", rawParser{})

	doc.Replace("after\nmath\n")

	if doc.ID() != id {
		t.Error("identity changed across Replace")
	}
	if doc.Text() != "after\nmath\n" {
		t.Errorf("unexpected text %q", doc.Text())
	}
	if doc.LenLines() != 3 {
		t.Errorf("expected 3 lines, got %d", doc.LenLines())
	}
	if doc.Root().Len() != doc.LenBytes() {
		t.Errorf("root covers %d bytes, text has %d", doc.Root().Len(), doc.LenBytes())
	}
	if doc.Root().Span().ID() != id {
		t.Error("rebuilt tree numbered with the wrong identity")
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	doc := document.New(syntax.Intern("test/find.md"), "needle", rawParser{})
	leaf := doc.Root().Children()[0]

	found := doc.Find(leaf.Span())
	if found == nil || found.Node() != leaf {
		t.Fatal("leaf span did not resolve")
	}
	if found.Range() != syntax.NewRange(0, 6) {
		t.Errorf("expected range 0..6, got %v", found.Range())
	}

	if doc.Find(syntax.Span(0)) != nil {
		t.Error("detached span resolved")
	}

	other := document.New(syntax.Intern("test/find-other.md"), "needle", rawParser{})
	if doc.Find(other.Root().Span()) != nil {
		t.Error("span of another document resolved")
	}
}

func TestSnapshotString(t *testing.T) {
	t.Parallel()

	doc := document.New(syntax.Intern("test/string.md"), "", rawParser{})
	if doc.String() != "Snapshot(test/string.md)" {
		t.Errorf("unexpected rendering %q", doc.String())
	}
}
