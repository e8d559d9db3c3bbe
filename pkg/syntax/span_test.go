package syntax_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/vellum/pkg/syntax"
)

func TestInternReturnsStableIDs(t *testing.T) {
	t.Parallel()

	a := syntax.Intern("test/stable-a.md")
	b := syntax.Intern("test/stable-b.md")
	again := syntax.Intern("test/stable-a.md")

	if a == syntax.FileIDDetached || b == syntax.FileIDDetached {
		t.Fatal("interned IDs must not be the detached identity")
	}
	if a == b {
		t.Errorf("distinct paths share ID %d", a)
	}
	if a != again {
		t.Errorf("same path interned twice: %d then %d", a, again)
	}
}

func TestPathRoundTrip(t *testing.T) {
	t.Parallel()

	id := syntax.Intern("test/roundtrip.md")

	path, ok := syntax.Path(id)
	if !ok {
		t.Fatal("Path returned absence for an interned ID")
	}
	if path != "test/roundtrip.md" {
		t.Errorf("expected test/roundtrip.md, got %s", path)
	}
}

func TestPathDetached(t *testing.T) {
	t.Parallel()

	if _, ok := syntax.Path(syntax.FileIDDetached); ok {
		t.Error("detached identity should have no path")
	}
}

func TestSpanPacking(t *testing.T) {
	t.Parallel()

	id := syntax.Intern("test/packing.md")
	root := syntax.NewInner(syntax.KindDocument, []*syntax.Node{
		syntax.NewLeaf(syntax.KindText, "hello"),
	})
	if err := root.Numberize(id); err != nil {
		t.Fatalf("Numberize: %v", err)
	}

	span := root.Children()[0].Span()
	if span.IsDetached() {
		t.Fatal("numbered node has a detached span")
	}
	if span.ID() != id {
		t.Errorf("span identity: expected %d, got %d", id, span.ID())
	}
	if span.Number() < 2 {
		t.Errorf("span number %d below the reserved floor", span.Number())
	}
}

func TestSpanZeroValueIsDetached(t *testing.T) {
	t.Parallel()

	var span syntax.Span
	if !span.IsDetached() {
		t.Error("zero span should be detached")
	}
	if span.String() != "Span(detached)" {
		t.Errorf("unexpected detached rendering %q", span.String())
	}
}

func TestSpanStringResolvesPath(t *testing.T) {
	t.Parallel()

	id := syntax.Intern("test/span-string.md")
	root := syntax.NewLeaf(syntax.KindText, "x")
	if err := root.Numberize(id); err != nil {
		t.Fatalf("Numberize: %v", err)
	}

	s := root.Span().String()
	if !strings.Contains(s, "test/span-string.md") {
		t.Errorf("expected rendered span to name the path, got %q", s)
	}
}

func TestRangeAccessors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		r        syntax.Range
		length   int
		empty    bool
		contains int
		want     bool
	}{
		{name: "simple", r: syntax.NewRange(2, 5), length: 3, empty: false, contains: 2, want: true},
		{name: "end exclusive", r: syntax.NewRange(2, 5), length: 3, empty: false, contains: 5, want: false},
		{name: "empty", r: syntax.NewRange(4, 4), length: 0, empty: true, contains: 4, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.r.Len(); got != tt.length {
				t.Errorf("Len: expected %d, got %d", tt.length, got)
			}
			if got := tt.r.IsEmpty(); got != tt.empty {
				t.Errorf("IsEmpty: expected %v, got %v", tt.empty, got)
			}
			if got := tt.r.Contains(tt.contains); got != tt.want {
				t.Errorf("Contains(%d): expected %v, got %v", tt.contains, tt.want, got)
			}
		})
	}
}
