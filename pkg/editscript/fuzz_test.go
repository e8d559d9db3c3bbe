package editscript_test

import (
	"testing"
	"unicode/utf8"

	"github.com/yaklabco/vellum/pkg/document"
	"github.com/yaklabco/vellum/pkg/editscript"
	"github.com/yaklabco/vellum/pkg/parser/goldmark"
)

func FuzzSplice(f *testing.F) {
	// Add seed corpus.
	f.Add("hello", 0, 5, "world")
	f.Add("hello world", 5, 5, " beautiful")
	f.Add("abcdef", 0, 0, "prefix")
	f.Add("abcdef", 6, 6, "suffix")
	f.Add("abcdef", 2, 4, "")
	f.Add("# Title\n\nbody\n", 9, 13, "text")

	f.Fuzz(func(t *testing.T, content string, start, end int, text string) {
		if start < 0 || end < start || end > len(content) {
			return // Invalid edit, skip.
		}

		edits := []editscript.Edit{
			{Start: start, End: end, Text: text},
		}

		result := editscript.Splice(content, edits)

		expectedLen := len(content) - (end - start) + len(text)
		if len(result) != expectedLen {
			t.Fatalf("result length = %d, want %d", len(result), expectedLen)
		}

		if result[:start] != content[:start] {
			t.Error("content before edit modified")
		}
		if result[start:start+len(text)] != text {
			t.Error("replacement text missing")
		}
		if result[start+len(text):] != content[end:] {
			t.Error("content after edit modified")
		}
	})
}

func FuzzApplyMatchesSplice(f *testing.F) {
	// Add seed corpus.
	f.Add("# Title\n\nhello world\n", 9, 14, "HELLO")
	f.Add("one\ntwo\n", 4, 7, "2")
	f.Add("plain\n", 0, 0, "# ")
	f.Add("a\r\nb\n", 3, 4, "c")
	f.Add("", 0, 0, "\U0001f49b\n")

	f.Fuzz(func(t *testing.T, content string, start, end int, text string) {
		if !utf8.ValidString(content) || !utf8.ValidString(text) {
			return // Mixed-up scalars make offsets ambiguous, skip.
		}
		if start < 0 || end < start || end > len(content) {
			return // Invalid edit, skip.
		}
		if start < len(content) && !utf8.RuneStart(content[start]) {
			return // Cut inside a scalar, skip.
		}
		if end < len(content) && !utf8.RuneStart(content[end]) {
			return // Cut inside a scalar, skip.
		}

		edits := []editscript.Edit{
			{Start: start, End: end, Text: text},
		}
		if err := editscript.Validate(edits, content); err != nil {
			t.Fatalf("Validate rejected an in-bounds boundary edit: %v", err)
		}

		doc := document.Detached(content, goldmark.New(goldmark.FlavorCommonMark))
		results := editscript.Apply(doc, edits)

		if want := editscript.Splice(content, edits); doc.Text() != want {
			t.Errorf("document text = %q, splice = %q", doc.Text(), want)
		}

		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		aff := results[0].Affected
		if aff.Start < 0 || aff.End < aff.Start || aff.End > len(doc.Text()) {
			t.Errorf("affected %v out of bounds for %d bytes", aff, len(doc.Text()))
		}
	})
}

func FuzzGenerateDiff(f *testing.F) {
	// Add seed corpus.
	f.Add("", "")
	f.Add("hello", "hello")
	f.Add("hello", "world")
	f.Add("hello\n", "hello\n")
	f.Add("a\nb\nc\n", "a\nx\nc\n")
	f.Add("line1\nline2\n", "line1\nline2\nline3\n")
	f.Add("line1\nline2\nline3\n", "line1\nline3\n")
	f.Add("a\nb\nc\nd\ne\n", "a\nB\nc\nD\ne\n")

	f.Fuzz(func(t *testing.T, original, modified string) {
		diff := editscript.GenerateDiff("doc.md", original, modified)

		// Nil means the contents split into the same lines.
		if diff == nil {
			return
		}

		if diff.Path != "doc.md" {
			t.Errorf("Path = %q, want doc.md", diff.Path)
		}

		_ = diff.String()

		if !diff.HasChanges() && len(diff.Hunks) > 0 {
			t.Error("HasChanges() inconsistent with Hunks")
		}

		for hunkIdx, hunk := range diff.Hunks {
			if hunk.OriginalStart < 1 {
				t.Errorf("hunk %d: OriginalStart = %d, want >= 1", hunkIdx, hunk.OriginalStart)
			}
			if hunk.ModifiedStart < 1 {
				t.Errorf("hunk %d: ModifiedStart = %d, want >= 1", hunkIdx, hunk.ModifiedStart)
			}

			var ctxCount, addCount, remCount int
			for _, line := range hunk.Lines {
				switch line.Kind {
				case editscript.DiffLineContext:
					ctxCount++
				case editscript.DiffLineAdd:
					addCount++
				case editscript.DiffLineRemove:
					remCount++
				}
			}

			if ctxCount+remCount != hunk.OriginalCount {
				t.Errorf("hunk %d: context(%d) + remove(%d) != OriginalCount(%d)",
					hunkIdx, ctxCount, remCount, hunk.OriginalCount)
			}
			if ctxCount+addCount != hunk.ModifiedCount {
				t.Errorf("hunk %d: context(%d) + add(%d) != ModifiedCount(%d)",
					hunkIdx, ctxCount, addCount, hunk.ModifiedCount)
			}
		}
	})
}
