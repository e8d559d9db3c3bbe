package analysis

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vellum/pkg/document"
	"github.com/yaklabco/vellum/pkg/parser/goldmark"
)

func parseDoc(t *testing.T, content string) *document.Snapshot {
	t.Helper()
	return document.Detached(content, goldmark.New(goldmark.FlavorCommonMark))
}

func findKind(entries []KindAnalysis, kind string) *KindAnalysis {
	for i := range entries {
		if entries[i].Kind == kind {
			return &entries[i]
		}
	}
	return nil
}

func findLanguage(entries []LanguageAnalysis, lang string) *LanguageAnalysis {
	for i := range entries {
		if entries[i].Language == lang {
			return &entries[i]
		}
	}
	return nil
}

func TestAnalyze_NilDocument(t *testing.T) {
	t.Parallel()

	report := Analyze(nil, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, ReportVersion, report.Version)
	assert.Equal(t, Totals{}, report.Totals)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.ByKind)
	assert.Empty(t, report.Languages)
}

func TestAnalyze_CountsTotals(t *testing.T) {
	t.Parallel()

	content := "# Title\n\nHello **world**.\n"
	doc := parseDoc(t, content)

	report := Analyze(doc, DefaultOptions())

	assert.Equal(t, len(content), report.Totals.Bytes)
	assert.Equal(t, len(content), report.Totals.UTF16Units, "pure ASCII counts one unit per byte")
	assert.Equal(t, 4, report.Totals.Lines, "a line starts at zero and after every newline")
	assert.Equal(t, doc.Root().Descendants(), report.Totals.Nodes)
	assert.Greater(t, report.Totals.Leaves, 0)
	assert.Less(t, report.Totals.Leaves, report.Totals.Nodes)
	assert.GreaterOrEqual(t, report.Totals.Depth, 4, "strong text nests under the paragraph")
	assert.Equal(t, 0, report.Totals.Errors)
	assert.False(t, report.Totals.HasErrors())
}

func TestAnalyze_GroupsByKind(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, "# One\n\n# Two\n\nplain text\n")

	report := Analyze(doc, DefaultOptions())

	require.NotEmpty(t, report.ByKind)

	headings := findKind(report.ByKind, "Heading")
	require.NotNil(t, headings)
	assert.Equal(t, 2, headings.Count)
	assert.Greater(t, headings.Bytes, 0)

	paragraphs := findKind(report.ByKind, "Paragraph")
	require.NotNil(t, paragraphs)
	assert.Equal(t, 1, paragraphs.Count)

	// Sorted by count descending by default.
	for i := 1; i < len(report.ByKind); i++ {
		assert.GreaterOrEqual(t, report.ByKind[i-1].Count, report.ByKind[i].Count)
	}
}

func TestAnalyze_SortByAlpha(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, "# One\n\nsome *emphasis* here\n")

	opts := DefaultOptions()
	opts.SortBy = SortByAlpha

	report := Analyze(doc, opts)

	names := make([]string, len(report.ByKind))
	for i, ka := range report.ByKind {
		names[i] = ka.Kind
	}
	assert.True(t, slices.IsSorted(names), "kinds should sort A-Z, got %v", names)
}

func TestAnalyze_SortByBytes(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, "# One\n\nplain text\n")

	opts := DefaultOptions()
	opts.SortBy = SortByBytes

	report := Analyze(doc, opts)

	require.NotEmpty(t, report.ByKind)
	assert.Equal(t, "Document", report.ByKind[0].Kind, "the root covers every byte")
	assert.Equal(t, doc.LenBytes(), report.ByKind[0].Bytes)
}

func TestAnalyze_CollectsErrors(t *testing.T) {
	t.Parallel()

	content := "```go\ncode\n"
	doc := parseDoc(t, content)

	report := Analyze(doc, DefaultOptions())

	assert.Equal(t, 1, report.Totals.Errors)
	assert.True(t, report.Totals.HasErrors())

	require.Len(t, report.Errors, 1)
	entry := report.Errors[0]
	assert.Equal(t, "unclosed code fence", entry.Message)
	assert.Equal(t, len(content), entry.Offset, "the missing fence is an absence at the end")
	assert.Equal(t, 0, entry.Length)
	assert.Equal(t, 3, entry.Line)
	assert.Equal(t, 1, entry.Column)
}

func TestAnalyze_Languages(t *testing.T) {
	t.Parallel()

	content := "```go\nfunc main() {}\n```\n\n```\n{\"key\": \"value\"}\n```\n"
	doc := parseDoc(t, content)

	report := Analyze(doc, DefaultOptions())

	assert.Equal(t, 2, report.Totals.CodeBlocks)
	require.Len(t, report.Languages, 2)

	goLang := findLanguage(report.Languages, "go")
	require.NotNil(t, goLang)
	assert.Equal(t, 1, goLang.Blocks)
	assert.Equal(t, len("func main() {}\n"), goLang.Bytes)
	assert.Equal(t, 0, goLang.Detected, "the info string was explicit")

	jsonLang := findLanguage(report.Languages, "json")
	require.NotNil(t, jsonLang)
	assert.Equal(t, 1, jsonLang.Blocks)
	assert.Equal(t, 1, jsonLang.Detected, "no info string, so content was classified")
}

func TestAnalyze_InfoStringBeatsContent(t *testing.T) {
	t.Parallel()

	// The content looks like JSON but the author said text.
	doc := parseDoc(t, "```text\n{\"key\": \"value\"}\n```\n")

	report := Analyze(doc, DefaultOptions())

	require.Len(t, report.Languages, 1)
	assert.Equal(t, "text", report.Languages[0].Language)
	assert.Equal(t, 0, report.Languages[0].Detected)
}

func TestAnalyze_ExcludeViews(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, "```go\ncode\n")

	opts := Options{
		IncludeErrors:    false,
		IncludeByKind:    false,
		IncludeLanguages: false,
		SortBy:           SortByCount,
		SortDesc:         true,
	}

	report := Analyze(doc, opts)

	assert.Empty(t, report.Errors, "errors should be excluded")
	assert.Empty(t, report.ByKind, "byKind should be excluded")
	assert.Empty(t, report.Languages, "languages should be excluded")
	assert.Equal(t, 1, report.Totals.Errors, "totals always computed")
	assert.Equal(t, 1, report.Totals.CodeBlocks, "totals always computed")
}

func TestAnalyze_RelativePath(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, "# Title\n")

	opts := DefaultOptions()
	opts.Path = "/home/user/docs/guide.md"
	opts.WorkingDir = "/home/user"
	opts.Flavor = goldmark.FlavorCommonMark

	report := Analyze(doc, opts)

	assert.Equal(t, "docs/guide.md", report.Path)
	assert.Equal(t, "commonmark", report.Flavor)
}
