package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vellum/internal/ui/pretty"
	"github.com/yaklabco/vellum/pkg/analysis"
	"github.com/yaklabco/vellum/pkg/document"
	"github.com/yaklabco/vellum/pkg/parser/goldmark"
)

func parseDoc(t *testing.T, content string) *document.Snapshot {
	t.Helper()
	doc := document.Detached(content, goldmark.New(goldmark.FlavorCommonMark))
	require.NotNil(t, doc)
	return doc
}

func TestFormatTree_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)
	doc := parseDoc(t, "# Title\n")

	output := styles.FormatTree(doc, pretty.TreeOptions{})

	assert.Contains(t, output, "Document")
	assert.Contains(t, output, "├── Heading")
	assert.Contains(t, output, "│   ├── Marker")
	assert.Contains(t, output, "│   └── Text")
	assert.Contains(t, output, "└── Space")

	// No offsets, spans, or text unless requested
	assert.NotContains(t, output, "[0..8)")
	assert.NotContains(t, output, `"Title"`)
}

func TestFormatTree_Offsets(t *testing.T) {
	styles := pretty.NewStyles(false)
	doc := parseDoc(t, "# Title\n")

	output := styles.FormatTree(doc, pretty.TreeOptions{Offsets: true})

	// Document covers the whole source, the Text leaf covers "Title"
	assert.Contains(t, output, "[0..8)")
	assert.Contains(t, output, "[2..7)")
}

func TestFormatTree_Text(t *testing.T) {
	styles := pretty.NewStyles(false)
	doc := parseDoc(t, "# Title\n")

	output := styles.FormatTree(doc, pretty.TreeOptions{Text: true})

	assert.Contains(t, output, `"Title"`)
	assert.Contains(t, output, `"#"`)
	assert.Contains(t, output, `"\n"`)
}

func TestFormatTree_TextTruncated(t *testing.T) {
	styles := pretty.NewStyles(false)
	doc := parseDoc(t, "a paragraph with a fairly long run of text in it\n")

	output := styles.FormatTree(doc, pretty.TreeOptions{Text: true, MaxText: 16})

	assert.Contains(t, output, "...")
	assert.NotContains(t, output, `"a paragraph with a fairly long run of text in it"`)
}

func TestFormatTree_MaxDepth(t *testing.T) {
	styles := pretty.NewStyles(false)
	doc := parseDoc(t, "# Title\n")

	output := styles.FormatTree(doc, pretty.TreeOptions{MaxDepth: 1})

	assert.Contains(t, output, "Heading")
	assert.NotContains(t, output, "Marker")
}

func TestFormatTree_Errors(t *testing.T) {
	styles := pretty.NewStyles(false)
	doc := parseDoc(t, "```go\ncode\n")

	output := styles.FormatTree(doc, pretty.TreeOptions{})

	assert.Contains(t, output, "Error")
	assert.Contains(t, output, "(unclosed code fence)")
}

func TestFormatTree_Spans(t *testing.T) {
	styles := pretty.NewStyles(false)
	doc := parseDoc(t, "# Title\n")

	output := styles.FormatTree(doc, pretty.TreeOptions{Spans: true})

	// Detached documents still carry numbered spans
	assert.Regexp(t, `#\d+`, output)
}

func TestFormatTree_Languages(t *testing.T) {
	styles := pretty.NewStyles(false)
	doc := parseDoc(t, "```go\nfunc main() {}\n```\n\n```\n{\"key\": \"value\"}\n```\n")

	output := styles.FormatTree(doc, pretty.TreeOptions{Languages: true})

	// Tagged fence reports its info string, bare fence falls back to detection
	assert.Contains(t, output, "lang=go")
	assert.Contains(t, output, "lang=json")
}

func TestFormatParseError(t *testing.T) {
	styles := pretty.NewStyles(false)

	entry := analysis.ErrorEntry{
		Message: "unclosed code fence",
		Line:    3,
		Column:  1,
	}
	output := styles.FormatParseError("docs/guide.md", entry)

	assert.Equal(t, "  docs/guide.md:3:1  error  unclosed code fence\n", output)
}

func TestFormatFileHeader_NoErrors(t *testing.T) {
	styles := pretty.NewStyles(false)

	output := styles.FormatFileHeader("README.md", 0)

	assert.Equal(t, "README.md", output)
}

func TestFormatFileHeader_WithErrors(t *testing.T) {
	styles := pretty.NewStyles(false)

	output := styles.FormatFileHeader("README.md", 1)
	assert.Equal(t, "README.md (1 parse error)", output)

	output = styles.FormatFileHeader("README.md", 3)
	assert.Equal(t, "README.md (3 parse errors)", output)
}
