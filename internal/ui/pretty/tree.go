package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/vellum/pkg/analysis"
	"github.com/yaklabco/vellum/pkg/document"
	"github.com/yaklabco/vellum/pkg/langdetect"
	"github.com/yaklabco/vellum/pkg/syntax"
)

// Tree drawing constants.
const (
	guideBranch = "├── "
	guideLast   = "└── "
	guideBar    = "│   "
	guideBlank  = "    "

	defaultMaxLeafText = 40
)

// TreeOptions controls what FormatTree prints for each node.
type TreeOptions struct {
	// Offsets prints the byte range each node covers.
	Offsets bool

	// Spans prints the raw span number next to each node.
	Spans bool

	// Text prints leaf text, quoted and truncated to MaxText.
	Text bool

	// MaxText bounds quoted leaf text; zero means a default of 40.
	MaxText int

	// MaxDepth stops descending below this depth; zero means unlimited.
	MaxDepth int

	// Languages labels code blocks with their language.
	Languages bool
}

// FormatTree renders the document's syntax tree with box-drawing guides.
// Nodes print in source order; byte offsets accumulate during the walk
// since nodes store lengths, not positions.
func (s *Styles) FormatTree(doc *document.Snapshot, opts TreeOptions) string {
	if opts.MaxText <= 0 {
		opts.MaxText = defaultMaxLeafText
	}

	var builder strings.Builder
	root := doc.Root()
	builder.WriteString(s.formatNodeLabel(root, 0, opts))
	builder.WriteString("\n")
	s.writeChildren(&builder, root, "", 0, 1, opts)
	return builder.String()
}

// writeChildren renders n's children below it, one line each, recursing
// into subtrees. offset is the byte offset of n's first byte and depth is
// the depth of the children being written, with the root at depth zero.
func (s *Styles) writeChildren(builder *strings.Builder, n *syntax.Node, lead string, offset, depth int, opts TreeOptions) {
	if opts.MaxDepth > 0 && depth > opts.MaxDepth {
		return
	}

	children := n.Children()
	childOffset := offset
	for i, c := range children {
		branch, nextLead := guideBranch, lead+guideBar
		if i == len(children)-1 {
			branch, nextLead = guideLast, lead+guideBlank
		}

		builder.WriteString(s.TreeGuide.Render(lead + branch))
		builder.WriteString(s.formatNodeLabel(c, childOffset, opts))
		builder.WriteString("\n")

		s.writeChildren(builder, c, nextLead, childOffset, depth+1, opts)
		childOffset += c.Len()
	}
}

// formatNodeLabel renders one node: its kind, then the optional byte
// range, span number, quoted leaf text, and code block language.
func (s *Styles) formatNodeLabel(n *syntax.Node, offset int, opts TreeOptions) string {
	var parts []string

	if n.Kind() == syntax.KindError {
		label := s.ErrorMark.Render("Error")
		if msg := n.Message(); msg != "" {
			label += " " + s.Error.Render("("+msg+")")
		}
		parts = append(parts, label)
	} else {
		parts = append(parts, s.Kind.Render(n.Kind().String()))
	}

	if opts.Offsets {
		parts = append(parts, s.Span.Render(fmt.Sprintf("[%d..%d)", offset, offset+n.Len())))
	}

	if opts.Spans {
		parts = append(parts, s.Span.Render("#"+strconv.FormatUint(n.Span().Number(), 10)))
	}

	if opts.Text && n.IsLeaf() && n.Len() > 0 {
		parts = append(parts, s.LeafText.Render(quoteLeafText(n.Text(), opts.MaxText)))
	}

	if opts.Languages && n.Kind() == syntax.KindCodeBlock {
		parts = append(parts, s.Language.Render("lang="+blockLanguage(n)))
	}

	return strings.Join(parts, " ")
}

// quoteLeafText renders leaf text as a quoted, length-bounded excerpt.
func quoteLeafText(text string, maxLen int) string {
	return truncateString(strconv.Quote(text), maxLen)
}

// blockLanguage names a code block's language: the fence info string
// when the author wrote one, otherwise a guess from the content.
func blockLanguage(block *syntax.Node) string {
	var content strings.Builder
	info := ""
	for _, c := range block.Children() {
		switch c.Kind() {
		case syntax.KindText:
			info = c.Text()
		case syntax.KindCode:
			content.WriteString(c.Text())
		}
	}
	if tag := langdetect.NormalizeTag(info); tag != "" {
		return tag
	}
	return langdetect.Detect(content.String())
}

// FormatParseError formats a single parse error for terminal output.
func (s *Styles) FormatParseError(path string, entry analysis.ErrorEntry) string {
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		entry.Line,
		entry.Column,
	)

	return fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.Error.Render("error"),
		s.Message.Render(entry.Message),
	)
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, errorCount int) string {
	header := s.FilePath.Render(path)
	if errorCount > 0 {
		errorWord := "errors"
		if errorCount == 1 {
			errorWord = "error"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d parse %s)", errorCount, errorWord))
	}
	return header
}
