package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/yaklabco/vellum/pkg/document"
	"github.com/yaklabco/vellum/pkg/langdetect"
	"github.com/yaklabco/vellum/pkg/syntax"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If either is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if absPath == "" || workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// walker holds temporary state during the tree walk.
type walker struct {
	doc    *document.Snapshot
	opts   Options
	report *Report
	kinds  map[syntax.Kind]*KindAnalysis
	langs  map[string]*LanguageAnalysis
}

// getOrCreateKind returns existing or creates new KindAnalysis.
func (w *walker) getOrCreateKind(kind syntax.Kind) *KindAnalysis {
	if _, ok := w.kinds[kind]; !ok {
		w.kinds[kind] = &KindAnalysis{Kind: kind.String()}
	}
	return w.kinds[kind]
}

// getOrCreateLanguage returns existing or creates new LanguageAnalysis.
func (w *walker) getOrCreateLanguage(lang string) *LanguageAnalysis {
	if _, ok := w.langs[lang]; !ok {
		w.langs[lang] = &LanguageAnalysis{Language: lang}
	}
	return w.langs[lang]
}

// Analyze measures a parsed document and transforms it into a Report.
// It performs a single pass over the syntax tree to compute all views.
func Analyze(doc *document.Snapshot, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
		Path:      makeRelativePath(opts.Path, opts.WorkingDir),
		Flavor:    opts.Flavor,
	}

	if doc == nil {
		return report
	}

	report.Totals.Bytes = doc.LenBytes()
	report.Totals.UTF16Units = doc.LenUTF16()
	report.Totals.Lines = doc.LenLines()

	w := &walker{
		doc:    doc,
		opts:   opts,
		report: report,
		kinds:  make(map[syntax.Kind]*KindAnalysis),
		langs:  make(map[string]*LanguageAnalysis),
	}
	w.walk(doc.Root(), 0, 1)

	if opts.IncludeByKind {
		report.ByKind = w.buildByKind()
	}
	if opts.IncludeLanguages {
		report.Languages = w.buildLanguages()
	}

	return report
}

// walk visits n and its subtree. offset is the byte offset of n's first
// byte and depth is 1 for the root.
func (w *walker) walk(n *syntax.Node, offset, depth int) {
	w.report.Totals.Nodes++
	if depth > w.report.Totals.Depth {
		w.report.Totals.Depth = depth
	}

	ka := w.getOrCreateKind(n.Kind())
	ka.Count++
	ka.Bytes += n.Len()

	switch n.Kind() {
	case syntax.KindError:
		w.report.Totals.Errors++
		if w.opts.IncludeErrors {
			w.report.Errors = append(w.report.Errors, w.errorEntry(n, offset))
		}
	case syntax.KindCodeBlock:
		w.report.Totals.CodeBlocks++
		if w.opts.IncludeLanguages {
			w.recordLanguage(n)
		}
	}

	if n.IsLeaf() {
		w.report.Totals.Leaves++
		return
	}
	childOffset := offset
	for _, c := range n.Children() {
		w.walk(c, childOffset, depth+1)
		childOffset += c.Len()
	}
}

// errorEntry builds the entry for the error leaf at offset.
func (w *walker) errorEntry(n *syntax.Node, offset int) ErrorEntry {
	entry := ErrorEntry{
		Message: n.Message(),
		Offset:  offset,
		Length:  n.Len(),
	}
	if line, ok := w.doc.ByteToLine(offset); ok {
		entry.Line = line + 1
	}
	if col, ok := w.doc.ByteToColumn(offset); ok {
		entry.Column = col + 1
	}
	return entry
}

// recordLanguage attributes a code block's content to a language. An
// explicit info string wins; otherwise the content is classified.
func (w *walker) recordLanguage(block *syntax.Node) {
	info, content := codeBlockParts(block)

	lang := langdetect.NormalizeTag(info)
	detected := false
	if lang == "" {
		lang = langdetect.Detect(content)
		detected = true
	}

	la := w.getOrCreateLanguage(lang)
	la.Blocks++
	la.Bytes += len(content)
	if detected {
		la.Detected++
	}
}

// codeBlockParts extracts the info string and the code content of a code
// block node. The info string is the text leaf on the opening fence
// line; indented blocks have none.
func codeBlockParts(block *syntax.Node) (info, content string) {
	var b strings.Builder
	for _, c := range block.Children() {
		switch c.Kind() {
		case syntax.KindText:
			info = c.Text()
		case syntax.KindCode:
			b.WriteString(c.Text())
		}
	}
	return info, b.String()
}

// buildByKind constructs the ByKind slice from accumulated tallies.
func (w *walker) buildByKind() []KindAnalysis {
	result := make([]KindAnalysis, 0, len(w.kinds))
	for _, ka := range w.kinds {
		result = append(result, *ka)
	}
	sortKindAnalysis(result, w.opts.SortBy, w.opts.SortDesc)
	return result
}

// buildLanguages constructs the Languages slice from accumulated tallies.
func (w *walker) buildLanguages() []LanguageAnalysis {
	result := make([]LanguageAnalysis, 0, len(w.langs))
	for _, la := range w.langs {
		result = append(result, *la)
	}
	sortLanguageAnalysis(result, w.opts.SortBy, w.opts.SortDesc)
	return result
}

func sortKindAnalysis(kinds []KindAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(kinds, func(left, right KindAnalysis) int {
		var result int
		switch sortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.Kind, right.Kind)
		case SortByBytes:
			result = cmp.Compare(left.Bytes, right.Bytes)
		default: // SortByCount
			result = cmp.Compare(left.Count, right.Count)
		}
		if desc {
			result = -result
		}
		if result == 0 {
			// Ties break alphabetically so output is stable.
			result = cmp.Compare(left.Kind, right.Kind)
		}
		return result
	})
}

func sortLanguageAnalysis(langs []LanguageAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(langs, func(left, right LanguageAnalysis) int {
		var result int
		switch sortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.Language, right.Language)
		case SortByBytes:
			result = cmp.Compare(left.Bytes, right.Bytes)
		default: // SortByCount
			result = cmp.Compare(left.Blocks, right.Blocks)
		}
		if desc {
			result = -result
		}
		if result == 0 {
			// Ties break alphabetically so output is stable.
			result = cmp.Compare(left.Language, right.Language)
		}
		return result
	})
}
