package analysis

import "time"

// Report contains pre-computed views of one parsed document.
// Computed once by Analyze, used by all renderers.
type Report struct {
	// Errors is the flat list of parse errors for detailed output.
	Errors []ErrorEntry `json:"errors,omitempty"`

	// ByKind groups node tallies by syntax kind.
	ByKind []KindAnalysis `json:"byKind,omitempty"`

	// Languages groups code block content by language tag.
	Languages []LanguageAnalysis `json:"languages,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Path is the display path of the analyzed document, if known.
	Path string `json:"path,omitempty"`

	// Flavor names the markup flavor the document was parsed with.
	Flavor string `json:"flavor,omitempty"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// ErrorEntry represents a single parse error in the report. Line and
// Column are one-based display coordinates; Offset and Length are byte
// measures.
type ErrorEntry struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Offset  int    `json:"offset"`
	Length  int    `json:"length"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Bytes      int `json:"bytes"`
	UTF16Units int `json:"utf16Units"`
	Lines      int `json:"lines"`
	Nodes      int `json:"nodes"`
	Leaves     int `json:"leaves"`
	Depth      int `json:"depth"`
	CodeBlocks int `json:"codeBlocks"`
	Errors     int `json:"errors"`
}

// HasErrors returns true if the document did not parse cleanly.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// KindAnalysis contains aggregated data for a single node kind. Bytes is
// the summed length of all nodes of the kind, so nested nodes of the
// same kind contribute once per node.
type KindAnalysis struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
	Bytes int    `json:"bytes"`
}

// LanguageAnalysis contains aggregated data for one code block language.
type LanguageAnalysis struct {
	Language string `json:"language"`
	Blocks   int    `json:"blocks"`
	Bytes    int    `json:"bytes"`

	// Detected counts blocks whose language was guessed from content
	// rather than read from an info string.
	Detected int `json:"detected,omitempty"`
}
