package analysis

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by node or block count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
	// SortByBytes sorts by covered bytes (descending by default).
	SortByBytes SortField = "bytes"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortByBytes:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeErrors includes the flat parse error list.
	IncludeErrors bool

	// IncludeByKind includes the per-kind node tallies.
	IncludeByKind bool

	// IncludeLanguages includes the code block language tallies.
	IncludeLanguages bool

	// SortBy specifies how to sort ByKind and Languages.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool

	// Path is the document's display path, if known.
	Path string

	// WorkingDir is the directory to make Path relative to.
	// If empty, Path is kept as-is (typically absolute).
	WorkingDir string

	// Flavor names the markup flavor for the report header.
	Flavor string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeErrors:    true,
		IncludeByKind:    true,
		IncludeLanguages: true,
		SortBy:           SortByCount,
		SortDesc:         true,
	}
}
