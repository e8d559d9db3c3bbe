package runner

import "github.com/yaklabco/vellum/pkg/analysis"

// FileOutcome pairs a document path with its analysis report.
type FileOutcome struct {
	// Path is the absolute path of the analyzed file.
	Path string

	// Report holds the document's analysis report.
	// Nil when the file could not be processed.
	Report *analysis.Report

	// Error is set if the file could not be read or parsed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully analyzed.
	FilesProcessed int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// FilesWithParseErrors is the number of documents whose trees carry
	// at least one error node.
	FilesWithParseErrors int

	// BytesTotal is the byte count summed over all analyzed documents.
	BytesTotal int

	// LinesTotal is the line count summed over all analyzed documents.
	LinesTotal int

	// NodesTotal is the node count summed over all analyzed documents.
	NodesTotal int

	// ParseErrorsTotal is the error node count summed over all analyzed
	// documents.
	ParseErrorsTotal int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each discovered file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasParseErrors reports whether any analyzed document had parse errors.
func (r *Result) HasParseErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.ParseErrorsTotal > 0
}

// Reports returns the per-document reports in file order, skipping files
// that could not be processed.
func (r *Result) Reports() []*analysis.Report {
	if r == nil {
		return nil
	}
	reports := make([]*analysis.Report, 0, len(r.Files))
	for _, outcome := range r.Files {
		if outcome.Report != nil {
			reports = append(reports, outcome.Report)
		}
	}
	return reports
}

// FirstError returns the first per-file processing error in file order,
// or nil when every file was analyzed.
func (r *Result) FirstError() error {
	if r == nil {
		return nil
	}
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			return outcome.Error
		}
	}
	return nil
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Report == nil {
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.BytesTotal += outcome.Report.Totals.Bytes
	r.Stats.LinesTotal += outcome.Report.Totals.Lines
	r.Stats.NodesTotal += outcome.Report.Totals.Nodes
	r.Stats.ParseErrorsTotal += outcome.Report.Totals.Errors

	if outcome.Report.Totals.HasErrors() {
		r.Stats.FilesWithParseErrors++
	}
}
