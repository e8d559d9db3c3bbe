package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/vellum/pkg/analysis"
)

const (
	summaryDividerWidth = 40
	wordError           = "error"
	wordErrors          = "errors"
)

// FormatSummaryOneLine formats document statistics as a single line.
// Example: "2 parse errors in 244 bytes, 12 lines, 61 nodes".
func (s *Styles) FormatSummaryOneLine(report *analysis.Report) string {
	totals := report.Totals

	if totals.Errors == 0 {
		return s.Success.Render("Parsed cleanly") +
			s.Dim.Render(fmt.Sprintf(" (%d bytes, %d lines, %d nodes)",
				totals.Bytes, totals.Lines, totals.Nodes)) + "\n"
	}

	errorWord := wordErrors
	if totals.Errors == 1 {
		errorWord = wordError
	}
	return s.Error.Render(fmt.Sprintf("%d parse %s", totals.Errors, errorWord)) +
		fmt.Sprintf(" in %d bytes, %d lines, %d nodes",
			totals.Bytes, totals.Lines, totals.Nodes) + "\n"
}

// FormatSummary formats document statistics as a summary block.
func (s *Styles) FormatSummary(report *analysis.Report) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	if report.Path != "" {
		builder.WriteString("  Document:       " +
			s.FilePath.Render(report.Path) + "\n")
	}
	if report.Flavor != "" {
		builder.WriteString("  Flavor:         " +
			s.SummaryValue.Render(report.Flavor) + "\n")
	}
	if report.Path != "" || report.Flavor != "" {
		builder.WriteString("\n")
	}

	// Text measures
	builder.WriteString("  Bytes:          " +
		s.SummaryValue.Render(strconv.Itoa(report.Totals.Bytes)) + "\n")
	builder.WriteString("  UTF-16 units:   " +
		s.SummaryValue.Render(strconv.Itoa(report.Totals.UTF16Units)) + "\n")
	builder.WriteString("  Lines:          " +
		s.SummaryValue.Render(strconv.Itoa(report.Totals.Lines)) + "\n")

	builder.WriteString("\n")

	// Tree measures
	builder.WriteString("  Nodes:          " +
		s.SummaryValue.Render(strconv.Itoa(report.Totals.Nodes)) + "\n")
	builder.WriteString("    Leaves:       " +
		s.SummaryValue.Render(strconv.Itoa(report.Totals.Leaves)) + "\n")
	builder.WriteString("  Tree depth:     " +
		s.SummaryValue.Render(strconv.Itoa(report.Totals.Depth)) + "\n")

	if report.Totals.CodeBlocks > 0 {
		builder.WriteString("  Code blocks:    " +
			s.SummaryValue.Render(strconv.Itoa(report.Totals.CodeBlocks)) + "\n")
	}
	if len(report.Languages) > 0 {
		names := make([]string, len(report.Languages))
		for i, la := range report.Languages {
			names[i] = la.Language
		}
		builder.WriteString("  Languages:      " +
			s.Language.Render(strings.Join(names, ", ")) + "\n")
	}
	if report.Totals.Errors > 0 {
		builder.WriteString("  Parse errors:   " +
			s.Failure.Render(strconv.Itoa(report.Totals.Errors)) + "\n")
	}

	builder.WriteString("\n")

	// Overall status
	if report.Totals.HasErrors() {
		errorWord := wordErrors
		if report.Totals.Errors == 1 {
			errorWord = wordError
		}
		builder.WriteString(s.Failure.Render(
			fmt.Sprintf("Parsed with %d %s", report.Totals.Errors, errorWord)))
	} else {
		builder.WriteString(s.Success.Render("Parsed cleanly"))
	}
	builder.WriteString("\n")

	return builder.String()
}
