package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minColumnWidth   = 4
	heavySeparator   = "="
	defaultTermWidth = 100
)

// Column describes one table column.
type Column struct {
	Header string

	// RightAlign aligns cells to the right, for numeric columns.
	RightAlign bool

	// Shrink marks the column that gives up width when the table
	// exceeds the terminal. At most one column should set it.
	Shrink bool

	// MinWidth bounds shrinking; zero means the header's width.
	MinWidth int

	// TruncateLeft keeps the end of overlong cells instead of the
	// start, for path-like columns.
	TruncateLeft bool
}

// Row is a single table row. Style, when set, wraps the padded row.
type Row struct {
	Cells []string
	Style lipgloss.Style
}

// TableFormatter formats aligned column tables constrained to the
// terminal width.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatTable renders rows under the given columns. Rows shorter than
// the column list get empty trailing cells.
func (t *TableFormatter) FormatTable(cols []Column, rows []Row) string {
	if len(cols) == 0 || len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(cols, rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(cols, widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(cols, row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	return builder.String()
}

// calculateColumnWidths determines widths from content, then constrains
// the shrink column so the table fits the terminal.
func (t *TableFormatter) calculateColumnWidths(cols []Column, rows []Row) []int {
	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = len(col.Header)
		if widths[i] < minColumnWidth {
			widths[i] = minColumnWidth
		}
	}

	for _, row := range rows {
		for i, cell := range row.Cells {
			if i >= len(widths) {
				break
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	total := t.totalWidth(widths)
	if total <= t.termWidth {
		return widths
	}
	for i, col := range cols {
		if !col.Shrink {
			continue
		}
		minW := col.MinWidth
		if minW <= 0 {
			minW = max(len(col.Header), minColumnWidth)
		}
		widths[i] = max(minW, widths[i]-(total-t.termWidth))
		break
	}
	return widths
}

// totalWidth calculates the rendered table width from column widths.
func (t *TableFormatter) totalWidth(widths []int) int {
	total := 1 + (len(widths)-1)*tablePadding
	for _, w := range widths {
		total += w
	}
	return total
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(cols []Column, widths []int) string {
	cells := make([]string, len(cols))
	for i, col := range cols {
		cells[i] = pad(col.Header, widths[i], col.RightAlign)
	}
	return t.styles.TableHeader.Render(" " + strings.Join(cells, strings.Repeat(" ", tablePadding)))
}

// formatSeparator formats a full-width separator line.
func (t *TableFormatter) formatSeparator(widths []int) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.totalWidth(widths)))
}

// formatRow formats a single table row.
func (t *TableFormatter) formatRow(cols []Column, row Row, widths []int) string {
	cells := make([]string, len(cols))
	for i, col := range cols {
		cell := ""
		if i < len(row.Cells) {
			cell = row.Cells[i]
		}
		if col.TruncateLeft {
			cell = truncateFilePath(cell, widths[i])
		} else {
			cell = truncateString(cell, widths[i])
		}
		cells[i] = pad(cell, widths[i], col.RightAlign)
	}

	content := " " + strings.Join(cells, strings.Repeat(" ", tablePadding))
	return row.Style.Render(content)
}

// pad pads a cell to width on the appropriate side.
func pad(cell string, width int, rightAlign bool) string {
	if rightAlign {
		return fmt.Sprintf("%*s", width, cell)
	}
	return fmt.Sprintf("%-*s", width, cell)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
