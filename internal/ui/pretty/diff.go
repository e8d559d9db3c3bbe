package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/vellum/pkg/editscript"
)

// FormatDiff renders a unified diff with a git-style header and per-line
// coloring.
func (s *Styles) FormatDiff(diff *editscript.Diff) string {
	if diff == nil || !diff.HasChanges() {
		return ""
	}

	var builder strings.Builder

	builder.WriteString(s.DiffHeader.Render(diff.GitHeader()))
	builder.WriteString("\n")

	for _, line := range strings.Split(diff.String(), "\n") {
		if line == "" {
			continue
		}
		builder.WriteString(s.formatDiffLine(line))
		builder.WriteString("\n")
	}

	return builder.String()
}

// formatDiffLine styles one diff line by its prefix.
func (s *Styles) formatDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "@@"):
		return s.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+++"):
		return s.DiffAdd.Render(line)
	case strings.HasPrefix(line, "---"):
		return s.DiffRemove.Render(line)
	case strings.HasPrefix(line, "+"):
		return s.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return s.DiffRemove.Render(line)
	default:
		return s.DiffContext.Render(line)
	}
}

// FormatDiffStat formats the additions and deletions of a diff as a
// summary line.
func (s *Styles) FormatDiffStat(diff *editscript.Diff) string {
	if diff == nil || !diff.HasChanges() {
		return ""
	}

	var parts []string

	if diff.Additions > 0 {
		insertionWord := "insertions"
		if diff.Additions == 1 {
			insertionWord = "insertion"
		}
		parts = append(parts, s.DiffAdd.Render(fmt.Sprintf("%d %s(+)", diff.Additions, insertionWord)))
	}

	if diff.Deletions > 0 {
		deletionWord := "deletions"
		if diff.Deletions == 1 {
			deletionWord = "deletion"
		}
		parts = append(parts, s.DiffRemove.Render(fmt.Sprintf("%d %s(-)", diff.Deletions, deletionWord)))
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ", ") + "\n"
}
