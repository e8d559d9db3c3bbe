package editscript

import (
	"strings"

	"github.com/yaklabco/vellum/pkg/document"
	"github.com/yaklabco/vellum/pkg/syntax"
)

// Result records one applied edit and the range of new text the document
// re-derived for it. Affected is in the coordinates the document had at
// the moment the edit was applied, not in the original content's.
type Result struct {
	Edit     Edit
	Affected syntax.Range
}

// Apply applies edits to the document one at a time in ascending order,
// shifting each range by the accumulated length delta of the edits before
// it. The document's tree and line table update incrementally with every
// step, so the final text equals Splice of the original content.
//
// Edits must be prepared with Prepare first; the document panics on
// unvalidated ranges.
func Apply(doc *document.Snapshot, edits []Edit) []Result {
	if len(edits) == 0 {
		return nil
	}

	results := make([]Result, 0, len(edits))
	delta := 0
	for _, e := range edits {
		replace := syntax.NewRange(e.Start+delta, e.End+delta)
		affected := doc.Edit(replace, e.Text)
		results = append(results, Result{Edit: e, Affected: affected})
		delta += len(e.Text) - (e.End - e.Start)
	}
	return results
}

// Splice applies a sorted, validated slice of edits to content directly,
// without a document. It serves callers that only need the resulting
// text, like diff previews. Edits must be prepared with Prepare first.
func Splice(content string, edits []Edit) string {
	if len(edits) == 0 {
		return content
	}

	// Estimate result size.
	delta := 0
	for _, e := range edits {
		delta += len(e.Text) - (e.End - e.Start)
	}

	var out strings.Builder
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		// Copy content before this edit.
		out.WriteString(content[cursor:e.Start])
		// Write replacement text.
		out.WriteString(e.Text)
		cursor = e.End
	}
	// Copy remaining content.
	out.WriteString(content[cursor:])

	return out.String()
}
