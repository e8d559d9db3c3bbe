package editscript

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// ValidationError describes an edit that cannot be applied to the content
// it was validated against.
type ValidationError struct {
	Edit    Edit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

// ConflictError describes overlapping edits.
type ConflictError struct {
	First  Edit
	Second Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End,
		e.Second.Start, e.Second.End)
}

// Validate checks that every edit addresses a well-formed range of content.
// Beyond bounds checks, both ends of each range must fall on UTF-8 sequence
// boundaries; a cut inside a multi-byte sequence would corrupt the text.
// Returns nil if all edits are valid, or the first validation error.
func Validate(edits []Edit, content string) error {
	for _, edit := range edits {
		if edit.Start < 0 {
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		}
		if edit.End < edit.Start {
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		}
		if edit.End > len(content) {
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.End, len(content)),
			}
		}
		if !isBoundary(content, edit.Start) {
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("start offset %d cuts a UTF-8 sequence", edit.Start),
			}
		}
		if !isBoundary(content, edit.End) {
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d cuts a UTF-8 sequence", edit.End),
			}
		}
	}
	return nil
}

// isBoundary reports whether offset is a character boundary of content.
// Both ends of the content always qualify. The same rule guards
// document.Snapshot.Edit, so edits passing Validate never panic there.
func isBoundary(content string, offset int) bool {
	return offset == 0 || offset == len(content) || utf8.RuneStart(content[offset])
}

// Sort orders edits by start offset, then by end offset. This produces a
// deterministic order for edit application.
func Sort(edits []Edit) {
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].Start != edits[j].Start {
			return edits[i].Start < edits[j].Start
		}
		return edits[i].End < edits[j].End
	})
}

// DetectConflicts checks for overlapping edits in a sorted slice.
// Returns nil if no conflicts, or the first conflict found.
// Edits must be sorted by Sort before calling.
func DetectConflicts(edits []Edit) error {
	for i := 1; i < len(edits); i++ {
		prev := edits[i-1]
		curr := edits[i]
		// Overlap if current starts before previous ends.
		if curr.Start < prev.End {
			return &ConflictError{First: prev, Second: curr}
		}
	}
	return nil
}

// Prepare validates, sorts, and checks for conflicts, leaving the input
// untouched. Returns the sorted edits and any error encountered.
func Prepare(edits []Edit, content string) ([]Edit, error) {
	if len(edits) == 0 {
		return edits, nil
	}

	if err := Validate(edits, content); err != nil {
		return nil, err
	}

	result := make([]Edit, len(edits))
	copy(result, edits)
	Sort(result)

	if err := DetectConflicts(result); err != nil {
		return nil, err
	}

	return result, nil
}
