// Package editscript builds, validates, and applies ordered sets of
// byte-range replacements to document text.
package editscript

import (
	"fmt"
	"strconv"
	"strings"
)

// Edit replaces the byte range [Start, End) with Text.
type Edit struct {
	// Start is the byte offset where the replaced range begins (inclusive).
	Start int

	// End is the byte offset where the replaced range ends (exclusive).
	End int

	// Text is the replacement text.
	Text string
}

// Replace builds an edit that replaces bytes [start, end) with text.
func Replace(start, end int, text string) Edit {
	return Edit{Start: start, End: end, Text: text}
}

// Insert builds an edit that inserts text at the given offset.
func Insert(offset int, text string) Edit {
	return Edit{Start: offset, End: offset, Text: text}
}

// Delete builds an edit that deletes bytes [start, end).
func Delete(start, end int) Edit {
	return Edit{Start: start, End: end}
}

// Spec renders the edit's range in the START:END form ParseSpec accepts.
func (e Edit) Spec() string {
	return fmt.Sprintf("%d:%d", e.Start, e.End)
}

// ParseSpec parses a byte range of the form "START:END" into an edit with
// empty replacement text. The caller supplies the replacement separately.
func ParseSpec(spec string) (Edit, error) {
	head, tail, ok := strings.Cut(spec, ":")
	if !ok {
		return Edit{}, fmt.Errorf("invalid range %q: expected START:END byte offsets", spec)
	}

	start, err := strconv.Atoi(head)
	if err != nil {
		return Edit{}, fmt.Errorf("invalid range %q: start offset is not a number", spec)
	}

	end, err := strconv.Atoi(tail)
	if err != nil {
		return Edit{}, fmt.Errorf("invalid range %q: end offset is not a number", spec)
	}

	if start < 0 {
		return Edit{}, fmt.Errorf("invalid range %q: start offset is negative", spec)
	}
	if end < start {
		return Edit{}, fmt.Errorf("invalid range %q: end offset is before start offset", spec)
	}

	return Edit{Start: start, End: end}, nil
}
