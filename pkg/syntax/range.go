package syntax

import "fmt"

// Range is a half-open byte range [Start, End) within a document's text.
type Range struct {
	Start int
	End   int
}

// NewRange constructs the range [start, end).
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// Len returns the number of bytes the range covers.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Contains reports whether offset falls within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// String renders the range as "start..end".
func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
