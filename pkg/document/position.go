package document

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/yaklabco/vellum/pkg/syntax"
)

// Position queries signal absence with an ok=false second return and never
// panic. Line and column indices are zero-based; renderers add one for
// display. Columns count Unicode scalars, not display cells.

// LenBytes returns the length of the text in bytes.
func (s *Snapshot) LenBytes() int {
	return len(s.state.text)
}

// LenUTF16 returns the length of the text in UTF-16 code units.
func (s *Snapshot) LenUTF16() int {
	last := s.state.lines[len(s.state.lines)-1]
	return last.UTF16Offset + utf16Len(s.state.text[last.ByteOffset:])
}

// LenLines returns the number of lines. A trailing line without a
// terminator counts, so the result is never zero.
func (s *Snapshot) LenLines() int {
	return len(s.state.lines)
}

// Slice returns the text within the byte range r, or absence when r is out
// of bounds or cuts inside a UTF-8 sequence.
func (s *Snapshot) Slice(r syntax.Range) (string, bool) {
	if r.End < r.Start || !s.isBoundary(r.Start) || !s.isBoundary(r.End) {
		return "", false
	}
	return s.state.text[r.Start:r.End], true
}

// ByteToLine returns the zero-based line containing the byte index. An
// index equal to the text length resolves to the last line.
func (s *Snapshot) ByteToLine(byteIdx int) (int, bool) {
	if byteIdx < 0 || byteIdx > len(s.state.text) {
		return 0, false
	}
	return lineIndexForByte(s.state.lines, byteIdx), true
}

// ByteToUTF16 converts a byte index to a UTF-16 code unit index. Absence
// when out of bounds or not on a character boundary.
func (s *Snapshot) ByteToUTF16(byteIdx int) (int, bool) {
	if !s.isBoundary(byteIdx) {
		return 0, false
	}
	line := s.state.lines[lineIndexForByte(s.state.lines, byteIdx)]
	return line.UTF16Offset + utf16Len(s.state.text[line.ByteOffset:byteIdx]), true
}

// ByteToColumn returns the zero-based column of the byte index within its
// line. Absence when out of bounds or not on a character boundary.
func (s *Snapshot) ByteToColumn(byteIdx int) (int, bool) {
	if !s.isBoundary(byteIdx) {
		return 0, false
	}
	line := s.state.lines[lineIndexForByte(s.state.lines, byteIdx)]
	return utf8.RuneCountInString(s.state.text[line.ByteOffset:byteIdx]), true
}

// UTF16ToByte converts a UTF-16 code unit index to a byte index. Absence
// when the index exceeds the text's UTF-16 length or lands inside a
// surrogate pair.
func (s *Snapshot) UTF16ToByte(utf16Idx int) (int, bool) {
	if utf16Idx < 0 {
		return 0, false
	}
	line := s.state.lines[lineIndexForUTF16(s.state.lines, utf16Idx)]
	k := line.UTF16Offset
	for i, r := range s.state.text[line.ByteOffset:] {
		if k == utf16Idx {
			return line.ByteOffset + i, true
		}
		if k > utf16Idx {
			// Inside the surrogate pair of the previous scalar.
			return 0, false
		}
		k += utf16.RuneLen(r)
	}
	if k == utf16Idx {
		return len(s.state.text), true
	}
	return 0, false
}

// LineToByte returns the byte offset where the zero-based line starts.
func (s *Snapshot) LineToByte(lineIdx int) (int, bool) {
	if lineIdx < 0 || lineIdx >= len(s.state.lines) {
		return 0, false
	}
	return s.state.lines[lineIdx].ByteOffset, true
}

// LineToRange returns the byte range of the zero-based line, terminator
// included.
func (s *Snapshot) LineToRange(lineIdx int) (syntax.Range, bool) {
	start, ok := s.LineToByte(lineIdx)
	if !ok {
		return syntax.Range{}, false
	}
	end := len(s.state.text)
	if lineIdx+1 < len(s.state.lines) {
		end = s.state.lines[lineIdx+1].ByteOffset
	}
	return syntax.NewRange(start, end), true
}

// LineColumnToByte returns the byte offset of the given zero-based line
// and column. Absence when the line does not exist or holds fewer scalars
// than the column asks for.
func (s *Snapshot) LineColumnToByte(lineIdx, columnIdx int) (int, bool) {
	r, ok := s.LineToRange(lineIdx)
	if !ok || columnIdx < 0 {
		return 0, false
	}
	seen := 0
	for i := range s.state.text[r.Start:r.End] {
		if seen == columnIdx {
			return r.Start + i, true
		}
		seen++
	}
	if seen == columnIdx {
		return r.End, true
	}
	return 0, false
}

// Lines returns a copy of the line table.
func (s *Snapshot) Lines() []Line {
	return append([]Line(nil), s.state.lines...)
}

// isBoundary reports whether idx is a valid cut point of the text: within
// bounds and not inside a UTF-8 sequence. Both ends of the text always
// qualify.
func (s *Snapshot) isBoundary(idx int) bool {
	text := s.state.text
	if idx < 0 || idx > len(text) {
		return false
	}
	return idx == 0 || idx == len(text) || utf8.RuneStart(text[idx])
}

// utf16Len counts the UTF-16 code units of s, invalid bytes counting as
// one replacement scalar each.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
