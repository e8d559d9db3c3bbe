package document

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Line marks where one line of text starts: the byte offset of its first
// byte and the UTF-16 code unit offset of the same position. A document
// always has at least one line, and line 0 always starts at {0, 0}.
//
// A new line starts after "\n", after "\r" not followed by "\n", and after
// "\r\n", which counts as a single two-byte terminator. No other code
// points split lines.
type Line struct {
	ByteOffset  int
	UTF16Offset int
}

// scanLines builds the full line table for text in one pass.
func scanLines(text string) []Line {
	return appendLinesFrom([]Line{{}}, 0, 0, text)
}

// appendLinesFrom extends lines with the line starts found in tail, which
// sits at the given byte and UTF-16 offsets of the full text. Both
// counters advance per decoded code point; invalid bytes count as one
// replacement scalar, hence one UTF-16 unit.
func appendLinesFrom(lines []Line, byteOffset, utf16Offset int, tail string) []Line {
	i := 0
	for i < len(tail) {
		r, size := utf8.DecodeRuneInString(tail[i:])
		i += size
		utf16Offset += utf16.RuneLen(r)
		switch r {
		case '\r':
			if i < len(tail) && tail[i] == '\n' {
				i++
				utf16Offset++
			}
			lines = append(lines, Line{ByteOffset: byteOffset + i, UTF16Offset: utf16Offset})
		case '\n':
			lines = append(lines, Line{ByteOffset: byteOffset + i, UTF16Offset: utf16Offset})
		}
	}
	return lines
}

// lineIndexForByte returns the index of the line containing byteIdx, the
// last line whose start is at or before it. byteIdx must be >= 0.
func lineIndexForByte(lines []Line, byteIdx int) int {
	return sort.Search(len(lines), func(i int) bool {
		return lines[i].ByteOffset > byteIdx
	}) - 1
}

// lineIndexForUTF16 returns the index of the line containing utf16Idx.
func lineIndexForUTF16(lines []Line, utf16Idx int) int {
	return sort.Search(len(lines), func(i int) bool {
		return lines[i].UTF16Offset > utf16Idx
	}) - 1
}
