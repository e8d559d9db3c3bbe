package document

import "github.com/yaklabco/vellum/pkg/syntax"

// Parser derives syntax trees from text and patches them after edits.
//
// The document package defines this interface to follow the gobible
// principle of defining interfaces in the consumer package. Implementations
// (e.g., parser/goldmark) provide the concrete grammar.
//
// Implementations must be:
//   - deterministic for a given input,
//   - total: any text yields a tree, with malformed input represented as
//     error nodes inside it rather than an error return,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts text into a lossless syntax tree.
	//
	// The returned tree must satisfy:
	//   - root != nil && root.Kind() == syntax.KindDocument
	//   - root.Len() == len(text)
	//   - the pre-order concatenation of leaf texts equals text
	//   - spans are left detached; the caller numbers the tree
	Parse(text string) *syntax.Node

	// Reparse patches root in place after an edit replaced the byte range
	// replaced of the previous text with replLen bytes; text is the full
	// text after the edit. It returns the byte range of the new text whose
	// tree was rebuilt, or ok=false when no patch narrower than the whole
	// document was safe, in which case the caller falls back to Parse.
	//
	// On success the tree must satisfy the Parse contract for text, with
	// nodes outside the returned range untouched, spans included.
	Reparse(root *syntax.Node, text string, replaced syntax.Range, replLen int) (affected syntax.Range, ok bool)
}
