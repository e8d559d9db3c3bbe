package syntax

import "fmt"

// Kind classifies a syntax node. The set is closed: consumers switch over
// kinds rather than extending the node type.
type Kind uint16

// Node kinds for block-level, inline-level, and covering leaf content.
const (
	// KindError marks a leaf recording malformed input. It is the zero
	// value so an unclassified node reads as an error, not as content.
	KindError Kind = iota

	KindDocument

	// Block-level nodes.
	KindParagraph
	KindHeading
	KindList
	KindListItem
	KindBlockquote
	KindCodeBlock
	KindThematicBreak
	KindHTMLBlock

	// Inline-level nodes.
	KindEmphasis
	KindStrong
	KindCodeSpan
	KindLink
	KindImage

	// Fallback for structure that maps to no other kind.
	KindRaw

	// Covering leaves. Together with Text they tile every byte that no
	// structural node claims, so a tree always covers its text exactly.
	KindText
	KindCode
	KindMarker
	KindSpace
)

var kindNames = [...]string{
	KindError:         "Error",
	KindDocument:      "Document",
	KindParagraph:     "Paragraph",
	KindHeading:       "Heading",
	KindList:          "List",
	KindListItem:      "ListItem",
	KindBlockquote:    "Blockquote",
	KindCodeBlock:     "CodeBlock",
	KindThematicBreak: "ThematicBreak",
	KindHTMLBlock:     "HTMLBlock",
	KindEmphasis:      "Emphasis",
	KindStrong:        "Strong",
	KindCodeSpan:      "CodeSpan",
	KindLink:          "Link",
	KindImage:         "Image",
	KindRaw:           "Raw",
	KindText:          "Text",
	KindCode:          "Code",
	KindMarker:        "Marker",
	KindSpace:         "Space",
}

// String returns the kind's name without the Kind prefix.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}
