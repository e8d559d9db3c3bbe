package syntax

import (
	"fmt"
	"sync"

	"fortio.org/safecast"
)

// FileID identifies the document a node belongs to. The zero value is the
// detached identity for text that is not tracked as a document, such as
// strings parsed on the fly or synthesized content. Real identities are
// interned from paths with Intern.
type FileID uint16

// FileIDDetached is the identity of untracked text.
const FileIDDetached FileID = 0

type fileTable struct {
	mu    sync.RWMutex
	ids   map[string]FileID
	paths []string
}

var files = &fileTable{ids: make(map[string]FileID)}

// Intern returns the FileID for path, allocating one on first use. IDs are
// stable for the lifetime of the process. Identity is sixteen bits wide;
// interning more distinct paths than fit panics.
func Intern(path string) FileID {
	files.mu.Lock()
	defer files.mu.Unlock()
	if id, ok := files.ids[path]; ok {
		return id
	}
	files.paths = append(files.paths, path)
	n, err := safecast.Conv[uint16](len(files.paths))
	if err != nil {
		panic(fmt.Sprintf("syntax: file identity overflow: %v", err))
	}
	id := FileID(n)
	files.ids[path] = id
	return id
}

// Path returns the path interned for id. The detached identity has none.
func Path(id FileID) (string, bool) {
	if id == FileIDDetached {
		return "", false
	}
	files.mu.RLock()
	defer files.mu.RUnlock()
	if int(id) > len(files.paths) {
		return "", false
	}
	return files.paths[id-1], true
}

// A Span is the stable identifier of a syntax node: a document identity
// packed with a number that orders the node against every other node of the
// same document. Numbers are assigned in pre-order with deliberate gaps
// (see Node.Numberize) so that patching a subtree can renumber locally
// while untouched nodes keep their spans.
//
// The zero Span is detached and identifies nothing.
type Span uint64

const (
	spanFileBits = 48

	// Numbers live in [spanNumberLow, spanNumberHigh). The low values are
	// reserved so a real span can never equal the detached zero value.
	spanNumberLow  uint64 = 2
	spanNumberHigh uint64 = 1 << 47
)

func makeSpan(id FileID, number uint64) Span {
	return Span(uint64(id)<<spanFileBits | number)
}

// ID reports the identity of the document the span belongs to.
func (s Span) ID() FileID { return FileID(uint64(s) >> spanFileBits) }

// Number reports the span's position in its document's pre-order numbering.
func (s Span) Number() uint64 { return uint64(s) & (1<<spanFileBits - 1) }

// IsDetached reports whether the span identifies nothing.
func (s Span) IsDetached() bool { return s == 0 }

// String renders the span for debugging, resolving the identity to its
// interned path when it has one.
func (s Span) String() string {
	if s.IsDetached() {
		return "Span(detached)"
	}
	if path, ok := Path(s.ID()); ok {
		return fmt.Sprintf("Span(%s, %d)", path, s.Number())
	}
	return fmt.Sprintf("Span(%d, %d)", s.ID(), s.Number())
}
