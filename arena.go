package sindarin

import "fmt"

// Arena is a bump-allocation region. In this compiler it interns the
// source file paths the importer records (Importer.allocFileID); AST
// nodes and generated code are ordinary Go values and are not allocated
// from it. It never frees individual objects; the whole region is torn
// down at once when the compiler is done with it.
type Arena struct {
	// blocks is the list of byte slices handed out so far. Arena
	// doesn't pool or reuse memory across blocks; Go's GC reclaims
	// everything once Free drops the references.
	blocks [][]byte
	used   int
}

// NewArena creates an empty arena. Allocation is lazy; no backing
// storage is reserved until the first Alloc call.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc returns a zeroed byte slice of the requested size. The
// returned slice is valid until Free is called on the arena.
func (a *Arena) Alloc(size int) []byte {
	if size < 0 {
		panic(fmt.Sprintf("sindarin: negative arena allocation size %d", size))
	}
	b := make([]byte, size)
	a.blocks = append(a.blocks, b)
	a.used += size
	return b
}

// Strdup copies s into arena-owned storage and returns the copy.
func (a *Arena) Strdup(s string) string {
	b := a.Alloc(len(s))
	copy(b, s)
	return string(b)
}

// Strndup copies the first n bytes of s into arena-owned storage.
func (a *Arena) Strndup(s string, n int) string {
	if n > len(s) {
		n = len(s)
	}
	return a.Strdup(s[:n])
}

// Sprintf formats into arena-owned storage, mirroring the C
// arena-sprintf idiom the code generator relies on for building
// identifiers and literal fragments without touching the heap churn
// of repeated string concatenation.
func (a *Arena) Sprintf(format string, args ...any) string {
	return a.Strdup(fmt.Sprintf(format, args...))
}

// Used reports the number of bytes handed out so far. Exposed for
// diagnostics and tests; the compiler never branches on it.
func (a *Arena) Used() int {
	return a.used
}

// Free tears down the whole region. Every pointer/string handed out
// by this arena is no longer guaranteed to be valid after Free
// returns — in practice that guarantee is enforced by convention
// (nothing outlives the compilation that owns the arena) since Go's
// GC, not the arena, owns the underlying memory.
func (a *Arena) Free() {
	a.blocks = nil
	a.used = 0
}
