// Package processor defines the interface for loading a file, patching it
// with coordinate edits, and writing it back out.
package processor

import (
	"fmt"

	"github.com/sonnes/cellpatch/core"
)

// Processor holds one document in a specific file encoding.
type Processor interface {
	// Load reads and decodes the file at path.
	Load(path string) error

	// Apply replaces one unit of the document.
	Apply(e core.Edit) error

	// Document returns the current in-memory document.
	Document() any

	// Persist encodes the document and writes it to path.
	Persist(path string) error
}

// ApplyAll applies edits in order, stopping at the first error. Edits that
// succeeded before the failure remain applied to p.
func ApplyAll(p Processor, edits ...core.Edit) error {
	for _, e := range edits {
		if err := p.Apply(e); err != nil {
			return fmt.Errorf("change %q: %w", e.String(), err)
		}
	}
	return nil
}

// CheckIndex reports core.ErrIndex unless 0 <= i < n.
func CheckIndex(axis string, i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %s %d, have %d", core.ErrIndex, axis, i, n)
	}
	return nil
}

// Splice replaces the rune at offset off of s with value. Offsets past the
// end of s append value.
func Splice(s string, off int, value string) string {
	r := []rune(s)
	if off >= len(r) {
		return s + value
	}
	return string(r[:off]) + value + string(r[off+1:])
}
