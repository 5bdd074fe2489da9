// Package opaque patches Python pickle files.
//
// The top level of the object graph must be a string, a list or a tuple.
// Row y is top-level element y; an edit splices its value into the top level
// at the linear offset y*(len(row)+1)+x, as if the rows were laid out end to
// end with one separator unit between them.
package opaque

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	pickle "github.com/kisielk/og-rek"
	"github.com/sonnes/cellpatch/core"
	"github.com/sonnes/cellpatch/processor"
)

// opProto is the opcode that opens a pickle of protocol 2 or later.
const opProto = 0x80

// Processor holds a decoded pickle.
type Processor struct {
	value any

	// protocol is the protocol the input was written with; Persist reuses it.
	protocol int
}

// New creates an opaque Processor.
func New() *Processor {
	return &Processor{}
}

// Load unpickles path.
func (p *Processor) Load(path string) error {
	b, err := processor.ReadFile(path)
	if err != nil {
		return err
	}
	v, err := pickle.NewDecoder(bytes.NewReader(b)).Decode()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", core.ErrRead, path, err)
	}

	switch v.(type) {
	case string, []any, pickle.Tuple:
	default:
		return fmt.Errorf("%w: %s: top level must be a string, a list or a tuple, got %T", core.ErrRead, path, v)
	}
	p.value = v
	p.protocol = protocol(b)
	return nil
}

// Apply splices e.Value into the top level at the offset of (e.X, e.Y).
func (p *Processor) Apply(e core.Edit) error {
	switch top := p.value.(type) {
	case string:
		if err := processor.CheckIndex("row", e.Y, utf8.RuneCountInString(top)); err != nil {
			return err
		}
		if err := processor.CheckIndex("column", e.X, 1); err != nil {
			return err
		}
		p.value = processor.Splice(top, offset(e, 1), e.Value)
	case []any:
		out, err := applyList(top, e)
		if err != nil {
			return err
		}
		p.value = out
	case pickle.Tuple:
		out, err := applyList(top, e)
		if err != nil {
			return err
		}
		p.value = pickle.Tuple(out)
	default:
		return fmt.Errorf("%w: nothing loaded", core.ErrIndex)
	}
	return nil
}

func applyList(top []any, e core.Edit) ([]any, error) {
	if err := processor.CheckIndex("row", e.Y, len(top)); err != nil {
		return nil, err
	}
	n, ok := length(top[e.Y])
	if !ok {
		return nil, fmt.Errorf("%w: row %d is a %T, not a sequence", core.ErrIndex, e.Y, top[e.Y])
	}
	if err := processor.CheckIndex("column", e.X, n); err != nil {
		return nil, err
	}
	return splice(top, offset(e, n), e.Value), nil
}

// Document returns the decoded object graph.
func (p *Processor) Document() any {
	return p.value
}

// Persist pickles the object graph to path with the protocol it was loaded
// with.
func (p *Processor) Persist(path string) error {
	var buf bytes.Buffer
	enc := pickle.NewEncoderWithConfig(&buf, &pickle.EncoderConfig{Protocol: p.protocol})
	if err := enc.Encode(p.value); err != nil {
		return fmt.Errorf("%w: pickle %s: %w", core.ErrWrite, path, err)
	}
	return processor.WriteFile(path, buf.Bytes())
}

// protocol reads the protocol version from the PROTO header of b. Pickles
// without one are protocol 0 or 1; both decode as protocol 0.
func protocol(b []byte) int {
	if len(b) >= 2 && b[0] == opProto {
		return int(b[1])
	}
	return 0
}

func offset(e core.Edit, rowLen int) int {
	return e.Y*(rowLen+1) + e.X
}

// splice returns a copy of list with the element at off replaced by value.
// Offsets past the end append.
func splice(list []any, off int, value string) []any {
	if off >= len(list) {
		return append(append([]any{}, list...), value)
	}
	out := make([]any, 0, len(list))
	out = append(out, list[:off]...)
	out = append(out, value)
	return append(out, list[off+1:]...)
}

func length(v any) (int, bool) {
	switch v := v.(type) {
	case string:
		return utf8.RuneCountInString(v), true
	case pickle.Bytes:
		return len(v), true
	case []any:
		return len(v), true
	case pickle.Tuple:
		return len(v), true
	case map[any]any:
		return len(v), true
	default:
		return 0, false
	}
}
