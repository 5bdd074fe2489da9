// Package structured patches JSON documents whose root is an array or a
// string.
//
// An edit on a root array swaps the whole element at index y for the edit
// value, after checking that x falls inside that element. An edit on a root
// string replaces the character at index y.
package structured

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/sonnes/cellpatch/core"
	"github.com/sonnes/cellpatch/processor"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"golang.org/x/text/encoding"
)

// Processor holds a JSON document.
type Processor struct {
	// Indent controls pretty-printing of the persisted output.
	Indent bool

	// Encoding decodes the input and encodes the output. Nil means raw bytes.
	Encoding encoding.Encoding

	raw []byte
}

// New creates a structured Processor.
func New() *Processor {
	return &Processor{}
}

// Load reads path and checks that its root is an array or a string.
func (p *Processor) Load(path string) error {
	text, err := processor.ReadText(path, p.Encoding)
	if err != nil {
		return err
	}
	raw := []byte(text)
	if !gjson.ValidBytes(raw) {
		return fmt.Errorf("%w: %s: invalid JSON", core.ErrRead, path)
	}

	root := gjson.ParseBytes(raw)
	if !root.IsArray() && root.Type != gjson.String {
		return fmt.Errorf("%w: %s: root must be an array or a string, got %s", core.ErrRead, path, root.Type)
	}
	p.raw = raw
	return nil
}

// Apply replaces slot e.Y of the root with e.Value.
func (p *Processor) Apply(e core.Edit) error {
	root := gjson.ParseBytes(p.raw)
	if root.Type == gjson.String {
		return p.applyString(root.Str, e)
	}

	elems := root.Array()
	if err := processor.CheckIndex("row", e.Y, len(elems)); err != nil {
		return err
	}
	n, ok := length(elems[e.Y])
	if !ok {
		return fmt.Errorf("%w: row %d is a %s, not a sequence", core.ErrIndex, e.Y, elems[e.Y].Type)
	}
	if err := processor.CheckIndex("column", e.X, n); err != nil {
		return err
	}

	raw, err := sjson.SetBytes(p.raw, strconv.Itoa(e.Y), e.Value)
	if err != nil {
		return fmt.Errorf("set row %d: %w", e.Y, err)
	}
	p.raw = raw
	return nil
}

// applyString treats each character of s as a row of length one.
func (p *Processor) applyString(s string, e core.Edit) error {
	if err := processor.CheckIndex("row", e.Y, utf8.RuneCountInString(s)); err != nil {
		return err
	}
	if err := processor.CheckIndex("column", e.X, 1); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(processor.Splice(s, e.Y, e.Value)); err != nil {
		return fmt.Errorf("encode string: %w", err)
	}
	p.raw = bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return nil
}

// Document returns the JSON text.
func (p *Processor) Document() any {
	return string(p.raw)
}

// Text returns the JSON text.
func (p *Processor) Text() string {
	return string(p.raw)
}

// Persist writes the JSON, compact unless Indent is set.
func (p *Processor) Persist(path string) error {
	var out []byte
	if p.Indent {
		out = pretty.Pretty(p.raw)
	} else {
		out = pretty.Ugly(p.raw)
	}
	return processor.WriteText(path, string(out), p.Encoding)
}

// length is the number of indexable units in r: characters of a string,
// elements of an array, or keys of an object.
func length(r gjson.Result) (int, bool) {
	switch {
	case r.Type == gjson.String:
		return utf8.RuneCountInString(r.Str), true
	case r.IsArray():
		return len(r.Array()), true
	case r.IsObject():
		return len(r.Map()), true
	default:
		return 0, false
	}
}
