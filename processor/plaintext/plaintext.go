// Package plaintext patches text files one character at a time.
package plaintext

import (
	"strings"
	"unicode/utf8"

	"github.com/sonnes/cellpatch/core"
	"github.com/sonnes/cellpatch/processor"
	"golang.org/x/text/encoding"
)

// Processor holds a text document.
//
// Coordinates are resolved against the lines of the text as loaded, not as
// edited: a multi-character value shifts the characters after it, and later
// edits in the same run land at their original offsets in the shifted text.
type Processor struct {
	// Encoding decodes the input and encodes the output. Nil means raw bytes.
	Encoding encoding.Encoding

	text  string
	lines []string
}

// New creates a plaintext Processor.
func New() *Processor {
	return &Processor{}
}

// Load reads path unmodified.
func (p *Processor) Load(path string) error {
	text, err := processor.ReadText(path, p.Encoding)
	if err != nil {
		return err
	}
	p.text = text
	p.lines = strings.Split(text, "\n")
	return nil
}

// Apply replaces the character at column e.X of line e.Y with e.Value.
func (p *Processor) Apply(e core.Edit) error {
	if err := processor.CheckIndex("line", e.Y, len(p.lines)); err != nil {
		return err
	}
	line := p.lines[e.Y]
	if err := processor.CheckIndex("column", e.X, utf8.RuneCountInString(line)); err != nil {
		return err
	}

	p.text = processor.Splice(p.text, p.offset(e.X, e.Y), e.Value)
	return nil
}

// offset is the rune offset of (x, y) in the loaded text.
func (p *Processor) offset(x, y int) int {
	off := x
	for _, l := range p.lines[:y] {
		off += utf8.RuneCountInString(l) + 1
	}
	return off
}

// Document returns the text.
func (p *Processor) Document() any {
	return p.text
}

// Text returns the text.
func (p *Processor) Text() string {
	return p.text
}

// Persist writes the text verbatim.
func (p *Processor) Persist(path string) error {
	return processor.WriteText(path, p.text, p.Encoding)
}
