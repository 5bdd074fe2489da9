// Package tabular patches comma-separated files one cell at a time.
//
// The document is kept in its serialized form. Each edit re-splits the
// current text into lines and re-parses only the targeted line, so later
// edits see the quoting of earlier ones.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/sonnes/cellpatch/core"
	"github.com/sonnes/cellpatch/processor"
	"golang.org/x/text/encoding"
)

// Processor holds a CSV document.
type Processor struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune

	// Encoding decodes the input and encodes the output. Nil means raw bytes.
	Encoding encoding.Encoding

	text string
}

// New creates a tabular Processor with the default delimiter.
func New() *Processor {
	return &Processor{}
}

func (p *Processor) comma() rune {
	if p.Comma == 0 {
		return ','
	}
	return p.Comma
}

// Load reads path and checks that it parses as CSV.
func (p *Processor) Load(path string) error {
	text, err := processor.ReadText(path, p.Encoding)
	if err != nil {
		return err
	}
	if _, err := p.parse(text); err != nil {
		return fmt.Errorf("%w: %s: %w", core.ErrRead, path, err)
	}
	p.text = text
	return nil
}

// Apply overwrites field e.X of line e.Y with e.Value.
func (p *Processor) Apply(e core.Edit) error {
	lines := strings.Split(p.text, "\n")
	if err := processor.CheckIndex("row", e.Y, len(lines)); err != nil {
		return err
	}

	row, err := p.parseLine(lines[e.Y])
	if err != nil {
		return fmt.Errorf("%w: row %d: %w", core.ErrRead, e.Y, err)
	}
	if err := processor.CheckIndex("column", e.X, len(row)); err != nil {
		return err
	}
	row[e.X] = e.Value

	line, err := p.format(row)
	if err != nil {
		return err
	}
	if strings.HasSuffix(lines[e.Y], "\r") {
		line += "\r"
	}
	lines[e.Y] = line
	p.text = strings.Join(lines, "\n")
	return nil
}

// Document returns the serialized CSV text.
func (p *Processor) Document() any {
	return p.text
}

// Text returns the serialized CSV text.
func (p *Processor) Text() string {
	return p.text
}

// Rows parses the current text into records.
func (p *Processor) Rows() ([][]string, error) {
	return p.parse(p.text)
}

// Persist writes the serialized text verbatim.
func (p *Processor) Persist(path string) error {
	return processor.WriteText(path, p.text, p.Encoding)
}

func (p *Processor) reader(s string) *csv.Reader {
	r := csv.NewReader(strings.NewReader(s))
	r.Comma = p.comma()
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r
}

func (p *Processor) parse(s string) ([][]string, error) {
	return p.reader(s).ReadAll()
}

// parseLine reads a single record. A blank line has no fields.
func (p *Processor) parseLine(line string) ([]string, error) {
	row, err := p.reader(line).Read()
	if err == io.EOF {
		return nil, nil
	}
	return row, err
}

func (p *Processor) format(row []string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = p.comma()
	if err := w.Write(row); err != nil {
		return "", fmt.Errorf("format row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("format row: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
