// Package display prints a patched document to the terminal.
package display

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/term"
	"github.com/sonnes/cellpatch/processor"
)

const defaultWidth = 100

// Renderer writes a document under a "Modified data:" header.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int

	// Color enables ANSI styling and syntax highlighting.
	Color bool

	// Language names the chroma lexer used to highlight the document.
	Language string

	// Grid additionally prints tabular documents as an indexed table.
	Grid bool
}

// New creates a plain Renderer.
func New() *Renderer {
	return &Renderer{}
}

// rowser is implemented by processors whose document is a grid of cells.
type rowser interface {
	Rows() ([][]string, error)
}

// Render writes the current document of p to w.
func (r *Renderer) Render(w io.Writer, p processor.Processor) error {
	r.writeHeader(w, "Modified data:")

	body := Format(p.Document())
	if err := r.writeBody(w, body); err != nil {
		return err
	}

	if !r.Grid {
		return nil
	}
	g, ok := p.(rowser)
	if !ok {
		return nil
	}
	rows, err := g.Rows()
	if err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	r.writeSeparator(w)
	fmt.Fprintln(w, r.grid(rows))
	return nil
}

// Saved writes the confirmation that the document was persisted to path.
func (r *Renderer) Saved(w io.Writer, path string) {
	if !r.Color {
		fmt.Fprintln(w, "Data saved to", path)
		return
	}
	fmt.Fprintln(w, styleSaved.Render("Data saved to")+" "+styleMeta.Render(path))
}

func (r *Renderer) writeHeader(w io.Writer, title string) {
	if !r.Color {
		fmt.Fprintln(w, title)
		return
	}
	fmt.Fprintln(w, styleTitle.Render(title))
}

func (r *Renderer) writeBody(w io.Writer, body string) error {
	if !r.Color {
		_, err := fmt.Fprintln(w, body)
		return err
	}
	lang := r.Language
	if lang == "" {
		lang = "plaintext"
	}
	if err := quick.Highlight(w, body, lang, "terminal256", "monokai"); err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writeSeparator renders a horizontal rule.
func (r *Renderer) writeSeparator(w io.Writer) {
	n := min(r.termWidth(), 72)
	rule := strings.Repeat("─", n)
	if r.Color {
		rule = styleSeparator.Render(rule)
	}
	fmt.Fprintln(w, rule)
}

// grid lays rows out with their x and y coordinates as headers.
func (r *Renderer) grid(rows [][]string) string {
	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}

	headers := make([]string, cols+1)
	headers[0] = "y\\x"
	for x := 0; x < cols; x++ {
		headers[x+1] = strconv.Itoa(x)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for y, row := range rows {
		cells := make([]string, cols+1)
		cells[0] = strconv.Itoa(y)
		copy(cells[1:], row)
		t.Row(cells...)
	}
	if r.Color {
		t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return styleGridIndex
			}
			return styleGridCell
		})
	}
	return t.String()
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}
