package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sonnes/cellpatch/core"
	"github.com/sonnes/cellpatch/processor"
	"github.com/sonnes/cellpatch/processor/opaque"
	"github.com/sonnes/cellpatch/processor/plaintext"
	"github.com/sonnes/cellpatch/processor/structured"
	"github.com/sonnes/cellpatch/processor/tabular"
	"golang.org/x/text/encoding"
)

// options configures the processors built by app.
type options struct {
	encoding encoding.Encoding
	comma    rune
	indent   bool
}

// format is a registered file encoding.
type format struct {
	// language is the lexer used to highlight the document on display.
	language string
	new      func(o options) processor.Processor
}

// app holds the processor registry keyed by file extension.
type app struct {
	formats map[string]format
}

func newApp() *app {
	return &app{
		formats: map[string]format{
			".csv": {
				language: "csv",
				new: func(o options) processor.Processor {
					return &tabular.Processor{Comma: o.comma, Encoding: o.encoding}
				},
			},
			".json": {
				language: "json",
				new: func(o options) processor.Processor {
					return &structured.Processor{Indent: o.indent, Encoding: o.encoding}
				},
			},
			".txt": {
				language: "plaintext",
				new: func(o options) processor.Processor {
					return &plaintext.Processor{Encoding: o.encoding}
				},
			},
			".pickle": {
				language: "python",
				new: func(o options) processor.Processor {
					return opaque.New()
				},
			},
		},
	}
}

// format selects the registered format for path by its extension.
func (a *app) format(path string) (format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := a.formats[ext]
	if !ok {
		return format{}, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, path)
	}
	return f, nil
}

// extensions lists the registered extensions for help text.
func (a *app) extensions() []string {
	exts := make([]string, 0, len(a.formats))
	for ext := range a.formats {
		exts = append(exts, ext)
	}
	return exts
}
