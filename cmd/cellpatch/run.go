package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/sonnes/cellpatch/core"
	"github.com/sonnes/cellpatch/display"
	"github.com/sonnes/cellpatch/processor"
)

// job is one read, patch, write run.
type job struct {
	input   string
	output  string
	changes []string
	opts    options

	quiet bool
	color bool
	grid  bool
	width int
}

// run loads the input, applies every change, prints the result, and writes
// the output. Nothing is written unless every change applies.
func (a *app) run(w io.Writer, j job) error {
	f, err := a.format(j.input)
	if err != nil {
		return err
	}

	p := f.new(j.opts)
	if err := p.Load(j.input); err != nil {
		return err
	}
	log.Debug("loaded", "path", j.input)

	edits, err := core.ParseEdits(j.changes)
	if err != nil {
		return err
	}
	if err := processor.ApplyAll(p, edits...); err != nil {
		return err
	}
	log.Debug("applied changes", "count", len(edits))

	rnd := &display.Renderer{
		Width:    j.width,
		Color:    j.color,
		Language: f.language,
		Grid:     j.grid,
	}
	if !j.quiet {
		if err := rnd.Render(w, p); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	}

	if err := p.Persist(j.output); err != nil {
		return err
	}
	log.Debug("saved", "path", j.output)
	rnd.Saved(w, j.output)
	return nil
}
