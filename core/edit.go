// Package core defines the edit instructions that every processor applies
// and the error kinds shared across the module.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Edit replaces the unit at column X of row Y with Value.
type Edit struct {
	X     int
	Y     int
	Value string

	// Raw is the argument the edit was parsed from, kept for diagnostics.
	Raw string
}

func (e Edit) String() string {
	if e.Raw != "" {
		return e.Raw
	}
	return fmt.Sprintf("%d,%d,%s", e.X, e.Y, e.Value)
}

// ParseEdit parses an "x,y,value" triple. All three fields are trimmed of
// surrounding whitespace; the value may be empty but may not contain a comma.
func ParseEdit(s string) (Edit, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Edit{}, fmt.Errorf("%w: %s", ErrMalformedEdit, s)
	}

	x, err := parseIndex(parts[0])
	if err != nil {
		return Edit{}, fmt.Errorf("%w: %s", ErrMalformedEdit, s)
	}
	y, err := parseIndex(parts[1])
	if err != nil {
		return Edit{}, fmt.Errorf("%w: %s", ErrMalformedEdit, s)
	}

	return Edit{
		X:     x,
		Y:     y,
		Value: strings.TrimSpace(parts[2]),
		Raw:   s,
	}, nil
}

// ParseEdits parses every argument, stopping at the first malformed one.
func ParseEdits(args []string) ([]Edit, error) {
	edits := make([]Edit, 0, len(args))
	for _, a := range args {
		e, err := ParseEdit(a)
		if err != nil {
			return nil, err
		}
		edits = append(edits, e)
	}
	return edits, nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative index %d", n)
	}
	return n, nil
}
