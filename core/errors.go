package core

import "errors"

// Error kinds. Every failure returned by this module wraps exactly one of
// these, so callers can classify it with errors.Is.
var (
	ErrUsage             = errors.New("usage")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNotFound          = errors.New("file not found")
	ErrRead              = errors.New("error reading file")
	ErrWrite             = errors.New("error saving to file")
	ErrMalformedEdit     = errors.New("invalid change format")
	ErrIndex             = errors.New("index out of range")
)
