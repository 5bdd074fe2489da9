package processor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/sonnes/cellpatch/core"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// ReadFile returns the contents of path. A missing file is core.ErrNotFound;
// every other failure is core.ErrRead.
func ReadFile(path string) ([]byte, error) {
	return readAll(path, nil)
}

// ReadText reads path and decodes it from enc into a UTF-8 string.
// A nil or Nop enc reads the bytes as-is; they must then be valid UTF-8.
func ReadText(path string, enc encoding.Encoding) (string, error) {
	var t transform.Transformer
	if enc != nil && enc != encoding.Nop {
		t = enc.NewDecoder()
	}
	b, err := readAll(path, t)
	if err != nil {
		return "", err
	}
	if t == nil && !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %s: invalid UTF-8", core.ErrRead, path)
	}
	return string(b), nil
}

func readAll(path string, t transform.Transformer) ([]byte, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRead, err)
	}
	defer f.Close()

	var r io.Reader = f
	if t != nil {
		r = transform.NewReader(f, t)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrRead, path, err)
	}
	return b, nil
}

// WriteText encodes s with enc and writes it to path. Encoding happens
// before the file is created, so an unencodable document leaves no file.
func WriteText(path, s string, enc encoding.Encoding) error {
	b := []byte(s)
	if enc != nil {
		var err error
		b, err = enc.NewEncoder().Bytes(b)
		if err != nil {
			return fmt.Errorf("%w: encode %s: %w", core.ErrWrite, path, err)
		}
	}
	return WriteFile(path, b)
}

// WriteFile writes b to path, creating or truncating it. Every failure is
// core.ErrWrite.
func WriteFile(path string, b []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrWrite, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", core.ErrWrite, cerr)
		}
	}()

	if _, err := f.Write(b); err != nil {
		return fmt.Errorf("%w: %w", core.ErrWrite, err)
	}
	return nil
}
