package processor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sonnes/cellpatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Processor that accepts edits until it sees Y == failOn.
type recorder struct {
	failOn  int
	applied []core.Edit
}

func (r *recorder) Load(string) error { return nil }
func (r *recorder) Document() any { return r.applied }
func (r *recorder) Persist(string) error { return nil }

func (r *recorder) Apply(e core.Edit) error {
	if e.Y == r.failOn {
		return CheckIndex("row", e.Y, e.Y)
	}
	r.applied = append(r.applied, e)
	return nil
}

func TestApplyAllStopsAtFirstError(t *testing.T) {
	r := &recorder{failOn: 2}
	edits := []core.Edit{
		{X: 0, Y: 0, Value: "a", Raw: "0,0,a"},
		{X: 0, Y: 2, Value: "b", Raw: "0,2,b"},
		{X: 0, Y: 1, Value: "c", Raw: "0,1,c"},
	}

	err := ApplyAll(r, edits...)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrIndex)
	assert.Contains(t, err.Error(), `"0,2,b"`)
	assert.Equal(t, edits[:1], r.applied)
}

func TestApplyAllEmpty(t *testing.T) {
	r := &recorder{failOn: -1}
	assert.NoError(t, ApplyAll(r))
	assert.Empty(t, r.applied)
}

func TestCheckIndex(t *testing.T) {
	assert.NoError(t, CheckIndex("row", 0, 1))
	assert.NoError(t, CheckIndex("row", 4, 5))

	err := CheckIndex("column", 5, 5)
	assert.ErrorIs(t, err, core.ErrIndex)
	assert.Equal(t, "index out of range: column 5, have 5", err.Error())

	assert.ErrorIs(t, CheckIndex("row", -1, 5), core.ErrIndex)
	assert.ErrorIs(t, CheckIndex("row", 0, 0), core.ErrIndex)
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		off   int
		value string
		want  string
	}{
		{name: "first", s: "abc", off: 0, value: "X", want: "Xbc"},
		{name: "middle", s: "abc", off: 1, value: "X", want: "aXc"},
		{name: "last", s: "abc", off: 2, value: "X", want: "abX"},
		{name: "longer value", s: "abc", off: 1, value: "XYZ", want: "aXYZc"},
		{name: "empty value deletes", s: "abc", off: 1, value: "", want: "ac"},
		{name: "past end appends", s: "abc", off: 7, value: "X", want: "abcX"},
		{name: "multibyte", s: "héllo", off: 1, value: "e", want: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Splice(tt.s, tt.off, tt.value))
		})
	}
}

func TestReadFileNotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = ReadText(filepath.Join(t.TempDir(), "missing.txt"), nil)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestReadFileDirectory(t *testing.T) {
	_, err := ReadFile(t.TempDir())
	assert.ErrorIs(t, err, core.ErrRead)
}

func TestReadTextInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte{'c', 'a', 'f', 0xe9, '\n'}, 0o644))

	_, err := ReadText(path, nil)
	assert.ErrorIs(t, err, core.ErrRead)

	enc, err := LookupEncoding("utf-8")
	require.NoError(t, err)
	_, err = ReadText(path, enc)
	assert.ErrorIs(t, err, core.ErrRead)
}

func TestTextRoundTripLatin1(t *testing.T) {
	enc, err := LookupEncoding("latin1")
	require.NoError(t, err)

	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	raw := []byte{'c', 'a', 'f', 0xe9, '\n'}
	require.NoError(t, os.WriteFile(in, raw, 0o644))

	s, err := ReadText(in, enc)
	require.NoError(t, err)
	assert.Equal(t, "café\n", s)

	out := filepath.Join(dir, "out.txt")
	require.NoError(t, WriteText(out, s, enc))
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestWriteTextUnencodable(t *testing.T) {
	enc, err := LookupEncoding("latin1")
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.txt")
	err = WriteText(out, "snowman ☃", enc)
	assert.ErrorIs(t, err, core.ErrWrite)
	assert.NoFileExists(t, out)
}

func TestWriteFileBadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt"), []byte("x"))
	assert.ErrorIs(t, err, core.ErrWrite)
}

func TestLookupEncoding(t *testing.T) {
	for _, name := range []string{"", "utf-8", "UTF8", "latin1", "windows-1252"} {
		_, err := LookupEncoding(name)
		assert.NoError(t, err, name)
	}

	_, err := LookupEncoding("ebcdic")
	assert.ErrorContains(t, err, "unknown encoding")
}
