package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sonnes/cellpatch/core"
	"github.com/sonnes/cellpatch/processor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, content string) *Processor {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	p := New()
	require.NoError(t, p.Load(path))
	return p
}

func edits(t *testing.T, raw ...string) []core.Edit {
	t.Helper()
	es, err := core.ParseEdits(raw)
	require.NoError(t, err)
	return es
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		edits []string
		want  string
	}{
		{
			name:  "single cell",
			in:    "a,b\n1,2\n",
			edits: []string{"1,1,9"},
			want:  "a,b\n1,9\n",
		},
		{
			name:  "header cell",
			in:    "a,b\n1,2\n",
			edits: []string{"0,0,name"},
			want:  "name,b\n1,2\n",
		},
		{
			name:  "later edit overwrites earlier",
			in:    "a,b\n1,2\n",
			edits: []string{"0,1,x", "0,1,y"},
			want:  "a,b\ny,2\n",
		},
		{
			name:  "value needing quotes",
			in:    "a,b\n1,2\n",
			edits: []string{"0,1,say \"hi\""},
			want:  "a,b\n\"say \"\"hi\"\"\",2\n",
		},
		{
			name:  "quoted input is re-serialized",
			in:    "\"a\",\"b\"\n1,2",
			edits: []string{"1,0,c"},
			want:  "a,c\n1,2",
		},
		{
			name:  "ragged rows",
			in:    "a\n1,2,3\n",
			edits: []string{"2,1,z"},
			want:  "a\n1,2,z\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := load(t, tt.in)
			require.NoError(t, processor.ApplyAll(p, edits(t, tt.edits...)...))
			assert.Equal(t, tt.want, p.Text())
		})
	}
}

func TestApplyPreservesOtherCells(t *testing.T) {
	p := load(t, "a,b,c\n1,2,3\n4,5,6\n")
	before, err := p.Rows()
	require.NoError(t, err)

	es := edits(t, "2,0,C", "0,2,four", "1,1,two")
	require.NoError(t, processor.ApplyAll(p, es...))

	after, err := p.Rows()
	require.NoError(t, err)
	require.Len(t, after, len(before))

	want := before
	for _, e := range es {
		want[e.Y][e.X] = e.Value
	}
	assert.Equal(t, want, after)
}

func TestApplyOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		edit string
	}{
		{name: "row past end", edit: "0,3,x"},
		{name: "column past end", edit: "2,0,x"},
		{name: "blank trailing line has no fields", edit: "0,2,x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := load(t, "a,b\n1,2\n")
			err := processor.ApplyAll(p, edits(t, tt.edit)...)
			assert.ErrorIs(t, err, core.ErrIndex)
			assert.Equal(t, "a,b\n1,2\n", p.Text())
		})
	}
}

func TestDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("a;b\n1;2\n"), 0o644))

	p := &Processor{Comma: ';'}
	require.NoError(t, p.Load(path))
	require.NoError(t, processor.ApplyAll(p, edits(t, "1,1,9")...))
	assert.Equal(t, "a;b\n1;9\n", p.Text())
}

func TestRoundTrip(t *testing.T) {
	in := "name,note\r\n\"Smith, J\",\"multi\"\r\nx,y\r\n"
	p := load(t, in)

	out := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, p.Persist(out))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, in, string(got))
}

func TestLoadErrors(t *testing.T) {
	p := New()
	err := p.Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, core.ErrNotFound)

	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte{'a', ',', 0xff, '\n'}, 0o644))
	err = p.Load(path)
	assert.ErrorIs(t, err, core.ErrRead)
}

func TestBareQuoteInField(t *testing.T) {
	p := load(t, "name,height\nbob,6\"\n")

	rows, err := p.Rows()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"name", "height"}, {"bob", `6"`}}, rows)

	require.NoError(t, processor.ApplyAll(p, edits(t, "0,1,rob")...))
	rows, err = p.Rows()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"name", "height"}, {"rob", `6"`}}, rows)
}

func TestApplyKeepsCarriageReturn(t *testing.T) {
	p := load(t, "a,b\r\n1,2\r\n")
	require.NoError(t, processor.ApplyAll(p, edits(t, "0,1,x")...))
	assert.Equal(t, "a,b\r\nx,2\r\n", p.Text())
}
