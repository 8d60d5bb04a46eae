package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		language string
		want     []Occurrence
	}{
		{
			name:     "Trailing slash comment",
			text:     "x = 1  // set x\ny = 2",
			language: "go",
			want:     []Occurrence{{Text: "// set x", Start: 7, End: 15}},
		},
		{
			name:     "Hash comment",
			text:     "# hello\nz = 3",
			language: "python",
			want:     []Occurrence{{Text: "# hello", Start: 0, End: 7}},
		},
		{
			name:     "No comments",
			text:     "a := 1\nb := 2\n",
			language: "go",
			want:     []Occurrence{},
		},
		{
			name:     "Multi-line block comment",
			text:     "/* one\n   two */ x",
			language: "c",
			want:     []Occurrence{{Text: "/* one\n   two */", Start: 0, End: 16}},
		},
		{
			name:     "Block comment is non-greedy",
			text:     "/* a */ x /* b */",
			language: "javascript",
			want: []Occurrence{
				{Text: "/* a */", Start: 0, End: 7},
				{Text: "/* b */", Start: 10, End: 17},
			},
		},
		{
			name:     "Unterminated block comment",
			text:     "x := 1 /* never closed\ny := 2",
			language: "go",
			want:     []Occurrence{},
		},
		{
			name:     "Triple single quotes",
			text:     "def f():\n    '''doc\n    string'''\n",
			language: "python",
			want:     []Occurrence{{Text: "'''doc\n    string'''", Start: 13, End: 33}},
		},
		{
			name:     "Triple double quotes",
			text:     `s = """x""" # tail`,
			language: "python",
			want: []Occurrence{
				{Text: `"""x"""`, Start: 4, End: 11},
				{Text: "# tail", Start: 12, End: 18},
			},
		},
		{
			name:     "Unterminated triple quote",
			text:     "'''open\nx = 1",
			language: "python",
			want:     []Occurrence{},
		},
		{
			name:     "Carriage return is not part of the comment",
			text:     "// one\r\n// two\r\n",
			language: "go",
			want: []Occurrence{
				{Text: "// one", Start: 0, End: 6},
				{Text: "// two", Start: 8, End: 14},
			},
		},
		{
			name:     "Offsets count characters",
			text:     "é = 1 // ünïcode",
			language: "rust",
			want:     []Occurrence{{Text: "// ünïcode", Start: 6, End: 16}},
		},
		{
			name:     "Unknown language falls back to slash",
			text:     "# not a comment\n// but this is",
			language: "klingon",
			want:     []Occurrence{{Text: "// but this is", Start: 16, End: 30}},
		},
		{
			name:     "Hash profile ignores slash comments",
			text:     "x = 1 // nope",
			language: "python",
			want:     []Occurrence{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Scan(tt.text, tt.language)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)

			runes := []rune(tt.text)
			for _, o := range got {
				assert.Less(t, o.Start, o.End)
				assert.Equal(t, o.Text, string(runes[o.Start:o.End]))
			}
		})
	}
}

func TestScanOneOccurrencePerLineComment(t *testing.T) {
	t.Parallel()

	lines := []string{"// first", "code() // second", "   //third", "// fourth // same line"}
	got := Scan(strings.Join(lines, "\n"), "go")

	require.Len(t, got, len(lines))
	assert.Equal(t, "// first", got[0].Text)
	assert.Equal(t, "// second", got[1].Text)
	assert.Equal(t, "//third", got[2].Text)
	assert.Equal(t, "// fourth // same line", got[3].Text)
}

func TestScanIsDeterministic(t *testing.T) {
	t.Parallel()

	text := "/* a */\n// b\nint c; /* d\n */"
	assert.Equal(t, Scan(text, "cpp"), Scan(text, "cpp"))
}

func TestProfileFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hash", ProfileFor("python").Name)
	assert.Equal(t, "slash", ProfileFor("go").Name)
	assert.Equal(t, "slash", ProfileFor("").Name)
	// Match is exact.
	assert.Equal(t, "slash", ProfileFor("Python").Name)
	assert.Equal(t, DefaultProfile().Name, ProfileFor("unknown").Name)
}

func TestProfiles(t *testing.T) {
	t.Parallel()

	profiles := Profiles()
	require.Len(t, profiles, 2)
	assert.Equal(t, "hash", profiles[0].Name)
	assert.Equal(t, "slash", profiles[1].Name)
}

func TestKeepsForm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		original    string
		replacement string
		want        bool
	}{
		{"line comment", "// hola", "// hello", true},
		{"line comment split over lines", "// hola mundo", "// hello\n// world", true},
		{"marker dropped", "// hola", "hello", false},
		{"marker changed", "# hola", "// hello", false},
		{"text after block", "/* hola */", "/* hello */ x", false},
		{"block comment", "/* hola\n */", "/* hello\n */", true},
		{"docstring", "'''hola'''", "'''hello'''", true},
		{"hash inside block", "/* a # b */", "/* c # d */", true},
		{"unrecognised original", "hola", "hello", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, KeepsForm(tt.original, tt.replacement))
		})
	}
}
