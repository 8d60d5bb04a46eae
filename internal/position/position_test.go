package position

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestToPosition(t *testing.T) {
	t.Parallel()

	text := "ab\ncd\n\néf"

	tests := []struct {
		offset int
		want   Position
	}{
		{offset: 0, want: Position{0, 0}},
		{offset: 2, want: Position{0, 2}},
		{offset: 3, want: Position{1, 0}},
		{offset: 5, want: Position{1, 2}},
		{offset: 6, want: Position{2, 0}},
		{offset: 7, want: Position{3, 0}},
		{offset: 8, want: Position{3, 1}},
		{offset: 9, want: Position{3, 2}},
		{offset: 42, want: Position{3, 2}},
		{offset: -1, want: Position{0, 0}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToPosition(text, tt.offset), "offset %d", tt.offset)
	}
}

func TestToOffsetClamps(t *testing.T) {
	t.Parallel()

	text := "ab\ncd"

	assert.Equal(t, 2, ToOffset(text, Position{Line: 0, Column: 10}))
	assert.Equal(t, 5, ToOffset(text, Position{Line: 1, Column: 10}))
	assert.Equal(t, 5, ToOffset(text, Position{Line: 9, Column: 0}))
	assert.Equal(t, 0, ToOffset(text, Position{Line: -1, Column: 3}))
	assert.Equal(t, 3, ToOffset(text, Position{Line: 1, Column: -2}))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	texts := []string{
		"",
		"single line",
		"x = 1  // set x\ny = 2",
		"trailing newline\n",
		"\n\n\n",
		"crlf\r\nline two\r\n",
		"日本語のコメント\n// テスト",
	}

	for _, text := range texts {
		n := utf8.RuneCountInString(text)
		for o := 0; o <= n; o++ {
			assert.Equal(t, o, ToOffset(text, ToPosition(text, o)), "text %q offset %d", text, o)
		}
	}
}

func TestRangeOf(t *testing.T) {
	t.Parallel()

	text := "x = 1  // set x\ny = 2"
	r := RangeOf(text, 7, 15)

	assert.Equal(t, Position{0, 7}, r.Start)
	assert.Equal(t, Position{0, 15}, r.End)
	assert.True(t, r.Start.Before(r.End))
	assert.Equal(t, "1:8", r.Start.String())
}
