// Package position converts character offsets into zero-based line/column
// positions and back.
//
// Only '\n' starts a new line; a preceding '\r' counts as the last column of
// its line, which keeps the two conversions exact inverses.
package position

import "fmt"

// Position is a zero-based line and column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	return p.Line < other.Line || (p.Line == other.Line && p.Column < other.Column)
}

// Range is a span between two positions, end exclusive.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// ToPosition maps a character offset to its position in text. Offsets outside
// [0, len] are clamped.
func ToPosition(text string, offset int) Position {
	if offset < 0 {
		offset = 0
	}

	var pos Position
	i := 0
	for _, r := range text {
		if i == offset {
			return pos
		}
		if r == '\n' {
			pos.Line++
			pos.Column = 0
		} else {
			pos.Column++
		}
		i++
	}
	return pos
}

// ToOffset maps a position back to a character offset. A column past the end
// of its line clamps to the line end; a line past the last one clamps to the
// end of text.
func ToOffset(text string, pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Column < 0 {
		pos.Column = 0
	}

	line, col, i := 0, 0, 0
	for _, r := range text {
		if line == pos.Line && (col == pos.Column || r == '\n') {
			return i
		}
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
		i++
	}
	return i
}

// RangeOf returns the range covering the character offsets [start, end).
func RangeOf(text string, start, end int) Range {
	return Range{Start: ToPosition(text, start), End: ToPosition(text, end)}
}
