// Package editor defines the narrow set of capabilities the commands need
// from a host editor, plus an in-memory and a file-backed implementation.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"comment-translator/internal/position"
)

var (
	// ErrNoActiveDocument is returned by Host.Document when nothing is open.
	ErrNoActiveDocument = errors.New("no active document")
	// ErrInvalidEdit is returned when an edit set is out of range or overlaps.
	ErrInvalidEdit = errors.New("invalid edit")
)

// Level is the severity of a user notification.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Document is a snapshot of the active document.
type Document struct {
	// URI identifies the document (a path for file hosts).
	URI string
	// Text is the full document content.
	Text string
	// LanguageTag selects the comment profile.
	LanguageTag string
}

// Edit replaces the characters [Start, End) with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Host is the capability set a command needs from the editor.
type Host interface {
	// Document returns the active document or ErrNoActiveDocument.
	Document() (Document, error)
	// Select selects r and scrolls it into view.
	Select(r position.Range) error
	// ReplaceRanges applies all edits atomically.
	ReplaceRanges(edits []Edit) error
	// PromptChoice shows items and returns the picked index. ok is false when
	// the prompt was dismissed.
	PromptChoice(ctx context.Context, placeholder string, items []string) (index int, ok bool, err error)
	// Notify shows a transient message.
	Notify(level Level, message string)
}

// Apply returns text with every edit applied. Edits are expressed against the
// original text and may be given in any order; overlapping or out-of-range
// edits reject the whole set. Bytes outside the edits are copied verbatim,
// and an invalid UTF-8 byte counts as one character.
func Apply(text string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return text, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	chars := utf8.RuneCountInString(text)
	prevEnd := 0
	for _, e := range sorted {
		if e.Start < prevEnd || e.Start > e.End || e.End > chars {
			return "", fmt.Errorf("%w: [%d, %d) in text of %d characters", ErrInvalidEdit, e.Start, e.End, chars)
		}
		prevEnd = e.End
	}

	// Edits are sorted, so one forward walk maps character offsets to bytes.
	bytePos, charPos := 0, 0
	byteOffset := func(char int) int {
		for charPos < char {
			_, size := utf8.DecodeRuneInString(text[bytePos:])
			bytePos += size
			charPos++
		}
		return bytePos
	}

	var sb strings.Builder
	sb.Grow(len(text))
	cursor := 0
	for _, e := range sorted {
		start := byteOffset(e.Start)
		sb.WriteString(text[cursor:start])
		sb.WriteString(e.Text)
		cursor = byteOffset(e.End)
	}
	sb.WriteString(text[cursor:])

	return sb.String(), nil
}
