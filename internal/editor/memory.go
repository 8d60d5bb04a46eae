package editor

import (
	"context"
	"sync"

	"comment-translator/internal/position"
)

// Notice is a notification recorded by Memory.
type Notice struct {
	Level   Level
	Message string
}

// Memory is a Host that keeps the document in memory and records every
// interaction for later inspection.
type Memory struct {
	mu sync.Mutex

	uri      string
	text     string
	language string
	open     bool

	// Choose picks an item for PromptChoice; nil dismisses the prompt.
	Choose func(items []string) (int, bool)
	// ApplyErr, when set, makes ReplaceRanges fail without touching the text.
	ApplyErr error

	prompts    [][]string
	selections []position.Range
	notices    []Notice
}

// NewMemory returns a host with an open document.
func NewMemory(uri, text, languageTag string) *Memory {
	return &Memory{uri: uri, text: text, language: languageTag, open: true}
}

// NewEmptyMemory returns a host without an open document.
func NewEmptyMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Document() (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return Document{}, ErrNoActiveDocument
	}
	return Document{URI: m.uri, Text: m.text, LanguageTag: m.language}, nil
}

func (m *Memory) Select(r position.Range) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.selections = append(m.selections, r)
	return nil
}

func (m *Memory) ReplaceRanges(edits []Edit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ApplyErr != nil {
		return m.ApplyErr
	}
	if !m.open {
		return ErrNoActiveDocument
	}

	text, err := Apply(m.text, edits)
	if err != nil {
		return err
	}
	m.text = text
	return nil
}

func (m *Memory) PromptChoice(_ context.Context, _ string, items []string) (int, bool, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, items)
	choose := m.Choose
	m.mu.Unlock()

	if choose == nil {
		return 0, false, nil
	}
	idx, ok := choose(items)
	return idx, ok, nil
}

func (m *Memory) Notify(level Level, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notices = append(m.notices, Notice{Level: level, Message: message})
}

// Text returns the current document text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Prompts returns the item lists shown by PromptChoice.
func (m *Memory) Prompts() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.prompts...)
}

// Selections returns every range passed to Select.
func (m *Memory) Selections() []position.Range {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]position.Range(nil), m.selections...)
}

// Notices returns every notification shown so far.
func (m *Memory) Notices() []Notice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notice(nil), m.notices...)
}
