package editor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"comment-translator/internal/position"
	"comment-translator/internal/textutil"

	"github.com/rs/zerolog/log"
)

// languageByExt maps file extensions to editor language identifiers.
var languageByExt = map[string]string{
	".py":    "python",
	".pyw":   "python",
	".pyi":   "python",
	".go":    "go",
	".c":     "c",
	".h":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".cs":    "csharp",
	".java":  "java",
	".kt":    "kotlin",
	".js":    "javascript",
	".mjs":   "javascript",
	".jsx":   "javascriptreact",
	".ts":    "typescript",
	".tsx":   "typescriptreact",
	".rs":    "rust",
	".swift": "swift",
	".php":   "php",
	".scss":  "scss",
	".dart":  "dart",
}

// LanguageForPath returns the language identifier for a file name, or
// "plaintext" when the extension is unknown.
func LanguageForPath(path string) string {
	if lang, ok := languageByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return "plaintext"
}

// File is a terminal Host over a single file on disk.
type File struct {
	path     string
	language string
	in       *bufio.Reader
	out      io.Writer
}

// NewFile creates a host for path. An empty languageTag is derived from the
// file extension. Prompts are written to out and answered from in.
func NewFile(path, languageTag string, in io.Reader, out io.Writer) *File {
	if languageTag == "" {
		languageTag = LanguageForPath(path)
	}
	return &File{
		path:     path,
		language: languageTag,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

func (f *File) Document() (Document, error) {
	if f.path == "" {
		return Document{}, ErrNoActiveDocument
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, fmt.Errorf("%w: %s", ErrNoActiveDocument, f.path)
		}
		return Document{}, fmt.Errorf("read document: %w", err)
	}

	return Document{URI: f.path, Text: string(data), LanguageTag: f.language}, nil
}

func (f *File) Select(r position.Range) error {
	_, err := fmt.Fprintf(f.out, "%s:%s-%s\n", f.path, r.Start, r.End)
	return err
}

// ReplaceRanges applies edits to the file's current content and replaces the
// file in one rename, so either every edit lands or none does.
func (f *File) ReplaceRanges(edits []Edit) error {
	info, err := os.Stat(f.path)
	if err != nil {
		return fmt.Errorf("stat document: %w", err)
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	text, err := Apply(string(data), edits)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace document: %w", err)
	}

	log.Debug().Str("path", f.path).Int("edits", len(edits)).Msg("Document updated")
	return nil
}

// PromptChoice prints a numbered list and reads a 1-based choice. An empty
// line, "q" or end of input dismisses the prompt.
func (f *File) PromptChoice(ctx context.Context, placeholder string, items []string) (int, bool, error) {
	fmt.Fprintln(f.out, placeholder)
	width := len(strconv.Itoa(len(items)))
	for i, item := range items {
		fmt.Fprintf(f.out, "  %*d  %s\n", width, i+1, textutil.Truncate(textutil.Flatten(item), 100))
	}

	for {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}

		fmt.Fprintf(f.out, "Select [1-%d]: ", len(items))
		line, err := f.in.ReadString('\n')
		answer := strings.TrimSpace(line)
		if err != nil && answer == "" {
			if errors.Is(err, io.EOF) {
				return 0, false, nil
			}
			return 0, false, fmt.Errorf("read choice: %w", err)
		}

		if answer == "" || strings.EqualFold(answer, "q") {
			return 0, false, nil
		}
		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= 1 && n <= len(items) {
			return n - 1, true, nil
		}
		fmt.Fprintf(f.out, "Invalid choice %q\n", answer)
		if err != nil {
			return 0, false, nil
		}
	}
}

func (f *File) Notify(level Level, message string) {
	switch level {
	case LevelError:
		log.Error().Str("document", f.path).Msg(message)
	default:
		log.Info().Str("document", f.path).Msg(message)
	}
}
