// Package batch translates every comment found by one scan and turns the
// outcome into a single edit set for the host.
package batch

import (
	"context"
	"errors"
	"strings"

	"comment-translator/internal/editor"
	"comment-translator/internal/scanner"
	"comment-translator/internal/textutil"
	"comment-translator/internal/translation"
	"comment-translator/internal/worker"

	"github.com/rs/zerolog/log"
)

var (
	errEmptyTranslation = errors.New("provider returned an empty translation")
	errLostMarkers      = errors.New("translation is no longer a comment")
)

// Result is the outcome of translating one occurrence. On failure Translated
// holds the original text.
type Result struct {
	Original   scanner.Occurrence
	Translated string
	Succeeded  bool
	Err        error
}

// Runner issues one translation request per occurrence.
type Runner struct {
	Translator translation.Translator
	// MaxConcurrent caps in-flight requests; 0 sends them all at once.
	MaxConcurrent int
}

// TranslateAll runs a batch with no concurrency cap.
func TranslateAll(ctx context.Context, occurrences []scanner.Occurrence, targetLang string, tr translation.Translator) []Result {
	r := &Runner{Translator: tr}
	return r.TranslateAll(ctx, occurrences, targetLang)
}

// TranslateAll translates every occurrence and waits for all requests to
// settle. It never fails as a whole: the result slice has one entry per
// occurrence, in input order, and failed items keep their original text.
func (r *Runner) TranslateAll(ctx context.Context, occurrences []scanner.Occurrence, targetLang string) []Result {
	pool := worker.NewPool[scanner.Occurrence, string](r.MaxConcurrent,
		func(ctx context.Context, o scanner.Occurrence) (string, error) {
			translated, err := r.Translator.Translate(ctx, o.Text, targetLang)
			if err != nil {
				return "", err
			}
			if strings.TrimSpace(translated) == "" {
				return "", errEmptyTranslation
			}
			if !scanner.KeepsForm(o.Text, translated) {
				return "", errLostMarkers
			}
			return translated, nil
		},
	)

	tasks := pool.Execute(ctx, occurrences)

	results := make([]Result, len(tasks))
	for i, task := range tasks {
		if task.Err != nil {
			log.Warn().
				Err(task.Err).
				Int("index", i).
				Str("text", textutil.Truncate(textutil.Flatten(task.Input.Text), 40)).
				Msg("Translation failed, keeping original comment")
			results[i] = Result{Original: task.Input, Translated: task.Input.Text, Err: task.Err}
			continue
		}
		results[i] = Result{Original: task.Input, Translated: task.Result, Succeeded: true}
	}

	succeeded, failed := Summary(results)
	log.Info().
		Int("comments", len(results)).
		Int("translated", succeeded).
		Int("failed", failed).
		Str("target", targetLang).
		Msg("Batch complete")

	return results
}

// Summary counts succeeded and failed results.
func Summary(results []Result) (succeeded, failed int) {
	for _, r := range results {
		if r.Succeeded {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

// Edits converts results into replacements of the ranges captured at scan
// time. Results whose text did not change produce no edit.
func Edits(results []Result) []editor.Edit {
	edits := make([]editor.Edit, 0, len(results))
	for _, r := range results {
		if r.Translated == r.Original.Text {
			continue
		}
		edits = append(edits, editor.Edit{
			Start: r.Original.Start,
			End:   r.Original.End,
			Text:  r.Translated,
		})
	}
	return edits
}
