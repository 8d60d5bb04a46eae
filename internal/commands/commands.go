// Package commands implements the two user-facing actions: showing the
// comments of the active document and translating them in place.
package commands

import (
	"context"
	"errors"
	"fmt"

	"comment-translator/internal/batch"
	"comment-translator/internal/editor"
	"comment-translator/internal/position"
	"comment-translator/internal/scanner"

	"github.com/rs/zerolog/log"
)

// User-facing notices.
const (
	MsgOpenFileToShow      = "Open a file first to see comments."
	MsgOpenFileToTranslate = "Open a file first to translate comments."
	MsgNoComments          = "No comments found in this file."
	PickerPlaceholder      = "Comments in this file"
)

// State is a step of a command run.
type State string

const (
	StateIdle         State = "idle"
	StateScanning     State = "scanning"
	StateHasComments  State = "has-occurrences"
	StateEmptyNotice  State = "empty"
	StateDisplay      State = "display"
	StateTranslating  State = "translating"
	StateApplying     State = "applying"
	StateDone         State = "done"
	StateNoDocument   State = "no-document"
	StateApplyFailure State = "apply-failed"
	StateHostFailure  State = "host-failed"
)

// Outcome describes how a command run ended.
type Outcome struct {
	State       State
	Occurrences []scanner.Occurrence
	// Selected is the index of the picked occurrence, -1 when none was picked.
	Selected int
	Results  []batch.Result
}

// scan loads the active document and scans it. Any state other than
// StateHasComments means the run already ended with a notice.
func scan(host editor.Host, noDocMsg string) (editor.Document, []scanner.Occurrence, State) {
	doc, err := host.Document()
	if err != nil {
		if errors.Is(err, editor.ErrNoActiveDocument) {
			host.Notify(editor.LevelInfo, noDocMsg)
			return doc, nil, StateNoDocument
		}
		log.Error().Err(err).Msg("Document unavailable")
		host.Notify(editor.LevelError, fmt.Sprintf("Failed to read the document: %v", err))
		return doc, nil, StateHostFailure
	}

	occurrences := scanner.Scan(doc.Text, doc.LanguageTag)
	log.Debug().
		Str("document", doc.URI).
		Str("language", doc.LanguageTag).
		Str("profile", scanner.ProfileFor(doc.LanguageTag).Name).
		Int("comments", len(occurrences)).
		Msg("Document scanned")

	if len(occurrences) == 0 {
		host.Notify(editor.LevelInfo, MsgNoComments)
		return doc, occurrences, StateEmptyNotice
	}
	return doc, occurrences, StateHasComments
}

// ShowComments lists the comments of the active document in a picker and
// selects the one the user picks.
func ShowComments(ctx context.Context, host editor.Host) (Outcome, error) {
	out := Outcome{State: StateIdle, Selected: -1}

	doc, occurrences, state := scan(host, MsgOpenFileToShow)
	out.Occurrences = occurrences
	if state != StateHasComments {
		out.State = state
		return out, nil
	}

	out.State = StateDisplay
	items := make([]string, len(occurrences))
	for i, o := range occurrences {
		items[i] = o.Text
	}

	idx, ok, err := host.PromptChoice(ctx, PickerPlaceholder, items)
	if err != nil {
		log.Error().Err(err).Msg("Picker failed")
		host.Notify(editor.LevelError, fmt.Sprintf("Failed to show comments: %v", err))
		out.State = StateHostFailure
		return out, nil
	}
	if !ok || idx < 0 || idx >= len(occurrences) {
		out.State = StateDone
		return out, nil
	}

	picked := occurrences[idx]
	if err := host.Select(position.RangeOf(doc.Text, picked.Start, picked.End)); err != nil {
		log.Error().Err(err).Int("index", idx).Msg("Selection failed")
		host.Notify(editor.LevelError, fmt.Sprintf("Failed to select the comment: %v", err))
		out.State = StateHostFailure
		return out, nil
	}

	out.Selected = idx
	out.State = StateDone
	return out, nil
}

// TranslateComments translates every comment of the active document into
// targetLang and replaces them in a single edit. Per-comment failures keep
// the original text; a rejected edit is reported to the user.
func TranslateComments(ctx context.Context, host editor.Host, runner *batch.Runner, targetLang string) (Outcome, error) {
	out := Outcome{State: StateIdle, Selected: -1}

	_, occurrences, state := scan(host, MsgOpenFileToTranslate)
	out.Occurrences = occurrences
	if state != StateHasComments {
		out.State = state
		return out, nil
	}

	out.State = StateTranslating
	out.Results = runner.TranslateAll(ctx, occurrences, targetLang)

	out.State = StateApplying
	if edits := batch.Edits(out.Results); len(edits) > 0 {
		if err := host.ReplaceRanges(edits); err != nil {
			log.Error().Err(err).Int("edits", len(edits)).Msg("Buffer edit rejected")
			host.Notify(editor.LevelError, fmt.Sprintf("Failed to apply translations: %v", err))
			out.State = StateApplyFailure
			return out, nil
		}
	}

	succeeded, failed := batch.Summary(out.Results)
	if failed == 0 {
		host.Notify(editor.LevelInfo, fmt.Sprintf("Translated %d %s.", succeeded, nouns(succeeded)))
	} else {
		host.Notify(editor.LevelInfo, fmt.Sprintf("Translated %d of %d %s; %d kept their original text.", succeeded, len(out.Results), nouns(len(out.Results)), failed))
	}

	out.State = StateDone
	return out, nil
}

func nouns(n int) string {
	if n == 1 {
		return "comment"
	}
	return "comments"
}
