package scanner

import (
	"strings"
	"unicode/utf8"
)

// Occurrence is a single comment span found in a text snapshot.
type Occurrence struct {
	// Text is the matched comment, delimiters included.
	Text string
	// Start is the character offset of the first rune of the comment.
	Start int
	// End is the character offset one past the last rune of the comment.
	End int
}

// Scan returns every comment in text for the profile selected by languageTag,
// in left-to-right order. A text without comments yields an empty slice.
func Scan(text, languageTag string) []Occurrence {
	return ScanWith(ProfileFor(languageTag), text)
}

// ScanWith runs a single scan of text against p.
func ScanWith(p Profile, text string) []Occurrence {
	locs := p.Pattern.FindAllStringIndex(text, -1)
	occurrences := make([]Occurrence, 0, len(locs))

	// Matches are ordered, so byte offsets convert to character offsets with one pass.
	bytePos, runePos := 0, 0
	for _, loc := range locs {
		runePos += utf8.RuneCountInString(text[bytePos:loc[0]])
		start := runePos
		runePos += utf8.RuneCountInString(text[loc[0]:loc[1]])
		bytePos = loc[1]

		occurrences = append(occurrences, Occurrence{
			Text:  text[loc[0]:loc[1]],
			Start: start,
			End:   runePos,
		})
	}

	return occurrences
}

// KeepsForm reports whether replacement is still made of comments of the same
// profile as original, separated only by whitespace. An original that no
// profile recognises as a whole comment accepts any replacement.
func KeepsForm(original, replacement string) bool {
	for _, p := range Profiles() {
		if commentsOnly(p, original) {
			return commentsOnly(p, replacement)
		}
	}
	return true
}

func commentsOnly(p Profile, s string) bool {
	locs := p.Pattern.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return false
	}
	prev := 0
	for _, loc := range locs {
		if strings.TrimSpace(s[prev:loc[0]]) != "" {
			return false
		}
		prev = loc[1]
	}
	return strings.TrimSpace(s[prev:]) == ""
}
