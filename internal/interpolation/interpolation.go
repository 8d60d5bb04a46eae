package interpolation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Mapping stores the original span and its safe replacement.
type Mapping struct {
	Original    string
	Placeholder string
	Index       int
}

// varMatch stores a detected span position.
type varMatch struct {
	start, end int
	value      string
}

// patterns detect spans inside comments that must survive translation verbatim.
var patterns = []*regexp.Regexp{
	regexp.MustCompile("`[^`\n]+`"),                            // `inline code`
	regexp.MustCompile(`https?://[^\s)>\]]+`),                  // URLs
	regexp.MustCompile(`\$\{[a-zA-Z_][a-zA-Z0-9_]*\}`),         // ${value}
	regexp.MustCompile(`\{[0-9]+\}`),                           // {0}, {1}
	regexp.MustCompile(`%[-+0-9]*\.?[0-9]*[dsfieEgGxXoubcpqv]`), // %d, %s, %v, %2d, etc.
	regexp.MustCompile(`%%`),                                   // escaped percent literal
}

// Protect replaces every protected span with a {{var_N}} placeholder.
// Returns the safe string and a mapping to restore originals after translation.
func Protect(text string) (string, []Mapping) {
	var allMatches []varMatch
	for _, p := range patterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			allMatches = append(allMatches, varMatch{
				start: loc[0],
				end:   loc[1],
				value: text[loc[0]:loc[1]],
			})
		}
	}

	if len(allMatches) == 0 {
		return text, nil
	}

	// By position, longest first on ties.
	sort.SliceStable(allMatches, func(i, j int) bool {
		if allMatches[i].start != allMatches[j].start {
			return allMatches[i].start < allMatches[j].start
		}
		return allMatches[i].end-allMatches[i].start > allMatches[j].end-allMatches[j].start
	})

	// Drop overlapping matches, keeping the first/longest.
	var filtered []varMatch
	lastEnd := -1
	for _, m := range allMatches {
		if m.start >= lastEnd {
			filtered = append(filtered, m)
			lastEnd = m.end
		}
	}

	mappings := make([]Mapping, len(filtered))
	var sb strings.Builder
	cursor := 0
	for i, m := range filtered {
		placeholder := fmt.Sprintf("{{var_%d}}", i+1)
		mappings[i] = Mapping{Original: m.value, Placeholder: placeholder, Index: i + 1}
		sb.WriteString(text[cursor:m.start])
		sb.WriteString(placeholder)
		cursor = m.end
	}
	sb.WriteString(text[cursor:])

	return sb.String(), mappings
}

// Restore replaces {{var_N}} placeholders with the original spans.
func Restore(translated string, mappings []Mapping) string {
	result := translated
	for _, m := range mappings {
		result = strings.Replace(result, m.Placeholder, m.Original, 1)
	}
	return result
}
