package scanner

import (
	"regexp"
	"sort"
)

// Profile is the comment syntax rule set selected by a language identifier.
type Profile struct {
	// Name identifies the comment family (hash, slash).
	Name string
	// Languages lists the language tags that select this profile by exact match.
	Languages []string
	// Pattern is the combined alternation of every comment form of the family.
	Pattern *regexp.Regexp
}

// Line comments stop before the line break; block comments are non-greedy and
// only match when closed.
var (
	hashProfile = Profile{
		Name:      "hash",
		Languages: []string{"python"},
		Pattern:   regexp.MustCompile(`#[^\r\n]*|'''[\s\S]*?'''|"""[\s\S]*?"""`),
	}
	slashProfile = Profile{
		Name:    "slash",
		Pattern: regexp.MustCompile(`//[^\r\n]*|/\*[\s\S]*?\*/`),
	}
)

var profilesByLanguage = func() map[string]Profile {
	m := make(map[string]Profile)
	for _, p := range []Profile{hashProfile, slashProfile} {
		for _, lang := range p.Languages {
			m[lang] = p
		}
	}
	return m
}()

// DefaultProfile is used for every language tag without an explicit profile.
func DefaultProfile() Profile {
	return slashProfile
}

// ProfileFor returns the profile registered for languageTag, or the default.
func ProfileFor(languageTag string) Profile {
	if p, ok := profilesByLanguage[languageTag]; ok {
		return p
	}
	return slashProfile
}

// Profiles returns every profile, sorted by name.
func Profiles() []Profile {
	out := []Profile{hashProfile, slashProfile}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
