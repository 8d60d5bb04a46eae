package translation

import (
	"fmt"
	"strings"
)

// PromptBuilder constructs system and user prompts for comment translation.
type PromptBuilder struct{}

// NewPromptBuilder creates a new prompt builder.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

const systemPrompt = `You translate source code comments into {{targetLang}}.

Rules:
1. The input is exactly one comment, including its comment markers (//, /* */, #, ''' ''' or """ """).
2. Keep every comment marker, its position, and the original indentation and line breaks.
3. Preserve ALL placeholders like {{var_1}}, {{var_2}}, etc. and copy them exactly as-is into your translation.
4. Do not translate code identifiers, file paths, URLs, or anything inside backticks.
5. If the comment is already in {{targetLang}}, return it unchanged.
6. Output ONLY the translated comment, nothing else. No explanations, no code fences.`

// GetSystemPrompt returns the system prompt for translating into targetLang.
func (pb *PromptBuilder) GetSystemPrompt(targetLang string) string {
	return strings.ReplaceAll(systemPrompt, "{{targetLang}}", LanguageName(targetLang))
}

// BuildUserPrompt wraps a single comment for translation.
func (pb *PromptBuilder) BuildUserPrompt(comment string) string {
	return fmt.Sprintf("Comment to translate:\n%s", comment)
}

// CleanResponse strips code fences a model may wrap around its answer.
func CleanResponse(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
