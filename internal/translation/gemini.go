package translation

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"comment-translator/internal/interpolation"
	"comment-translator/internal/textutil"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta/models"
	geminiDefaultModel = "gemini-2.5-flash"
)

// GeminiClient translates comments via the Google Gemini API.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	retry      retrier
	prompts    *PromptBuilder
}

// NewGeminiClient creates a new Gemini translation client.
func NewGeminiClient(apiKey, model, baseURL string, httpClient *http.Client) *GeminiClient {
	if model == "" {
		model = geminiDefaultModel
	}
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &GeminiClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		prompts:    NewPromptBuilder(),
	}
}

// --- Gemini API request types ---

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  *genConfig      `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
}

// Translate sends one comment to Gemini and returns its translation. Comments
// without letters are returned as-is.
func (gc *GeminiClient) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if !textutil.HasLetters(text) {
		return text, nil
	}
	protected, mappings := interpolation.Protect(text)

	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: gc.prompts.GetSystemPrompt(targetLang)}},
		},
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: gc.prompts.BuildUserPrompt(protected)}},
			},
		},
		GenerationConfig: &genConfig{
			MaxOutputTokens: 8192,
			Temperature:     0.3,
		},
	}

	result, err := gc.retry.do(ctx, func(ctx context.Context) (string, error) {
		return gc.doRequest(ctx, reqBody)
	})
	if err != nil {
		return "", err
	}

	return interpolation.Restore(result, mappings), nil
}

func (gc *GeminiClient) doRequest(ctx context.Context, reqBody geminiRequest) (string, error) {
	endpoint := fmt.Sprintf("%s/%s:generateContent", gc.baseURL, gc.model)
	headers := map[string]string{"x-goog-api-key": gc.apiKey}

	respBody, err := postJSON(ctx, gc.httpClient, endpoint, headers, reqBody)
	if err != nil {
		return "", err
	}

	resp := gjson.ParseBytes(respBody)
	if apiErr := resp.Get("error"); apiErr.Exists() {
		return "", &providerError{msg: fmt.Sprintf("API error [%s]: %s", apiErr.Get("status").String(), apiErr.Get("message").String())}
	}

	parts := resp.Get("candidates.0.content.parts.#.text")
	if !parts.Exists() || len(parts.Array()) == 0 {
		return "", &providerError{msg: "empty response: no candidates"}
	}

	// Extract text from the first candidate.
	var result strings.Builder
	for _, p := range parts.Array() {
		result.WriteString(p.String())
	}

	if usage := resp.Get("usageMetadata"); usage.Exists() {
		log.Debug().
			Int64("prompt_tokens", usage.Get("promptTokenCount").Int()).
			Int64("output_tokens", usage.Get("candidatesTokenCount").Int()).
			Msg("Translation complete")
	}

	return CleanResponse(result.String()), nil
}
