package translation

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"comment-translator/internal/interpolation"
	"comment-translator/internal/textutil"

	"github.com/tidwall/gjson"
)

const (
	openAIBaseURL      = "https://api.openai.com/v1"
	openAIDefaultModel = "gpt-4o-mini"
)

// OpenAIClient translates comments through any OpenAI-compatible
// chat/completions endpoint (OpenAI, Groq, Ollama, vLLM, ...).
type OpenAIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	retry      retrier
	prompts    *PromptBuilder
}

// NewOpenAIClient creates a new OpenAI-compatible translation client.
func NewOpenAIClient(apiKey, model, baseURL string, httpClient *http.Client) *OpenAIClient {
	if model == "" {
		model = openAIDefaultModel
	}
	if baseURL == "" {
		baseURL = openAIBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &OpenAIClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		prompts:    NewPromptBuilder(),
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Translate sends one comment to the chat endpoint and returns its translation.
// Comments without letters are returned as-is.
func (oc *OpenAIClient) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if !textutil.HasLetters(text) {
		return text, nil
	}
	protected, mappings := interpolation.Protect(text)

	reqBody := chatRequest{
		Model: oc.model,
		Messages: []chatMessage{
			{Role: "system", Content: oc.prompts.GetSystemPrompt(targetLang)},
			{Role: "user", Content: oc.prompts.BuildUserPrompt(protected)},
		},
		Temperature: 0.3,
	}

	result, err := oc.retry.do(ctx, func(ctx context.Context) (string, error) {
		return oc.doRequest(ctx, reqBody)
	})
	if err != nil {
		return "", err
	}

	return interpolation.Restore(result, mappings), nil
}

func (oc *OpenAIClient) doRequest(ctx context.Context, reqBody chatRequest) (string, error) {
	headers := map[string]string{}
	if oc.apiKey != "" {
		headers["Authorization"] = "Bearer " + oc.apiKey
	}

	respBody, err := postJSON(ctx, oc.httpClient, oc.baseURL+"/chat/completions", headers, reqBody)
	if err != nil {
		return "", err
	}

	resp := gjson.ParseBytes(respBody)
	if msg := resp.Get("error.message"); msg.Exists() {
		return "", &providerError{msg: fmt.Sprintf("API error: %s", msg.String())}
	}

	content := resp.Get("choices.0.message.content")
	if !content.Exists() {
		return "", &providerError{msg: "empty response: no choices"}
	}

	return CleanResponse(content.String()), nil
}
