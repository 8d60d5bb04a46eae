package translation

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

const libreTranslateBaseURL = "https://libretranslate.com"

// LibreTranslateClient translates through a LibreTranslate server. Comments
// are sent verbatim; LibreTranslate leaves comment markers untouched.
type LibreTranslateClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	retry      retrier
}

// NewLibreTranslateClient creates a new LibreTranslate client.
func NewLibreTranslateClient(apiKey, baseURL string, httpClient *http.Client) *LibreTranslateClient {
	if baseURL == "" {
		baseURL = libreTranslateBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &LibreTranslateClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

// Translate sends one comment to LibreTranslate. Regional subtags are dropped
// because LibreTranslate only knows base languages.
func (lc *LibreTranslateClient) Translate(ctx context.Context, text, targetLang string) (string, error) {
	reqBody := libreRequest{
		Q:      text,
		Source: "auto",
		Target: baseLanguage(targetLang),
		Format: "text",
		APIKey: lc.apiKey,
	}

	return lc.retry.do(ctx, func(ctx context.Context) (string, error) {
		respBody, err := postJSON(ctx, lc.httpClient, lc.baseURL+"/translate", nil, reqBody)
		if err != nil {
			return "", err
		}

		resp := gjson.ParseBytes(respBody)
		if msg := resp.Get("error"); msg.Exists() {
			return "", &providerError{msg: fmt.Sprintf("API error: %s", msg.String())}
		}
		translated := resp.Get("translatedText")
		if !translated.Exists() {
			return "", &providerError{msg: "empty response: no translatedText"}
		}
		return translated.String(), nil
	})
}
