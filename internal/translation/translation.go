package translation

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Translator translates a single text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(ctx context.Context, text, targetLang string) (string, error)

func (f TranslatorFunc) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return f(ctx, text, targetLang)
}

// Provider names accepted by New.
const (
	ProviderGemini         = "gemini"
	ProviderOpenAI         = "openai"
	ProviderLibreTranslate = "libretranslate"
)

// Providers lists every supported provider name.
func Providers() []string {
	return []string{ProviderGemini, ProviderLibreTranslate, ProviderOpenAI}
}

// Options configures the translator built by New.
type Options struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the provider's default endpoint.
	BaseURL string
	// Proxy is an optional forward proxy URL. When empty the standard
	// HTTP_PROXY/HTTPS_PROXY environment variables apply.
	Proxy string
	// Timeout bounds a single HTTP request.
	Timeout time.Duration
	// MaxAttempts is the number of tries per text, first one included.
	MaxAttempts int
	// Backoff is the base delay between attempts.
	Backoff time.Duration
	// RequestsPerSecond caps outgoing requests; 0 disables the limit.
	RequestsPerSecond float64
}

// New builds the translator named by opts.Provider.
func New(opts Options) (Translator, error) {
	client, err := newHTTPClient(opts.Proxy, opts.Timeout)
	if err != nil {
		return nil, err
	}
	r := retrier{attempts: opts.MaxAttempts, backoff: opts.Backoff}

	var tr Translator
	switch strings.ToLower(opts.Provider) {
	case ProviderGemini, "":
		c := NewGeminiClient(opts.APIKey, opts.Model, opts.BaseURL, client)
		c.retry = r
		tr = c
	case ProviderOpenAI:
		c := NewOpenAIClient(opts.APIKey, opts.Model, opts.BaseURL, client)
		c.retry = r
		tr = c
	case ProviderLibreTranslate:
		c := NewLibreTranslateClient(opts.APIKey, opts.BaseURL, client)
		c.retry = r
		tr = c
	default:
		return nil, fmt.Errorf("unknown translation provider %q (want one of %s)", opts.Provider, strings.Join(Providers(), ", "))
	}

	if opts.RequestsPerSecond > 0 {
		tr = RateLimited(tr, opts.RequestsPerSecond, 1)
	}
	return tr, nil
}
