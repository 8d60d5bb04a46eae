package translation

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

type rateLimited struct {
	next    Translator
	limiter *rate.Limiter
}

// RateLimited wraps tr so that at most rps requests per second reach it.
func RateLimited(tr Translator, rps float64, burst int) Translator {
	if burst < 1 {
		burst = 1
	}
	return &rateLimited{next: tr, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (r *rateLimited) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return r.next.Translate(ctx, text, targetLang)
}
