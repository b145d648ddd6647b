// internal/source/retry.go
package source

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ezinulo/pricefinder/internal/retry"
	"github.com/ezinulo/pricefinder/pkg/models"
)

// WithRetry wraps a client so transport-tagged failures are attempted again
// with exponential backoff. A selector miss or empty result list is an honest
// not-found and is never retried. With MaxAttempts <= 1 the client is
// returned unwrapped.
func WithRetry(c Client, cfg retry.Config) Client {
	if cfg.MaxAttempts <= 1 {
		return c
	}
	return &retryClient{inner: c, cfg: cfg}
}

type retryClient struct {
	inner Client
	cfg   retry.Config
}

func (r *retryClient) Name() string { return r.inner.Name() }

func (r *retryClient) Fetch(ctx context.Context, query string) models.Quote {
	var quote models.Quote
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		quote = r.inner.Fetch(ctx, query)
		if quote.Outcome != models.OutcomeError {
			return quote
		}

		if attempt < r.cfg.MaxAttempts-1 {
			backoff := retry.Backoff(attempt, r.cfg)
			log.Debug().
				Str("source", r.inner.Name()).
				Int("attempt", attempt+1).
				Dur("backoff", backoff).
				Msg("Transport error, retrying after backoff")

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return quote
			}
		}
	}
	return quote
}
