// Package source contains the clients that ask external shopping sources for
// the price of one product, plus the fallback strategy that runs them.
package source

import (
	"context"
	"net/http"
	"time"

	"github.com/ezinulo/pricefinder/internal/ratelimit"
	"github.com/ezinulo/pricefinder/pkg/models"
)

// Client looks up one query against one external source.
//
// Fetch never returns an error: a network failure, timeout, non-2xx status,
// malformed body or selector miss all collapse into a Quote with an absent
// price and a tagged outcome. This keeps per-item failures from ever
// aborting a batch.
type Client interface {
	Name() string
	Fetch(ctx context.Context, query string) models.Quote
}

// Options holds the shared wiring every client needs. Zero fields fall back
// to usable defaults so tests can construct clients with just a BaseURL.
type Options struct {
	// BaseURL overrides the source's production URL, used by tests to point
	// a client at a fixture server.
	BaseURL   string
	Client    *http.Client
	Limiter   ratelimit.RateLimiter
	UserAgent string
	Timeout   time.Duration
}

func (o *Options) fill(defaultBase string) {
	if o.BaseURL == "" {
		o.BaseURL = defaultBase
	}
	if o.Client == nil {
		o.Client = http.DefaultClient
	}
	if o.UserAgent == "" {
		o.UserAgent = "Mozilla/5.0"
	}
	if o.Timeout <= 0 {
		o.Timeout = 8 * time.Second
	}
}
