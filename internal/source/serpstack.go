// internal/source/serpstack.go
package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ezinulo/pricefinder/internal/price"
	"github.com/ezinulo/pricefinder/pkg/models"
)

// SerpstackEndpoint is the production search API endpoint.
const SerpstackEndpoint = "https://api.serpstack.com/search"

// serpstackClient asks the hosted search API for shopping results instead of
// scraping result pages. The access key is injected at construction and never
// logged.
type serpstackClient struct {
	endpoint  string
	accessKey string
	opts      Options
}

// serpstackResponse covers the part of the API answer we read. Price comes as
// either a bare number or a formatted string depending on the result, so it
// stays raw until the price parser normalizes it.
type serpstackResponse struct {
	ShoppingResults []struct {
		Price json.RawMessage `json:"price"`
		URL   string          `json:"url"`
	} `json:"shopping_results"`
}

// NewSerpstack returns the API-backed source client.
func NewSerpstack(accessKey string, opts Options) Client {
	opts.fill(SerpstackEndpoint)
	return &serpstackClient{
		endpoint:  opts.BaseURL,
		accessKey: accessKey,
		opts:      opts,
	}
}

func (s *serpstackClient) Name() string { return "serpstack" }

// Fetch runs one shopping search and reads the first result. Any failure —
// network, auth, malformed JSON, empty result list, unparseable price —
// yields an absent quote, never an error to the caller.
func (s *serpstackClient) Fetch(ctx context.Context, query string) models.Quote {
	quote := models.Quote{Source: s.Name(), Outcome: models.OutcomeError}

	u, err := url.Parse(s.endpoint)
	if err != nil {
		return quote
	}
	q := u.Query()
	q.Set("access_key", s.accessKey)
	q.Set("query", query)
	q.Set("type", "shopping")
	u.RawQuery = q.Encode()

	if s.opts.Limiter != nil {
		if err := s.opts.Limiter.Wait(ctx, s.endpoint); err != nil {
			return quote
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u.String(), nil)
	if err != nil {
		return quote
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.opts.Client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("source", s.Name()).Str("query", query).Msg("Request failed")
		return quote
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug().Int("status", resp.StatusCode).Str("source", s.Name()).Msg("Non-2xx response")
		return quote
	}

	var payload serpstackResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Debug().Err(err).Str("source", s.Name()).Msg("Failed to decode response")
		return quote
	}

	quote.Outcome = models.OutcomeNotFound
	if len(payload.ShoppingResults) == 0 {
		return quote
	}

	first := payload.ShoppingResults[0]
	quote.Link = first.URL
	raw := strings.Trim(string(first.Price), `"`)
	if v, ok := price.Parse(raw); ok {
		quote.Price = v
		quote.Found = true
		quote.Outcome = models.OutcomeFound
	}

	log.Debug().
		Str("source", s.Name()).
		Str("query", query).
		Bool("found", quote.Found).
		Dur("took", time.Since(start)).
		Msg("Fetch completed")

	return quote
}
