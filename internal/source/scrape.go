// internal/source/scrape.go
package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/ezinulo/pricefinder/internal/price"
	"github.com/ezinulo/pricefinder/pkg/models"
)

// selectorSet holds the fixed structural paths for one scrape target. When a
// site redesign makes these miss, lookups degrade to not-found quotes; they
// never crash.
type selectorSet struct {
	result string
	price  string
	link   string
}

// scrapeClient fetches a search result page over plain HTTP and reads the
// first offer block with goquery.
type scrapeClient struct {
	name      string
	searchURL string // format string, the query is escaped into %s
	baseURL   string // prefixed onto relative offer hrefs
	selectors selectorSet
	opts      Options
}

func (s *scrapeClient) Name() string { return s.name }

// Fetch issues one GET against the source and extracts price and link from
// the first result block. A transport failure and a selector miss both come
// back as quotes without a price, distinguished only by the outcome tag.
func (s *scrapeClient) Fetch(ctx context.Context, query string) models.Quote {
	quote := models.Quote{Source: s.name, Outcome: models.OutcomeError}

	target := fmt.Sprintf(s.searchURL, url.QueryEscape(query))
	if s.opts.Limiter != nil {
		if err := s.opts.Limiter.Wait(ctx, target); err != nil {
			log.Debug().Err(err).Str("source", s.name).Msg("Rate limiter wait aborted")
			return quote
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return quote
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.8")

	start := time.Now()
	resp, err := s.opts.Client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("source", s.name).Str("query", query).Msg("Request failed")
		return quote
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug().
			Int("status", resp.StatusCode).
			Str("source", s.name).
			Str("query", query).
			Msg("Non-2xx response")
		return quote
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		log.Debug().Err(err).Str("source", s.name).Msg("Failed to parse HTML")
		return quote
	}

	// From here on an empty result is a miss, not a transport problem.
	quote.Outcome = models.OutcomeNotFound

	result := doc.Find(s.selectors.result).First()
	if result.Length() == 0 {
		return quote
	}

	if href, ok := result.Find(s.selectors.link).First().Attr("href"); ok {
		quote.Link = resolveHref(s.baseURL, href)
	}
	text := strings.TrimSpace(result.Find(s.selectors.price).First().Text())
	if v, ok := price.Parse(text); ok {
		quote.Price = v
		quote.Found = true
		quote.Outcome = models.OutcomeFound
	}

	log.Debug().
		Str("source", s.name).
		Str("query", query).
		Bool("found", quote.Found).
		Dur("took", time.Since(start)).
		Msg("Fetch completed")

	return quote
}

// resolveHref prefixes site-relative offer links with the source's base URL.
func resolveHref(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return base + href
}
