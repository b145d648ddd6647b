package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ezinulo/pricefinder/pkg/models"
)

const googleFixture = `<html><body>
<div class="sh-dgr__grid-result">
  <a class="shntl" href="/url?q=https://shop.example/product"><h3>Some Product</h3></a>
  <span class="T14wmb">€ 129,99</span>
</div>
<div class="sh-dgr__grid-result">
  <span class="T14wmb">€ 999,99</span>
</div>
</body></html>`

const idealoFixture = `<html><body>
<div class="offerList-item">
  <a href="/preisvergleich/OffersOfProduct/123.html">Produkt</a>
  <span class="price">ab 119,00 €</span>
</div>
</body></html>`

func TestGoogleFetchFound(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		if r.URL.Query().Get("tbm") != "shop" {
			t.Errorf("missing tbm=shop parameter, got query %v", r.URL.RawQuery)
		}
		w.Write([]byte(googleFixture))
	}))
	defer srv.Close()

	c := NewGoogle(Options{BaseURL: srv.URL, Client: srv.Client()})
	q := c.Fetch(context.Background(), "4006381333931")

	if gotQuery != "4006381333931" {
		t.Errorf("query sent = %q, want the EAN", gotQuery)
	}
	if !q.Found || q.Outcome != models.OutcomeFound {
		t.Fatalf("expected found quote, got %+v", q)
	}
	if q.Price != 129.99 {
		t.Errorf("Price = %v, want 129.99 (first result only)", q.Price)
	}
	if q.Link != srv.URL+"/url?q=https://shop.example/product" {
		t.Errorf("Link = %q, want base-prefixed href", q.Link)
	}
}

func TestIdealoFetchFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(idealoFixture))
	}))
	defer srv.Close()

	c := NewIdealo(Options{BaseURL: srv.URL, Client: srv.Client()})
	q := c.Fetch(context.Background(), "4006381333931")

	if !q.Found {
		t.Fatalf("expected found quote, got %+v", q)
	}
	if q.Price != 119.00 {
		t.Errorf("Price = %v, want 119.00", q.Price)
	}
	if q.Link != srv.URL+"/preisvergleich/OffersOfProduct/123.html" {
		t.Errorf("Link = %q, want base-prefixed href", q.Link)
	}
}

func TestScrapeSelectorMissIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>No results</p></body></html>"))
	}))
	defer srv.Close()

	c := NewGoogle(Options{BaseURL: srv.URL, Client: srv.Client()})
	q := c.Fetch(context.Background(), "0000000000000")

	if q.Found {
		t.Fatalf("expected absent price, got %+v", q)
	}
	if q.Outcome != models.OutcomeNotFound {
		t.Errorf("Outcome = %v, want OutcomeNotFound for a selector miss", q.Outcome)
	}
}

func TestScrapeNon2xxIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewGoogle(Options{BaseURL: srv.URL, Client: srv.Client()})
	q := c.Fetch(context.Background(), "4006381333931")

	if q.Found {
		t.Fatalf("expected absent price, got %+v", q)
	}
	if q.Outcome != models.OutcomeError {
		t.Errorf("Outcome = %v, want OutcomeError for a 429", q.Outcome)
	}
}

func TestScrapeUnreachableIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewGoogle(Options{BaseURL: srv.URL})
	q := c.Fetch(context.Background(), "4006381333931")

	if q.Found || q.Outcome != models.OutcomeError {
		t.Fatalf("expected transport-error quote, got %+v", q)
	}
}
