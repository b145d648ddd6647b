package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ezinulo/pricefinder/pkg/models"
)

func TestSerpstackFetchFound(t *testing.T) {
	var gotKey, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("access_key")
		gotType = r.URL.Query().Get("type")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"shopping_results":[{"price":"€ 129,00","url":"https://shop.example/p/1"},{"price":"€ 999,00","url":"https://shop.example/p/2"}]}`))
	}))
	defer srv.Close()

	c := NewSerpstack("secret-key", Options{BaseURL: srv.URL, Client: srv.Client()})
	q := c.Fetch(context.Background(), "4006381333931")

	if gotKey != "secret-key" || gotType != "shopping" {
		t.Errorf("request params access_key=%q type=%q, want secret-key/shopping", gotKey, gotType)
	}
	if !q.Found || q.Price != 129.00 {
		t.Fatalf("expected first result price 129.00, got %+v", q)
	}
	if q.Link != "https://shop.example/p/1" {
		t.Errorf("Link = %q, want first result url", q.Link)
	}
}

func TestSerpstackNumericPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"shopping_results":[{"price":84.5,"url":"https://shop.example/p"}]}`))
	}))
	defer srv.Close()

	c := NewSerpstack("k", Options{BaseURL: srv.URL, Client: srv.Client()})
	q := c.Fetch(context.Background(), "x")

	if !q.Found || q.Price != 84.5 {
		t.Fatalf("expected 84.5 from a numeric price field, got %+v", q)
	}
}

func TestSerpstackEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"shopping_results":[]}`))
	}))
	defer srv.Close()

	c := NewSerpstack("k", Options{BaseURL: srv.URL, Client: srv.Client()})
	q := c.Fetch(context.Background(), "x")

	if q.Found {
		t.Fatalf("expected absent price, got %+v", q)
	}
	if q.Outcome != models.OutcomeNotFound {
		t.Errorf("Outcome = %v, want OutcomeNotFound for an empty list", q.Outcome)
	}
}

func TestSerpstackMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"shopping_results": [`))
	}))
	defer srv.Close()

	c := NewSerpstack("k", Options{BaseURL: srv.URL, Client: srv.Client()})
	q := c.Fetch(context.Background(), "x")

	if q.Found || q.Outcome != models.OutcomeError {
		t.Fatalf("expected transport-error quote for malformed JSON, got %+v", q)
	}
}
