package batch

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/ezinulo/pricefinder/pkg/models"
)

func testRows(n int) []models.ProductRow {
	rows := make([]models.ProductRow, n)
	for i := range rows {
		rows[i] = models.ProductRow{EAN: fmt.Sprintf("400000000%04d", i)}
	}
	return rows
}

func TestRunKeepsRowOrder(t *testing.T) {
	rows := testRows(40)
	lookup := func(ctx context.Context, row models.ProductRow) []models.Quote {
		// Jitter so completion order differs from submission order.
		time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
		return []models.Quote{{Source: "fake", Price: 1, Found: true}}
	}

	results := New(8).Run(context.Background(), rows, lookup, nil)

	if len(results) != len(rows) {
		t.Fatalf("got %d results for %d rows", len(results), len(rows))
	}
	for i, res := range results {
		if res.Row.EAN != rows[i].EAN {
			t.Fatalf("result %d belongs to %s, want %s", i, res.Row.EAN, rows[i].EAN)
		}
	}
}

func TestRunContainsPanics(t *testing.T) {
	rows := testRows(10)
	lookup := func(ctx context.Context, row models.ProductRow) []models.Quote {
		if row.EAN == rows[3].EAN {
			panic("boom")
		}
		return []models.Quote{{Source: "fake", Price: 2, Found: true}}
	}

	results := New(4).Run(context.Background(), rows, lookup, nil)

	if len(results) != len(rows) {
		t.Fatalf("got %d results for %d rows", len(results), len(rows))
	}
	for i, res := range results {
		if i == 3 {
			if len(res.Quotes) != 0 {
				t.Errorf("panicked row should have no quotes, got %+v", res.Quotes)
			}
			continue
		}
		if len(res.Quotes) != 1 || !res.Quotes[0].Found {
			t.Errorf("row %d should be unaffected by the panic, got %+v", i, res.Quotes)
		}
	}
}

func TestRunProgressReachesTotal(t *testing.T) {
	rows := testRows(25)

	var mu sync.Mutex
	var calls int
	var final int
	progress := func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if done > final {
			final = done
		}
		if total != len(rows) {
			t.Errorf("total = %d, want %d", total, len(rows))
		}
	}

	lookup := func(ctx context.Context, row models.ProductRow) []models.Quote { return nil }
	New(5).Run(context.Background(), rows, lookup, progress)

	if calls != len(rows) {
		t.Errorf("progress called %d times, want once per row (%d)", calls, len(rows))
	}
	if final != len(rows) {
		t.Errorf("progress peaked at %d, want %d", final, len(rows))
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	rows := testRows(30)

	var mu sync.Mutex
	var inFlight, peak int
	lookup := func(ctx context.Context, row models.ProductRow) []models.Quote {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()

		time.Sleep(3 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return nil
	}

	New(3).Run(context.Background(), rows, lookup, nil)

	if peak > 3 {
		t.Errorf("observed %d concurrent lookups, want at most 3", peak)
	}
}

func TestRunCancelledContextStillYieldsAllRows(t *testing.T) {
	rows := testRows(12)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := New(4).Run(ctx, rows, func(ctx context.Context, row models.ProductRow) []models.Quote {
		return []models.Quote{{Source: "fake"}}
	}, nil)

	if len(results) != len(rows) {
		t.Fatalf("got %d results for %d rows", len(results), len(rows))
	}
	for i, res := range results {
		if res.Row.EAN != rows[i].EAN {
			t.Fatalf("result %d belongs to %s, want %s", i, res.Row.EAN, rows[i].EAN)
		}
	}
}
