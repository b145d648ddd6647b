// internal/assemble/assembler.go
package assemble

import (
	"github.com/ezinulo/pricefinder/internal/batch"
	"github.com/ezinulo/pricefinder/internal/metrics"
	"github.com/ezinulo/pricefinder/pkg/models"
)

// Margin thresholds for the qualitative rating.
const (
	highMargin   = 30.0
	mediumMargin = 15.0
)

// Rate buckets a margin percentage into high/medium/low.
func Rate(margin float64) models.Rating {
	switch {
	case margin >= highMargin:
		return models.RatingHigh
	case margin >= mediumMargin:
		return models.RatingMedium
	default:
		return models.RatingLow
	}
}

// Assemble joins every scheduled result with its derived metrics and rating.
// Output order and length always match the input; rows whose lookups all
// failed come through with zero metrics rather than being dropped.
func Assemble(results []batch.Result) []models.ResultRow {
	out := make([]models.ResultRow, 0, len(results))
	for _, res := range results {
		prices := make([]float64, 0, len(res.Quotes))
		for _, q := range res.Quotes {
			if q.Found {
				prices = append(prices, q.Price)
			}
		}

		m := metrics.Compute(prices, res.Row.Cost, res.Row.HasCost)
		out = append(out, models.ResultRow{
			Row:     res.Row,
			Quotes:  res.Quotes,
			Metrics: m,
			Rating:  Rate(m.MarginVsAverage),
		})
	}
	return out
}

// FilterMinMargin keeps rows whose rating margin is at least threshold.
// Rows without any usable price carry margin 0, so any threshold above zero
// removes them as well — that matches the reference behavior and is the
// documented trade-off, not an accident. A threshold of 0 removes nothing.
func FilterMinMargin(rows []models.ResultRow, threshold float64) []models.ResultRow {
	if threshold <= 0 {
		return rows
	}

	kept := make([]models.ResultRow, 0, len(rows))
	for _, r := range rows {
		if r.RatingMargin() >= threshold {
			kept = append(kept, r)
		}
	}
	return kept
}
