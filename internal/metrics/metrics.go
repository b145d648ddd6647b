// internal/metrics/metrics.go
package metrics

import (
	"math"

	"github.com/ezinulo/pricefinder/pkg/models"
)

// Compute derives the recommended resale price (UVP), wholesale price (B2B)
// and margin percentages from the prices that were actually found for a row.
// Every branch is total: a missing or zero denominator yields a 0 margin
// instead of an error, so rows without any price flow through unharmed.
func Compute(prices []float64, cost float64, hasCost bool) models.Metrics {
	var m models.Metrics

	if len(prices) > 0 {
		sum := 0.0
		for _, p := range prices {
			sum += p
		}
		m.Average = sum / float64(len(prices))
	}

	m.UVP = round2(m.Average * 1.3)
	if m.Average > 0 {
		m.B2B = round2(m.Average / 1.8)
	}
	if m.UVP != 0 {
		m.MarginVsAverage = round2((m.UVP - m.Average) / m.UVP * 100)
	}
	if hasCost && cost > 0 && m.UVP != 0 {
		m.MarginVsCost = round2((m.UVP - cost) / m.UVP * 100)
	}

	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
