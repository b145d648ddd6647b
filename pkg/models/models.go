package models

// ProductRow is one line of the uploaded identifier list. The EAN is kept as
// opaque text so leading zeros survive the round trip through spreadsheets.
// Cost (the EK column) is only meaningful when HasCost is set.
type ProductRow struct {
	EAN     string  `json:"ean"`
	Name    string  `json:"name,omitempty"`
	Cost    float64 `json:"ek,omitempty"`
	HasCost bool    `json:"-"`
}

// Outcome tags how a source lookup concluded.
type Outcome int

const (
	// OutcomeFound means the source returned a usable price.
	OutcomeFound Outcome = iota
	// OutcomeNotFound means the response parsed fine but held no matching offer.
	OutcomeNotFound
	// OutcomeError covers network failures, timeouts, non-2xx responses and
	// malformed bodies. Downstream it behaves like OutcomeNotFound; the tag
	// exists so the retry layer can target transport errors only.
	OutcomeError
)

// Quote is the answer of one source for one row. An absent price is a normal
// outcome, not an error. Quotes are never mutated after creation.
type Quote struct {
	Source  string  `json:"source"`
	Price   float64 `json:"price,omitempty"`
	Found   bool    `json:"found"`
	Link    string  `json:"link,omitempty"`
	Outcome Outcome `json:"-"`
}

// Metrics are derived once per row from the prices its quotes carried.
type Metrics struct {
	Average         float64 `json:"average"`
	UVP             float64 `json:"uvp"`
	B2B             float64 `json:"b2b"`
	MarginVsAverage float64 `json:"margin_vs_average"`
	MarginVsCost    float64 `json:"margin_vs_cost"`
}

// Rating buckets a margin percentage by fixed thresholds.
type Rating string

const (
	RatingHigh   Rating = "high"
	RatingMedium Rating = "medium"
	RatingLow    Rating = "low"
)

// ResultRow joins one ProductRow with its quotes and derived metrics. It is
// created once all quotes for the row are in and is immutable afterwards;
// the minimum-margin filter copies, it never mutates.
type ResultRow struct {
	Row     ProductRow `json:"row"`
	Quotes  []Quote    `json:"quotes"`
	Metrics Metrics    `json:"metrics"`
	Rating  Rating     `json:"rating"`
}

// RatingMargin returns the margin the rating and the minimum-margin filter
// operate on. It is MarginVsAverage for the whole result set so filtering
// stays consistent whether or not purchase costs were supplied.
func (r ResultRow) RatingMargin() float64 {
	return r.Metrics.MarginVsAverage
}
