// internal/source/resolver.go
package source

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ezinulo/pricefinder/pkg/models"
)

// Resolver runs the EAN-first, name-second lookup strategy against every
// configured client.
type Resolver struct {
	clients []Client
}

// NewResolver creates a Resolver over the given clients. Quote order in
// Resolve follows client order here.
func NewResolver(clients ...Client) *Resolver {
	return &Resolver{clients: clients}
}

// Resolve queries each client with the row's EAN and, when that yields no
// price and the row has a display name, once more with the name. The retry
// doubles worst-case latency for unmatched rows but recovers products whose
// bare EAN is not indexed by the source. Whichever attempt produced a price
// wins; otherwise the final attempt's not-found quote is kept.
func (r *Resolver) Resolve(ctx context.Context, row models.ProductRow) []models.Quote {
	quotes := make([]models.Quote, 0, len(r.clients))
	for _, c := range r.clients {
		q := c.Fetch(ctx, row.EAN)
		if !q.Found && row.Name != "" {
			log.Debug().
				Str("source", c.Name()).
				Str("ean", row.EAN).
				Msg("No price for EAN, retrying with product name")
			q = c.Fetch(ctx, row.Name)
		}
		quotes = append(quotes, q)
	}
	return quotes
}
