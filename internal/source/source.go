package source

import "context"

// Candidate is one search-result entry from a retail source, prior to
// confirming it matches the query.
type Candidate struct {
	DisplayText string
	Ref         string
}

// Prices holds the raw extracted price fields. A nil field means the detail
// page lacked it; a missing price is never reported as zero.
type Prices struct {
	Sell    *float64
	TradeIn *float64
}

// Source drives one external retailer's search and detail pages.
type Source interface {
	Name() string
	Search(ctx context.Context, query string) ([]Candidate, error)
	FetchPrices(ctx context.Context, c Candidate) (Prices, error)
}
