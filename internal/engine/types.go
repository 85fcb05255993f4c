package engine

// SourceResult is one source's contribution to the aggregate. Exactly one of
// two shapes is populated per call: a match with price fields, or an Error
// string carrying the failure kind. Prices use pointers so that a missing
// field serializes as absent rather than 0.
type SourceResult struct {
	MatchedTitle     string   `json:"matchedTitle,omitempty"`
	SellPrice        *float64 `json:"sellPrice,omitempty"`
	TradeInPrice     *float64 `json:"tradeInPrice,omitempty"`
	RecommendedPrice *float64 `json:"recommendedPrice,omitempty"`
	Error            string   `json:"error,omitempty"`
}

// AggregateResult is the full engine response. It is constructed fresh per
// call and owned by the caller; the engine never caches or stores it.
// RecommendedPrice is nil when no source produced a recommendation, which
// callers must treat as "insufficient pricing data", not an error.
type AggregateResult struct {
	Title            string                  `json:"title"`
	RecommendedPrice *float64                `json:"recommendedPrice"`
	Sources          map[string]SourceResult `json:"sources"`
}
