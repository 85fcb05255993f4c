package price

import "math"

// blendFactor biases the recommendation toward the trade-in side: a
// peer-to-peer seller should undercut retail while still beating the
// retailer's trade-in offer.
const blendFactor = 0.66

// Recommend computes the suggested listing price from a source's own sell
// and trade-in prices, rounded to the nearest whole currency unit. It
// returns nil when either input is missing; a sell price alone is not
// enough data to price against.
func Recommend(sell, tradeIn *float64) *float64 {
	if sell == nil || tradeIn == nil {
		return nil
	}
	v := math.Round(*sell - (*sell-*tradeIn)*blendFactor)
	return &v
}
