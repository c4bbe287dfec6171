// Package analyzers holds the per-dimension scorers. Every function is
// a pure transformation of normalized facts: no I/O, no shared state,
// safe under arbitrary concurrency. Scores are always clamped to
// [0,100] so downstream weighting never sees out-of-range values.
package analyzers

import "github.com/gamepulse/gamepulse/internal/domain"

// Price breakpoints in minor currency units.
const (
	budgetCeiling   = 1000 // < $10
	midRangeCeiling = 3000 // < $30
	premiumCeiling  = 6000 // < $60
)

// AnalyzePrice classifies the price point and derives a value score
// from price relative to playtime delivered. Playtime is minutes; a
// zero playtime means price-per-hour is unknowable and reported as 0.
func AnalyzePrice(currentPrice int64, playtimeMinutes int64) domain.PriceScore {
	out := domain.PriceScore{Category: priceCategory(currentPrice)}

	if currentPrice > 0 && playtimeMinutes > 0 {
		hours := float64(playtimeMinutes) / 60.0
		out.PricePerHour = (float64(currentPrice) / 100.0) / hours
	}
	out.ValueScore = clamp(100 - out.PricePerHour*10)

	return out
}

func priceCategory(price int64) domain.PriceCategory {
	switch {
	case price == 0:
		return domain.PriceFree
	case price < budgetCeiling:
		return domain.PriceBudget
	case price < midRangeCeiling:
		return domain.PriceMidRange
	case price < premiumCeiling:
		return domain.PricePremium
	default:
		return domain.PriceAAA
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
