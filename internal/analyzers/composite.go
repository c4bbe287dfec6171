package analyzers

import (
	"fmt"
	"math"

	"github.com/gamepulse/gamepulse/internal/domain"
)

// Weights controls the composite blend of the four dimension scores.
// They are expected to sum to 1; equal weighting is the default and the
// documented baseline.
type Weights struct {
	Value     float64 `yaml:"value"`
	Retention float64 `yaml:"retention"`
	Market    float64 `yaml:"market"`
	Quality   float64 `yaml:"quality"`
}

// DefaultWeights returns the equal-weight baseline.
func DefaultWeights() Weights {
	return Weights{Value: 0.25, Retention: 0.25, Market: 0.25, Quality: 0.25}
}

// Composite blends the four sub-scores into one overall score, rounded
// to the nearest integer and clamped to [0,100].
func Composite(w Weights, price domain.PriceScore, eng domain.EngagementScore, market domain.MarketScore, review domain.ReviewScore) float64 {
	blended := w.Value*price.ValueScore +
		w.Retention*eng.RetentionScore +
		w.Market*market.Score +
		w.Quality*review.Score
	return clamp(math.Round(blended))
}

// Recommendations evaluates an independent rule list against the facts
// and dimension scores. Rules are not mutually exclusive; each appends
// at most one line, and an empty result is a valid outcome.
func Recommendations(facts domain.GameFacts, price domain.PriceScore, eng domain.EngagementScore, market domain.MarketScore, review domain.ReviewScore) []string {
	var recs []string

	if facts.DiscountPercent > 50 {
		recs = append(recs, fmt.Sprintf("Deep discount (%d%%) is driving conversions; consider maintaining it", facts.DiscountPercent))
	}
	if price.PricePerHour > 2 {
		recs = append(recs, fmt.Sprintf("Price per hour ($%.2f) is high for the playtime delivered; consider a price reduction", price.PricePerHour))
	}
	if eng.Level == domain.EngagementLow && facts.ConcurrentPlayers < 100 {
		recs = append(recs, "Low concurrent player base; invest in community building before price experiments")
	}
	if review.Score < 50 {
		recs = append(recs, "Negative review sentiment; address quality issues before adjusting price upward")
	}
	if eng.RetentionScore > 80 && market.Position == domain.MarketNiche {
		recs = append(recs, "Strong retention in a niche market; broader marketing could expand the audience")
	}

	return recs
}
