// Package pricing derives a price recommendation from historical price
// behavior and demand proxies. The math here is deliberately heuristic:
// elasticity is approximated from observed price volatility and
// engagement, not estimated from controlled experiments, and the output
// carries a bounded confidence value instead of a guarantee.
package pricing

import (
	"math"

	"github.com/gamepulse/gamepulse/internal/domain"
)

// Raw OLS slope thresholds for trend classification, in minor currency
// units per observation index.
const trendSlopeThreshold = 0.01

// defaultElasticity is used whenever the series gives us nothing to
// work with (empty history or zero average price).
const defaultElasticity = -1.0

// HistoryStats summarizes a chronological price series. An empty series
// yields the zero stats with a stable trend.
func HistoryStats(points []domain.PricePoint) domain.PriceStats {
	stats := domain.PriceStats{Trend: domain.TrendStable}
	if len(points) == 0 {
		return stats
	}

	stats.Lowest = float64(points[0].Price)
	stats.Highest = float64(points[0].Price)

	var sum float64
	for _, p := range points {
		v := float64(p.Price)
		sum += v
		if v < stats.Lowest {
			stats.Lowest = v
		}
		if v > stats.Highest {
			stats.Highest = v
		}
	}
	stats.Average = sum / float64(len(points))

	var sqDiff float64
	for _, p := range points {
		d := float64(p.Price) - stats.Average
		sqDiff += d * d
	}
	stats.Volatility = math.Sqrt(sqDiff / float64(len(points)))

	slope := olsSlope(points)
	switch {
	case slope > trendSlopeThreshold:
		stats.Trend = domain.TrendIncreasing
	case slope < -trendSlopeThreshold:
		stats.Trend = domain.TrendDecreasing
	}

	return stats
}

// olsSlope fits price against observation index by ordinary least
// squares and returns the raw slope. Fewer than two points has no
// defined slope and returns 0.
func olsSlope(points []domain.PricePoint) float64 {
	n := len(points)
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range points {
		x := float64(i)
		y := float64(p.Price)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// Elasticity approximates price elasticity of demand from price
// volatility and a 0-100 demand proxy (the composite score). The result
// is always non-positive: volatile prices and weak demand both make
// demand more price-sensitive.
func Elasticity(stats domain.PriceStats, demandScore float64) float64 {
	if stats.Average == 0 {
		return defaultElasticity
	}

	volRatio := stats.Volatility / stats.Average
	if volRatio > 1 {
		volRatio = 1
	}

	demand := demandScore
	if demand < 0 {
		demand = 0
	}
	if demand > 100 {
		demand = 100
	}

	return -(0.5 + 0.5*volRatio + 0.5*(1-demand/100))
}
