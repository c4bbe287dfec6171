package pricing

import (
	"fmt"
	"math"

	"github.com/gamepulse/gamepulse/internal/domain"
)

const baseConfidence = 50

// SolverInput carries everything the solver needs, already normalized
// and scored. CurrentPrice is minor currency units.
type SolverInput struct {
	CurrentPrice int64
	ReviewScore  float64
	Engagement   domain.EngagementLevel
	Market       domain.MarketPosition
	PricePerHour float64
	DemandScore  float64
	Elasticity   float64
	Stats        domain.PriceStats
}

// adjustment is one step of the heuristic multiplier chain. The chain
// is applied as an ordered fold: multipliers compound sequentially, so
// the order of the table affects the result and must stay fixed.
type adjustment struct {
	applies    func(SolverInput) bool
	multiplier float64
	confidence float64
	reason     string
}

var adjustments = []adjustment{
	{
		applies:    func(in SolverInput) bool { return in.ReviewScore > 80 },
		multiplier: 1.10, confidence: 10,
		reason: "Strong review sentiment supports a 10% premium",
	},
	{
		applies:    func(in SolverInput) bool { return in.ReviewScore < 50 },
		multiplier: 0.90, confidence: -10,
		reason: "Weak review sentiment; discount 10% to stay competitive",
	},
	{
		applies:    func(in SolverInput) bool { return in.Engagement == domain.EngagementVeryHigh },
		multiplier: 1.05, confidence: 5,
		reason: "Very high concurrent engagement supports a 5% premium",
	},
	{
		applies:    func(in SolverInput) bool { return in.Engagement == domain.EngagementLow },
		multiplier: 0.95, confidence: -5,
		reason: "Low engagement; trim 5% to reduce purchase friction",
	},
	{
		applies:    func(in SolverInput) bool { return in.Market == domain.MarketViral },
		multiplier: 1.15, confidence: 15,
		reason: "Viral market position supports a 15% premium",
	},
	{
		applies:    func(in SolverInput) bool { return in.Market == domain.MarketNiche },
		multiplier: 0.90, confidence: -10,
		reason: "Niche audience; discount 10% to widen appeal",
	},
	{
		applies:    func(in SolverInput) bool { return in.PricePerHour > 0 && in.PricePerHour < 0.5 },
		multiplier: 1.10, confidence: 10,
		reason: "Exceptional value per hour leaves a 10% premium on the table",
	},
	{
		applies:    func(in SolverInput) bool { return in.PricePerHour > 2 },
		multiplier: 0.85, confidence: -15,
		reason: "Poor value per hour; cut 15% to match playtime delivered",
	},
}

// Recommend produces a price recommendation. When the historical series
// supports a demand curve it sweeps one and picks the revenue-maximizing
// point; otherwise it falls back to the heuristic multiplier chain.
func Recommend(in SolverInput, rangeFraction float64, sweepPoints int) domain.PriceRecommendation {
	if in.Stats.Average > 0 && in.CurrentPrice > 0 && in.DemandScore > 0 {
		return solveCurve(in, rangeFraction, sweepPoints)
	}
	return solveHeuristic(in)
}

func solveCurve(in SolverInput, rangeFraction float64, sweepPoints int) domain.PriceRecommendation {
	if rangeFraction <= 0 {
		rangeFraction = DefaultRangeFraction
	}
	if sweepPoints < 1 {
		sweepPoints = DefaultSweepPoints
	}

	curve := DemandCurve(float64(in.CurrentPrice), in.DemandScore, in.Elasticity, rangeFraction, sweepPoints)
	best := OptimalIndex(curve)
	if best < 0 {
		return solveHeuristic(in)
	}

	opt := curve[best]
	localE := LocalElasticity(curve, best)

	rec := domain.PriceRecommendation{
		Elasticity: in.Elasticity,
		Confidence: clampConfidence(baseConfidence + 20),
		Reasoning: []string{
			fmt.Sprintf("Swept %d price points across ±%.0f%% of the current price", len(curve), rangeFraction*100),
			fmt.Sprintf("Revenue peaks at %d (modeled demand %.1f, local elasticity %.2f)", int64(math.Round(opt.Price)), opt.Demand, localE),
		},
	}
	rec.SuggestedPrice = clampPrice(opt.Price, in)
	return rec
}

func solveHeuristic(in SolverInput) domain.PriceRecommendation {
	price := float64(in.CurrentPrice)
	confidence := float64(baseConfidence)
	var reasons []string

	for _, adj := range adjustments {
		if !adj.applies(in) {
			continue
		}
		price *= adj.multiplier
		confidence += adj.confidence
		reasons = append(reasons, adj.reason)
	}

	return domain.PriceRecommendation{
		SuggestedPrice: clampPrice(price, in),
		Confidence:     clampConfidence(confidence),
		Elasticity:     in.Elasticity,
		Reasoning:      reasons,
	}
}

// clampPrice bounds a suggestion to a sane band: within a factor of two
// of the current price, and of the historical average when one exists.
// The result is rounded to the nearest minor unit and floored at zero.
func clampPrice(price float64, in SolverInput) int64 {
	if current := float64(in.CurrentPrice); current > 0 {
		price = bound(price, current*0.5, current*2)
	}
	if avg := in.Stats.Average; avg > 0 {
		price = bound(price, avg*0.5, avg*2)
	}

	rounded := int64(math.Round(price))
	if rounded < 0 {
		return 0
	}
	return rounded
}

func bound(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
