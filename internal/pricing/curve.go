package pricing

import "math"

// Curve sweep defaults. The sweep covers basePrice*(1±rangeFraction)
// in sweepPoints even intervals.
const (
	DefaultSweepPoints   = 20
	DefaultRangeFraction = 0.30
)

// CurvePoint is one sampled point on the modeled demand curve. Price is
// in minor currency units; demand is in the caller's demand-proxy
// units; revenue is their product.
type CurvePoint struct {
	Price   float64 `json:"price"`
	Demand  float64 `json:"demand"`
	Revenue float64 `json:"revenue"`
}

// DemandCurve sweeps points+1 evenly spaced prices across the range and
// models demand at each via constant-elasticity scaling:
// demand = baseDemand * (price/basePrice)^elasticity.
// Returns nil when the inputs cannot produce a meaningful curve.
func DemandCurve(basePrice, baseDemand, elasticity, rangeFraction float64, points int) []CurvePoint {
	if basePrice <= 0 || baseDemand <= 0 || points < 1 || rangeFraction <= 0 {
		return nil
	}

	lo := basePrice * (1 - rangeFraction)
	hi := basePrice * (1 + rangeFraction)
	if lo < 0 {
		lo = 0
	}
	step := (hi - lo) / float64(points)

	curve := make([]CurvePoint, 0, points+1)
	for i := 0; i <= points; i++ {
		price := lo + step*float64(i)
		demand := baseDemand
		if price > 0 {
			demand = baseDemand * math.Pow(price/basePrice, elasticity)
		}
		curve = append(curve, CurvePoint{
			Price:   price,
			Demand:  demand,
			Revenue: price * demand,
		})
	}
	return curve
}

// OptimalIndex returns the index of the revenue-maximizing point. Ties
// break toward the lower price (first occurrence in ascending order).
// Returns -1 for an empty curve.
func OptimalIndex(curve []CurvePoint) int {
	if len(curve) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(curve); i++ {
		if curve[i].Revenue > curve[best].Revenue {
			best = i
		}
	}
	return best
}

// LocalElasticity computes arc elasticity at index i via a centered
// finite difference against its immediate neighbors. At the curve
// boundary (or with degenerate values) the measure is undefined and the
// default elasticity is returned.
func LocalElasticity(curve []CurvePoint, i int) float64 {
	if i <= 0 || i >= len(curve)-1 {
		return defaultElasticity
	}

	p0, p2 := curve[i-1], curve[i+1]
	mid := curve[i]
	if mid.Price == 0 || mid.Demand == 0 {
		return defaultElasticity
	}

	dPrice := (p2.Price - p0.Price) / mid.Price
	if dPrice == 0 {
		return defaultElasticity
	}
	dDemand := (p2.Demand - p0.Demand) / mid.Demand
	return dDemand / dPrice
}
