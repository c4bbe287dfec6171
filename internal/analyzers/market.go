package analyzers

import (
	"math"

	"github.com/gamepulse/gamepulse/internal/domain"
)

// AnalyzeMarket positions a title by its estimated ownership. The
// score is logarithmic in owner count so the long tail still spreads
// out; average=0 is valid input (log10(1)=0, score 0, Niche).
func AnalyzeMarket(owners domain.OwnershipRange) domain.MarketScore {
	avg := owners.Average
	if avg < 0 {
		avg = 0
	}

	return domain.MarketScore{
		Position: marketPosition(avg),
		Score:    clamp(math.Log10(float64(avg)+1) * 10),
	}
}

func marketPosition(avg int64) domain.MarketPosition {
	switch {
	case avg > 1000000:
		return domain.MarketViral
	case avg > 100000:
		return domain.MarketBlockbuster
	case avg > 10000:
		return domain.MarketPopular
	default:
		return domain.MarketNiche
	}
}
