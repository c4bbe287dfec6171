package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamepulse/gamepulse/internal/domain"
)

func neutralInput() SolverInput {
	return SolverInput{
		CurrentPrice: 2000,
		ReviewScore:  50, // neither strong nor weak
		Engagement:   domain.EngagementMedium,
		Market:       domain.MarketPopular,
		PricePerHour: 1.0,
		Elasticity:   -1,
	}
}

func TestRecommend_NoHistoryNeutralInputsKeepsPrice(t *testing.T) {
	// Empty history means heuristic mode; with no triggering rules the
	// multiplier chain is identity and the price passes through.
	rec := Recommend(neutralInput(), DefaultRangeFraction, DefaultSweepPoints)

	assert.Equal(t, int64(2000), rec.SuggestedPrice)
	assert.Equal(t, 50.0, rec.Confidence)
	assert.Equal(t, -1.0, rec.Elasticity)
	assert.Empty(t, rec.Reasoning)
}

func TestHeuristic_MultipliersCompoundInOrder(t *testing.T) {
	in := neutralInput()
	in.ReviewScore = 85                  // x1.10, +10
	in.Engagement = domain.EngagementLow // x0.95, -5
	in.Market = domain.MarketViral       // x1.15, +15

	rec := Recommend(in, DefaultRangeFraction, DefaultSweepPoints)

	// 2000 * 1.10 * 0.95 * 1.15 = 2403.5, rounded to 2404.
	assert.Equal(t, int64(2404), rec.SuggestedPrice)
	assert.Equal(t, 70.0, rec.Confidence)
	require.Len(t, rec.Reasoning, 3)
	// Reasoning order mirrors the chain order.
	assert.Contains(t, rec.Reasoning[0], "review sentiment")
	assert.Contains(t, rec.Reasoning[1], "engagement")
	assert.Contains(t, rec.Reasoning[2], "Viral")
}

func TestHeuristic_ValueRules(t *testing.T) {
	in := neutralInput()
	in.PricePerHour = 0.25
	rec := Recommend(in, DefaultRangeFraction, DefaultSweepPoints)
	assert.Equal(t, int64(2200), rec.SuggestedPrice) // 2000 * 1.10
	assert.Equal(t, 60.0, rec.Confidence)

	in.PricePerHour = 3.0
	rec = Recommend(in, DefaultRangeFraction, DefaultSweepPoints)
	assert.Equal(t, int64(1700), rec.SuggestedPrice) // 2000 * 0.85
	assert.Equal(t, 35.0, rec.Confidence)
}

func TestHeuristic_UnknownPlaytimeTriggersNoValueRule(t *testing.T) {
	in := neutralInput()
	in.PricePerHour = 0 // playtime unknown
	rec := Recommend(in, DefaultRangeFraction, DefaultSweepPoints)
	assert.Equal(t, int64(2000), rec.SuggestedPrice)
}

func TestHeuristic_ConfidenceClamped(t *testing.T) {
	in := neutralInput()
	in.ReviewScore = 95
	in.Engagement = domain.EngagementVeryHigh
	in.Market = domain.MarketViral
	in.PricePerHour = 0.1
	rec := Recommend(in, DefaultRangeFraction, DefaultSweepPoints)
	// 50+10+5+15+10 = 90, no clamp needed; the ceiling still holds.
	assert.LessOrEqual(t, rec.Confidence, 100.0)
	assert.Equal(t, 90.0, rec.Confidence)

	in = neutralInput()
	in.ReviewScore = 10
	in.Engagement = domain.EngagementLow
	in.Market = domain.MarketNiche
	in.PricePerHour = 5
	rec = Recommend(in, DefaultRangeFraction, DefaultSweepPoints)
	// 50-10-5-10-15 = 10; floor is 0.
	assert.GreaterOrEqual(t, rec.Confidence, 0.0)
	assert.Equal(t, 10.0, rec.Confidence)
}

func TestHeuristic_FreeTitleStaysFree(t *testing.T) {
	in := neutralInput()
	in.CurrentPrice = 0
	in.ReviewScore = 95
	rec := Recommend(in, DefaultRangeFraction, DefaultSweepPoints)
	assert.Equal(t, int64(0), rec.SuggestedPrice)
	assert.GreaterOrEqual(t, rec.SuggestedPrice, int64(0))
}

func TestRecommend_CurveModeWithHistory(t *testing.T) {
	in := neutralInput()
	in.DemandScore = 70
	in.Elasticity = 0 // constant demand: revenue peaks at the top of the sweep
	in.Stats = domain.PriceStats{Average: 2000, Lowest: 1500, Highest: 2500}

	rec := Recommend(in, 0.30, 20)

	// Top of the sweep is 2600, inside the clamp band.
	assert.Equal(t, int64(2600), rec.SuggestedPrice)
	assert.Equal(t, 70.0, rec.Confidence)
	require.Len(t, rec.Reasoning, 2)
	assert.Contains(t, rec.Reasoning[0], "Swept 21 price points")
}

func TestRecommend_CurveModeClampsToBand(t *testing.T) {
	in := neutralInput()
	in.DemandScore = 70
	in.Elasticity = 0
	// Historical average far below current narrows the upper clamp.
	in.Stats = domain.PriceStats{Average: 1000}

	rec := Recommend(in, 0.30, 20)
	assert.LessOrEqual(t, rec.SuggestedPrice, int64(2000)) // 2 * avg
	assert.GreaterOrEqual(t, rec.SuggestedPrice, int64(1000))
}

func TestClampPrice_NeverNegative(t *testing.T) {
	in := SolverInput{CurrentPrice: 0}
	assert.Equal(t, int64(0), clampPrice(-500, in))
}
