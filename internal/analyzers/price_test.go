package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gamepulse/gamepulse/internal/domain"
)

func TestAnalyzePrice_MidRangeScenario(t *testing.T) {
	// $20.00 with 10 hours of playtime: $2.00/hour, value 80.
	got := AnalyzePrice(2000, 600)

	assert.Equal(t, domain.PriceMidRange, got.Category)
	assert.InDelta(t, 2.0, got.PricePerHour, 1e-9)
	assert.InDelta(t, 80.0, got.ValueScore, 1e-9)
}

func TestAnalyzePrice_Categories(t *testing.T) {
	cases := []struct {
		price int64
		want  domain.PriceCategory
	}{
		{0, domain.PriceFree},
		{999, domain.PriceBudget},
		{1000, domain.PriceMidRange},
		{2999, domain.PriceMidRange},
		{3000, domain.PricePremium},
		{5999, domain.PricePremium},
		{6000, domain.PriceAAA},
		{19999, domain.PriceAAA},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AnalyzePrice(tc.price, 0).Category, "price %d", tc.price)
	}
}

func TestAnalyzePrice_NoPlaytime(t *testing.T) {
	got := AnalyzePrice(2000, 0)
	assert.Zero(t, got.PricePerHour)
	assert.Equal(t, 100.0, got.ValueScore)
}

func TestAnalyzePrice_ValueScoreClamped(t *testing.T) {
	// $60 for 30 minutes is $120/hour; score bottoms out at 0.
	got := AnalyzePrice(6000, 30)
	assert.Equal(t, 0.0, got.ValueScore)

	// Free title never goes above 100.
	free := AnalyzePrice(0, 10000)
	assert.Equal(t, 100.0, free.ValueScore)
}
