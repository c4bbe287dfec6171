package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamepulse/gamepulse/internal/providers"
)

func TestMergeFacts_AllSourcesNil(t *testing.T) {
	facts := MergeFacts(440, nil, nil, nil)

	assert.Equal(t, 440, facts.AppID)
	assert.Equal(t, "Unknown", facts.Name)
	assert.Equal(t, "Unknown", facts.Developer)
	assert.Equal(t, "Unknown", facts.Publisher)
	assert.Zero(t, facts.CurrentPrice)
	assert.Zero(t, facts.Owners.Average)
}

func TestMergeFacts_CatalogOnly(t *testing.T) {
	cat := &providers.CatalogDetails{
		Name:      "Half-Life 3",
		Developer: "Valve",
		Genres:    []string{"Action", "Action", "FPS"},
	}
	cat.Price.Current = 1999
	cat.Price.Initial = 3999
	cat.Price.DiscountPercent = 50

	facts := MergeFacts(17, cat, nil, nil)

	assert.Equal(t, "Half-Life 3", facts.Name)
	assert.Equal(t, "Unknown", facts.Publisher)
	assert.Equal(t, int64(1999), facts.CurrentPrice)
	assert.Equal(t, int64(3999), facts.InitialPrice)
	assert.Equal(t, 50, facts.DiscountPercent)
	assert.False(t, facts.IsFree)
	assert.Equal(t, []string{"Action", "FPS"}, facts.Genres)
}

func TestMergeFacts_OwnershipFillsPriceGap(t *testing.T) {
	own := &providers.OwnershipStats{
		Owners:         "10,000 .. 20,000",
		AverageForever: 600,
		Average2Weeks:  120,
		Price:          999,
		Discount:       10,
		ScoreRank:      "Very Positive",
	}

	facts := MergeFacts(99, nil, own, nil)

	require.Equal(t, int64(999), facts.CurrentPrice)
	assert.Equal(t, 10, facts.DiscountPercent)
	assert.Equal(t, int64(15000), facts.Owners.Average)
	assert.Equal(t, "Very Positive", facts.ReviewLabel)
	// Initial price reconciles toward current when unknown.
	assert.Equal(t, facts.CurrentPrice, facts.InitialPrice)
}

func TestMergeFacts_CurrentNeverExceedsInitial(t *testing.T) {
	cat := &providers.CatalogDetails{Name: "X"}
	cat.Price.Current = 2999
	cat.Price.Initial = 999 // stale upstream data

	facts := MergeFacts(5, cat, nil, nil)
	assert.GreaterOrEqual(t, facts.InitialPrice, facts.CurrentPrice)
}

func TestMergeFacts_FreeTitle(t *testing.T) {
	cat := &providers.CatalogDetails{Name: "F2P", IsFree: true}
	facts := MergeFacts(7, cat, nil, nil)
	assert.True(t, facts.IsFree)
	assert.Zero(t, facts.CurrentPrice)
}

func TestMergeFacts_TagsOrderedByVotes(t *testing.T) {
	own := &providers.OwnershipStats{
		Owners: "100 .. 200",
		Tags:   map[string]int64{"Indie": 50, "Roguelike": 900, "Co-op": 300},
	}
	facts := MergeFacts(3, nil, own, nil)
	assert.Equal(t, []string{"Roguelike", "Co-op", "Indie"}, facts.Tags)
}
