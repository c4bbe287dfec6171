package normalize

import (
	"sort"

	"github.com/gamepulse/gamepulse/internal/domain"
	"github.com/gamepulse/gamepulse/internal/providers"
)

// MergeFacts fuses whatever providers responded into one canonical
// record. Any argument may be nil (that source failed); the result is
// always usable by the analyzers, with documented defaults standing in
// for missing data.
func MergeFacts(appID int, cat *providers.CatalogDetails, own *providers.OwnershipStats, hist []domain.PricePoint) domain.GameFacts {
	facts := domain.GameFacts{
		AppID:     appID,
		Name:      unknown,
		Developer: unknown,
		Publisher: unknown,
		ScoreRank: unknown,
	}

	if cat != nil {
		facts.Name = Label(cat.Name)
		facts.Developer = Label(cat.Developer)
		facts.Publisher = Label(cat.Publisher)
		facts.Genres = Dedupe(cat.Genres)
		facts.Languages = Dedupe(cat.Languages)
		facts.ReleaseDate = cat.ReleaseDate
		facts.CurrentPrice = MinorUnits(cat.Price.Current)
		facts.InitialPrice = MinorUnits(cat.Price.Initial)
		facts.DiscountPercent = Percent(cat.Price.DiscountPercent)
		facts.IsFree = cat.IsFree || facts.CurrentPrice == 0
	}

	if own != nil {
		facts.OwnersRaw = own.Owners
		facts.Owners = ParseOwnership(own.Owners)
		facts.AvgPlaytimeForever = Minutes(own.AverageForever)
		facts.AvgPlaytime2Weeks = Minutes(own.Average2Weeks)
		facts.ConcurrentPlayers = Count(own.ConcurrentPlayers)
		facts.ScoreRank = Label(own.ScoreRank)
		facts.ReviewLabel = own.ScoreRank
		facts.Tags = topTags(own.Tags)

		// Ownership stats carry a price too; use it when the catalog
		// had nothing.
		if cat == nil || facts.CurrentPrice == 0 {
			facts.CurrentPrice = MinorUnits(own.Price)
			facts.DiscountPercent = Percent(own.Discount)
			facts.IsFree = facts.CurrentPrice == 0
		}
	}

	// Initial price can only be missing or stale; current price is the
	// observed truth, so reconcile toward it.
	if facts.InitialPrice < facts.CurrentPrice {
		facts.InitialPrice = facts.CurrentPrice
	}

	facts.PriceHistory = hist
	return facts
}

// topTags flattens the tag->votes map into a vote-ordered slice.
func topTags(tags map[string]int64) []string {
	if len(tags) == 0 {
		return nil
	}
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if tags[names[i]] != tags[names[j]] {
			return tags[names[i]] > tags[names[j]]
		}
		return names[i] < names[j]
	})
	return Dedupe(names)
}
