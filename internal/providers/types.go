package providers

// CatalogDetails is the catalog provider's output contract. All fields
// optional at the wire level; zero values mean the provider omitted
// them.
type CatalogDetails struct {
	Name        string   `json:"name"`
	Developer   string   `json:"developer"`
	Publisher   string   `json:"publisher"`
	Genres      []string `json:"genres"`
	Languages   []string `json:"languages"`
	IsFree      bool     `json:"is_free"`
	ReleaseDate string   `json:"release_date"`
	Price       struct {
		Current         int64 `json:"current"`
		Initial         int64 `json:"initial"`
		DiscountPercent int   `json:"discount_percent"`
	} `json:"price"`
}

// OwnershipStats is the ownership/engagement provider's output
// contract. Playtime fields are minutes, Owners is the provider's raw
// range string.
type OwnershipStats struct {
	Owners            string           `json:"owners"`
	AverageForever    int64            `json:"average_forever"`
	Average2Weeks     int64            `json:"average_2weeks"`
	MedianForever     int64            `json:"median_forever"`
	Median2Weeks      int64            `json:"median_2weeks"`
	ConcurrentPlayers int64            `json:"ccu"`
	Price             int64            `json:"price"`
	Discount          int              `json:"discount"`
	Tags              map[string]int64 `json:"tags"`
	ScoreRank         string           `json:"score_rank"`
	Genre             string           `json:"genre"`
}
