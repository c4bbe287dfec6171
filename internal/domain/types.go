// Package domain holds the canonical types shared by the analysis
// pipeline. Everything here is source-agnostic: provider shapes are
// normalized into these types at the boundary and never leak past it.
package domain

import "time"

// PriceCategory buckets a title by its current price point.
type PriceCategory string

const (
	PriceFree     PriceCategory = "Free"
	PriceBudget   PriceCategory = "Budget"
	PriceMidRange PriceCategory = "Mid-Range"
	PricePremium  PriceCategory = "Premium"
	PriceAAA      PriceCategory = "AAA"
)

// EngagementLevel buckets a title by concurrent player count.
type EngagementLevel string

const (
	EngagementLow      EngagementLevel = "Low"
	EngagementMedium   EngagementLevel = "Medium"
	EngagementHigh     EngagementLevel = "High"
	EngagementVeryHigh EngagementLevel = "Very High"
)

// MarketPosition buckets a title by estimated ownership.
type MarketPosition string

const (
	MarketNiche       MarketPosition = "Niche"
	MarketPopular     MarketPosition = "Popular"
	MarketBlockbuster MarketPosition = "Blockbuster"
	MarketViral       MarketPosition = "Viral"
)

// PriceTrend classifies the slope of a historical price series.
type PriceTrend string

const (
	TrendIncreasing PriceTrend = "increasing"
	TrendDecreasing PriceTrend = "decreasing"
	TrendStable     PriceTrend = "stable"
)

// OwnershipRange is the derived numeric view of a provider's
// "min .. max" ownership estimate. Invariant: Min <= Average <= Max.
type OwnershipRange struct {
	Min     int64 `json:"min"`
	Max     int64 `json:"max"`
	Average int64 `json:"average"`
}

// PricePoint is one observation in a historical price series.
// Price is in minor currency units (cents).
type PricePoint struct {
	Date   time.Time `json:"date"`
	Price  int64     `json:"price"`
	ShopID string    `json:"shop_id,omitempty"`
}

// GameFacts is the canonical, merged view of one title, built once per
// analysis request from whatever providers responded. Never mutated
// after construction.
type GameFacts struct {
	AppID     int    `json:"app_id"`
	Name      string `json:"name"`
	Developer string `json:"developer"`
	Publisher string `json:"publisher"`

	// Pricing, in minor currency units. CurrentPrice <= InitialPrice
	// when both are known; DiscountPercent in [0,100].
	CurrentPrice    int64 `json:"current_price"`
	InitialPrice    int64 `json:"initial_price"`
	DiscountPercent int   `json:"discount_percent"`
	IsFree          bool  `json:"is_free"`

	// Engagement. Playtime in minutes.
	AvgPlaytimeForever int64 `json:"avg_playtime_forever"`
	AvgPlaytime2Weeks  int64 `json:"avg_playtime_2weeks"`
	ConcurrentPlayers  int64 `json:"concurrent_players"`

	// Ownership.
	OwnersRaw string         `json:"owners_raw"`
	Owners    OwnershipRange `json:"owners"`

	// Sentiment.
	ScoreRank   string `json:"score_rank"`
	ReviewLabel string `json:"review_label"`

	Genres    []string `json:"genres,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Languages []string `json:"languages,omitempty"`

	ReleaseDate string `json:"release_date,omitempty"`

	PriceHistory []PricePoint `json:"price_history,omitempty"`
}

// PriceScore is the price-dimension assessment.
type PriceScore struct {
	Category     PriceCategory `json:"category"`
	PricePerHour float64       `json:"price_per_hour"`
	ValueScore   float64       `json:"value_score"`
}

// EngagementScore is the player-dimension assessment.
type EngagementScore struct {
	Level          EngagementLevel `json:"level"`
	RetentionScore float64         `json:"retention_score"`
}

// MarketScore is the market-position assessment.
type MarketScore struct {
	Position MarketPosition `json:"position"`
	Score    float64        `json:"score"`
}

// ReviewScore is the sentiment assessment.
type ReviewScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// PriceStats summarizes a historical price series.
// All prices in minor currency units.
type PriceStats struct {
	Lowest     float64    `json:"lowest"`
	Highest    float64    `json:"highest"`
	Average    float64    `json:"average"`
	Volatility float64    `json:"volatility"`
	Trend      PriceTrend `json:"trend"`
}

// PriceRecommendation is the output of the optimal price solver.
// SuggestedPrice is in minor currency units and never negative;
// Confidence is clamped to [0,100].
type PriceRecommendation struct {
	SuggestedPrice int64    `json:"suggested_price"`
	Confidence     float64  `json:"confidence"`
	Elasticity     float64  `json:"elasticity"`
	Reasoning      []string `json:"reasoning"`
}

// SourceStatus records which providers contributed to a result.
type SourceStatus struct {
	Catalog      bool `json:"catalog"`
	Ownership    bool `json:"ownership"`
	PriceHistory bool `json:"price_history"`
}

// AnalysisResult is the immutable per-title output handed to callers.
type AnalysisResult struct {
	RequestID string    `json:"request_id"`
	AppID     int       `json:"app_id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`

	Price      PriceScore      `json:"price"`
	Engagement EngagementScore `json:"engagement"`
	Market     MarketScore     `json:"market"`
	Review     ReviewScore     `json:"review"`

	OverallScore    float64             `json:"overall_score"`
	Recommendations []string            `json:"recommendations"`
	PriceAdvice     PriceRecommendation `json:"price_advice"`

	Sources SourceStatus `json:"sources"`
}
