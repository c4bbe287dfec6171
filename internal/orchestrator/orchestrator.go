// Package orchestrator drives one analysis end to end: fan out to the
// provider clients, merge whatever settled successfully, run the
// scoring pipeline, and assemble the final result. The orchestrator is
// the only concurrency-aware component; everything downstream of the
// merge is pure.
package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gamepulse/gamepulse/internal/analyzers"
	"github.com/gamepulse/gamepulse/internal/domain"
	"github.com/gamepulse/gamepulse/internal/normalize"
	"github.com/gamepulse/gamepulse/internal/pricing"
	"github.com/gamepulse/gamepulse/internal/providers"
	"github.com/gamepulse/gamepulse/internal/telemetry"
)

// CatalogClient is the catalog provider boundary.
type CatalogClient interface {
	AppDetails(ctx context.Context, appID int) (*providers.CatalogDetails, error)
}

// OwnershipClient is the ownership/engagement provider boundary.
type OwnershipClient interface {
	AppStats(ctx context.Context, appID int) (*providers.OwnershipStats, error)
}

// HistoryClient is the price-history provider boundary.
type HistoryClient interface {
	PriceHistory(ctx context.Context, appID int) ([]domain.PricePoint, error)
}

// ResultCache is an injected TTL cache collaborator. Implementations
// own eviction policy; the orchestrator only reads and writes.
type ResultCache interface {
	GetResult(ctx context.Context, appID int) (*domain.AnalysisResult, bool)
	SetResult(ctx context.Context, result *domain.AnalysisResult) error
}

// AuditStore records fetched series and completed results for offline
// inspection. Failures here are logged, never surfaced.
type AuditStore interface {
	SaveHistory(ctx context.Context, appID int, points []domain.PricePoint) error
	SaveResult(ctx context.Context, result *domain.AnalysisResult) error
}

// Options controls one analysis request.
type Options struct {
	IncludeReviews      bool
	IncludeSalesHistory bool
	ForceRefresh        bool
}

// DefaultOptions enables everything.
func DefaultOptions() Options {
	return Options{IncludeReviews: true, IncludeSalesHistory: true}
}

// Config tunes the scoring and solver stages plus batch behavior.
type Config struct {
	Weights       analyzers.Weights
	SweepPoints   int
	RangeFraction float64
	BatchWorkers  int
	BatchPacing   time.Duration
}

// DefaultConfig returns the documented baseline.
func DefaultConfig() Config {
	return Config{
		Weights:       analyzers.DefaultWeights(),
		SweepPoints:   pricing.DefaultSweepPoints,
		RangeFraction: pricing.DefaultRangeFraction,
		BatchWorkers:  1,
		BatchPacing:   250 * time.Millisecond,
	}
}

// Orchestrator fuses the three provider clients into per-title
// assessments. Cache and store are optional.
type Orchestrator struct {
	catalog   CatalogClient
	ownership OwnershipClient
	history   HistoryClient
	cache     ResultCache
	store     AuditStore
	cfg       Config
}

// New wires an orchestrator. Catalog and ownership clients are
// required; history, cache and store may be nil.
func New(catalog CatalogClient, ownership OwnershipClient, history HistoryClient, cfg Config) *Orchestrator {
	if cfg.SweepPoints < 1 {
		cfg.SweepPoints = pricing.DefaultSweepPoints
	}
	if cfg.RangeFraction <= 0 {
		cfg.RangeFraction = pricing.DefaultRangeFraction
	}
	if cfg.BatchWorkers < 1 {
		cfg.BatchWorkers = 1
	}
	return &Orchestrator{catalog: catalog, ownership: ownership, history: history, cfg: cfg}
}

// WithCache attaches a result cache collaborator.
func (o *Orchestrator) WithCache(c ResultCache) *Orchestrator {
	o.cache = c
	return o
}

// WithStore attaches an audit store collaborator.
func (o *Orchestrator) WithStore(s AuditStore) *Orchestrator {
	o.store = s
	return o
}

// settled captures the outcome of one provider call, success or not.
type settled[T any] struct {
	value T
	err   error
}

// Analyze runs the full pipeline for one title.
func (o *Orchestrator) Analyze(ctx context.Context, appID int, opts Options) (*domain.AnalysisResult, error) {
	if appID <= 0 {
		return nil, ErrInvalidAppID
	}

	if o.cache != nil && !opts.ForceRefresh {
		if cached, ok := o.cache.GetResult(ctx, appID); ok {
			telemetry.CacheHits.Inc()
			log.Debug().Int("app_id", appID).Msg("analysis served from cache")
			return cached, nil
		}
		telemetry.CacheMisses.Inc()
	}

	started := time.Now()

	// Fan out to every enabled provider and wait for all to settle.
	// A slow or failing source never blocks the others; its outcome is
	// captured independently and merged at the end.
	catalogCh := make(chan settled[*providers.CatalogDetails], 1)
	ownershipCh := make(chan settled[*providers.OwnershipStats], 1)
	historyCh := make(chan settled[[]domain.PricePoint], 1)

	go func() {
		details, err := o.catalog.AppDetails(ctx, appID)
		catalogCh <- settled[*providers.CatalogDetails]{details, err}
	}()
	go func() {
		stats, err := o.ownership.AppStats(ctx, appID)
		ownershipCh <- settled[*providers.OwnershipStats]{stats, err}
	}()

	wantHistory := opts.IncludeSalesHistory && o.history != nil
	if wantHistory {
		go func() {
			points, err := o.history.PriceHistory(ctx, appID)
			historyCh <- settled[[]domain.PricePoint]{points, err}
		}()
	}

	catalogOut := <-catalogCh
	ownershipOut := <-ownershipCh
	historyOut := settled[[]domain.PricePoint]{}
	if wantHistory {
		historyOut = <-historyCh
	}

	tried := []string{"catalog", "ownership"}
	failures := make(map[string]error)
	if catalogOut.err != nil {
		failures["catalog"] = catalogOut.err
		telemetry.SourceFailures.WithLabelValues("catalog").Inc()
		log.Warn().Err(catalogOut.err).Int("app_id", appID).Str("source", "catalog").Msg("source unavailable")
	}
	if ownershipOut.err != nil {
		failures["ownership"] = ownershipOut.err
		telemetry.SourceFailures.WithLabelValues("ownership").Inc()
		log.Warn().Err(ownershipOut.err).Int("app_id", appID).Str("source", "ownership").Msg("source unavailable")
	}
	if wantHistory {
		tried = append(tried, "price_history")
		if historyOut.err != nil {
			failures["price_history"] = historyOut.err
			telemetry.SourceFailures.WithLabelValues("price_history").Inc()
			log.Warn().Err(historyOut.err).Int("app_id", appID).Str("source", "price_history").Msg("source unavailable")
		}
	}

	if len(failures) == len(tried) {
		telemetry.AnalysesTotal.WithLabelValues("failure").Inc()
		return nil, &AllSourcesError{AppID: appID, Tried: tried, Errors: failures}
	}

	var cat *providers.CatalogDetails
	if catalogOut.err == nil {
		cat = catalogOut.value
	}
	var own *providers.OwnershipStats
	if ownershipOut.err == nil {
		own = ownershipOut.value
	}
	var hist []domain.PricePoint
	if wantHistory && historyOut.err == nil {
		hist = historyOut.value
	}

	facts := normalize.MergeFacts(appID, cat, own, hist)
	if !opts.IncludeReviews {
		facts.ReviewLabel = ""
	}

	result := o.score(facts)
	result.Sources = domain.SourceStatus{
		Catalog:      cat != nil,
		Ownership:    own != nil,
		PriceHistory: wantHistory && historyOut.err == nil,
	}

	if o.store != nil {
		if len(hist) > 0 {
			if err := o.store.SaveHistory(ctx, appID, hist); err != nil {
				log.Warn().Err(err).Int("app_id", appID).Msg("audit store: save history failed")
			}
		}
		if err := o.store.SaveResult(ctx, result); err != nil {
			log.Warn().Err(err).Int("app_id", appID).Msg("audit store: save result failed")
		}
	}

	if o.cache != nil {
		if err := o.cache.SetResult(ctx, result); err != nil {
			log.Warn().Err(err).Int("app_id", appID).Msg("cache: set failed")
		}
	}

	telemetry.AnalysesTotal.WithLabelValues("success").Inc()
	telemetry.AnalysisDuration.Observe(time.Since(started).Seconds())
	log.Info().
		Int("app_id", appID).
		Str("request_id", result.RequestID).
		Float64("overall", result.OverallScore).
		Int64("suggested_price", result.PriceAdvice.SuggestedPrice).
		Dur("elapsed", time.Since(started)).
		Msg("analysis complete")

	return result, nil
}

// score runs the pure pipeline over merged facts.
func (o *Orchestrator) score(facts domain.GameFacts) *domain.AnalysisResult {
	price := analyzers.AnalyzePrice(facts.CurrentPrice, facts.AvgPlaytimeForever)
	engagement := analyzers.AnalyzeEngagement(facts.AvgPlaytimeForever, facts.AvgPlaytime2Weeks, facts.ConcurrentPlayers)
	market := analyzers.AnalyzeMarket(facts.Owners)
	review := analyzers.AnalyzeReview(facts.ReviewLabel)

	overall := analyzers.Composite(o.cfg.Weights, price, engagement, market, review)
	recs := analyzers.Recommendations(facts, price, engagement, market, review)

	stats := pricing.HistoryStats(facts.PriceHistory)
	elasticity := pricing.Elasticity(stats, overall)
	advice := pricing.Recommend(pricing.SolverInput{
		CurrentPrice: facts.CurrentPrice,
		ReviewScore:  review.Score,
		Engagement:   engagement.Level,
		Market:       market.Position,
		PricePerHour: price.PricePerHour,
		DemandScore:  overall,
		Elasticity:   elasticity,
		Stats:        stats,
	}, o.cfg.RangeFraction, o.cfg.SweepPoints)

	return &domain.AnalysisResult{
		RequestID:       uuid.NewString(),
		AppID:           facts.AppID,
		Name:            facts.Name,
		Timestamp:       time.Now().UTC(),
		Price:           price,
		Engagement:      engagement,
		Market:          market,
		Review:          review,
		OverallScore:    overall,
		Recommendations: recs,
		PriceAdvice:     advice,
	}
}
