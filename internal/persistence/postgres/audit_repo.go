// Package postgres persists fetched price series and completed
// analysis summaries for offline inspection. The engine never reads
// from here on the request path; this is an audit trail, not a cache.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gamepulse/gamepulse/internal/domain"
)

// AuditRepo writes price-history snapshots and analysis rows.
type AuditRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// Connect opens a postgres pool and verifies it.
func Connect(dsn string, timeout time.Duration) (*AuditRepo, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AuditRepo{db: db, timeout: timeout}, nil
}

// NewAuditRepo wraps an existing pool, mainly for tests.
func NewAuditRepo(db *sqlx.DB, timeout time.Duration) *AuditRepo {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AuditRepo{db: db, timeout: timeout}
}

// SaveHistory stores one fetched price series as a batch of rows,
// skipping duplicates on (app_id, observed_at, shop_id).
func (r *AuditRepo) SaveHistory(ctx context.Context, appID int, points []domain.PricePoint) error {
	if len(points) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO price_history (app_id, observed_at, price, shop_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (app_id, observed_at, shop_id) DO NOTHING`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	for _, p := range points {
		if _, err := tx.ExecContext(ctx, query, appID, p.Date, p.Price, p.ShopID); err != nil {
			return fmt.Errorf("postgres: insert history point: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit history: %w", err)
	}
	return nil
}

// SaveResult stores one completed analysis summary.
func (r *AuditRepo) SaveResult(ctx context.Context, result *domain.AnalysisResult) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	advice, err := json.Marshal(result.PriceAdvice)
	if err != nil {
		return fmt.Errorf("postgres: marshal advice: %w", err)
	}

	query := `
		INSERT INTO analyses
			(request_id, app_id, name, analyzed_at, overall_score,
			 value_score, retention_score, market_score, review_score,
			 suggested_price, confidence, recommendations, advice)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = r.db.ExecContext(ctx, query,
		result.RequestID, result.AppID, result.Name, result.Timestamp,
		result.OverallScore,
		result.Price.ValueScore, result.Engagement.RetentionScore,
		result.Market.Score, result.Review.Score,
		result.PriceAdvice.SuggestedPrice, result.PriceAdvice.Confidence,
		pq.Array(result.Recommendations), advice)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("postgres: duplicate analysis %s: %w", result.RequestID, err)
		}
		return fmt.Errorf("postgres: insert analysis: %w", err)
	}
	return nil
}

// RecentResults returns the latest analysis rows for one title.
func (r *AuditRepo) RecentResults(ctx context.Context, appID, limit int) ([]AnalysisRow, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT request_id, app_id, name, analyzed_at, overall_score,
		       suggested_price, confidence
		FROM analyses
		WHERE app_id = $1
		ORDER BY analyzed_at DESC
		LIMIT $2`

	var rows []AnalysisRow
	if err := r.db.SelectContext(ctx, &rows, query, appID, limit); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: select analyses: %w", err)
	}
	return rows, nil
}

// AnalysisRow is a summary row read back from the audit trail.
type AnalysisRow struct {
	RequestID      string    `db:"request_id"`
	AppID          int       `db:"app_id"`
	Name           string    `db:"name"`
	AnalyzedAt     time.Time `db:"analyzed_at"`
	OverallScore   float64   `db:"overall_score"`
	SuggestedPrice int64     `db:"suggested_price"`
	Confidence     float64   `db:"confidence"`
}

// Close releases the pool.
func (r *AuditRepo) Close() error {
	return r.db.Close()
}
