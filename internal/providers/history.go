package providers

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/gamepulse/gamepulse/internal/domain"
)

// History fetches the historical price series for a title from the
// price-tracking provider.
type History struct {
	client *httpClient
}

// NewHistory builds a price-history client from config.
func NewHistory(cfg ClientConfig) *History {
	if cfg.Name == "" {
		cfg.Name = "price_history"
	}
	return &History{client: newHTTPClient(cfg)}
}

type historyWire struct {
	History []struct {
		Date  string `json:"date"`
		Price int64  `json:"price"`
		Shop  string `json:"shop"`
	} `json:"history"`
}

// PriceHistory fetches the chronological price series for one title.
// Points with unparseable dates are dropped; the result is sorted
// oldest first.
func (c *History) PriceHistory(ctx context.Context, appID int) ([]domain.PricePoint, error) {
	query := url.Values{"appid": {strconv.Itoa(appID)}}

	var wire historyWire
	if err := c.client.getJSON(ctx, "/v1/history", query, &wire); err != nil {
		return nil, err
	}

	points := make([]domain.PricePoint, 0, len(wire.History))
	for _, h := range wire.History {
		ts, err := time.Parse("2006-01-02", h.Date)
		if err != nil {
			continue
		}
		points = append(points, domain.PricePoint{
			Date:   ts,
			Price:  h.Price,
			ShopID: h.Shop,
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}
