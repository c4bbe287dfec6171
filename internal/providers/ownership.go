package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Ownership fetches ownership estimates and engagement statistics.
// The upstream serves a few numeric fields as strings; they are parsed
// here at the wire boundary.
type Ownership struct {
	client *httpClient
}

// NewOwnership builds an ownership client from config.
func NewOwnership(cfg ClientConfig) *Ownership {
	if cfg.Name == "" {
		cfg.Name = "ownership"
	}
	return &Ownership{client: newHTTPClient(cfg)}
}

type ownershipWire struct {
	AppID          int             `json:"appid"`
	Name           string          `json:"name"`
	Owners         string          `json:"owners"`
	AverageForever int64           `json:"average_forever"`
	Average2Weeks  int64           `json:"average_2weeks"`
	MedianForever  int64           `json:"median_forever"`
	Median2Weeks   int64           `json:"median_2weeks"`
	CCU            int64           `json:"ccu"`
	Price          flexString      `json:"price"`
	Discount       flexString      `json:"discount"`
	ScoreRank      flexString      `json:"score_rank"`
	Genre          string          `json:"genre"`
	RawTags        json.RawMessage `json:"tags"`
}

// AppStats fetches ownership and engagement stats for one title.
func (c *Ownership) AppStats(ctx context.Context, appID int) (*OwnershipStats, error) {
	query := url.Values{
		"request": {"appdetails"},
		"appid":   {strconv.Itoa(appID)},
	}

	var wire ownershipWire
	if err := c.client.getJSON(ctx, "/api.php", query, &wire); err != nil {
		return nil, err
	}
	if wire.Name == "" && wire.Owners == "" {
		return nil, fmt.Errorf("ownership: no data for app %d", appID)
	}

	stats := &OwnershipStats{
		Owners:            wire.Owners,
		AverageForever:    wire.AverageForever,
		Average2Weeks:     wire.Average2Weeks,
		MedianForever:     wire.MedianForever,
		Median2Weeks:      wire.Median2Weeks,
		ConcurrentPlayers: wire.CCU,
		Price:             flexInt(wire.Price),
		Discount:          int(flexInt(wire.Discount)),
		ScoreRank:         string(wire.ScoreRank),
		Genre:             wire.Genre,
	}

	// Tags arrive either as an object of vote counts or, for untagged
	// titles, an empty array. Only the object form carries data.
	if len(wire.RawTags) > 0 {
		tags := map[string]int64{}
		if err := json.Unmarshal(wire.RawTags, &tags); err == nil {
			stats.Tags = tags
		}
	}

	return stats, nil
}

// flexString tolerates upstream fields that flip between JSON strings
// and bare numbers across titles.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	*f = ""
	return nil
}

func flexInt(f flexString) int64 {
	v, err := strconv.ParseInt(string(f), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
