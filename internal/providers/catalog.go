package providers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Catalog fetches storefront metadata for a title: identity, genres
// and the current price block.
type Catalog struct {
	client *httpClient
}

// NewCatalog builds a catalog client from config.
func NewCatalog(cfg ClientConfig) *Catalog {
	if cfg.Name == "" {
		cfg.Name = "catalog"
	}
	return &Catalog{client: newHTTPClient(cfg)}
}

// Wire shapes for the storefront appdetails endpoint. The response is
// keyed by app id with a per-app success flag.
type catalogEnvelope struct {
	Success bool        `json:"success"`
	Data    catalogData `json:"data"`
}

type catalogData struct {
	Name          string   `json:"name"`
	IsFree        bool     `json:"is_free"`
	Developers    []string `json:"developers"`
	Publishers    []string `json:"publishers"`
	SupportedLang string   `json:"supported_languages"`
	Genres        []struct {
		Description string `json:"description"`
	} `json:"genres"`
	PriceOverview *struct {
		Final           int64 `json:"final"`
		Initial         int64 `json:"initial"`
		DiscountPercent int   `json:"discount_percent"`
	} `json:"price_overview"`
	ReleaseDate struct {
		Date string `json:"date"`
	} `json:"release_date"`
}

// AppDetails fetches and flattens catalog metadata for one title.
func (c *Catalog) AppDetails(ctx context.Context, appID int) (*CatalogDetails, error) {
	query := url.Values{"appids": {strconv.Itoa(appID)}}

	envelope := map[string]catalogEnvelope{}
	if err := c.client.getJSON(ctx, "/api/appdetails", query, &envelope); err != nil {
		return nil, err
	}

	entry, ok := envelope[strconv.Itoa(appID)]
	if !ok || !entry.Success {
		return nil, fmt.Errorf("catalog: no data for app %d", appID)
	}

	data := entry.Data
	details := &CatalogDetails{
		Name:        data.Name,
		IsFree:      data.IsFree,
		ReleaseDate: data.ReleaseDate.Date,
	}
	if len(data.Developers) > 0 {
		details.Developer = data.Developers[0]
	}
	if len(data.Publishers) > 0 {
		details.Publisher = data.Publishers[0]
	}
	for _, g := range data.Genres {
		details.Genres = append(details.Genres, g.Description)
	}
	if data.SupportedLang != "" {
		details.Languages = splitLanguages(data.SupportedLang)
	}
	if data.PriceOverview != nil {
		details.Price.Current = data.PriceOverview.Final
		details.Price.Initial = data.PriceOverview.Initial
		details.Price.DiscountPercent = data.PriceOverview.DiscountPercent
	}

	return details, nil
}
