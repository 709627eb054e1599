package brickapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const defaultBrickOwlBaseURL = "https://api.brickowl.com/v1"

// BrickOwlClient queries the BrickOwl catalog API, which owns pricing:
// retail prices come from here.
type BrickOwlClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	limiter    *rate.Limiter
}

func NewBrickOwlClient(baseURL, apiKey string) *BrickOwlClient {
	if baseURL == "" {
		baseURL = defaultBrickOwlBaseURL
	}
	return &BrickOwlClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(1), 2),
	}
}

type brickOwlSet struct {
	// BrickOwl serializes prices as strings.
	RetailPrice json.Number `json:"retail_price"`
}

// GetRetailPrice returns the retail price for a set, or nil when BrickOwl
// does not list one.
func (c *BrickOwlClient) GetRetailPrice(ctx context.Context, setID string) (*float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("set_id", setID)
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/catalog/get_set?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("brickowl: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var out brickOwlSet
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.RetailPrice == "" {
		return nil, nil
	}
	price, err := out.RetailPrice.Float64()
	if err != nil {
		return nil, fmt.Errorf("brickowl: bad retail_price %q", out.RetailPrice)
	}
	return &price, nil
}
