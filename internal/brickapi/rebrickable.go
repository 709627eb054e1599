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

const defaultRebrickableBaseURL = "https://rebrickable.com/api/v3"

// RebrickableClient queries the Rebrickable v3 API, which owns the part
// inventory: piece counts come from here.
type RebrickableClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	limiter    *rate.Limiter
}

func NewRebrickableClient(baseURL, apiKey string) *RebrickableClient {
	if baseURL == "" {
		baseURL = defaultRebrickableBaseURL
	}
	return &RebrickableClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(1), 2),
	}
}

// RebrickableSet is the subset of the sets payload we consume.
type RebrickableSet struct {
	SetNum   string `json:"set_num"`
	Name     string `json:"name"`
	Year     int    `json:"year"`
	NumParts int    `json:"num_parts"`
}

// GetSet looks up one set by its "75192-1" style number.
func (c *RebrickableClient) GetSet(ctx context.Context, setID string) (*RebrickableSet, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/lego/sets/%s/", c.BaseURL, url.PathEscape(setID))
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "key "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("rebrickable: set %s not found", setID)
	}
	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("rebrickable: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var out RebrickableSet
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
