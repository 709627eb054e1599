// Package brickapi talks to the three LEGO catalog providers (Brickset,
// Rebrickable, BrickOwl) and merges their answers into catalog records.
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

const defaultBricksetBaseURL = "https://brickset.com/api/v3.asmx"

// BricksetClient queries the Brickset v3 API. Brickset is the identity
// source: set name, theme, year, and description come from here.
type BricksetClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	limiter    *rate.Limiter
}

func NewBricksetClient(baseURL, apiKey string) *BricksetClient {
	if baseURL == "" {
		baseURL = defaultBricksetBaseURL
	}
	return &BricksetClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		// Brickset caps API keys at ~1 request/second.
		limiter: rate.NewLimiter(rate.Limit(1), 2),
	}
}

// BricksetSet is the subset of Brickset's getSets payload we consume.
type BricksetSet struct {
	SetID        int    `json:"setID"`
	Number       string `json:"number"`
	NumberVariant int   `json:"numberVariant"`
	Name         string `json:"name"`
	Year         int    `json:"year"`
	Theme        string `json:"theme"`
	Pieces       int    `json:"pieces"`
	ExtendedData struct {
		Description string `json:"description"`
	} `json:"extendedData"`
}

// SetNumber returns the canonical "number-variant" id ("75192-1").
func (s *BricksetSet) SetNumber() string {
	variant := s.NumberVariant
	if variant == 0 {
		variant = 1
	}
	return fmt.Sprintf("%s-%d", s.Number, variant)
}

type bricksetResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Matches int           `json:"matches"`
	Sets    []BricksetSet `json:"sets"`
}

// GetSet looks up a single set by its number ("75192-1" or "75192").
func (c *BricksetClient) GetSet(ctx context.Context, setID string) (*BricksetSet, error) {
	sets, err := c.getSets(ctx, map[string]interface{}{"setNumber": setID})
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("brickset: set %s not found", setID)
	}
	return &sets[0], nil
}

// Search runs a free-text query and returns up to limit matches.
func (c *BricksetClient) Search(ctx context.Context, query string, limit int) ([]BricksetSet, error) {
	if limit <= 0 {
		limit = 20
	}
	return c.getSets(ctx, map[string]interface{}{"query": query, "pageSize": limit})
}

func (c *BricksetClient) getSets(ctx context.Context, params map[string]interface{}) ([]BricksetSet, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("apiKey", c.APIKey)
	q.Set("userHash", "")
	q.Set("params", string(paramsJSON))

	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/getSets?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("brickset: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var out bricksetResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Status != "success" {
		return nil, fmt.Errorf("brickset: %s", out.Message)
	}
	return out.Sets, nil
}
