// Package coingecko is a thin client for the CoinGecko coins API. The rest
// of the app treats it as a replaceable collaborator: it either returns
// coin data or fails with one of two error kinds, and nothing here retries
// or caches.
package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrCoinNotFound means the upstream does not know this coin id.
	ErrCoinNotFound = errors.New("coin not found")
	// ErrUnavailable means the upstream could not be reached or answered
	// with something other than coin data.
	ErrUnavailable = errors.New("price service unavailable")
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type Coin struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	MarketData struct {
		CurrentPrice map[string]float64 `json:"current_price"`
		MarketCap    map[string]float64 `json:"market_cap"`
		TotalVolume  map[string]float64 `json:"total_volume"`
	} `json:"market_data"`
}

// GetCoin fetches current market data for a coin id ("bitcoin", "ethereum").
func (c *Client) GetCoin(ctx context.Context, coinID string) (*Coin, error) {
	url := fmt.Sprintf("%s/coins/%s", c.BaseURL, coinID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if c.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrCoinNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: upstream status %d", ErrUnavailable, resp.StatusCode)
	}

	var coin Coin
	if err := json.NewDecoder(resp.Body).Decode(&coin); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return &coin, nil
}
