package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/anushv/investments/internal/models"
)

// Market Data is a stock and option quote API with per-contract option chain
// lookups, including greeks.
// https://www.marketdata.app/docs/api
const defaultBaseURL = "https://api.marketdata.app/v1"

// Client is an HTTP client for the Market Data API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Market Data client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL creates a new Market Data client with a custom base URL (for testing)
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetOptionQuote fetches the live chain entry for a single option contract:
// underlying price, mid, and theta.
func (c *Client) GetOptionQuote(ctx context.Context, ticker string, expiration time.Time, direction models.OptionDirection, strike float64) (*models.OptionQuote, error) {
	side := "call"
	if direction == models.DirectionPut {
		side = "put"
	}

	params := url.Values{}
	params.Set("expiration", expiration.Format("2006-01-02"))
	params.Set("side", side)
	params.Set("strike", strconv.Itoa(int(strike)))

	body, err := c.doRequest(ctx, fmt.Sprintf("/options/chain/%s/", ticker), params, ticker)
	if err != nil {
		return nil, err
	}

	var chain optionChainResponse
	if err := json.Unmarshal(body, &chain); err != nil {
		return nil, fmt.Errorf("failed to unmarshal option chain: %w", err)
	}
	if len(chain.UnderlyingPrice) == 0 || len(chain.Mid) == 0 || len(chain.Theta) == 0 {
		return nil, fmt.Errorf("empty option chain for %s %s %s%.0f", ticker, expiration.Format("2006-01-02"), side, strike)
	}

	return &models.OptionQuote{
		UnderlyingPrice: chain.UnderlyingPrice[0],
		Mid:             chain.Mid[0],
		Theta:           chain.Theta[0],
	}, nil
}

// GetStockQuote fetches the live mid price for a share.
func (c *Client) GetStockQuote(ctx context.Context, ticker string) (float64, error) {
	body, err := c.doRequest(ctx, fmt.Sprintf("/stocks/quotes/%s/", ticker), nil, ticker)
	if err != nil {
		return 0, err
	}

	var quote stockQuoteResponse
	if err := json.Unmarshal(body, &quote); err != nil {
		return 0, fmt.Errorf("failed to unmarshal stock quote: %w", err)
	}
	if len(quote.Mid) == 0 {
		return 0, fmt.Errorf("empty stock quote for %s", ticker)
	}

	return quote.Mid[0], nil
}

func (c *Client) doRequest(ctx context.Context, path string, params url.Values, ticker string) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// 203 is a cached-feed response and carries valid data.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNonAuthoritativeInfo {
		return nil, &DataFetchError{
			Ticker:       ticker,
			StatusCode:   resp.StatusCode,
			ResponseText: string(body),
		}
	}

	return body, nil
}
