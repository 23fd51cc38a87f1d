// Package newsapi fetches articles from the NewsAPI "everything" endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bodgit/teletext"
)

// DefaultURL is the NewsAPI "everything" endpoint.
const DefaultURL = "https://newsapi.org/v2/everything"

var errNoKey = errors.New("newsapi: an API key is required")

// Client queries NewsAPI.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client using apiKey.
func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    DefaultURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type response struct {
	Status   string             `json:"status"`
	Code     string             `json:"code"`
	Message  string             `json:"message"`
	Articles []teletext.Article `json:"articles"`
}

// Everything returns up to pageSize articles matching query.
func (c *Client) Everything(ctx context.Context, query string, pageSize int) ([]teletext.Article, error) {
	if c.apiKey == "" {
		return nil, errNoKey
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("newsapi: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi: fetch: %w", err)
	}
	defer resp.Body.Close()

	var raw response
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi: decode (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || raw.Status != "ok" {
		return nil, fmt.Errorf("newsapi: %s: %s (status %d)", raw.Code, raw.Message, resp.StatusCode)
	}

	return raw.Articles, nil
}
