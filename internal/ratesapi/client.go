// Package ratesapi fetches yearly tax table sets from a user-configured HTTP
// endpoint. Fetched sets are validated before being returned; the calculator
// is never handed an unvalidated table.
package ratesapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"payfold/internal/model"
	"payfold/internal/tables"
)

const (
	requestTimeout = 15 * time.Second
	maxBodySize    = 4 << 20 // 4 MB
)

// ErrNotFound indicates the endpoint has no tables for the requested year.
var ErrNotFound = errors.New("ratesapi: no tables published for year")

// Client fetches tax table sets from a rates endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL. Returns nil for an empty URL.
func New(baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// FetchYear downloads and validates the table set for one tax year.
func (c *Client) FetchYear(ctx context.Context, year int) (model.TaxTableSet, error) {
	body, err := c.get(ctx, fmt.Sprintf("/tax-tables/%d.json", year))
	if err != nil {
		return model.TaxTableSet{}, err
	}

	var set model.TaxTableSet
	if err := json.Unmarshal(body, &set); err != nil {
		return model.TaxTableSet{}, fmt.Errorf("ratesapi: parsing tables for %d: %w", year, err)
	}
	if set.Year == 0 {
		set.Year = year
	}
	tables.Normalize(&set)
	if err := tables.Check(set); err != nil {
		return model.TaxTableSet{}, fmt.Errorf("ratesapi: fetched tables for %d: %w", year, err)
	}
	return set, nil
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("ratesapi: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ratesapi: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ratesapi: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("ratesapi: reading response: %w", err)
	}
	return body, nil
}
