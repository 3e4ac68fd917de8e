// Package postgrest is a minimal client for a Supabase PostgREST endpoint:
// filtered table selects and RPC calls.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/carefinder/internal/version"
)

const (
	restPath       = "/rest/v1/"
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 32 << 20
)

// Config holds connection parameters for the store.
type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
	// HTTPClient overrides the default pooled client. Optional.
	HTTPClient *http.Client
}

// Client talks to PostgREST over HTTP. Safe for concurrent use.
type Client struct {
	baseURL  string
	apiKey   string
	timeout  time.Duration
	http     *http.Client
	duration *prometheus.HistogramVec
}

// New creates a client. duration is a histogram vec with labels
// "operation" and "status", passed explicitly; nil disables it.
func New(cfg Config, duration *prometheus.HistogramVec) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	u, err := url.Parse(cfg.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid url %q", cfg.URL)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.URL, "/"),
		apiKey:   cfg.APIKey,
		timeout:  cfg.Timeout,
		http:     hc,
		duration: duration,
	}, nil
}

// Select runs GET /rest/v1/{table} with the given query parameters and
// returns the raw JSON array.
func (c *Client) Select(ctx context.Context, table string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + restPath + url.PathEscape(table)
	if q := params.Encode(); q != "" {
		endpoint += "?" + q
	}
	return c.do(ctx, "select", http.MethodGet, endpoint, nil)
}

// RPC runs POST /rest/v1/rpc/{fn} with a JSON body and returns the raw response.
func (c *Client) RPC(ctx context.Context, fn string, args any) ([]byte, error) {
	body, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("marshal rpc args: %w", err)
	}
	endpoint := c.baseURL + restPath + "rpc/" + url.PathEscape(fn)
	return c.do(ctx, "rpc", http.MethodPost, endpoint, body)
}

// Close releases idle keep-alive connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) do(ctx context.Context, op, method, endpoint string, body []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", withoutURL(err))
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "carefinder/"+version.Version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(op, "error", start)
		return nil, fmt.Errorf("%s %s: %w", method, op, withoutURL(err))
	}
	defer resp.Body.Close()
	c.observe(op, strconv.Itoa(resp.StatusCode), start)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseError(resp.StatusCode, data)
	}
	return data, nil
}

// withoutURL drops the request URL from net/http errors. Select URLs carry
// filter patterns built from the user's query, which must not reach logs.
func withoutURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func (c *Client) observe(op, status string, start time.Time) {
	if c.duration != nil {
		c.duration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
	}
}
