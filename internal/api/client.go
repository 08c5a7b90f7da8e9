// Package api is the typed HTTP client for the aggregation backend.
// Every call is attempted exactly once; failures come back as a
// *CallError so each widget can apply its own documented fallback.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Options tunes the client. Zero values fall back to defaults.
type Options struct {
	// HealthTimeout bounds the advisory health probe.
	HealthTimeout time.Duration
	// DownloadTimeout bounds report downloads.
	DownloadTimeout time.Duration
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the backend. All other calls rely on the transport's
// default timeout; only Health and Download carry an explicit bound.
type Client struct {
	base            string
	http            *http.Client
	healthTimeout   time.Duration
	downloadTimeout time.Duration
	newID           func() string
}

func New(baseURL string, opts Options) *Client {
	c := &Client{
		base:            strings.TrimRight(baseURL, "/"),
		http:            opts.HTTPClient,
		healthTimeout:   opts.HealthTimeout,
		downloadTimeout: opts.DownloadTimeout,
		newID:           uuid.NewString,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.healthTimeout <= 0 {
		c.healthTimeout = 10 * time.Second
	}
	if c.downloadTimeout <= 0 {
		c.downloadTimeout = 30 * time.Second
	}
	return c
}

// BaseURL reports the configured backend address.
func (c *Client) BaseURL() string { return c.base }

// Health probes GET /health with a bounded timeout. The result is
// advisory: callers display it but never gate rendering on it.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()
	_, err := c.get(ctx, "health", "/health", nil)
	return errOrNil(err)
}

// Query fetches raw rows, optionally filtered to the given countries.
func (c *Client) Query(ctx context.Context, dataset string, countries []string) ([]Row, error) {
	q := url.Values{}
	for _, country := range countries {
		q.Add("countries", country)
	}
	body, cerr := c.get(ctx, "query "+dataset, "/query/"+url.PathEscape(dataset), q)
	if cerr != nil {
		return nil, cerr
	}
	rows, err := decodeList[Row](body)
	if err != nil {
		return nil, &CallError{Op: "query " + dataset, Status: http.StatusOK, Body: clip(body), Err: err}
	}
	return rows, nil
}

// Aggregation fetches precomputed group-by totals. A single-object
// response is normalized into a one-element list.
func (c *Client) Aggregation(ctx context.Context, dataset, metric, groupBy string) ([]AggRow, error) {
	q := url.Values{}
	q.Set("metric", metric)
	q.Set("group_by", groupBy)
	body, cerr := c.get(ctx, "aggregation "+dataset, "/aggregation/"+url.PathEscape(dataset), q)
	if cerr != nil {
		return nil, cerr
	}
	rows, err := decodeList[AggRow](body)
	if err != nil {
		return nil, &CallError{Op: "aggregation " + dataset, Status: http.StatusOK, Body: clip(body), Err: err}
	}
	return rows, nil
}

// Summary fetches the headline stats for one dataset.
func (c *Client) Summary(ctx context.Context, dataset string) (Summary, error) {
	body, cerr := c.get(ctx, "summary "+dataset, "/summary/"+url.PathEscape(dataset), nil)
	if cerr != nil {
		return Summary{}, cerr
	}
	var s Summary
	if err := json.Unmarshal(body, &s); err != nil {
		return Summary{}, &CallError{Op: "summary " + dataset, Status: http.StatusOK, Body: clip(body), Err: err}
	}
	return s, nil
}

// AIQuery posts a free-text question. On a non-200 response the error
// body is surfaced verbatim so the UI can show it.
func (c *Client) AIQuery(ctx context.Context, question string) (AIAnswer, error) {
	payload, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return AIAnswer{}, &CallError{Op: "ai_query", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/ai_query", bytes.NewReader(payload))
	if err != nil {
		return AIAnswer{}, &CallError{Op: "ai_query", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", c.newID())

	resp, err := c.http.Do(req)
	if err != nil {
		return AIAnswer{}, &CallError{Op: "ai_query", Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return AIAnswer{}, &CallError{Op: "ai_query", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return AIAnswer{}, &CallError{Op: "ai_query", Status: resp.StatusCode, Body: clip(body)}
	}
	var answer AIAnswer
	if err := json.Unmarshal(body, &answer); err != nil {
		return AIAnswer{}, &CallError{Op: "ai_query", Status: http.StatusOK, Body: clip(body), Err: err}
	}
	return answer, nil
}

// Download fetches the raw CSV bytes for one dataset report.
func (c *Client) Download(ctx context.Context, dataset string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.downloadTimeout)
	defer cancel()
	body, cerr := c.get(ctx, "download "+dataset, "/download/"+url.PathEscape(dataset), nil)
	if cerr != nil {
		return nil, cerr
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values) ([]byte, *CallError) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &CallError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", c.newID())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &CallError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &CallError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &CallError{Op: op, Status: resp.StatusCode, Body: clip(body)}
	}
	return body, nil
}

// errOrNil avoids the classic typed-nil-in-interface trap.
func errOrNil(err *CallError) error {
	if err == nil {
		return nil
	}
	return err
}

func clip(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
