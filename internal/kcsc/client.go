package kcsc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jaehyun-im/kcscbot/internal/model"
	"github.com/jaehyun-im/kcscbot/internal/util"
)

const (
	// excerptLimit bounds response-body excerpts embedded in diagnostics.
	excerptLimit = 500

	// redactionMarker replaces every literal occurrence of the API key in
	// diagnostic text.
	redactionMarker = "***REDACTED***"

	// maxBodyBytes caps how much of a response is read. The largest CodeList
	// partitions are a few MB.
	maxBodyBytes = 10 << 20
)

// Client talks to the KCSC OpenAPI. It owns only the wire protocol; caching
// is composed externally so fetches stay testable in isolation.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a client for the configured endpoint.
func NewClient(cfg model.KCSCConfig) *Client {
	return &Client{
		// Path casing matters on this host: /OpenApi, capital O and A.
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
		},
	}
}

// Redact replaces every literal occurrence of the API key in s. Every
// diagnostic string that might embed the key passes through here before it is
// surfaced anywhere.
func (c *Client) Redact(s string) string {
	if c.apiKey == "" {
		return s
	}
	return strings.ReplaceAll(s, c.apiKey, redactionMarker)
}

// getJSON performs a GET against baseURL/endpoint and returns the raw body
// and the key-redacted request URL. The credential goes out as a lowercase
// "key" query parameter, attached only when the caller supplied neither "key"
// nor "Key" (the API has been seen to behave inconsistently with key casing,
// so a caller-chosen spelling is never overridden). An HTML body is reported
// as UnexpectedContentTypeError rather than left for the JSON decoder.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values) ([]byte, string, error) {
	q := url.Values{}
	for k, vs := range params {
		q[k] = vs
	}
	if !q.Has("key") && !q.Has("Key") {
		q.Set("key", c.apiKey)
	}

	reqURL := c.baseURL + "/" + strings.TrimPrefix(endpoint, "/") + "?" + q.Encode()
	redacted := c.Redact(reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, redacted, &TransportError{URL: redacted, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/plain;q=0.9, */*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, redacted, &TransportError{URL: redacted, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, redacted, &TransportError{URL: redacted, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, redacted, &TransportError{URL: redacted, Err: fmt.Errorf("read body: %w", err)}
	}

	trimmed := strings.TrimSpace(string(body))
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html") {
		return nil, redacted, &UnexpectedContentTypeError{
			URL:     redacted,
			Excerpt: c.excerpt(trimmed),
		}
	}

	return body, redacted, nil
}

// excerpt returns a redacted, bounded slice of a response body.
func (c *Client) excerpt(body string) string {
	runes := []rune(body)
	if len(runes) > excerptLimit {
		runes = runes[:excerptLimit]
	}
	return c.Redact(string(runes))
}
