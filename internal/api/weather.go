package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weathervista/internal/models"
)

// ErrTransport marks failures to reach or read the upstream provider.
var ErrTransport = errors.New("upstream transport error")

const (
	units     = "metric"
	userAgent = "weathervista-gateway"
	// upstream payloads are a few KB; anything past this is not a weather reply
	maxBodyBytes = 4 << 20
)

// Response is the raw upstream reply. Body is relayed verbatim on success.
type Response struct {
	StatusCode int
	Body       []byte
}

type Client struct {
	baseURL    string
	apiKey     string
	escapeCity bool
	http       *http.Client
}

func NewClient(baseURL, apiKey string, escapeCity bool, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		escapeCity: escapeCity,
		http:       &http.Client{Timeout: timeout},
	}
}

// Fetch issues exactly one GET for q. It does not retry.
func (c *Client) Fetch(ctx context.Context, q models.Query) (*Response, error) {
	apiURL := c.URL(q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request %s: %v", ErrTransport, c.Redact(apiURL), err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, c.redactErr(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransport, c.redactErr(err))
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// URL builds the upstream URL for q, credential included.
func (c *Client) URL(q models.Query) string {
	city := q.City
	if c.escapeCity {
		city = url.QueryEscape(city)
	}
	return fmt.Sprintf("%s%s?q=%s&appid=%s&units=%s", c.baseURL, q.Endpoint.Path(), city, c.apiKey, units)
}

// Redact masks the credential in s so it can be logged.
func (c *Client) Redact(s string) string {
	if c.apiKey == "" {
		return s
	}
	s = strings.ReplaceAll(s, c.apiKey, "***MASKED***")
	return strings.ReplaceAll(s, url.QueryEscape(c.apiKey), "***MASKED***")
}

// net/http errors embed the full request URL.
func (c *Client) redactErr(err error) string {
	return c.Redact(err.Error())
}
