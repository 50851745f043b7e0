// Package proxyclient talks to the WeatherVista gateway. It never sees the
// provider credential.
package proxyclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weathervista/internal/models"
)

const (
	DefaultURL = "http://localhost:8080/weather"

	// MsgStatusFallback is used when a non-success reply carries no readable error.
	MsgStatusFallback = "City not found or server error"
)

var (
	// ErrTransport marks failures to reach the gateway or read its reply.
	ErrTransport = errors.New("gateway transport error")
	// ErrMalformed marks a success reply whose body could not be decoded.
	ErrMalformed = errors.New("malformed gateway response")
)

// StatusError is a non-success gateway reply.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the gateway at baseURL. A nil httpClient gets a
// default client with timeout.
func New(baseURL string, httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

func (c *Client) Current(ctx context.Context, city string) (*models.CurrentConditions, error) {
	var out models.CurrentConditions
	if err := c.get(ctx, city, models.EndpointWeather, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Forecast(ctx context.Context, city string) (*models.ForecastCollection, error) {
	var out models.ForecastCollection
	if err := c.get(ctx, city, models.EndpointForecast, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// URL builds the gateway request URL. The city is always query-encoded.
func (c *Client) URL(city string, endpoint models.Endpoint) string {
	params := url.Values{}
	params.Set("city", city)
	params.Set("endpoint", string(endpoint))

	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	return c.baseURL + sep + params.Encode()
}

func (c *Client) get(ctx context.Context, city string, endpoint models.Endpoint, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(city, endpoint), http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s reply: %v", ErrTransport, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, endpoint, err)
	}
	return nil
}

func statusError(status int, body []byte) *StatusError {
	var eb models.ErrorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.Error == "" {
		return &StatusError{Status: status, Message: MsgStatusFallback}
	}
	return &StatusError{Status: status, Message: eb.Error}
}
