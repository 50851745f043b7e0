package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"weathervista/internal/api"
	"weathervista/internal/kafka"
	"weathervista/internal/metrics"
	"weathervista/internal/models"

	"github.com/google/uuid"
)

const (
	MsgMissingParams   = "Missing city or endpoint parameter"
	MsgInvalidEndpoint = "Invalid endpoint specified"
	MsgCityNotFound    = "City not found"
	MsgUpstreamFailure = "Failed to fetch weather data from external API"
)

var (
	ErrMissingParams   = errors.New(MsgMissingParams)
	ErrInvalidEndpoint = errors.New(MsgInvalidEndpoint)
)

// Upstream is satisfied by *api.Client.
type Upstream interface {
	Fetch(ctx context.Context, q models.Query) (*api.Response, error)
}

// Result is what the gateway relays: Body is either the upstream payload
// verbatim (Status 200) or an encoded models.ErrorBody.
type Result struct {
	Status int
	Body   []byte
}

func (r Result) OK() bool {
	return r.Status == http.StatusOK
}

type WeatherService struct {
	upstream Upstream
	producer kafka.ProducerInterface
	metrics  *metrics.GatewayMetrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewWeatherService wires the proxy. producer and m may be nil.
func NewWeatherService(upstream Upstream, producer kafka.ProducerInterface, m *metrics.GatewayMetrics, logger *slog.Logger) *WeatherService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WeatherService{
		upstream: upstream,
		producer: producer,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// ParseQuery validates raw query parameters. Blank values count as missing.
func ParseQuery(city, endpoint string) (models.Query, error) {
	city = strings.TrimSpace(city)
	endpoint = strings.TrimSpace(endpoint)
	if city == "" || endpoint == "" {
		return models.Query{}, ErrMissingParams
	}
	ep, ok := models.ParseEndpoint(endpoint)
	if !ok {
		return models.Query{}, ErrInvalidEndpoint
	}
	return models.Query{City: city, Endpoint: ep}, nil
}

// Lookup performs one upstream call and translates its outcome.
func (s *WeatherService) Lookup(ctx context.Context, q models.Query) Result {
	start := s.now()
	res := s.lookup(ctx, q)
	elapsed := s.now().Sub(start)

	s.metrics.RecordUpstreamDuration(string(q.Endpoint), elapsed.Seconds())
	s.publish(q, res.Status, elapsed)
	return res
}

func (s *WeatherService) lookup(ctx context.Context, q models.Query) Result {
	resp, err := s.upstream.Fetch(ctx, q)
	if err != nil {
		s.logger.Error("API fetch error", "city", q.City, "endpoint", q.Endpoint, "error", err)
		return ErrorResult(http.StatusInternalServerError, MsgUpstreamFailure)
	}

	var status models.UpstreamStatus
	if err := json.Unmarshal(resp.Body, &status); err != nil {
		s.logger.Error("API fetch error: malformed upstream response",
			"city", q.City, "endpoint", q.Endpoint, "http_status", resp.StatusCode, "error", err)
		return ErrorResult(http.StatusInternalServerError, MsgUpstreamFailure)
	}

	if code := upstreamFailureStatus(int(status.Cod), resp.StatusCode); code != 0 {
		msg := status.MessageText()
		if msg == "" {
			msg = MsgCityNotFound
		}
		s.logger.Info("upstream rejected query", "city", q.City, "endpoint", q.Endpoint, "status", code, "message", msg)
		return ErrorResult(code, msg)
	}

	return Result{Status: http.StatusOK, Body: resp.Body}
}

// upstreamFailureStatus returns the status to relay, or 0 for success.
// The payload's cod wins; a cod outside the HTTP range falls back to the
// transport status, and then to 502.
func upstreamFailureStatus(cod, httpStatus int) int {
	switch {
	case cod == http.StatusOK:
		return 0
	case cod != 0:
		if cod >= 100 && cod <= 599 {
			return cod
		}
		if httpStatus >= 400 {
			return httpStatus
		}
		return http.StatusBadGateway
	case httpStatus >= 400:
		return httpStatus
	}
	return 0
}

func (s *WeatherService) publish(q models.Query, status int, elapsed time.Duration) {
	if s.producer == nil {
		return
	}
	event := models.LookupEvent{
		ID:         uuid.NewString(),
		City:       q.City,
		Endpoint:   string(q.Endpoint),
		Status:     status,
		DurationMS: elapsed.Milliseconds(),
		At:         s.now().UTC(),
	}
	s.producer.PublishObjectAsync([]byte(LookupKey(q.City)), event)
}

// LookupKey partitions lookup events by normalized city.
func LookupKey(city string) string {
	return "lookup:" + strings.ToLower(strings.TrimSpace(city))
}

// ErrorResult encodes msg as the gateway's error body.
func ErrorResult(status int, msg string) Result {
	body, _ := json.Marshal(models.ErrorBody{Error: msg})
	return Result{Status: status, Body: body}
}
