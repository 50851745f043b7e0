package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weathervista/internal/api"
	"weathervista/internal/metrics"
	"weathervista/internal/models"
	"weathervista/internal/services"
)

const testKey = "s3cr3t-key"

type upstreamStub struct {
	calls  atomic.Int32
	status int
	body   string

	mu    sync.Mutex
	path  string
	query string
}

func (s *upstreamStub) lastRequest() (path, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path, s.query
}

func newGateway(t *testing.T, stub *upstreamStub) (*WeatherHandler, *prometheus.Registry) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.calls.Add(1)
		stub.mu.Lock()
		stub.path = r.URL.Path
		stub.query = r.URL.RawQuery
		stub.mu.Unlock()
		w.WriteHeader(stub.status)
		_, _ = w.Write([]byte(stub.body))
	}))
	t.Cleanup(srv.Close)

	registry := prometheus.NewRegistry()
	m, err := metrics.NewGatewayMetrics(registry)
	require.NoError(t, err)

	upstream := api.NewClient(srv.URL, testKey, true, time.Second)
	svc := services.NewWeatherService(upstream, nil, m, nil)
	return NewWeatherHandler(svc, m, nil), registry
}

func doGet(h *WeatherHandler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.GetWeather(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestGetWeather_Validation(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"no_params", "/weather", services.MsgMissingParams},
		{"missing_endpoint", "/weather?city=Oslo", services.MsgMissingParams},
		{"missing_city", "/weather?endpoint=weather", services.MsgMissingParams},
		{"blank_city", "/weather?city=%20%20&endpoint=weather", services.MsgMissingParams},
		{"invalid_endpoint", "/weather?city=Oslo&endpoint=onecall", services.MsgInvalidEndpoint},
		{"endpoint_case_sensitive", "/weather?city=Oslo&endpoint=Weather", services.MsgInvalidEndpoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &upstreamStub{status: http.StatusOK, body: `{"cod":200}`}
			h, _ := newGateway(t, stub)

			rec := doGet(h, tt.target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, decodeError(t, rec))
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Zero(t, stub.calls.Load(), "invalid requests must not reach upstream")
		})
	}
}

func TestGetWeather_SuccessRelaysBodyVerbatim(t *testing.T) {
	payload := `{"cod":200,"name":"Oslo","main":{"temp":4.2},"weather":[{"main":"Clouds"}]}`
	stub := &upstreamStub{status: http.StatusOK, body: payload}
	h, registry := newGateway(t, stub)

	rec := doGet(h, "/weather?city=Oslo&endpoint=weather")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.EqualValues(t, 1, stub.calls.Load())
	path, query := stub.lastRequest()
	assert.Equal(t, "/weather", path)
	assert.Contains(t, query, "q=Oslo")
	assert.Contains(t, query, "appid="+testKey)
	assert.Contains(t, query, "units=metric")
	assert.NotContains(t, rec.Body.String(), testKey)
	count, err := testutil.GatherAndCount(registry, "weathervista_gateway_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGetWeather_ForecastWithStringCod(t *testing.T) {
	payload := `{"cod":"200","message":0,"cnt":1,"list":[{"dt":1700000000}]}`
	stub := &upstreamStub{status: http.StatusOK, body: payload}
	h, _ := newGateway(t, stub)

	rec := doGet(h, "/weather?city=New%20York&endpoint=forecast")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload, rec.Body.String())
	path, query := stub.lastRequest()
	assert.Equal(t, "/forecast", path)
	assert.Contains(t, query, "q=New+York")
}

func TestGetWeather_UpstreamRejections(t *testing.T) {
	tests := []struct {
		name       string
		httpStatus int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"numeric_404", http.StatusNotFound, `{"cod":404,"message":"city not found"}`, http.StatusNotFound, "city not found"},
		{"string_404", http.StatusNotFound, `{"cod":"404","message":"city not found"}`, http.StatusNotFound, "city not found"},
		{"no_message", http.StatusNotFound, `{"cod":"404"}`, http.StatusNotFound, services.MsgCityNotFound},
		{"bad_key", http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key."}`, http.StatusUnauthorized, "Invalid API key."},
		{"no_cod_http_error", http.StatusServiceUnavailable, `{}`, http.StatusServiceUnavailable, services.MsgCityNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &upstreamStub{status: tt.httpStatus, body: tt.body}
			h, _ := newGateway(t, stub)

			rec := doGet(h, "/weather?city=Atlantis&endpoint=weather")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, rec))
			assert.EqualValues(t, 1, stub.calls.Load())
			assert.NotContains(t, rec.Body.String(), testKey)
		})
	}
}

func TestGetWeather_MalformedUpstreamBody(t *testing.T) {
	stub := &upstreamStub{status: http.StatusBadGateway, body: "<html>bad gateway</html>"}
	h, _ := newGateway(t, stub)

	rec := doGet(h, "/weather?city=Oslo&endpoint=weather")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, services.MsgUpstreamFailure, decodeError(t, rec))
}

func TestGetWeather_TransportFailure(t *testing.T) {
	m, err := metrics.NewGatewayMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	// nothing listens on port 1
	upstream := api.NewClient("http://127.0.0.1:1", testKey, true, 500*time.Millisecond)
	h := NewWeatherHandler(services.NewWeatherService(upstream, nil, m, nil), m, nil)

	rec := doGet(h, "/weather?city=Oslo&endpoint=weather")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, services.MsgUpstreamFailure, decodeError(t, rec))
	assert.NotContains(t, rec.Body.String(), testKey)
}
