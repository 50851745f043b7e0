package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"weathervista/internal/metrics"
	"weathervista/internal/models"
	"weathervista/internal/services"
)

// WeatherLookup is satisfied by *services.WeatherService.
type WeatherLookup interface {
	Lookup(ctx context.Context, q models.Query) services.Result
}

type WeatherHandler struct {
	weatherService WeatherLookup
	metrics        *metrics.GatewayMetrics
	logger         *slog.Logger
}

func NewWeatherHandler(weatherService WeatherLookup, m *metrics.GatewayMetrics, logger *slog.Logger) *WeatherHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WeatherHandler{weatherService: weatherService, metrics: m, logger: logger}
}

// GetWeather serves GET /weather?city=<city>&endpoint=weather|forecast.
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q, err := services.ParseQuery(params.Get("city"), params.Get("endpoint"))
	if err != nil {
		h.logger.Debug("rejected weather query", "error", err)
		h.metrics.RecordRequest("", http.StatusBadRequest)
		writeResult(w, services.ErrorResult(http.StatusBadRequest, err.Error()))
		return
	}

	res := h.weatherService.Lookup(r.Context(), q)
	h.metrics.RecordRequest(string(q.Endpoint), res.Status)
	writeResult(w, res)
}

func writeResult(w http.ResponseWriter, res services.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(res.Status)
	_, _ = w.Write(res.Body)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
