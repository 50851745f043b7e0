package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"weathervista/internal/models"
)

type PopularLister interface {
	TopCities(ctx context.Context) ([]models.PopularCity, error)
}

type PopularHandler struct {
	service PopularLister
	logger  *slog.Logger
}

func NewPopularHandler(service PopularLister, logger *slog.Logger) *PopularHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PopularHandler{service: service, logger: logger}
}

// GetPopular serves GET /popular.
func (h *PopularHandler) GetPopular(w http.ResponseWriter, r *http.Request) {
	top, err := h.service.TopCities(r.Context())
	if err != nil {
		h.logger.Error("Failed to load popular cities", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorBody{Error: "internal error"})
		return
	}

	resp := struct {
		Cities []models.PopularCity `json:"cities"`
		Total  int                  `json:"total"`
	}{
		Cities: top,
		Total:  len(top),
	}
	writeJSON(w, http.StatusOK, resp)
}
