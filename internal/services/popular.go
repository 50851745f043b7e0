package services

import (
	"context"
	"time"

	"weathervista/internal/models"
)

const (
	popularWindow = 24 * time.Hour
	popularLimit  = 5
)

type LookupStore interface {
	TopCities(ctx context.Context, since time.Time, limit int) ([]models.PopularCity, error)
}

type PopularService struct {
	repo LookupStore
	now  func() time.Time
}

func NewPopularService(repo LookupStore) *PopularService {
	return &PopularService{repo: repo, now: time.Now}
}

// TopCities lists the five most looked-up cities of the last 24 hours.
func (s *PopularService) TopCities(ctx context.Context) ([]models.PopularCity, error) {
	return s.repo.TopCities(ctx, s.now().Add(-popularWindow), popularLimit)
}
