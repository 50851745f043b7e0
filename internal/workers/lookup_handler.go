package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"weathervista/internal/models"
)

type LookupWorkerHandler struct{}

func (LookupWorkerHandler) Type() string {
	return "lookup"
}

func (LookupWorkerHandler) Handle(_ context.Context, value []byte) (*models.LookupEvent, error) {
	var event models.LookupEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return nil, fmt.Errorf("invalid lookup JSON: %w", err)
	}
	if event.ID == "" {
		return nil, fmt.Errorf("lookup event without id")
	}
	event.City = strings.TrimSpace(event.City)
	if event.City == "" {
		return nil, fmt.Errorf("city is empty in lookup event %s", event.ID)
	}
	if event.At.IsZero() {
		return nil, fmt.Errorf("lookup event %s has no timestamp", event.ID)
	}
	return &event, nil
}
