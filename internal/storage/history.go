package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// History persists the recent-cities list and the last searched city.
type History struct {
	kv KV
}

func NewHistory(kv KV) *History {
	return &History{kv: kv}
}

// Load returns the saved history. Missing keys yield empty values; a corrupt
// recent-cities document is treated as empty.
func (h *History) Load(ctx context.Context) (recent []string, last string, err error) {
	raw, err := h.kv.Get(ctx, KeyRecentCities)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, "", fmt.Errorf("load %s: %w", KeyRecentCities, err)
	default:
		if jerr := json.Unmarshal([]byte(raw), &recent); jerr != nil {
			recent = nil
		}
	}

	last, err = h.kv.Get(ctx, KeyLastCity)
	if errors.Is(err, ErrNotFound) {
		return recent, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("load %s: %w", KeyLastCity, err)
	}
	return recent, last, nil
}

// Save writes both keys after a successful search.
func (h *History) Save(ctx context.Context, recent []string, last string) error {
	if recent == nil {
		recent = []string{}
	}
	raw, err := json.Marshal(recent)
	if err != nil {
		return err
	}
	if err := h.kv.Set(ctx, KeyRecentCities, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w", KeyRecentCities, err)
	}
	if err := h.kv.Set(ctx, KeyLastCity, last); err != nil {
		return fmt.Errorf("save %s: %w", KeyLastCity, err)
	}
	return nil
}
