package models

import (
	"time"
)

// LookupEvent records one handled gateway request. It is published to Kafka
// and persisted by the lookup worker.
type LookupEvent struct {
	ID         string    `json:"id"`
	City       string    `json:"city"`
	Endpoint   string    `json:"endpoint"`
	Status     int       `json:"status"`
	DurationMS int64     `json:"duration_ms"`
	At         time.Time `json:"at"`
}

// Succeeded reports whether the lookup was relayed with 200.
func (e LookupEvent) Succeeded() bool {
	return e.Status == 200
}

type PopularCity struct {
	City    string `json:"city"`
	Lookups int    `json:"lookups"`
}
