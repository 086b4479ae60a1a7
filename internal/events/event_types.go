package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDatasetLoaded   EventType = "dataset_loaded"
	EventDatasetDegraded EventType = "dataset_degraded"
)

// Event represents a lifecycle event emitted while building the dataset snapshot.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps an event with a fresh id.
func NewEvent(eventType EventType, version string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Version:   version,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// DatasetLoadedPayload payload.
type DatasetLoadedPayload struct {
	Source     string         `json:"source"`
	Counts     map[string]int `json:"counts"`
	DurationMs int64          `json:"duration_ms"`
}

// DatasetDegradedPayload payload.
type DatasetDegradedPayload struct {
	Dataset string `json:"dataset"`
	Reason  string `json:"reason"`
}
