package gateway

import (
	"encoding/json"
	"time"

	"github.com/pickpool/pickpool/go/internal/outbox"
)

// PoolEvent is the wire format pushed to WebSocket clients.
type PoolEvent struct {
	ID        string          `json:"id"`        // Event UUID
	Type      EventType       `json:"type"`      // Event type
	Timestamp time.Time       `json:"timestamp"` // Event creation time
	Data      json.RawMessage `json:"data"`      // Event-specific payload
}

// EventType represents the type of pool event
type EventType string

const (
	EventTypeGameFinalized    EventType = "GameFinalized"
	EventTypeStandingsUpdated EventType = "StandingsUpdated"
)

// ParseEventPayload parses event data into the appropriate payload struct
func ParseEventPayload(event *PoolEvent) (interface{}, error) {
	switch event.Type {
	case EventTypeGameFinalized:
		var payload outbox.GameFinalizedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeStandingsUpdated:
		var payload outbox.StandingsUpdatedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	default:
		return nil, nil // Unknown event type
	}
}
