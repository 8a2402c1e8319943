package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types relayed through the pool outbox.
const (
	EventGameFinalized    = "game.finalized"
	EventStandingsUpdated = "standings.updated"
)

// OutboxEvent represents an outbox event for the application layer
type OutboxEvent struct {
	ID        uuid.UUID       `json:"id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	SentAt    *time.Time      `json:"sent_at,omitempty"`
}

// GameFinalizedPayload is the body of a game.finalized event.
type GameFinalizedPayload struct {
	GameID    uuid.UUID `json:"game_id"`
	Season    int       `json:"season"`
	Week      int       `json:"week"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
}

// StandingsUpdatedPayload is the body of a standings.updated event.
type StandingsUpdatedPayload struct {
	Season int `json:"season"`
	Week   int `json:"week"`
}
