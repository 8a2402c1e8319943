package games

import (
	"time"

	"github.com/google/uuid"
)

// UpsertGameRequest represents one scheduled game during schedule ingestion.
// ID may be left as uuid.Nil for new games.
type UpsertGameRequest struct {
	ID       uuid.UUID `json:"id,omitempty"`
	Season   int       `json:"season" validate:"required"`
	Week     int       `json:"week" validate:"required"`
	HomeTeam string    `json:"home_team" validate:"required"`
	AwayTeam string    `json:"away_team" validate:"required"`
	Kickoff  time.Time `json:"kickoff" validate:"required"`
}

// ImportResult represents the outcome of a schedule import
type ImportResult struct {
	TotalProcessed int     `json:"total_processed"`
	Imported       int     `json:"imported"`
	Errors         []error `json:"errors,omitempty"`
}
