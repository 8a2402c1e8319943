package models

import (
	"time"

	"github.com/google/uuid"
)

// Pick represents one member's prediction for one game.
// Correct stays nil until the game is finalized and settlement runs.
type Pick struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	GameID       uuid.UUID `json:"game_id"`
	Selected     Side      `json:"selected"`
	TiebreakHome *int      `json:"tiebreak_home,omitempty"` // predicted final score, home side
	TiebreakAway *int      `json:"tiebreak_away,omitempty"`
	Correct      *bool     `json:"correct,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
