package picks

import (
	"github.com/google/uuid"
	"github.com/pickpool/pickpool/go/internal/models"
)

// SubmitPickRequest represents one member's prediction for one game.
// TiebreakHome/TiebreakAway are only meaningful on the week's tiebreak game
// and must be given together or not at all.
type SubmitPickRequest struct {
	UserID       uuid.UUID   `json:"user_id" validate:"required"`
	GameID       uuid.UUID   `json:"game_id" validate:"required"`
	Selected     models.Side `json:"selected" validate:"required"`
	TiebreakHome *int        `json:"tiebreak_home,omitempty"`
	TiebreakAway *int        `json:"tiebreak_away,omitempty"`
}
