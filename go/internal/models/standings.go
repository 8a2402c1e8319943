package models

import (
	"time"

	"github.com/google/uuid"
)

// StandingsRow is one member's line in a week's settled standings.
// Rows for a week are replaced wholesale on every settlement run.
type StandingsRow struct {
	UserID       uuid.UUID `json:"user_id"`
	Username     string    `json:"username"`
	Season       int       `json:"season"`
	Week         int       `json:"week"`
	TotalPicks   int       `json:"total_picks"`
	CorrectPicks int       `json:"correct_picks"`

	// Tiebreak tuple computed against the week's marquee tiebreak game.
	PickedWinner bool `json:"picked_winner"`
	TotalDiff    int  `json:"total_diff"`
	WinnerDiff   int  `json:"winner_diff"`
	LoserDiff    int  `json:"loser_diff"`

	FirstPickAt time.Time `json:"first_pick_at"`
	Rank        int       `json:"rank"`
	Winner      bool      `json:"winner"`
	ComputedAt  time.Time `json:"computed_at"`
}
