package models

import (
	"time"

	"github.com/google/uuid"
)

// Side identifies one side of a game, or no side at all for a tie.
type Side string

const (
	SideHome Side = "HOME"
	SideAway Side = "AWAY"
	SideNone Side = "" // tied game, no winning side
)

// Game represents one scheduled NFL contest within a pool week.
type Game struct {
	ID        uuid.UUID `json:"id"`
	Season    int       `json:"season"`
	Week      int       `json:"week"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	Kickoff   time.Time `json:"kickoff"`
	HomeScore *int      `json:"home_score,omitempty"` // nil until a score is known
	AwayScore *int      `json:"away_score,omitempty"`
	Final     bool      `json:"final"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WinningSide returns which side won a finalized game, or SideNone for a tie.
// Finalized games always carry both scores.
func (g Game) WinningSide() Side {
	if g.HomeScore == nil || g.AwayScore == nil {
		return SideNone
	}
	switch {
	case *g.HomeScore > *g.AwayScore:
		return SideHome
	case *g.AwayScore > *g.HomeScore:
		return SideAway
	default:
		return SideNone
	}
}
