package gateway

import (
	"context"
	"fmt"

	"github.com/pickpool/pickpool/go/internal/models"
)

// StandingsReader reads the persisted standings for a week.
type StandingsReader interface {
	Standings(ctx context.Context, week models.WeekRef) ([]models.StandingsRow, error)
}

// GamesReader reads the schedule.
type GamesReader interface {
	ListGamesByWeek(ctx context.Context, week models.WeekRef) ([]models.Game, error)
	CurrentWeek(ctx context.Context) (models.WeekRef, error)
}

// PoolStateProvider implements StateProvider on top of the settlement and
// games apps.
type PoolStateProvider struct {
	standings StandingsReader
	games     GamesReader
}

// NewPoolStateProvider creates a new pool state provider
func NewPoolStateProvider(standings StandingsReader, games GamesReader) *PoolStateProvider {
	return &PoolStateProvider{
		standings: standings,
		games:     games,
	}
}

// GetStandings retrieves the persisted standings for a week
func (p *PoolStateProvider) GetStandings(ctx context.Context, week models.WeekRef) ([]models.StandingsRow, error) {
	rows, err := p.standings.Standings(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to get standings for %s: %w", week, err)
	}
	return rows, nil
}

// GetGames retrieves the schedule for a week
func (p *PoolStateProvider) GetGames(ctx context.Context, week models.WeekRef) ([]models.Game, error) {
	games, err := p.games.ListGamesByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to get games for %s: %w", week, err)
	}
	return games, nil
}

// GetCurrentWeek resolves the schedule's current week
func (p *PoolStateProvider) GetCurrentWeek(ctx context.Context) (models.WeekRef, error) {
	week, err := p.games.CurrentWeek(ctx)
	if err != nil {
		return models.WeekRef{}, fmt.Errorf("failed to resolve current week: %w", err)
	}
	return week, nil
}
