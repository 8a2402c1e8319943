package games

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/pickpool/pickpool/go/internal/models"
)

// How long a week keeps being "current" after its last kickoff. Two days
// covers Monday night plus stat corrections before rolling forward.
const weekRolloverGrace = 48 * time.Hour

// GamesRepository defines what the app layer needs from the repository
type GamesRepository interface {
	UpsertGame(ctx context.Context, req UpsertGameRequest) (*models.Game, error)
	GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error)
	ListGamesByWeek(ctx context.Context, week models.WeekRef) ([]models.Game, error)
	ApplyScoreUpdate(ctx context.Context, gameID uuid.UUID, update models.ScoreUpdate) (bool, error)
	CountPendingByWeek(ctx context.Context, week models.WeekRef) (int, error)
	DeleteGamesByWeek(ctx context.Context, week models.WeekRef) error
	NextWeekAfter(ctx context.Context, t time.Time) (models.WeekRef, error)
	LatestWeek(ctx context.Context) (models.WeekRef, error)
}

// App handles game schedule business logic
type App struct {
	repo  GamesRepository
	clock clockwork.Clock
}

// NewApp creates a new games App
func NewApp(repo GamesRepository, clock clockwork.Clock) *App {
	return &App{
		repo:  repo,
		clock: clock,
	}
}

// ImportSchedule upserts a batch of scheduled games. Invalid entries are
// collected in the result, not fatal for the rest of the batch.
func (a *App) ImportSchedule(ctx context.Context, entries []UpsertGameRequest) (*ImportResult, error) {
	result := &ImportResult{TotalProcessed: len(entries)}

	for _, entry := range entries {
		if err := a.validateUpsertGameRequest(entry); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s @ %s: %w", entry.AwayTeam, entry.HomeTeam, err))
			continue
		}
		if _, err := a.repo.UpsertGame(ctx, entry); err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Imported++
	}

	log.Info().
		Int("processed", result.TotalProcessed).
		Int("imported", result.Imported).
		Int("errors", len(result.Errors)).
		Msg("schedule import finished")

	return result, nil
}

// RegenerateWeek replaces a week's schedule wholesale. Administrative only:
// this is the single path that ever deletes games.
func (a *App) RegenerateWeek(ctx context.Context, week models.WeekRef, entries []UpsertGameRequest) (*ImportResult, error) {
	if err := a.repo.DeleteGamesByWeek(ctx, week); err != nil {
		return nil, fmt.Errorf("failed to regenerate week %s: %w", week, err)
	}
	return a.ImportSchedule(ctx, entries)
}

func (a *App) validateUpsertGameRequest(req UpsertGameRequest) error {
	if req.Season <= 0 {
		return fmt.Errorf("season is required")
	}
	if req.Week <= 0 {
		return fmt.Errorf("week is required")
	}
	if req.HomeTeam == "" || req.AwayTeam == "" {
		return fmt.Errorf("both team labels are required")
	}
	if req.HomeTeam == req.AwayTeam {
		return fmt.Errorf("a team cannot play itself")
	}
	if req.Kickoff.IsZero() {
		return fmt.Errorf("kickoff is required")
	}
	return nil
}

// GetGame retrieves a game by ID
func (a *App) GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	game, err := a.repo.GetGame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

// ListGamesByWeek retrieves all games for one week ordered by kickoff
func (a *App) ListGamesByWeek(ctx context.Context, week models.WeekRef) ([]models.Game, error) {
	games, err := a.repo.ListGamesByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

// ApplyScoreUpdate validates and writes one score update. It returns true
// when this write finalized a game that was not finalized before.
func (a *App) ApplyScoreUpdate(ctx context.Context, gameID uuid.UUID, update models.ScoreUpdate) (finalized bool, err error) {
	if update.HomeScore < 0 || update.AwayScore < 0 {
		return false, fmt.Errorf("malformed score %d-%d for game %s", update.HomeScore, update.AwayScore, gameID)
	}

	wasFinal, err := a.repo.ApplyScoreUpdate(ctx, gameID, update)
	if err != nil {
		return false, err
	}

	return update.Final && !wasFinal, nil
}

// WeekComplete reports whether every game of the week is finalized
func (a *App) WeekComplete(ctx context.Context, week models.WeekRef) (bool, error) {
	pending, err := a.repo.CountPendingByWeek(ctx, week)
	if err != nil {
		return false, err
	}
	return pending == 0, nil
}

// CurrentWeek computes the active scoring week from the schedule itself:
// the week of the next game that is not yet past the rollover grace, falling
// back to the last scheduled week once the season is over.
func (a *App) CurrentWeek(ctx context.Context) (models.WeekRef, error) {
	horizon := a.clock.Now().Add(-weekRolloverGrace)

	week, err := a.repo.NextWeekAfter(ctx, horizon)
	if err == nil {
		return week, nil
	}

	week, err = a.repo.LatestWeek(ctx)
	if err != nil {
		return models.WeekRef{}, fmt.Errorf("no schedule loaded: %w", err)
	}
	return week, nil
}
