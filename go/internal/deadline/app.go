package deadline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/pickpool/pickpool/go/internal/models"
)

// OverridesRepository defines what the app layer needs from the repository
type OverridesRepository interface {
	SetOverride(ctx context.Context, req SetOverrideRequest) (*models.DeadlineOverride, error)
	GetActiveOverride(ctx context.Context, week models.WeekRef, key BucketKey, userID *uuid.UUID) (*models.DeadlineOverride, error)
	ListOverridesByWeek(ctx context.Context, week models.WeekRef) ([]models.DeadlineOverride, error)
}

// GamesApp defines what the deadline app needs from the games app
type GamesApp interface {
	ListGamesByWeek(ctx context.Context, week models.WeekRef) ([]models.Game, error)
}

// App answers submission-window questions for the request-serving boundary.
// It never rejects a pick itself; callers enforce the answer.
type App struct {
	repo  OverridesRepository
	games GamesApp
	cfg   WindowConfig
	clock clockwork.Clock
}

// NewApp creates a new deadline App
func NewApp(repo OverridesRepository, games GamesApp, cfg WindowConfig, clock clockwork.Clock) *App {
	return &App{
		repo:  repo,
		games: games,
		cfg:   cfg,
		clock: clock,
	}
}

// WeekWindows computes every submission window for a week's schedule.
func (a *App) WeekWindows(ctx context.Context, week models.WeekRef) (map[BucketKey]Window, error) {
	games, err := a.games.ListGamesByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load games for windows: %w", err)
	}
	return ComputeWindows(a.cfg, games), nil
}

// SetOverride validates and stores an admin cutoff override.
func (a *App) SetOverride(ctx context.Context, req SetOverrideRequest) (*models.DeadlineOverride, error) {
	if req.Cutoff.IsZero() {
		return nil, fmt.Errorf("cutoff is required")
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("reason is required")
	}
	if req.Author == "" {
		return nil, fmt.Errorf("author is required")
	}

	override, err := a.repo.SetOverride(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to set override: %w", err)
	}

	log.Info().
		Str("week", req.Week.String()).
		Str("bucket", req.BucketKey.String()).
		Str("author", req.Author).
		Time("cutoff", req.Cutoff).
		Msg("deadline override set")

	return override, nil
}

// ListOverrides returns the full override history for a week.
func (a *App) ListOverrides(ctx context.Context, week models.WeekRef) ([]models.DeadlineOverride, error) {
	return a.repo.ListOverridesByWeek(ctx, week)
}

// EffectiveCutoff resolves the cutoff that actually applies to one member:
// a user-scoped override wins over a global one, which wins over the
// computed default.
func (a *App) EffectiveCutoff(ctx context.Context, week models.WeekRef, key BucketKey, userID uuid.UUID, defaultCutoff time.Time) (time.Time, error) {
	override, err := a.repo.GetActiveOverride(ctx, week, key, &userID)
	if err != nil {
		return time.Time{}, err
	}
	if override != nil {
		return override.Cutoff, nil
	}

	override, err = a.repo.GetActiveOverride(ctx, week, key, nil)
	if err != nil {
		return time.Time{}, err
	}
	if override != nil {
		return override.Cutoff, nil
	}

	return defaultCutoff, nil
}

// SubmissionStatus answers "may this member still submit a pick on this
// game". Missing schedule data fails open: members are never locked out
// because the schedule has not been ingested yet.
func (a *App) SubmissionStatus(ctx context.Context, week models.WeekRef, gameID, userID uuid.UUID) (WindowStatus, error) {
	games, err := a.games.ListGamesByWeek(ctx, week)
	if err != nil {
		return "", fmt.Errorf("failed to load games for status: %w", err)
	}
	if len(games) == 0 {
		return StatusOpen, nil
	}

	var game *models.Game
	for i := range games {
		if games[i].ID == gameID {
			game = &games[i]
			break
		}
	}
	if game == nil {
		log.Warn().
			Str("game_id", gameID.String()).
			Str("week", week.String()).
			Msg("submission status asked for game missing from schedule, failing open")
		return StatusOpen, nil
	}

	windows := ComputeWindows(a.cfg, games)
	window, ok := windows[BucketFor(a.cfg, *game)]
	if !ok {
		return StatusOpen, nil
	}

	cutoff, err := a.EffectiveCutoff(ctx, week, window.Key, userID, window.Cutoff)
	if err != nil {
		return "", err
	}

	window.Cutoff = cutoff
	return window.Status(a.clock.Now()), nil
}
