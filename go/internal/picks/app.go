package picks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pickpool/pickpool/go/internal/models"
)

// PicksRepository defines what the app layer needs from the repository
type PicksRepository interface {
	UpsertPick(ctx context.Context, req SubmitPickRequest) (*models.Pick, error)
	GetPick(ctx context.Context, userID, gameID uuid.UUID) (*models.Pick, error)
	ListPicksByGame(ctx context.Context, gameID uuid.UUID) ([]models.Pick, error)
	ListPicksByWeek(ctx context.Context, week models.WeekRef) ([]models.Pick, error)
	ScoreGame(ctx context.Context, gameID uuid.UUID, winner models.Side) error
}

// App handles pick business logic. Deadline enforcement happens at the
// submission boundary, not here: the boundary asks the deadline app whether
// the window is open before calling SubmitPick.
type App struct {
	repo PicksRepository
}

// NewApp creates a new picks App
func NewApp(repo PicksRepository) *App {
	return &App{
		repo: repo,
	}
}

// SubmitPick validates and stores one prediction, replacing any earlier pick
// by the same member on the same game.
func (a *App) SubmitPick(ctx context.Context, req SubmitPickRequest) (*models.Pick, error) {
	if err := a.validateSubmitPickRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	pick, err := a.repo.UpsertPick(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit pick: %w", err)
	}
	return pick, nil
}

func (a *App) validateSubmitPickRequest(req SubmitPickRequest) error {
	if req.UserID == uuid.Nil {
		return fmt.Errorf("user ID is required")
	}
	if req.GameID == uuid.Nil {
		return fmt.Errorf("game ID is required")
	}
	if req.Selected != models.SideHome && req.Selected != models.SideAway {
		return fmt.Errorf("selected side must be %s or %s", models.SideHome, models.SideAway)
	}
	if (req.TiebreakHome == nil) != (req.TiebreakAway == nil) {
		return fmt.Errorf("tiebreak prediction needs both scores")
	}
	if req.TiebreakHome != nil && (*req.TiebreakHome < 0 || *req.TiebreakAway < 0) {
		return fmt.Errorf("tiebreak scores cannot be negative")
	}
	return nil
}

// GetPick retrieves the pick one member made on one game
func (a *App) GetPick(ctx context.Context, userID, gameID uuid.UUID) (*models.Pick, error) {
	pick, err := a.repo.GetPick(ctx, userID, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pick: %w", err)
	}
	return pick, nil
}

// ListPicksByGame retrieves every pick made on one game
func (a *App) ListPicksByGame(ctx context.Context, gameID uuid.UUID) ([]models.Pick, error) {
	picks, err := a.repo.ListPicksByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	return picks, nil
}

// ListPicksByWeek retrieves every pick made on the week's games
func (a *App) ListPicksByWeek(ctx context.Context, week models.WeekRef) ([]models.Pick, error) {
	picks, err := a.repo.ListPicksByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	return picks, nil
}

// ScoreGame sets correctness for every pick on a finalized game.
// Only the settlement engine calls this.
func (a *App) ScoreGame(ctx context.Context, gameID uuid.UUID, winner models.Side) error {
	return a.repo.ScoreGame(ctx, gameID, winner)
}
