package picks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pickpool/pickpool/go/internal/models"
	"github.com/pickpool/pickpool/go/internal/picks/db"
	"github.com/pickpool/pickpool/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	UpsertPick(ctx context.Context, arg db.UpsertPickParams) (db.Pick, error)
	GetPick(ctx context.Context, arg db.GetPickParams) (db.Pick, error)
	ListPicksByGame(ctx context.Context, gameID uuid.UUID) ([]db.Pick, error)
	ListPicksByWeek(ctx context.Context, arg db.ListPicksByWeekParams) ([]db.Pick, error)
	ScorePicksForGame(ctx context.Context, arg db.ScorePicksForGameParams) error
	ScorePicksForTiedGame(ctx context.Context, gameID uuid.UUID) error
}

// Repository implements pick data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new picks repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// UpsertPick creates or replaces the pick for (user, game). Replacing a pick
// clears any stored correctness; settlement recomputes it after finalization.
func (r *Repository) UpsertPick(ctx context.Context, req SubmitPickRequest) (*models.Pick, error) {
	dbPick, err := r.queries.UpsertPick(ctx, db.UpsertPickParams{
		ID:           uuid.New(),
		UserID:       req.UserID,
		GameID:       req.GameID,
		Selected:     string(req.Selected),
		TiebreakHome: sqlutil.ToSqlInt32(req.TiebreakHome),
		TiebreakAway: sqlutil.ToSqlInt32(req.TiebreakAway),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert pick: %w", err)
	}

	return r.dbPickToModel(dbPick), nil
}

// GetPick retrieves the pick one member made on one game
func (r *Repository) GetPick(ctx context.Context, userID, gameID uuid.UUID) (*models.Pick, error) {
	dbPick, err := r.queries.GetPick(ctx, db.GetPickParams{
		UserID: userID,
		GameID: gameID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get pick: %w", err)
	}

	return r.dbPickToModel(dbPick), nil
}

// ListPicksByGame retrieves every pick made on one game
func (r *Repository) ListPicksByGame(ctx context.Context, gameID uuid.UUID) ([]models.Pick, error) {
	dbPicks, err := r.queries.ListPicksByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks by game: %w", err)
	}

	picks := make([]models.Pick, len(dbPicks))
	for i, dbPick := range dbPicks {
		picks[i] = *r.dbPickToModel(dbPick)
	}

	return picks, nil
}

// ListPicksByWeek retrieves every pick made on the week's games
func (r *Repository) ListPicksByWeek(ctx context.Context, week models.WeekRef) ([]models.Pick, error) {
	dbPicks, err := r.queries.ListPicksByWeek(ctx, db.ListPicksByWeekParams{
		Season: int32(week.Season),
		Week:   int32(week.Week),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list picks by week: %w", err)
	}

	picks := make([]models.Pick, len(dbPicks))
	for i, dbPick := range dbPicks {
		picks[i] = *r.dbPickToModel(dbPick)
	}

	return picks, nil
}

// ScoreGame sets correctness for every pick on a finalized game in a single
// UPDATE. A tied game has no correct side so every pick scores false.
func (r *Repository) ScoreGame(ctx context.Context, gameID uuid.UUID, winner models.Side) error {
	var err error
	if winner == models.SideNone {
		err = r.queries.ScorePicksForTiedGame(ctx, gameID)
	} else {
		err = r.queries.ScorePicksForGame(ctx, db.ScorePicksForGameParams{
			GameID:   gameID,
			Selected: string(winner),
		})
	}
	if err != nil {
		return fmt.Errorf("failed to score picks for game %s: %w", gameID, err)
	}
	return nil
}

func (r *Repository) dbPickToModel(dbPick db.Pick) *models.Pick {
	return &models.Pick{
		ID:           dbPick.ID,
		UserID:       dbPick.UserID,
		GameID:       dbPick.GameID,
		Selected:     models.Side(dbPick.Selected),
		TiebreakHome: sqlutil.FromSqlInt32(dbPick.TiebreakHome),
		TiebreakAway: sqlutil.FromSqlInt32(dbPick.TiebreakAway),
		Correct:      sqlutil.FromSqlBool(dbPick.Correct),
		SubmittedAt:  dbPick.SubmittedAt,
	}
}
