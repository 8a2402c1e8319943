package games

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pickpool/pickpool/go/internal/games/db"
	"github.com/pickpool/pickpool/go/internal/models"
	"github.com/pickpool/pickpool/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	UpsertGame(ctx context.Context, arg db.UpsertGameParams) (db.Game, error)
	GetGame(ctx context.Context, id uuid.UUID) (db.Game, error)
	ListGamesByWeek(ctx context.Context, arg db.ListGamesByWeekParams) ([]db.Game, error)
	ApplyScoreUpdate(ctx context.Context, arg db.ApplyScoreUpdateParams) (bool, error)
	CountPendingByWeek(ctx context.Context, arg db.CountPendingByWeekParams) (int64, error)
	DeleteGamesByWeek(ctx context.Context, arg db.DeleteGamesByWeekParams) error
	GetNextWeek(ctx context.Context, kickoff time.Time) (db.GetNextWeekRow, error)
	GetLatestWeek(ctx context.Context) (db.GetLatestWeekRow, error)
}

// Repository implements game data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new games repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// UpsertGame inserts a scheduled game or refreshes its kickoff time.
func (r *Repository) UpsertGame(ctx context.Context, req UpsertGameRequest) (*models.Game, error) {
	id := req.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	dbGame, err := r.queries.UpsertGame(ctx, db.UpsertGameParams{
		ID:       id,
		Season:   int32(req.Season),
		Week:     int32(req.Week),
		HomeTeam: req.HomeTeam,
		AwayTeam: req.AwayTeam,
		Kickoff:  req.Kickoff,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert game: %w", err)
	}

	return r.dbGameToModel(dbGame), nil
}

// GetGame retrieves a game by ID
func (r *Repository) GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	dbGame, err := r.queries.GetGame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return r.dbGameToModel(dbGame), nil
}

// ListGamesByWeek retrieves all games for one week ordered by kickoff
func (r *Repository) ListGamesByWeek(ctx context.Context, week models.WeekRef) ([]models.Game, error) {
	dbGames, err := r.queries.ListGamesByWeek(ctx, db.ListGamesByWeekParams{
		Season: int32(week.Season),
		Week:   int32(week.Week),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list games by week: %w", err)
	}

	games := make([]models.Game, len(dbGames))
	for i, dbGame := range dbGames {
		games[i] = *r.dbGameToModel(dbGame)
	}

	return games, nil
}

// ApplyScoreUpdate writes the scores and finalized flag for a game in a single
// UPDATE and reports whether the game was already finalized beforehand. The
// caller derives the not-final-to-final transition from the returned flag.
func (r *Repository) ApplyScoreUpdate(ctx context.Context, gameID uuid.UUID, update models.ScoreUpdate) (wasFinal bool, err error) {
	wasFinal, err = r.queries.ApplyScoreUpdate(ctx, db.ApplyScoreUpdateParams{
		ID:        gameID,
		HomeScore: sqlutil.ToSqlInt32(&update.HomeScore),
		AwayScore: sqlutil.ToSqlInt32(&update.AwayScore),
		Final:     update.Final,
	})
	if err != nil {
		return false, fmt.Errorf("failed to apply score update: %w", err)
	}
	return wasFinal, nil
}

// CountPendingByWeek returns how many games of the week are not yet finalized
func (r *Repository) CountPendingByWeek(ctx context.Context, week models.WeekRef) (int, error) {
	count, err := r.queries.CountPendingByWeek(ctx, db.CountPendingByWeekParams{
		Season: int32(week.Season),
		Week:   int32(week.Week),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending games: %w", err)
	}
	return int(count), nil
}

// DeleteGamesByWeek removes a week's schedule (administrative regeneration only)
func (r *Repository) DeleteGamesByWeek(ctx context.Context, week models.WeekRef) error {
	if err := r.queries.DeleteGamesByWeek(ctx, db.DeleteGamesByWeekParams{
		Season: int32(week.Season),
		Week:   int32(week.Week),
	}); err != nil {
		return fmt.Errorf("failed to delete games by week: %w", err)
	}
	return nil
}

// NextWeekAfter returns the week of the first game kicking off after t
func (r *Repository) NextWeekAfter(ctx context.Context, t time.Time) (models.WeekRef, error) {
	row, err := r.queries.GetNextWeek(ctx, t)
	if err != nil {
		return models.WeekRef{}, fmt.Errorf("failed to get next week: %w", err)
	}
	return models.WeekRef{Season: int(row.Season), Week: int(row.Week)}, nil
}

// LatestWeek returns the week of the last game on the schedule
func (r *Repository) LatestWeek(ctx context.Context) (models.WeekRef, error) {
	row, err := r.queries.GetLatestWeek(ctx)
	if err != nil {
		return models.WeekRef{}, fmt.Errorf("failed to get latest week: %w", err)
	}
	return models.WeekRef{Season: int(row.Season), Week: int(row.Week)}, nil
}

func (r *Repository) dbGameToModel(dbGame db.Game) *models.Game {
	return &models.Game{
		ID:        dbGame.ID,
		Season:    int(dbGame.Season),
		Week:      int(dbGame.Week),
		HomeTeam:  dbGame.HomeTeam,
		AwayTeam:  dbGame.AwayTeam,
		Kickoff:   dbGame.Kickoff,
		HomeScore: sqlutil.FromSqlInt32(dbGame.HomeScore),
		AwayScore: sqlutil.FromSqlInt32(dbGame.AwayScore),
		Final:     dbGame.Final,
		CreatedAt: dbGame.CreatedAt,
		UpdatedAt: dbGame.UpdatedAt,
	}
}
