package settlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pickpool/pickpool/go/internal/models"
	"github.com/pickpool/pickpool/go/internal/settlement/db"
	"github.com/pickpool/pickpool/go/internal/sqlutil"
)

// Repository implements standings data access. Replacement must be atomic,
// so it holds the *sql.DB for the delete-and-reinsert transaction.
type Repository struct {
	queries *db.Queries
	sqlDB   *sql.DB
}

// NewRepository creates a new standings repository
func NewRepository(queries *db.Queries, sqlDB *sql.DB) *Repository {
	return &Repository{
		queries: queries,
		sqlDB:   sqlDB,
	}
}

// ReplaceWeek deletes and reinserts a week's standings in one transaction
// so readers never observe a partially written table.
func (r *Repository) ReplaceWeek(ctx context.Context, week models.WeekRef, rows []models.StandingsRow) error {
	return sqlutil.Run(ctx, r.sqlDB,
		func(tx *sql.Tx) *db.Queries { return r.queries.WithTx(tx) },
		func(q *db.Queries) error {
			if err := q.DeleteStandingsByWeek(ctx, db.DeleteStandingsByWeekParams{
				Season: int32(week.Season),
				Week:   int32(week.Week),
			}); err != nil {
				return fmt.Errorf("failed to delete standings: %w", err)
			}
			for _, row := range rows {
				if err := q.InsertStandingsRow(ctx, db.InsertStandingsRowParams{
					UserID:       row.UserID,
					Season:       int32(row.Season),
					Week:         int32(row.Week),
					TotalPicks:   int32(row.TotalPicks),
					CorrectPicks: int32(row.CorrectPicks),
					PickedWinner: row.PickedWinner,
					TotalDiff:    int32(row.TotalDiff),
					WinnerDiff:   int32(row.WinnerDiff),
					LoserDiff:    int32(row.LoserDiff),
					FirstPickAt:  row.FirstPickAt,
					Rank:         int32(row.Rank),
					Winner:       row.Winner,
					ComputedAt:   row.ComputedAt,
				}); err != nil {
					return fmt.Errorf("failed to insert standings row for user %s: %w", row.UserID, err)
				}
			}
			return nil
		},
	)
}

// ListStandingsByWeek returns the stored standings ordered by rank.
func (r *Repository) ListStandingsByWeek(ctx context.Context, week models.WeekRef) ([]models.StandingsRow, error) {
	dbRows, err := r.queries.ListStandingsByWeek(ctx, db.ListStandingsByWeekParams{
		Season: int32(week.Season),
		Week:   int32(week.Week),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list standings: %w", err)
	}

	rows := make([]models.StandingsRow, len(dbRows))
	for i, dbRow := range dbRows {
		rows[i] = models.StandingsRow{
			UserID:       dbRow.UserID,
			Username:     dbRow.Username,
			Season:       int(dbRow.Season),
			Week:         int(dbRow.Week),
			TotalPicks:   int(dbRow.TotalPicks),
			CorrectPicks: int(dbRow.CorrectPicks),
			PickedWinner: dbRow.PickedWinner,
			TotalDiff:    int(dbRow.TotalDiff),
			WinnerDiff:   int(dbRow.WinnerDiff),
			LoserDiff:    int(dbRow.LoserDiff),
			FirstPickAt:  dbRow.FirstPickAt,
			Rank:         int(dbRow.Rank),
			Winner:       dbRow.Winner,
			ComputedAt:   dbRow.ComputedAt,
		}
	}

	return rows, nil
}
