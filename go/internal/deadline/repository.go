package deadline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pickpool/pickpool/go/internal/deadline/db"
	"github.com/pickpool/pickpool/go/internal/models"
	"github.com/pickpool/pickpool/go/internal/sqlutil"
)

// Repository implements override data access operations. Supersede semantics
// need a transaction, so unlike most repositories it holds the *sql.DB too.
type Repository struct {
	queries *db.Queries
	sqlDB   *sql.DB
}

// NewRepository creates a new overrides repository
func NewRepository(queries *db.Queries, sqlDB *sql.DB) *Repository {
	return &Repository{
		queries: queries,
		sqlDB:   sqlDB,
	}
}

// SetOverride records a new cutoff override and deactivates any prior active
// override for the identical (week, bucket, user) key in the same
// transaction. Old rows are never deleted; the history stays auditable.
func (r *Repository) SetOverride(ctx context.Context, req SetOverrideRequest) (*models.DeadlineOverride, error) {
	var inserted db.DeadlineOverride

	err := sqlutil.Run(ctx, r.sqlDB,
		func(tx *sql.Tx) *db.Queries { return r.queries.WithTx(tx) },
		func(q *db.Queries) error {
			userID := sqlutil.ToNullUUID(req.UserID)

			if err := q.DeactivateOverrides(ctx, db.DeactivateOverridesParams{
				Season:    int32(req.Week.Season),
				Week:      int32(req.Week.Week),
				BucketKey: req.BucketKey.String(),
				UserID:    userID,
			}); err != nil {
				return fmt.Errorf("failed to deactivate prior overrides: %w", err)
			}

			var err error
			inserted, err = q.InsertOverride(ctx, db.InsertOverrideParams{
				ID:        uuid.New(),
				Season:    int32(req.Week.Season),
				Week:      int32(req.Week.Week),
				BucketKey: req.BucketKey.String(),
				UserID:    userID,
				Cutoff:    req.Cutoff,
				Reason:    req.Reason,
				Author:    req.Author,
			})
			if err != nil {
				return fmt.Errorf("failed to insert override: %w", err)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	return r.dbOverrideToModel(inserted), nil
}

// GetActiveOverride returns the latest active override for the exact
// (week, bucket, user) key, or nil when none exists. A nil userID queries
// the global override.
func (r *Repository) GetActiveOverride(ctx context.Context, week models.WeekRef, key BucketKey, userID *uuid.UUID) (*models.DeadlineOverride, error) {
	row, err := r.queries.GetActiveOverride(ctx, db.GetActiveOverrideParams{
		Season:    int32(week.Season),
		Week:      int32(week.Week),
		BucketKey: key.String(),
		UserID:    sqlutil.ToNullUUID(userID),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active override: %w", err)
	}

	return r.dbOverrideToModel(row), nil
}

// ListOverridesByWeek returns the full override history for a week,
// active and superseded alike.
func (r *Repository) ListOverridesByWeek(ctx context.Context, week models.WeekRef) ([]models.DeadlineOverride, error) {
	rows, err := r.queries.ListOverridesByWeek(ctx, db.ListOverridesByWeekParams{
		Season: int32(week.Season),
		Week:   int32(week.Week),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}

	overrides := make([]models.DeadlineOverride, len(rows))
	for i, row := range rows {
		overrides[i] = *r.dbOverrideToModel(row)
	}

	return overrides, nil
}

func (r *Repository) dbOverrideToModel(row db.DeadlineOverride) *models.DeadlineOverride {
	return &models.DeadlineOverride{
		ID:        row.ID,
		Season:    int(row.Season),
		Week:      int(row.Week),
		BucketKey: row.BucketKey,
		UserID:    sqlutil.FromNullUUID(row.UserID),
		Cutoff:    row.Cutoff,
		Reason:    row.Reason,
		Author:    row.Author,
		Active:    row.Active,
		CreatedAt: row.CreatedAt,
	}
}
