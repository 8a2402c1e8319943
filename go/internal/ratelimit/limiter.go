package ratelimit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/pickpool/pickpool/go/internal/ratelimit/db"
)

const (
	// DefaultMaxCalls is the free-tier hourly budget of the score provider.
	DefaultMaxCalls = 5
	// DefaultWindow is the trailing interval the budget rolls over.
	DefaultWindow = time.Hour
)

// Querier defines what the limiter needs from the database layer
type Querier interface {
	CountCalls(ctx context.Context, limiter string) (int64, error)
	InsertCall(ctx context.Context, arg db.InsertCallParams) error
	OldestCall(ctx context.Context, limiter string) (time.Time, error)
	PruneCalls(ctx context.Context, arg db.PruneCallsParams) error
}

// Config sizes one named rolling-window budget.
type Config struct {
	Name     string // distinct providers carry distinct budgets under distinct names
	MaxCalls int
	Window   time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxCalls <= 0 {
		c.MaxCalls = DefaultMaxCalls
	}
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	return c
}

// Limiter enforces a rolling call budget persisted across process restarts.
// Every query prunes expired call rows first, so counts are never stale. All
// operations are non-blocking: a denied call is reported, never waited out.
type Limiter struct {
	queries Querier
	cfg     Config
	clock   clockwork.Clock
}

// NewLimiter creates a limiter over a persisted call log.
func NewLimiter(queries Querier, cfg Config, clock clockwork.Clock) *Limiter {
	return &Limiter{
		queries: queries,
		cfg:     cfg.withDefaults(),
		clock:   clock,
	}
}

// Name returns the budget this limiter accounts against.
func (l *Limiter) Name() string {
	return l.cfg.Name
}

// CanCall reports whether the budget admits one more call right now.
func (l *Limiter) CanCall(ctx context.Context) (bool, error) {
	remaining, err := l.CallsRemaining(ctx)
	if err != nil {
		return false, err
	}
	return remaining > 0, nil
}

// RecordCall charges one call against the budget. Callers invoke it
// immediately after the gated action so a crash in between cannot leave the
// budget silently overspent.
func (l *Limiter) RecordCall(ctx context.Context) error {
	if err := l.prune(ctx); err != nil {
		return err
	}
	if err := l.queries.InsertCall(ctx, db.InsertCallParams{
		ID:       uuid.New(),
		Limiter:  l.cfg.Name,
		CalledAt: l.clock.Now(),
	}); err != nil {
		return fmt.Errorf("failed to record call for limiter %s: %w", l.cfg.Name, err)
	}
	return nil
}

// CallsRemaining returns how many calls the budget still admits, never
// negative.
func (l *Limiter) CallsRemaining(ctx context.Context) (int, error) {
	if err := l.prune(ctx); err != nil {
		return 0, err
	}
	count, err := l.queries.CountCalls(ctx, l.cfg.Name)
	if err != nil {
		return 0, fmt.Errorf("failed to count calls for limiter %s: %w", l.cfg.Name, err)
	}
	remaining := l.cfg.MaxCalls - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// NextAvailableAt returns when the budget next admits a call, or nil when it
// already does.
func (l *Limiter) NextAvailableAt(ctx context.Context) (*time.Time, error) {
	remaining, err := l.CallsRemaining(ctx)
	if err != nil {
		return nil, err
	}
	if remaining > 0 {
		return nil, nil
	}

	oldest, err := l.queries.OldestCall(ctx, l.cfg.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find oldest call for limiter %s: %w", l.cfg.Name, err)
	}

	at := oldest.Add(l.cfg.Window)
	return &at, nil
}

func (l *Limiter) prune(ctx context.Context) error {
	if err := l.queries.PruneCalls(ctx, db.PruneCallsParams{
		Limiter:  l.cfg.Name,
		CalledAt: l.clock.Now().Add(-l.cfg.Window),
	}); err != nil {
		return fmt.Errorf("failed to prune calls for limiter %s: %w", l.cfg.Name, err)
	}
	return nil
}
