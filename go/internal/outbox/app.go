package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pickpool/pickpool/go/internal/models"
)

// OutboxRepository defines what the app layer needs from the repository
type OutboxRepository interface {
	InsertOutboxEvent(ctx context.Context, eventType string, payload []byte) error
	FetchUnsentOutbox(ctx context.Context, limit int32) ([]OutboxEvent, error)
	FetchOutboxByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error)
	MarkOutboxSent(ctx context.Context, id uuid.UUID) error
}

// App handles outbox business logic. It satisfies the scheduler's event sink:
// events land in the database alongside the state change and the listener
// relays them to the broker.
type App struct {
	repo OutboxRepository
}

// NewApp creates a new outbox App
func NewApp(repo OutboxRepository) *App {
	return &App{
		repo: repo,
	}
}

// GameFinalized records a game.finalized event.
func (a *App) GameFinalized(ctx context.Context, game models.Game) error {
	if game.HomeScore == nil || game.AwayScore == nil {
		return fmt.Errorf("finalized game %s is missing scores", game.ID)
	}

	payload, err := json.Marshal(GameFinalizedPayload{
		GameID:    game.ID,
		Season:    game.Season,
		Week:      game.Week,
		HomeTeam:  game.HomeTeam,
		AwayTeam:  game.AwayTeam,
		HomeScore: *game.HomeScore,
		AwayScore: *game.AwayScore,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal game.finalized payload: %w", err)
	}

	if err := a.repo.InsertOutboxEvent(ctx, EventGameFinalized, payload); err != nil {
		return err
	}

	log.Info().
		Str("game_id", game.ID.String()).
		Str("event_type", EventGameFinalized).
		Msg("outbox event inserted")

	return nil
}

// StandingsUpdated records a standings.updated event.
func (a *App) StandingsUpdated(ctx context.Context, week models.WeekRef) error {
	payload, err := json.Marshal(StandingsUpdatedPayload{
		Season: week.Season,
		Week:   week.Week,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal standings.updated payload: %w", err)
	}

	if err := a.repo.InsertOutboxEvent(ctx, EventStandingsUpdated, payload); err != nil {
		return err
	}

	log.Info().
		Str("week", week.String()).
		Str("event_type", EventStandingsUpdated).
		Msg("outbox event inserted")

	return nil
}

// FetchUnsentEvents fetches unsent outbox events
func (a *App) FetchUnsentEvents(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}
	return a.repo.FetchUnsentOutbox(ctx, limit)
}

// MarkEventSent marks an outbox event as sent
func (a *App) MarkEventSent(ctx context.Context, eventID uuid.UUID) error {
	return a.repo.MarkOutboxSent(ctx, eventID)
}
