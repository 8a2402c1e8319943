package outbox

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/pickpool/pickpool/go/internal/models"
)

type fakeRepo struct {
	inserted []OutboxEvent
}

func (f *fakeRepo) InsertOutboxEvent(ctx context.Context, eventType string, payload []byte) error {
	f.inserted = append(f.inserted, OutboxEvent{ID: uuid.New(), EventType: eventType, Payload: payload})
	return nil
}

func (f *fakeRepo) FetchUnsentOutbox(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	return f.inserted, nil
}

func (f *fakeRepo) FetchOutboxByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	for _, e := range f.inserted {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) MarkOutboxSent(ctx context.Context, id uuid.UUID) error { return nil }

func TestGameFinalizedEvent(t *testing.T) {
	repo := &fakeRepo{}
	app := NewApp(repo)

	home, away := 24, 17
	game := models.Game{
		ID: uuid.New(), Season: 2025, Week: 12,
		HomeTeam: "Packers", AwayTeam: "Bears",
		HomeScore: &home, AwayScore: &away, Final: true,
	}

	if err := app.GameFinalized(context.Background(), game); err != nil {
		t.Fatal(err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.inserted))
	}
	event := repo.inserted[0]
	if event.EventType != EventGameFinalized {
		t.Errorf("event type = %s, want %s", event.EventType, EventGameFinalized)
	}

	var payload GameFinalizedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.GameID != game.ID || payload.HomeScore != 24 || payload.AwayScore != 17 {
		t.Errorf("payload %+v does not match game", payload)
	}
}

func TestGameFinalizedRejectsMissingScores(t *testing.T) {
	app := NewApp(&fakeRepo{})
	game := models.Game{ID: uuid.New(), Final: true}

	if err := app.GameFinalized(context.Background(), game); err == nil {
		t.Error("expected error for a finalized game without scores")
	}
}

func TestStandingsUpdatedEvent(t *testing.T) {
	repo := &fakeRepo{}
	app := NewApp(repo)

	if err := app.StandingsUpdated(context.Background(), models.WeekRef{Season: 2025, Week: 12}); err != nil {
		t.Fatal(err)
	}

	event := repo.inserted[0]
	if event.EventType != EventStandingsUpdated {
		t.Errorf("event type = %s, want %s", event.EventType, EventStandingsUpdated)
	}
	var payload StandingsUpdatedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Season != 2025 || payload.Week != 12 {
		t.Errorf("payload = %+v, want season 2025 week 12", payload)
	}
}
