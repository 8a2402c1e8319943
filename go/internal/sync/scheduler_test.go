package sync

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pickpool/pickpool/go/internal/models"
)

var eastern = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

type stubGames struct {
	week      models.WeekRef
	games     []models.Game
	applied   []models.ScoreUpdate
	finalized map[uuid.UUID]bool
}

func (s *stubGames) CurrentWeek(ctx context.Context) (models.WeekRef, error) {
	return s.week, nil
}

func (s *stubGames) ListGamesByWeek(ctx context.Context, week models.WeekRef) ([]models.Game, error) {
	return s.games, nil
}

func (s *stubGames) ApplyScoreUpdate(ctx context.Context, gameID uuid.UUID, update models.ScoreUpdate) (bool, error) {
	s.applied = append(s.applied, update)
	if update.Final && !s.finalized[gameID] {
		s.finalized[gameID] = true
		return true, nil
	}
	return false, nil
}

type stubSettlement struct {
	settled []models.WeekRef
}

func (s *stubSettlement) Settle(ctx context.Context, week models.WeekRef) ([]models.StandingsRow, error) {
	s.settled = append(s.settled, week)
	return nil, nil
}

type stubProvider struct {
	name    string
	updates []models.ScoreUpdate
	err     error
	calls   int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) FetchScoreboard(ctx context.Context, week models.WeekRef) ([]models.ScoreUpdate, error) {
	p.calls++
	return p.updates, p.err
}

type stubGate struct {
	allow    bool
	recorded int
}

func (g *stubGate) CanCall(ctx context.Context) (bool, error) { return g.allow, nil }
func (g *stubGate) RecordCall(ctx context.Context) error {
	g.recorded++
	return nil
}

type stubEvents struct {
	finalized []uuid.UUID
	standings []models.WeekRef
}

func (e *stubEvents) GameFinalized(ctx context.Context, game models.Game) error {
	e.finalized = append(e.finalized, game.ID)
	return nil
}

func (e *stubEvents) StandingsUpdated(ctx context.Context, week models.WeekRef) error {
	e.standings = append(e.standings, week)
	return nil
}

type tickFixture struct {
	games      *stubGames
	settlement *stubSettlement
	events     *stubEvents
	primary    *stubProvider
	priGate    *stubGate
	fallback   *stubProvider
	fbGate     *stubGate
}

func newTickFixture(t *testing.T) *tickFixture {
	t.Helper()
	week := models.WeekRef{Season: 2025, Week: 12}
	game := models.Game{
		ID:       uuid.New(),
		Season:   week.Season,
		Week:     week.Week,
		HomeTeam: "Packers",
		AwayTeam: "Bears",
		Kickoff:  time.Date(2025, 11, 23, 13, 0, 0, 0, eastern),
	}
	return &tickFixture{
		games:      &stubGames{week: week, games: []models.Game{game}, finalized: make(map[uuid.UUID]bool)},
		settlement: &stubSettlement{},
		events:     &stubEvents{},
		primary:    &stubProvider{name: "primary"},
		priGate:    &stubGate{allow: true},
		fallback:   &stubProvider{name: "fallback"},
		fbGate:     &stubGate{allow: true},
	}
}

func (f *tickFixture) scheduler(t *testing.T) *Scheduler {
	t.Helper()
	s, err := NewScheduler(
		f.games,
		f.settlement,
		[]Source{
			{Provider: f.primary, Gate: f.priGate},
			{Provider: f.fallback, Gate: f.fbGate},
		},
		f.events,
		DefaultConfig(eastern),
		clockwork.NewFakeClock(),
	)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func finalScore(home, away string, h, a int) models.ScoreUpdate {
	return models.ScoreUpdate{HomeTeam: home, AwayTeam: away, HomeScore: h, AwayScore: a, Final: true}
}

func TestTickFinalizeTriggersSettlement(t *testing.T) {
	f := newTickFixture(t)
	f.primary.updates = []models.ScoreUpdate{finalScore("Packers", "Bears", 24, 17)}

	f.scheduler(t).Tick(context.Background())

	if f.priGate.recorded != 1 {
		t.Errorf("primary budget charged %d times, want 1", f.priGate.recorded)
	}
	if len(f.settlement.settled) != 1 {
		t.Fatalf("settle ran %d times, want 1", len(f.settlement.settled))
	}
	if len(f.events.finalized) != 1 || len(f.events.standings) != 1 {
		t.Errorf("events = %d finalized, %d standings, want 1 and 1",
			len(f.events.finalized), len(f.events.standings))
	}
}

func TestTickNoTransitionNoSettlement(t *testing.T) {
	f := newTickFixture(t)
	f.primary.updates = []models.ScoreUpdate{
		{HomeTeam: "Packers", AwayTeam: "Bears", HomeScore: 7, AwayScore: 3, Final: false},
	}

	f.scheduler(t).Tick(context.Background())

	if len(f.games.applied) != 1 {
		t.Fatalf("expected the in-progress score to be applied")
	}
	if len(f.settlement.settled) != 0 {
		t.Error("settlement must not run without a finalize transition")
	}
}

func TestTickSkipsWhenPrimaryBudgetExhausted(t *testing.T) {
	f := newTickFixture(t)
	f.priGate.allow = false
	f.fallback.updates = []models.ScoreUpdate{finalScore("Packers", "Bears", 24, 17)}

	f.scheduler(t).Tick(context.Background())

	if f.primary.calls != 0 {
		t.Error("primary must not be called past its budget")
	}
	if f.fallback.calls != 0 {
		t.Error("an exhausted primary budget skips the tick, it does not promote the fallback")
	}
}

func TestTickFallsBackWhenPrimaryHasNoData(t *testing.T) {
	f := newTickFixture(t)
	f.primary.updates = nil
	f.fallback.updates = []models.ScoreUpdate{finalScore("Packers", "Bears", 24, 17)}

	f.scheduler(t).Tick(context.Background())

	if f.primary.calls != 1 || f.fallback.calls != 1 {
		t.Errorf("calls = primary %d, fallback %d, want 1 and 1", f.primary.calls, f.fallback.calls)
	}
	// Both sources spent their own budget.
	if f.priGate.recorded != 1 || f.fbGate.recorded != 1 {
		t.Errorf("recorded = primary %d, fallback %d, want 1 and 1", f.priGate.recorded, f.fbGate.recorded)
	}
	if len(f.settlement.settled) != 1 {
		t.Error("fallback data should settle the week like primary data")
	}
}

func TestTickFallsBackOnPrimaryError(t *testing.T) {
	f := newTickFixture(t)
	f.primary.err = fmt.Errorf("connection refused")
	f.fallback.updates = []models.ScoreUpdate{finalScore("Packers", "Bears", 24, 17)}

	f.scheduler(t).Tick(context.Background())

	// A failed call still counts against the budget.
	if f.priGate.recorded != 1 {
		t.Errorf("primary budget charged %d times, want 1", f.priGate.recorded)
	}
	if f.fallback.calls != 1 {
		t.Error("fallback should cover a primary error")
	}
}

func TestTickIgnoresUnknownMatchup(t *testing.T) {
	f := newTickFixture(t)
	f.primary.updates = []models.ScoreUpdate{finalScore("Chiefs", "Raiders", 31, 13)}

	f.scheduler(t).Tick(context.Background())

	if len(f.games.applied) != 0 {
		t.Error("updates for unscheduled matchups must not be applied")
	}
	if len(f.settlement.settled) != 0 {
		t.Error("nothing finalized, nothing to settle")
	}
}

func TestTickMatchesTeamsCaseInsensitively(t *testing.T) {
	f := newTickFixture(t)
	f.primary.updates = []models.ScoreUpdate{finalScore(" packers ", "BEARS", 24, 17)}

	f.scheduler(t).Tick(context.Background())

	if len(f.games.applied) != 1 {
		t.Error("team label matching should ignore case and whitespace")
	}
}

func TestSchedulerLifecycle(t *testing.T) {
	f := newTickFixture(t)
	s := f.scheduler(t)
	ctx := context.Background()

	if s.Running() {
		t.Fatal("new scheduler must start stopped")
	}
	if err := s.Stop(); err == nil {
		t.Error("stopping a stopped scheduler must fail")
	}

	if err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if !s.Running() {
		t.Error("scheduler should report running after Start")
	}
	if err := s.Start(ctx); err == nil {
		t.Error("starting a running scheduler must fail")
	}

	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	if s.Running() {
		t.Error("scheduler should report stopped after Stop")
	}

	// A stopped scheduler can be started again.
	if err := s.Start(ctx); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
}

func TestConfigIntervalSelection(t *testing.T) {
	cfg := DefaultConfig(eastern)

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"sunday afternoon", time.Date(2025, 11, 23, 13, 30, 0, 0, eastern), cfg.ShortInterval},
		{"monday night", time.Date(2025, 11, 24, 20, 30, 0, 0, eastern), cfg.ShortInterval},
		{"thursday night", time.Date(2025, 11, 20, 21, 0, 0, 0, eastern), cfg.ShortInterval},
		{"tuesday morning", time.Date(2025, 11, 25, 9, 0, 0, 0, eastern), cfg.LongInterval},
		{"sunday before slate", time.Date(2025, 11, 23, 7, 0, 0, 0, eastern), cfg.LongInterval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.Interval(tt.now); got != tt.want {
				t.Errorf("Interval(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestConfigIntervalUsesConfiguredTimezone(t *testing.T) {
	cfg := DefaultConfig(eastern)
	// 18:00 UTC Sunday is 13:00 in New York: inside the active window even
	// though the UTC hour is not.
	now := time.Date(2025, 11, 23, 18, 0, 0, 0, time.UTC)
	if got := cfg.Interval(now); got != cfg.ShortInterval {
		t.Errorf("Interval = %v, want short interval for an active local hour", got)
	}
}

func TestNewSchedulerValidatesConfig(t *testing.T) {
	f := newTickFixture(t)
	cfg := DefaultConfig(eastern)
	cfg.ShortInterval = 0

	_, err := NewScheduler(f.games, f.settlement, []Source{{Provider: f.primary, Gate: f.priGate}}, nil, cfg, clockwork.NewFakeClock())
	if err == nil {
		t.Error("expected config validation error")
	}

	_, err = NewScheduler(f.games, f.settlement, nil, nil, DefaultConfig(eastern), clockwork.NewFakeClock())
	if err == nil {
		t.Error("expected error for missing sources")
	}
}
