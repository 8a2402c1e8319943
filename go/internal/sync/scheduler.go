package sync

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/pickpool/pickpool/go/internal/models"
)

// ScoreboardProvider fetches one week's current scores from an external
// source.
type ScoreboardProvider interface {
	Name() string
	FetchScoreboard(ctx context.Context, week models.WeekRef) ([]models.ScoreUpdate, error)
}

// Gate is the rate-limit budget guarding one provider.
type Gate interface {
	CanCall(ctx context.Context) (bool, error)
	RecordCall(ctx context.Context) error
}

// Source pairs a provider with its budget. Sources sharing a budget share a
// Gate.
type Source struct {
	Provider ScoreboardProvider
	Gate     Gate
}

// GamesApp defines what the scheduler needs from the games app
type GamesApp interface {
	CurrentWeek(ctx context.Context) (models.WeekRef, error)
	ListGamesByWeek(ctx context.Context, week models.WeekRef) ([]models.Game, error)
	ApplyScoreUpdate(ctx context.Context, gameID uuid.UUID, update models.ScoreUpdate) (finalized bool, err error)
}

// SettlementApp defines what the scheduler needs from the settlement engine
type SettlementApp interface {
	Settle(ctx context.Context, week models.WeekRef) ([]models.StandingsRow, error)
}

// EventSink receives domain events raised by a tick. Nil disables eventing.
type EventSink interface {
	GameFinalized(ctx context.Context, game models.Game) error
	StandingsUpdated(ctx context.Context, week models.WeekRef) error
}

// Scheduler is the background poll loop: on each tick it picks a cadence from
// the wall clock, fetches scores through the rate-limit gate, applies them,
// and settles the week when any game newly finalized.
type Scheduler struct {
	games      GamesApp
	settlement SettlementApp
	sources    []Source
	events     EventSink
	config     Config
	clock      clockwork.Clock

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(games GamesApp, settlement SettlementApp, sources []Source, events EventSink, cfg Config, clock clockwork.Clock) (*Scheduler, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid scheduler config: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("at least one score source is required")
	}
	return &Scheduler{
		games:      games,
		settlement: settlement,
		sources:    sources,
		events:     events,
		config:     cfg,
		clock:      clock,
	}, nil
}

// Start launches the poll loop. It fails if the scheduler is already running.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("sync scheduler already running")
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx, s.stopChan)

	log.Info().
		Dur("short_interval", s.config.ShortInterval).
		Dur("long_interval", s.config.LongInterval).
		Int("sources", len(s.sources)).
		Msg("sync scheduler started")

	return nil
}

// Stop signals the loop and waits for it to exit.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return fmt.Errorf("sync scheduler not running")
	}
	s.running = false
	stopChan := s.stopChan
	s.mu.Unlock()

	close(stopChan)
	s.wg.Wait()

	log.Info().Msg("sync scheduler stopped")
	return nil
}

// Running reports the lifecycle state.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) run(ctx context.Context, stopChan chan struct{}) {
	defer s.wg.Done()

	// Poll immediately on start
	s.Tick(ctx)

	for {
		timer := s.clock.NewTimer(s.config.Interval(s.clock.Now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-stopChan:
			timer.Stop()
			return
		case <-timer.Chan():
			s.Tick(ctx)
		}
	}
}

// Tick runs one poll cycle. Errors are logged, never returned: the next tick
// is the retry.
func (s *Scheduler) Tick(ctx context.Context) {
	week, err := s.games.CurrentWeek(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to determine current week")
		return
	}

	updates := s.fetchScoreboard(ctx, week)
	if len(updates) == 0 {
		return
	}

	finalized := s.applyUpdates(ctx, week, updates)
	if len(finalized) == 0 {
		return
	}

	if _, err := s.settlement.Settle(ctx, week); err != nil {
		log.Error().Err(err).Str("week", week.String()).Msg("settlement failed after finalize")
		return
	}

	if s.events == nil {
		return
	}
	for _, game := range finalized {
		if err := s.events.GameFinalized(ctx, game); err != nil {
			log.Warn().Err(err).Str("game_id", game.ID.String()).Msg("failed to record finalize event")
		}
	}
	if err := s.events.StandingsUpdated(ctx, week); err != nil {
		log.Warn().Err(err).Str("week", week.String()).Msg("failed to record standings event")
	}
}

// fetchScoreboard walks the sources in priority order. A denied primary
// budget skips the whole tick; a fallback is tried only when a source returns
// an error or no usable rows, and it spends its own budget.
func (s *Scheduler) fetchScoreboard(ctx context.Context, week models.WeekRef) []models.ScoreUpdate {
	for i, source := range s.sources {
		ok, err := source.Gate.CanCall(ctx)
		if err != nil {
			log.Error().Err(err).Str("source", source.Provider.Name()).Msg("rate limit check failed")
			return nil
		}
		if !ok {
			if i == 0 {
				log.Debug().Str("source", source.Provider.Name()).Msg("budget exhausted, skipping tick")
				return nil
			}
			continue
		}

		updates, fetchErr := source.Provider.FetchScoreboard(ctx, week)
		// The call happened regardless of its outcome; charge it now.
		if err := source.Gate.RecordCall(ctx); err != nil {
			log.Error().Err(err).Str("source", source.Provider.Name()).Msg("failed to record call")
		}
		if fetchErr != nil {
			log.Warn().Err(fetchErr).Str("source", source.Provider.Name()).Str("week", week.String()).
				Msg("scoreboard fetch failed, trying next source")
			continue
		}
		if len(updates) == 0 {
			log.Debug().Str("source", source.Provider.Name()).Str("week", week.String()).
				Msg("no usable rows, trying next source")
			continue
		}
		return updates
	}
	return nil
}

// applyUpdates writes fetched scores to the schedule and returns the games
// that newly finalized in this tick.
func (s *Scheduler) applyUpdates(ctx context.Context, week models.WeekRef, updates []models.ScoreUpdate) []models.Game {
	games, err := s.games.ListGamesByWeek(ctx, week)
	if err != nil {
		log.Error().Err(err).Str("week", week.String()).Msg("failed to load schedule for updates")
		return nil
	}

	byTeams := make(map[string]models.Game, len(games))
	for _, g := range games {
		byTeams[matchKey(g.HomeTeam, g.AwayTeam)] = g
	}

	var finalized []models.Game
	for _, update := range updates {
		game, ok := byTeams[matchKey(update.HomeTeam, update.AwayTeam)]
		if !ok {
			log.Warn().
				Str("home", update.HomeTeam).
				Str("away", update.AwayTeam).
				Str("week", week.String()).
				Msg("score update does not match any scheduled game")
			continue
		}

		transitioned, err := s.games.ApplyScoreUpdate(ctx, game.ID, update)
		if err != nil {
			log.Warn().Err(err).Str("game_id", game.ID.String()).Msg("failed to apply score update")
			continue
		}
		if transitioned {
			game.HomeScore = &update.HomeScore
			game.AwayScore = &update.AwayScore
			game.Final = true
			finalized = append(finalized, game)
			log.Info().
				Str("game_id", game.ID.String()).
				Str("home", game.HomeTeam).
				Str("away", game.AwayTeam).
				Int("home_score", update.HomeScore).
				Int("away_score", update.AwayScore).
				Msg("game finalized")
		}
	}

	return finalized
}

func matchKey(home, away string) string {
	return strings.ToLower(strings.TrimSpace(home)) + "|" + strings.ToLower(strings.TrimSpace(away))
}
