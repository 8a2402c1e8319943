package settlement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/pickpool/pickpool/go/internal/deadline"
	"github.com/pickpool/pickpool/go/internal/models"
)

// GamesApp defines what the engine needs from the games app
type GamesApp interface {
	ListGamesByWeek(ctx context.Context, week models.WeekRef) ([]models.Game, error)
}

// PicksApp defines what the engine needs from the picks app
type PicksApp interface {
	ListPicksByWeek(ctx context.Context, week models.WeekRef) ([]models.Pick, error)
	ScoreGame(ctx context.Context, gameID uuid.UUID, winner models.Side) error
}

// UsersApp defines what the engine needs from the users app
type UsersApp interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// StandingsRepository defines what the engine needs from the repository
type StandingsRepository interface {
	ReplaceWeek(ctx context.Context, week models.WeekRef, rows []models.StandingsRow) error
	ListStandingsByWeek(ctx context.Context, week models.WeekRef) ([]models.StandingsRow, error)
}

// App is the settlement engine. Settle recomputes a week's standings from
// scratch on every run; nothing is patched incrementally.
type App struct {
	standings StandingsRepository
	games     GamesApp
	picks     PicksApp
	users     UsersApp
	windowCfg deadline.WindowConfig
	clock     clockwork.Clock
}

// NewApp creates a new settlement App
func NewApp(standings StandingsRepository, games GamesApp, picks PicksApp, users UsersApp, windowCfg deadline.WindowConfig, clock clockwork.Clock) *App {
	return &App{
		standings: standings,
		games:     games,
		picks:     picks,
		users:     users,
		windowCfg: windowCfg,
		clock:     clock,
	}
}

// Settle refreshes pick correctness for a week, recomputes the full ranked
// standings, and atomically replaces the stored rows. It returns the rows it
// stored.
func (a *App) Settle(ctx context.Context, week models.WeekRef) ([]models.StandingsRow, error) {
	games, err := a.games.ListGamesByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load games for settlement: %w", err)
	}

	// Correctness refresh. A failure on one game is logged and skipped so a
	// bad row cannot block settlement of the rest of the week.
	for _, game := range games {
		if !game.Final {
			continue
		}
		if err := a.picks.ScoreGame(ctx, game.ID, game.WinningSide()); err != nil {
			log.Warn().Err(err).
				Str("game_id", game.ID.String()).
				Str("week", week.String()).
				Msg("skipping game during correctness refresh")
		}
	}

	picks, err := a.picks.ListPicksByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load picks for settlement: %w", err)
	}
	users, err := a.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users for settlement: %w", err)
	}

	rows := a.computeRows(week, games, picks, users)

	if err := a.standings.ReplaceWeek(ctx, week, rows); err != nil {
		return nil, fmt.Errorf("failed to replace standings: %w", err)
	}

	log.Info().
		Str("week", week.String()).
		Int("rows", len(rows)).
		Bool("complete", weekComplete(games)).
		Msg("settled standings")

	return rows, nil
}

// Standings returns the stored standings for a week.
func (a *App) Standings(ctx context.Context, week models.WeekRef) ([]models.StandingsRow, error) {
	return a.standings.ListStandingsByWeek(ctx, week)
}

func (a *App) computeRows(week models.WeekRef, games []models.Game, picks []models.Pick, users []models.User) []models.StandingsRow {
	gameByID := make(map[uuid.UUID]models.Game, len(games))
	for _, g := range games {
		gameByID[g.ID] = g
	}
	usernames := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	marquee := marqueeGame(a.windowCfg, games)
	now := a.clock.Now()

	type tally struct {
		total, correct int
		firstPickAt    time.Time
		marqueePick    *models.Pick
	}
	tallies := make(map[uuid.UUID]*tally)

	for _, pick := range picks {
		t := tallies[pick.UserID]
		if t == nil {
			t = &tally{firstPickAt: pick.SubmittedAt}
			tallies[pick.UserID] = t
		}
		if pick.SubmittedAt.Before(t.firstPickAt) {
			t.firstPickAt = pick.SubmittedAt
		}

		// Only finalized games count toward either side of the record.
		if game, ok := gameByID[pick.GameID]; ok && game.Final {
			t.total++
			if pick.Correct != nil && *pick.Correct {
				t.correct++
			}
		}

		if marquee != nil && pick.GameID == marquee.ID {
			p := pick
			t.marqueePick = &p
		}
	}

	rows := make([]models.StandingsRow, 0, len(tallies))
	for userID, t := range tallies {
		pickedWinner, totalDiff, winnerDiff, loserDiff := tiebreakFields(marquee, t.marqueePick)
		rows = append(rows, models.StandingsRow{
			UserID:       userID,
			Username:     usernames[userID],
			Season:       week.Season,
			Week:         week.Week,
			TotalPicks:   t.total,
			CorrectPicks: t.correct,
			PickedWinner: pickedWinner,
			TotalDiff:    totalDiff,
			WinnerDiff:   winnerDiff,
			LoserDiff:    loserDiff,
			FirstPickAt:  t.firstPickAt,
			ComputedAt:   now,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return lessRow(rows[i], rows[j]) })

	complete := weekComplete(games)
	for i := range rows {
		if i > 0 && rowsTied(rows[i], rows[i-1]) {
			rows[i].Rank = rows[i-1].Rank
		} else {
			rows[i].Rank = i + 1
		}
		// A week with any pending game never declares a winner, however
		// large the leader's margin.
		rows[i].Winner = complete && rows[i].Rank == 1
	}

	return rows
}

func weekComplete(games []models.Game) bool {
	if len(games) == 0 {
		return false
	}
	for _, g := range games {
		if !g.Final {
			return false
		}
	}
	return true
}

// marqueeGame picks the tiebreak anchor for a week: the clustered-bucket
// representative, or the latest kickoff when the week has no clustered games.
func marqueeGame(cfg deadline.WindowConfig, games []models.Game) *models.Game {
	windows := deadline.ComputeWindows(cfg, games)
	if w, ok := windows[deadline.BucketKey{Kind: deadline.BucketClustered}]; ok {
		g := w.Representative
		return &g
	}

	var latest *models.Game
	for i := range games {
		if latest == nil || games[i].Kickoff.After(latest.Kickoff) {
			latest = &games[i]
		}
	}
	return latest
}
