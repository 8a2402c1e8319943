package settlement

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/pickpool/pickpool/go/internal/deadline"
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

func testWindowConfig() deadline.WindowConfig {
	return deadline.WindowConfig{
		Location:        eastern,
		IsolatedOffset:  5 * time.Minute,
		ClusteredOffset: 5 * time.Minute,
		ClusteredDays:   deadline.DefaultClusteredDays(),
	}
}

type fakeGames struct {
	games []models.Game
}

func (f *fakeGames) ListGamesByWeek(ctx context.Context, week models.WeekRef) ([]models.Game, error) {
	return f.games, nil
}

func (f *fakeGames) finalize(id uuid.UUID, home, away int) {
	for i := range f.games {
		if f.games[i].ID == id {
			f.games[i].HomeScore = &home
			f.games[i].AwayScore = &away
			f.games[i].Final = true
		}
	}
}

type fakePicks struct {
	picks     []models.Pick
	failGames map[uuid.UUID]bool
}

func (f *fakePicks) ListPicksByWeek(ctx context.Context, week models.WeekRef) ([]models.Pick, error) {
	return append([]models.Pick(nil), f.picks...), nil
}

func (f *fakePicks) ScoreGame(ctx context.Context, gameID uuid.UUID, winner models.Side) error {
	if f.failGames[gameID] {
		return fmt.Errorf("score update failed")
	}
	for i := range f.picks {
		if f.picks[i].GameID != gameID {
			continue
		}
		correct := winner != models.SideNone && f.picks[i].Selected == winner
		f.picks[i].Correct = &correct
	}
	return nil
}

type fakeUsers struct {
	users []models.User
}

func (f *fakeUsers) ListUsers(ctx context.Context) ([]models.User, error) {
	return f.users, nil
}

type fakeStandings struct {
	rows     []models.StandingsRow
	replaced int
}

func (f *fakeStandings) ReplaceWeek(ctx context.Context, week models.WeekRef, rows []models.StandingsRow) error {
	f.rows = append([]models.StandingsRow(nil), rows...)
	f.replaced++
	return nil
}

func (f *fakeStandings) ListStandingsByWeek(ctx context.Context, week models.WeekRef) ([]models.StandingsRow, error) {
	return append([]models.StandingsRow(nil), f.rows...), nil
}

type fixture struct {
	week      models.WeekRef
	games     *fakeGames
	picks     *fakePicks
	users     *fakeUsers
	standings *fakeStandings
	app       *App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		week:      models.WeekRef{Season: 2025, Week: 12},
		games:     &fakeGames{},
		picks:     &fakePicks{failGames: make(map[uuid.UUID]bool)},
		users:     &fakeUsers{},
		standings: &fakeStandings{},
	}
	f.app = NewApp(f.standings, f.games, f.picks, f.users, testWindowConfig(), clockwork.NewFakeClock())
	return f
}

func (f *fixture) addUser(username string) models.User {
	u := models.User{ID: uuid.New(), Username: username}
	f.users.users = append(f.users.users, u)
	return u
}

func (f *fixture) addGame(kickoff time.Time) models.Game {
	g := models.Game{
		ID:      uuid.New(),
		Season:  f.week.Season,
		Week:    f.week.Week,
		Kickoff: kickoff,
	}
	f.games.games = append(f.games.games, g)
	return g
}

func (f *fixture) addPick(user models.User, game models.Game, side models.Side, submittedAt time.Time, tiebreak ...int) {
	p := models.Pick{
		ID:          uuid.New(),
		UserID:      user.ID,
		GameID:      game.ID,
		Selected:    side,
		SubmittedAt: submittedAt,
	}
	if len(tiebreak) == 2 {
		p.TiebreakHome = &tiebreak[0]
		p.TiebreakAway = &tiebreak[1]
	}
	f.picks.picks = append(f.picks.picks, p)
}

func rowFor(t *testing.T, rows []models.StandingsRow, userID uuid.UUID) models.StandingsRow {
	t.Helper()
	for _, row := range rows {
		if row.UserID == userID {
			return row
		}
	}
	t.Fatalf("no standings row for user %s", userID)
	return models.StandingsRow{}
}

// Mirrors a week where two members split the early games and the clustered
// finale decides everything.
func TestSettleEndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.addUser("alice")
	bob := f.addUser("bob")

	submitted := time.Date(2025, 11, 19, 9, 0, 0, 0, eastern)
	thursday := f.addGame(time.Date(2025, 11, 20, 20, 15, 0, 0, eastern))
	saturday := f.addGame(time.Date(2025, 11, 22, 16, 30, 0, 0, eastern))
	sunday := f.addGame(time.Date(2025, 11, 23, 13, 0, 0, 0, eastern)) // clustered, marquee

	// Alice: right on Thursday and Saturday, wrong on Sunday.
	f.addPick(alice, thursday, models.SideHome, submitted)
	f.addPick(alice, saturday, models.SideHome, submitted)
	f.addPick(alice, sunday, models.SideHome, submitted, 24, 21)
	// Bob: right on Thursday and Sunday.
	f.addPick(bob, thursday, models.SideHome, submitted)
	f.addPick(bob, saturday, models.SideAway, submitted)
	f.addPick(bob, sunday, models.SideAway, submitted, 17, 24)

	f.games.finalize(thursday.ID, 24, 17)
	f.games.finalize(saturday.ID, 31, 28)

	rows, err := f.app.Settle(ctx, f.week)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	aliceRow := rowFor(t, rows, alice.ID)
	bobRow := rowFor(t, rows, bob.ID)
	if aliceRow.CorrectPicks != 2 || bobRow.CorrectPicks != 1 {
		t.Errorf("correct picks = %d vs %d, want 2 vs 1", aliceRow.CorrectPicks, bobRow.CorrectPicks)
	}
	if aliceRow.TotalPicks != 2 || bobRow.TotalPicks != 2 {
		t.Errorf("total picks must only count finalized games, got %d and %d", aliceRow.TotalPicks, bobRow.TotalPicks)
	}
	if aliceRow.Rank != 1 || bobRow.Rank != 2 {
		t.Errorf("ranks = %d vs %d, want 1 vs 2", aliceRow.Rank, bobRow.Rank)
	}
	if aliceRow.Winner || bobRow.Winner {
		t.Error("no winner may be declared while the Sunday game is pending")
	}

	// Sunday finalizes with the away side winning: both now sit on 2 correct
	// picks and Bob's marquee pick decides it.
	f.games.finalize(sunday.ID, 20, 23)

	rows, err = f.app.Settle(ctx, f.week)
	if err != nil {
		t.Fatal(err)
	}

	aliceRow = rowFor(t, rows, alice.ID)
	bobRow = rowFor(t, rows, bob.ID)
	if aliceRow.CorrectPicks != 2 || bobRow.CorrectPicks != 2 {
		t.Fatalf("correct picks = %d vs %d, want 2 vs 2", aliceRow.CorrectPicks, bobRow.CorrectPicks)
	}
	if !bobRow.PickedWinner || aliceRow.PickedWinner {
		t.Error("marquee winner flag should favor bob")
	}
	if bobRow.Rank != 1 || aliceRow.Rank != 2 {
		t.Errorf("ranks = bob %d, alice %d, want 1 and 2", bobRow.Rank, aliceRow.Rank)
	}
	if !bobRow.Winner {
		t.Error("bob should be the week's winner")
	}
	if aliceRow.Winner {
		t.Error("alice must not share the winner flag")
	}
}

func TestSettleIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.addUser("alice")
	bob := f.addUser("bob")

	submitted := time.Date(2025, 11, 19, 9, 0, 0, 0, eastern)
	sunday := f.addGame(time.Date(2025, 11, 23, 13, 0, 0, 0, eastern))
	f.addPick(alice, sunday, models.SideHome, submitted, 27, 20)
	f.addPick(bob, sunday, models.SideAway, submitted.Add(time.Minute), 20, 27)
	f.games.finalize(sunday.ID, 27, 20)

	first, err := f.app.Settle(ctx, f.week)
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.app.Settle(ctx, f.week)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Fatalf("row counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("row %d differs between runs:\n%+v\n%+v", i, first[i], second[i])
		}
	}
	if f.standings.replaced != 2 {
		t.Errorf("expected 2 atomic replaces, got %d", f.standings.replaced)
	}
}

func TestSettleTiedGameScoresEveryoneFalse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.addUser("alice")
	bob := f.addUser("bob")

	submitted := time.Date(2025, 11, 19, 9, 0, 0, 0, eastern)
	sunday := f.addGame(time.Date(2025, 11, 23, 13, 0, 0, 0, eastern))
	f.addPick(alice, sunday, models.SideHome, submitted)
	f.addPick(bob, sunday, models.SideAway, submitted)
	f.games.finalize(sunday.ID, 20, 20)

	rows, err := f.app.Settle(ctx, f.week)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		if row.CorrectPicks != 0 {
			t.Errorf("user %s has %d correct picks on a tied game, want 0", row.Username, row.CorrectPicks)
		}
	}
}

func TestSettleFullTupleTieMarksCoWinners(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	// Same username, same picks, same instants: nothing can separate them.
	a := f.addUser("pat")
	b := f.addUser("pat")

	submitted := time.Date(2025, 11, 19, 9, 0, 0, 0, eastern)
	sunday := f.addGame(time.Date(2025, 11, 23, 13, 0, 0, 0, eastern))
	f.addPick(a, sunday, models.SideHome, submitted, 27, 20)
	f.addPick(b, sunday, models.SideHome, submitted, 27, 20)
	f.games.finalize(sunday.ID, 27, 20)

	rows, err := f.app.Settle(ctx, f.week)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Rank != 1 {
			t.Errorf("rank = %d, want shared rank 1", row.Rank)
		}
		if !row.Winner {
			t.Error("a full-tuple tie at the top must mark every tied member a winner")
		}
	}
}

func TestSettleSkipsFailingGame(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.addUser("alice")

	submitted := time.Date(2025, 11, 19, 9, 0, 0, 0, eastern)
	thursday := f.addGame(time.Date(2025, 11, 20, 20, 15, 0, 0, eastern))
	sunday := f.addGame(time.Date(2025, 11, 23, 13, 0, 0, 0, eastern))
	f.addPick(alice, thursday, models.SideHome, submitted)
	f.addPick(alice, sunday, models.SideHome, submitted)
	f.games.finalize(thursday.ID, 24, 17)
	f.games.finalize(sunday.ID, 27, 20)
	f.picks.failGames[thursday.ID] = true

	rows, err := f.app.Settle(ctx, f.week)
	if err != nil {
		t.Fatalf("a per-game failure must not abort settlement: %v", err)
	}

	row := rowFor(t, rows, alice.ID)
	// The Sunday pick still scored even though the Thursday refresh failed.
	if row.CorrectPicks != 1 {
		t.Errorf("correct picks = %d, want 1 from the game that scored", row.CorrectPicks)
	}
}

func TestSettleEmptyWeek(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	rows, err := f.app.Settle(ctx, f.week)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows for an empty week, got %d", len(rows))
	}
	if f.standings.replaced != 1 {
		t.Error("an empty week still replaces the stored table")
	}
}
