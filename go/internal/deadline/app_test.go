package deadline

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pickpool/pickpool/go/internal/models"
)

type fakeOverridesRepo struct {
	overrides []models.DeadlineOverride
}

func (f *fakeOverridesRepo) SetOverride(ctx context.Context, req SetOverrideRequest) (*models.DeadlineOverride, error) {
	for i := range f.overrides {
		o := &f.overrides[i]
		if o.Season == req.Week.Season && o.Week == req.Week.Week &&
			o.BucketKey == req.BucketKey.String() && uuidPtrEqual(o.UserID, req.UserID) {
			o.Active = false
		}
	}
	override := models.DeadlineOverride{
		ID:        uuid.New(),
		Season:    req.Week.Season,
		Week:      req.Week.Week,
		BucketKey: req.BucketKey.String(),
		UserID:    req.UserID,
		Cutoff:    req.Cutoff,
		Reason:    req.Reason,
		Author:    req.Author,
		Active:    true,
		CreatedAt: time.Now(),
	}
	f.overrides = append(f.overrides, override)
	return &override, nil
}

func (f *fakeOverridesRepo) GetActiveOverride(ctx context.Context, week models.WeekRef, key BucketKey, userID *uuid.UUID) (*models.DeadlineOverride, error) {
	for i := len(f.overrides) - 1; i >= 0; i-- {
		o := f.overrides[i]
		if o.Active && o.Season == week.Season && o.Week == week.Week &&
			o.BucketKey == key.String() && uuidPtrEqual(o.UserID, userID) {
			return &o, nil
		}
	}
	return nil, nil
}

func (f *fakeOverridesRepo) ListOverridesByWeek(ctx context.Context, week models.WeekRef) ([]models.DeadlineOverride, error) {
	var out []models.DeadlineOverride
	for _, o := range f.overrides {
		if o.Season == week.Season && o.Week == week.Week {
			out = append(out, o)
		}
	}
	return out, nil
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type fakeGamesApp struct {
	games []models.Game
}

func (f *fakeGamesApp) ListGamesByWeek(ctx context.Context, week models.WeekRef) ([]models.Game, error) {
	return f.games, nil
}

func TestEffectiveCutoffResolutionOrder(t *testing.T) {
	ctx := context.Background()
	repo := &fakeOverridesRepo{}
	app := NewApp(repo, &fakeGamesApp{}, testConfig(), clockwork.NewFakeClock())

	week := models.WeekRef{Season: 2025, Week: 12}
	key := BucketKey{Kind: BucketClustered}
	userID := uuid.New()
	defaultCutoff := time.Date(2025, 11, 23, 12, 55, 0, 0, eastern)

	// No overrides: the computed default applies.
	got, err := app.EffectiveCutoff(ctx, week, key, userID, defaultCutoff)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(defaultCutoff) {
		t.Errorf("cutoff = %v, want default %v", got, defaultCutoff)
	}

	// Global override beats the default.
	globalCutoff := defaultCutoff.Add(time.Hour)
	if _, err := app.SetOverride(ctx, SetOverrideRequest{
		Week: week, BucketKey: key, Cutoff: globalCutoff,
		Reason: "venue change", Author: "commissioner",
	}); err != nil {
		t.Fatal(err)
	}
	got, err = app.EffectiveCutoff(ctx, week, key, userID, defaultCutoff)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(globalCutoff) {
		t.Errorf("cutoff = %v, want global override %v", got, globalCutoff)
	}

	// User-scoped override beats the global one.
	userCutoff := defaultCutoff.Add(2 * time.Hour)
	if _, err := app.SetOverride(ctx, SetOverrideRequest{
		Week: week, BucketKey: key, UserID: &userID, Cutoff: userCutoff,
		Reason: "travel exception", Author: "commissioner",
	}); err != nil {
		t.Fatal(err)
	}
	got, err = app.EffectiveCutoff(ctx, week, key, userID, defaultCutoff)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(userCutoff) {
		t.Errorf("cutoff = %v, want user override %v", got, userCutoff)
	}

	// Other members still see the global override.
	got, err = app.EffectiveCutoff(ctx, week, key, uuid.New(), defaultCutoff)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(globalCutoff) {
		t.Errorf("cutoff for other member = %v, want global override %v", got, globalCutoff)
	}
}

func TestSetOverrideSupersedesPrior(t *testing.T) {
	ctx := context.Background()
	repo := &fakeOverridesRepo{}
	app := NewApp(repo, &fakeGamesApp{}, testConfig(), clockwork.NewFakeClock())

	week := models.WeekRef{Season: 2025, Week: 12}
	key := BucketKey{Kind: BucketClustered}

	first := time.Date(2025, 11, 23, 14, 0, 0, 0, eastern)
	second := first.Add(time.Hour)
	for _, cutoff := range []time.Time{first, second} {
		if _, err := app.SetOverride(ctx, SetOverrideRequest{
			Week: week, BucketKey: key, Cutoff: cutoff,
			Reason: "weather delay", Author: "commissioner",
		}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := app.EffectiveCutoff(ctx, week, key, uuid.New(), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(second) {
		t.Errorf("cutoff = %v, want latest override %v", got, second)
	}

	history, err := app.ListOverrides(ctx, week)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 {
		t.Fatalf("expected both overrides in history, got %d", len(history))
	}
	if history[0].Active {
		t.Error("superseded override should be inactive")
	}
	if !history[1].Active {
		t.Error("latest override should be active")
	}
}

func TestSetOverrideValidation(t *testing.T) {
	ctx := context.Background()
	app := NewApp(&fakeOverridesRepo{}, &fakeGamesApp{}, testConfig(), clockwork.NewFakeClock())
	week := models.WeekRef{Season: 2025, Week: 12}
	key := BucketKey{Kind: BucketClustered}
	cutoff := time.Date(2025, 11, 23, 14, 0, 0, 0, eastern)

	tests := []struct {
		name string
		req  SetOverrideRequest
	}{
		{"missing cutoff", SetOverrideRequest{Week: week, BucketKey: key, Reason: "r", Author: "a"}},
		{"missing reason", SetOverrideRequest{Week: week, BucketKey: key, Cutoff: cutoff, Author: "a"}},
		{"missing author", SetOverrideRequest{Week: week, BucketKey: key, Cutoff: cutoff, Reason: "r"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := app.SetOverride(ctx, tt.req); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSubmissionStatusFailsOpenWithoutSchedule(t *testing.T) {
	ctx := context.Background()
	app := NewApp(&fakeOverridesRepo{}, &fakeGamesApp{}, testConfig(), clockwork.NewFakeClock())

	status, err := app.SubmissionStatus(ctx, models.WeekRef{Season: 2025, Week: 12}, uuid.New(), uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusOpen {
		t.Errorf("status = %s, want open when no games are loaded", status)
	}
}

func TestSubmissionStatusRespectsOverride(t *testing.T) {
	ctx := context.Background()
	week := models.WeekRef{Season: 2025, Week: 12}
	sunday := models.Game{
		ID:      uuid.New(),
		Season:  week.Season,
		Week:    week.Week,
		Kickoff: time.Date(2025, 11, 23, 13, 0, 0, 0, eastern),
	}
	repo := &fakeOverridesRepo{}
	games := &fakeGamesApp{games: []models.Game{sunday}}

	// Clock sits past the computed cutoff but before the override.
	clock := clockwork.NewFakeClockAt(time.Date(2025, 11, 23, 13, 30, 0, 0, eastern))
	app := NewApp(repo, games, testConfig(), clock)

	userID := uuid.New()
	status, err := app.SubmissionStatus(ctx, week, sunday.ID, userID)
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusClosed {
		t.Fatalf("status = %s, want closed past the computed cutoff", status)
	}

	if _, err := app.SetOverride(ctx, SetOverrideRequest{
		Week:      week,
		BucketKey: BucketKey{Kind: BucketClustered},
		UserID:    &userID,
		Cutoff:    time.Date(2025, 11, 23, 16, 0, 0, 0, eastern),
		Reason:    "submitted by phone, entering on their behalf",
		Author:    "commissioner",
	}); err != nil {
		t.Fatal(err)
	}

	status, err = app.SubmissionStatus(ctx, week, sunday.ID, userID)
	if err != nil {
		t.Fatal(err)
	}
	if status == StatusClosed {
		t.Error("override should keep the window open for the excepted member")
	}

	// Everyone else stays closed.
	status, err = app.SubmissionStatus(ctx, week, sunday.ID, uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusClosed {
		t.Errorf("status for other member = %s, want closed", status)
	}
}
