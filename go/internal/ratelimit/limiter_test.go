package ratelimit

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pickpool/pickpool/go/internal/ratelimit/db"
)

// fakeQueries keeps the call log in memory with the same semantics as the
// generated queries.
type fakeQueries struct {
	calls map[string][]time.Time
}

func newFakeQueries() *fakeQueries {
	return &fakeQueries{calls: make(map[string][]time.Time)}
}

func (f *fakeQueries) CountCalls(ctx context.Context, limiter string) (int64, error) {
	return int64(len(f.calls[limiter])), nil
}

func (f *fakeQueries) InsertCall(ctx context.Context, arg db.InsertCallParams) error {
	f.calls[arg.Limiter] = append(f.calls[arg.Limiter], arg.CalledAt)
	return nil
}

func (f *fakeQueries) OldestCall(ctx context.Context, limiter string) (time.Time, error) {
	entries := f.calls[limiter]
	if len(entries) == 0 {
		return time.Time{}, sql.ErrNoRows
	}
	sorted := append([]time.Time(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	return sorted[0], nil
}

func (f *fakeQueries) PruneCalls(ctx context.Context, arg db.PruneCallsParams) error {
	var kept []time.Time
	for _, at := range f.calls[arg.Limiter] {
		if !at.Before(arg.CalledAt) {
			kept = append(kept, at)
		}
	}
	f.calls[arg.Limiter] = kept
	return nil
}

func newTestLimiter(t *testing.T, maxCalls int) (*Limiter, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	limiter := NewLimiter(newFakeQueries(), Config{
		Name:     "primary",
		MaxCalls: maxCalls,
		Window:   time.Hour,
	}, clock)
	return limiter, clock
}

func TestLimiterExhaustsAndRecovers(t *testing.T) {
	ctx := context.Background()
	limiter, clock := newTestLimiter(t, 3)

	for i := 0; i < 3; i++ {
		ok, err := limiter.CanCall(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatalf("call %d denied with budget remaining", i+1)
		}
		if err := limiter.RecordCall(ctx); err != nil {
			t.Fatal(err)
		}
	}

	ok, err := limiter.CanCall(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("CanCall = true with budget exhausted")
	}

	clock.Advance(time.Hour + time.Second)

	ok, err = limiter.CanCall(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("CanCall = false after the window rolled past every call")
	}
	remaining, err := limiter.CallsRemaining(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if remaining != 3 {
		t.Errorf("CallsRemaining = %d, want full budget 3", remaining)
	}
}

func TestCallsRemainingNeverNegative(t *testing.T) {
	ctx := context.Background()
	limiter, _ := newTestLimiter(t, 2)

	// Record past the budget; remaining must floor at zero.
	for i := 0; i < 5; i++ {
		if err := limiter.RecordCall(ctx); err != nil {
			t.Fatal(err)
		}
	}

	remaining, err := limiter.CallsRemaining(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if remaining != 0 {
		t.Errorf("CallsRemaining = %d, want 0", remaining)
	}
}

func TestCallsExpireIndividually(t *testing.T) {
	ctx := context.Background()
	limiter, clock := newTestLimiter(t, 2)

	if err := limiter.RecordCall(ctx); err != nil {
		t.Fatal(err)
	}
	clock.Advance(30 * time.Minute)
	if err := limiter.RecordCall(ctx); err != nil {
		t.Fatal(err)
	}

	// 31 minutes later the first call has aged out, the second has not.
	clock.Advance(31 * time.Minute)

	remaining, err := limiter.CallsRemaining(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if remaining != 1 {
		t.Errorf("CallsRemaining = %d, want 1 after the oldest call expired", remaining)
	}
}

func TestNextAvailableAt(t *testing.T) {
	ctx := context.Background()
	limiter, clock := newTestLimiter(t, 2)

	// Under budget: no wait.
	at, err := limiter.NextAvailableAt(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if at != nil {
		t.Errorf("NextAvailableAt = %v, want nil with budget available", at)
	}

	first := clock.Now()
	if err := limiter.RecordCall(ctx); err != nil {
		t.Fatal(err)
	}
	clock.Advance(10 * time.Minute)
	if err := limiter.RecordCall(ctx); err != nil {
		t.Fatal(err)
	}

	at, err = limiter.NextAvailableAt(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if at == nil {
		t.Fatal("NextAvailableAt = nil with budget exhausted")
	}
	if want := first.Add(time.Hour); !at.Equal(want) {
		t.Errorf("NextAvailableAt = %v, want oldest call + window %v", at, want)
	}
}

func TestLimitersKeepIndependentBudgets(t *testing.T) {
	ctx := context.Background()
	queries := newFakeQueries()
	clock := clockwork.NewFakeClock()
	primary := NewLimiter(queries, Config{Name: "primary", MaxCalls: 1, Window: time.Hour}, clock)
	fallback := NewLimiter(queries, Config{Name: "fallback", MaxCalls: 1, Window: time.Hour}, clock)

	if err := primary.RecordCall(ctx); err != nil {
		t.Fatal(err)
	}

	ok, err := primary.CanCall(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("primary budget should be exhausted")
	}

	ok, err = fallback.CanCall(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("fallback budget should be untouched by primary calls")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{Name: "primary"}.withDefaults()
	if cfg.MaxCalls != DefaultMaxCalls {
		t.Errorf("MaxCalls = %d, want %d", cfg.MaxCalls, DefaultMaxCalls)
	}
	if cfg.Window != DefaultWindow {
		t.Errorf("Window = %v, want %v", cfg.Window, DefaultWindow)
	}
}
