package deadline

import (
	"sort"
	"time"

	"github.com/pickpool/pickpool/go/internal/models"
)

// WindowConfig drives bucket classification and cutoff offsets. Weekdays are
// evaluated in Location, the pool's canonical timezone.
type WindowConfig struct {
	Location        *time.Location
	IsolatedOffset  time.Duration // cutoff lead before an isolated game's kickoff
	ClusteredOffset time.Duration // cutoff lead before the first clustered kickoff
	ClusteredDays   []time.Weekday
}

// DefaultClusteredDays covers the Sunday slate plus Monday night.
// Thursday, Friday and Saturday games stay isolated with their own cutoffs.
func DefaultClusteredDays() []time.Weekday {
	return []time.Weekday{time.Sunday, time.Monday}
}

func (c WindowConfig) clusteredDay(d time.Weekday) bool {
	for _, day := range c.ClusteredDays {
		if day == d {
			return true
		}
	}
	return false
}

// ComputeWindows derives every submission window for a week's games. Pure:
// same input always yields the same map, and weeks without games yield an
// empty map (callers treat missing windows as open, never as closed).
//
// Each game on an isolated weekday gets its own bucket cut off shortly before
// its kickoff. Every game on a clustered weekday shares one bucket anchored
// by the earliest clustered kickoff, so the Monday night game locks when the
// first Sunday game locks, not at its own kickoff.
func ComputeWindows(cfg WindowConfig, games []models.Game) map[BucketKey]Window {
	windows := make(map[BucketKey]Window)

	// Stable order so the clustered representative is deterministic even
	// when two games kick off at the exact same instant.
	sorted := make([]models.Game, len(games))
	copy(sorted, games)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Kickoff.Equal(sorted[j].Kickoff) {
			return sorted[i].Kickoff.Before(sorted[j].Kickoff)
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	for _, game := range sorted {
		weekday := game.Kickoff.In(cfg.Location).Weekday()
		if cfg.clusteredDay(weekday) {
			key := BucketKey{Kind: BucketClustered}
			if _, exists := windows[key]; !exists {
				windows[key] = Window{
					Key:            key,
					Representative: game,
					Cutoff:         game.Kickoff.Add(-cfg.ClusteredOffset),
				}
			}
			continue
		}

		key := BucketKey{Kind: BucketIsolated, GameID: game.ID}
		windows[key] = Window{
			Key:            key,
			Representative: game,
			Cutoff:         game.Kickoff.Add(-cfg.IsolatedOffset),
		}
	}

	return windows
}

// BucketFor returns the bucket key a single game belongs to.
func BucketFor(cfg WindowConfig, game models.Game) BucketKey {
	if cfg.clusteredDay(game.Kickoff.In(cfg.Location).Weekday()) {
		return BucketKey{Kind: BucketClustered}
	}
	return BucketKey{Kind: BucketIsolated, GameID: game.ID}
}
