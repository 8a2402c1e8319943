package sync

import (
	"fmt"
	"time"
)

// ActiveWindow is a recurring weekday/hour range during which games are
// likely in progress and polling should be frequent.
type ActiveWindow struct {
	Days      []time.Weekday
	StartHour int // inclusive
	EndHour   int // exclusive, 24 = midnight
}

func (w ActiveWindow) contains(t time.Time) bool {
	for _, day := range w.Days {
		if t.Weekday() == day && t.Hour() >= w.StartHour && t.Hour() < w.EndHour {
			return true
		}
	}
	return false
}

// Config drives the scheduler's polling cadence.
type Config struct {
	ShortInterval time.Duration
	LongInterval  time.Duration
	ActiveWindows []ActiveWindow
	Location      *time.Location
}

// DefaultConfig polls every 5 minutes during the usual NFL game slots and
// every 30 minutes otherwise.
func DefaultConfig(loc *time.Location) Config {
	return Config{
		ShortInterval: 5 * time.Minute,
		LongInterval:  30 * time.Minute,
		ActiveWindows: []ActiveWindow{
			{Days: []time.Weekday{time.Sunday}, StartHour: 9, EndHour: 24},
			{Days: []time.Weekday{time.Monday, time.Thursday}, StartHour: 19, EndHour: 24},
		},
		Location: loc,
	}
}

func (c Config) validate() error {
	if c.ShortInterval <= 0 || c.LongInterval <= 0 {
		return fmt.Errorf("poll intervals must be positive")
	}
	if c.Location == nil {
		return fmt.Errorf("location is required")
	}
	for _, w := range c.ActiveWindows {
		if w.StartHour < 0 || w.EndHour > 24 || w.StartHour >= w.EndHour {
			return fmt.Errorf("active window hours %d-%d out of range", w.StartHour, w.EndHour)
		}
	}
	return nil
}

// Interval returns the poll interval that applies at an instant. Evaluated
// fresh on every tick, never fixed at start time.
func (c Config) Interval(now time.Time) time.Duration {
	local := now.In(c.Location)
	for _, w := range c.ActiveWindows {
		if w.contains(local) {
			return c.ShortInterval
		}
	}
	return c.LongInterval
}
