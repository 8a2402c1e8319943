package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pickpool/pickpool/go/internal/deadline"
	"github.com/pickpool/pickpool/go/internal/ratelimit"
	syncer "github.com/pickpool/pickpool/go/internal/sync"
)

// Config is the pool service configuration loaded from YAML. Durations are
// Go duration strings ("90m"), weekdays are English day names.
type Config struct {
	Timezone string `yaml:"timezone"`

	Deadline struct {
		IsolatedOffset  string   `yaml:"isolated_offset"`
		ClusteredOffset string   `yaml:"clustered_offset"`
		ClusteredDays   []string `yaml:"clustered_days"`
	} `yaml:"deadline"`

	Sync struct {
		ShortInterval string `yaml:"short_interval"`
		LongInterval  string `yaml:"long_interval"`
		ActiveWindows []struct {
			Days      []string `yaml:"days"`
			StartHour int      `yaml:"start_hour"`
			EndHour   int      `yaml:"end_hour"`
		} `yaml:"active_windows"`
	} `yaml:"sync"`

	Sources struct {
		ClientTimeout string       `yaml:"client_timeout"`
		Primary       SourceBudget `yaml:"primary"`
		Fallback      SourceBudget `yaml:"fallback"`
	} `yaml:"sources"`

	NATS struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`

	Gateway struct {
		Addr           string `yaml:"addr"`
		MaxConnections int    `yaml:"max_connections"`
	} `yaml:"gateway"`
}

// SourceBudget sizes one provider's rolling call budget.
type SourceBudget struct {
	MaxCalls int    `yaml:"max_calls"`
	Window   string `yaml:"window"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// Location resolves the pool's canonical timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return nil, fmt.Errorf("timezone is required")
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// WindowConfig builds the deadline window configuration.
func (c *Config) WindowConfig(loc *time.Location) (deadline.WindowConfig, error) {
	cfg := deadline.WindowConfig{
		Location:        loc,
		IsolatedOffset:  90 * time.Minute,
		ClusteredOffset: 90 * time.Minute,
		ClusteredDays:   deadline.DefaultClusteredDays(),
	}

	var err error
	if c.Deadline.IsolatedOffset != "" {
		if cfg.IsolatedOffset, err = time.ParseDuration(c.Deadline.IsolatedOffset); err != nil {
			return cfg, fmt.Errorf("invalid isolated_offset: %w", err)
		}
	}
	if c.Deadline.ClusteredOffset != "" {
		if cfg.ClusteredOffset, err = time.ParseDuration(c.Deadline.ClusteredOffset); err != nil {
			return cfg, fmt.Errorf("invalid clustered_offset: %w", err)
		}
	}
	if len(c.Deadline.ClusteredDays) > 0 {
		if cfg.ClusteredDays, err = parseWeekdays(c.Deadline.ClusteredDays); err != nil {
			return cfg, fmt.Errorf("invalid clustered_days: %w", err)
		}
	}
	return cfg, nil
}

// SyncConfig builds the scheduler cadence configuration.
func (c *Config) SyncConfig(loc *time.Location) (syncer.Config, error) {
	cfg := syncer.DefaultConfig(loc)

	var err error
	if c.Sync.ShortInterval != "" {
		if cfg.ShortInterval, err = time.ParseDuration(c.Sync.ShortInterval); err != nil {
			return cfg, fmt.Errorf("invalid short_interval: %w", err)
		}
	}
	if c.Sync.LongInterval != "" {
		if cfg.LongInterval, err = time.ParseDuration(c.Sync.LongInterval); err != nil {
			return cfg, fmt.Errorf("invalid long_interval: %w", err)
		}
	}
	if len(c.Sync.ActiveWindows) > 0 {
		windows := make([]syncer.ActiveWindow, 0, len(c.Sync.ActiveWindows))
		for _, w := range c.Sync.ActiveWindows {
			days, err := parseWeekdays(w.Days)
			if err != nil {
				return cfg, fmt.Errorf("invalid active window days: %w", err)
			}
			windows = append(windows, syncer.ActiveWindow{
				Days:      days,
				StartHour: w.StartHour,
				EndHour:   w.EndHour,
			})
		}
		cfg.ActiveWindows = windows
	}
	return cfg, nil
}

// RateLimitConfig builds one named budget from YAML, falling back to the
// limiter's defaults when unset.
func (b SourceBudget) RateLimitConfig(name string) (ratelimit.Config, error) {
	cfg := ratelimit.Config{Name: name, MaxCalls: b.MaxCalls}
	if b.Window != "" {
		window, err := time.ParseDuration(b.Window)
		if err != nil {
			return cfg, fmt.Errorf("invalid window for budget %s: %w", name, err)
		}
		cfg.Window = window
	}
	return cfg, nil
}

// ClientTimeout returns the HTTP timeout for score provider calls.
func (c *Config) ClientTimeout() (time.Duration, error) {
	if c.Sources.ClientTimeout == "" {
		return 30 * time.Second, nil
	}
	timeout, err := time.ParseDuration(c.Sources.ClientTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid client_timeout: %w", err)
	}
	return timeout, nil
}

func parseWeekdays(names []string) ([]time.Weekday, error) {
	byName := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}

	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		days = append(days, day)
	}
	return days, nil
}
