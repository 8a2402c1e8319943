package clients

import (
	"context"
	"sort"

	"github.com/pickpool/pickpool/go/internal/models"
)

// ScoreboardProvider is the shape every external score source resolves to.
type ScoreboardProvider interface {
	Name() string
	FetchScoreboard(ctx context.Context, week models.WeekRef) ([]models.ScoreUpdate, error)
}

// SourceConfig holds configuration for one external source
type SourceConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    int    `json:"priority"` // Higher priority sources are consulted first
	Active      bool   `json:"active"`
}

// Source pairs a provider with its registry configuration.
type Source struct {
	Provider ScoreboardProvider
	Config   SourceConfig
}

// Registry holds the configured score sources in priority order.
type Registry struct {
	sources []Source
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a source. Inactive sources are kept but never returned by
// Active().
func (r *Registry) Register(provider ScoreboardProvider, config SourceConfig) {
	config.Name = provider.Name()
	r.sources = append(r.sources, Source{Provider: provider, Config: config})
	sort.SliceStable(r.sources, func(i, j int) bool {
		return r.sources[i].Config.Priority > r.sources[j].Config.Priority
	})
}

// Active returns the active sources, highest priority first.
func (r *Registry) Active() []Source {
	var active []Source
	for _, s := range r.sources {
		if s.Config.Active {
			active = append(active, s)
		}
	}
	return active
}

// Lookup returns the source registered under a name.
func (r *Registry) Lookup(name string) (Source, bool) {
	for _, s := range r.sources {
		if s.Config.Name == name {
			return s, true
		}
	}
	return Source{}, false
}
