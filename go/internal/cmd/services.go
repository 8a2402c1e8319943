package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/pickpool/pickpool/go/clients"
	"github.com/pickpool/pickpool/go/clients/sport_radar_client"
	"github.com/pickpool/pickpool/go/clients/sports_api_client"
	"github.com/pickpool/pickpool/go/internal/dbconfig"
	"github.com/pickpool/pickpool/go/internal/deadline"
	deadlinedb "github.com/pickpool/pickpool/go/internal/deadline/db"
	"github.com/pickpool/pickpool/go/internal/games"
	gamesdb "github.com/pickpool/pickpool/go/internal/games/db"
	"github.com/pickpool/pickpool/go/internal/gateway"
	"github.com/pickpool/pickpool/go/internal/outbox"
	outboxdb "github.com/pickpool/pickpool/go/internal/outbox/db"
	"github.com/pickpool/pickpool/go/internal/picks"
	picksdb "github.com/pickpool/pickpool/go/internal/picks/db"
	"github.com/pickpool/pickpool/go/internal/ratelimit"
	ratelimitdb "github.com/pickpool/pickpool/go/internal/ratelimit/db"
	"github.com/pickpool/pickpool/go/internal/settlement"
	settlementdb "github.com/pickpool/pickpool/go/internal/settlement/db"
	syncer "github.com/pickpool/pickpool/go/internal/sync"
	"github.com/pickpool/pickpool/go/internal/users"
	usersdb "github.com/pickpool/pickpool/go/internal/users/db"
)

type Services struct {
	Games      *games.App
	Picks      *picks.App
	Users      *users.App
	Deadline   *deadline.App
	Settlement *settlement.App
	Outbox     *outbox.App

	Scheduler      *syncer.Scheduler
	Gateway        *gateway.Service
	OutboxListener *outbox.Listener
}

func setupServices(database *sql.DB, dbConfig dbconfig.Config, config *Config, clock clockwork.Clock) (*Services, error) {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer

	loc, err := config.Location()
	if err != nil {
		return nil, err
	}
	windowCfg, err := config.WindowConfig(loc)
	if err != nil {
		return nil, err
	}

	// Games
	gamesQueries := gamesdb.New(database)
	gamesRepo := games.NewRepository(gamesQueries)
	gamesApp := games.NewApp(gamesRepo, clock)

	// Picks
	picksQueries := picksdb.New(database)
	picksRepo := picks.NewRepository(picksQueries)
	picksApp := picks.NewApp(picksRepo)

	// Users
	userQueries := usersdb.New(database)
	userRepo := users.NewRepository(userQueries)
	userApp := users.NewApp(userRepo)

	// Deadline windows and overrides
	deadlineQueries := deadlinedb.New(database)
	deadlineRepo := deadline.NewRepository(deadlineQueries, database)
	deadlineApp := deadline.NewApp(deadlineRepo, gamesApp, windowCfg, clock)

	// Settlement
	settlementQueries := settlementdb.New(database)
	settlementRepo := settlement.NewRepository(settlementQueries, database)
	settlementApp := settlement.NewApp(settlementRepo, gamesApp, picksApp, userApp, windowCfg, clock)

	// Outbox
	outboxQueries := outboxdb.New(database)
	outboxRepo := outbox.NewRepository(outboxQueries)
	outboxApp := outbox.NewApp(outboxRepo)

	// Score sync
	scheduler, err := setupScheduler(database, config, gamesApp, settlementApp, outboxApp, loc, clock)
	if err != nil {
		return nil, err
	}

	// Pool gateway
	gatewayConfig := gateway.DefaultConfig()
	gatewayConfig.JetStreamConfig.URL = config.NATS.URL
	stateProvider := gateway.NewPoolStateProvider(settlementApp, gamesApp)
	poolGateway, err := gateway.NewService(gatewayConfig, stateProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool gateway: %w", err)
	}

	// Outbox relay
	publisherConfig := outbox.DefaultJetStreamConfig()
	publisherConfig.URL = config.NATS.URL
	publisher, err := outbox.NewJetStreamPublisher(publisherConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create outbox publisher: %w", err)
	}

	listenerConfig := outbox.DefaultListenerConfig()
	listenerConfig.DatabaseURL = dbConfig.DSN()
	listener, err := outbox.NewListener(database, outbox.NewMetricPublisher(publisher, &outbox.NoOpMetricsCollector{}), listenerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create outbox listener: %w", err)
	}

	return &Services{
		Games:          gamesApp,
		Picks:          picksApp,
		Users:          userApp,
		Deadline:       deadlineApp,
		Settlement:     settlementApp,
		Outbox:         outboxApp,
		Scheduler:      scheduler,
		Gateway:        poolGateway,
		OutboxListener: listener,
	}, nil
}

// setupScheduler builds the provider registry and the poll loop. The primary
// and fallback providers carry independent persisted budgets.
func setupScheduler(database *sql.DB, config *Config, gamesApp *games.App, settlementApp *settlement.App, events syncer.EventSink, loc *time.Location, clock clockwork.Clock) (*syncer.Scheduler, error) {
	registry := clients.NewRegistry()

	sportsAPIKey := getEnv("SPORTS_API_KEY", "")
	if sportsAPIKey == "" {
		return nil, fmt.Errorf("SPORTS_API_KEY environment variable is required")
	}
	registry.Register(sports_api_client.NewSportsApiClient(sportsAPIKey), clients.SourceConfig{
		Description: "API-Sports NFL scoreboard",
		Priority:    100,
		Active:      true,
	})

	// The fallback is optional: without a key the pool runs single-source.
	if sportRadarKey := getEnv("SPORTRADAR_API_KEY", ""); sportRadarKey != "" {
		registry.Register(sport_radar_client.NewSportRadarClient(sportRadarKey), clients.SourceConfig{
			Description: "Sportradar NFL schedule",
			Priority:    50,
			Active:      true,
		})
	}

	clientTimeout, err := config.ClientTimeout()
	if err != nil {
		return nil, err
	}

	ratelimitQueries := ratelimitdb.New(database)
	budgets := map[string]SourceBudget{
		sports_api_client.SourceName:  config.Sources.Primary,
		sport_radar_client.SourceName: config.Sources.Fallback,
	}

	var sources []syncer.Source
	for _, source := range registry.Active() {
		if settable, ok := source.Provider.(interface{ SetTimeout(time.Duration) }); ok {
			settable.SetTimeout(clientTimeout)
		}

		limitCfg, err := budgets[source.Config.Name].RateLimitConfig("sync:" + source.Config.Name)
		if err != nil {
			return nil, err
		}
		gate := ratelimit.NewLimiter(ratelimitQueries, limitCfg, clock)

		sources = append(sources, syncer.Source{Provider: source.Provider, Gate: gate})
	}

	syncConfig, err := config.SyncConfig(loc)
	if err != nil {
		return nil, err
	}

	return syncer.NewScheduler(gamesApp, settlementApp, sources, events, syncConfig, clock)
}
