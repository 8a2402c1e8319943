package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pickpool/pickpool/go/internal/dbconfig"
)

// ScheduledGame mirrors the season schedule JSON snapshot
type ScheduledGame struct {
	Season   int       `json:"season"`
	Week     int       `json:"week"`
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	Kickoff  time.Time `json:"kickoff"`
}

func main() {
	path := "go/internal/assets/schedule.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// 1) Load the JSON snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read JSON: %v\n", err)
		os.Exit(1)
	}
	var schedule []ScheduledGame
	if err := json.Unmarshal(data, &schedule); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal JSON: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(context.Background(), cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Upsert and count. Re-running against a changed snapshot moves
	// kickoffs without touching scores or picks.
	var (
		total    = len(schedule)
		upserted int
		errs     int
	)

	for _, g := range schedule {
		_, err := pool.Exec(context.Background(), `
            INSERT INTO games (id, season, week, home_team, away_team, kickoff)
            VALUES ($1,$2,$3,$4,$5,$6)
            ON CONFLICT (season, week, home_team, away_team)
            DO UPDATE SET kickoff = EXCLUDED.kickoff, updated_at = now()
        `,
			uuid.New(), g.Season, g.Week, g.HomeTeam, g.AwayTeam, g.Kickoff,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error upserting game %s @ %s (%d/wk%d): %v\n",
				g.AwayTeam, g.HomeTeam, g.Season, g.Week, err)
			errs++
			continue
		}
		upserted++
	}

	// 4) Print summary
	fmt.Printf(
		"Schedule seed complete: %d total, %d upserted, %d errors\n",
		total, upserted, errs,
	)
}
