package sport_radar_client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pickpool/pickpool/go/clients"
	"github.com/pickpool/pickpool/go/internal/models"
)

const SourceName = "sportradar"

type SportRadarClient struct {
	*clients.BaseClient
	apiKey string
}

func NewSportRadarClient(apiKey string) *SportRadarClient {
	client := &SportRadarClient{
		BaseClient: clients.NewBaseClient(BaseURL),
		apiKey:     apiKey,
	}

	client.SetHeader(JsonHeader, JsonContentType)

	return client
}

func (c *SportRadarClient) Name() string {
	return SourceName
}

// Get overrides the base Get method to add API key query parameter
func (c *SportRadarClient) Get(ctx context.Context, endpoint string) ([]byte, error) {
	separator := "?"
	if strings.Contains(endpoint, "?") {
		separator = "&"
	}
	endpointWithKey := fmt.Sprintf("%s%s%s=%s", endpoint, separator, APIKeyParam, c.apiKey)

	return c.BaseClient.Get(ctx, endpointWithKey)
}

type scheduleTeam struct {
	Name  string `json:"name"`
	Alias string `json:"alias"`
}

type scheduleScoring struct {
	HomePoints *int `json:"home_points"`
	AwayPoints *int `json:"away_points"`
}

type scheduleGame struct {
	ID      string          `json:"id"`
	Status  string          `json:"status"`
	Home    scheduleTeam    `json:"home"`
	Away    scheduleTeam    `json:"away"`
	Scoring scheduleScoring `json:"scoring"`
}

type weekSchedule struct {
	Week struct {
		Sequence int            `json:"sequence"`
		Games    []scheduleGame `json:"games"`
	} `json:"week"`
}

// FetchScoreboard returns the provider's current view of one week. Games the
// provider has no score for yet are omitted.
func (c *SportRadarClient) FetchScoreboard(ctx context.Context, week models.WeekRef) ([]models.ScoreUpdate, error) {
	endpoint := fmt.Sprintf(ScheduleEndpointFormat, week.Season, week.Week)
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get week schedule: %w", err)
	}

	var schedule weekSchedule
	if err := json.Unmarshal(body, &schedule); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	var updates []models.ScoreUpdate
	for _, game := range schedule.Week.Games {
		if game.Scoring.HomePoints == nil || game.Scoring.AwayPoints == nil {
			continue
		}
		updates = append(updates, models.ScoreUpdate{
			HomeTeam:  game.Home.Name,
			AwayTeam:  game.Away.Name,
			HomeScore: *game.Scoring.HomePoints,
			AwayScore: *game.Scoring.AwayPoints,
			Final:     game.Status == StatusClosed,
		})
	}

	return updates, nil
}
