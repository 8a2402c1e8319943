package sports_api_client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pickpool/pickpool/go/clients"
	"github.com/pickpool/pickpool/go/internal/models"
)

const SourceName = "sportsapi"

type SportsApiClient struct {
	*clients.BaseClient
}

func NewSportsApiClient(apiKey string) *SportsApiClient {
	client := &SportsApiClient{
		BaseClient: clients.NewBaseClient(BaseURL),
	}

	client.SetHeader(RapidAPIKeyHeader, apiKey)
	client.SetHeader(RapidAPIHostHeader, RapidAPIHost)

	return client
}

func (c *SportsApiClient) Name() string {
	return SourceName
}

type gameStatus struct {
	Short string `json:"short"`
	Long  string `json:"long"`
}

type gameTeam struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type gameScore struct {
	Total *int `json:"total"`
}

type gameEntry struct {
	Game struct {
		ID     int        `json:"id"`
		Week   string     `json:"week"`
		Status gameStatus `json:"status"`
	} `json:"game"`
	Teams struct {
		Home gameTeam `json:"home"`
		Away gameTeam `json:"away"`
	} `json:"teams"`
	Scores struct {
		Home gameScore `json:"home"`
		Away gameScore `json:"away"`
	} `json:"scores"`
}

type gamesResponse struct {
	Get        string                 `json:"get"`
	Parameters map[string]interface{} `json:"parameters"`
	Errors     interface{}            `json:"errors"`
	Results    int                    `json:"results"`
	Response   []gameEntry            `json:"response"`
}

// FetchScoreboard returns the provider's current view of one week. Games the
// provider has no score for yet are omitted.
func (c *SportsApiClient) FetchScoreboard(ctx context.Context, week models.WeekRef) ([]models.ScoreUpdate, error) {
	endpoint := fmt.Sprintf("%s?league=%s&season=%d&week=%d", GamesEndpoint, NFLLeagueID, week.Season, week.Week)
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}

	var response gamesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	if response.Errors != nil {
		if errMap, ok := response.Errors.(map[string]interface{}); ok && len(errMap) > 0 {
			return nil, fmt.Errorf("API returned errors: %v", response.Errors)
		}
	}

	var updates []models.ScoreUpdate
	for _, entry := range response.Response {
		if entry.Scores.Home.Total == nil || entry.Scores.Away.Total == nil {
			continue
		}
		updates = append(updates, models.ScoreUpdate{
			HomeTeam:  entry.Teams.Home.Name,
			AwayTeam:  entry.Teams.Away.Name,
			HomeScore: *entry.Scores.Home.Total,
			AwayScore: *entry.Scores.Away.Total,
			Final:     entry.Game.Status.Short == StatusFinished || entry.Game.Status.Short == StatusFinishedOvertime,
		})
	}

	return updates, nil
}
