package sports_api_client

const (
	// Base URL
	BaseURL = "https://v1.american-football.api-sports.io"

	// API Endpoints
	GamesEndpoint = "/games"

	// League IDs
	NFLLeagueID = "1"

	// Headers
	RapidAPIKeyHeader  = "X-RapidAPI-Key"
	RapidAPIHostHeader = "X-RapidAPI-Host"
	RapidAPIHost       = "v1.american-football.api-sports.io"

	// Game status codes that mean the result is official
	StatusFinished         = "FT"
	StatusFinishedOvertime = "AOT"
)
