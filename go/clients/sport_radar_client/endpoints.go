package sport_radar_client

const (
	// Base URL - SportRadar uses trial access level by default
	BaseURL = "https://api.sportradar.com/nfl/official/trial/v7/en"

	// Paths
	ScheduleEndpointFormat = "/games/%d/REG/%02d/schedule.json"

	// Headers - SportRadar uses api_key query parameter, not header
	APIKeyParam     = "api_key"
	JsonHeader      = "accept"
	JsonContentType = "application/json"

	// Game status that means the result is official
	StatusClosed = "closed"
)
