package models

// ScoreUpdate is the provider-agnostic shape every external score source
// resolves to. Games are matched to schedule rows by team labels within the
// polled week.
type ScoreUpdate struct {
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Final     bool   `json:"final"`
}
