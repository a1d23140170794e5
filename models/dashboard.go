package models

type DashboardStats struct {
	CompetitionsTotal   int `json:"competitions_total"`
	OngoingCompetitions int `json:"ongoing_competitions"`
	TeamsTotal          int `json:"teams_total"`
	GamesTotal          int `json:"games_total"`

	NextGames   []*Game `json:"next_games"`
	RecentGames []*Game `json:"recent_games"`
}
