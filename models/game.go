package models

import "time"

type GameStatus string

const (
	GameScheduled GameStatus = "scheduled"
	GameOngoing   GameStatus = "ongoing"
	GameFinished  GameStatus = "finished"
	GamePostponed GameStatus = "postponed"
	GameCancelled GameStatus = "cancelled"
)

type Game struct {
	ID            int        `json:"id" db:"id"`
	CompetitionID int        `json:"competition_id" db:"competition_id"`
	HomeTeamID    int        `json:"home_team_id" db:"home_team_id"`
	AwayTeamID    int        `json:"away_team_id" db:"away_team_id"`
	VenueID       *int       `json:"venue_id,omitempty" db:"venue_id"`
	GameDate      *time.Time `json:"game_date,omitempty" db:"game_date"`
	RoundNumber   int        `json:"round_number" db:"round_number"`
	Phase         string     `json:"phase" db:"phase"`
	Status        GameStatus `json:"status" db:"status"`
	HomeScore     *int       `json:"home_score,omitempty" db:"home_score"`
	AwayScore     *int       `json:"away_score,omitempty" db:"away_score"`
	HomeSets      int        `json:"home_sets" db:"home_sets"`
	AwaySets      int        `json:"away_sets" db:"away_sets"`
	Observations  string     `json:"observations" db:"observations"`
	RefereeName   string     `json:"referee_name" db:"referee_name"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`

	HomeTeam *Team `json:"home_team,omitempty" db:"-"`
	AwayTeam *Team `json:"away_team,omitempty" db:"-"`
}

// HasFinalScore reports whether both scores were recorded. A game only
// counts towards standings when it is finished and has a final score.
func (g *Game) HasFinalScore() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}
