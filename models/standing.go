package models

import "time"

// Standing is one row of a competition table. It is fully derived state:
// every field can be recomputed from the set of finished games, and a
// recompute replaces all rows of the competition at once.
type Standing struct {
	ID             int       `json:"id" db:"id"`
	CompetitionID  int       `json:"competition_id" db:"competition_id"`
	TeamID         int       `json:"team_id" db:"team_id"`
	GamesPlayed    int       `json:"games_played" db:"games_played"`
	Wins           int       `json:"wins" db:"wins"`
	Draws          int       `json:"draws" db:"draws"`
	Losses         int       `json:"losses" db:"losses"`
	GoalsFor       int       `json:"goals_for" db:"goals_for"`
	GoalsAgainst   int       `json:"goals_against" db:"goals_against"`
	GoalDifference int       `json:"goal_difference" db:"goal_difference"`
	SetsFor        int       `json:"sets_for" db:"sets_for"`
	SetsAgainst    int       `json:"sets_against" db:"sets_against"`
	Points         int       `json:"points" db:"points"`
	Position       int       `json:"position" db:"position"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}
