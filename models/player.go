package models

import "time"

type Player struct {
	ID           int        `json:"id" db:"id"`
	TeamID       int        `json:"team_id" db:"team_id"`
	FullName     string     `json:"full_name" db:"full_name"`
	Position     string     `json:"position" db:"position"`
	ShirtNumber  int        `json:"shirt_number" db:"shirt_number"`
	BirthDate    *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}
