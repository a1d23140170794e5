package models

import "time"

type Team struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Sport     SportType `json:"sport" db:"sport"`
	CoachName string    `json:"coach_name" db:"coach_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Players []Player `json:"players,omitempty" db:"-"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}

// TeamRegistration links a team to a competition. Only confirmed
// registrations take part in fixture generation and standings.
type TeamRegistration struct {
	ID               int       `json:"id" db:"id"`
	CompetitionID    int       `json:"competition_id" db:"competition_id"`
	TeamID           int       `json:"team_id" db:"team_id"`
	IsConfirmed      bool      `json:"is_confirmed" db:"is_confirmed"`
	GroupName        *string   `json:"group_name,omitempty" db:"group_name"`
	RegistrationDate time.Time `json:"registration_date" db:"registration_date"`

	Team *Team `json:"team,omitempty" db:"-"`
}
