package models

import "time"

type CardType string

const (
	CardYellow CardType = "yellow_card"
	CardRed    CardType = "red_card"
)

func (c CardType) Valid() bool {
	return c == CardYellow || c == CardRed
}

// DisciplinaryRecord accumulates the cards of one athlete in one
// competition. Suspended latches once a threshold is reached and stays set
// until explicitly cleared.
type DisciplinaryRecord struct {
	ID            int       `json:"id" db:"id"`
	CompetitionID int       `json:"competition_id" db:"competition_id"`
	PlayerID      int       `json:"player_id" db:"player_id"`
	YellowCards   int       `json:"yellow_cards" db:"yellow_cards"`
	RedCards      int       `json:"red_cards" db:"red_cards"`
	Suspended     bool      `json:"suspended" db:"suspended"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	Player *Player `json:"player,omitempty" db:"-"`
}
