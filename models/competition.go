package models

import "time"

type CompetitionFormat string

const (
	FormatElimination    CompetitionFormat = "elimination"
	FormatBestOfThree    CompetitionFormat = "best_of_three"
	FormatSwiss          CompetitionFormat = "swiss"
	FormatGroupsPlayoffs CompetitionFormat = "groups_playoffs"
	FormatRoundRobin     CompetitionFormat = "round_robin"
	FormatOther          CompetitionFormat = "other"
)

func (f CompetitionFormat) Valid() bool {
	switch f {
	case FormatElimination, FormatBestOfThree, FormatSwiss,
		FormatGroupsPlayoffs, FormatRoundRobin, FormatOther:
		return true
	}
	return false
}

type CompetitionStatus string

const (
	CompetitionPlanning  CompetitionStatus = "planning"
	CompetitionOngoing   CompetitionStatus = "ongoing"
	CompetitionFinished  CompetitionStatus = "finished"
	CompetitionCancelled CompetitionStatus = "cancelled"
)

// MaxCompetitionTeams bounds the size of a competition.
const MaxCompetitionTeams = 64

type Competition struct {
	ID        int               `json:"id" db:"id"`
	Name      string            `json:"name" db:"name"`
	Sport     SportType         `json:"sport" db:"sport"`
	Format    CompetitionFormat `json:"format" db:"format"`
	Status    CompetitionStatus `json:"status" db:"status"`
	MaxTeams  int               `json:"max_teams" db:"max_teams"`
	StartDate *time.Time        `json:"start_date,omitempty" db:"start_date"`
	EndDate   *time.Time        `json:"end_date,omitempty" db:"end_date"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}

// CanTransitionTo validates the competition status state machine. The format
// of a competition is frozen once it leaves planning.
func (c *Competition) CanTransitionTo(next CompetitionStatus) bool {
	switch c.Status {
	case CompetitionPlanning:
		return next == CompetitionOngoing || next == CompetitionCancelled
	case CompetitionOngoing:
		return next == CompetitionFinished || next == CompetitionCancelled
	}
	return false
}

// SuggestFormat proposes a competition format from the number of teams.
func SuggestFormat(numTeams int) CompetitionFormat {
	switch {
	case numTeams >= 2 && numTeams <= 4:
		return FormatElimination
	case numTeams >= 5 && numTeams <= 8:
		return FormatRoundRobin
	case numTeams >= 9 && numTeams <= 16:
		return FormatGroupsPlayoffs
	case numTeams >= 17:
		return FormatSwiss
	}
	return FormatRoundRobin
}
