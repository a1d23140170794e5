package engine

import (
	"fmt"
	"sort"

	"github.com/sgce/sports-competition-system/models"
)

// ScoringRules holds the points awarded per game outcome.
type ScoringRules struct {
	Win  int
	Draw int
	Loss int
}

func DefaultScoringRules() ScoringRules {
	return ScoringRules{Win: 3, Draw: 1, Loss: 0}
}

// ComputeStandings rebuilds the full table of a competition from its
// finished games. It is pure and idempotent: same inputs, bit-identical
// output. Teams without a finished game keep an all-zero row.
//
// Rows are ordered by points, then goal difference, then goals for, all
// descending, with team id ascending as the final tie-break; positions are
// a strict 1-based total order, so exact ties get adjacent positions
// rather than a shared rank.
func ComputeStandings(teams []*models.Team, games []*models.Game, rules ScoringRules) ([]*models.Standing, error) {
	rows := make(map[int]*models.Standing, len(teams))
	for _, team := range teams {
		rows[team.ID] = &models.Standing{TeamID: team.ID}
	}

	for _, game := range games {
		if game.Status != models.GameFinished {
			continue
		}
		if !game.HasFinalScore() {
			return nil, fmt.Errorf("%w: game %d is finished without a final score", ErrDataConsistency, game.ID)
		}

		home, ok := rows[game.HomeTeamID]
		if !ok {
			return nil, fmt.Errorf("%w: game %d references unknown home team %d", ErrDataConsistency, game.ID, game.HomeTeamID)
		}
		away, ok := rows[game.AwayTeamID]
		if !ok {
			return nil, fmt.Errorf("%w: game %d references unknown away team %d", ErrDataConsistency, game.ID, game.AwayTeamID)
		}

		homeScore, awayScore := *game.HomeScore, *game.AwayScore
		if homeScore < 0 || awayScore < 0 {
			return nil, fmt.Errorf("%w: game %d has a negative score", ErrDataConsistency, game.ID)
		}

		home.GamesPlayed++
		away.GamesPlayed++

		home.GoalsFor += homeScore
		home.GoalsAgainst += awayScore
		away.GoalsFor += awayScore
		away.GoalsAgainst += homeScore

		home.SetsFor += game.HomeSets
		home.SetsAgainst += game.AwaySets
		away.SetsFor += game.AwaySets
		away.SetsAgainst += game.HomeSets

		switch {
		case homeScore > awayScore:
			home.Wins++
			home.Points += rules.Win
			away.Losses++
			away.Points += rules.Loss
		case homeScore < awayScore:
			away.Wins++
			away.Points += rules.Win
			home.Losses++
			home.Points += rules.Loss
		default:
			home.Draws++
			home.Points += rules.Draw
			away.Draws++
			away.Points += rules.Draw
		}
	}

	standings := make([]*models.Standing, 0, len(rows))
	for _, row := range rows {
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		standings = append(standings, row)
	}

	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamID < b.TeamID
	})

	for i, row := range standings {
		row.Position = i + 1
	}

	return standings, nil
}
