package engine

import (
	"context"

	"github.com/sgce/sports-competition-system/models"
)

const phaseSingleRound = "Fase Única"

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() FixtureGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateFixtures emits one game per unordered pair of teams: the earlier
// team in the input order plays at home. Emission follows the nested
// iteration order (outer index ascending, inner index ascending), which
// fixes the fixture list deterministically for a given team order and
// yields exactly n·(n−1)/2 games.
func (g *RoundRobinGenerator) GenerateFixtures(ctx context.Context, params GenerateFixturesParams) (*FixtureList, error) {
	if err := validateTeams(params.Teams); err != nil {
		return nil, err
	}

	teams := params.Teams
	games := make([]*models.Game, 0, len(teams)*(len(teams)-1)/2)

	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			games = append(games, &models.Game{
				CompetitionID: params.Competition.ID,
				HomeTeamID:    teams[i].ID,
				AwayTeamID:    teams[j].ID,
				RoundNumber:   1,
				Phase:         phaseSingleRound,
				Status:        models.GameScheduled,
			})
		}
	}

	return &FixtureList{
		Games:     games,
		Standings: initialStandings(params.Competition.ID, teams),
	}, nil
}
