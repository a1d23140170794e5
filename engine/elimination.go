package engine

import (
	"context"

	"github.com/sgce/sports-competition-system/models"
)

const phaseFirstRound = "Primeira Fase"

type SingleEliminationGenerator struct {
	shuffle ShuffleFunc
}

func NewSingleEliminationGenerator(shuffle ShuffleFunc) FixtureGenerator {
	return &SingleEliminationGenerator{shuffle: shuffle}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

// GenerateFixtures shuffles the team list and pairs consecutive teams for
// the first round only; later rounds depend on results and are created once
// round one is decided. With an odd team count the last team after the
// shuffle gets no opponent and is returned in Unpaired — no bye game or
// walkover is generated here.
func (g *SingleEliminationGenerator) GenerateFixtures(ctx context.Context, params GenerateFixturesParams) (*FixtureList, error) {
	if err := validateTeams(params.Teams); err != nil {
		return nil, err
	}

	shuffled := make([]*models.Team, len(params.Teams))
	copy(shuffled, params.Teams)
	g.shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	list := &FixtureList{
		Games: make([]*models.Game, 0, len(shuffled)/2),
	}

	for i := 0; i+1 < len(shuffled); i += 2 {
		list.Games = append(list.Games, &models.Game{
			CompetitionID: params.Competition.ID,
			HomeTeamID:    shuffled[i].ID,
			AwayTeamID:    shuffled[i+1].ID,
			RoundNumber:   1,
			Phase:         phaseFirstRound,
			Status:        models.GameScheduled,
		})
	}

	if len(shuffled)%2 != 0 {
		list.Unpaired = append(list.Unpaired, shuffled[len(shuffled)-1])
	}

	return list, nil
}
