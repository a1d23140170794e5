package engine

import (
	"context"
	"fmt"

	"github.com/sgce/sports-competition-system/models"
)

const teamsPerGroup = 4

type GroupsPlayoffsGenerator struct{}

func NewGroupsPlayoffsGenerator() FixtureGenerator {
	return &GroupsPlayoffsGenerator{}
}

func (g *GroupsPlayoffsGenerator) GetName() string {
	return "GroupsPlayoffs"
}

// GenerateFixtures splits the team list in input order into groups of at
// most four, labelled A, B, C, … in partition order, and runs a round robin
// inside each group. Only the group stage is generated; the playoff bracket
// depends on group results and is created separately.
func (g *GroupsPlayoffsGenerator) GenerateFixtures(ctx context.Context, params GenerateFixturesParams) (*FixtureList, error) {
	if err := validateTeams(params.Teams); err != nil {
		return nil, err
	}

	teams := params.Teams
	numGroups := (len(teams) + teamsPerGroup - 1) / teamsPerGroup

	list := &FixtureList{
		Standings: initialStandings(params.Competition.ID, teams),
	}

	for group := 0; group < numGroups; group++ {
		start := group * teamsPerGroup
		end := start + teamsPerGroup
		if end > len(teams) {
			end = len(teams)
		}
		groupTeams := teams[start:end]
		phase := fmt.Sprintf("Grupo %c", rune('A'+group))

		for i := 0; i < len(groupTeams); i++ {
			for j := i + 1; j < len(groupTeams); j++ {
				list.Games = append(list.Games, &models.Game{
					CompetitionID: params.Competition.ID,
					HomeTeamID:    groupTeams[i].ID,
					AwayTeamID:    groupTeams[j].ID,
					RoundNumber:   1,
					Phase:         phase,
					Status:        models.GameScheduled,
				})
			}
		}
	}

	return list, nil
}

// GroupAssignments maps each team to its group letter using the same
// partition rule as GenerateFixtures, so registrations can record the
// grouping.
func GroupAssignments(teams []*models.Team) map[int]string {
	assignments := make(map[int]string, len(teams))
	for idx, team := range teams {
		assignments[team.ID] = fmt.Sprintf("%c", rune('A'+idx/teamsPerGroup))
	}
	return assignments
}
