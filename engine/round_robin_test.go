package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgce/sports-competition-system/models"
)

func makeTeams(n int) []*models.Team {
	teams := make([]*models.Team, 0, n)
	for i := 1; i <= n; i++ {
		teams = append(teams, &models.Team{ID: i, Name: fmt.Sprintf("Team %d", i)})
	}
	return teams
}

func TestRoundRobinPairCoverage(t *testing.T) {
	gen := NewRoundRobinGenerator()
	competition := &models.Competition{ID: 7, Format: models.FormatRoundRobin}

	for n := 2; n <= 10; n++ {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			list, err := gen.GenerateFixtures(context.Background(), GenerateFixturesParams{
				Competition: competition,
				Teams:       makeTeams(n),
			})
			require.NoError(t, err)
			require.Len(t, list.Games, n*(n-1)/2)
			assert.Empty(t, list.Unpaired)

			seen := make(map[[2]int]bool)
			for _, game := range list.Games {
				assert.NotEqual(t, game.HomeTeamID, game.AwayTeamID, "team playing itself")
				pair := [2]int{game.HomeTeamID, game.AwayTeamID}
				if pair[0] > pair[1] {
					pair[0], pair[1] = pair[1], pair[0]
				}
				assert.False(t, seen[pair], "pair %v emitted twice", pair)
				seen[pair] = true

				assert.Equal(t, 1, game.RoundNumber)
				assert.Equal(t, "Fase Única", game.Phase)
				assert.Equal(t, models.GameScheduled, game.Status)
				assert.Nil(t, game.HomeScore)
				assert.Nil(t, game.AwayScore)
			}
			assert.Len(t, seen, n*(n-1)/2)
		})
	}
}

func TestRoundRobinEmissionOrder(t *testing.T) {
	gen := NewRoundRobinGenerator()
	list, err := gen.GenerateFixtures(context.Background(), GenerateFixturesParams{
		Competition: &models.Competition{ID: 1, Format: models.FormatRoundRobin},
		Teams:       makeTeams(4),
	})
	require.NoError(t, err)

	// Nested iteration over input order: 1-2, 1-3, 1-4, 2-3, 2-4, 3-4,
	// earlier team at home.
	wantPairs := [][2]int{{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4}}
	require.Len(t, list.Games, len(wantPairs))
	for i, want := range wantPairs {
		assert.Equal(t, want[0], list.Games[i].HomeTeamID)
		assert.Equal(t, want[1], list.Games[i].AwayTeamID)
	}
}

func TestRoundRobinInitializesZeroedStandings(t *testing.T) {
	gen := NewRoundRobinGenerator()
	list, err := gen.GenerateFixtures(context.Background(), GenerateFixturesParams{
		Competition: &models.Competition{ID: 3, Format: models.FormatRoundRobin},
		Teams:       makeTeams(5),
	})
	require.NoError(t, err)
	require.Len(t, list.Standings, 5)
	for i, row := range list.Standings {
		assert.Equal(t, 3, row.CompetitionID)
		assert.Equal(t, i+1, row.TeamID)
		assert.Zero(t, row.GamesPlayed)
		assert.Zero(t, row.Points)
		assert.Zero(t, row.GoalsFor)
	}
}

func TestRoundRobinRejectsInsufficientTeams(t *testing.T) {
	gen := NewRoundRobinGenerator()
	for _, n := range []int{0, 1} {
		list, err := gen.GenerateFixtures(context.Background(), GenerateFixturesParams{
			Competition: &models.Competition{ID: 1},
			Teams:       makeTeams(n),
		})
		require.ErrorIs(t, err, ErrInsufficientTeams)
		assert.Nil(t, list)
	}
}

func TestRoundRobinRejectsDuplicatedTeam(t *testing.T) {
	gen := NewRoundRobinGenerator()
	teams := makeTeams(3)
	teams = append(teams, &models.Team{ID: 2, Name: "Team 2 again"})

	list, err := gen.GenerateFixtures(context.Background(), GenerateFixturesParams{
		Competition: &models.Competition{ID: 1},
		Teams:       teams,
	})
	require.ErrorIs(t, err, ErrDataConsistency)
	assert.Nil(t, list)
}
