package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgce/sports-competition-system/models"
)

func newPlayerFixture(t *testing.T) (PlayerService, *fakePlayerRepo) {
	t.Helper()

	teamRepo := &fakeTeamRepo{teams: map[int]*models.Team{
		1: {ID: 1, Name: "Futsal FC", Sport: models.SportFutsal},
		2: {ID: 2, Name: "Vôlei Clube", Sport: models.SportVolleyball},
	}}
	playerRepo := &fakePlayerRepo{players: make(map[int]*models.Player)}
	return NewPlayerService(playerRepo, teamRepo), playerRepo
}

func TestCreatePlayerValidatesPosition(t *testing.T) {
	service, _ := newPlayerFixture(t)
	ctx := context.Background()

	player, err := service.CreatePlayer(ctx, CreatePlayerInput{
		TeamID: 1, FullName: "Jogador Um", Position: "Goleiro", ShirtNumber: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Goleiro", player.Position)

	// Позиция должна существовать в конфигурации спорта команды.
	_, err = service.CreatePlayer(ctx, CreatePlayerInput{
		TeamID: 1, FullName: "Jogador Dois", Position: "Levantador", ShirtNumber: 2,
	})
	assert.ErrorIs(t, err, ErrInvalidPosition)

	_, err = service.CreatePlayer(ctx, CreatePlayerInput{
		TeamID: 2, FullName: "Jogador Três", Position: "Levantador", ShirtNumber: 3,
	})
	require.NoError(t, err)
}

func TestCreatePlayerEnforcesRosterLimit(t *testing.T) {
	service, _ := newPlayerFixture(t)
	ctx := context.Background()

	cfg, ok := models.ConfigForSport(models.SportFutsal)
	require.True(t, ok)

	for i := 0; i < cfg.MaxTeamSize; i++ {
		_, err := service.CreatePlayer(ctx, CreatePlayerInput{
			TeamID: 1, FullName: fmt.Sprintf("Jogador %d", i+1), Position: "Ala", ShirtNumber: i,
		})
		require.NoError(t, err)
	}

	_, err := service.CreatePlayer(ctx, CreatePlayerInput{
		TeamID: 1, FullName: "Excedente", Position: "Ala", ShirtNumber: 99,
	})
	assert.ErrorIs(t, err, ErrTeamRosterFull)
}

func TestCreatePlayerUnknownTeam(t *testing.T) {
	service, _ := newPlayerFixture(t)

	_, err := service.CreatePlayer(context.Background(), CreatePlayerInput{
		TeamID: 99, FullName: "Sem Time", Position: "Ala",
	})
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestUpdatePlayerPositionValidatedAgainstSport(t *testing.T) {
	service, _ := newPlayerFixture(t)
	ctx := context.Background()

	player, err := service.CreatePlayer(ctx, CreatePlayerInput{
		TeamID: 1, FullName: "Jogador Um", Position: "Fixo", ShirtNumber: 4,
	})
	require.NoError(t, err)

	badPosition := "Central"
	_, err = service.UpdatePlayer(ctx, player.ID, UpdatePlayerInput{Position: &badPosition})
	assert.ErrorIs(t, err, ErrInvalidPosition)

	goodPosition := "Pivô"
	updated, err := service.UpdatePlayer(ctx, player.ID, UpdatePlayerInput{Position: &goodPosition})
	require.NoError(t, err)
	assert.Equal(t, "Pivô", updated.Position)
}

func TestDeletePlayer(t *testing.T) {
	service, playerRepo := newPlayerFixture(t)
	ctx := context.Background()

	player, err := service.CreatePlayer(ctx, CreatePlayerInput{
		TeamID: 1, FullName: "Para Remover", Position: "Ala",
	})
	require.NoError(t, err)

	require.NoError(t, service.DeletePlayer(ctx, player.ID))
	assert.Empty(t, playerRepo.players)

	err = service.DeletePlayer(ctx, player.ID)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}
