package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgce/sports-competition-system/models"
)

func newDisciplineFixture(t *testing.T, sport models.SportType) (DisciplineService, *fakeCompetitionRepo, *models.Competition) {
	t.Helper()

	compRepo := newFakeCompetitionRepo()
	competition := &models.Competition{
		Name:     "Copa Disciplina",
		Sport:    sport,
		Format:   models.FormatRoundRobin,
		Status:   models.CompetitionOngoing,
		MaxTeams: 8,
	}
	require.NoError(t, compRepo.Create(context.Background(), competition))

	playerRepo := &fakePlayerRepo{players: map[int]*models.Player{
		1: {ID: 1, TeamID: 1, FullName: "Jogador Um", Position: "Fixo"},
		2: {ID: 2, TeamID: 2, FullName: "Jogador Dois", Position: "Ala"},
	}}

	service := NewDisciplineService(newFakeDisciplineRepo(), compRepo, playerRepo, testLogger())
	return service, compRepo, competition
}

func TestRecordCardSuspendsAfterTwoYellows(t *testing.T) {
	service, _, competition := newDisciplineFixture(t, models.SportFutsal)
	ctx := context.Background()

	record, err := service.RecordCard(ctx, RecordCardInput{
		CompetitionID: competition.ID, PlayerID: 1, Card: models.CardYellow,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, record.YellowCards)
	assert.False(t, record.Suspended)

	record, err = service.RecordCard(ctx, RecordCardInput{
		CompetitionID: competition.ID, PlayerID: 1, Card: models.CardYellow,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, record.YellowCards)
	assert.True(t, record.Suspended)
}

func TestRecordCardSuspendsOnRed(t *testing.T) {
	service, _, competition := newDisciplineFixture(t, models.SportHandball)
	ctx := context.Background()

	record, err := service.RecordCard(ctx, RecordCardInput{
		CompetitionID: competition.ID, PlayerID: 2, Card: models.CardRed,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, record.RedCards)
	assert.True(t, record.Suspended)
}

func TestRecordCardRejectsNonCardSport(t *testing.T) {
	service, _, competition := newDisciplineFixture(t, models.SportBasketball)

	_, err := service.RecordCard(context.Background(), RecordCardInput{
		CompetitionID: competition.ID, PlayerID: 1, Card: models.CardYellow,
	})
	assert.ErrorIs(t, err, ErrNotCardBasedSport)
}

func TestRecordCardRequiresOngoingCompetition(t *testing.T) {
	service, compRepo, competition := newDisciplineFixture(t, models.SportFutsal)

	compRepo.competitions[competition.ID].Status = models.CompetitionFinished

	_, err := service.RecordCard(context.Background(), RecordCardInput{
		CompetitionID: competition.ID, PlayerID: 1, Card: models.CardYellow,
	})
	assert.ErrorIs(t, err, ErrCompetitionNotOngoing)
}

func TestSuspensionLatchesUntilCleared(t *testing.T) {
	service, _, competition := newDisciplineFixture(t, models.SportFutsal)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := service.RecordCard(ctx, RecordCardInput{
			CompetitionID: competition.ID, PlayerID: 1, Card: models.CardYellow,
		})
		require.NoError(t, err)
	}

	record, err := service.GetRecord(ctx, competition.ID, 1)
	require.NoError(t, err)
	require.True(t, record.Suspended)

	// Флаг держится, пока его явно не снимут.
	suspended, err := service.ListCompetitionRecords(ctx, competition.ID, true)
	require.NoError(t, err)
	assert.Len(t, suspended, 1)

	record, err = service.ClearSuspension(ctx, competition.ID, 1)
	require.NoError(t, err)
	assert.False(t, record.Suspended)
	// Карточки при снятии не обнуляются.
	assert.Equal(t, 2, record.YellowCards)

	suspended, err = service.ListCompetitionRecords(ctx, competition.ID, true)
	require.NoError(t, err)
	assert.Empty(t, suspended)
}
