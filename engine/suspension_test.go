package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgce/sports-competition-system/models"
)

func TestSuspensionAfterSecondYellow(t *testing.T) {
	rules := DefaultSuspensionRules()
	record := &models.DisciplinaryRecord{CompetitionID: 1, PlayerID: 10}

	require.NoError(t, ApplyCard(record, models.CardYellow, rules))
	assert.Equal(t, 1, record.YellowCards)
	assert.False(t, record.Suspended)
	assert.False(t, IsSuspended(record, rules))

	require.NoError(t, ApplyCard(record, models.CardYellow, rules))
	assert.Equal(t, 2, record.YellowCards)
	assert.True(t, record.Suspended)
	assert.True(t, IsSuspended(record, rules))
}

func TestSuspensionImmediateOnRed(t *testing.T) {
	rules := DefaultSuspensionRules()
	record := &models.DisciplinaryRecord{CompetitionID: 1, PlayerID: 11}

	require.NoError(t, ApplyCard(record, models.CardRed, rules))
	assert.Equal(t, 1, record.RedCards)
	assert.True(t, record.Suspended)
}

func TestSuspensionLatches(t *testing.T) {
	rules := models.SuspensionRules{YellowCards: 2, RedCard: 1}
	record := &models.DisciplinaryRecord{CompetitionID: 1, PlayerID: 12, Suspended: true}

	// A latched flag persists regardless of the counters; lifting is an
	// explicit administrative action, never inferred.
	assert.True(t, IsSuspended(record, rules))
}

func TestSuspensionCustomThresholds(t *testing.T) {
	rules := models.SuspensionRules{YellowCards: 3, RedCard: 2}
	record := &models.DisciplinaryRecord{CompetitionID: 1, PlayerID: 13}

	require.NoError(t, ApplyCard(record, models.CardYellow, rules))
	require.NoError(t, ApplyCard(record, models.CardYellow, rules))
	assert.False(t, record.Suspended)
	require.NoError(t, ApplyCard(record, models.CardYellow, rules))
	assert.True(t, record.Suspended)
}

func TestApplyCardRejectsUnknownType(t *testing.T) {
	record := &models.DisciplinaryRecord{}
	err := ApplyCard(record, models.CardType("blue_card"), DefaultSuspensionRules())
	require.Error(t, err)
}
