package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgce/sports-competition-system/models"
)

func TestRegistryResolvesDedicatedGenerators(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		format   models.CompetitionFormat
		wantName string
	}{
		{models.FormatRoundRobin, "RoundRobin"},
		{models.FormatElimination, "SingleElimination"},
		{models.FormatGroupsPlayoffs, "GroupsPlayoffs"},
	}
	for _, tt := range tests {
		gen, fellBack, err := registry.ForFormat(tt.format)
		require.NoError(t, err)
		assert.False(t, fellBack)
		assert.Equal(t, tt.wantName, gen.GetName())
	}
}

func TestRegistryFallsBackExplicitly(t *testing.T) {
	registry := NewRegistry()

	for _, format := range []models.CompetitionFormat{
		models.FormatBestOfThree, models.FormatSwiss, models.FormatOther,
	} {
		gen, fellBack, err := registry.ForFormat(format)
		require.NoError(t, err)
		assert.True(t, fellBack, "format %s should report its fallback", format)
		assert.Equal(t, "RoundRobin", gen.GetName())
	}
}

func TestRegistryConfigurableFallback(t *testing.T) {
	registry := NewRegistry(WithFallbackFormat(models.FormatGroupsPlayoffs))

	gen, fellBack, err := registry.ForFormat(models.FormatSwiss)
	require.NoError(t, err)
	assert.True(t, fellBack)
	assert.Equal(t, "GroupsPlayoffs", gen.GetName())
}

func TestRegistryRejectsUnknownFormat(t *testing.T) {
	registry := NewRegistry()

	_, _, err := registry.ForFormat(models.CompetitionFormat("double_elimination"))
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestRegistryRejectsCyclicFallback(t *testing.T) {
	registry := NewRegistry(WithFallbackFormat(models.FormatSwiss))

	_, _, err := registry.ForFormat(models.FormatSwiss)
	require.ErrorIs(t, err, ErrInvalidFormat)
}
