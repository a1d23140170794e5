package engine

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/sgce/sports-competition-system/models"
)

type GenerateFixturesParams struct {
	Competition *models.Competition
	Teams       []*models.Team
}

// FixtureList is the output of a fixture generator: game stubs with
// status=scheduled and no date or venue assigned, the zeroed standings rows
// the format requires, and any team left without an opponent.
type FixtureList struct {
	Games     []*models.Game
	Standings []*models.Standing

	// Unpaired holds teams that got no game in the generated round. Only
	// single elimination with an odd team count produces one; surfacing it
	// is deliberate, so the caller can decide on a bye policy instead of
	// losing the team silently.
	Unpaired []*models.Team
}

type FixtureGenerator interface {
	GenerateFixtures(ctx context.Context, params GenerateFixturesParams) (*FixtureList, error)

	GetName() string
}

// ShuffleFunc has the signature of rand.Shuffle. Elimination pairing is the
// only randomized step of the engine; injecting the shuffle keeps
// generation reproducible under test.
type ShuffleFunc func(n int, swap func(i, j int))

// Registry resolves a competition format to its fixture generator. Formats
// without a dedicated generator (best_of_three, swiss, other) fall back to
// a configurable format, round robin unless overridden.
type Registry struct {
	fallback models.CompetitionFormat
	shuffle  ShuffleFunc
}

type RegistryOption func(*Registry)

func WithFallbackFormat(format models.CompetitionFormat) RegistryOption {
	return func(r *Registry) { r.fallback = format }
}

func WithShuffle(shuffle ShuffleFunc) RegistryOption {
	return func(r *Registry) { r.shuffle = shuffle }
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		fallback: models.FormatRoundRobin,
		shuffle:  rand.Shuffle,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ForFormat returns the generator for a format. The second return value
// reports whether the fallback was used, so the caller can log the
// decision.
func (r *Registry) ForFormat(format models.CompetitionFormat) (FixtureGenerator, bool, error) {
	if !format.Valid() {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}

	switch format {
	case models.FormatRoundRobin:
		return NewRoundRobinGenerator(), false, nil
	case models.FormatElimination:
		return NewSingleEliminationGenerator(r.shuffle), false, nil
	case models.FormatGroupsPlayoffs:
		return NewGroupsPlayoffsGenerator(), false, nil
	}

	if r.fallback == format {
		return nil, false, fmt.Errorf("%w: fallback format %q has no generator", ErrInvalidFormat, format)
	}
	gen, _, err := r.ForFormat(r.fallback)
	if err != nil {
		return nil, false, err
	}
	return gen, true, nil
}

// validateTeams requires at least two distinct teams. Registration enforces
// uniqueness upstream, but a duplicated ID here would produce a team playing
// against itself.
func validateTeams(teams []*models.Team) error {
	if len(teams) < 2 {
		return fmt.Errorf("%w: found %d", ErrInsufficientTeams, len(teams))
	}
	seen := make(map[int]struct{}, len(teams))
	for _, team := range teams {
		if _, dup := seen[team.ID]; dup {
			return fmt.Errorf("%w: team %d appears more than once", ErrDataConsistency, team.ID)
		}
		seen[team.ID] = struct{}{}
	}
	return nil
}

// initialStandings builds the zeroed row set the standings calculator
// expects to exist for every registered team before any game finishes.
func initialStandings(competitionID int, teams []*models.Team) []*models.Standing {
	standings := make([]*models.Standing, 0, len(teams))
	for _, team := range teams {
		standings = append(standings, &models.Standing{
			CompetitionID: competitionID,
			TeamID:        team.ID,
		})
	}
	return standings
}
