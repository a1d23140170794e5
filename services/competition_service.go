package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sgce/sports-competition-system/engine"
	"github.com/sgce/sports-competition-system/models"
	"github.com/sgce/sports-competition-system/repositories"
)

type CreateCompetitionInput struct {
	Name      string                   `json:"name" validate:"required,max=150"`
	Sport     models.SportType         `json:"sport" validate:"required"`
	Format    models.CompetitionFormat `json:"format,omitempty"`
	MaxTeams  int                      `json:"max_teams" validate:"required"`
	StartDate *time.Time               `json:"start_date,omitempty"`
	EndDate   *time.Time               `json:"end_date,omitempty"`
}

type UpdateCompetitionInput struct {
	Name      *string    `json:"name,omitempty" validate:"omitempty,max=150"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type CompetitionService interface {
	CreateCompetition(ctx context.Context, input CreateCompetitionInput) (*models.Competition, error)
	GetCompetitionByID(ctx context.Context, id int) (*models.Competition, error)
	ListCompetitions(ctx context.Context, status *models.CompetitionStatus) ([]*models.Competition, error)
	UpdateCompetition(ctx context.Context, id int, input UpdateCompetitionInput) (*models.Competition, error)

	RegisterTeam(ctx context.Context, competitionID, teamID int) (*models.TeamRegistration, error)
	ConfirmRegistration(ctx context.Context, competitionID, teamID int) error
	WithdrawTeam(ctx context.Context, competitionID, teamID int) error
	ListRegistrations(ctx context.Context, competitionID int, confirmedOnly bool) ([]*models.TeamRegistration, error)

	// StartCompetition generates the fixtures for every confirmed team,
	// persists the games and the zeroed standings in one transaction and
	// moves the competition from planning to ongoing.
	StartCompetition(ctx context.Context, competitionID int) ([]*models.Game, error)
	FinishCompetition(ctx context.Context, competitionID int) error
	CancelCompetition(ctx context.Context, competitionID int) error

	GetStandings(ctx context.Context, competitionID int) ([]*models.Standing, error)
	// RecomputeStandings rebuilds the whole table of a competition from its
	// finished games and replaces the stored rows atomically.
	RecomputeStandings(ctx context.Context, competitionID int) ([]*models.Standing, error)

	// AutoUpdateStatusesByDates is run by the scheduler. It starts planning
	// competitions whose start date has passed and finishes ongoing ones
	// whose end date has passed.
	AutoUpdateStatusesByDates(ctx context.Context) error
}

type competitionService struct {
	db               *sql.DB
	competitionRepo  repositories.CompetitionRepository
	registrationRepo repositories.RegistrationRepository
	teamRepo         repositories.TeamRepository
	gameRepo         repositories.GameRepository
	standingRepo     repositories.StandingRepository
	registry         *engine.Registry
	logger           *slog.Logger
}

func NewCompetitionService(
	db *sql.DB,
	competitionRepo repositories.CompetitionRepository,
	registrationRepo repositories.RegistrationRepository,
	teamRepo repositories.TeamRepository,
	gameRepo repositories.GameRepository,
	standingRepo repositories.StandingRepository,
	registry *engine.Registry,
	logger *slog.Logger,
) CompetitionService {
	return &competitionService{
		db:               db,
		competitionRepo:  competitionRepo,
		registrationRepo: registrationRepo,
		teamRepo:         teamRepo,
		gameRepo:         gameRepo,
		standingRepo:     standingRepo,
		registry:         registry,
		logger:           logger,
	}
}

func (s *competitionService) CreateCompetition(ctx context.Context, input CreateCompetitionInput) (*models.Competition, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	if !input.Sport.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSport, input.Sport)
	}
	if input.MaxTeams < 2 || input.MaxTeams > models.MaxCompetitionTeams {
		return nil, ErrCompetitionInvalidCapacity
	}
	if input.StartDate != nil && input.EndDate != nil && !input.EndDate.After(*input.StartDate) {
		return nil, ErrCompetitionInvalidDateRange
	}

	format := input.Format
	if format == "" {
		format = models.SuggestFormat(input.MaxTeams)
		s.logger.Info("competition format suggested from capacity",
			"name", name, "max_teams", input.MaxTeams, "format", format)
	}
	if !format.Valid() {
		return nil, fmt.Errorf("%w: unknown format %q", ErrValidationFailed, input.Format)
	}

	competition := &models.Competition{
		Name:      name,
		Sport:     input.Sport,
		Format:    format,
		Status:    models.CompetitionPlanning,
		MaxTeams:  input.MaxTeams,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.competitionRepo.Create(ctx, competition); err != nil {
		if errors.Is(err, repositories.ErrCompetitionNameConflict) {
			return nil, ErrCompetitionNameConflict
		}
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}
	return competition, nil
}

func (s *competitionService) GetCompetitionByID(ctx context.Context, id int) (*models.Competition, error) {
	competition, err := s.competitionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to get competition by id %d: %w", id, err)
	}
	return competition, nil
}

func (s *competitionService) ListCompetitions(ctx context.Context, status *models.CompetitionStatus) ([]*models.Competition, error) {
	competitions, err := s.competitionRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	return competitions, nil
}

func (s *competitionService) UpdateCompetition(ctx context.Context, id int, input UpdateCompetitionInput) (*models.Competition, error) {
	competition, err := s.GetCompetitionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := false
	if input.Name != nil && strings.TrimSpace(*input.Name) != competition.Name {
		competition.Name = strings.TrimSpace(*input.Name)
		updated = true
	}
	if input.StartDate != nil {
		competition.StartDate = input.StartDate
		updated = true
	}
	if input.EndDate != nil {
		competition.EndDate = input.EndDate
		updated = true
	}
	if competition.StartDate != nil && competition.EndDate != nil &&
		!competition.EndDate.After(*competition.StartDate) {
		return nil, ErrCompetitionInvalidDateRange
	}
	if !updated {
		return competition, nil
	}

	if err := s.competitionRepo.Update(ctx, competition); err != nil {
		if errors.Is(err, repositories.ErrCompetitionNameConflict) {
			return nil, ErrCompetitionNameConflict
		}
		return nil, fmt.Errorf("failed to update competition %d: %w", id, err)
	}
	return competition, nil
}

func (s *competitionService) RegisterTeam(ctx context.Context, competitionID, teamID int) (*models.TeamRegistration, error) {
	competition, err := s.GetCompetitionByID(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	if competition.Status != models.CompetitionPlanning {
		return nil, ErrRegistrationNotOpen
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", teamID, err)
	}
	if team.Sport != competition.Sport {
		return nil, ErrSportMismatch
	}

	registrations, err := s.registrationRepo.ListByCompetition(ctx, competitionID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for competition %d: %w", competitionID, err)
	}
	if len(registrations) >= competition.MaxTeams {
		return nil, ErrCompetitionFull
	}

	registration := &models.TeamRegistration{
		CompetitionID: competitionID,
		TeamID:        teamID,
	}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		if errors.Is(err, repositories.ErrRegistrationConflict) {
			return nil, ErrRegistrationConflict
		}
		return nil, fmt.Errorf("failed to register team %d for competition %d: %w", teamID, competitionID, err)
	}
	return registration, nil
}

func (s *competitionService) ConfirmRegistration(ctx context.Context, competitionID, teamID int) error {
	competition, err := s.GetCompetitionByID(ctx, competitionID)
	if err != nil {
		return err
	}
	if competition.Status != models.CompetitionPlanning {
		return ErrRegistrationNotOpen
	}
	if err := s.registrationRepo.Confirm(ctx, competitionID, teamID); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to confirm registration of team %d in competition %d: %w", teamID, competitionID, err)
	}
	return nil
}

func (s *competitionService) WithdrawTeam(ctx context.Context, competitionID, teamID int) error {
	competition, err := s.GetCompetitionByID(ctx, competitionID)
	if err != nil {
		return err
	}
	if competition.Status != models.CompetitionPlanning {
		return ErrRegistrationNotOpen
	}
	if err := s.registrationRepo.Delete(ctx, competitionID, teamID); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to withdraw team %d from competition %d: %w", teamID, competitionID, err)
	}
	return nil
}

func (s *competitionService) ListRegistrations(ctx context.Context, competitionID int, confirmedOnly bool) ([]*models.TeamRegistration, error) {
	if _, err := s.GetCompetitionByID(ctx, competitionID); err != nil {
		return nil, err
	}
	registrations, err := s.registrationRepo.ListByCompetition(ctx, competitionID, confirmedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for competition %d: %w", competitionID, err)
	}
	return registrations, nil
}

func (s *competitionService) StartCompetition(ctx context.Context, competitionID int) ([]*models.Game, error) {
	competition, err := s.GetCompetitionByID(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	if !competition.CanTransitionTo(models.CompetitionOngoing) {
		return nil, ErrCompetitionInvalidStatusTransition
	}

	teams, err := s.registrationRepo.ListConfirmedTeams(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load confirmed teams for competition %d: %w", competitionID, err)
	}

	generator, fellBack, err := s.registry.ForFormat(competition.Format)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidFormat) {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		return nil, fmt.Errorf("failed to resolve fixture generator: %w", err)
	}
	if fellBack {
		s.logger.Warn("competition format has no dedicated generator, using fallback",
			"competition_id", competitionID, "format", competition.Format, "generator", generator.GetName())
	}

	fixtures, err := generator.GenerateFixtures(ctx, engine.GenerateFixturesParams{
		Competition: competition,
		Teams:       teams,
	})
	if err != nil {
		if errors.Is(err, engine.ErrInsufficientTeams) {
			return nil, fmt.Errorf("%w: %d confirmed", ErrNotEnoughTeams, len(teams))
		}
		return nil, fmt.Errorf("failed to generate fixtures for competition %d: %w", competitionID, err)
	}
	for _, team := range fixtures.Unpaired {
		s.logger.Warn("team has no opponent in the generated round",
			"competition_id", competitionID, "team_id", team.ID, "team", team.Name)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, game := range fixtures.Games {
		if err := s.gameRepo.Create(ctx, tx, game); err != nil {
			return nil, fmt.Errorf("failed to persist generated game: %w", err)
		}
	}
	if len(fixtures.Standings) > 0 {
		if err := s.standingRepo.ReplaceForCompetition(ctx, tx, competitionID, fixtures.Standings); err != nil {
			return nil, fmt.Errorf("failed to persist initial standings: %w", err)
		}
	}
	if competition.Format == models.FormatGroupsPlayoffs {
		for teamID, groupName := range engine.GroupAssignments(teams) {
			if err := s.registrationRepo.UpdateGroupName(ctx, tx, competitionID, teamID, groupName); err != nil {
				return nil, fmt.Errorf("failed to store group of team %d: %w", teamID, err)
			}
		}
	}
	if err := s.competitionRepo.UpdateStatus(ctx, tx, competitionID, models.CompetitionOngoing); err != nil {
		return nil, fmt.Errorf("failed to move competition %d to ongoing: %w", competitionID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit fixture generation: %w", err)
	}

	s.logger.Info("competition started",
		"competition_id", competitionID, "format", competition.Format,
		"generator", generator.GetName(), "teams", len(teams), "games", len(fixtures.Games))
	return fixtures.Games, nil
}

func (s *competitionService) FinishCompetition(ctx context.Context, competitionID int) error {
	return s.transitionTo(ctx, competitionID, models.CompetitionFinished)
}

func (s *competitionService) CancelCompetition(ctx context.Context, competitionID int) error {
	return s.transitionTo(ctx, competitionID, models.CompetitionCancelled)
}

func (s *competitionService) transitionTo(ctx context.Context, competitionID int, next models.CompetitionStatus) error {
	competition, err := s.GetCompetitionByID(ctx, competitionID)
	if err != nil {
		return err
	}
	if !competition.CanTransitionTo(next) {
		return ErrCompetitionInvalidStatusTransition
	}
	if err := s.competitionRepo.UpdateStatus(ctx, s.db, competitionID, next); err != nil {
		return fmt.Errorf("failed to move competition %d to %s: %w", competitionID, next, err)
	}
	s.logger.Info("competition status changed",
		"competition_id", competitionID, "from", competition.Status, "to", next)
	return nil
}

func (s *competitionService) GetStandings(ctx context.Context, competitionID int) ([]*models.Standing, error) {
	if _, err := s.GetCompetitionByID(ctx, competitionID); err != nil {
		return nil, err
	}
	standings, err := s.standingRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings for competition %d: %w", competitionID, err)
	}
	return standings, nil
}

func (s *competitionService) RecomputeStandings(ctx context.Context, competitionID int) ([]*models.Standing, error) {
	if _, err := s.GetCompetitionByID(ctx, competitionID); err != nil {
		return nil, err
	}

	var (
		teams []*models.Team
		games []*models.Game
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.registrationRepo.ListConfirmedTeams(gctx, competitionID)
		if err != nil {
			return fmt.Errorf("failed to load confirmed teams: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		finished := models.GameFinished
		var err error
		games, err = s.gameRepo.ListByCompetition(gctx, competitionID, nil, &finished)
		if err != nil {
			return fmt.Errorf("failed to load finished games: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load standings inputs for competition %d: %w", competitionID, err)
	}

	standings, err := engine.ComputeStandings(teams, games, engine.DefaultScoringRules())
	if err != nil {
		if errors.Is(err, engine.ErrDataConsistency) {
			return nil, fmt.Errorf("%w: %v", ErrStandingsInconsistent, err)
		}
		return nil, fmt.Errorf("failed to compute standings for competition %d: %w", competitionID, err)
	}
	for _, standing := range standings {
		standing.CompetitionID = competitionID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.standingRepo.ReplaceForCompetition(ctx, tx, competitionID, standings); err != nil {
		return nil, fmt.Errorf("failed to replace standings for competition %d: %w", competitionID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit standings for competition %d: %w", competitionID, err)
	}
	return standings, nil
}

func (s *competitionService) AutoUpdateStatusesByDates(ctx context.Context) error {
	due, err := s.competitionRepo.ListDueForStatusChange(ctx)
	if err != nil {
		return fmt.Errorf("failed to list competitions due for a status change: %w", err)
	}

	now := time.Now()
	for _, competition := range due {
		var next models.CompetitionStatus
		switch {
		case competition.Status == models.CompetitionPlanning &&
			competition.StartDate != nil && !competition.StartDate.After(now):
			next = models.CompetitionOngoing
		case competition.Status == models.CompetitionOngoing &&
			competition.EndDate != nil && !competition.EndDate.After(now):
			next = models.CompetitionFinished
		default:
			continue
		}

		if next == models.CompetitionOngoing {
			// Starting a competition generates fixtures, so go through the
			// full path instead of flipping the status.
			if _, err := s.StartCompetition(ctx, competition.ID); err != nil {
				s.logger.Error("scheduler failed to start competition",
					"competition_id", competition.ID, "error", err)
			}
			continue
		}
		if err := s.competitionRepo.UpdateStatus(ctx, s.db, competition.ID, next); err != nil {
			s.logger.Error("scheduler failed to update competition status",
				"competition_id", competition.ID, "to", next, "error", err)
			continue
		}
		s.logger.Info("scheduler updated competition status",
			"competition_id", competition.ID, "from", competition.Status, "to", next)
	}
	return nil
}
