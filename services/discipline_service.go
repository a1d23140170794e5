package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sgce/sports-competition-system/engine"
	"github.com/sgce/sports-competition-system/models"
	"github.com/sgce/sports-competition-system/repositories"
)

type RecordCardInput struct {
	CompetitionID int             `json:"competition_id" validate:"required,gt=0"`
	PlayerID      int             `json:"player_id" validate:"required,gt=0"`
	Card          models.CardType `json:"card" validate:"required"`
}

type DisciplineService interface {
	// RecordCard accumulates a card on the athlete's record for the
	// competition and latches the suspension flag once a threshold of the
	// sport is reached.
	RecordCard(ctx context.Context, input RecordCardInput) (*models.DisciplinaryRecord, error)
	ClearSuspension(ctx context.Context, competitionID, playerID int) (*models.DisciplinaryRecord, error)
	GetRecord(ctx context.Context, competitionID, playerID int) (*models.DisciplinaryRecord, error)
	ListCompetitionRecords(ctx context.Context, competitionID int, suspendedOnly bool) ([]*models.DisciplinaryRecord, error)
}

type disciplineService struct {
	disciplineRepo  repositories.DisciplineRepository
	competitionRepo repositories.CompetitionRepository
	playerRepo      repositories.PlayerRepository
	logger          *slog.Logger
}

func NewDisciplineService(
	disciplineRepo repositories.DisciplineRepository,
	competitionRepo repositories.CompetitionRepository,
	playerRepo repositories.PlayerRepository,
	logger *slog.Logger,
) DisciplineService {
	return &disciplineService{
		disciplineRepo:  disciplineRepo,
		competitionRepo: competitionRepo,
		playerRepo:      playerRepo,
		logger:          logger,
	}
}

func (s *disciplineService) RecordCard(ctx context.Context, input RecordCardInput) (*models.DisciplinaryRecord, error) {
	if !input.Card.Valid() {
		return nil, fmt.Errorf("%w: unknown card type %q", ErrValidationFailed, input.Card)
	}

	competition, err := s.loadCardBasedCompetition(ctx, input.CompetitionID)
	if err != nil {
		return nil, err
	}
	if competition.Status != models.CompetitionOngoing {
		return nil, ErrCompetitionNotOngoing
	}
	if _, err := s.playerRepo.GetByID(ctx, input.PlayerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player %d: %w", input.PlayerID, err)
	}

	record, err := s.disciplineRepo.GetOrCreate(ctx, input.CompetitionID, input.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load disciplinary record: %w", err)
	}

	rules := s.suspensionRules(competition.Sport)
	wasSuspended := record.Suspended
	if err := engine.ApplyCard(record, input.Card, rules); err != nil {
		return nil, fmt.Errorf("failed to apply card: %w", err)
	}
	if err := s.disciplineRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist disciplinary record: %w", err)
	}

	if record.Suspended && !wasSuspended {
		s.logger.Info("player suspended",
			"competition_id", input.CompetitionID, "player_id", input.PlayerID,
			"yellow_cards", record.YellowCards, "red_cards", record.RedCards)
	}
	return record, nil
}

func (s *disciplineService) ClearSuspension(ctx context.Context, competitionID, playerID int) (*models.DisciplinaryRecord, error) {
	if _, err := s.loadCardBasedCompetition(ctx, competitionID); err != nil {
		return nil, err
	}

	record, err := s.disciplineRepo.GetOrCreate(ctx, competitionID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load disciplinary record: %w", err)
	}
	if !record.Suspended {
		return record, nil
	}

	record.Suspended = false
	if err := s.disciplineRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to clear suspension: %w", err)
	}
	s.logger.Info("player suspension cleared",
		"competition_id", competitionID, "player_id", playerID)
	return record, nil
}

func (s *disciplineService) GetRecord(ctx context.Context, competitionID, playerID int) (*models.DisciplinaryRecord, error) {
	if _, err := s.loadCardBasedCompetition(ctx, competitionID); err != nil {
		return nil, err
	}
	record, err := s.disciplineRepo.GetOrCreate(ctx, competitionID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load disciplinary record: %w", err)
	}
	return record, nil
}

func (s *disciplineService) ListCompetitionRecords(ctx context.Context, competitionID int, suspendedOnly bool) ([]*models.DisciplinaryRecord, error) {
	if _, err := s.loadCardBasedCompetition(ctx, competitionID); err != nil {
		return nil, err
	}
	records, err := s.disciplineRepo.ListByCompetition(ctx, competitionID, suspendedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list disciplinary records for competition %d: %w", competitionID, err)
	}
	return records, nil
}

func (s *disciplineService) loadCardBasedCompetition(ctx context.Context, competitionID int) (*models.Competition, error) {
	competition, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to load competition %d: %w", competitionID, err)
	}
	cfg, ok := models.ConfigForSport(competition.Sport)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSport, competition.Sport)
	}
	if !cfg.CardBased {
		return nil, fmt.Errorf("%w: %s", ErrNotCardBasedSport, cfg.Name)
	}
	return competition, nil
}

func (s *disciplineService) suspensionRules(sport models.SportType) models.SuspensionRules {
	if cfg, ok := models.ConfigForSport(sport); ok && cfg.Suspension != nil {
		return *cfg.Suspension
	}
	return engine.DefaultSuspensionRules()
}
