package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sgce/sports-competition-system/models"
	"github.com/sgce/sports-competition-system/repositories"
)

type FinishGameInput struct {
	HomeScore int `json:"home_score" validate:"gte=0"`
	AwayScore int `json:"away_score" validate:"gte=0"`
	HomeSets  int `json:"home_sets" validate:"gte=0"`
	AwaySets  int `json:"away_sets" validate:"gte=0"`
}

type ScheduleGameInput struct {
	GameDate    *time.Time `json:"game_date,omitempty"`
	VenueID     *int       `json:"venue_id,omitempty"`
	RefereeName *string    `json:"referee_name,omitempty" validate:"omitempty,max=100"`
}

type GameService interface {
	GetGameByID(ctx context.Context, id int) (*models.Game, error)
	ListCompetitionGames(ctx context.Context, competitionID int, round *int, status *models.GameStatus) ([]*models.Game, error)

	// FinishGame records the final result and recomputes the standings of
	// the competition.
	FinishGame(ctx context.Context, id int, input FinishGameInput) (*models.Game, error)
	ScheduleGame(ctx context.Context, id int, input ScheduleGameInput) (*models.Game, error)
	PostponeGame(ctx context.Context, id int, observations string) error
	CancelGame(ctx context.Context, id int, observations string) error
}

type gameService struct {
	gameRepo        repositories.GameRepository
	competitionRepo repositories.CompetitionRepository
	competitions    CompetitionService
	logger          *slog.Logger
}

func NewGameService(
	gameRepo repositories.GameRepository,
	competitionRepo repositories.CompetitionRepository,
	competitions CompetitionService,
	logger *slog.Logger,
) GameService {
	return &gameService{
		gameRepo:        gameRepo,
		competitionRepo: competitionRepo,
		competitions:    competitions,
		logger:          logger,
	}
}

func (s *gameService) GetGameByID(ctx context.Context, id int) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game by id %d: %w", id, err)
	}
	return game, nil
}

func (s *gameService) ListCompetitionGames(ctx context.Context, competitionID int, round *int, status *models.GameStatus) ([]*models.Game, error) {
	games, err := s.gameRepo.ListByCompetition(ctx, competitionID, round, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list games for competition %d: %w", competitionID, err)
	}
	return games, nil
}

func (s *gameService) FinishGame(ctx context.Context, id int, input FinishGameInput) (*models.Game, error) {
	if input.HomeScore < 0 || input.AwayScore < 0 || input.HomeSets < 0 || input.AwaySets < 0 {
		return nil, ErrNegativeScore
	}

	game, err := s.GetGameByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.Status == models.GameFinished {
		return nil, ErrGameAlreadyFinished
	}

	competition, err := s.competitionRepo.GetByID(ctx, game.CompetitionID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to load competition %d: %w", game.CompetitionID, err)
	}
	if competition.Status != models.CompetitionOngoing {
		return nil, ErrCompetitionNotOngoing
	}

	err = s.gameRepo.UpdateResult(ctx, nil, id,
		input.HomeScore, input.AwayScore, input.HomeSets, input.AwaySets, models.GameFinished)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to record result of game %d: %w", id, err)
	}

	if _, err := s.competitions.RecomputeStandings(ctx, game.CompetitionID); err != nil {
		return nil, fmt.Errorf("result recorded but standings update failed for competition %d: %w", game.CompetitionID, err)
	}

	s.logger.Info("game finished",
		"game_id", id, "competition_id", game.CompetitionID,
		"home_score", input.HomeScore, "away_score", input.AwayScore)
	return s.GetGameByID(ctx, id)
}

func (s *gameService) ScheduleGame(ctx context.Context, id int, input ScheduleGameInput) (*models.Game, error) {
	game, err := s.GetGameByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.Status == models.GameFinished || game.Status == models.GameCancelled {
		return nil, ErrGameAlreadyFinished
	}

	if input.GameDate != nil {
		game.GameDate = input.GameDate
	}
	if input.VenueID != nil {
		game.VenueID = input.VenueID
	}
	if input.RefereeName != nil {
		game.RefereeName = *input.RefereeName
	}

	if err := s.gameRepo.UpdateSchedule(ctx, id, game); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to schedule game %d: %w", id, err)
	}
	return game, nil
}

func (s *gameService) PostponeGame(ctx context.Context, id int, observations string) error {
	return s.updateStatus(ctx, id, models.GamePostponed, observations)
}

func (s *gameService) CancelGame(ctx context.Context, id int, observations string) error {
	return s.updateStatus(ctx, id, models.GameCancelled, observations)
}

func (s *gameService) updateStatus(ctx context.Context, id int, status models.GameStatus, observations string) error {
	game, err := s.GetGameByID(ctx, id)
	if err != nil {
		return err
	}
	if game.Status == models.GameFinished {
		return ErrGameAlreadyFinished
	}
	if err := s.gameRepo.UpdateStatus(ctx, id, status, observations); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to update status of game %d: %w", id, err)
	}
	return nil
}
