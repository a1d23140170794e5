package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sgce/sports-competition-system/models"
	"github.com/sgce/sports-competition-system/repositories"
)

type CreatePlayerInput struct {
	TeamID      int        `json:"team_id" validate:"required,gt=0"`
	FullName    string     `json:"full_name" validate:"required,max=150"`
	Position    string     `json:"position" validate:"required"`
	ShirtNumber int        `json:"shirt_number" validate:"gte=0,lte=99"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
}

type UpdatePlayerInput struct {
	FullName    *string    `json:"full_name,omitempty" validate:"omitempty,max=150"`
	Position    *string    `json:"position,omitempty"`
	ShirtNumber *int       `json:"shirt_number,omitempty" validate:"omitempty,gte=0,lte=99"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
}

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	ListTeamPlayers(ctx context.Context, teamID int) ([]*models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	team, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", input.TeamID, err)
	}

	sportCfg, ok := models.ConfigForSport(team.Sport)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSport, team.Sport)
	}
	if err := validatePosition(sportCfg, input.Position); err != nil {
		return nil, err
	}

	roster, err := s.playerRepo.ListByTeam(ctx, input.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for team %d: %w", input.TeamID, err)
	}
	if len(roster) >= sportCfg.MaxTeamSize {
		return nil, fmt.Errorf("%w: limit %d", ErrTeamRosterFull, sportCfg.MaxTeamSize)
	}

	player := &models.Player{
		TeamID:      input.TeamID,
		FullName:    strings.TrimSpace(input.FullName),
		Position:    input.Position,
		ShirtNumber: input.ShirtNumber,
		BirthDate:   input.BirthDate,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player by id %d: %w", id, err)
	}
	return player, nil
}

func (s *playerService) ListTeamPlayers(ctx context.Context, teamID int) ([]*models.Player, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", teamID, err)
	}
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", teamID, err)
	}
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.GetPlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := false
	if input.FullName != nil && strings.TrimSpace(*input.FullName) != player.FullName {
		player.FullName = strings.TrimSpace(*input.FullName)
		updated = true
	}
	if input.Position != nil && *input.Position != player.Position {
		team, teamErr := s.teamRepo.GetByID(ctx, player.TeamID)
		if teamErr != nil {
			return nil, fmt.Errorf("failed to load team %d: %w", player.TeamID, teamErr)
		}
		sportCfg, ok := models.ConfigForSport(team.Sport)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSport, team.Sport)
		}
		if err := validatePosition(sportCfg, *input.Position); err != nil {
			return nil, err
		}
		player.Position = *input.Position
		updated = true
	}
	if input.ShirtNumber != nil && *input.ShirtNumber != player.ShirtNumber {
		player.ShirtNumber = *input.ShirtNumber
		updated = true
	}
	if input.BirthDate != nil {
		player.BirthDate = input.BirthDate
		updated = true
	}

	if !updated {
		return player, nil
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update player %d: %w", id, err)
	}
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}
	return nil
}

func validatePosition(cfg models.SportConfig, position string) error {
	for _, allowed := range cfg.Positions {
		if allowed == position {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (%s)", ErrInvalidPosition, position, cfg.Name)
}
