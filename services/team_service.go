package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sgce/sports-competition-system/models"
	"github.com/sgce/sports-competition-system/repositories"
	"github.com/sgce/sports-competition-system/storage"
)

type CreateTeamInput struct {
	Name      string           `json:"name" validate:"required,max=100"`
	Sport     models.SportType `json:"sport" validate:"required"`
	CoachName string           `json:"coach_name" validate:"max=100"`
}

type UpdateTeamInput struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=100"`
	CoachName *string `json:"coach_name,omitempty" validate:"omitempty,max=100"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context, sport *models.SportType) ([]*models.Team, error)
	UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
	UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if !input.Sport.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSport, input.Sport)
	}

	team := &models.Team{
		Name:      name,
		Sport:     input.Sport,
		CoachName: strings.TrimSpace(input.CoachName),
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	s.resolveLogoURL(team)
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by id %d: %w", id, err)
	}
	s.resolveLogoURL(team)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context, sport *models.SportType) ([]*models.Team, error) {
	if sport != nil && !sport.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSport, *sport)
	}
	teams, err := s.teamRepo.ListBySport(ctx, sport)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, team := range teams {
		s.resolveLogoURL(team)
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.GetTeamByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := false
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, ErrTeamNameRequired
		}
		if trimmed != team.Name {
			team.Name = trimmed
			updated = true
		}
	}
	if input.CoachName != nil && strings.TrimSpace(*input.CoachName) != team.CoachName {
		team.CoachName = strings.TrimSpace(*input.CoachName)
		updated = true
	}

	if !updated {
		return team, nil
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		default:
			return nil, fmt.Errorf("failed to update team %d: %w", id, err)
		}
	}
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	team, err := s.GetTeamByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}

	if team.LogoKey != nil {
		if delErr := s.uploader.Delete(ctx, *team.LogoKey); delErr != nil {
			// Логотип остаётся в хранилище; удаление команды уже прошло.
			return nil
		}
	}
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	team, err := s.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/logo", teamID)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo for team %d: %w", teamID, err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store logo key for team %d: %w", teamID, err)
	}

	team.LogoKey = &result.Key
	s.resolveLogoURL(team)
	return team, nil
}

func (s *teamService) resolveLogoURL(team *models.Team) {
	if team.LogoKey != nil {
		url := s.uploader.GetPublicURL(*team.LogoKey)
		team.LogoURL = &url
	}
}
