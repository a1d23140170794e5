package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sgce/sports-competition-system/models"
	"github.com/sgce/sports-competition-system/repositories"
)

const dashboardGamesLimit = 5

type DashboardService interface {
	GetSummary(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	teamRepo        repositories.TeamRepository
	competitionRepo repositories.CompetitionRepository
	gameRepo        repositories.GameRepository
}

func NewDashboardService(
	teamRepo repositories.TeamRepository,
	competitionRepo repositories.CompetitionRepository,
	gameRepo repositories.GameRepository,
) DashboardService {
	return &dashboardService{
		teamRepo:        teamRepo,
		competitionRepo: competitionRepo,
		gameRepo:        gameRepo,
	}
}

// GetSummary loads the dashboard counters and game lists concurrently;
// everything here is an independent read.
func (s *dashboardService) GetSummary(ctx context.Context) (*models.DashboardStats, error) {
	summary := &models.DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.teamRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count teams: %w", err)
		}
		summary.TeamsTotal = count
		return nil
	})
	g.Go(func() error {
		count, err := s.competitionRepo.Count(gctx, nil)
		if err != nil {
			return fmt.Errorf("failed to count competitions: %w", err)
		}
		summary.CompetitionsTotal = count
		return nil
	})
	g.Go(func() error {
		ongoing := models.CompetitionOngoing
		count, err := s.competitionRepo.Count(gctx, &ongoing)
		if err != nil {
			return fmt.Errorf("failed to count ongoing competitions: %w", err)
		}
		summary.OngoingCompetitions = count
		return nil
	})
	g.Go(func() error {
		count, err := s.gameRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count games: %w", err)
		}
		summary.GamesTotal = count
		return nil
	})
	g.Go(func() error {
		games, err := s.gameRepo.ListUpcoming(gctx, dashboardGamesLimit)
		if err != nil {
			return fmt.Errorf("failed to list upcoming games: %w", err)
		}
		summary.NextGames = games
		return nil
	})
	g.Go(func() error {
		games, err := s.gameRepo.ListRecent(gctx, dashboardGamesLimit)
		if err != nil {
			return fmt.Errorf("failed to list recent games: %w", err)
		}
		summary.RecentGames = games
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
