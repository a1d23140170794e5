package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sgce/sports-competition-system/models"
)

var ErrStandingNotFound = errors.New("standing not found")

type StandingRepository interface {
	// ReplaceForCompetition swaps the whole table of a competition in one
	// transaction. Standings are derived state; a recompute always
	// replaces every row at once, never merges per row.
	ReplaceForCompetition(ctx context.Context, exec SQLExecutor, competitionID int, standings []*models.Standing) error
	ListByCompetition(ctx context.Context, competitionID int) ([]*models.Standing, error)
	DeleteByCompetition(ctx context.Context, exec SQLExecutor, competitionID int) error
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresStandingRepository) ReplaceForCompetition(ctx context.Context, exec SQLExecutor, competitionID int, standings []*models.Standing) error {
	executor := r.getExecutor(exec)

	if err := r.DeleteByCompetition(ctx, executor, competitionID); err != nil {
		return err
	}

	query := `
		INSERT INTO standings
			(competition_id, team_id, games_played, wins, draws, losses,
			 goals_for, goals_against, goal_difference, sets_for, sets_against,
			 points, position, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`

	now := time.Now()
	for _, standing := range standings {
		standing.CompetitionID = competitionID
		standing.UpdatedAt = now
		err := executor.QueryRowContext(ctx, query,
			standing.CompetitionID, standing.TeamID, standing.GamesPlayed,
			standing.Wins, standing.Draws, standing.Losses,
			standing.GoalsFor, standing.GoalsAgainst, standing.GoalDifference,
			standing.SetsFor, standing.SetsAgainst,
			standing.Points, standing.Position, standing.UpdatedAt,
		).Scan(&standing.ID)
		if err != nil {
			return fmt.Errorf("failed to insert standing for team %d in competition %d: %w",
				standing.TeamID, competitionID, err)
		}
	}
	return nil
}

func (r *postgresStandingRepository) ListByCompetition(ctx context.Context, competitionID int) ([]*models.Standing, error) {
	query := `
		SELECT id, competition_id, team_id, games_played, wins, draws, losses,
		       goals_for, goals_against, goal_difference, sets_for, sets_against,
		       points, position, updated_at
		FROM standings
		WHERE competition_id = $1
		ORDER BY position ASC`

	rows, err := r.db.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings for competition %d: %w", competitionID, err)
	}
	defer rows.Close()

	standings := make([]*models.Standing, 0)
	for rows.Next() {
		standing := &models.Standing{}
		if scanErr := rows.Scan(
			&standing.ID, &standing.CompetitionID, &standing.TeamID,
			&standing.GamesPlayed, &standing.Wins, &standing.Draws, &standing.Losses,
			&standing.GoalsFor, &standing.GoalsAgainst, &standing.GoalDifference,
			&standing.SetsFor, &standing.SetsAgainst,
			&standing.Points, &standing.Position, &standing.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan standing row: %w", scanErr)
		}
		standings = append(standings, standing)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during standing rows iteration: %w", err)
	}
	return standings, nil
}

func (r *postgresStandingRepository) DeleteByCompetition(ctx context.Context, exec SQLExecutor, competitionID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM standings WHERE competition_id = $1`, competitionID)
	if err != nil {
		return fmt.Errorf("failed to delete standings for competition %d: %w", competitionID, err)
	}
	return nil
}
