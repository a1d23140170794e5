package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/sgce/sports-competition-system/models"
)

var (
	ErrGameNotFound           = errors.New("game not found")
	ErrGameCompetitionInvalid = errors.New("game competition conflict or invalid")
	ErrGameTeamInvalid        = errors.New("game team conflict or invalid")
)

type GameRepository interface {
	Create(ctx context.Context, exec SQLExecutor, game *models.Game) error
	GetByID(ctx context.Context, id int) (*models.Game, error)
	ListByCompetition(ctx context.Context, competitionID int, round *int, status *models.GameStatus) ([]*models.Game, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, id int, homeScore, awayScore int, homeSets, awaySets int, status models.GameStatus) error
	UpdateStatus(ctx context.Context, id int, status models.GameStatus, observations string) error
	UpdateSchedule(ctx context.Context, id int, game *models.Game) error
	ListUpcoming(ctx context.Context, limit int) ([]*models.Game, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Game, error)
	Count(ctx context.Context) (int, error)
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

const gameColumns = `id, competition_id, home_team_id, away_team_id, venue_id, game_date,
		round_number, phase, status, home_score, away_score, home_sets, away_sets,
		observations, referee_name, created_at, updated_at`

func scanGame(row interface{ Scan(...interface{}) error }) (*models.Game, error) {
	game := &models.Game{}
	err := row.Scan(
		&game.ID, &game.CompetitionID, &game.HomeTeamID, &game.AwayTeamID,
		&game.VenueID, &game.GameDate, &game.RoundNumber, &game.Phase, &game.Status,
		&game.HomeScore, &game.AwayScore, &game.HomeSets, &game.AwaySets,
		&game.Observations, &game.RefereeName, &game.CreatedAt, &game.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (r *postgresGameRepository) Create(ctx context.Context, exec SQLExecutor, game *models.Game) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}

	query := `
		INSERT INTO games
			(competition_id, home_team_id, away_team_id, venue_id, game_date,
			 round_number, phase, status, home_score, away_score, home_sets, away_sets,
			 observations, referee_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		game.CompetitionID, game.HomeTeamID, game.AwayTeamID, game.VenueID, game.GameDate,
		game.RoundNumber, game.Phase, game.Status, game.HomeScore, game.AwayScore,
		game.HomeSets, game.AwaySets, game.Observations, game.RefereeName,
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)

	return r.handleGameError(err)
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`
	game, err := scanGame(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to scan game by id %d: %w", id, err)
	}
	return game, nil
}

func (r *postgresGameRepository) ListByCompetition(ctx context.Context, competitionID int, roundFilter *int, statusFilter *models.GameStatus) ([]*models.Game, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + gameColumns + ` FROM games WHERE competition_id = $1`)

	args := []interface{}{competitionID}
	if roundFilter != nil {
		queryBuilder.WriteString(" AND round_number = $" + strconv.Itoa(len(args)+1))
		args = append(args, *roundFilter)
	}
	if statusFilter != nil {
		queryBuilder.WriteString(" AND status = $" + strconv.Itoa(len(args)+1))
		args = append(args, *statusFilter)
	}
	queryBuilder.WriteString(" ORDER BY round_number ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games for competition %d: %w", competitionID, err)
	}
	defer rows.Close()

	return collectGames(rows)
}

func (r *postgresGameRepository) UpdateResult(ctx context.Context, exec SQLExecutor, id int, homeScore, awayScore, homeSets, awaySets int, status models.GameStatus) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}

	query := `
		UPDATE games
		SET home_score = $1, away_score = $2, home_sets = $3, away_sets = $4,
		    status = $5, updated_at = NOW()
		WHERE id = $6`

	result, err := executor.ExecContext(ctx, query, homeScore, awayScore, homeSets, awaySets, status, id)
	if err != nil {
		return r.handleGameError(err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) UpdateStatus(ctx context.Context, id int, status models.GameStatus, observations string) error {
	query := `UPDATE games SET status = $1, observations = $2, updated_at = NOW() WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, observations, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) UpdateSchedule(ctx context.Context, id int, game *models.Game) error {
	query := `
		UPDATE games SET venue_id = $1, game_date = $2, referee_name = $3, updated_at = NOW()
		WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, game.VenueID, game.GameDate, game.RefereeName, id)
	if err != nil {
		return r.handleGameError(err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) ListUpcoming(ctx context.Context, limit int) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + ` FROM games
		WHERE status = $1 AND game_date IS NOT NULL AND game_date >= NOW()
		ORDER BY game_date ASC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, models.GameScheduled, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming games: %w", err)
	}
	defer rows.Close()

	return collectGames(rows)
}

func (r *postgresGameRepository) ListRecent(ctx context.Context, limit int) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + ` FROM games
		WHERE status = $1
		ORDER BY updated_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, models.GameFinished, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent games: %w", err)
	}
	defer rows.Close()

	return collectGames(rows)
}

func (r *postgresGameRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return count, nil
}

func collectGames(rows *sql.Rows) ([]*models.Game, error) {
	games := make([]*models.Game, 0)
	for rows.Next() {
		game, scanErr := scanGame(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", scanErr)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during game rows iteration: %w", err)
	}
	return games, nil
}

func (r *postgresGameRepository) handleGameError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "games_competition_id_fkey":
			return ErrGameCompetitionInvalid
		case "games_home_team_id_fkey", "games_away_team_id_fkey":
			return ErrGameTeamInvalid
		}
	}
	return err
}
