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
	ErrCompetitionNotFound     = errors.New("competition not found")
	ErrCompetitionNameConflict = errors.New("competition name already exists")
)

type CompetitionRepository interface {
	Create(ctx context.Context, competition *models.Competition) error
	GetByID(ctx context.Context, id int) (*models.Competition, error)
	List(ctx context.Context, status *models.CompetitionStatus) ([]*models.Competition, error)
	Update(ctx context.Context, competition *models.Competition) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.CompetitionStatus) error
	Count(ctx context.Context, status *models.CompetitionStatus) (int, error)
	ListDueForStatusChange(ctx context.Context) ([]*models.Competition, error)
}

type postgresCompetitionRepository struct {
	db *sql.DB
}

func NewPostgresCompetitionRepository(db *sql.DB) CompetitionRepository {
	return &postgresCompetitionRepository{db: db}
}

func (r *postgresCompetitionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const competitionColumns = `id, name, sport, format, status, max_teams, start_date, end_date, created_at, updated_at`

func scanCompetition(row interface{ Scan(...interface{}) error }) (*models.Competition, error) {
	c := &models.Competition{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Sport, &c.Format, &c.Status,
		&c.MaxTeams, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresCompetitionRepository) Create(ctx context.Context, competition *models.Competition) error {
	query := `
		INSERT INTO competitions (name, sport, format, status, max_teams, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		competition.Name, competition.Sport, competition.Format, competition.Status,
		competition.MaxTeams, competition.StartDate, competition.EndDate,
	).Scan(&competition.ID, &competition.CreatedAt, &competition.UpdatedAt)

	return r.handleCompetitionError(err)
}

func (r *postgresCompetitionRepository) GetByID(ctx context.Context, id int) (*models.Competition, error) {
	query := `SELECT ` + competitionColumns + ` FROM competitions WHERE id = $1`
	competition, err := scanCompetition(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to scan competition by id %d: %w", id, err)
	}
	return competition, nil
}

func (r *postgresCompetitionRepository) List(ctx context.Context, statusFilter *models.CompetitionStatus) ([]*models.Competition, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + competitionColumns + ` FROM competitions`)

	args := []interface{}{}
	if statusFilter != nil {
		queryBuilder.WriteString(" WHERE status = $" + strconv.Itoa(len(args)+1))
		args = append(args, *statusFilter)
	}
	queryBuilder.WriteString(" ORDER BY start_date DESC NULLS LAST, id DESC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query competitions: %w", err)
	}
	defer rows.Close()

	competitions := make([]*models.Competition, 0)
	for rows.Next() {
		competition, scanErr := scanCompetition(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan competition row: %w", scanErr)
		}
		competitions = append(competitions, competition)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during competition rows iteration: %w", err)
	}
	return competitions, nil
}

func (r *postgresCompetitionRepository) Update(ctx context.Context, competition *models.Competition) error {
	query := `
		UPDATE competitions
		SET name = $1, max_teams = $2, start_date = $3, end_date = $4, updated_at = NOW()
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		competition.Name, competition.MaxTeams, competition.StartDate, competition.EndDate, competition.ID,
	)
	if err != nil {
		return r.handleCompetitionError(err)
	}
	return checkAffectedRows(result, ErrCompetitionNotFound)
}

func (r *postgresCompetitionRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.CompetitionStatus) error {
	executor := r.getExecutor(exec)
	query := `UPDATE competitions SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update competition %d status: %w", id, err)
	}
	return checkAffectedRows(result, ErrCompetitionNotFound)
}

func (r *postgresCompetitionRepository) Count(ctx context.Context, statusFilter *models.CompetitionStatus) (int, error) {
	query := `SELECT COUNT(*) FROM competitions`
	args := []interface{}{}
	if statusFilter != nil {
		query += ` WHERE status = $1`
		args = append(args, *statusFilter)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count competitions: %w", err)
	}
	return count, nil
}

// ListDueForStatusChange returns ongoing competitions whose end date has
// passed; the status scheduler finishes them.
func (r *postgresCompetitionRepository) ListDueForStatusChange(ctx context.Context) ([]*models.Competition, error) {
	query := `
		SELECT ` + competitionColumns + `
		FROM competitions
		WHERE status = $1 AND end_date IS NOT NULL AND end_date < NOW()
		ORDER BY end_date ASC`

	rows, err := r.db.QueryContext(ctx, query, models.CompetitionOngoing)
	if err != nil {
		return nil, fmt.Errorf("failed to query due competitions: %w", err)
	}
	defer rows.Close()

	competitions := make([]*models.Competition, 0)
	for rows.Next() {
		competition, scanErr := scanCompetition(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan due competition row: %w", scanErr)
		}
		competitions = append(competitions, competition)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during due competition rows iteration: %w", err)
	}
	return competitions, nil
}

func (r *postgresCompetitionRepository) handleCompetitionError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint == "competitions_name_key" {
		return ErrCompetitionNameConflict
	}
	return err
}
