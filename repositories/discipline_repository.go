package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sgce/sports-competition-system/models"
)

var ErrDisciplinaryRecordNotFound = errors.New("disciplinary record not found")

type DisciplineRepository interface {
	GetOrCreate(ctx context.Context, competitionID, playerID int) (*models.DisciplinaryRecord, error)
	Update(ctx context.Context, record *models.DisciplinaryRecord) error
	ListByCompetition(ctx context.Context, competitionID int, suspendedOnly bool) ([]*models.DisciplinaryRecord, error)
}

type postgresDisciplineRepository struct {
	db *sql.DB
}

func NewPostgresDisciplineRepository(db *sql.DB) DisciplineRepository {
	return &postgresDisciplineRepository{db: db}
}

func (r *postgresDisciplineRepository) GetOrCreate(ctx context.Context, competitionID, playerID int) (*models.DisciplinaryRecord, error) {
	record := &models.DisciplinaryRecord{}
	query := `
		SELECT id, competition_id, player_id, yellow_cards, red_cards, suspended, updated_at
		FROM disciplinary_records
		WHERE competition_id = $1 AND player_id = $2`

	err := r.db.QueryRowContext(ctx, query, competitionID, playerID).Scan(
		&record.ID, &record.CompetitionID, &record.PlayerID,
		&record.YellowCards, &record.RedCards, &record.Suspended, &record.UpdatedAt,
	)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to scan disciplinary record: %w", err)
	}

	insert := `
		INSERT INTO disciplinary_records (competition_id, player_id, yellow_cards, red_cards, suspended)
		VALUES ($1, $2, 0, 0, FALSE)
		RETURNING id, competition_id, player_id, yellow_cards, red_cards, suspended, updated_at`

	err = r.db.QueryRowContext(ctx, insert, competitionID, playerID).Scan(
		&record.ID, &record.CompetitionID, &record.PlayerID,
		&record.YellowCards, &record.RedCards, &record.Suspended, &record.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create disciplinary record for player %d in competition %d: %w",
			playerID, competitionID, err)
	}
	return record, nil
}

func (r *postgresDisciplineRepository) Update(ctx context.Context, record *models.DisciplinaryRecord) error {
	query := `
		UPDATE disciplinary_records
		SET yellow_cards = $1, red_cards = $2, suspended = $3, updated_at = NOW()
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		record.YellowCards, record.RedCards, record.Suspended, record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update disciplinary record %d: %w", record.ID, err)
	}
	return checkAffectedRows(result, ErrDisciplinaryRecordNotFound)
}

func (r *postgresDisciplineRepository) ListByCompetition(ctx context.Context, competitionID int, suspendedOnly bool) ([]*models.DisciplinaryRecord, error) {
	query := `
		SELECT id, competition_id, player_id, yellow_cards, red_cards, suspended, updated_at
		FROM disciplinary_records
		WHERE competition_id = $1`
	if suspendedOnly {
		query += ` AND suspended = TRUE`
	}
	query += ` ORDER BY player_id ASC`

	rows, err := r.db.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query disciplinary records for competition %d: %w", competitionID, err)
	}
	defer rows.Close()

	records := make([]*models.DisciplinaryRecord, 0)
	for rows.Next() {
		record := &models.DisciplinaryRecord{}
		if scanErr := rows.Scan(
			&record.ID, &record.CompetitionID, &record.PlayerID,
			&record.YellowCards, &record.RedCards, &record.Suspended, &record.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan disciplinary record row: %w", scanErr)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during disciplinary record rows iteration: %w", err)
	}
	return records, nil
}
