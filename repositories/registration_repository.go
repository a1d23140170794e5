package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/sgce/sports-competition-system/models"
)

var (
	ErrRegistrationNotFound = errors.New("team registration not found")
	ErrRegistrationConflict = errors.New("team is already registered for this competition")
	ErrRegistrationInvalid  = errors.New("registration team or competition conflict or invalid")
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.TeamRegistration) error
	GetByCompetitionAndTeam(ctx context.Context, competitionID, teamID int) (*models.TeamRegistration, error)
	ListByCompetition(ctx context.Context, competitionID int, confirmedOnly bool) ([]*models.TeamRegistration, error)
	// ListConfirmedTeams returns the teams of confirmed registrations in
	// registration order — the team order fixture generation depends on.
	ListConfirmedTeams(ctx context.Context, competitionID int) ([]*models.Team, error)
	Confirm(ctx context.Context, competitionID, teamID int) error
	UpdateGroupName(ctx context.Context, exec SQLExecutor, competitionID, teamID int, groupName string) error
	Delete(ctx context.Context, competitionID, teamID int) error
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, registration *models.TeamRegistration) error {
	query := `
		INSERT INTO team_registrations (competition_id, team_id, is_confirmed, group_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, registration_date`

	err := r.db.QueryRowContext(ctx, query,
		registration.CompetitionID, registration.TeamID, registration.IsConfirmed, registration.GroupName,
	).Scan(&registration.ID, &registration.RegistrationDate)

	return r.handleRegistrationError(err)
}

func (r *postgresRegistrationRepository) GetByCompetitionAndTeam(ctx context.Context, competitionID, teamID int) (*models.TeamRegistration, error) {
	query := `
		SELECT id, competition_id, team_id, is_confirmed, group_name, registration_date
		FROM team_registrations
		WHERE competition_id = $1 AND team_id = $2`

	registration := &models.TeamRegistration{}
	err := r.db.QueryRowContext(ctx, query, competitionID, teamID).Scan(
		&registration.ID, &registration.CompetitionID, &registration.TeamID,
		&registration.IsConfirmed, &registration.GroupName, &registration.RegistrationDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to scan registration: %w", err)
	}
	return registration, nil
}

func (r *postgresRegistrationRepository) ListByCompetition(ctx context.Context, competitionID int, confirmedOnly bool) ([]*models.TeamRegistration, error) {
	query := `
		SELECT id, competition_id, team_id, is_confirmed, group_name, registration_date
		FROM team_registrations
		WHERE competition_id = $1`
	if confirmedOnly {
		query += ` AND is_confirmed = TRUE`
	}
	query += ` ORDER BY registration_date ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations for competition %d: %w", competitionID, err)
	}
	defer rows.Close()

	registrations := make([]*models.TeamRegistration, 0)
	for rows.Next() {
		registration := &models.TeamRegistration{}
		if scanErr := rows.Scan(
			&registration.ID, &registration.CompetitionID, &registration.TeamID,
			&registration.IsConfirmed, &registration.GroupName, &registration.RegistrationDate,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", scanErr)
		}
		registrations = append(registrations, registration)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during registration rows iteration: %w", err)
	}
	return registrations, nil
}

func (r *postgresRegistrationRepository) ListConfirmedTeams(ctx context.Context, competitionID int) ([]*models.Team, error) {
	query := `
		SELECT t.id, t.name, t.sport, t.coach_name, t.logo_key, t.created_at
		FROM team_registrations tr
		JOIN teams t ON t.id = tr.team_id
		WHERE tr.competition_id = $1 AND tr.is_confirmed = TRUE
		ORDER BY tr.registration_date ASC, tr.id ASC`

	rows, err := r.db.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query confirmed teams for competition %d: %w", competitionID, err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team := &models.Team{}
		if scanErr := rows.Scan(
			&team.ID, &team.Name, &team.Sport, &team.CoachName, &team.LogoKey, &team.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan confirmed team row: %w", scanErr)
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during confirmed team rows iteration: %w", err)
	}
	return teams, nil
}

func (r *postgresRegistrationRepository) Confirm(ctx context.Context, competitionID, teamID int) error {
	query := `
		UPDATE team_registrations SET is_confirmed = TRUE
		WHERE competition_id = $1 AND team_id = $2`
	result, err := r.db.ExecContext(ctx, query, competitionID, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) UpdateGroupName(ctx context.Context, exec SQLExecutor, competitionID, teamID int, groupName string) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE team_registrations SET group_name = $1
		WHERE competition_id = $2 AND team_id = $3`
	result, err := executor.ExecContext(ctx, query, groupName, competitionID, teamID)
	if err != nil {
		return fmt.Errorf("failed to update group for team %d in competition %d: %w", teamID, competitionID, err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) Delete(ctx context.Context, competitionID, teamID int) error {
	query := `DELETE FROM team_registrations WHERE competition_id = $1 AND team_id = $2`
	result, err := r.db.ExecContext(ctx, query, competitionID, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) handleRegistrationError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "team_registrations_competition_id_team_id_key":
			return ErrRegistrationConflict
		case "team_registrations_competition_id_fkey", "team_registrations_team_id_fkey":
			return ErrRegistrationInvalid
		}
	}
	return err
}
