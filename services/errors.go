package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Валидация и бизнес-правила
	ErrValidationFailed      = errors.New("validation failed")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrPasswordTooShort      = errors.New("password is too short")
	ErrTeamNameRequired      = errors.New("team name is required")
	ErrUnknownSport          = errors.New("unknown sport")
	ErrInvalidPosition       = errors.New("position is not valid for this sport")
	ErrTeamRosterFull        = errors.New("team roster is full for this sport")
	ErrSportMismatch         = errors.New("team sport does not match the competition sport")
	ErrNotCardBasedSport     = errors.New("sport does not track disciplinary cards")
	ErrCompetitionFull       = errors.New("competition registration is full")
	ErrRegistrationNotOpen   = errors.New("competition registration is not open")
	ErrCompetitionNotOngoing = errors.New("competition is not ongoing")
	ErrNotEnoughTeams        = errors.New("not enough confirmed teams to generate fixtures")
	ErrGameAlreadyFinished   = errors.New("game already has a final result")
	ErrNegativeScore         = errors.New("scores must be non-negative")

	// Конфликты
	ErrUsernameConflict        = errors.New("username is already in use")
	ErrTeamNameConflict        = errors.New("team name is already in use")
	ErrRegistrationConflict    = errors.New("team is already registered for this competition")
	ErrCompetitionNameConflict = errors.New("competition name already exists")
	ErrStandingsInconsistent   = errors.New("standings cannot be computed from the stored games")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound         = errors.New("user not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrCompetitionNotFound  = errors.New("competition not found")
	ErrGameNotFound         = errors.New("game not found")
	ErrRegistrationNotFound = errors.New("team registration not found")

	// Ошибки статусов
	ErrCompetitionInvalidStatusTransition = errors.New("invalid competition status transition")
	ErrCompetitionInvalidCapacity         = errors.New("competition max teams must be between 2 and 64")
	ErrCompetitionInvalidDateRange        = errors.New("competition end date must be after start date")
)
