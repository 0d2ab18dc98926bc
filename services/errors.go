package services

import (
	"errors"
	"fmt"
)

// Общие ошибки, используемые в сервисах и при маппинге в HTTP.
var (
	// Ошибки валидации: все оборачивают ErrValidationFailed и отдаются как bad_request.
	ErrValidationFailed = errors.New("validation failed")

	ErrTeamIDRequired             = fmt.Errorf("%w: team id is required", ErrValidationFailed)
	ErrTeamNameRequired           = fmt.Errorf("%w: team name is required", ErrValidationFailed)
	ErrTeamCaptainRequired        = fmt.Errorf("%w: team captain is required", ErrValidationFailed)
	ErrEmailRequired              = fmt.Errorf("%w: email is required", ErrValidationFailed)
	ErrTournamentIDRequired       = fmt.Errorf("%w: tournament id is required", ErrValidationFailed)
	ErrTournamentNameRequired     = fmt.Errorf("%w: tournament name is required", ErrValidationFailed)
	ErrTournamentCapacityRequired = fmt.Errorf("%w: maxTeams must be a non-zero integer", ErrValidationFailed)
	ErrNoUpdatableFields          = fmt.Errorf("%w: no updatable tournament fields provided", ErrValidationFailed)

	// Ресурс не найден
	ErrTournamentNotFound = errors.New("tournament not found")

	// Ошибки многошаговых операций
	ErrInviteConflict = errors.New("team invites kept changing concurrently")
	ErrPartialFailure = errors.New("operation was only partially applied")

	// Пробы состояния хранилища
	ErrStoreMissingConfig = errors.New("store configuration is missing")
	ErrStoreBadURL        = errors.New("store url is malformed")
	ErrStoreUnreachable   = errors.New("store is unreachable")
)
