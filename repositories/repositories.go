package repositories

import (
	"context"
	"errors"

	"github.com/reggysosa/tournament-gateway/models"
)

var (
	ErrStoreUnavailable   = errors.New("store is unavailable")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrConcurrentUpdate   = errors.New("row was modified concurrently")
	ErrPartialFailure     = errors.New("operation was only partially applied")
	ErrDuplicate          = errors.New("row already exists")
	ErrInvalidReference   = errors.New("referenced row does not exist")
)

// TeamRepository определяет операции над таблицей teams.
type TeamRepository interface {
	List(ctx context.Context) ([]models.Team, error)
	// Create вставляет команду и возвращает строку в том виде, в каком её сохранило хранилище.
	Create(ctx context.Context, team *models.Team) (*models.Team, error)
	// GetInvites возвращает текущий список приглашений. nil означает NULL в хранилище.
	GetInvites(ctx context.Context, id models.ID) ([]string, error)
	// ReplaceInvites записывает next, только если в хранилище всё ещё лежит current.
	// Иначе возвращает ErrConcurrentUpdate.
	ReplaceInvites(ctx context.Context, id models.ID, current, next []string) (*models.Team, error)
}

// TournamentRepository определяет операции над таблицей tournaments.
type TournamentRepository interface {
	List(ctx context.Context) ([]models.Tournament, error)
	Create(ctx context.Context, t *models.Tournament) (*models.Tournament, error)
	GetByID(ctx context.Context, id models.ID) (*models.Tournament, error)
	Update(ctx context.Context, id models.ID, patch models.TournamentPatch) error
	// DeleteCascade удаляет регистрации турнира, затем сам турнир.
	// Если первый шаг прошёл, а второй нет, возвращается ErrPartialFailure.
	DeleteCascade(ctx context.Context, id models.ID) error
}

// RegistrationRepository определяет операции над tournament_registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg models.Registration) error
	Delete(ctx context.Context, reg models.Registration) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Store bundles the repositories bound to one store handle.
type Store struct {
	Teams         TeamRepository
	Tournaments   TournamentRepository
	Registrations RegistrationRepository
	Health        Pinger
}

// StoreFactory builds a Store for a single request. Failures wrap ErrStoreUnavailable
// together with the configuration cause.
type StoreFactory interface {
	Open(ctx context.Context) (*Store, error)
}
