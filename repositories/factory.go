package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/reggysosa/tournament-gateway/config"
)

// PostgRESTFactory строит клиент Supabase REST на каждый запрос из текущих настроек.
type PostgRESTFactory struct {
	httpClient   *http.Client
	loadSettings func() (config.StoreSettings, error)
}

func NewPostgRESTFactory(httpClient *http.Client) *PostgRESTFactory {
	return &PostgRESTFactory{httpClient: httpClient, loadSettings: config.LoadStoreSettings}
}

// WithSettingsLoader replaces the environment lookup, e.g. with fixed settings in tests.
func (f *PostgRESTFactory) WithSettingsLoader(load func() (config.StoreSettings, error)) *PostgRESTFactory {
	f.loadSettings = load
	return f
}

func (f *PostgRESTFactory) Open(_ context.Context) (*Store, error) {
	settings, err := f.loadSettings()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	client := &postgrestClient{http: f.httpClient, settings: settings}
	return &Store{
		Teams:         &postgrestTeamRepository{client: client},
		Tournaments:   &postgrestTournamentRepository{client: client},
		Registrations: &postgrestRegistrationRepository{client: client},
		Health:        client,
	}, nil
}

// PostgresFactory отдаёт репозитории поверх общего пула соединений.
// Пул nil означает, что DATABASE_URL не задан. Настройки Supabase проверяются так же,
// как для REST-клиента, чтобы поведение маршрутов не зависело от драйвера.
type PostgresFactory struct {
	db           *sql.DB
	loadSettings func() (config.StoreSettings, error)
}

func NewPostgresFactory(db *sql.DB) *PostgresFactory {
	return &PostgresFactory{db: db, loadSettings: config.LoadStoreSettings}
}

func (f *PostgresFactory) WithSettingsLoader(load func() (config.StoreSettings, error)) *PostgresFactory {
	f.loadSettings = load
	return f
}

func (f *PostgresFactory) Open(_ context.Context) (*Store, error) {
	if _, err := f.loadSettings(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if f.db == nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, config.ErrMissingEnv)
	}
	return &Store{
		Teams:         NewPostgresTeamRepository(f.db),
		Tournaments:   NewPostgresTournamentRepository(f.db),
		Registrations: NewPostgresRegistrationRepository(f.db),
		Health:        postgresPinger{db: f.db},
	}, nil
}
