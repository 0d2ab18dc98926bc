package repositories

import (
	"context"
	"database/sql"

	"github.com/reggysosa/tournament-gateway/models"
)

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

// Create не проверяет повторную регистрацию: это решает схема хранилища.
func (r *postgresRegistrationRepository) Create(ctx context.Context, reg models.Registration) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tournament_registrations (tournament_id, team_id) VALUES ($1, $2)`,
		reg.TournamentID, reg.TeamID,
	)
	return handlePQError(err, "create registration")
}

func (r *postgresRegistrationRepository) Delete(ctx context.Context, reg models.Registration) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM tournament_registrations WHERE tournament_id = $1 AND team_id = $2`,
		reg.TournamentID, reg.TeamID,
	)
	return handlePQError(err, "delete registration")
}

type postgresPinger struct {
	db *sql.DB
}

func (p postgresPinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
