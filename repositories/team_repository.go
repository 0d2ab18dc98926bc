package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/reggysosa/tournament-gateway/models"
)

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, name, captain, members, invites, created_at`

func scanTeam(row interface{ Scan(...any) error }) (models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.Name, &t.Captain, pq.Array(&t.Members), pq.Array(&t.Invites), &t.CreatedAt)
	if err != nil {
		return models.Team{}, err
	}
	t.Normalize()
	return t, nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY created_at`)
	if err != nil {
		return nil, handlePQError(err, "list teams")
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		t, scanErr := scanTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) (*models.Team, error) {
	query := `
		INSERT INTO teams (id, name, captain, members, invites, created_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()))
		RETURNING ` + teamColumns

	created, err := scanTeam(r.db.QueryRowContext(ctx, query,
		team.ID, team.Name, team.Captain, pq.Array(team.Members), pq.Array(team.Invites), team.CreatedAt,
	))
	if err != nil {
		return nil, handlePQError(err, "create team")
	}
	return &created, nil
}

func (r *postgresTeamRepository) GetInvites(ctx context.Context, id models.ID) ([]string, error) {
	var (
		invites []string
		isNull  bool
	)
	// pq сканирует '{}' в nil, поэтому NULL определяется отдельно
	err := r.db.QueryRowContext(ctx, `SELECT invites, invites IS NULL FROM teams WHERE id = $1`, id).
		Scan(pq.Array(&invites), &isNull)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, handlePQError(err, "get team invites")
	}
	if isNull {
		return nil, nil
	}
	if invites == nil {
		invites = []string{}
	}
	return invites, nil
}

// ReplaceInvites - та же условная запись, что и в REST-варианте:
// строка меняется, только если invites совпадают с прочитанными.
func (r *postgresTeamRepository) ReplaceInvites(ctx context.Context, id models.ID, current, next []string) (*models.Team, error) {
	query := `
		UPDATE teams SET invites = $1
		WHERE id = $2 AND invites IS NOT DISTINCT FROM $3
		RETURNING ` + teamColumns

	var currentParam any
	if current != nil {
		currentParam = pq.Array(current)
	}
	updated, err := scanTeam(r.db.QueryRowContext(ctx, query, pq.Array(next), id, currentParam))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConcurrentUpdate
		}
		return nil, handlePQError(err, "replace team invites")
	}
	return &updated, nil
}
