package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/reggysosa/tournament-gateway/models"
)

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `id, name, max_teams, start_date, status, winner, bracket, created_at`

func scanTournament(row interface{ Scan(...any) error }) (models.Tournament, error) {
	var (
		t         models.Tournament
		maxTeams  sql.NullInt64
		startDate sql.NullString
		status    sql.NullString
		winner    sql.NullString
		bracket   []byte
	)
	err := row.Scan(&t.ID, &t.Name, &maxTeams, &startDate, &status, &winner, &bracket, &t.CreatedAt)
	if err != nil {
		return models.Tournament{}, err
	}
	t.MaxTeams = int(maxTeams.Int64)
	if startDate.Valid {
		t.StartDate = &startDate.String
	}
	t.Status = models.TournamentStatus(status.String)
	if winner.Valid {
		t.Winner = &winner.String
	}
	if bracket != nil {
		t.Bracket = json.RawMessage(bracket)
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tournamentColumns+` FROM tournaments ORDER BY created_at`)
	if err != nil {
		return nil, handlePQError(err, "list tournaments")
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		t, scanErr := scanTournament(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) (*models.Tournament, error) {
	query := `
		INSERT INTO tournaments (name, max_teams, start_date, status, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
		RETURNING ` + tournamentColumns

	created, err := scanTournament(r.db.QueryRowContext(ctx, query,
		t.Name, t.MaxTeams, t.StartDate, t.Status, t.CreatedAt,
	))
	if err != nil {
		return nil, handlePQError(err, "create tournament")
	}
	return &created, nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id models.ID) (*models.Tournament, error) {
	t, err := scanTournament(r.db.QueryRowContext(ctx,
		`SELECT `+tournamentColumns+` FROM tournaments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, handlePQError(err, "get tournament")
	}
	return &t, nil
}

// Update обновляет только переданные колонки. Отсутствие строки ошибкой не считается.
func (r *postgresTournamentRepository) Update(ctx context.Context, id models.ID, patch models.TournamentPatch) error {
	assignments := patch.Assignments()
	if len(assignments) == 0 {
		return nil
	}

	sets := make([]string, 0, len(assignments))
	args := make([]any, 0, len(assignments)+1)
	for i, a := range assignments {
		value := a.Value
		if raw, ok := value.(json.RawMessage); ok {
			// jsonb принимает текстовое представление, но не bytea.
			value = string(raw)
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", a.Column, i+1))
		args = append(args, value)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE tournaments SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return handlePQError(err, "update tournament")
	}
	return nil
}

// DeleteCascade удаляет регистрации и турнир в одной транзакции, частичного результата не бывает.
func (r *postgresTournamentRepository) DeleteCascade(ctx context.Context, id models.ID) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tournament_registrations WHERE tournament_id = $1`, id); err != nil {
		return handlePQError(err, "delete tournament registrations")
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id); err != nil {
		return handlePQError(err, "delete tournament")
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tournament deletion: %w", err)
	}
	return nil
}
