package repositories

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/reggysosa/tournament-gateway/models"
)

const (
	tableTournaments   = "tournaments"
	tableRegistrations = "tournament_registrations"
)

type postgrestTournamentRepository struct {
	client *postgrestClient
}

// tournamentInsert - колонки, которые шлюз заполняет при создании; id назначает хранилище.
type tournamentInsert struct {
	Name      string                  `json:"name"`
	MaxTeams  int                     `json:"max_teams"`
	StartDate *string                 `json:"start_date"`
	Status    models.TournamentStatus `json:"status"`
	CreatedAt models.Timestamp        `json:"created_at"`
}

func (r *postgrestTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	var tournaments []models.Tournament
	err := r.client.do(ctx, http.MethodGet, tableTournaments, url.Values{"select": {"*"}}, nil, "", &tournaments)
	if err != nil {
		return nil, err
	}
	if tournaments == nil {
		tournaments = []models.Tournament{}
	}
	return tournaments, nil
}

func (r *postgrestTournamentRepository) Create(ctx context.Context, t *models.Tournament) (*models.Tournament, error) {
	row := tournamentInsert{
		Name:      t.Name,
		MaxTeams:  t.MaxTeams,
		StartDate: t.StartDate,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
	}
	var rows []models.Tournament
	err := r.client.do(ctx, http.MethodPost, tableTournaments, url.Values{"select": {"*"}}, row, preferRepresentation, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		created := *t
		return &created, nil
	}
	return &rows[0], nil
}

func (r *postgrestTournamentRepository) GetByID(ctx context.Context, id models.ID) (*models.Tournament, error) {
	query := url.Values{
		"select": {"*"},
		"id":     {eq(id.String())},
		"limit":  {"1"},
	}
	var rows []models.Tournament
	if err := r.client.do(ctx, http.MethodGet, tableTournaments, query, nil, "", &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrTournamentNotFound
	}
	return &rows[0], nil
}

func (r *postgrestTournamentRepository) Update(ctx context.Context, id models.ID, patch models.TournamentPatch) error {
	body := make(map[string]any)
	for _, a := range patch.Assignments() {
		body[a.Column] = a.Value
	}
	query := url.Values{"id": {eq(id.String())}}
	return r.client.do(ctx, http.MethodPatch, tableTournaments, query, body, preferMinimal, nil)
}

// DeleteCascade выполняет два независимых запроса: транзакций через REST нет.
func (r *postgrestTournamentRepository) DeleteCascade(ctx context.Context, id models.ID) error {
	regQuery := url.Values{"tournament_id": {eq(id.String())}}
	if err := r.client.do(ctx, http.MethodDelete, tableRegistrations, regQuery, nil, preferMinimal, nil); err != nil {
		return fmt.Errorf("failed to delete registrations of tournament %s: %w", id, err)
	}

	query := url.Values{"id": {eq(id.String())}}
	if err := r.client.do(ctx, http.MethodDelete, tableTournaments, query, nil, preferMinimal, nil); err != nil {
		return fmt.Errorf("%w: registrations of tournament %s deleted, tournament row kept: %v", ErrPartialFailure, id, err)
	}
	return nil
}

type postgrestRegistrationRepository struct {
	client *postgrestClient
}

func (r *postgrestRegistrationRepository) Create(ctx context.Context, reg models.Registration) error {
	return r.client.do(ctx, http.MethodPost, tableRegistrations, nil, reg, preferMinimal, nil)
}

func (r *postgrestRegistrationRepository) Delete(ctx context.Context, reg models.Registration) error {
	query := url.Values{
		"tournament_id": {eq(reg.TournamentID.String())},
		"team_id":       {eq(reg.TeamID.String())},
	}
	return r.client.do(ctx, http.MethodDelete, tableRegistrations, query, nil, preferMinimal, nil)
}
