package repositories

import (
	"context"
	"net/http"
	"net/url"

	"github.com/reggysosa/tournament-gateway/models"
)

const tableTeams = "teams"

type postgrestTeamRepository struct {
	client *postgrestClient
}

func (r *postgrestTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	err := r.client.do(ctx, http.MethodGet, tableTeams, url.Values{"select": {"*"}}, nil, "", &teams)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []models.Team{}
	}
	for i := range teams {
		teams[i].Normalize()
	}
	return teams, nil
}

func (r *postgrestTeamRepository) Create(ctx context.Context, team *models.Team) (*models.Team, error) {
	var rows []models.Team
	err := r.client.do(ctx, http.MethodPost, tableTeams, url.Values{"select": {"*"}}, team, preferRepresentation, &rows)
	if err != nil {
		return nil, err
	}
	// Политики RLS могут скрыть вставленную строку; тогда отдаём то, что вставляли.
	created := *team
	if len(rows) > 0 {
		created = rows[0]
	}
	created.Normalize()
	return &created, nil
}

func (r *postgrestTeamRepository) GetInvites(ctx context.Context, id models.ID) ([]string, error) {
	var rows []struct {
		Invites []string `json:"invites"`
	}
	query := url.Values{
		"select": {"invites"},
		"id":     {eq(id.String())},
	}
	if err := r.client.do(ctx, http.MethodGet, tableTeams, query, nil, "", &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrTeamNotFound
	}
	return rows[0].Invites, nil
}

func (r *postgrestTeamRepository) ReplaceInvites(ctx context.Context, id models.ID, current, next []string) (*models.Team, error) {
	query := url.Values{
		"select": {"*"},
		"id":     {eq(id.String())},
	}
	// Условная запись: обновляем строку, только если invites не изменились с момента чтения.
	if current == nil {
		query.Set("invites", "is.null")
	} else {
		query.Set("invites", eq(arrayLiteral(current)))
	}

	body := map[string][]string{"invites": next}
	var rows []models.Team
	if err := r.client.do(ctx, http.MethodPatch, tableTeams, query, body, preferRepresentation, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrConcurrentUpdate
	}
	rows[0].Normalize()
	return &rows[0], nil
}
