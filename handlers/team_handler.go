package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/reggysosa/tournament-gateway/models"
	"github.com/reggysosa/tournament-gateway/services"
)

type TeamHandler struct {
	opts   Options
	logger *slog.Logger
}

func NewTeamHandler(opts Options) *TeamHandler {
	return &TeamHandler{opts: opts, logger: opts.logger()}
}

func (h *TeamHandler) teamService(r *http.Request) (services.TeamService, error) {
	store, err := storeFrom(r)
	if err != nil {
		return nil, err
	}
	return services.NewTeamService(store.Teams, h.opts.Events, h.opts.Now), nil
}

// ListTeams обрабатывает GET /teams
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	h.list(r).write(w, h.logger)
}

func (h *TeamHandler) list(r *http.Request) Result {
	svc, err := h.teamService(r)
	if err != nil {
		return mapServiceError(h.logger, r, err)
	}

	teams, err := svc.ListTeams(r.Context())
	if err != nil {
		if !h.opts.DegradeListOnError {
			return mapServiceError(h.logger, r, err)
		}
		h.logger.Warn("listing teams failed, responding with empty list", slog.Any("error", err))
		teams = nil
	}
	if teams == nil {
		teams = []models.Team{}
	}
	return Success(http.StatusOK, teams)
}

// CreateTeam обрабатывает POST /teams
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	h.create(w, r).write(w, h.logger)
}

func (h *TeamHandler) create(w http.ResponseWriter, r *http.Request) Result {
	svc, err := h.teamService(r)
	if err != nil {
		return mapServiceError(h.logger, r, err)
	}

	var body map[string]json.RawMessage
	if err := readJSON(w, r, &body); err != nil {
		return badRequest(h.logger, r, err)
	}

	team, err := svc.CreateTeam(r.Context(), services.ParseCreateTeamInput(body))
	if err != nil {
		return mapServiceError(h.logger, r, err)
	}
	return Success(http.StatusCreated, okResponse("team", team))
}
