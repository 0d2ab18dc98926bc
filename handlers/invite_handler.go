package handlers

import (
	"log/slog"
	"net/http"

	"github.com/reggysosa/tournament-gateway/services"
)

type InviteHandler struct {
	opts   Options
	logger *slog.Logger
}

func NewInviteHandler(opts Options) *InviteHandler {
	return &InviteHandler{opts: opts, logger: opts.logger()}
}

type inviteRequest struct {
	Email string `json:"email"`
}

// InviteByEmail обрабатывает POST /teams/{teamID}/invite
func (h *InviteHandler) InviteByEmail(w http.ResponseWriter, r *http.Request) {
	h.invite(w, r).write(w, h.logger)
}

func (h *InviteHandler) invite(w http.ResponseWriter, r *http.Request) Result {
	store, err := storeFrom(r)
	if err != nil {
		return mapServiceError(h.logger, r, err)
	}

	teamID := idFromURL(r, "teamID")
	if teamID.IsZero() {
		return badRequest(h.logger, r, services.ErrTeamIDRequired)
	}

	var req inviteRequest
	if err := readJSON(w, r, &req); err != nil {
		return badRequest(h.logger, r, err)
	}

	svc := services.NewInviteService(store.Teams, h.opts.Events)
	team, err := svc.InviteByEmail(r.Context(), teamID, req.Email)
	if err != nil {
		return mapServiceError(h.logger, r, err)
	}
	return Success(http.StatusOK, okResponse("team", team))
}
