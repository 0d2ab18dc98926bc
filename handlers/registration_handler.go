package handlers

import (
	"log/slog"
	"net/http"

	"github.com/reggysosa/tournament-gateway/models"
	"github.com/reggysosa/tournament-gateway/services"
)

type RegistrationHandler struct {
	opts   Options
	logger *slog.Logger
}

func NewRegistrationHandler(opts Options) *RegistrationHandler {
	return &RegistrationHandler{opts: opts, logger: opts.logger()}
}

type registerRequest struct {
	TeamID models.ID `json:"teamId"`
}

func (h *RegistrationHandler) registrationService(r *http.Request) (services.RegistrationService, error) {
	store, err := storeFrom(r)
	if err != nil {
		return nil, err
	}
	return services.NewRegistrationService(store.Registrations, h.opts.Events), nil
}

// RegisterTeam обрабатывает POST /tournaments/{tournamentID}/register
func (h *RegistrationHandler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	h.register(w, r).write(w, h.logger)
}

func (h *RegistrationHandler) register(w http.ResponseWriter, r *http.Request) Result {
	svc, err := h.registrationService(r)
	if err != nil {
		return mapServiceError(h.logger, r, err)
	}

	tournamentID := idFromURL(r, "tournamentID")
	if tournamentID.IsZero() {
		return badRequest(h.logger, r, services.ErrTournamentIDRequired)
	}

	var req registerRequest
	if err := readJSON(w, r, &req); err != nil {
		return badRequest(h.logger, r, err)
	}

	if err := svc.RegisterTeam(r.Context(), tournamentID, req.TeamID); err != nil {
		return mapServiceError(h.logger, r, err)
	}
	return Success(http.StatusCreated, okResponse("", nil))
}

// UnregisterTeam обрабатывает DELETE /tournaments/{tournamentID}/register/{teamID}
func (h *RegistrationHandler) UnregisterTeam(w http.ResponseWriter, r *http.Request) {
	h.unregister(r).write(w, h.logger)
}

func (h *RegistrationHandler) unregister(r *http.Request) Result {
	svc, err := h.registrationService(r)
	if err != nil {
		return mapServiceError(h.logger, r, err)
	}

	err = svc.UnregisterTeam(r.Context(), idFromURL(r, "tournamentID"), idFromURL(r, "teamID"))
	if err != nil {
		return mapServiceError(h.logger, r, err)
	}
	return Success(http.StatusOK, okResponse("", nil))
}
