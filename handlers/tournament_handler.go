package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/reggysosa/tournament-gateway/models"
	"github.com/reggysosa/tournament-gateway/services"
)

type TournamentHandler struct {
	opts   Options
	logger *slog.Logger
}

func NewTournamentHandler(opts Options) *TournamentHandler {
	return &TournamentHandler{opts: opts, logger: opts.logger()}
}

func (h *TournamentHandler) tournamentService(r *http.Request) (services.TournamentService, error) {
	store, err := storeFrom(r)
	if err != nil {
		return nil, err
	}
	return services.NewTournamentService(store.Tournaments, h.opts.Events, h.opts.Now), nil
}

// ListHandler обрабатывает GET /tournaments
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	h.list(r).write(w, h.logger)
}

func (h *TournamentHandler) list(r *http.Request) Result {
	svc, err := h.tournamentService(r)
	if err != nil {
		return mapServiceError(h.logger, r, err)
	}

	tournaments, err := svc.ListTournaments(r.Context())
	if err != nil {
		if !h.opts.DegradeListOnError {
			return mapServiceError(h.logger, r, err)
		}
		h.logger.Warn("listing tournaments failed, responding with empty list", slog.Any("error", err))
		tournaments = nil
	}
	if tournaments == nil {
		tournaments = []models.Tournament{}
	}
	return Success(http.StatusOK, tournaments)
}

// CreateHandler обрабатывает POST /tournaments
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	h.create(w, r).write(w, h.logger)
}

func (h *TournamentHandler) create(w http.ResponseWriter, r *http.Request) Result {
	svc, err := h.tournamentService(r)
	if err != nil {
		return mapServiceError(h.logger, r, err)
	}

	var body map[string]json.RawMessage
	if err := readJSON(w, r, &body); err != nil {
		return badRequest(h.logger, r, err)
	}

	tournament, err := svc.CreateTournament(r.Context(), services.ParseCreateTournamentInput(body))
	if err != nil {
		return mapServiceError(h.logger, r, err)
	}
	return Success(http.StatusCreated, okResponse("tournament", tournament))
}

// GetByIDHandler обрабатывает GET /tournaments/{tournamentID}. Строка отдаётся без конверта.
func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	h.get(r).write(w, h.logger)
}

func (h *TournamentHandler) get(r *http.Request) Result {
	svc, err := h.tournamentService(r)
	if err != nil {
		return mapServiceError(h.logger, r, err)
	}

	tournament, err := svc.GetTournament(r.Context(), idFromURL(r, "tournamentID"))
	if err != nil {
		return mapServiceError(h.logger, r, err)
	}
	return Success(http.StatusOK, tournament)
}

// UpdateHandler обрабатывает PATCH /tournaments/{tournamentID}
func (h *TournamentHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	h.update(w, r).write(w, h.logger)
}

func (h *TournamentHandler) update(w http.ResponseWriter, r *http.Request) Result {
	svc, err := h.tournamentService(r)
	if err != nil {
		return mapServiceError(h.logger, r, err)
	}

	id := idFromURL(r, "tournamentID")
	if id.IsZero() {
		return badRequest(h.logger, r, services.ErrTournamentIDRequired)
	}

	var body map[string]json.RawMessage
	if err := readJSON(w, r, &body); err != nil {
		return badRequest(h.logger, r, err)
	}

	if err := svc.UpdateTournament(r.Context(), id, services.ParseTournamentPatch(body)); err != nil {
		return mapServiceError(h.logger, r, err)
	}
	return Success(http.StatusOK, okResponse("", nil))
}

// DeleteHandler обрабатывает DELETE /tournaments/{tournamentID}
func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	h.delete(r).write(w, h.logger)
}

func (h *TournamentHandler) delete(r *http.Request) Result {
	svc, err := h.tournamentService(r)
	if err != nil {
		return mapServiceError(h.logger, r, err)
	}

	if err := svc.DeleteTournament(r.Context(), idFromURL(r, "tournamentID")); err != nil {
		return mapServiceError(h.logger, r, err)
	}
	return Success(http.StatusOK, okResponse("", nil))
}
