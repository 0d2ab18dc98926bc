package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/reggysosa/tournament-gateway/repositories"
	"github.com/reggysosa/tournament-gateway/services"
)

type StatusHandler struct {
	factory repositories.StoreFactory
	live    *services.LiveStatusChecker
	logger  *slog.Logger
	service string
}

func NewStatusHandler(factory repositories.StoreFactory, live *services.LiveStatusChecker, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{factory: factory, live: live, logger: logger, service: "tournament-gateway"}
}

// Health обрабатывает GET /health. Причина сбоя отдаётся флагом, текст ошибки только в лог.
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.health(r).write(w, h.logger)
}

func (h *StatusHandler) health(r *http.Request) Result {
	err := services.ProbeStore(r.Context(), h.factory)
	switch {
	case err == nil:
		return Success(http.StatusOK, okResponse("", nil))
	case errors.Is(err, services.ErrStoreBadURL):
		return Failure(KindBadURL, http.StatusInternalServerError)
	case errors.Is(err, services.ErrStoreUnreachable):
		h.logger.Warn("store health probe failed", slog.Any("error", err))
		return Failure(KindUnreachable, http.StatusInternalServerError)
	default:
		return Failure(KindMissingEnv, http.StatusInternalServerError)
	}
}

// TwitchStatus обрабатывает GET /twitch/status и никогда не отвечает ошибкой.
func (h *StatusHandler) TwitchStatus(w http.ResponseWriter, r *http.Request) {
	Success(http.StatusOK, jsonResponse{"live": h.live.IsLive(r.Context())}).write(w, h.logger)
}

// Index обрабатывает GET / вне префикса API.
func (h *StatusHandler) Index(apiPrefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		Success(http.StatusOK, jsonResponse{
			"ok":      true,
			"service": h.service,
			"api":     apiPrefix + "/",
		}).write(w, h.logger)
	}
}
