package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/reggysosa/tournament-gateway/events"
	"github.com/reggysosa/tournament-gateway/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// API открыт для любого origin (Access-Control-Allow-Origin: *), подписки тоже.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub    *events.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *events.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeTeams подписывает на события команд: /ws/teams
func (h *WebSocketHandler) ServeTeams(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, services.RoomTeams)
}

// ServeTournaments подписывает на события всех турниров: /ws/tournaments
func (h *WebSocketHandler) ServeTournaments(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, services.RoomTournaments)
}

// ServeTournament подписывает на события одного турнира: /ws/tournaments/{tournamentID}
func (h *WebSocketHandler) ServeTournament(w http.ResponseWriter, r *http.Request) {
	id := idFromURL(r, "tournamentID")
	if id.IsZero() {
		badRequest(h.logger, r, services.ErrTournamentIDRequired).write(w, h.logger)
		return
	}
	h.serve(w, r, services.TournamentRoom(id))
}

func (h *WebSocketHandler) serve(w http.ResponseWriter, r *http.Request, room string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту HTTP-ошибкой
		h.logger.Warn("websocket upgrade failed", slog.String("room", room), slog.Any("error", err))
		return
	}
	h.hub.Serve(conn, room)
}
