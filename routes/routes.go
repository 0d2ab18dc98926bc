package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/reggysosa/tournament-gateway/handlers"
	"github.com/reggysosa/tournament-gateway/middleware"
	"github.com/reggysosa/tournament-gateway/repositories"
)

// Handlers собирает все обработчики, которые монтирует SetupRoutes.
type Handlers struct {
	Teams         *handlers.TeamHandler
	Invites       *handlers.InviteHandler
	Tournaments   *handlers.TournamentHandler
	Registrations *handlers.RegistrationHandler
	Status        *handlers.StatusHandler
	WebSocket     *handlers.WebSocketHandler
}

// SetupRoutes монтирует API под prefix ("" - в корень). Маршруты ресурсов
// проходят через RequireStore, health и twitch проверяют хранилище сами.
func SetupRoutes(router chi.Router, prefix string, factory repositories.StoreFactory, logger *slog.Logger, h Handlers) {
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chimw.Recoverer)

	router.Get("/", h.Status.Index(prefix))

	gate := middleware.RequireStore(factory, handlers.StoreUnavailable(logger))

	api := func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.CORS(http.MethodGet))
			r.Get("/health", h.Status.Health)
			r.Options("/health", middleware.Preflight)
			r.Get("/twitch/status", h.Status.TwitchStatus)
			r.Options("/twitch/status", middleware.Preflight)
		})

		// Команды
		r.Group(func(r chi.Router) {
			r.Use(middleware.CORS(http.MethodGet, http.MethodPost))
			r.Options("/teams", middleware.Preflight)
			r.With(gate).Get("/teams", h.Teams.ListTeams)
			r.With(gate).Post("/teams", h.Teams.CreateTeam)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.CORS(http.MethodPost))
			r.Options("/teams/{teamID}/invite", middleware.Preflight)
			r.With(gate).Post("/teams/{teamID}/invite", h.Invites.InviteByEmail)
		})

		// Турниры
		r.Group(func(r chi.Router) {
			r.Use(middleware.CORS(http.MethodGet, http.MethodPost))
			r.Options("/tournaments", middleware.Preflight)
			r.With(gate).Get("/tournaments", h.Tournaments.ListHandler)
			r.With(gate).Post("/tournaments", h.Tournaments.CreateHandler)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.CORS(http.MethodGet, http.MethodPatch, http.MethodDelete))
			r.Options("/tournaments/{tournamentID}", middleware.Preflight)
			r.With(gate).Get("/tournaments/{tournamentID}", h.Tournaments.GetByIDHandler)
			r.With(gate).Patch("/tournaments/{tournamentID}", h.Tournaments.UpdateHandler)
			r.With(gate).Delete("/tournaments/{tournamentID}", h.Tournaments.DeleteHandler)
		})

		// Регистрации
		r.Group(func(r chi.Router) {
			r.Use(middleware.CORS(http.MethodPost))
			r.Options("/tournaments/{tournamentID}/register", middleware.Preflight)
			r.With(gate).Post("/tournaments/{tournamentID}/register", h.Registrations.RegisterTeam)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.CORS(http.MethodDelete))
			r.Options("/tournaments/{tournamentID}/register/{teamID}", middleware.Preflight)
			r.With(gate).Delete("/tournaments/{tournamentID}/register/{teamID}", h.Registrations.UnregisterTeam)
		})

		// WebSocket
		if h.WebSocket != nil {
			r.Get("/ws/teams", h.WebSocket.ServeTeams)
			r.Get("/ws/tournaments", h.WebSocket.ServeTournaments)
			r.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeTournament)
		}
	}

	if prefix == "" {
		router.Group(api)
	} else {
		router.Route(prefix, api)
	}
}
