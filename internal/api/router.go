package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gonzoleague/scoreboard/internal/api/handlers"
	"github.com/gonzoleague/scoreboard/internal/api/middleware"
	"github.com/gonzoleague/scoreboard/internal/config"
	"github.com/gonzoleague/scoreboard/internal/service"
	"github.com/gonzoleague/scoreboard/internal/websocket"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	teamHandler := handlers.NewTeamHandler(services.Team)
	gameHandler := handlers.NewGameHandler(services.Game, hub, cfg)
	gamePlayerHandler := handlers.NewGamePlayerHandler(services.Game)
	bracketHandler := handlers.NewBracketHandler(services.Bracket, hub)
	statsHandler := handlers.NewStatsHandler(services.Stats)
	syncHandler := handlers.NewSyncHandler(services.Sync)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Route("/api", func(r chi.Router) {
		// Auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Public read surface: displays and the league site need no token.
		r.Get("/teams", teamHandler.List)
		r.Get("/teams/{id}", teamHandler.Get)
		r.Get("/teams/{id}/players", teamHandler.GetRoster)
		r.Get("/games", gameHandler.List)
		r.Get("/games/{id}", gameHandler.Get)
		r.Get("/games/{id}/players", gamePlayerHandler.List)
		r.Get("/bracket", bracketHandler.Get)
		r.Get("/standings", statsHandler.Standings)
		r.Get("/stats/players", statsHandler.PlayerStats)
		r.Get("/tournament/games", statsHandler.TournamentGames)

		// Offline score upload, authorized by the shared sync key.
		r.Post("/sync/game", syncHandler.ImportGame)

		// Everything that mutates requires an operator token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Post("/teams", teamHandler.Create)
			r.Delete("/teams/{id}", teamHandler.Delete)
			r.Post("/teams/{id}/players", teamHandler.CreatePlayer)
			r.Put("/players/{playerId}", teamHandler.UpdatePlayer)
			r.Delete("/players/{playerId}", teamHandler.DeletePlayer)

			r.Post("/games", gameHandler.Create)
			r.Delete("/games/{id}", gameHandler.Delete)

			// Scoreboard control. {id} may be the literal "current".
			r.Post("/games/{id}/score", gameHandler.Score)
			r.Post("/games/{id}/foul", gameHandler.Foul)
			r.Post("/games/{id}/clock/toggle", gameHandler.ClockToggle)
			r.Put("/games/{id}/clock", gameHandler.ClockSet)
			r.Post("/games/{id}/clock/reset", gameHandler.ClockReset)
			r.Post("/games/{id}/period", gameHandler.Period)
			r.Post("/games/{id}/possession", gameHandler.PossessionToggle)
			r.Post("/games/{id}/timeout", gameHandler.Timeout)
			r.Post("/games/{id}/swap", gameHandler.SwapTeams)
			r.Post("/games/{id}/elam", gameHandler.ElamActivate)
			r.Delete("/games/{id}/elam", gameHandler.ElamDeactivate)
			r.Post("/games/{id}/end", gameHandler.End)

			// Box score rows
			r.Post("/games/{id}/players", gamePlayerHandler.Add)
			r.Put("/game-players/{gamePlayerId}", gamePlayerHandler.UpdateStats)
			r.Put("/game-players/{gamePlayerId}/missing", gamePlayerHandler.UpdateMissing)
			r.Delete("/game-players/{gamePlayerId}", gamePlayerHandler.Delete)

			r.Post("/bracket/init", bracketHandler.Init)
			r.Put("/bracket/slots/{slotId}", bracketHandler.UpdateSlot)
			r.Post("/bracket/games", bracketHandler.CreateMatchGame)
			r.Delete("/bracket", bracketHandler.Reset)
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
