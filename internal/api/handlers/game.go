package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gonzoleague/scoreboard/internal/config"
	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/gonzoleague/scoreboard/internal/engine"
	"github.com/gonzoleague/scoreboard/internal/service"
	"github.com/gonzoleague/scoreboard/internal/websocket"
	"github.com/google/uuid"
)

type GameHandler struct {
	gameService *service.GameService
	hub         *websocket.Hub
	cfg         *config.Config
}

func NewGameHandler(gameService *service.GameService, hub *websocket.Hub, cfg *config.Config) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		hub:         hub,
		cfg:         cfg,
	}
}

// GameResponse is the game row plus the derived bonus indicators the
// displays render.
type GameResponse struct {
	*domain.Game
	HomeBonus string `json:"homeBonus"`
	AwayBonus string `json:"awayBonus"`
}

func newGameResponse(game *domain.Game) GameResponse {
	return GameResponse{
		Game:      game,
		HomeBonus: engine.Bonus(game.AwayFouls),
		AwayBonus: engine.Bonus(game.HomeFouls),
	}
}

// parseGameID reads the {id} route param. The literal "current" selects
// the most recent active game.
func parseGameID(r *http.Request) (*uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" || raw == "current" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

type CreateGameRequest struct {
	HomeTeamID   uuid.UUID `json:"homeTeamId"`
	AwayTeamID   uuid.UUID `json:"awayTeamId"`
	IsTournament bool      `json:"isTournament"`
}

func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.HomeTeamID == uuid.Nil || req.AwayTeamID == uuid.Nil {
		http.Error(w, "Both teams are required", http.StatusBadRequest)
		return
	}

	game, err := h.gameService.CreateGame(r.Context(), service.CreateGameInput{
		HomeTeamID:   req.HomeTeamID,
		AwayTeamID:   req.AwayTeamID,
		IsTournament: req.IsTournament,
	})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.hub.BroadcastGame(game)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(newGameResponse(game))
}

func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.GameStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.GameStatus(raw)
		if s != domain.GameStatusActive && s != domain.GameStatusCompleted {
			http.Error(w, "Invalid status filter", http.StatusBadRequest)
			return
		}
		status = &s
	}

	games, err := h.gameService.GetGames(r.Context(), status)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]GameResponse, 0, len(games))
	for _, g := range games {
		resp = append(resp, newGameResponse(g))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID, err := parseGameID(r)
	if err != nil {
		http.Error(w, "Invalid game ID", http.StatusBadRequest)
		return
	}

	game, err := h.gameService.Resolve(r.Context(), gameID)
	if err != nil {
		h.writeGameError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newGameResponse(game))
}

type DeleteGameRequest struct {
	Pin string `json:"pin"`
}

// Delete removes a game and its box score. Gated behind the shared
// delete PIN so a fat-fingered control panel cannot erase history.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid game ID", http.StatusBadRequest)
		return
	}

	pin := r.Header.Get("X-Delete-Pin")
	if pin == "" {
		var req DeleteGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			pin = req.Pin
		}
	}
	if pin != h.cfg.DeletePIN {
		http.Error(w, "Invalid PIN", http.StatusForbidden)
		return
	}

	if err := h.gameService.DeleteGame(r.Context(), id); err != nil {
		h.writeGameError(w, err)
		return
	}

	h.hub.BroadcastGameDeleted(id.String())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

type ScoreRequest struct {
	Team         domain.TeamSide `json:"team"`
	Points       int             `json:"points"`
	GamePlayerID *uuid.UUID      `json:"gamePlayerId"`
}

func (h *GameHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.control(w, r, engine.Command{
		Type:   engine.CmdScore,
		Team:   req.Team,
		Points: req.Points,
	}, req.GamePlayerID)
}

type FoulRequest struct {
	Team         domain.TeamSide `json:"team"`
	Count        int             `json:"count"`
	GamePlayerID *uuid.UUID      `json:"gamePlayerId"`
}

func (h *GameHandler) Foul(w http.ResponseWriter, r *http.Request) {
	var req FoulRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	h.control(w, r, engine.Command{
		Type:  engine.CmdFoul,
		Team:  req.Team,
		Count: req.Count,
	}, req.GamePlayerID)
}

func (h *GameHandler) ClockToggle(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, engine.Command{Type: engine.CmdClockToggle}, nil)
}

type ClockSetRequest struct {
	Time       int  `json:"time"`
	PauseClock bool `json:"pauseClock"`
}

func (h *GameHandler) ClockSet(w http.ResponseWriter, r *http.Request) {
	// Pausing is the default; only the client tick loop sends pauseClock=false.
	req := ClockSetRequest{PauseClock: true}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.control(w, r, engine.Command{
		Type:       engine.CmdClockSet,
		Time:       req.Time,
		PauseClock: req.PauseClock,
	}, nil)
}

func (h *GameHandler) ClockReset(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, engine.Command{Type: engine.CmdClockReset}, nil)
}

type PeriodRequest struct {
	Direction engine.PeriodDirection `json:"direction"`
}

func (h *GameHandler) Period(w http.ResponseWriter, r *http.Request) {
	var req PeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.control(w, r, engine.Command{
		Type:      engine.CmdPeriod,
		Direction: req.Direction,
	}, nil)
}

func (h *GameHandler) PossessionToggle(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, engine.Command{Type: engine.CmdPossessionToggle}, nil)
}

type TimeoutRequest struct {
	Team   domain.TeamSide      `json:"team"`
	Action engine.TimeoutAction `json:"action"`
}

func (h *GameHandler) Timeout(w http.ResponseWriter, r *http.Request) {
	var req TimeoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Action == "" {
		req.Action = engine.TimeoutSubtract
	}

	h.control(w, r, engine.Command{
		Type:    engine.CmdTimeout,
		Team:    req.Team,
		Timeout: req.Action,
	}, nil)
}

func (h *GameHandler) SwapTeams(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, engine.Command{Type: engine.CmdSwapTeams}, nil)
}

type ElamActivateRequest struct {
	TargetScore *int `json:"targetScore"`
}

func (h *GameHandler) ElamActivate(w http.ResponseWriter, r *http.Request) {
	var req ElamActivateRequest
	if r.Body != nil {
		// Body is optional; a derived target needs no payload.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	h.control(w, r, engine.Command{
		Type:        engine.CmdElamActivate,
		TargetScore: req.TargetScore,
	}, nil)
}

func (h *GameHandler) ElamDeactivate(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, engine.Command{Type: engine.CmdElamDeactivate}, nil)
}

func (h *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	h.control(w, r, engine.Command{Type: engine.CmdEnd}, nil)
}

func (h *GameHandler) control(w http.ResponseWriter, r *http.Request, cmd engine.Command, gamePlayerID *uuid.UUID) {
	gameID, err := parseGameID(r)
	if err != nil {
		http.Error(w, "Invalid game ID", http.StatusBadRequest)
		return
	}

	game, err := h.gameService.Control(r.Context(), gameID, cmd, gamePlayerID)
	if err != nil {
		h.writeGameError(w, err)
		return
	}

	h.hub.BroadcastGame(game)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newGameResponse(game))
}

func (h *GameHandler) writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrGameNotFound):
		http.Error(w, "Game not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrNoActiveGame):
		http.Error(w, "No active game", http.StatusNotFound)
	case errors.Is(err, engine.ErrNoTimeoutsRemaining):
		http.Error(w, "No timeouts remaining", http.StatusBadRequest)
	case errors.Is(err, engine.ErrInvalidTeam):
		http.Error(w, "Invalid team", http.StatusBadRequest)
	case errors.Is(err, engine.ErrUnsupportedCommand):
		http.Error(w, "Unsupported action", http.StatusBadRequest)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
