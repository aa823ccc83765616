package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/gonzoleague/scoreboard/internal/service"
	"github.com/google/uuid"
)

type GamePlayerHandler struct {
	gameService *service.GameService
}

func NewGamePlayerHandler(gameService *service.GameService) *GamePlayerHandler {
	return &GamePlayerHandler{gameService: gameService}
}

func (h *GamePlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	gameID, err := parseGameID(r)
	if err != nil {
		http.Error(w, "Invalid game ID", http.StatusBadRequest)
		return
	}

	if side := r.URL.Query().Get("team"); side != "" {
		team := domain.TeamSide(side)
		if team != domain.SideHome && team != domain.SideAway {
			http.Error(w, "Invalid team filter", http.StatusBadRequest)
			return
		}
		players, err := h.gameService.GetGamePlayersBySide(r.Context(), gameID, team)
		if err != nil {
			h.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(players)
		return
	}

	game, err := h.gameService.Resolve(r.Context(), gameID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	players, err := h.gameService.GetGamePlayers(r.Context(), game.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(players)
}

type AddGamePlayerRequest struct {
	TeamID         uuid.UUID  `json:"teamId"`
	LinkedPlayerID *uuid.UUID `json:"linkedPlayerId"`
	Name           string     `json:"name"`
	Number         *int       `json:"number"`
}

func (h *GamePlayerHandler) Add(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid game ID", http.StatusBadRequest)
		return
	}

	var req AddGamePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.TeamID == uuid.Nil {
		http.Error(w, "Name and team are required", http.StatusBadRequest)
		return
	}

	gamePlayer, err := h.gameService.AddGamePlayer(r.Context(), service.AddGamePlayerInput{
		GameID:         gameID,
		TeamID:         req.TeamID,
		LinkedPlayerID: req.LinkedPlayerID,
		Name:           req.Name,
		Number:         req.Number,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(gamePlayer)
}

type UpdateGamePlayerStatsRequest struct {
	Points int `json:"points"`
	Fouls  int `json:"fouls"`
}

func (h *GamePlayerHandler) UpdateStats(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "gamePlayerId"))
	if err != nil {
		http.Error(w, "Invalid game player ID", http.StatusBadRequest)
		return
	}

	var req UpdateGamePlayerStatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Points < 0 || req.Fouls < 0 {
		http.Error(w, "Stats cannot be negative", http.StatusBadRequest)
		return
	}

	gamePlayer, err := h.gameService.UpdateGamePlayerStats(r.Context(), id, req.Points, req.Fouls)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(gamePlayer)
}

type UpdateGamePlayerMissingRequest struct {
	Missing bool `json:"missing"`
}

func (h *GamePlayerHandler) UpdateMissing(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "gamePlayerId"))
	if err != nil {
		http.Error(w, "Invalid game player ID", http.StatusBadRequest)
		return
	}

	var req UpdateGamePlayerMissingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	gamePlayer, err := h.gameService.UpdateGamePlayerMissing(r.Context(), id, req.Missing)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(gamePlayer)
}

func (h *GamePlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "gamePlayerId"))
	if err != nil {
		http.Error(w, "Invalid game player ID", http.StatusBadRequest)
		return
	}

	if err := h.gameService.DeleteGamePlayer(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *GamePlayerHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrGameNotFound):
		http.Error(w, "Game not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrNoActiveGame):
		http.Error(w, "No active game", http.StatusNotFound)
	case errors.Is(err, domain.ErrGamePlayerNotFound):
		http.Error(w, "Game player not found", http.StatusNotFound)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
