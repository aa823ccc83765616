package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gonzoleague/scoreboard/internal/service"
)

type SyncHandler struct {
	syncService *service.SyncService
}

func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

type SyncGameResponse struct {
	GameID    string `json:"gameId"`
	Duplicate bool   `json:"duplicate"`
}

// ImportGame accepts a finished game from an offline scorer, keyed by
// the shared sync secret rather than an operator token.
func (h *SyncHandler) ImportGame(w http.ResponseWriter, r *http.Request) {
	if err := h.syncService.ValidateKey(r.Header.Get("X-Sync-Key")); err != nil {
		if errors.Is(err, service.ErrSyncDisabled) {
			http.Error(w, "Sync is not configured", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "Invalid sync key", http.StatusUnauthorized)
		return
	}

	var req service.SyncGameInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.HomeTeamName == "" || req.AwayTeamName == "" {
		http.Error(w, "Both team names are required", http.StatusBadRequest)
		return
	}

	result, err := h.syncService.ImportGame(r.Context(), req)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !result.Duplicate {
		w.WriteHeader(http.StatusCreated)
	}
	json.NewEncoder(w).Encode(SyncGameResponse{
		GameID:    result.Game.ID.String(),
		Duplicate: result.Duplicate,
	})
}
