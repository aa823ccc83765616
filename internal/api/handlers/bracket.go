package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/gonzoleague/scoreboard/internal/service"
	"github.com/gonzoleague/scoreboard/internal/websocket"
	"github.com/google/uuid"
)

type BracketHandler struct {
	bracketService *service.BracketService
	hub            *websocket.Hub
}

func NewBracketHandler(bracketService *service.BracketService, hub *websocket.Hub) *BracketHandler {
	return &BracketHandler{
		bracketService: bracketService,
		hub:            hub,
	}
}

func (h *BracketHandler) Get(w http.ResponseWriter, r *http.Request) {
	slots, err := h.bracketService.Get(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrMalformedBracket) {
			http.Error(w, "Bracket is malformed", http.StatusConflict)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(slots)
}

type InitBracketRequest struct {
	East []uuid.UUID `json:"east"`
	West []uuid.UUID `json:"west"`
}

func (h *BracketHandler) Init(w http.ResponseWriter, r *http.Request) {
	var req InitBracketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	slots, err := h.bracketService.Init(r.Context(), req.East, req.West)
	if err != nil {
		if errors.Is(err, domain.ErrDivisionSize) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(slots)
}

type UpdateSlotRequest struct {
	TeamID        *uuid.UUID      `json:"teamId"`
	GameID        json.RawMessage `json:"gameId"`
	ScheduledTime *string         `json:"scheduledTime"`
}

func (h *BracketHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "slotId"))
	if err != nil {
		http.Error(w, "Invalid slot ID", http.StatusBadRequest)
		return
	}

	var req UpdateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	input := service.UpdateSlotInput{
		TeamID:        req.TeamID,
		ScheduledTime: req.ScheduledTime,
	}
	// A gameId of null unbinds the slot's game; an absent key leaves it alone.
	if len(req.GameID) > 0 {
		if string(req.GameID) == "null" {
			input.ClearGameID = true
		} else {
			var gameID uuid.UUID
			if err := json.Unmarshal(req.GameID, &gameID); err != nil {
				http.Error(w, "Invalid game ID", http.StatusBadRequest)
				return
			}
			input.GameID = &gameID
		}
	}

	slot, err := h.bracketService.UpdateSlot(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, domain.ErrSlotNotFound) {
			http.Error(w, "Slot not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(slot)
}

type CreateMatchGameRequest struct {
	Round int `json:"round"`
	Match int `json:"match"`
}

func (h *BracketHandler) CreateMatchGame(w http.ResponseWriter, r *http.Request) {
	var req CreateMatchGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	game, err := h.bracketService.CreateMatchGame(r.Context(), req.Round, req.Match)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotNotFound):
			http.Error(w, "Match not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrSlotsUnassigned):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrMalformedBracket):
			http.Error(w, "Bracket is malformed", http.StatusConflict)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.hub.BroadcastGame(game)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(game)
}

func (h *BracketHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.bracketService.Reset(r.Context()); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
