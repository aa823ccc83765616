package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gonzoleague/scoreboard/internal/service"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) Standings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.statsService.Standings(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

// PlayerStats serves season aggregates; ?tournament=true switches to the
// bracket pool.
func (h *StatsHandler) PlayerStats(w http.ResponseWriter, r *http.Request) {
	tournament := r.URL.Query().Get("tournament") == "true"

	lines, err := h.statsService.PlayerStats(r.Context(), tournament)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lines)
}

func (h *StatsHandler) TournamentGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.statsService.TournamentGames(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(games)
}
