package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/pickpool/pickpool/go/internal/models"
)

// StateProvider interface defines methods for retrieving pool state
type StateProvider interface {
	GetStandings(ctx context.Context, week models.WeekRef) ([]models.StandingsRow, error)
	GetGames(ctx context.Context, week models.WeekRef) ([]models.Game, error)
	GetCurrentWeek(ctx context.Context) (models.WeekRef, error)
}

// StateHandler handles HTTP requests for pool state
type StateHandler struct {
	stateProvider StateProvider
}

// NewStateHandler creates a new state handler
func NewStateHandler(provider StateProvider) *StateHandler {
	return &StateHandler{
		stateProvider: provider,
	}
}

// HandleGetStandings handles GET /api/pool/standings?season=&week=
func (h *StateHandler) HandleGetStandings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	week, ok := h.weekFromRequest(w, r)
	if !ok {
		return
	}

	rows, err := h.stateProvider.GetStandings(r.Context(), week)
	if err != nil {
		log.Error().Err(err).Str("week", week.String()).Msg("failed to get standings")
		http.Error(w, "Failed to get standings", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []models.StandingsRow{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rows); err != nil {
		log.Error().Err(err).Msg("failed to encode standings response")
	}
}

// HandleGetGames handles GET /api/pool/games?season=&week=
func (h *StateHandler) HandleGetGames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	week, ok := h.weekFromRequest(w, r)
	if !ok {
		return
	}

	games, err := h.stateProvider.GetGames(r.Context(), week)
	if err != nil {
		log.Error().Err(err).Str("week", week.String()).Msg("failed to get games")
		http.Error(w, "Failed to get games", http.StatusInternalServerError)
		return
	}
	if games == nil {
		games = []models.Game{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(games); err != nil {
		log.Error().Err(err).Msg("failed to encode games response")
	}
}

// weekFromRequest reads season/week query params, falling back to the
// current week when both are absent.
func (h *StateHandler) weekFromRequest(w http.ResponseWriter, r *http.Request) (models.WeekRef, bool) {
	seasonStr := r.URL.Query().Get("season")
	weekStr := r.URL.Query().Get("week")

	if seasonStr == "" && weekStr == "" {
		week, err := h.stateProvider.GetCurrentWeek(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to resolve current week")
			http.Error(w, "Failed to resolve current week", http.StatusInternalServerError)
			return models.WeekRef{}, false
		}
		return week, true
	}

	season, err := strconv.Atoi(seasonStr)
	if err != nil {
		http.Error(w, "Invalid season", http.StatusBadRequest)
		return models.WeekRef{}, false
	}
	weekNum, err := strconv.Atoi(weekStr)
	if err != nil {
		http.Error(w, "Invalid week", http.StatusBadRequest)
		return models.WeekRef{}, false
	}

	return models.WeekRef{Season: season, Week: weekNum}, true
}

// RegisterStateRoutes registers state-related HTTP routes
func (h *StateHandler) RegisterStateRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/pool/standings", h.HandleGetStandings)
	mux.HandleFunc("/api/pool/games", h.HandleGetGames)
}
