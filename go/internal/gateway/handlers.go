package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kchandnani/fntz/go/clients/sleeper_client"
	"github.com/kchandnani/fntz/go/internal/importer"
	"github.com/kchandnani/fntz/go/internal/models"
	"github.com/kchandnani/fntz/go/internal/playerdir"
	"github.com/kchandnani/fntz/go/internal/roster"
	"github.com/kchandnani/fntz/go/internal/seasons"
	"github.com/kchandnani/fntz/go/internal/storage"
	"github.com/kchandnani/fntz/go/internal/userdata"
)

// API serves the REST surface consumed by the web UI
type API struct {
	userData *userdata.App
	players  *playerdir.App
}

// NewAPI creates the REST handler set
func NewAPI(userData *userdata.App, players *playerdir.App) *API {
	return &API{userData: userData, players: players}
}

// RegisterRoutes registers every API route on the mux
func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/userdata", a.handleUserData)
	mux.HandleFunc("POST /api/import", a.handleImport)
	mux.HandleFunc("GET /api/leagues", a.handleListLeagues)
	mux.HandleFunc("POST /api/leagues/switch", a.handleSwitchLeague)
	mux.HandleFunc("DELETE /api/leagues/{id}", a.handleDeleteLeague)
	mux.HandleFunc("POST /api/rosters/manual", a.handleCreateManualRoster)
	mux.HandleFunc("POST /api/roster/players", a.handleAddPlayer)
	mux.HandleFunc("POST /api/roster/players/remove", a.handleRemovePlayer)
	mux.HandleFunc("GET /api/roster/validation", a.handleRosterValidation)
	mux.HandleFunc("POST /api/userdata/clear", a.handleClearAll)
	mux.HandleFunc("GET /api/players/search", a.handlePlayerSearch)
	mux.HandleFunc("GET /api/players/trending", a.handleTrending)
	mux.HandleFunc("GET /api/injuries", a.handleInjuries)
	mux.HandleFunc("GET /api/seasons", a.handleSeasons)
	mux.HandleFunc("POST /api/ask", a.handleAsk)
	mux.HandleFunc("GET /health", a.handleHealth)
}

func (a *API) handleUserData(w http.ResponseWriter, r *http.Request) {
	if err := a.userData.Refresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.userData.Snapshot())
}

func (a *API) handleImport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Season   string `json:"season"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		writeErrorMessage(w, http.StatusBadRequest, "username is required")
		return
	}

	leagues, err := a.userData.ImportFromSleeper(r.Context(), req.Username, req.Season)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"leagues": leagues,
		"count":   len(leagues),
	})
}

func (a *API) handleListLeagues(w http.ResponseWriter, r *http.Request) {
	if err := a.userData.Refresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	snap := a.userData.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"leagues":       snap.AllLeagues,
		"currentLeague": snap.CurrentLeague,
	})
}

func (a *API) handleSwitchLeague(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LeagueID string `json:"league_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.LeagueID == "" {
		writeErrorMessage(w, http.StatusBadRequest, "league_id is required")
		return
	}

	if err := a.userData.SwitchLeague(r.Context(), req.LeagueID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.userData.Snapshot())
}

func (a *API) handleDeleteLeague(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeErrorMessage(w, http.StatusBadRequest, "league id is required")
		return
	}

	if err := a.userData.RemoveLeague(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.userData.Snapshot())
}

func (a *API) handleCreateManualRoster(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		TeamName string `json:"team_name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeErrorMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	record, err := a.userData.CreateManualRoster(r.Context(), req.Name, req.TeamName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (a *API) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerName string `json:"player_name"`
		Position   string `json:"position"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PlayerName == "" || req.Position == "" {
		writeErrorMessage(w, http.StatusBadRequest, "player_name and position are required")
		return
	}

	updated, err := a.userData.AddPlayerToRoster(r.Context(), req.PlayerName, models.Position(req.Position))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"roster": updated})
}

func (a *API) handleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerName string `json:"player_name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PlayerName == "" {
		writeErrorMessage(w, http.StatusBadRequest, "player_name is required")
		return
	}

	updated, err := a.userData.RemovePlayerFromRoster(r.Context(), req.PlayerName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"roster": updated})
}

func (a *API) handleRosterValidation(w http.ResponseWriter, r *http.Request) {
	validation, err := a.userData.RosterValidation(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if err := a.userData.Refresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]any{
		"validation": validation,
		"suggested":  roster.SuggestedComposition(),
	}
	if current := a.userData.Snapshot().CurrentLeague; current != nil {
		resp["stats"] = roster.ComputeStats(current.Roster)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleClearAll(w http.ResponseWriter, r *http.Request) {
	if err := a.userData.ClearAll(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.userData.Snapshot())
}

func (a *API) handlePlayerSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := playerdir.SearchOptions{
		Query:         q.Get("query"),
		Positions:     splitParam(q.Get("positions")),
		Teams:         splitParam(q.Get("teams")),
		AvailableOnly: q.Get("available_only") == "true",
		InjuredOnly:   q.Get("injured_only") == "true",
	}
	if raw := q.Get("max_results"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeErrorMessage(w, http.StatusBadRequest, "max_results must be a non-negative integer")
			return
		}
		opts.MaxResults = n
	}

	players, err := a.players.SearchPlayers(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"players": players,
		"count":   len(players),
	})
}

func (a *API) handleTrending(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeErrorMessage(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	trending, err := a.players.TrendingAdds(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": trending})
}

// handleInjuries returns all current injuries, or only the ones affecting
// the current roster when ?roster=true.
func (a *API) handleInjuries(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("roster") == "true" {
		if err := a.userData.Refresh(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		snap := a.userData.Snapshot()
		if snap.CurrentLeague == nil {
			writeErrorMessage(w, http.StatusNotFound, storage.ErrNoCurrentLeague.Error())
			return
		}

		injuries, err := a.players.CrossCheckInjuries(r.Context(), snap.CurrentLeague.Roster.AllPlayers())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"injuries": injuries})
		return
	}

	injuries, err := a.players.Injuries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"injuries": injuries})
}

func (a *API) handleSeasons(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"seasons":    seasons.Available(),
		"transition": seasons.Transition(time.Now()),
	}
	if scenario := r.URL.Query().Get("scenario"); scenario != "" {
		msg, ok := seasons.TransitionMessage(seasons.Scenario(scenario))
		if !ok {
			writeErrorMessage(w, http.StatusBadRequest, "unknown scenario: "+scenario)
			return
		}
		resp["message"] = msg
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAsk is a stub; the model backend it fronts does not exist yet
func (a *API) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Question == "" {
		writeErrorMessage(w, http.StatusBadRequest, "question is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"answer":      "⚠️ AI Model not connected yet",
		"confidence":  0,
		"reasoning":   "This is a placeholder response. The model backend will be integrated here.",
		"suggestions": []string{},
		"metadata": map[string]any{
			"model_version":      "placeholder",
			"processing_time_ms": 0,
			"question_type":      "fantasy_advice",
		},
	})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isRosterRuleError(err error) bool {
	return errors.Is(err, roster.ErrDuplicatePlayer) ||
		errors.Is(err, roster.ErrPositionFull) ||
		errors.Is(err, roster.ErrRosterFull) ||
		errors.Is(err, roster.ErrPlayerNotFound) ||
		errors.Is(err, roster.ErrMinimumViolation) ||
		errors.Is(err, roster.ErrInvalidPosition)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps domain errors to HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, sleeper_client.ErrUserNotFound),
		errors.Is(err, importer.ErrNoLeaguesFound),
		errors.Is(err, storage.ErrNoCurrentLeague):
		status = http.StatusNotFound
	case errors.Is(err, storage.ErrNotManualRoster):
		status = http.StatusForbidden
	case isRosterRuleError(err):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeErrorMessage(w, status, err.Error())
}
