package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/swishlytics/swish-api/internal/logic"
	"github.com/swishlytics/swish-api/internal/models"
)

// profileGameLogLimit caps the recent games embedded in a profile.
const profileGameLogLimit = 10

// GetPlayerDetails returns a player's name and season history
// @Summary Player details
// @Tags Players
// @Produce json
// @Param playerID path string true "Player UUID"
// @Success 200 {object} models.PlayerDetails
// @Failure 400 {object} map[string]string "Invalid player id"
// @Failure 404 {object} map[string]string "Player not found"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /players/{playerID}/details [get]
func (h *Handler) GetPlayerDetails(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	if err := h.validator.Var(playerID, "required,uuid"); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid player id")
		return
	}

	details, err := h.players.GetPlayerDetails(r.Context(), playerID)
	if errors.Is(err, logic.ErrPlayerNotFound) {
		h.errorResponse(w, http.StatusNotFound, "Player not found")
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to load player details", "player", playerID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load player details")
		return
	}
	h.jsonResponse(w, http.StatusOK, details)
}

// GetPlayerGameLogs returns a player's games, newest first
// @Summary Player game logs
// @Tags Players
// @Produce json
// @Param playerID path string true "Player UUID"
// @Param season query string false "Season label (e.g. 2024-25)"
// @Param limit query int false "Max games (0 = all)" default(0)
// @Success 200 {array} models.GameLog
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /players/{playerID}/gamelogs [get]
func (h *Handler) GetPlayerGameLogs(w http.ResponseWriter, r *http.Request) {
	q := models.GameLogsQuery{
		PlayerID: chi.URLParam(r, "playerID"),
		Season:   r.URL.Query().Get("season"),
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		q.Limit = parsed
	}
	if err := h.validator.Struct(&q); err != nil {
		h.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	logs, err := h.gameLogs.GetGameLogs(r.Context(), q.PlayerID, q.Season, q.Limit)
	if err != nil {
		h.logger.Errorw("Failed to load game logs", "player", q.PlayerID, "season", q.Season, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load game logs")
		return
	}
	h.jsonResponse(w, http.StatusOK, logs)
}

// GetPlayerProfile returns details plus recent games, fetched concurrently
// @Summary Player profile
// @Tags Players
// @Produce json
// @Param playerID path string true "Player UUID"
// @Success 200 {object} models.PlayerProfile
// @Failure 400 {object} map[string]string "Invalid player id"
// @Failure 404 {object} map[string]string "Player not found"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /players/{playerID} [get]
func (h *Handler) GetPlayerProfile(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	if err := h.validator.Var(playerID, "required,uuid"); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid player id")
		return
	}

	var (
		details *models.PlayerDetails
		logs    []models.GameLog
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		details, err = h.players.GetPlayerDetails(ctx, playerID)
		return err
	})
	g.Go(func() error {
		var err error
		if logs, err = h.gameLogs.GetGameLogs(ctx, playerID, "", profileGameLogLimit); err != nil {
			// Game logs are optional on the profile
			h.logger.Warnw("Failed to load profile game logs", "player", playerID, "error", err)
			logs = []models.GameLog{}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, logic.ErrPlayerNotFound) {
			h.errorResponse(w, http.StatusNotFound, "Player not found")
			return
		}
		h.logger.Errorw("Failed to load player profile", "player", playerID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load player profile")
		return
	}

	h.jsonResponse(w, http.StatusOK, models.PlayerProfile{PlayerDetails: *details, GameLogs: logs})
}
