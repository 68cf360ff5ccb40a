package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swishlytics/swish-api/internal/models"
	"github.com/swishlytics/swish-api/internal/ranking"
)

// ListSeasons returns every season with stored stats
// @Summary List seasons
// @Tags Seasons
// @Produce json
// @Success 200 {array} string "Season labels, newest first"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /seasons [get]
func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.seasonStats.ListSeasons(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to list seasons", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to list seasons")
		return
	}
	h.jsonResponse(w, http.StatusOK, seasons)
}

// loadRankedSeason validates the season path parameter and returns the season
// in rank order. It writes the error response itself and returns ok=false.
func (h *Handler) loadRankedSeason(w http.ResponseWriter, r *http.Request, q *models.RankingsQuery) ([]models.RankedRecord, bool) {
	if err := h.validator.Struct(q); err != nil {
		h.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return nil, false
	}

	records, err := h.seasonStats.GetSeasonStats(r.Context(), q.Season)
	if err != nil {
		h.logger.Errorw("Failed to load season stats", "season", q.Season, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load season stats")
		return nil, false
	}
	if len(records) == 0 {
		h.errorResponse(w, http.StatusNotFound, "Season not found")
		return nil, false
	}
	return ranking.AssignRanks(records), true
}

// GetSeasonRankings returns the rendered rankings table for a season
// @Summary Season rankings table
// @Description Players ranked by swish score, sorted for display, with formatted and heat-colored cells
// @Tags Seasons
// @Produce json
// @Param season path string true "Season label (e.g. 2024-25)"
// @Param sort query string false "Field to sort by (e.g. points, turnovers, swish_score)"
// @Param dir query string false "Sort direction (asc, desc); defaults per field"
// @Success 200 {object} models.RankingTable
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Season not found"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /seasons/{season}/rankings [get]
func (h *Handler) GetSeasonRankings(w http.ResponseWriter, r *http.Request) {
	q := models.RankingsQuery{
		Season: chi.URLParam(r, "season"),
		Sort:   r.URL.Query().Get("sort"),
		Dir:    r.URL.Query().Get("dir"),
	}
	d, err := sortDirective(q.Sort, q.Dir)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ranked, ok := h.loadRankedSeason(w, r, &q)
	if !ok {
		return
	}

	table := ranking.BuildTable(q.Season, ranked, d, ranking.DefaultColumns, h.palette)
	rowsServed.WithLabelValues("season").Add(float64(table.Total))
	h.jsonResponse(w, http.StatusOK, table)
}

// GetSeasonStats returns raw ranked records for a season
// @Summary Season stats
// @Tags Seasons
// @Produce json
// @Param season path string true "Season label (e.g. 2024-25)"
// @Success 200 {array} models.RankedRecord
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Season not found"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /seasons/{season}/stats [get]
func (h *Handler) GetSeasonStats(w http.ResponseWriter, r *http.Request) {
	q := models.RankingsQuery{Season: chi.URLParam(r, "season")}
	ranked, ok := h.loadRankedSeason(w, r, &q)
	if !ok {
		return
	}
	h.jsonResponse(w, http.StatusOK, ranked)
}

// GetStatColumns describes every sortable stat
// @Summary Stat catalog
// @Tags Stats
// @Produce json
// @Success 200 {array} models.TableColumn
// @Router /stats/columns [get]
func (h *Handler) GetStatColumns(w http.ResponseWriter, r *http.Request) {
	catalog := ranking.Catalog()
	keys := make([]ranking.StatKey, len(catalog))
	for i, s := range catalog {
		keys[i] = s.Key
	}
	h.jsonResponse(w, http.StatusOK, ranking.Columns(keys))
}
