package handlers

import (
	"net/http"

	"github.com/swishlytics/swish-api/internal/models"
	"github.com/swishlytics/swish-api/internal/ranking"
)

// GetProjections returns the projections table
// @Summary Projections table
// @Description Projected next-season lines ranked by swish score, rendered like the season rankings
// @Tags Projections
// @Produce json
// @Param sort query string false "Field to sort by"
// @Param dir query string false "Sort direction (asc, desc)"
// @Success 200 {object} models.RankingTable
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /projections [get]
func (h *Handler) GetProjections(w http.ResponseWriter, r *http.Request) {
	q := models.ProjectionsQuery{
		Sort: r.URL.Query().Get("sort"),
		Dir:  r.URL.Query().Get("dir"),
	}
	if err := h.validator.Struct(&q); err != nil {
		h.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	d, err := sortDirective(q.Sort, q.Dir)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.projections.GetProjections(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to load projections", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load projections")
		return
	}

	table := ranking.BuildTable(h.projectionSeason, ranking.AssignRanks(records), d, ranking.DefaultColumns, h.palette)
	rowsServed.WithLabelValues("projections").Add(float64(table.Total))
	h.jsonResponse(w, http.StatusOK, table)
}
