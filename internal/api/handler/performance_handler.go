package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
)

// PerformanceHandler exposes the scoring core over HTTP: on-demand score
// refresh, score reads, history, the leaderboard, and the batch recompute.
type PerformanceHandler struct {
	service ports.PerformanceService
	users   ports.UserService
}

func NewPerformanceHandler(service ports.PerformanceService, users ports.UserService) *PerformanceHandler {
	return &PerformanceHandler{service: service, users: users}
}

type performanceScoreResponse struct {
	UserID            int64         `json:"user_id"`
	PerformanceScore  int           `json:"performance_score"`
	PerformanceRating domain.Rating `json:"performance_rating"`
}

type batchUpdateResponse struct {
	Role    string              `json:"role"`
	Total   int                 `json:"total"`
	Failed  int                 `json:"failed"`
	Results []ports.BatchResult `json:"results"`
}

// UpdateScore recalculates a user's performance on demand and persists it.
// The window defaults to the trailing day; period_days overrides it.
//
// @Summary      Recalculate a user's performance
// @Tags         performance
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      int  true   "User id"
// @Param        period_days  query     int  false  "Trailing window in days (default 1)"
// @Success      200          {object}  ports.PerformanceUpdate
// @Failure      404          {object}  map[string]string
// @Router       /v1/performance/{id}/update [post]
func (h *PerformanceHandler) UpdateScore(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	periodDays := queryInt(c, "period_days", 1)

	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	update, err := h.service.UpdateUserPerformance(c.Request().Context(), id, user.Role, periodDays)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, update)
}

// GetScore returns the cached score and rating from the user row.
//
// @Summary      Get a user's cached performance score
// @Tags         performance
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  performanceScoreResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/performance/{id} [get]
func (h *PerformanceHandler) GetScore(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, performanceScoreResponse{
		UserID:            user.ID,
		PerformanceScore:  user.PerformanceScore,
		PerformanceRating: user.PerformanceRating,
	})
}

// GetHistory returns the user's most recent scoring snapshot. A user who was
// never scored gets a zero snapshot rather than a 404.
//
// @Summary      Get a user's latest performance snapshot
// @Tags         performance
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  domain.PerformanceSnapshot
// @Router       /v1/performance/{id}/history [get]
func (h *PerformanceHandler) GetHistory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	snapshot, err := h.service.GetPerformanceHistory(c.Request().Context(), id)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		return c.JSON(http.StatusOK, domain.PerformanceSnapshot{
			UserID: id,
			Score:  0,
			Rating: domain.RatingFair,
		})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot)
}

// Leaderboard ranks active users of a role by their resolved score.
//
// @Summary      Performance leaderboard
// @Tags         performance
// @Produce      json
// @Security     BearerAuth
// @Param        role   query     string  false  "Role to rank (default farmer)"
// @Param        limit  query     int     false  "Max rows (default 10)"
// @Success      200    {array}   ports.LeaderboardRow
// @Router       /v1/performance/leaderboard [get]
func (h *PerformanceHandler) Leaderboard(c echo.Context) error {
	role := c.QueryParam("role")
	if role == "" {
		role = domain.RoleFarmer
	}
	if !domain.ValidRole(role) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role")
	}
	limit := queryInt(c, "limit", 10)

	rows, err := h.service.GetLeaderboard(c.Request().Context(), role, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// BatchUpdate recomputes every active user of a role. Admin only; per-user
// failures come back inline, never as a failed batch.
//
// @Summary      Batch performance recompute
// @Tags         performance
// @Produce      json
// @Security     BearerAuth
// @Param        role         query     string  false  "Role to recompute (default farmer)"
// @Param        period_days  query     int     false  "Trailing window in days (default 30)"
// @Success      200          {object}  batchUpdateResponse
// @Failure      403          {object}  map[string]string
// @Router       /v1/performance/batch-update [post]
func (h *PerformanceHandler) BatchUpdate(c echo.Context) error {
	role := c.QueryParam("role")
	if role == "" {
		role = domain.RoleFarmer
	}
	if !domain.ValidRole(role) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role")
	}
	periodDays := queryInt(c, "period_days", 0)

	results, err := h.service.BatchUpdatePerformance(c.Request().Context(), role, periodDays)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	return c.JSON(http.StatusOK, batchUpdateResponse{
		Role:    role,
		Total:   len(results),
		Failed:  failed,
		Results: results,
	})
}
