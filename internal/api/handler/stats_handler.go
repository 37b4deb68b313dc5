package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrovia/farm-system/internal/core/ports"
)

// StatsHandler serves the dashboard aggregates.
type StatsHandler struct {
	tasks ports.TaskService
}

func NewStatsHandler(tasks ports.TaskService) *StatsHandler {
	return &StatsHandler{tasks: tasks}
}

// DailyTasks buckets task counts by creation day over a trailing window.
//
// @Summary      Daily task statistics
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        days  query     int  false  "Trailing window in days (default 7)"
// @Success      200   {array}   ports.DailyTaskStats
// @Router       /v1/stats/tasks/daily [get]
func (h *StatsHandler) DailyTasks(c echo.Context) error {
	days := queryInt(c, "days", 7)
	stats, err := h.tasks.DailyStats(c.Request().Context(), days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
