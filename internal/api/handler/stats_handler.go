package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/apnajourney/platform/internal/core/ports"
)

// StatsHandler serves the admin dashboard summary.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

type statsResponse struct {
	JobsByStatus     map[string]int64 `json:"jobs_by_status"`
	NewsByStatus     map[string]int64 `json:"news_by_status"`
	ApplicationTotal int64            `json:"application_total"`
	InquiryTotal     int64            `json:"inquiry_total"`
}

// Summary handles GET /v1/admin/stats.
//
// @Summary      Platform statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/stats [get]
func (h *StatsHandler) Summary(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Summary(c.Request().Context(), ports.StatsInput{Actor: actor})
	if err != nil {
		return err
	}

	resp := statsResponse{
		JobsByStatus:     make(map[string]int64, len(stats.JobsByStatus)),
		NewsByStatus:     make(map[string]int64, len(stats.NewsByStatus)),
		ApplicationTotal: stats.ApplicationTotal,
		InquiryTotal:     stats.InquiryTotal,
	}
	for s, n := range stats.JobsByStatus {
		resp.JobsByStatus[string(s)] = n
	}
	for s, n := range stats.NewsByStatus {
		resp.NewsByStatus[string(s)] = n
	}

	return c.JSON(http.StatusOK, resp)
}
