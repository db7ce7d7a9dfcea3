package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/streetlab/storefront-api/internal/api/metrics"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// dashboardResponse flattens the stats next to the envelope status, which is
// the shape the admin dashboard consumes.
type dashboardResponse struct {
	Status int `json:"status"`
	ports.DashboardStats
}

// Dashboard handles GET /adminprofile — the full admin analytics rollup.
// Admin only; recomputed on every call.
//
// @Summary      Admin dashboard analytics
// @Tags         analytics
// @Produce      json
// @Param        token  header    string  true  "Session token (admin)"
// @Success      200    {object}  dashboardResponse
// @Failure      403    {object}  map[string]any
// @Router       /adminprofile [get]
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.DashboardDuration)
	stats, err := h.service.DashboardStats(c.Request().Context())
	timer.ObserveDuration()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Status:         http.StatusOK,
		DashboardStats: *stats,
	})
}
