package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cmms/internal/adapter/http/mapper"
	"cmms/internal/adapter/http/middleware"
	"cmms/internal/core/ports"
)

type DashboardHandler struct {
	dashboardService ports.DashboardService
}

func NewDashboardHandler(dashboardService ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	stats, err := h.dashboardService.Dashboard(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		respondError(c, err, "failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, mapper.ToDashboard(stats))
}
