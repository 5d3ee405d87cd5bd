package handlers

import (
	"net/http"
	"time"

	"github.com/MoamenFouad/UniQuest/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard godoc
// @Summary      Current user's dashboard
// @Description  Total XP, level, streak, completed quests, XP breakdowns, recent activity, global rank and top adventurers
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} services.Dashboard
// @Router       /api/v1/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID := c.GetUint("user_id")
	dash, err := h.dashboardService.GetDashboard(userID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
