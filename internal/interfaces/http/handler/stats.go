package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/invoiceme/backend/internal/application/billing"
)

// StatsHandler handles dashboard statistics endpoints
type StatsHandler struct {
	BaseHandler
	statsService *billingapp.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *billingapp.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// RegisterRoutes registers all stats routes
func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats/dashboard", h.GetDashboard)
}

// GetDashboard returns invoice counts by status plus outstanding and
// collected totals
func (h *StatsHandler) GetDashboard(c *gin.Context) {
	stats, err := h.statsService.GetDashboardStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}
