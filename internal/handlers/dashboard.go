package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabpaderog/maxicoffee-admin/internal/remote"
)

// DashboardHandler passes through the upstream's read-only aggregates. A
// failed fetch degrades to a zero-valued payload, consistent with the
// read-degrades-to-empty policy everywhere else.
type DashboardHandler struct {
	Remote *remote.Client
}

type DashboardSummary struct {
	PendingOrders   int `json:"pendingOrders"`
	CompletedOrders int `json:"completedOrders"`
	TotalUsers      int `json:"totalUsers"`
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	var summary DashboardSummary
	if err := h.Remote.Get(c.Request.Context(), "/dashboard", &summary); err != nil {
		slog.Warn("Dashboard summary unavailable", "error", err)
		summary = DashboardSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// Sales proxies one of the sales aggregation endpoints
// (dailysales/weeklysales/monthlysales/yearlysales).
func (h *DashboardHandler) Sales(c *gin.Context) {
	period := c.Param("period")
	switch period {
	case "dailysales", "weeklysales", "monthlysales", "yearlysales":
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown sales period"})
		return
	}

	var payload any
	if err := h.Remote.Get(c.Request.Context(), "/dashboard/"+period, &payload); err != nil {
		slog.Warn("Sales aggregate unavailable", "period", period, "error", err)
		payload = []any{}
	}
	c.JSON(http.StatusOK, gin.H{"data": payload})
}
