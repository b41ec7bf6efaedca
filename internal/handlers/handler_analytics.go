package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
	"github.com/SscSPs/blood_desk_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvc
}

func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvc) {
	h := &analyticsHandler{analyticsService: analyticsService}
	rg.GET("/analytics/summary", h.summary)
}

// summary godoc
// @Summary Stock activity summary
// @Description Per-day donation and issue totals over the last N days, current stock and low groups.
// @Tags analytics
// @Produce  json
// @Param   days query int false "Window in days" default(30)
// @Success 200 {object} dto.AnalyticsSummaryResponse
// @Security BearerAuth
// @Router /analytics/summary [get]
func (h *analyticsHandler) summary(c *gin.Context) {
	var params dto.AnalyticsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return
	}
	summary, err := h.analyticsService.Summary(c.Request.Context(), params.Days)
	if err != nil {
		writeError(c, err, "Failed to build analytics summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToAnalyticsSummaryResponse(*summary))
}
