package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
	"github.com/SscSPs/blood_desk_app/internal/dto"
	"github.com/SscSPs/blood_desk_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

func newStockHandler(ss portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{stockService: ss}
}

func registerStockRoutes(rg *gin.RouterGroup, stockService portssvc.StockSvcFacade) {
	h := newStockHandler(stockService)

	stock := rg.Group("/stock")
	{
		stock.GET("", h.getStock)
		stock.POST("/adjust", h.adjustStock)
		stock.GET("/movements", h.listMovements)
	}
}

// getStock godoc
// @Summary Current stock levels
// @Description One entry per blood group in canonical order.
// @Tags stock
// @Produce  json
// @Success 200 {object} dto.StockListEnvelope
// @Security BearerAuth
// @Router /stock [get]
func (h *stockHandler) getStock(c *gin.Context) {
	levels, err := h.stockService.GetLevels(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to load stock")
		return
	}
	c.JSON(http.StatusOK, dto.StockListEnvelope{Stock: dto.ToStockListResponse(levels)})
}

// adjustStock godoc
// @Summary Adjust stock of one blood group
// @Description Applies a signed delta atomically and records the movement against the caller.
// @Tags stock
// @Accept  json
// @Produce  json
// @Param   adjustment body dto.AdjustStockRequest true "Adjustment"
// @Success 200 {object} dto.AdjustStockResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid group, zero delta, unknown reason or insufficient stock"
// @Security BearerAuth
// @Router /stock/adjust [post]
func (h *stockHandler) adjustStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	var actor *int64
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		actor = &userID
	}

	level, movement, err := h.stockService.Adjust(c.Request.Context(), req.ToDomain(actor))
	if err != nil {
		writeError(c, err, "Failed to adjust stock")
		return
	}

	logger.Info("Stock adjusted",
		slog.String("blood_group", level.BloodGroup.String()),
		slog.Int("delta", movement.Delta),
		slog.Int("units", level.Units))
	c.JSON(http.StatusOK, dto.AdjustStockResponse{
		Stock:    dto.ToStockLevelResponse(*level),
		Movement: dto.ToMovementResponse(*movement),
	})
}

// listMovements godoc
// @Summary Recent stock movements
// @Tags stock
// @Produce  json
// @Param   limit query int false "Maximum number of movements" default(100)
// @Success 200 {object} dto.MovementListEnvelope
// @Security BearerAuth
// @Router /stock/movements [get]
func (h *stockHandler) listMovements(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return
	}
	movements, err := h.stockService.ListMovements(c.Request.Context(), params.Limit)
	if err != nil {
		writeError(c, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, dto.MovementListEnvelope{Movements: dto.ToMovementListResponse(movements)})
}
