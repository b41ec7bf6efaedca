package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
	"github.com/SscSPs/blood_desk_app/internal/dto"
	"github.com/SscSPs/blood_desk_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

func registerHealthRoutes(r *gin.Engine, health portssvc.HealthSvc) {
	r.GET("/health", func(c *gin.Context) {
		if err := health.Check(c.Request.Context()); err != nil {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Database unreachable", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
	})
}
