package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/blood_desk_app/internal/apperrors"
	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
	"github.com/SscSPs/blood_desk_app/internal/dto"
	"github.com/SscSPs/blood_desk_app/internal/middleware"
	"github.com/SscSPs/blood_desk_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up the routes for authentication.
// Login is rate limited per client IP.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, authService portssvc.AuthSvcFacade) error {
	h := newAuthHandler(authService)

	ipLimiter, err := middleware.NewLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("failed to build login rate limiter: %w", err)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.login)
	}
	return nil
}

// registerSessionRoutes sets up the routes that need a valid access token.
func registerSessionRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)
	rg.GET("/auth/me", h.me)
}

// login godoc
// @Summary Operator login
// @Description Authenticates an operator and returns a signed access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err, "Login failed")
		return
	}

	logger.Info("Operator logged in", slog.Int64("user_id", result.User.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		User:      dto.ToUserResponse(result.User),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// me godoc
// @Summary Current operator
// @Description Returns the operator the access token was issued to.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserEnvelope
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		writeError(c, apperrors.ErrUnauthorized, "Session user missing")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, "Failed to load session user")
		return
	}
	c.JSON(http.StatusOK, dto.UserEnvelope{User: dto.ToUserResponse(*user)})
}
