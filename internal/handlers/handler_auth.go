package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/todo_api/internal/core/ports/services"
	"github.com/SscSPs/todo_api/internal/dto"
	"github.com/SscSPs/todo_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication and profile requests.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up /auth. loginLimit may be nil when rate limiting is off.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade, verifier middleware.AccessTokenVerifier, loginLimit gin.HandlerFunc) {
	h := newAuthHandler(authService)

	auth := r.Group("/auth")
	{
		login := []gin.HandlerFunc{h.login}
		if loginLimit != nil {
			login = append([]gin.HandlerFunc{loginLimit}, login...)
		}
		auth.POST("/login", login...)
		auth.POST("/register", h.register)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)

		protected := auth.Group("", middleware.AuthMiddleware(verifier))
		protected.GET("/me", h.me)
		protected.POST("/change-password", h.changePassword)
	}
}

// register godoc
// @Summary Register a new user
// @Description Creates an account and returns a first token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 200 {object} dto.TokenPairResponse
// @Failure 400 {object} dto.ErrorResponse "Missing fields or user already exists"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, bindError(err, "Email and password required"))
		return
	}

	pair, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns an access and refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.TokenPairResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, bindError(err, "Invalid request body"))
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// refresh godoc
// @Summary Rotate a refresh token
// @Description Consumes the refresh token and returns a new pair. Each refresh token works once.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenPairResponse
// @Failure 401 {object} dto.ErrorResponse "Refresh token required"
// @Failure 403 {object} dto.ErrorResponse "Invalid refresh token"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, bindError(err, "Refresh token required"))
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// logout godoc
// @Summary Revoke a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param logout body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse "Refresh token required"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, bindError(err, "Refresh token required"))
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Logged out successfully"})
}

// me godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// changePassword godoc
// @Summary Change password
// @Description Replaces the password and signs out every session of the user.
// @Tags auth
// @Accept json
// @Produce json
// @Param passwords body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Both passwords are required"
// @Failure 401 {object} dto.ErrorResponse "Invalid old password"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/change-password [post]
func (h *authHandler) changePassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ChangePasswordRequest
	if err := bindJSON(c, &req); err != nil {
		logger.Debug("Change password request rejected", slog.String("error", err.Error()))
		respondError(c, bindError(err, "Both passwords are required"))
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Password changed successfully"})
}
