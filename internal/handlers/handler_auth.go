package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/SscSPs/fintrack_app/internal/middleware"
	"github.com/SscSPs/fintrack_app/internal/platform/config"
	"github.com/SscSPs/fintrack_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// sessionIssuer mints access tokens and keeps the refresh-token cookie in sync with the user row.
type sessionIssuer struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// issue creates an access token plus a rotated refresh token for user.
func (s *sessionIssuer) issue(c *gin.Context, user *domain.User) (dto.LoginResponse, error) {
	ctx := c.Request.Context()

	accessToken, expiresAt, err := s.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	rawRefresh, refreshExpiry, err := s.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	if err := s.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashToken(rawRefresh), refreshExpiry); err != nil {
		return dto.LoginResponse{}, err
	}
	s.setRefreshCookie(c, user.UserID+"."+rawRefresh, int(s.cfg.RefreshTokenExpiryDuration.Seconds()))

	userResp := dto.ToUserResponse(user)
	return dto.LoginResponse{Token: accessToken, ExpiresAt: &expiresAt, User: &userResp}, nil
}

func (s *sessionIssuer) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.RefreshTokenCookieName, value, maxAge, s.cfg.RefreshTokenCookiePath, "", s.cfg.IsProduction, true)
}

func (s *sessionIssuer) clearRefreshCookie(c *gin.Context) {
	s.setRefreshCookie(c, "", -1)
}

// splitRefreshCookie splits "<userID>.<token>". The raw token is hex so the first dot is the separator.
func splitRefreshCookie(value string) (string, string, bool) {
	userID, raw, found := strings.Cut(value, ".")
	if !found || userID == "" || raw == "" {
		return "", "", false
	}
	return userID, raw, true
}

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	sessions      *sessionIssuer
	userService   portssvc.UserSvcFacade
	tokenService  portssvc.TokenSvcFacade
	twoFactor     portssvc.TwoFactorSvc
	posthogClient *utils.PosthogClientWrapper
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config, posthogClient *utils.PosthogClientWrapper) *AuthHandler {
	return &AuthHandler{
		sessions:      &sessionIssuer{userService: services.User, tokenService: services.TokenService, cfg: cfg},
		userService:   services.User,
		tokenService:  services.TokenService,
		twoFactor:     services.TwoFactor,
		posthogClient: posthogClient,
	}
}

// registerAuthRoutes sets up the public and authenticated auth routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, posthogClient *utils.PosthogClientWrapper) error {
	h := NewAuthHandler(services, cfg, posthogClient)
	tf := newTwoFactorHandler(services.TwoFactor, posthogClient)
	google := NewGoogleOAuthHandler(services.GoogleOAuthHandler, h.sessions, services.User)

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return err
	}
	limitMiddleware := middleware.RateLimit(loginLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/register", limitMiddleware, h.Register)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/google/exchange-code", google.ExchangeCodeGoogle)
	}

	authed := auth.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		authed.POST("/logout", h.Logout)
		authed.GET("/me", h.Me)
		authed.POST("/2fa/setup", tf.setup)
		authed.POST("/2fa/verify", tf.verify)
		authed.POST("/2fa/disable", tf.disable)
		authed.POST("/2fa/backup-codes", tf.regenerateBackupCodes)
	}
	return nil
}

// Login godoc
// @Summary User login
// @Description Authenticates by username or email. When two-factor authentication is on and no token is sent, responds with requires2FA.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), identifier, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
			return
		}
		respondError(c, logger, err, "log in", "")
		return
	}

	if user.TwoFactorEnabled {
		if req.Token == "" {
			c.JSON(http.StatusOK, dto.LoginResponse{Requires2FA: true, Message: "Two-factor authentication code required"})
			return
		}
		if err := h.twoFactor.VerifyLoginCode(c.Request.Context(), user, req.Token); err != nil {
			respondError(c, logger, err, "verify authentication code", "")
			return
		}
	}

	resp, err := h.sessions.issue(c, user)
	if err != nil {
		logger.Error("Failed to issue session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	if h.posthogClient != nil {
		h.posthogClient.Enqueue(user.UserID, "user_logged_in", map[string]any{"two_factor": user.TwoFactorEnabled})
	}
	c.JSON(http.StatusOK, resp)
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Conflict (username or email exists)"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Username or email already registered"})
			return
		}
		respondError(c, logger, err, "register user", "")
		return
	}

	if h.posthogClient != nil {
		h.posthogClient.Enqueue(newUser.UserID, "user_registered", nil)
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// Refresh godoc
// @Summary Refresh the access token
// @Description Exchanges the refresh-token cookie for a new access token and rotates the cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cookie, err := c.Cookie(h.sessions.cfg.RefreshTokenCookieName)
	if err != nil || cookie == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token missing"})
		return
	}
	userID, raw, ok := splitRefreshCookie(cookie)
	if !ok {
		h.sessions.clearRefreshCookie(c)
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), userID, raw)
	if err != nil {
		h.sessions.clearRefreshCookie(c)
		respondError(c, logger, err, "refresh token", "")
		return
	}

	resp, err := h.sessions.issue(c, user)
	if err != nil {
		logger.Error("Failed to issue session on refresh", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: resp.Token, ExpiresAt: *resp.ExpiresAt})
}

// Logout godoc
// @Summary Log out
// @Description Revokes the stored refresh token and clears the cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
		respondError(c, logger, err, "log out", "")
		return
	}
	h.sessions.clearRefreshCookie(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Msg: "Logged out"})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "retrieve user", "User not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
