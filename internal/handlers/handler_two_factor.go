package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/SscSPs/fintrack_app/internal/middleware"
	"github.com/SscSPs/fintrack_app/internal/utils"
	"github.com/gin-gonic/gin"
)

type twoFactorHandler struct {
	twoFactor     portssvc.TwoFactorSvc
	posthogClient *utils.PosthogClientWrapper
}

func newTwoFactorHandler(tf portssvc.TwoFactorSvc, posthogClient *utils.PosthogClientWrapper) *twoFactorHandler {
	return &twoFactorHandler{twoFactor: tf, posthogClient: posthogClient}
}

// setup godoc
// @Summary Start two-factor setup
// @Description Stores a pending TOTP secret and returns it with the otpauth URL for authenticator apps.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.TwoFactorSetupResponse
// @Failure 400 {object} ErrorResponse "Already enabled"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/2fa/setup [post]
func (h *twoFactorHandler) setup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	secret, url, err := h.twoFactor.SetupTwoFactor(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "set up two-factor authentication", "User not found")
		return
	}
	c.JSON(http.StatusOK, dto.TwoFactorSetupResponse{Secret: secret, OTPAuthURL: url})
}

// verify godoc
// @Summary Enable two-factor authentication
// @Description Confirms the pending secret with a TOTP code and returns fresh backup codes.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.TwoFactorCodeRequest true "TOTP code"
// @Success 200 {object} dto.BackupCodesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid code"
// @Security BearerAuth
// @Router /auth/2fa/verify [post]
func (h *twoFactorHandler) verify(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.TwoFactorCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	codes, err := h.twoFactor.EnableTwoFactor(c.Request.Context(), userID, req.Token)
	if err != nil {
		respondError(c, logger, err, "enable two-factor authentication", "User not found")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "two_factor_enabled", nil)
	c.JSON(http.StatusOK, dto.BackupCodesResponse{
		Message:     "Two-factor authentication enabled. Store these backup codes somewhere safe.",
		BackupCodes: codes,
	})
}

// disable godoc
// @Summary Disable two-factor authentication
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.DisableTwoFactorRequest true "Password and code"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/2fa/disable [post]
func (h *twoFactorHandler) disable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.DisableTwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.twoFactor.DisableTwoFactor(c.Request.Context(), userID, req.Password, req.Token); err != nil {
		respondError(c, logger, err, "disable two-factor authentication", "User not found")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "two_factor_disabled", nil)
	c.JSON(http.StatusOK, dto.MessageResponse{Msg: "Two-factor authentication disabled"})
}

// regenerateBackupCodes godoc
// @Summary Regenerate backup codes
// @Description Needs a valid TOTP or backup code. Previous backup codes stop working.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.TwoFactorCodeRequest true "TOTP or backup code"
// @Success 200 {object} dto.BackupCodesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/2fa/backup-codes [post]
func (h *twoFactorHandler) regenerateBackupCodes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.TwoFactorCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	codes, err := h.twoFactor.RegenerateBackupCodes(c.Request.Context(), userID, req.Token)
	if err != nil {
		respondError(c, logger, err, "regenerate backup codes", "User not found")
		return
	}
	c.JSON(http.StatusOK, dto.BackupCodesResponse{Message: "Backup codes regenerated", BackupCodes: codes})
}
