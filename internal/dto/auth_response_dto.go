package dto

import "time"

// LoginRequest accepts either a username or an email plus password.
// Token carries a TOTP or backup code when the account has 2FA enabled.
type LoginRequest struct {
	Username string `json:"username" binding:"required_without=Email"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
	Token    string `json:"token"`
}

// LoginResponse represents the response for a login attempt.
// When Requires2FA is set no token is issued.
type LoginResponse struct {
	Token       string        `json:"token,omitempty"`
	ExpiresAt   *time.Time    `json:"expires_at,omitempty"`
	User        *UserResponse `json:"user,omitempty"`
	Requires2FA bool          `json:"requires2FA,omitempty"`
	Message     string        `json:"message,omitempty"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TwoFactorSetupResponse carries the pending TOTP secret.
type TwoFactorSetupResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

// TwoFactorCodeRequest carries a TOTP or backup code.
type TwoFactorCodeRequest struct {
	Token string `json:"token" binding:"required"`
}

// DisableTwoFactorRequest requires the password alongside a code.
type DisableTwoFactorRequest struct {
	Password string `json:"password" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

// BackupCodesResponse returns freshly generated plaintext backup codes. They are shown once.
type BackupCodesResponse struct {
	Message     string   `json:"message"`
	BackupCodes []string `json:"backup_codes"`
}
