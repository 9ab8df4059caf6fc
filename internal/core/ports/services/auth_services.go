package services

import (
	"context"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateAndParseRefreshToken validates a refresh token string against a user's stored token details.
	// It returns the user if the token is valid and not expired.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}

// TwoFactorSvc manages TOTP enrolment and backup codes.
type TwoFactorSvc interface {
	// SetupTwoFactor stores a pending secret and returns it with its otpauth URL.
	SetupTwoFactor(ctx context.Context, userID string) (secret string, otpauthURL string, err error)

	// EnableTwoFactor confirms the pending secret with a TOTP code and returns fresh backup codes.
	EnableTwoFactor(ctx context.Context, userID string, code string) ([]string, error)

	// DisableTwoFactor turns 2FA off after checking the password and a TOTP or backup code.
	DisableTwoFactor(ctx context.Context, userID string, password string, code string) error

	// RegenerateBackupCodes replaces all backup codes after checking a TOTP or backup code.
	RegenerateBackupCodes(ctx context.Context, userID string, code string) ([]string, error)

	// VerifyLoginCode accepts a TOTP code or an unused backup code, consuming the latter.
	VerifyLoginCode(ctx context.Context, user *domain.User, code string) error
}
