package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
	UpdateTwoFactor(ctx context.Context, userID string, enabled bool, secret *string, backupCodeHashes []string) error
	// ConsumeBackupCode removes backupCodeHash from the user's set in a single conditional
	// update. ErrNotFound means the hash was no longer present.
	ConsumeBackupCode(ctx context.Context, userID string, backupCodeHash string) error
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry *time.Time) error
	LinkProvider(ctx context.Context, userID string, provider domain.AuthProvider, providerUserID string, emailVerified bool) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
