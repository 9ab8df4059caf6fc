package repositories

import (
	"context"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
)

// ProfileReader defines read operations for household profiles
type ProfileReader interface {
	FindProfileByID(ctx context.Context, userID string, profileID string) (*domain.Profile, error)
	ListProfiles(ctx context.Context, userID string) ([]domain.Profile, error)
}

// ProfileWriter defines write operations for household profiles
type ProfileWriter interface {
	SaveProfile(ctx context.Context, profile domain.Profile) error
	// UpdateProfile overwrites the mutable columns of an owned profile.
	UpdateProfile(ctx context.Context, profile domain.Profile) error
}

// ProfileRepositoryFacade combines all profile-related repository interfaces
type ProfileRepositoryFacade interface {
	ProfileReader
	ProfileWriter
}
