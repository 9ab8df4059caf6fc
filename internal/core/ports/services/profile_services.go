package services

import (
	"context"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/dto"
)

// ProfileReaderSvc defines read operations for household profiles
type ProfileReaderSvc interface {
	GetProfileByID(ctx context.Context, userID string, profileID string) (*domain.Profile, error)
	ListProfiles(ctx context.Context, userID string) ([]domain.Profile, error)
}

// ProfileWriterSvc defines write operations for household profiles
type ProfileWriterSvc interface {
	CreateProfile(ctx context.Context, userID string, req dto.CreateProfileRequest) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, profileID string, req dto.UpdateProfileRequest) (*domain.Profile, error)
}

// ProfileSvcFacade combines all profile-related service interfaces
type ProfileSvcFacade interface {
	ProfileReaderSvc
	ProfileWriterSvc
}
