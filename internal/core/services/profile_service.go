package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/google/uuid"
)

type profileService struct {
	BaseService
	profileRepo portsrepo.ProfileRepositoryFacade
}

// NewProfileService creates the household profile service.
func NewProfileService(repo portsrepo.ProfileRepositoryFacade) portssvc.ProfileSvcFacade {
	return &profileService{profileRepo: repo}
}

var _ portssvc.ProfileSvcFacade = (*profileService)(nil)

func (s *profileService) CreateProfile(ctx context.Context, userID string, req dto.CreateProfileRequest) (*domain.Profile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: profile name is required", apperrors.ErrValidation)
	}
	profileType := domain.ProfilePrimary
	if t := strings.TrimSpace(req.Type); t != "" {
		profileType = domain.ProfileType(t)
	}

	now := s.CurrentTime()
	profile := domain.Profile{
		ProfileID: uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Type:      profileType,
		PhotoURL:  req.PhotoURL,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.profileRepo.SaveProfile(ctx, profile); err != nil {
		s.LogError(ctx, err, "Failed to save profile")
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &profile, nil
}

func (s *profileService) GetProfileByID(ctx context.Context, userID string, profileID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindProfileByID(ctx, userID, profileID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find profile", slog.String("profile_id", profileID))
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) ListProfiles(ctx context.Context, userID string) ([]domain.Profile, error) {
	profiles, err := s.profileRepo.ListProfiles(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list profiles")
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, profileID string, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindProfileByID(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: profile name cannot be empty", apperrors.ErrValidation)
		}
		profile.Name = name
	}
	if req.Type != nil {
		profile.Type = domain.ProfileType(strings.TrimSpace(*req.Type))
	}
	if req.PhotoURL != nil {
		profile.PhotoURL = req.PhotoURL
	}
	if req.IsActive != nil {
		profile.IsActive = *req.IsActive
	}
	profile.LastUpdatedAt = s.CurrentTime()

	if err := s.profileRepo.UpdateProfile(ctx, *profile); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update profile", slog.String("profile_id", profileID))
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}
