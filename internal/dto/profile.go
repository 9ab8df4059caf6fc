package dto

import (
	"github.com/SscSPs/fintrack_app/internal/core/domain"
)

// CreateProfileRequest defines the data needed to add a household member.
type CreateProfileRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Type     string  `json:"type" binding:"max=50"` // Optional, defaults to primary
	PhotoURL *string `json:"photo_url"`
}

// UpdateProfileRequest defines a partial profile update.
type UpdateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Type     *string `json:"type" binding:"omitempty,min=1,max=50"`
	PhotoURL *string `json:"photo_url"`
	IsActive *bool   `json:"is_active"`
}

type ProfileResponse struct {
	ProfileID string  `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	PhotoURL  *string `json:"photo_url"`
	IsActive  bool    `json:"is_active"`
}

// ProfileEnvelope wraps a profile with a status message.
type ProfileEnvelope struct {
	Msg     string          `json:"msg"`
	Profile ProfileResponse `json:"profile"`
}

func ToProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ProfileID: p.ProfileID,
		Name:      p.Name,
		Type:      string(p.Type),
		PhotoURL:  p.PhotoURL,
		IsActive:  p.IsActive,
	}
}

func ToListProfileResponse(profiles []domain.Profile) []ProfileResponse {
	res := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		res[i] = ToProfileResponse(&profiles[i])
	}
	return res
}
