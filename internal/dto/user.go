package dto

import (
	"github.com/SscSPs/fintrack_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to register.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"max=100"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID           string `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	TwoFactorEnabled bool   `json:"two_factor_enabled"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:           user.UserID,
		Username:         user.Username,
		Email:            user.Email,
		Name:             user.Name,
		TwoFactorEnabled: user.TwoFactorEnabled,
	}
}
