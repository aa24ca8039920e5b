package dto

import (
	"time"

	"vaultguard/internal/entity"
)

type SignupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"displayName" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"displayName" validate:"required"`
}

type EnableTwoFactorRequest struct {
	Code   string `json:"code" validate:"required"`
	Secret string `json:"secret" validate:"required"`
}

type AuthResponse struct {
	Success  bool          `json:"success"`
	Token    string        `json:"token"`
	Identity *IdentityView `json:"identity"`
}

type IdentitySummaryResponse struct {
	Success  bool            `json:"success"`
	Token    string          `json:"token"`
	Identity IdentitySummary `json:"identity"`
}

type IdentityView struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"displayName"`
	TwoFactorEnabled bool      `json:"twoFactorEnabled"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type IdentitySummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type ProfileResponse struct {
	Success bool        `json:"success"`
	User    ProfileView `json:"user"`
}

type ProfileView struct {
	DisplayName      string    `json:"displayName"`
	Email            string    `json:"email"`
	CreatedAt        time.Time `json:"createdAt"`
	TwoFactorEnabled bool      `json:"twoFactorEnabled"`
}

type TwoFactorSetupResponse struct {
	Success     bool   `json:"success"`
	QRCodeImage string `json:"qrCodeImage"`
	Secret      string `json:"secret"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func IdentityViewFromEntity(user *entity.User) *IdentityView {
	return &IdentityView{
		ID:               user.ID.String(),
		Email:            user.Email,
		DisplayName:      user.DisplayName,
		TwoFactorEnabled: user.TwoFactorEnabled,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

func ProfileViewFromEntity(user *entity.User) ProfileView {
	return ProfileView{
		DisplayName:      user.DisplayName,
		Email:            user.Email,
		CreatedAt:        user.CreatedAt,
		TwoFactorEnabled: user.TwoFactorEnabled,
	}
}
