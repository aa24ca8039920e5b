package service

import (
	"time"

	"vaultguard/internal/entity"
)

type SignupInput struct {
	Email       string
	Password    string
	DisplayName string
}

type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress *string
}

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

type ResetPasswordInput struct {
	Token           string
	NewPassword     string
	ConfirmPassword string
}

type AuthResult struct {
	Token     string
	ExpiresIn time.Duration
	User      *entity.User
}
