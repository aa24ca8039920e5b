package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"vaultguard/internal/entity"
	"vaultguard/internal/repository"
	"vaultguard/internal/utils"

	"github.com/google/uuid"
)

// dummy bcrypt hash verified on unknown-email logins so response timing does
// not reveal whether the account exists.
const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type AuthService struct {
	users        repository.UserRepository
	emailSender  EmailSender
	passwordHash PasswordHasher
	tokens       TokenIssuer
	mfaProvider  MFAProvider
	activity     ActivityRecorder
	clock        Clock
	config       AuthConfig
}

func NewAuthService(
	users repository.UserRepository,
	emailSender EmailSender,
	passwordHash PasswordHasher,
	tokens TokenIssuer,
	mfaProvider MFAProvider,
	activity ActivityRecorder,
	clock Clock,
	config AuthConfig,
) *AuthService {
	return &AuthService{
		users:        users,
		emailSender:  emailSender,
		passwordHash: passwordHash,
		tokens:       tokens,
		mfaProvider:  mfaProvider,
		activity:     activity,
		clock:        clock,
		config:       config,
	}
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.Email) == "" {
		fields["email"] = "Email is required"
	}
	if input.Password == "" {
		fields["password"] = "Password is required"
	}
	if strings.TrimSpace(input.DisplayName) == "" {
		fields["displayName"] = "Display name is required"
	}
	if len(fields) > 0 {
		return nil, NewValidationError("Please provide email, password, and display name", fields)
	}

	email := utils.NormalizeEmail(input.Email)
	if !emailShape.MatchString(email) {
		return nil, NewValidationError("Please provide a valid email address", map[string]string{
			"email": "Please provide a valid email address",
		})
	}
	if len(input.Password) < s.minPasswordLength() {
		return nil, NewValidationError("Password is too short", map[string]string{
			"password": "Password must be at least 6 characters",
		})
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(input.DisplayName),
	}
	// The unique index decides the race between concurrent signups.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, expiresIn, err := s.tokens.IssueSessionToken(user.ID.String())
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresIn: expiresIn, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.Email) == "" {
		fields["email"] = "Email is required"
	}
	if input.Password == "" {
		fields["password"] = "Password is required"
	}
	if len(fields) > 0 {
		return nil, NewValidationError("Please provide email and password", fields)
	}

	user, err := s.users.FindByEmailForAuth(ctx, utils.NormalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		return nil, ErrInvalidCredentials
	}
	if !s.passwordHash.Verify(user.PasswordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresIn, err := s.tokens.IssueSessionToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	if s.activity != nil {
		s.activity.Record(ctx, user.ID, entity.ActivityLogin, nil, input.UserAgent, input.IPAddress)
	}
	return &AuthResult{Token: token, ExpiresIn: expiresIn, User: user}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) (*AuthResult, error) {
	fields := map[string]string{}
	if input.CurrentPassword == "" {
		fields["currentPassword"] = "Current password is required"
	}
	if input.NewPassword == "" {
		fields["newPassword"] = "New password is required"
	}
	if input.ConfirmPassword == "" {
		fields["confirmPassword"] = "Confirm password is required"
	}
	if len(fields) > 0 {
		return nil, NewValidationError("Please provide all required fields", fields)
	}
	if input.NewPassword != input.ConfirmPassword {
		return nil, NewValidationError("New password and confirm password do not match", map[string]string{
			"confirmPassword": "Passwords do not match",
		})
	}
	if len(input.NewPassword) < s.minPasswordLength() {
		return nil, NewValidationError("Password is too short", map[string]string{
			"newPassword": "Password must be at least 6 characters",
		})
	}

	user, err := s.users.FindByIDForAuth(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !s.passwordHash.Verify(user.PasswordHash, input.CurrentPassword) {
		return nil, NewValidationError("Current password is incorrect", map[string]string{
			"currentPassword": "Current password is incorrect",
		})
	}

	hash, err := s.passwordHash.Hash(input.NewPassword)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return nil, err
	}

	// Prior session tokens stay valid until natural expiry; they are stateless.
	token, expiresIn, err := s.tokens.IssueSessionToken(user.ID.String())
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresIn: expiresIn, User: user}, nil
}

// ForgotPassword responds identically whether or not the email is registered.
// Only a registered address gets a persisted reset token and an email.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return NewValidationError("Please provide email", map[string]string{
			"email": "Email is required",
		})
	}

	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, ttl, err := s.tokens.IssueResetToken(user.ID.String())
	if err != nil {
		return err
	}
	expiresAt := s.now().Add(ttl)
	if err := s.users.SetResetToken(ctx, user.ID, utils.HashToken(token), expiresAt); err != nil {
		return err
	}

	if s.emailSender == nil {
		return nil
	}
	return s.emailSender.SendPasswordResetEmail(ctx, user.Email, token)
}

// ResetPassword consumes a reset token: signature and expiry are checked on
// the token itself, then the token must still match the hash persisted on the
// identity. The stored binding is cleared on success, so a second use fails
// even before natural expiry.
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if strings.TrimSpace(input.Token) == "" || input.NewPassword == "" {
		return NewValidationError("Please provide token and new password", map[string]string{
			"token":       "Token is required",
			"newPassword": "New password is required",
		})
	}
	if input.ConfirmPassword != "" && input.NewPassword != input.ConfirmPassword {
		return NewValidationError("New password and confirm password do not match", map[string]string{
			"confirmPassword": "Passwords do not match",
		})
	}
	if len(input.NewPassword) < s.minPasswordLength() {
		return NewValidationError("Password is too short", map[string]string{
			"newPassword": "Password must be at least 6 characters",
		})
	}

	subject, err := s.tokens.Parse(input.Token, utils.TokenKindReset)
	if err != nil {
		return ErrInvalidResetToken
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return ErrInvalidResetToken
	}

	user, err := s.users.FindByIDForAuth(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil || user.ResetTokenHash == nil {
		return ErrInvalidResetToken
	}
	if user.ResetTokenExpiresAt == nil || user.ResetTokenExpiresAt.Before(s.now()) {
		return ErrInvalidResetToken
	}
	if !utils.TokenHashMatches(*user.ResetTokenHash, input.Token) {
		return ErrInvalidResetToken
	}

	hash, err := s.passwordHash.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	return s.users.ClearResetToken(ctx, user.ID)
}

// BeginTwoFactorSetup generates an enrollment without persisting anything;
// the secret is confirmed with EnableTwoFactor before it reaches storage.
func (s *AuthService) BeginTwoFactorSetup(ctx context.Context, userID uuid.UUID) (*Enrollment, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.mfaProvider.GenerateEnrollment(user.Email)
}

func (s *AuthService) EnableTwoFactor(ctx context.Context, userID uuid.UUID, secret string, code string) error {
	if strings.TrimSpace(secret) == "" || strings.TrimSpace(code) == "" {
		return NewValidationError("Verification code and secret are required", map[string]string{
			"code":   "Verification code is required",
			"secret": "Secret is required",
		})
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !s.mfaProvider.ValidateCode(secret, code) {
		return ErrInvalidCode
	}
	return s.users.EnableTwoFactor(ctx, user.ID, secret)
}

func (s *AuthService) DisableTwoFactor(ctx context.Context, userID uuid.UUID) error {
	return s.users.DisableTwoFactor(ctx, userID)
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, displayName string) (*entity.User, error) {
	if strings.TrimSpace(displayName) == "" {
		return nil, NewValidationError("Display name is required", map[string]string{
			"displayName": "Display name is required",
		})
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err := s.users.UpdateDisplayName(ctx, user.ID, strings.TrimSpace(displayName)); err != nil {
		return nil, err
	}
	user.DisplayName = strings.TrimSpace(displayName)
	return user, nil
}

func (s *AuthService) now() time.Time {
	if s.clock == nil {
		return RealClock{}.Now()
	}
	return s.clock.Now()
}

func (s *AuthService) minPasswordLength() int {
	if s.config.MinPasswordLength > 0 {
		return s.config.MinPasswordLength
	}
	return 6
}
