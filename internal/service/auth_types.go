package service

import (
	"context"
	"time"

	"vaultguard/internal/entity"
	"vaultguard/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthConfig struct {
	TOTPIssuer        string
	MinPasswordLength int
}

type EmailSender interface {
	SendPasswordResetEmail(ctx context.Context, email string, token string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type TokenIssuer interface {
	IssueSessionToken(userID string) (string, time.Duration, error)
	IssueResetToken(userID string) (string, time.Duration, error)
	Parse(token string, kind utils.TokenKind) (string, error)
}

type MFAProvider interface {
	GenerateEnrollment(email string) (*Enrollment, error)
	ValidateCode(secret string, code string) bool
}

// Enrollment is a freshly generated TOTP secret. It stays client-side until
// the user confirms it with a valid code.
type Enrollment struct {
	Secret        string
	OTPAuthURL    string
	QRCodeDataURL string
}

type ActivityRecorder interface {
	Record(ctx context.Context, userID uuid.UUID, activityType entity.ActivityType, documentID *uuid.UUID, userAgent string, ipAddress *string)
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	if password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
