package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("invalid token")
)

type TokenKind string

const (
	TokenKindSession TokenKind = "session"
	TokenKindReset   TokenKind = "reset"
)

// TokenManager issues and verifies signed, time-limited tokens. Session and
// reset tokens share the mechanism and differ only in kind and lifetime.
type TokenManager struct {
	Secret     []byte
	Issuer     string
	SessionTTL time.Duration
	ResetTTL   time.Duration
}

type Claims struct {
	Kind string `json:"knd"`
	jwt.RegisteredClaims
}

func (m TokenManager) IssueSessionToken(userID string) (string, time.Duration, error) {
	ttl := m.SessionTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return m.issue(userID, TokenKindSession, ttl)
}

func (m TokenManager) IssueResetToken(userID string) (string, time.Duration, error) {
	ttl := m.ResetTTL
	if ttl == 0 {
		ttl = time.Hour
	}
	return m.issue(userID, TokenKindReset, ttl)
}

func (m TokenManager) issue(userID string, kind TokenKind, ttl time.Duration) (string, time.Duration, error) {
	now := time.Now()
	claims := Claims{
		Kind: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.Secret)
	if err != nil {
		return "", 0, err
	}
	return signed, ttl, nil
}

// Parse verifies signature, expiry and kind, and returns the subject user id.
func (m TokenManager) Parse(tokenString string, kind TokenKind) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.Secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		default:
			return "", ErrTokenInvalid
		}
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", ErrTokenInvalid
	}
	if claims.Kind != string(kind) {
		return "", ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
