package middleware

import (
	"net/http"
	"strings"

	"vaultguard/internal/repository"
	"vaultguard/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware verifies the bearer token and loads the identity behind it
// before the handler runs. Secrets never ride along: the lookup uses the safe
// projection.
type AuthMiddleware struct {
	Tokens *utils.TokenManager
	Users  repository.UserRepository
}

func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.Tokens == nil || m.Users == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		token := extractBearerToken(c.Request())
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
		}
		subject, err := m.Tokens.Parse(token, utils.TokenKindSession)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}
		userID, err := uuid.Parse(subject)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}
		user, err := m.Users.FindByID(c.Request().Context(), userID)
		if err != nil {
			return err
		}
		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
		}
		SetAuthContext(c, userID, user)
		return next(c)
	}
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
