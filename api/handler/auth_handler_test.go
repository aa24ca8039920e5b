package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"vaultguard/api/middleware"
	"vaultguard/internal/entity"
	"vaultguard/internal/repository"
	"vaultguard/internal/service"
	"vaultguard/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		clone := *user
		clone.PasswordHash = ""
		clone.TwoFactorSecret = nil
		return &clone, nil
	}
	return nil, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			clone.PasswordHash = ""
			clone.TwoFactorSecret = nil
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByIDForAuth(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, nil
}

func (r *stubUserRepo) FindByEmailForAuth(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.PasswordHash = newHash
	}
	return nil
}

func (r *stubUserRepo) UpdateDisplayName(_ context.Context, id uuid.UUID, displayName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.DisplayName = displayName
	}
	return nil
}

func (r *stubUserRepo) SetResetToken(_ context.Context, id uuid.UUID, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.ResetTokenHash = &tokenHash
		user.ResetTokenExpiresAt = &expiresAt
	}
	return nil
}

func (r *stubUserRepo) ClearResetToken(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.ResetTokenHash = nil
		user.ResetTokenExpiresAt = nil
	}
	return nil
}

func (r *stubUserRepo) EnableTwoFactor(_ context.Context, id uuid.UUID, secret string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.TwoFactorEnabled = true
		user.TwoFactorSecret = &secret
	}
	return nil
}

func (r *stubUserRepo) DisableTwoFactor(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.TwoFactorEnabled = false
		user.TwoFactorSecret = nil
	}
	return nil
}

type testApp struct {
	echo    *echo.Echo
	manager *utils.TokenManager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	users := newStubUserRepo()
	manager := &utils.TokenManager{
		Secret:     []byte("test-secret"),
		Issuer:     "VaultGuard",
		SessionTTL: 24 * time.Hour,
		ResetTTL:   time.Hour,
	}
	authService := service.NewAuthService(
		users,
		nil,
		service.BcryptPasswordHasher{Cost: 4},
		manager,
		service.NewTOTPProvider("VaultGuard"),
		nil,
		service.RealClock{},
		service.AuthConfig{MinPasswordLength: 6},
	)

	validate := validator.New()
	authHandler := NewAuthHandler(authService, validate, nil)
	settingsHandler := NewSettingsHandler(authService, validate, nil)
	authMiddleware := middleware.AuthMiddleware{Tokens: manager, Users: users}

	e := echo.New()
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.POST("/forgot-password", authHandler.ForgotPassword)
	e.GET("/profile", settingsHandler.GetProfile, authMiddleware.RequireAuth)

	return &testApp{echo: e, manager: manager}
}

func (a *testApp) request(method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func TestSignupLoginScenario(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(http.MethodPost, "/signup",
		`{"email":"a@b.com","password":"secret1","displayName":"A"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var signup struct {
		Token    string `json:"token"`
		Identity struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"identity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signup))
	assert.NotEmpty(t, signup.Token)
	assert.Equal(t, "a@b.com", signup.Identity.Email)
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	rec = app.request(http.MethodPost, "/login",
		`{"email":"a@b.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email or password")

	rec = app.request(http.MethodPost, "/login",
		`{"email":"a@b.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	subject, err := app.manager.Parse(login.Token, utils.TokenKindSession)
	require.NoError(t, err)
	assert.Equal(t, signup.Identity.ID, subject)
}

func TestLoginErrorShapeIsUniform(t *testing.T) {
	app := newTestApp(t)

	app.request(http.MethodPost, "/signup",
		`{"email":"a@b.com","password":"secret1","displayName":"A"}`, "")

	wrongPassword := app.request(http.MethodPost, "/login",
		`{"email":"a@b.com","password":"wrong"}`, "")
	unknownEmail := app.request(http.MethodPost, "/login",
		`{"email":"nobody@b.com","password":"secret1"}`, "")

	assert.Equal(t, wrongPassword.Code, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestForgotPasswordResponseIsUniform(t *testing.T) {
	app := newTestApp(t)

	app.request(http.MethodPost, "/signup",
		`{"email":"a@b.com","password":"secret1","displayName":"A"}`, "")

	known := app.request(http.MethodPost, "/forgot-password", `{"email":"a@b.com"}`, "")
	unknown := app.request(http.MethodPost, "/forgot-password", `{"email":"nobody@b.com"}`, "")

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, known.Code, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestProfileRequiresBearerToken(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(http.MethodPost, "/signup",
		`{"email":"a@b.com","password":"secret1","displayName":"A"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var signup struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signup))

	rec = app.request(http.MethodGet, "/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.request(http.MethodGet, "/profile", "", "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.request(http.MethodGet, "/profile", "", signup.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"a@b.com"`)
	assert.Contains(t, rec.Body.String(), `"twoFactorEnabled":false`)
}

func TestSignupValidationFieldErrors(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(http.MethodPost, "/signup",
		`{"email":"not-an-email","password":"secret1","displayName":"A"}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "email")
}

func TestSignupDuplicateEmailStatus(t *testing.T) {
	app := newTestApp(t)

	first := app.request(http.MethodPost, "/signup",
		`{"email":"a@b.com","password":"secret1","displayName":"A"}`, "")
	require.Equal(t, http.StatusCreated, first.Code)

	second := app.request(http.MethodPost, "/signup",
		`{"email":"a@b.com","password":"secret1","displayName":"B"}`, "")
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Contains(t, second.Body.String(), "Email already registered")
}
