package handler

import (
	"net/http"

	"vaultguard/internal/dto"
	"vaultguard/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	Service  *service.AuthService
	Validate *validator.Validate
	Log      *logrus.Logger
	Dev      bool
}

func NewAuthHandler(svc *service.AuthService, validate *validator.Validate, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{Service: svc, Validate: validate, Log: log}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	if err := h.validate(req); err != nil {
		return writeValidationError(c, err)
	}
	result, err := h.Service.Signup(c.Request().Context(), service.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.JSON(http.StatusCreated, dto.AuthResponse{
		Success:  true,
		Token:    result.Token,
		Identity: dto.IdentityViewFromEntity(result.User),
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	if err := h.validate(req); err != nil {
		return writeValidationError(c, err)
	}
	result, err := h.Service.Login(c.Request().Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request().UserAgent(),
		IPAddress: stringPtr(c.RealIP()),
	})
	if err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.JSON(http.StatusOK, dto.IdentitySummaryResponse{
		Success: true,
		Token:   result.Token,
		Identity: dto.IdentitySummary{
			ID:    result.User.ID.String(),
			Email: result.User.Email,
		},
	})
}

// ForgotPassword always answers with the same body; nothing in the response
// reveals whether the address is registered.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	if err := h.validate(req); err != nil {
		return writeValidationError(c, err)
	}
	if err := h.Service.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "If an account exists with this email, a reset link will be sent",
	})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	if err := h.validate(req); err != nil {
		return writeValidationError(c, err)
	}
	err := h.Service.ResetPassword(c.Request().Context(), service.ResetPasswordInput{
		Token:           req.Token,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Password reset successfully",
	})
}

func (h *AuthHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
