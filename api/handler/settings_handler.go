package handler

import (
	"net/http"

	"vaultguard/api/middleware"
	"vaultguard/internal/dto"
	"vaultguard/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type SettingsHandler struct {
	Service  *service.AuthService
	Validate *validator.Validate
	Log      *logrus.Logger
	Dev      bool
}

func NewSettingsHandler(svc *service.AuthService, validate *validator.Validate, log *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{Service: svc, Validate: validate, Log: log}
}

func (h *SettingsHandler) GetProfile(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	user, err := h.Service.Profile(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.JSON(http.StatusOK, dto.ProfileResponse{
		Success: true,
		User:    dto.ProfileViewFromEntity(user),
	})
}

func (h *SettingsHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	var req dto.UpdateProfileRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	if err := h.validate(req); err != nil {
		return writeValidationError(c, err)
	}
	user, err := h.Service.UpdateProfile(c.Request().Context(), userID, req.DisplayName)
	if err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.JSON(http.StatusOK, dto.ProfileResponse{
		Success: true,
		User:    dto.ProfileViewFromEntity(user),
	})
}

func (h *SettingsHandler) ChangePassword(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	var req dto.ChangePasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	if err := h.validate(req); err != nil {
		return writeValidationError(c, err)
	}
	result, err := h.Service.ChangePassword(c.Request().Context(), userID, service.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.JSON(http.StatusOK, dto.AuthResponse{
		Success:  true,
		Token:    result.Token,
		Identity: dto.IdentityViewFromEntity(result.User),
	})
}

func (h *SettingsHandler) SetupTwoFactor(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	enrollment, err := h.Service.BeginTwoFactorSetup(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.JSON(http.StatusOK, dto.TwoFactorSetupResponse{
		Success:     true,
		QRCodeImage: enrollment.QRCodeDataURL,
		Secret:      enrollment.Secret,
	})
}

func (h *SettingsHandler) EnableTwoFactor(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	var req dto.EnableTwoFactorRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	if err := h.validate(req); err != nil {
		return writeValidationError(c, err)
	}
	if err := h.Service.EnableTwoFactor(c.Request().Context(), userID, req.Secret, req.Code); err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "2FA enabled successfully",
	})
}

func (h *SettingsHandler) DisableTwoFactor(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	if err := h.Service.DisableTwoFactor(c.Request().Context(), userID); err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "2FA disabled successfully",
	})
}

func (h *SettingsHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
