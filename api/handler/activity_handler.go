package handler

import (
	"net/http"

	"vaultguard/api/middleware"
	"vaultguard/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ActivityHandler struct {
	Service *service.ActivityService
	Log     *logrus.Logger
	Dev     bool
}

func NewActivityHandler(svc *service.ActivityService, log *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{Service: svc, Log: log}
}

func (h *ActivityHandler) Recent(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	entries, err := h.Service.Recent(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, h.Log, h.Dev, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"activities": entries,
	})
}
